package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const ctxKeyPlatformUserID ctxKey = "platform_user_id"

// WebAppAuthMiddleware проверяет initData по токену бота и кладёт
// идентификатор пользователя Telegram в контекст запроса.
func WebAppAuthMiddleware(botToken string) func(http.Handler) http.Handler {
	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	key := secret.Sum(nil)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initData := r.URL.Query().Get("init_data")
			if initData == "" {
				initData = r.Header.Get("X-Telegram-Init-Data")
			}
			if initData == "" {
				http.Error(w, "init_data отсутствует", http.StatusUnauthorized)
				return
			}
			if !validateInitData(initData, key) {
				http.Error(w, "подпись недействительна", http.StatusUnauthorized)
				return
			}
			userID, err := initDataUserID(initData)
			if err != nil {
				http.Error(w, "пользователь не распознан", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyPlatformUserID, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PlatformUserID возвращает идентификатор пользователя, положенный
// auth-middleware в контекст запроса.
func PlatformUserID(r *http.Request) string {
	id, _ := r.Context().Value(ctxKeyPlatformUserID).(string)
	return id
}

func validateInitData(initData string, secret []byte) bool {
	parts := strings.Split(initData, "&")
	sort.Strings(parts)
	pairs := make([]string, 0, len(parts))
	var sig string
	for _, p := range parts {
		if strings.HasPrefix(p, "hash=") {
			sig = strings.TrimPrefix(p, "hash=")
			continue
		}
		decoded, err := url.QueryUnescape(p)
		if err != nil {
			decoded = p
		}
		pairs = append(pairs, decoded)
	}
	if sig == "" {
		return false
	}
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(strings.Join(pairs, "\n")))
	calc := h.Sum(nil)
	expected, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}
	return hmac.Equal(calc, expected)
}

func initDataUserID(initData string) (string, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return "", fmt.Errorf("parse init_data: %w", err)
	}
	raw := values.Get("user")
	if raw == "" {
		return "", fmt.Errorf("init_data: поле user отсутствует")
	}
	var user struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return "", fmt.Errorf("decode user: %w", err)
	}
	if user.ID == 0 {
		return "", fmt.Errorf("init_data: пустой идентификатор")
	}
	return strconv.FormatInt(user.ID, 10), nil
}

// RequestID возвращает request ID из контекста chi.
func RequestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}

// WriteError отправляет JSON с ошибкой.
func WriteError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	payload, _ := json.Marshal(map[string]string{"error": err.Error()})
	_, _ = w.Write(payload)
}
