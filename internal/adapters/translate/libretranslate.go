package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/infra/metrics"
)

// LibreTranslate переводит тексты через совместимый с LibreTranslate сервис.
type LibreTranslate struct {
	baseURL string
	apiKey  string
	client  *http.Client

	mu        sync.Mutex
	languages map[string]struct{}
	checkedAt time.Time
}

// NewLibreTranslate создаёт клиент перевода. Пустой baseURL означает,
// что перевод не настроен.
func NewLibreTranslate(baseURL, apiKey string) *LibreTranslate {
	return &LibreTranslate{
		baseURL: strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

var _ domain.Translator = (*LibreTranslate)(nil)

// Configured реализует domain.Translator.
func (l *LibreTranslate) Configured() bool {
	return l.baseURL != ""
}

// Available реализует domain.Translator. Список языков кэшируется
// на десять минут.
func (l *LibreTranslate) Available(ctx context.Context, target string) bool {
	if !l.Configured() {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.languages == nil || time.Since(l.checkedAt) > 10*time.Minute {
		languages, err := l.fetchLanguages(ctx)
		if err != nil {
			return false
		}
		l.languages = languages
		l.checkedAt = time.Now()
	}
	_, ok := l.languages[strings.ToLower(target)]
	return ok
}

func (l *LibreTranslate) fetchLanguages(ctx context.Context) (map[string]struct{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/languages", nil)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := l.client.Do(req)
	metrics.ObserveNetworkRequest("libretranslate", "languages", "translate", start, err)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("languages: status=%d", resp.StatusCode)
	}

	var raw []struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	languages := make(map[string]struct{}, len(raw))
	for _, lang := range raw {
		languages[strings.ToLower(lang.Code)] = struct{}{}
	}
	return languages, nil
}

// TranslateAll реализует domain.Translator. При любой ошибке
// возвращаются исходные тексты и false.
func (l *LibreTranslate) TranslateAll(ctx context.Context, texts []string, target string) ([]string, bool) {
	if !l.Configured() || len(texts) == 0 {
		return texts, false
	}

	translated := make([]string, len(texts))
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			translated[i] = text
			continue
		}
		result, err := l.translate(ctx, text, target)
		if err != nil {
			return texts, false
		}
		translated[i] = result
	}
	return translated, true
}

func (l *LibreTranslate) translate(ctx context.Context, text, target string) (string, error) {
	payload := map[string]string{
		"q":      text,
		"source": "auto",
		"target": target,
		"format": "text",
	}
	if l.apiKey != "" {
		payload["api_key"] = l.apiKey
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := l.client.Do(req)
	metrics.ObserveNetworkRequest("libretranslate", "translate", "translate", start, err)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("translate: status=%d", resp.StatusCode)
	}

	var raw struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", err
	}
	if raw.TranslatedText == "" {
		return "", fmt.Errorf("translate: пустой ответ")
	}
	return raw.TranslatedText, nil
}
