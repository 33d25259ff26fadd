package bot

import (
	"context"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/infra/ratelimit"
	"tg-invest-bot/internal/usecase/dialog"
	"tg-invest-bot/internal/usecase/router"
)

// fakeTelegramClient подменяет HTTP-клиент Bot API и записывает
// имена вызванных методов.
type fakeTelegramClient struct {
	mu    sync.Mutex
	calls []string
}

func (c *fakeTelegramClient) Do(req *http.Request) (*http.Response, error) {
	endpoint := path.Base(req.URL.Path)
	c.mu.Lock()
	c.calls = append(c.calls, endpoint)
	c.mu.Unlock()

	body := `{"ok":true,"result":{"message_id":1,"chat":{"id":1}}}`
	switch endpoint {
	case "getMe":
		body = `{"ok":true,"result":{"id":42,"is_bot":true,"first_name":"bot"}}`
	case "deleteMessage", "answerCallbackQuery":
		body = `{"ok":true,"result":true}`
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
	}, nil
}

func (c *fakeTelegramClient) reset() {
	c.mu.Lock()
	c.calls = nil
	c.mu.Unlock()
}

func (c *fakeTelegramClient) recorded() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

type stubBotUsers struct {
	domain.UserRepo
}

func (s *stubBotUsers) UpsertByPlatformID(p domain.PlatformProfile) (domain.User, error) {
	return domain.User{
		ID:             7,
		Platform:       p.Platform,
		PlatformUserID: p.PlatformUserID,
		Language:       p.Language,
		Tier:           domain.TierFree,
	}, nil
}

func newTestHandler(t *testing.T) (*Handler, *fakeTelegramClient) {
	t.Helper()
	client := &fakeTelegramClient{}
	api, err := tgbotapi.NewBotAPIWithClient("42:TEST", tgbotapi.APIEndpoint, client)
	if err != nil {
		t.Fatalf("не удалось создать клиент Bot API: %v", err)
	}
	routerUC := router.NewService(router.Deps{Log: zerolog.Nop()})
	dialogUC := dialog.NewService(dialog.Deps{Log: zerolog.Nop(), Router: routerUC})
	h := NewHandler(api, zerolog.Nop(), routerUC, dialogUC, &stubBotUsers{}, ratelimit.New(100, time.Minute))
	client.reset()
	return h, client
}

func textUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 10,
		From:      &tgbotapi.User{ID: 100, LanguageCode: "en"},
		Chat:      &tgbotapi.Chat{ID: 55},
		Text:      text,
	}}
}

func TestMessageWithoutPendingInputIsIgnored(t *testing.T) {
	h, client := newTestHandler(t)

	h.HandleUpdate(context.Background(), textUpdate("AAPL"))

	if calls := client.recorded(); len(calls) != 0 {
		t.Fatalf("текст без ожидания ввода не должен вызывать API: %v", calls)
	}
	if _, ok := h.sessions.Pop(55); ok {
		t.Fatal("сессия не должна появиться из ниоткуда")
	}
}

func TestMessageWithPendingInputIsConsumed(t *testing.T) {
	h, client := newTestHandler(t)
	h.sessions.Set(55, router.InputAdminToggle)

	h.HandleUpdate(context.Background(), textUpdate("news_project"))

	calls := client.recorded()
	if len(calls) != 2 || calls[0] != "deleteMessage" || calls[1] != "sendMessage" {
		t.Fatalf("ожидались deleteMessage и sendMessage, получено %v", calls)
	}
	if _, ok := h.sessions.Pop(55); ok {
		t.Fatal("потреблённый ввод должен снять ожидание")
	}
}

func TestCommandClearsPendingInput(t *testing.T) {
	for _, command := range []string{"/help", "/unknown_command"} {
		h, client := newTestHandler(t)
		h.sessions.Set(55, router.InputAlertPrice)

		h.HandleUpdate(context.Background(), textUpdate(command))

		if _, ok := h.sessions.Pop(55); ok {
			t.Fatalf("%s должна сбросить ожидание ввода", command)
		}
		found := false
		for _, call := range client.recorded() {
			if call == "sendMessage" {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s должна получить ответ: %v", command, client.recorded())
		}
	}
}
