package router

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/i18n"
)

func newTestService() *Service {
	return NewService(Deps{Log: zerolog.Nop()})
}

func freeUser() domain.User {
	return domain.User{ID: 1, PlatformUserID: "100", Language: "en", Tier: domain.TierFree}
}

func buttonActions(msg domain.UIMessage) []string {
	var actions []string
	for _, rowButtons := range msg.Buttons {
		for _, b := range rowButtons {
			actions = append(actions, b.Action)
		}
	}
	return actions
}

func hasAction(msg domain.UIMessage, action string) bool {
	for _, a := range buttonActions(msg) {
		if a == action {
			return true
		}
	}
	return false
}

func TestHandleTokenUnknown(t *testing.T) {
	s := newTestService()
	msg := s.HandleToken(context.Background(), freeUser(), "garbage")
	if msg.Text != i18n.T("en", "msg.unknown_action") {
		t.Fatalf("нераспознанный токен: текст %q", msg.Text)
	}
	if !hasAction(msg, "menu:main") {
		t.Fatalf("ответ должен вести в главное меню, кнопки %v", buttonActions(msg))
	}
}

func TestHandleTokenTierGate(t *testing.T) {
	s := newTestService()
	msg := s.HandleToken(context.Background(), freeUser(), "action:stocks_fundamentals:AAPL")
	want := i18n.TF("en", "msg.feature_requires", map[string]string{
		"tier": i18n.T("en", "tier.pro"),
	})
	if msg.Text != want {
		t.Fatalf("free-пользователь на pro-действии: текст %q, ожидалось %q", msg.Text, want)
	}
	if !hasAction(msg, "menu:stocks") {
		t.Fatalf("кнопка назад должна вести в меню акций, кнопки %v", buttonActions(msg))
	}
}

func TestHandleTokenTierGatePasses(t *testing.T) {
	s := newTestService()
	user := freeUser()
	user.Tier = domain.TierPro
	denied, _ := s.gate(user, "stocks_fundamentals")
	if denied {
		t.Fatal("pro-пользователь не должен блокироваться на pro-действии")
	}
	denied, _ = s.gate(user, "education_quiz")
	if !denied {
		t.Fatal("pro-пользователь должен блокироваться на elite-действии")
	}
}

func TestHandleTokenAdminGate(t *testing.T) {
	s := newTestService()
	msg := s.HandleToken(context.Background(), freeUser(), "action:admin_stats")
	if msg.Text != i18n.T("en", "msg.admin_required") {
		t.Fatalf("не-админ на админском действии: текст %q", msg.Text)
	}
}

func TestHandleTokenAdminNeedsElite(t *testing.T) {
	s := newTestService()
	user := freeUser()
	user.IsAdmin = true
	msg := s.HandleToken(context.Background(), user, "action:admin_stats")
	want := i18n.TF("en", "msg.feature_requires", map[string]string{
		"tier": i18n.T("en", "tier.elite"),
	})
	if msg.Text != want {
		t.Fatalf("админ без elite: текст %q, ожидалось %q", msg.Text, want)
	}
}

func TestMenuUnknownFallsBackToMain(t *testing.T) {
	s := newTestService()
	msg := s.Menu(context.Background(), freeUser(), "nope")
	if !hasAction(msg, "menu:markets") || !hasAction(msg, "menu:settings") {
		t.Fatalf("неизвестное меню должно открывать главное, кнопки %v", buttonActions(msg))
	}
}

func TestMenuMainShowsWebApp(t *testing.T) {
	s := NewService(Deps{Log: zerolog.Nop(), WebAppURL: "https://app.example.com"})
	msg := s.Menu(context.Background(), freeUser(), "main")
	if !hasAction(msg, "webapp:https://app.example.com") {
		t.Fatalf("главное меню должно содержать кнопку мини-приложения, кнопки %v", buttonActions(msg))
	}
}

func TestBackMenuFor(t *testing.T) {
	cases := map[string]string{
		"stocks_find":             "stocks",
		"portfolio_sync_run":      "sync",
		"portfolio_import_csv":    "sync",
		"portfolio_list":          "portfolio",
		"alert_price":             "alerts",
		"lang_set":                "language",
		"sub_upgrade":             "settings",
		"admin_broadcast":         "admin",
		"something_else_entirely": "main",
	}
	for key, want := range cases {
		if got := backMenuFor(key); got != want {
			t.Fatalf("backMenuFor(%q) = %q, ожидалось %q", key, got, want)
		}
	}
}

func TestEnsureNavKeepsExistingButtons(t *testing.T) {
	s := newTestService()
	original := domain.UIMessage{
		Text:    "x",
		Buttons: [][]domain.Button{{{Label: "A", Action: "action:alerts_list"}}},
	}
	msg := s.ensureNav(freeUser(), original, "alerts")
	if len(msg.Buttons) != 1 || msg.Buttons[0][0].Action != "action:alerts_list" {
		t.Fatalf("ensureNav не должен трогать готовые кнопки, получено %v", buttonActions(msg))
	}

	bare := s.ensureNav(freeUser(), domain.UIMessage{Text: "y"}, "alerts")
	if !hasAction(bare, "menu:alerts") || !hasAction(bare, "menu:main") {
		t.Fatalf("ensureNav должен добавить навигацию, кнопки %v", buttonActions(bare))
	}
}
