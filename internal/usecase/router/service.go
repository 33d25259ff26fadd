package router

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/i18n"
	"tg-invest-bot/internal/infra/metrics"
	"tg-invest-bot/internal/usecase/portfolio"
)

// Deps перечисляет зависимости роутера.
type Deps struct {
	Log        zerolog.Logger
	Users      domain.UserRepo
	Alerts     domain.AlertRepo
	Audit      domain.AuditRepo
	Toggles    domain.FeatureToggleRepo
	Stocks     domain.StockMarket
	Crypto     domain.CryptoMarket
	Forex      domain.ForexMarket
	Ton        domain.TonExplorer
	NFT        domain.NFTMarket
	News       domain.NewsFeed
	Translator domain.Translator
	Payments   domain.PaymentProvider
	Broadcast  domain.BroadcastQueue
	Portfolio  *portfolio.Service
	DiscordURL string
	WebAppURL  string
}

// Service превращает callback-токены и команды в ответные сообщения.
type Service struct {
	log        zerolog.Logger
	users      domain.UserRepo
	alerts     domain.AlertRepo
	audit      domain.AuditRepo
	toggles    domain.FeatureToggleRepo
	stocks     domain.StockMarket
	crypto     domain.CryptoMarket
	forex      domain.ForexMarket
	ton        domain.TonExplorer
	nft        domain.NFTMarket
	news       domain.NewsFeed
	translator domain.Translator
	payments   domain.PaymentProvider
	broadcast  domain.BroadcastQueue
	portfolio  *portfolio.Service
	discordURL string
	webAppURL  string
}

// NewService создаёт роутер.
func NewService(deps Deps) *Service {
	return &Service{
		log:        deps.Log,
		users:      deps.Users,
		alerts:     deps.Alerts,
		audit:      deps.Audit,
		toggles:    deps.Toggles,
		stocks:     deps.Stocks,
		crypto:     deps.Crypto,
		forex:      deps.Forex,
		ton:        deps.Ton,
		nft:        deps.NFT,
		news:       deps.News,
		translator: deps.Translator,
		payments:   deps.Payments,
		broadcast:  deps.Broadcast,
		portfolio:  deps.Portfolio,
		discordURL: deps.DiscordURL,
		webAppURL:  deps.WebAppURL,
	}
}

// HandleToken обрабатывает callback-токен и возвращает ответ.
// Ответ всегда содержит навигационные кнопки.
func (s *Service) HandleToken(ctx context.Context, user domain.User, raw string) domain.UIMessage {
	token, ok := ParseToken(raw)
	if !ok {
		metrics.IncDispatch("unknown")
		return s.ensureNav(user, domain.UIMessage{Text: i18n.T(user.Language, "msg.unknown_action")}, "main")
	}

	if token.Kind == "menu" {
		metrics.IncDispatch("menu")
		return s.Menu(ctx, user, token.Key)
	}

	metrics.IncDispatch(token.Kind)
	if denied, msg := s.gate(user, token.Key); denied {
		return s.ensureNav(user, msg, backMenuFor(token.Key))
	}

	msg := s.dispatch(ctx, user, token.Key, token.Payload)
	return s.ensureNav(user, msg, backMenuFor(token.Key))
}

// gate проверяет тариф и административные права для действия.
func (s *Service) gate(user domain.User, key string) (bool, domain.UIMessage) {
	if strings.HasPrefix(key, "admin_") && !user.IsAdmin {
		return true, domain.UIMessage{Text: i18n.T(user.Language, "msg.admin_required")}
	}
	feature := featureForAction(key)
	if feature == "" {
		return false, domain.UIMessage{}
	}
	if user.HasAccess(feature) {
		return false, domain.UIMessage{}
	}
	required, _ := domain.RequiredTier(feature)
	text := i18n.TF(user.Language, "msg.feature_requires", map[string]string{
		"tier": i18n.T(user.Language, "tier."+string(required)),
	})
	return true, domain.UIMessage{Text: text}
}

// featureForAction сопоставляет действие тарифной фиче.
func featureForAction(key string) string {
	switch {
	case strings.HasPrefix(key, "stocks_fundamentals"):
		return "stocks_fundamentals"
	case strings.HasPrefix(key, "stocks_ratios"):
		return "stocks_ratios"
	case strings.HasPrefix(key, "stocks_dividends"):
		return "stocks_dividends"
	case strings.HasPrefix(key, "stocks_earnings"):
		return "stocks_earnings"
	case strings.HasPrefix(key, "crypto_onchain"):
		return "crypto_onchain"
	case strings.HasPrefix(key, "alert_percent"):
		return "alerts_advanced"
	case strings.HasPrefix(key, "portfolio_pnl"):
		return "portfolio_pnl"
	case strings.HasPrefix(key, "news_project"):
		return "news_project"
	case strings.HasPrefix(key, "education_quiz"):
		return "education_quiz"
	case strings.HasPrefix(key, "admin_"):
		return "admin_panel"
	}
	return ""
}

// dispatch направляет действие обработчику семейства.
func (s *Service) dispatch(ctx context.Context, user domain.User, key, payload string) domain.UIMessage {
	switch {
	case strings.HasPrefix(key, "stocks_") || strings.HasPrefix(key, "etf_"):
		return s.dispatchStocks(ctx, user, key, payload)
	case strings.HasPrefix(key, "forex_"):
		return s.dispatchForex(ctx, user, key, payload)
	case strings.HasPrefix(key, "crypto_"):
		return s.dispatchCrypto(ctx, user, key, payload)
	case strings.HasPrefix(key, "ton_"):
		return s.dispatchTon(ctx, user, key, payload)
	case strings.HasPrefix(key, "nft_"):
		return s.dispatchNFT(ctx, user, key, payload)
	case strings.HasPrefix(key, "portfolio_"):
		return s.dispatchPortfolio(ctx, user, key, payload)
	case strings.HasPrefix(key, "alert"):
		return s.dispatchAlerts(ctx, user, key, payload)
	case strings.HasPrefix(key, "education_"):
		return s.dispatchEducation(user, key, payload)
	case strings.HasPrefix(key, "news_"):
		return s.dispatchNews(ctx, user, key, payload)
	case strings.HasPrefix(key, "sub_"):
		return s.dispatchSubscription(ctx, user, key, payload)
	case strings.HasPrefix(key, "lang_"):
		return s.dispatchLanguage(ctx, user, key, payload)
	case strings.HasPrefix(key, "admin_"):
		return s.dispatchAdmin(ctx, user, key, payload)
	}
	s.log.Warn().Str("action", key).Msg("неизвестное действие")
	return domain.UIMessage{Text: i18n.T(user.Language, "msg.unknown_action")}
}

// WithNav дополняет сообщение без кнопок навигационной строкой.
// Используется обработчиком ожидаемого ввода.
func (s *Service) WithNav(user domain.User, msg domain.UIMessage, backMenu string) domain.UIMessage {
	return s.ensureNav(user, msg, backMenu)
}

// ParentMenu возвращает меню, к которому относится действие или тег ввода.
func ParentMenu(key string) string {
	return backMenuFor(key)
}

// ensureNav дополняет сообщение без кнопок навигационной строкой.
func (s *Service) ensureNav(user domain.User, msg domain.UIMessage, backMenu string) domain.UIMessage {
	if msg.Buttons != nil {
		return msg
	}
	msg.Buttons = [][]domain.Button{navRow(user.Language, backMenu)}
	return msg
}

// navRow собирает строку навигации "назад / главное меню".
func navRow(lang, backMenu string) []domain.Button {
	return []domain.Button{
		{Label: i18n.T(lang, "btn.back"), Action: "menu:" + backMenu},
		{Label: i18n.T(lang, "btn.main_menu"), Action: "menu:main"},
	}
}

// actionBackMenu задаёт родительское меню для действий,
// не выводимых из префикса.
var actionBackMenu = map[string]string{
	"crypto_prices":     "crypto",
	"crypto_top":        "crypto",
	"crypto_find":       "crypto",
	"crypto_dominance":  "crypto",
	"crypto_onchain":    "crypto",
	"stocks_top":        "stocks",
	"stocks_find":       "stocks",
	"stocks_valuation":  "stocks",
	"etf_top":           "etfs",
	"forex_rates":       "forex",
	"forex_top":         "forex",
	"forex_find":        "forex",
	"ton_wallet":        "ton",
	"ton_usernames":     "ton",
	"ton_gifts":         "ton",
	"ton_projects":      "ton",
	"nft_floor":         "nft",
	"nft_collections":   "nft",
	"nft_search":        "nft",
	"alert_price":       "alerts",
	"alert_percent":     "alerts",
	"alerts_list":       "alerts",
	"education_lessons": "education",
	"education_glossary": "education",
	"education_quiz":    "education",
	"news_headlines":    "news",
	"news_project":      "news",
	"portfolio_link_exchange": "sync",
	"portfolio_link_wallet":   "sync",
	"portfolio_import_csv":    "sync",
	"portfolio_export_csv":    "sync",
	"sub_upgrade":       "settings",
	"sub_billing":       "settings",
	"lang_set":          "language",
}

// backMenuFor возвращает меню, в которое ведёт кнопка "назад".
func backMenuFor(key string) string {
	if menu, ok := actionBackMenu[key]; ok {
		return menu
	}
	switch {
	case strings.HasPrefix(key, "portfolio_sync"):
		return "sync"
	case strings.HasPrefix(key, "portfolio_"):
		return "portfolio"
	case strings.HasPrefix(key, "stocks_"):
		return "stocks"
	case strings.HasPrefix(key, "etf_"):
		return "etfs"
	case strings.HasPrefix(key, "forex_"):
		return "forex"
	case strings.HasPrefix(key, "crypto_"):
		return "crypto"
	case strings.HasPrefix(key, "ton_"):
		return "ton"
	case strings.HasPrefix(key, "nft_"):
		return "nft"
	case strings.HasPrefix(key, "alert"):
		return "alerts"
	case strings.HasPrefix(key, "education_"):
		return "education"
	case strings.HasPrefix(key, "news_"):
		return "news"
	case strings.HasPrefix(key, "admin_"):
		return "admin"
	case strings.HasPrefix(key, "sub_"), strings.HasPrefix(key, "lang_"):
		return "settings"
	}
	return "main"
}

func (s *Service) recordAudit(user domain.User, action, metadata string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(domain.AuditEntry{UserID: user.ID, Action: action, Metadata: metadata}); err != nil {
		s.log.Warn().Err(err).Str("action", action).Msg("не удалось записать аудит")
	}
}
