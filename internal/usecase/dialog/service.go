package dialog

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/i18n"
	"tg-invest-bot/internal/usecase/portfolio"
	"tg-invest-bot/internal/usecase/router"
)

// Deps перечисляет зависимости обработчика диалогового ввода.
type Deps struct {
	Log       zerolog.Logger
	Router    *router.Service
	Portfolio *portfolio.Service
	Users     domain.UserRepo
	Alerts    domain.AlertRepo
	Toggles   domain.FeatureToggleRepo
	Broadcast domain.BroadcastQueue
}

// Service интерпретирует текст пользователя по тегу ожидаемого ввода.
type Service struct {
	log       zerolog.Logger
	router    *router.Service
	portfolio *portfolio.Service
	users     domain.UserRepo
	alerts    domain.AlertRepo
	toggles   domain.FeatureToggleRepo
	broadcast domain.BroadcastQueue
}

// NewService создаёт обработчик диалогового ввода.
func NewService(deps Deps) *Service {
	return &Service{
		log:       deps.Log,
		router:    deps.Router,
		portfolio: deps.Portfolio,
		users:     deps.Users,
		alerts:    deps.Alerts,
		toggles:   deps.Toggles,
		broadcast: deps.Broadcast,
	}
}

// Consume обрабатывает текст, присланный в ответ на запрос ввода.
// Тег определяет интерпретацию, его суффикс после ":" несёт параметр.
func (s *Service) Consume(ctx context.Context, user domain.User, tag, text string) domain.UIMessage {
	tag, param, _ := strings.Cut(tag, ":")
	text = strings.TrimSpace(text)

	switch tag {
	case router.InputStocksFind:
		return s.router.StockMetricView(ctx, user, "stocks_price", text)
	case router.InputCryptoFind:
		return s.router.CryptoAssetView(ctx, user, text)
	case router.InputForexFind:
		return s.router.ForexPairView(ctx, user, text)
	case router.InputNFTSearch:
		return s.router.NFTSearchView(ctx, user, text)
	case router.InputTonWallet:
		return s.router.TonWalletView(ctx, user, text)
	case router.InputTonUsernames:
		return s.router.TonUsernamesView(ctx, user, text)
	case router.InputTonGifts:
		return s.router.TonGiftsView(ctx, user, text)
	case router.InputPortfolioAdd:
		return s.nav(user, tag, s.portfolioAdd(user, "", text))
	case router.InputPortfolioAddDetails:
		return s.nav(user, tag, s.portfolioAdd(user, param, text))
	case router.InputPortfolioRemove:
		return s.nav(user, tag, s.portfolioRemove(user, text))
	case router.InputLinkExchange:
		return s.nav(user, tag, s.linkExchange(user, text))
	case router.InputLinkWallet:
		return s.nav(user, tag, s.linkWallet(user, text))
	case router.InputImportCSV:
		return s.nav(user, tag, s.importCSV(user, text))
	case router.InputAlertPrice:
		return s.nav(user, tag, s.createAlert(user, "price", text))
	case router.InputAlertPercent:
		return s.nav(user, tag, s.createAlert(user, "percent", text))
	case router.InputAdminBroadcast:
		return s.nav(user, tag, s.adminBroadcast(ctx, user, text))
	case router.InputAdminToggle:
		return s.nav(user, tag, s.adminToggle(user, text))
	case router.InputAdminVerify:
		return s.nav(user, tag, s.adminVerify(user, text))
	}

	// Теги вида "<метрика>_symbol" приходят из выбора источника тикера.
	if base, ok := strings.CutSuffix(tag, "_symbol"); ok {
		return s.router.StockMetricView(ctx, user, base, text)
	}

	s.log.Warn().Str("tag", tag).Msg("неизвестный тег ввода")
	return s.nav(user, tag, domain.UIMessage{Text: i18n.T(user.Language, "msg.unknown_action")})
}

func (s *Service) nav(user domain.User, tag string, msg domain.UIMessage) domain.UIMessage {
	return s.router.WithNav(user, msg, router.ParentMenu(tag))
}

// portfolioAdd разбирает "SYMBOL AMOUNT COST" либо, без известного типа,
// "TYPE SYMBOL AMOUNT COST".
func (s *Service) portfolioAdd(user domain.User, assetType, text string) domain.UIMessage {
	lang := user.Language
	fields := strings.Fields(text)
	if assetType == "" {
		if len(fields) < 3 {
			return domain.UIMessage{Text: i18n.T(lang, "msg.asset_invalid")}
		}
		assetType = strings.ToLower(fields[0])
		fields = fields[1:]
	}
	if len(fields) < 2 {
		return domain.UIMessage{Text: i18n.T(lang, "msg.asset_invalid")}
	}

	symbol := strings.ToUpper(fields[0])
	amount, err := parseFloat(fields[1])
	if err != nil || amount <= 0 {
		return domain.UIMessage{Text: i18n.T(lang, "msg.asset_invalid")}
	}
	var cost float64
	if len(fields) > 2 {
		if cost, err = parseFloat(fields[2]); err != nil || cost < 0 {
			return domain.UIMessage{Text: i18n.T(lang, "msg.asset_invalid")}
		}
	}

	if err := s.portfolio.Add(user.ID, assetType, symbol, amount, cost); err != nil {
		s.log.Error().Err(err).Str("symbol", symbol).Msg("не удалось добавить позицию")
		return domain.UIMessage{Text: i18n.T(lang, "msg.asset_invalid")}
	}
	return domain.UIMessage{
		Text: i18n.TF(lang, "msg.asset_added", map[string]string{"symbol": symbol}),
	}
}

func (s *Service) portfolioRemove(user domain.User, text string) domain.UIMessage {
	lang := user.Language
	symbol := strings.ToUpper(strings.TrimSpace(text))
	if symbol == "" {
		return domain.UIMessage{Text: i18n.T(lang, "msg.asset_invalid")}
	}
	count, err := s.portfolio.Remove(user.ID, symbol)
	if err != nil {
		s.log.Error().Err(err).Str("symbol", symbol).Msg("не удалось удалить позицию")
		count = 0
	}
	return domain.UIMessage{
		Text: i18n.TF(lang, "msg.asset_removed", map[string]string{"count": strconv.FormatInt(count, 10)}),
	}
}

func (s *Service) linkExchange(user domain.User, text string) domain.UIMessage {
	lang := user.Language
	link, err := s.portfolio.LinkExchange(user.ID, text)
	switch {
	case errors.Is(err, portfolio.ErrLinkFormat):
		return domain.UIMessage{Text: i18n.T(lang, "msg.sync_exchange_hint")}
	case errors.Is(err, domain.ErrExchangeUnknown):
		provider := ""
		if fields := strings.Fields(text); len(fields) > 0 {
			provider = fields[0]
		}
		return domain.UIMessage{
			Text: i18n.TF(lang, "msg.sync_exchange_unknown", map[string]string{"provider": provider}),
		}
	case err != nil:
		s.log.Error().Err(err).Msg("не удалось привязать биржу")
		return domain.UIMessage{Text: i18n.T(lang, "msg.sync_exchange_failed")}
	}
	return domain.UIMessage{
		Text: i18n.TF(lang, "msg.sync_exchange_added", map[string]string{"label": link.Label}),
	}
}

func (s *Service) linkWallet(user domain.User, text string) domain.UIMessage {
	lang := user.Language
	link, err := s.portfolio.LinkWallet(user.ID, text)
	switch {
	case errors.Is(err, portfolio.ErrLinkFormat):
		return domain.UIMessage{Text: i18n.T(lang, "msg.sync_wallet_hint")}
	case errors.Is(err, domain.ErrExchangeUnknown):
		provider := ""
		if fields := strings.Fields(text); len(fields) > 0 {
			provider = fields[0]
		}
		return domain.UIMessage{
			Text: i18n.TF(lang, "msg.sync_wallet_unknown", map[string]string{"provider": provider}),
		}
	case err != nil:
		s.log.Error().Err(err).Msg("не удалось привязать кошелёк")
		return domain.UIMessage{Text: i18n.T(lang, "msg.sync_exchange_failed")}
	}
	return domain.UIMessage{
		Text: i18n.TF(lang, "msg.sync_wallet_added", map[string]string{"label": link.Label}),
	}
}

func (s *Service) importCSV(user domain.User, text string) domain.UIMessage {
	lang := user.Language
	count, err := s.portfolio.ImportCSV(user.ID, text)
	if errors.Is(err, portfolio.ErrInvalidCSV) {
		return domain.UIMessage{Text: i18n.T(lang, "msg.invalid_csv")}
	}
	if err != nil {
		s.log.Error().Err(err).Msg("импорт CSV не удался")
		return domain.UIMessage{Text: i18n.T(lang, "msg.invalid_csv")}
	}
	return domain.UIMessage{
		Text: i18n.TF(lang, "msg.import_csv_done", map[string]string{"count": strconv.Itoa(count)}),
	}
}

// createAlert разбирает "TYPE SYMBOL VALUE".
func (s *Service) createAlert(user domain.User, condition, text string) domain.UIMessage {
	lang := user.Language
	invalidKey := "msg.alert_price_invalid"
	createdKey := "msg.alert_price_created"
	if condition == "percent" {
		invalidKey = "msg.alert_percent_invalid"
		createdKey = "msg.alert_percent_created"
	}

	fields := strings.Fields(text)
	if len(fields) != 3 {
		return domain.UIMessage{Text: i18n.T(lang, invalidKey)}
	}
	target, err := parseFloat(fields[2])
	if err != nil || target <= 0 {
		return domain.UIMessage{Text: i18n.T(lang, invalidKey)}
	}

	_, err = s.alerts.Create(domain.Alert{
		UserID:      user.ID,
		AssetType:   strings.ToLower(fields[0]),
		Symbol:      strings.ToUpper(fields[1]),
		Condition:   condition,
		TargetValue: target,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("не удалось создать алерт")
		return domain.UIMessage{Text: i18n.T(lang, invalidKey)}
	}
	return domain.UIMessage{Text: i18n.T(lang, createdKey)}
}

func (s *Service) adminBroadcast(ctx context.Context, user domain.User, text string) domain.UIMessage {
	lang := user.Language
	if !user.IsAdmin {
		return domain.UIMessage{Text: i18n.T(lang, "msg.admin_required")}
	}
	if text == "" {
		return domain.UIMessage{Text: i18n.T(lang, "msg.broadcast_hint")}
	}
	job := domain.BroadcastJob{
		ID:          uuid.NewString(),
		Platform:    user.Platform,
		Text:        text,
		RequestedBy: user.ID,
		RequestedAt: time.Now().UTC(),
	}
	if err := s.broadcast.Enqueue(ctx, job); err != nil {
		s.log.Error().Err(err).Msg("не удалось поставить рассылку в очередь")
		return domain.UIMessage{Text: i18n.T(lang, "msg.unknown_action")}
	}
	return domain.UIMessage{Text: i18n.T(lang, "msg.broadcast_queued")}
}

func (s *Service) adminToggle(user domain.User, text string) domain.UIMessage {
	lang := user.Language
	if !user.IsAdmin {
		return domain.UIMessage{Text: i18n.T(lang, "msg.admin_required")}
	}
	feature := strings.ToLower(strings.TrimSpace(text))
	if feature == "" {
		return domain.UIMessage{Text: i18n.T(lang, "msg.feature_toggle_hint")}
	}
	enabled, err := s.toggles.Toggle(feature)
	if err != nil {
		s.log.Error().Err(err).Str("feature", feature).Msg("не удалось переключить фичу")
		return domain.UIMessage{Text: i18n.T(lang, "msg.feature_toggle_hint")}
	}
	state := "off"
	if enabled {
		state = "on"
	}
	return domain.UIMessage{
		Text: i18n.TF(lang, "msg.feature_toggled", map[string]string{
			"feature": feature + " → " + state,
		}),
	}
}

// adminVerify разбирает "USER_ID BADGE" и выставляет значок профиля.
func (s *Service) adminVerify(user domain.User, text string) domain.UIMessage {
	lang := user.Language
	if !user.IsAdmin {
		return domain.UIMessage{Text: i18n.T(lang, "msg.admin_required")}
	}
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return domain.UIMessage{Text: i18n.T(lang, "msg.verify_hint")}
	}
	badge, ok := domain.NormalizeBadge(fields[1])
	if !ok {
		return domain.UIMessage{Text: i18n.T(lang, "msg.verify_invalid")}
	}
	updated, err := s.users.UpdateBadge(user.Platform, fields[0], badge)
	if err != nil {
		s.log.Error().Err(err).Str("target", fields[0]).Msg("не удалось обновить бейдж")
		updated = false
	}
	if !updated {
		return domain.UIMessage{Text: i18n.T(lang, "msg.verify_invalid")}
	}
	return domain.UIMessage{
		Text: i18n.TF(lang, "msg.verify_done", map[string]string{"badge": string(badge)}),
	}
}

func parseFloat(raw string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""), 64)
}
