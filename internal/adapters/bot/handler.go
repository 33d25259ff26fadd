package bot

import (
	"context"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"tg-invest-bot/internal/adapters/telegram"
	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/i18n"
	"tg-invest-bot/internal/infra/metrics"
	"tg-invest-bot/internal/infra/ratelimit"
	"tg-invest-bot/internal/usecase/dialog"
	"tg-invest-bot/internal/usecase/router"
)

const platformTelegram = "telegram"

// Handler обслуживает апдейты Telegram: команды, callback-кнопки
// и текст, присланный в ответ на запрос ввода.
type Handler struct {
	bot      *tgbotapi.BotAPI
	log      zerolog.Logger
	router   *router.Service
	dialog   *dialog.Service
	users    domain.UserRepo
	limiter  *ratelimit.Limiter
	sessions *SessionStore
}

// NewHandler создаёт обработчик.
func NewHandler(api *tgbotapi.BotAPI, log zerolog.Logger, routerUC *router.Service, dialogUC *dialog.Service, users domain.UserRepo, limiter *ratelimit.Limiter) *Handler {
	return &Handler{
		bot:      api,
		log:      log,
		router:   routerUC,
		dialog:   dialogUC,
		users:    users,
		limiter:  limiter,
		sessions: NewSessionStore(),
	}
}

// HandleUpdate обрабатывает входящий апдейт.
func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	switch {
	case upd.Message != nil && upd.Message.From != nil:
		h.handleMessage(ctx, upd.Message)
	case upd.CallbackQuery != nil && upd.CallbackQuery.From != nil:
		h.handleCallback(ctx, upd.CallbackQuery)
	}
}

func (h *Handler) resolveUser(from *tgbotapi.User) (domain.User, error) {
	return h.users.UpsertByPlatformID(domain.PlatformProfile{
		Platform:       platformTelegram,
		PlatformUserID: strconv.FormatInt(from.ID, 10),
		Username:       from.UserName,
		Language:       from.LanguageCode,
	})
}

func (h *Handler) allow(chatID int64, user domain.User) bool {
	if h.limiter.Allow(user.PlatformUserID) {
		return true
	}
	metrics.RateLimitedTotal.Inc()
	h.sendText(chatID, i18n.T(user.Language, "msg.rate_limited"))
	return false
}

func (h *Handler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := h.resolveUser(msg.From)
	if err != nil {
		h.log.Error().Err(err).Int64("tg_user", msg.From.ID).Msg("не удалось сохранить профиль")
		return
	}
	if !h.allow(msg.Chat.ID, user) {
		return
	}

	text := strings.TrimSpace(msg.Text)
	if !strings.HasPrefix(text, "/") {
		if tag, ok := h.sessions.Pop(msg.Chat.ID); ok {
			response := h.dialog.Consume(ctx, user, tag, text)
			h.rememberInput(msg.Chat.ID, response)
			h.deleteMessage(msg.Chat.ID, msg.MessageID)
			h.send(msg.Chat.ID, response)
		}
		// Текст вне ожидания ввода игнорируется.
		return
	}

	// Любая команда сбрасывает ожидание ввода.
	h.sessions.Clear(msg.Chat.ID)

	command, arg := splitCommand(text)
	switch command {
	case "/start", "/menu", "/dashboard":
		h.send(msg.Chat.ID, h.router.Menu(ctx, user, "main"))
	case "/price":
		h.handleSymbolCommand(ctx, msg.Chat.ID, user, arg, "stocks_price", "msg.stocks_find", router.InputStocksFind)
	case "/valuation":
		h.handleSymbolCommand(ctx, msg.Chat.ID, user, arg, "stocks_valuation", "msg.stocks_valuation_hint", router.InputStocksFind)
	case "/crypto":
		if arg == "" {
			h.sessions.Set(msg.Chat.ID, router.InputCryptoFind)
			h.sendText(msg.Chat.ID, i18n.T(user.Language, "msg.crypto_find"))
			return
		}
		h.send(msg.Chat.ID, h.router.CryptoAssetView(ctx, user, arg))
	case "/help", "/faq":
		h.send(msg.Chat.ID, h.helpMessage(user))
	default:
		h.send(msg.Chat.ID, h.router.Menu(ctx, user, "main"))
	}
}

func (h *Handler) handleSymbolCommand(ctx context.Context, chatID int64, user domain.User, arg, base, hintKey, inputTag string) {
	if arg == "" {
		h.sessions.Set(chatID, inputTag)
		h.sendText(chatID, i18n.T(user.Language, hintKey))
		return
	}
	h.send(chatID, h.router.StockMetricView(ctx, user, base, arg))
}

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	defer func() {
		start := time.Now()
		_, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, ""))
		metrics.ObserveNetworkRequest("telegram_bot", "answer_callback", strconv.FormatInt(cb.From.ID, 10), start, err)
		if err != nil {
			h.log.Error().Err(err).Msg("не удалось ответить на callback")
		}
	}()

	if cb.Message == nil {
		return
	}
	user, err := h.resolveUser(cb.From)
	if err != nil {
		h.log.Error().Err(err).Int64("tg_user", cb.From.ID).Msg("не удалось сохранить профиль")
		return
	}
	chatID := cb.Message.Chat.ID
	if !h.allow(chatID, user) {
		return
	}

	response := h.router.HandleToken(ctx, user, cb.Data)
	h.rememberInput(chatID, response)

	// Меню редактируется на месте, сообщения с фото отправляются заново.
	if response.Photo == nil && h.edit(chatID, cb.Message.MessageID, response) {
		return
	}
	h.send(chatID, response)
}

// deleteMessage убирает потреблённый ввод из чата. Неудача не критична:
// в группах у бота может не быть права на удаление.
func (h *Handler) deleteMessage(chatID int64, messageID int) {
	if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		h.log.Debug().Err(err).Msg("не удалось удалить сообщение пользователя")
	}
}

func (h *Handler) rememberInput(chatID int64, msg domain.UIMessage) {
	if msg.ExpectInput != "" {
		h.sessions.Set(chatID, msg.ExpectInput)
		return
	}
	h.sessions.Clear(chatID)
}

func (h *Handler) helpMessage(user domain.User) domain.UIMessage {
	return h.router.WithNav(user, domain.UIMessage{
		Text: i18n.T(user.Language, "msg.help"),
	}, "main")
}

func (h *Handler) edit(chatID int64, messageID int, msg domain.UIMessage) bool {
	if len([]rune(msg.Text)) > telegram.MessageLimit {
		return false
	}
	edit := tgbotapi.NewEditMessageText(chatID, messageID, msg.Text)
	edit.ParseMode = msg.ParseMode
	if markup := keyboard(msg.Buttons); markup != nil {
		edit.ReplyMarkup = markup
	}
	start := time.Now()
	_, err := h.bot.Send(edit)
	metrics.ObserveNetworkRequest("telegram_bot", "edit_message", strconv.FormatInt(chatID, 10), start, err)
	if err != nil {
		h.log.Debug().Err(err).Msg("не удалось отредактировать сообщение, отправляем новое")
		return false
	}
	return true
}

func (h *Handler) send(chatID int64, msg domain.UIMessage) {
	markup := keyboard(msg.Buttons)

	if msg.Photo != nil {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "chart.png", Bytes: msg.Photo})
		photo.Caption = msg.Text
		photo.ParseMode = msg.ParseMode
		if markup != nil {
			photo.ReplyMarkup = markup
		}
		start := time.Now()
		_, err := h.bot.Send(photo)
		metrics.ObserveNetworkRequest("telegram_bot", "send_photo", strconv.FormatInt(chatID, 10), start, err)
		if err != nil {
			metrics.BotSendErrors.Inc()
			h.log.Error().Err(err).Msg("не удалось отправить фото")
		}
		return
	}

	parts := telegram.SplitMessage(msg.Text)
	for i, part := range parts {
		out := tgbotapi.NewMessage(chatID, part)
		out.ParseMode = msg.ParseMode
		out.DisableWebPagePreview = true
		if i == len(parts)-1 && markup != nil {
			out.ReplyMarkup = markup
		}
		start := time.Now()
		_, err := h.bot.Send(out)
		metrics.ObserveNetworkRequest("telegram_bot", "send_message", strconv.FormatInt(chatID, 10), start, err)
		if err != nil {
			metrics.BotSendErrors.Inc()
			h.log.Error().Err(err).Msg("не удалось отправить сообщение")
			return
		}
	}
}

func (h *Handler) sendText(chatID int64, text string) {
	h.send(chatID, domain.UIMessage{Text: text})
}

// keyboard переводит платформенно-независимые кнопки в разметку Telegram.
// Действия с префиксами "url:" и "webapp:" становятся кнопками-ссылками.
// Telegram не красит кнопки, поэтому опасные действия помечаются эмодзи.
func keyboard(rows [][]domain.Button) *tgbotapi.InlineKeyboardMarkup {
	if len(rows) == 0 {
		return nil
	}
	keyboardRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			label := buttonLabel(b)
			switch {
			case strings.HasPrefix(b.Action, "url:"):
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(label, strings.TrimPrefix(b.Action, "url:")))
			case strings.HasPrefix(b.Action, "webapp:"):
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(label, strings.TrimPrefix(b.Action, "webapp:")))
			default:
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(label, b.Action))
			}
		}
		keyboardRows = append(keyboardRows, buttons)
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(keyboardRows...)
	return &markup
}

func buttonLabel(b domain.Button) string {
	if domain.InferStyle(b) == domain.StyleDanger && !strings.HasPrefix(b.Label, "❌") {
		return "❌ " + b.Label
	}
	return b.Label
}

func splitCommand(text string) (string, string) {
	command, arg, _ := strings.Cut(text, " ")
	if at := strings.Index(command, "@"); at > 0 {
		command = command[:at]
	}
	return command, strings.TrimSpace(arg)
}

// Notifier доставляет текстовые уведомления пользователям Telegram.
type Notifier struct {
	bot *tgbotapi.BotAPI
	log zerolog.Logger
}

// NewNotifier создаёт доставщика уведомлений.
func NewNotifier(api *tgbotapi.BotAPI, log zerolog.Logger) *Notifier {
	return &Notifier{bot: api, log: log}
}

// Notify отправляет текст пользователю по платформенному идентификатору.
func (n *Notifier) Notify(ctx context.Context, platformUserID, text string) error {
	chatID, err := strconv.ParseInt(platformUserID, 10, 64)
	if err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	start := time.Now()
	_, err = n.bot.Send(msg)
	metrics.ObserveNetworkRequest("telegram_bot", "notify", platformUserID, start, err)
	return err
}
