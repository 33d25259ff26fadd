package router

import (
	"context"
	"strings"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/i18n"
)

var forexTopPairs = []string{"EUR/USD", "GBP/USD", "USD/JPY", "USD/CHF", "AUD/USD"}

func (s *Service) dispatchForex(ctx context.Context, user domain.User, key, payload string) domain.UIMessage {
	lang := user.Language
	switch key {
	case "forex_rates", "forex_top":
		return s.forexTopView(ctx, user, key, payload)
	case "forex_find":
		return domain.UIMessage{
			Text:        i18n.T(lang, "msg.forex_find"),
			ExpectInput: InputForexFind,
		}
	}
	return domain.UIMessage{Text: i18n.T(lang, "msg.unknown_action")}
}

// forexTopView показывает курсы основных пар. Сортировка по объёму
// недоступна: провайдер не отдаёт объёмы.
func (s *Service) forexTopView(ctx context.Context, user domain.User, action, payload string) domain.UIMessage {
	lang := user.Language
	quotes, err := s.forex.Pairs(ctx, forexTopPairs)
	if err != nil {
		s.log.Warn().Err(err).Msg("не удалось получить валютные курсы")
		quotes = map[string]domain.ForexQuote{}
	}

	rows := make([]quoteRow, 0, len(forexTopPairs))
	for _, pair := range forexTopPairs {
		quote := quotes[pair]
		rows = append(rows, quoteRow{Symbol: pair, Quote: domain.Quote{
			Symbol:    pair,
			Price:     quote.Rate,
			ChangePct: quote.ChangePct,
		}})
	}

	sortMode, page := parseSortPage(payload, "gainers")
	sorted := sortQuotes(rows, sortMode)
	pageRows, page, totalPages := domain.Paginate(sorted, page, 6)

	lines := make([]string, 0, len(pageRows))
	for _, row := range pageRows {
		lines = append(lines, "• *"+row.Symbol+"* "+fmtRate(row.Quote.Price)+" ("+fmtPct(row.Quote.ChangePct)+")")
	}

	var buttons [][]domain.Button
	if sorts := sortButtons(lang, action, sortMode, false); len(sorts) > 0 {
		buttons = append(buttons, sorts)
	}
	if pages := pageButtons(lang, action, sortMode, page, totalPages); len(pages) > 0 {
		buttons = append(buttons, pages)
	}
	buttons = append(buttons, navRow(lang, "forex"))

	return domain.UIMessage{
		Text:      section(i18n.T(lang, "section.rates"), strings.Join(lines, "\n")),
		Buttons:   buttons,
		ParseMode: "Markdown",
	}
}

// ForexPairView строит карточку валютной пары по введённому запросу.
func (s *Service) ForexPairView(ctx context.Context, user domain.User, input string) domain.UIMessage {
	return s.ensureNav(user, s.forexPairView(ctx, user, input), "forex")
}

func (s *Service) forexPairView(ctx context.Context, user domain.User, input string) domain.UIMessage {
	lang := user.Language
	fields := strings.Fields(strings.TrimSpace(input))
	if len(fields) == 0 {
		return domain.UIMessage{Text: i18n.T(lang, "msg.forex_find")}
	}

	quote, err := s.forex.Pair(ctx, fields[0])
	if err != nil || quote.Rate == nil {
		return domain.UIMessage{Text: i18n.T(lang, "msg.forex_not_found")}
	}

	lines := []string{
		kv(i18n.T(lang, "label.rate"), fmtRate(quote.Rate)),
		kv(i18n.T(lang, "label.change"), fmtPct(quote.ChangePct)),
		kv(i18n.T(lang, "label.open"), fmtRate(quote.Open)),
		kv(i18n.T(lang, "label.high"), fmtRate(quote.High)),
		kv(i18n.T(lang, "label.low"), fmtRate(quote.Low)),
		kv(i18n.T(lang, "label.prev_close"), fmtRate(quote.PrevClose)),
	}
	return domain.UIMessage{
		Text:      section(quote.Pair, strings.Join(lines, "\n")),
		ParseMode: "Markdown",
	}
}
