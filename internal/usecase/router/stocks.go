package router

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/i18n"
)

var stockTopSymbols = []string{
	"AAPL", "MSFT", "NVDA", "AMZN", "GOOGL", "META", "TSLA", "JPM",
	"V", "UNH", "BRK.B", "XOM", "AVGO", "COST", "LLY",
}

var etfTopSymbols = []string{"SPY", "QQQ", "VTI", "IWM", "DIA", "XLK", "XLF", "XLV"}

// metricBases перечисляет действия, открывающие выбор тикера.
var metricBases = []string{
	"stocks_price",
	"stocks_fundamentals",
	"stocks_ratios",
	"stocks_earnings",
	"stocks_dividends",
	"stocks_valuation",
}

var stockAssetTypes = map[string]struct{}{
	"stock": {}, "stocks": {}, "equity": {}, "etf": {}, "fund": {}, "funds": {},
}

func (s *Service) dispatchStocks(ctx context.Context, user domain.User, key, payload string) domain.UIMessage {
	lang := user.Language
	switch key {
	case "stocks_top":
		rows := s.fetchQuoteRows(ctx, stockTopSymbols)
		return s.quoteListView(lang, "stocks_top", "section.stocks_top", rows, payload, "popular", 8, true, nil)
	case "etf_top":
		rows := s.fetchQuoteRows(ctx, etfTopSymbols)
		describe := func(symbol string) string {
			return i18n.T(lang, "fund."+strings.ToLower(symbol))
		}
		return s.quoteListView(lang, "etf_top", "section.funds_top", rows, payload, "gainers", 8, true, describe)
	case "stocks_find":
		return domain.UIMessage{
			Text:        i18n.T(lang, "msg.stocks_find"),
			ExpectInput: InputStocksFind,
		}
	}

	for _, base := range metricBases {
		switch key {
		case base:
			return s.stockSourceMenu(user, base)
		case base + "_portfolio":
			return s.stockPortfolioPicker(user, base, payload)
		case base + "_symbol":
			return s.stockMetricView(ctx, user, base, payload)
		case base + "_enter":
			hint := "msg.stocks_find"
			if base == "stocks_valuation" {
				hint = "msg.stocks_valuation_hint"
			}
			return domain.UIMessage{
				Text:        i18n.T(lang, hint),
				ExpectInput: base + "_symbol",
			}
		}
	}
	return domain.UIMessage{Text: i18n.T(lang, "msg.unknown_action")}
}

// stockSourceMenu предлагает взять тикер из портфеля или ввести вручную.
func (s *Service) stockSourceMenu(user domain.User, base string) domain.UIMessage {
	lang := user.Language
	rows := [][]domain.Button{
		{
			btn(lang, "btn.from_portfolio", "action:"+base+"_portfolio:1"),
			btn(lang, "btn.enter_ticker", "action:"+base+"_enter"),
		},
		navRow(lang, backMenuFor(base)),
	}
	return domain.UIMessage{Text: i18n.T(lang, "msg.choose_stock_source"), Buttons: rows}
}

// stockPortfolioPicker показывает тикеры акций и фондов из портфеля.
func (s *Service) stockPortfolioPicker(user domain.User, base, payload string) domain.UIMessage {
	lang := user.Language
	items, err := s.portfolio.List(user.ID)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("не удалось получить портфель")
		return domain.UIMessage{Text: i18n.T(lang, "msg.no_stock_holdings")}
	}

	seen := make(map[string]struct{})
	var symbols []string
	for _, item := range items {
		if _, ok := stockAssetTypes[strings.ToLower(item.AssetType)]; !ok {
			continue
		}
		symbol := strings.ToUpper(item.Symbol)
		if _, ok := seen[symbol]; ok {
			continue
		}
		seen[symbol] = struct{}{}
		symbols = append(symbols, symbol)
	}
	if len(symbols) == 0 {
		return domain.UIMessage{Text: i18n.T(lang, "msg.no_stock_holdings")}
	}

	page := 1
	if parsed, err := strconv.Atoi(strings.TrimSpace(payload)); err == nil && parsed >= 1 {
		page = parsed
	}
	pageSymbols, page, totalPages := domain.Paginate(symbols, page, 8)

	var rows [][]domain.Button
	for i := 0; i < len(pageSymbols); i += 2 {
		row := []domain.Button{{Label: pageSymbols[i], Action: "action:" + base + "_symbol:" + pageSymbols[i]}}
		if i+1 < len(pageSymbols) {
			row = append(row, domain.Button{Label: pageSymbols[i+1], Action: "action:" + base + "_symbol:" + pageSymbols[i+1]})
		}
		rows = append(rows, row)
	}
	var nav []domain.Button
	if page > 1 {
		nav = append(nav, btn(lang, "btn.prev", fmt.Sprintf("action:%s_portfolio:%d", base, page-1)))
	}
	if page < totalPages {
		nav = append(nav, btn(lang, "btn.next", fmt.Sprintf("action:%s_portfolio:%d", base, page+1)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, navRow(lang, backMenuFor(base)))

	text := i18n.TF(lang, "msg.choose_stock", map[string]string{"count": strconv.Itoa(len(symbols))})
	return domain.UIMessage{Text: text, Buttons: rows}
}

// StockMetricView строит представление метрики для введённого тикера.
func (s *Service) StockMetricView(ctx context.Context, user domain.User, base, symbol string) domain.UIMessage {
	return s.ensureNav(user, s.stockMetricView(ctx, user, base, symbol), backMenuFor(base))
}

func (s *Service) stockMetricView(ctx context.Context, user domain.User, base, input string) domain.UIMessage {
	fields := strings.Fields(strings.TrimSpace(input))
	if len(fields) == 0 {
		return domain.UIMessage{Text: i18n.T(user.Language, "msg.stocks_find")}
	}
	symbol := strings.ToUpper(fields[0])

	switch base {
	case "stocks_price":
		return s.stockPriceView(ctx, user, symbol)
	case "stocks_fundamentals":
		return s.stockFundamentalsView(ctx, user, symbol)
	case "stocks_ratios":
		return s.stockRatiosView(ctx, user, symbol)
	case "stocks_earnings":
		return s.stockEarningsView(ctx, user, symbol)
	case "stocks_dividends":
		return s.stockDividendsView(ctx, user, symbol)
	case "stocks_valuation":
		return s.stockValuationView(ctx, user, symbol)
	}
	return domain.UIMessage{Text: i18n.T(user.Language, "msg.unknown_action")}
}

func (s *Service) stockPriceView(ctx context.Context, user domain.User, symbol string) domain.UIMessage {
	lang := user.Language
	quote, err := s.stocks.Quote(ctx, symbol)
	if err != nil || quote.Price == nil {
		return domain.UIMessage{Text: i18n.TF(lang, "msg.quote_not_found", map[string]string{"symbol": symbol})}
	}

	lines := []string{
		kv(i18n.T(lang, "label.price"), fmtPrice(quote.Price)),
		kv(i18n.T(lang, "label.change"), fmtNum(quote.Change, "$", "")+" ("+fmtPct(quote.ChangePct)+")"),
		kv(i18n.T(lang, "label.prev_close"), fmtPrice(quote.PrevClose)),
		kv(i18n.T(lang, "label.high"), fmtPrice(quote.High)),
		kv(i18n.T(lang, "label.low"), fmtPrice(quote.Low)),
		kv(i18n.T(lang, "label.volume"), fmtVolume(quote.Volume)),
	}
	return domain.UIMessage{
		Text:      section(symbol, strings.Join(lines, "\n")),
		ParseMode: "Markdown",
	}
}

func metricLine(lang, labelKey, hintKey, value string) string {
	line := kv(i18n.T(lang, labelKey), value)
	if hintKey != "" {
		line += "\n   _" + i18n.T(lang, hintKey) + "_"
	}
	return line
}

func (s *Service) stockFundamentalsView(ctx context.Context, user domain.User, symbol string) domain.UIMessage {
	lang := user.Language
	metricsData, err := s.stocks.Metrics(ctx, symbol)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("не удалось получить фундаментал")
	}

	rangeValue := fmtPrice(metricsData.Low52W) + " – " + fmtPrice(metricsData.High52W)
	lines := []string{
		metricLine(lang, "label.market_cap", "hint.market_cap", fmtCap(metricsData.MarketCap)),
		metricLine(lang, "label.eps", "hint.eps", fmtNum(metricsData.EPSTTM, "$", "")),
		metricLine(lang, "label.dividend_yield", "hint.dividend", fmtPct(metricsData.DividendYield)),
		metricLine(lang, "label.high_52w", "hint.range_52w", rangeValue),
		metricLine(lang, "label.beta", "hint.beta", fmtNum(metricsData.Beta, "", "")),
	}
	title := symbol + " · " + i18n.T(lang, "section.fundamentals")
	return domain.UIMessage{
		Text:      section(title, strings.Join(lines, "\n")),
		ParseMode: "Markdown",
	}
}

func (s *Service) stockRatiosView(ctx context.Context, user domain.User, symbol string) domain.UIMessage {
	lang := user.Language
	metricsData, err := s.stocks.Metrics(ctx, symbol)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("не удалось получить коэффициенты")
	}

	lines := []string{
		metricLine(lang, "label.pe", "hint.pe", fmtNum(metricsData.PENormalized, "", "")),
		metricLine(lang, "label.pb", "hint.pb", fmtNum(metricsData.PB, "", "")),
		metricLine(lang, "label.roe", "hint.roe", fmtPct(metricsData.ROE)),
		metricLine(lang, "label.debt_to_equity", "hint.debt_to_equity", fmtNum(metricsData.DebtToEquity, "", "")),
		metricLine(lang, "label.current_ratio", "hint.current_ratio", fmtNum(metricsData.CurrentRatio, "", "")),
	}
	return domain.UIMessage{
		Text:      section(symbol, strings.Join(lines, "\n")),
		ParseMode: "Markdown",
	}
}

func (s *Service) stockEarningsView(ctx context.Context, user domain.User, symbol string) domain.UIMessage {
	lang := user.Language
	reports, err := s.stocks.Earnings(ctx, symbol)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("не удалось получить отчётность")
	}
	if len(reports) == 0 {
		return domain.UIMessage{Text: i18n.T(lang, "msg.earnings_empty")}
	}

	lines := make([]string, 0, len(reports))
	for _, report := range reports {
		eps := report.EPSActual
		if eps == nil {
			eps = report.EPSEstimate
		}
		line := fmt.Sprintf("• %s — EPS %s", report.Period, fmtNum(eps, "$", ""))
		if report.SurprisePct != nil {
			line += " (" + fmtPct(report.SurprisePct) + ")"
		}
		lines = append(lines, line)
	}
	title := symbol + " · " + i18n.T(lang, "section.earnings")
	return domain.UIMessage{
		Text:      section(title, strings.Join(lines, "\n")),
		ParseMode: "Markdown",
	}
}

func (s *Service) stockDividendsView(ctx context.Context, user domain.User, symbol string) domain.UIMessage {
	lang := user.Language
	now := time.Now()
	payments, err := s.stocks.Dividends(ctx, symbol, now.AddDate(-1, 0, 0), now.AddDate(1, 0, 0))
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("не удалось получить дивиденды")
	}
	if len(payments) == 0 {
		return domain.UIMessage{Text: i18n.T(lang, "msg.dividends_empty")}
	}

	lines := make([]string, 0, len(payments))
	for _, payment := range payments {
		lines = append(lines, fmt.Sprintf("• %s — %s", payment.ExDate, fmtNum(payment.Amount, "$", "")))
	}
	title := symbol + " · " + i18n.T(lang, "section.dividends")
	return domain.UIMessage{
		Text:      section(title, strings.Join(lines, "\n")),
		ParseMode: "Markdown",
	}
}

func (s *Service) stockValuationView(ctx context.Context, user domain.User, symbol string) domain.UIMessage {
	lang := user.Language
	quote, err := s.stocks.Quote(ctx, symbol)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("не удалось получить котировку")
	}
	metricsData, err := s.stocks.Metrics(ctx, symbol)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("не удалось получить фундаментал")
	}

	intrinsic, growthNote := grahamValue(metricsData.EPSTTM, metricsData.EPSGrowth3Y)
	margin := marginOfSafety(intrinsic, quote.Price)

	lines := []string{
		kv(i18n.T(lang, "label.price"), fmtPrice(quote.Price)),
		kv(i18n.T(lang, "label.eps"), fmtNum(metricsData.EPSTTM, "$", "")),
		kv(i18n.T(lang, "label.graham_value"), fmtPrice(intrinsic)),
		kv(i18n.T(lang, "label.growth_used"), growthNote),
		kv(i18n.T(lang, "label.margin_safety"), fmtPct(margin)),
	}
	body := strings.Join(lines, "\n")

	if sentiment, err := s.stocks.Sentiment(ctx, symbol); err == nil {
		community := []string{
			"Reddit: " + kvSentiment(lang, sentiment.RedditScore, sentiment.RedditMentions, sentiment.RedditPositive, sentiment.RedditNegative),
			"Twitter: " + kvSentiment(lang, sentiment.TwitterScore, sentiment.TwitterMentions, sentiment.TwitterPositive, sentiment.TwitterNegative),
		}
		body += "\n\n" + section(i18n.T(lang, "section.community"), strings.Join(community, "\n"))
	}

	title := symbol + " · " + i18n.T(lang, "section.valuation")
	return domain.UIMessage{
		Text:      section(title, body),
		ParseMode: "Markdown",
	}
}

func kvSentiment(lang string, score *float64, mentions, positive, negative int) string {
	return fmt.Sprintf("%s %s · %s %d · %s %d/%d",
		i18n.T(lang, "label.score"), fmtNum(score, "", ""),
		i18n.T(lang, "label.mentions"), mentions,
		i18n.T(lang, "label.pos_neg"), positive, negative)
}

// fetchQuoteRows загружает котировки, сохраняя порядок символов.
func (s *Service) fetchQuoteRows(ctx context.Context, symbols []string) []quoteRow {
	quotes, err := s.stocks.Quotes(ctx, symbols)
	if err != nil {
		s.log.Warn().Err(err).Msg("не удалось получить котировки")
		quotes = map[string]domain.Quote{}
	}
	rows := make([]quoteRow, 0, len(symbols))
	for _, symbol := range symbols {
		quote, ok := quotes[symbol]
		if !ok {
			quote = domain.Quote{Symbol: symbol}
		}
		rows = append(rows, quoteRow{Symbol: symbol, Quote: quote})
	}
	return rows
}
