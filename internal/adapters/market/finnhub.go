package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tg-invest-bot/internal/domain"
)

const finnhubBase = "https://finnhub.io/api/v1"

// Finnhub предоставляет данные по акциям и ETF. Без API-ключа адаптер
// возвращает пустые структуры с nil-полями.
type Finnhub struct {
	key    string
	base   string
	client *http.Client
	cache  domain.Cache
}

// NewFinnhub создаёт клиент Finnhub.
func NewFinnhub(key string, cache domain.Cache) *Finnhub {
	return &Finnhub{
		key:    key,
		base:   finnhubBase,
		client: &http.Client{Timeout: defaultTimeout},
		cache:  cache,
	}
}

var _ domain.StockMarket = (*Finnhub)(nil)

func (f *Finnhub) url(endpoint string, params url.Values) string {
	params.Set("token", f.key)
	return f.base + endpoint + "?" + params.Encode()
}

// Quote реализует domain.StockMarket.
func (f *Finnhub) Quote(ctx context.Context, symbol string) (domain.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	quote := domain.Quote{Symbol: symbol}
	if f.key == "" {
		return quote, nil
	}

	if cached, ok := f.cachedQuote(symbol); ok {
		return cached, nil
	}

	var raw struct {
		Current   float64 `json:"c"`
		Change    float64 `json:"d"`
		ChangePct float64 `json:"dp"`
		High      float64 `json:"h"`
		Low       float64 `json:"l"`
		PrevClose float64 `json:"pc"`
	}
	if err := getJSON(ctx, f.client, "finnhub", "quote", symbol, f.url("/quote", url.Values{"symbol": {symbol}}), nil, &raw); err != nil {
		return domain.Quote{}, err
	}
	if raw.Current == 0 && raw.PrevClose == 0 {
		return quote, nil
	}
	quote.Price = ptr(raw.Current)
	quote.Change = ptr(raw.Change)
	quote.ChangePct = ptr(raw.ChangePct)
	quote.High = nonZero(raw.High)
	quote.Low = nonZero(raw.Low)
	quote.PrevClose = nonZero(raw.PrevClose)
	quote.Volume = f.lastVolume(ctx, symbol)

	f.storeQuote(quote)
	return quote, nil
}

// lastVolume берёт объём из последней дневной свечи.
func (f *Finnhub) lastVolume(ctx context.Context, symbol string) *float64 {
	now := time.Now()
	params := url.Values{
		"symbol":     {symbol},
		"resolution": {"D"},
		"from":       {fmt.Sprintf("%d", now.Add(-7*24*time.Hour).Unix())},
		"to":         {fmt.Sprintf("%d", now.Unix())},
	}
	var raw struct {
		Status  string    `json:"s"`
		Volumes []float64 `json:"v"`
	}
	if err := getJSON(ctx, f.client, "finnhub", "candle", symbol, f.url("/stock/candle", params), nil, &raw); err != nil {
		return nil
	}
	if raw.Status != "ok" || len(raw.Volumes) == 0 {
		return nil
	}
	return ptr(raw.Volumes[len(raw.Volumes)-1])
}

// Quotes реализует domain.StockMarket.
func (f *Finnhub) Quotes(ctx context.Context, symbols []string) (map[string]domain.Quote, error) {
	quotes := make(map[string]domain.Quote, len(symbols))
	for _, symbol := range symbols {
		quote, err := f.Quote(ctx, symbol)
		if err != nil {
			quote = domain.Quote{Symbol: strings.ToUpper(strings.TrimSpace(symbol))}
		}
		quotes[quote.Symbol] = quote
	}
	return quotes, nil
}

// Metrics реализует domain.StockMarket.
func (f *Finnhub) Metrics(ctx context.Context, symbol string) (domain.StockMetrics, error) {
	if f.key == "" {
		return domain.StockMetrics{}, nil
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	var raw struct {
		Metric struct {
			MarketCap     *float64 `json:"marketCapitalization"`
			EPSTTM        *float64 `json:"epsTTM"`
			EPSGrowth3Y   *float64 `json:"epsGrowth3Y"`
			EPSGrowth5Y   *float64 `json:"epsGrowth5Y"`
			PENormalized  *float64 `json:"peNormalizedAnnual"`
			PEBasic       *float64 `json:"peBasicExclExtraTTM"`
			PB            *float64 `json:"pbAnnual"`
			PS            *float64 `json:"psAnnual"`
			ROE           *float64 `json:"roeTTM"`
			DebtToEquity  *float64 `json:"totalDebtToEquityAnnual"`
			CurrentRatio  *float64 `json:"currentRatioAnnual"`
			Beta          *float64 `json:"beta"`
			DividendYield *float64 `json:"dividendYieldIndicatedAnnual"`
			High52W       *float64 `json:"52WeekHigh"`
			Low52W        *float64 `json:"52WeekLow"`
		} `json:"metric"`
	}
	params := url.Values{"symbol": {symbol}, "metric": {"all"}}
	if err := getJSON(ctx, f.client, "finnhub", "metrics", symbol, f.url("/stock/metric", params), nil, &raw); err != nil {
		return domain.StockMetrics{}, err
	}

	m := domain.StockMetrics{
		MarketCap:     raw.Metric.MarketCap,
		EPSTTM:        raw.Metric.EPSTTM,
		EPSGrowth3Y:   raw.Metric.EPSGrowth3Y,
		PENormalized:  raw.Metric.PENormalized,
		PB:            raw.Metric.PB,
		PS:            raw.Metric.PS,
		ROE:           raw.Metric.ROE,
		DebtToEquity:  raw.Metric.DebtToEquity,
		CurrentRatio:  raw.Metric.CurrentRatio,
		Beta:          raw.Metric.Beta,
		DividendYield: raw.Metric.DividendYield,
		High52W:       raw.Metric.High52W,
		Low52W:        raw.Metric.Low52W,
	}
	if m.EPSGrowth3Y == nil {
		m.EPSGrowth3Y = raw.Metric.EPSGrowth5Y
	}
	if m.PENormalized == nil {
		m.PENormalized = raw.Metric.PEBasic
	}
	// Капитализация приходит в миллионах долларов.
	if m.MarketCap != nil {
		m.MarketCap = ptr(*m.MarketCap * 1e6)
	}
	return m, nil
}

// Profile реализует domain.StockMarket.
func (f *Finnhub) Profile(ctx context.Context, symbol string) (domain.CompanyProfile, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	profile := domain.CompanyProfile{Symbol: symbol}
	if f.key == "" {
		return profile, nil
	}

	var raw struct {
		Name     string `json:"name"`
		Exchange string `json:"exchange"`
		Industry string `json:"finnhubIndustry"`
		Country  string `json:"country"`
		IPO      string `json:"ipo"`
		WebURL   string `json:"weburl"`
	}
	if err := getJSON(ctx, f.client, "finnhub", "profile", symbol, f.url("/stock/profile2", url.Values{"symbol": {symbol}}), nil, &raw); err != nil {
		return domain.CompanyProfile{}, err
	}
	profile.Name = raw.Name
	profile.Exchange = raw.Exchange
	profile.Industry = raw.Industry
	profile.Country = raw.Country
	profile.IPO = raw.IPO
	profile.WebURL = raw.WebURL
	return profile, nil
}

// Dividends реализует domain.StockMarket.
func (f *Finnhub) Dividends(ctx context.Context, symbol string, from, to time.Time) ([]domain.DividendPayment, error) {
	if f.key == "" {
		return nil, nil
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	params := url.Values{
		"symbol": {symbol},
		"from":   {from.Format("2006-01-02")},
		"to":     {to.Format("2006-01-02")},
	}
	var raw []struct {
		ExDate string   `json:"exDate"`
		Amount *float64 `json:"amount"`
	}
	if err := getJSON(ctx, f.client, "finnhub", "dividends", symbol, f.url("/stock/dividend", params), nil, &raw); err != nil {
		return nil, err
	}
	payments := make([]domain.DividendPayment, 0, len(raw))
	for _, item := range raw {
		payments = append(payments, domain.DividendPayment{ExDate: item.ExDate, Amount: item.Amount})
		if len(payments) == 5 {
			break
		}
	}
	return payments, nil
}

// Earnings реализует domain.StockMarket.
func (f *Finnhub) Earnings(ctx context.Context, symbol string) ([]domain.EarningsReport, error) {
	if f.key == "" {
		return nil, nil
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	now := time.Now()
	params := url.Values{
		"symbol": {symbol},
		"from":   {now.AddDate(-1, 0, 0).Format("2006-01-02")},
		"to":     {now.AddDate(1, 0, 0).Format("2006-01-02")},
	}
	var raw struct {
		Calendar []struct {
			Date        string   `json:"date"`
			EPSActual   *float64 `json:"epsActual"`
			EPSEstimate *float64 `json:"epsEstimate"`
		} `json:"earningsCalendar"`
	}
	if err := getJSON(ctx, f.client, "finnhub", "earnings", symbol, f.url("/calendar/earnings", params), nil, &raw); err != nil {
		return nil, err
	}
	reports := make([]domain.EarningsReport, 0, len(raw.Calendar))
	for _, item := range raw.Calendar {
		report := domain.EarningsReport{
			Period:      item.Date,
			EPSActual:   item.EPSActual,
			EPSEstimate: item.EPSEstimate,
		}
		if item.EPSActual != nil && item.EPSEstimate != nil && *item.EPSEstimate != 0 {
			report.SurprisePct = ptr((*item.EPSActual - *item.EPSEstimate) / *item.EPSEstimate * 100)
		}
		reports = append(reports, report)
		if len(reports) == 5 {
			break
		}
	}
	return reports, nil
}

// Search реализует domain.StockMarket.
func (f *Finnhub) Search(ctx context.Context, query string) ([]domain.SymbolMatch, error) {
	if f.key == "" {
		return nil, nil
	}

	var raw struct {
		Result []struct {
			Symbol      string `json:"symbol"`
			Description string `json:"description"`
			Type        string `json:"type"`
		} `json:"result"`
	}
	if err := getJSON(ctx, f.client, "finnhub", "search", query, f.url("/search", url.Values{"q": {query}}), nil, &raw); err != nil {
		return nil, err
	}
	matches := make([]domain.SymbolMatch, 0, len(raw.Result))
	for _, item := range raw.Result {
		matches = append(matches, domain.SymbolMatch{
			Symbol:      item.Symbol,
			Description: item.Description,
			Type:        item.Type,
		})
	}
	return matches, nil
}

// Sentiment реализует domain.StockMarket.
func (f *Finnhub) Sentiment(ctx context.Context, symbol string) (domain.SocialSentiment, error) {
	if f.key == "" {
		return domain.SocialSentiment{}, nil
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	params := url.Values{
		"symbol": {symbol},
		"from":   {time.Now().Add(-7 * 24 * time.Hour).Format("2006-01-02")},
	}
	var raw struct {
		Reddit  []mention `json:"reddit"`
		Twitter []mention `json:"twitter"`
	}
	if err := getJSON(ctx, f.client, "finnhub", "sentiment", symbol, f.url("/stock/social-sentiment", params), nil, &raw); err != nil {
		return domain.SocialSentiment{}, err
	}

	var sentiment domain.SocialSentiment
	sentiment.RedditMentions, sentiment.RedditScore, sentiment.RedditPositive, sentiment.RedditNegative = foldMentions(raw.Reddit)
	sentiment.TwitterMentions, sentiment.TwitterScore, sentiment.TwitterPositive, sentiment.TwitterNegative = foldMentions(raw.Twitter)
	return sentiment, nil
}

type mention struct {
	Mention  int     `json:"mention"`
	Score    float64 `json:"score"`
	Positive int     `json:"positiveMention"`
	Negative int     `json:"negativeMention"`
}

func foldMentions(items []mention) (int, *float64, int, int) {
	if len(items) == 0 {
		return 0, nil, 0, 0
	}
	var mentions, positive, negative int
	var scoreSum float64
	for _, item := range items {
		mentions += item.Mention
		positive += item.Positive
		negative += item.Negative
		scoreSum += item.Score
	}
	avg := scoreSum / float64(len(items))
	return mentions, &avg, positive, negative
}

func (f *Finnhub) cachedQuote(symbol string) (domain.Quote, bool) {
	if f.cache == nil {
		return domain.Quote{}, false
	}
	data, err := f.cache.Get("finnhub:quote:" + symbol)
	if err != nil || len(data) == 0 {
		return domain.Quote{}, false
	}
	var quote domain.Quote
	if err := json.Unmarshal(data, &quote); err != nil {
		return domain.Quote{}, false
	}
	return quote, true
}

func (f *Finnhub) storeQuote(quote domain.Quote) {
	if f.cache == nil {
		return
	}
	data, err := json.Marshal(quote)
	if err != nil {
		return
	}
	_ = f.cache.Set("finnhub:quote:"+quote.Symbol, data, time.Minute)
}
