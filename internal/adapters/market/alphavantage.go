package market

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"tg-invest-bot/internal/domain"
)

const alphaVantageBase = "https://www.alphavantage.co/query"

// AlphaVantage предоставляет котировки валютных пар.
type AlphaVantage struct {
	key    string
	base   string
	client *http.Client
}

// NewAlphaVantage создаёт клиент Alpha Vantage.
func NewAlphaVantage(key string) *AlphaVantage {
	return &AlphaVantage{
		key:    key,
		base:   alphaVantageBase,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

var _ domain.ForexMarket = (*AlphaVantage)(nil)

// splitPair разбирает пару вида "EUR/USD".
func splitPair(pair string) (string, string, bool) {
	parts := strings.SplitN(strings.ToUpper(strings.TrimSpace(pair)), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// Pair реализует domain.ForexMarket.
func (a *AlphaVantage) Pair(ctx context.Context, pair string) (domain.ForexQuote, error) {
	from, to, ok := splitPair(pair)
	if !ok {
		return domain.ForexQuote{}, domain.ErrNotFound
	}
	quote := domain.ForexQuote{Pair: from + "/" + to}
	if a.key == "" {
		return quote, nil
	}

	params := url.Values{
		"function":      {"CURRENCY_EXCHANGE_RATE"},
		"from_currency": {from},
		"to_currency":   {to},
		"apikey":        {a.key},
	}
	var raw struct {
		Rate map[string]string `json:"Realtime Currency Exchange Rate"`
	}
	if err := getJSON(ctx, a.client, "alphavantage", "exchange_rate", quote.Pair, a.base+"?"+params.Encode(), nil, &raw); err != nil {
		return domain.ForexQuote{}, err
	}
	if rate, err := strconv.ParseFloat(raw.Rate["5. Exchange Rate"], 64); err == nil {
		quote.Rate = ptr(rate)
	}

	a.fillDaily(ctx, from, to, &quote)
	return quote, nil
}

// fillDaily дополняет котировку данными дневных свечей FX_DAILY.
func (a *AlphaVantage) fillDaily(ctx context.Context, from, to string, quote *domain.ForexQuote) {
	params := url.Values{
		"function":    {"FX_DAILY"},
		"from_symbol": {from},
		"to_symbol":   {to},
		"apikey":      {a.key},
	}
	var raw struct {
		Series map[string]map[string]string `json:"Time Series FX (Daily)"`
	}
	if err := getJSON(ctx, a.client, "alphavantage", "fx_daily", quote.Pair, a.base+"?"+params.Encode(), nil, &raw); err != nil {
		return
	}
	if len(raw.Series) == 0 {
		return
	}

	dates := make([]string, 0, len(raw.Series))
	for date := range raw.Series {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	last := raw.Series[dates[0]]
	quote.Open = parseField(last["1. open"])
	quote.High = parseField(last["2. high"])
	quote.Low = parseField(last["3. low"])
	closePrice := parseField(last["4. close"])
	if quote.Rate == nil {
		quote.Rate = closePrice
	}
	if len(dates) > 1 {
		prev := parseField(raw.Series[dates[1]]["4. close"])
		quote.PrevClose = prev
		if prev != nil && *prev != 0 && closePrice != nil {
			quote.ChangePct = ptr((*closePrice - *prev) / *prev * 100)
		}
	}
}

func parseField(raw string) *float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return &value
}

// Pairs реализует domain.ForexMarket.
func (a *AlphaVantage) Pairs(ctx context.Context, pairs []string) (map[string]domain.ForexQuote, error) {
	quotes := make(map[string]domain.ForexQuote, len(pairs))
	for _, pair := range pairs {
		quote, err := a.Pair(ctx, pair)
		if err != nil {
			from, to, ok := splitPair(pair)
			if !ok {
				continue
			}
			quote = domain.ForexQuote{Pair: from + "/" + to}
		}
		quotes[quote.Pair] = quote
	}
	return quotes, nil
}
