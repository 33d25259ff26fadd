package market

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"tg-invest-bot/internal/domain"
)

const cmcBase = "https://pro-api.coinmarketcap.com"

// symbolAliases сводит распространённые имена монет к тикерам.
var symbolAliases = map[string]string{
	"BITCOIN":  "BTC",
	"ETHEREUM": "ETH",
	"TONCOIN":  "TON",
	"SOLANA":   "SOL",
	"DOGECOIN": "DOGE",
	"CARDANO":  "ADA",
	"RIPPLE":   "XRP",
	"POLKADOT": "DOT",
	"TRON":     "TRX",
	"LITECOIN": "LTC",
}

// CoinMarketCap предоставляет данные криптовалютного рынка.
type CoinMarketCap struct {
	key    string
	base   string
	client *http.Client
}

// NewCoinMarketCap создаёт клиент CoinMarketCap.
func NewCoinMarketCap(key string) *CoinMarketCap {
	return &CoinMarketCap{
		key:    key,
		base:   cmcBase,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

var _ domain.CryptoMarket = (*CoinMarketCap)(nil)

func (c *CoinMarketCap) headers() map[string]string {
	return map[string]string{"X-CMC_PRO_API_KEY": c.key}
}

// NormalizeSymbol приводит пользовательский ввод к тикеру.
func NormalizeSymbol(input string) string {
	symbol := strings.ToUpper(strings.TrimSpace(input))
	if alias, ok := symbolAliases[symbol]; ok {
		return alias
	}
	return symbol
}

type cmcQuote struct {
	Price     *float64 `json:"price"`
	Change24h *float64 `json:"percent_change_24h"`
	Change7d  *float64 `json:"percent_change_7d"`
	MarketCap *float64 `json:"market_cap"`
	Volume24h *float64 `json:"volume_24h"`
}

type cmcAsset struct {
	Name   string              `json:"name"`
	Symbol string              `json:"symbol"`
	Rank   *int                `json:"cmc_rank"`
	Quote  map[string]cmcQuote `json:"quote"`
}

func (a cmcAsset) toDomain() domain.CryptoAsset {
	asset := domain.CryptoAsset{
		Rank:   a.Rank,
		Symbol: a.Symbol,
		Name:   a.Name,
	}
	if usd, ok := a.Quote["USD"]; ok {
		asset.Price = usd.Price
		asset.Change24h = usd.Change24h
		asset.Change7d = usd.Change7d
		asset.MarketCap = usd.MarketCap
		asset.Volume24h = usd.Volume24h
	}
	return asset
}

// Asset реализует domain.CryptoMarket.
func (c *CoinMarketCap) Asset(ctx context.Context, symbol string) (domain.CryptoAsset, error) {
	symbol = NormalizeSymbol(symbol)
	if c.key == "" {
		return domain.CryptoAsset{Symbol: symbol}, nil
	}
	assets, err := c.Assets(ctx, []string{symbol})
	if err != nil {
		return domain.CryptoAsset{}, err
	}
	asset, ok := assets[symbol]
	if !ok {
		return domain.CryptoAsset{}, domain.ErrNotFound
	}
	return asset, nil
}

// Assets реализует domain.CryptoMarket.
func (c *CoinMarketCap) Assets(ctx context.Context, symbols []string) (map[string]domain.CryptoAsset, error) {
	normalized := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		normalized = append(normalized, NormalizeSymbol(symbol))
	}
	result := make(map[string]domain.CryptoAsset, len(normalized))
	if c.key == "" {
		for _, symbol := range normalized {
			result[symbol] = domain.CryptoAsset{Symbol: symbol}
		}
		return result, nil
	}

	params := url.Values{
		"symbol":  {strings.Join(normalized, ",")},
		"convert": {"USD"},
	}
	var raw struct {
		Data map[string]cmcAsset `json:"data"`
	}
	endpoint := c.base + "/v1/cryptocurrency/quotes/latest?" + params.Encode()
	if err := getJSON(ctx, c.client, "coinmarketcap", "quotes_latest", "crypto", endpoint, c.headers(), &raw); err != nil {
		return nil, err
	}
	for symbol, asset := range raw.Data {
		result[strings.ToUpper(symbol)] = asset.toDomain()
	}
	return result, nil
}

// Listings реализует domain.CryptoMarket.
func (c *CoinMarketCap) Listings(ctx context.Context, limit int) ([]domain.CryptoAsset, error) {
	if c.key == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 100
	}

	params := url.Values{
		"limit":   {strconv.Itoa(limit)},
		"convert": {"USD"},
	}
	var raw struct {
		Data []cmcAsset `json:"data"`
	}
	endpoint := c.base + "/v1/cryptocurrency/listings/latest?" + params.Encode()
	if err := getJSON(ctx, c.client, "coinmarketcap", "listings_latest", "crypto", endpoint, c.headers(), &raw); err != nil {
		return nil, err
	}
	assets := make([]domain.CryptoAsset, 0, len(raw.Data))
	for _, asset := range raw.Data {
		assets = append(assets, asset.toDomain())
	}
	return assets, nil
}

// Dominance реализует domain.CryptoMarket.
func (c *CoinMarketCap) Dominance(ctx context.Context) (domain.MarketDominance, error) {
	if c.key == "" {
		return domain.MarketDominance{}, nil
	}

	var raw struct {
		Data struct {
			BTCDominance *float64 `json:"btc_dominance"`
			ETHDominance *float64 `json:"eth_dominance"`
		} `json:"data"`
	}
	endpoint := c.base + "/v1/global-metrics/quotes/latest"
	if err := getJSON(ctx, c.client, "coinmarketcap", "global_metrics", "crypto", endpoint, c.headers(), &raw); err != nil {
		return domain.MarketDominance{}, err
	}
	return domain.MarketDominance{BTC: raw.Data.BTCDominance, ETH: raw.Data.ETHDominance}, nil
}
