package market

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/infra/metrics"
)

const binanceBase = "https://api.binance.com"

var knownExchanges = map[string]struct{}{
	"binance": {},
	"bybit":   {},
	"okx":     {},
}

// Exchange запрашивает балансы на привязанных биржах. Сейчас чтение
// балансов реализовано для Binance; bybit и okx принимаются при
// привязке, но синхронизация для них недоступна.
type Exchange struct {
	base   string
	client *http.Client
	now    func() time.Time
}

// NewExchange создаёт клиент бирж.
func NewExchange() *Exchange {
	return &Exchange{
		base:   binanceBase,
		client: &http.Client{Timeout: defaultTimeout},
		now:    time.Now,
	}
}

var _ domain.ExchangeClient = (*Exchange)(nil)

// FetchBalances реализует domain.ExchangeClient.
func (e *Exchange) FetchBalances(ctx context.Context, provider, apiKey, apiSecret, passphrase string) (map[string]float64, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "binance":
		return e.binanceBalances(ctx, apiKey, apiSecret)
	case "bybit", "okx":
		return nil, domain.ErrExchangeUnavailable
	default:
		return nil, domain.ErrExchangeUnknown
	}
}

func (e *Exchange) binanceBalances(ctx context.Context, apiKey, apiSecret string) (map[string]float64, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, domain.ErrExchangeUnavailable
	}

	params := url.Values{
		"timestamp":  {strconv.FormatInt(e.now().UnixMilli(), 10)},
		"recvWindow": {"5000"},
	}
	query := params.Encode()
	mac := hmac.New(sha256.New, []byte(apiSecret))
	mac.Write([]byte(query))
	signature := hex.EncodeToString(mac.Sum(nil))

	endpoint := e.base + "/api/v3/account?" + query + "&signature=" + signature
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-MBX-APIKEY", apiKey)

	start := time.Now()
	resp, err := e.client.Do(req)
	metrics.ObserveNetworkRequest("binance", "account", "balances", start, err)
	if err != nil {
		return nil, fmt.Errorf("binance request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("binance api error: status=%d", resp.StatusCode)
	}

	var raw struct {
		Balances []struct {
			Asset  string `json:"asset"`
			Free   string `json:"free"`
			Locked string `json:"locked"`
		} `json:"balances"`
	}
	if err := decodeJSON(resp, &raw); err != nil {
		return nil, err
	}

	balances := make(map[string]float64)
	for _, balance := range raw.Balances {
		free, _ := strconv.ParseFloat(balance.Free, 64)
		locked, _ := strconv.ParseFloat(balance.Locked, 64)
		total := free + locked
		if total > 0 {
			balances[strings.ToUpper(balance.Asset)] = total
		}
	}
	return balances, nil
}

// KnownExchange сообщает, поддерживается ли провайдер при привязке.
func KnownExchange(provider string) bool {
	_, ok := knownExchanges[strings.ToLower(strings.TrimSpace(provider))]
	return ok
}
