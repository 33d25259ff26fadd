package market

import (
	"context"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tg-invest-bot/internal/domain"
)

const tonAPIBase = "https://tonapi.io"

// TonAPI предоставляет данные сети TON.
type TonAPI struct {
	key    string
	base   string
	client *http.Client
}

// NewTonAPI создаёт клиент tonapi.io. Ключ опционален.
func NewTonAPI(key string) *TonAPI {
	return &TonAPI{
		key:    key,
		base:   tonAPIBase,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

var _ domain.TonExplorer = (*TonAPI)(nil)

func (t *TonAPI) headers() map[string]string {
	if t.key == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + t.key}
}

// Price реализует domain.TonExplorer.
func (t *TonAPI) Price(ctx context.Context) (domain.CryptoAsset, error) {
	var raw struct {
		Rates map[string]struct {
			Prices map[string]float64 `json:"prices"`
			Diff   map[string]string  `json:"diff_24h"`
		} `json:"rates"`
	}
	endpoint := t.base + "/v2/rates?tokens=ton&currencies=usd"
	if err := getJSON(ctx, t.client, "tonapi", "rates", "ton", endpoint, t.headers(), &raw); err != nil {
		return domain.CryptoAsset{}, err
	}

	asset := domain.CryptoAsset{Symbol: "TON", Name: "Toncoin"}
	ton, ok := raw.Rates["TON"]
	if !ok {
		return asset, nil
	}
	if price, ok := ton.Prices["USD"]; ok {
		asset.Price = ptr(price)
	}
	if diff, ok := ton.Diff["USD"]; ok {
		asset.Change24h = parseDiff(diff)
	}
	return asset, nil
}

// parseDiff разбирает строку вида "+1.25%" или "−0.8%".
func parseDiff(raw string) *float64 {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimSuffix(cleaned, "%")
	cleaned = strings.ReplaceAll(cleaned, "−", "-")
	cleaned = strings.ReplaceAll(cleaned, "+", "")
	value, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return nil
	}
	return &value
}

// Wallet реализует domain.TonExplorer.
func (t *TonAPI) Wallet(ctx context.Context, address string) (domain.TonWallet, error) {
	var raw struct {
		Address string `json:"address"`
		Balance int64  `json:"balance"`
		Status  string `json:"status"`
		Name    string `json:"name"`
	}
	endpoint := t.base + "/v2/accounts/" + url.PathEscape(strings.TrimSpace(address))
	if err := getJSON(ctx, t.client, "tonapi", "account", "ton", endpoint, t.headers(), &raw); err != nil {
		return domain.TonWallet{}, err
	}
	wallet := domain.TonWallet{
		Address: raw.Address,
		Status:  raw.Status,
		Name:    raw.Name,
	}
	wallet.BalanceTON = ptr(float64(raw.Balance) / 1e9)
	return wallet, nil
}

type tonJettonMeta struct {
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	Decimals     string `json:"decimals"`
	Verification string `json:"verification"`
	HoldersCount *int64 `json:"holders_count"`
}

// WalletJettons реализует domain.TonExplorer.
func (t *TonAPI) WalletJettons(ctx context.Context, address string) ([]domain.TonJetton, error) {
	var raw struct {
		Balances []struct {
			Balance string        `json:"balance"`
			Jetton  tonJettonMeta `json:"jetton"`
		} `json:"balances"`
	}
	endpoint := t.base + "/v2/accounts/" + url.PathEscape(strings.TrimSpace(address)) + "/jettons"
	if err := getJSON(ctx, t.client, "tonapi", "account_jettons", "ton", endpoint, t.headers(), &raw); err != nil {
		return nil, err
	}

	jettons := make([]domain.TonJetton, 0, len(raw.Balances))
	for _, item := range raw.Balances {
		jetton := domain.TonJetton{
			Name:         item.Jetton.Name,
			Symbol:       item.Jetton.Symbol,
			Verification: item.Jetton.Verification,
			Holders:      item.Jetton.HoldersCount,
		}
		decimals := 9
		if parsed, err := strconv.Atoi(item.Jetton.Decimals); err == nil {
			decimals = parsed
		}
		if rawBalance, err := strconv.ParseFloat(item.Balance, 64); err == nil {
			jetton.Balance = ptr(rawBalance / math.Pow10(decimals))
		}
		jettons = append(jettons, jetton)
	}
	return jettons, nil
}

// Jettons реализует domain.TonExplorer.
func (t *TonAPI) Jettons(ctx context.Context, limit, offset int) ([]domain.TonJetton, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	var raw struct {
		Jettons []struct {
			Metadata     tonJettonMeta `json:"metadata"`
			Verification string        `json:"verification"`
			Holders      *int64        `json:"holders_count"`
		} `json:"jettons"`
	}
	endpoint := t.base + "/v2/jettons?limit=" + strconv.Itoa(limit) + "&offset=" + strconv.Itoa(offset)
	if err := getJSON(ctx, t.client, "tonapi", "jettons", "ton", endpoint, t.headers(), &raw); err != nil {
		return nil, err
	}

	jettons := make([]domain.TonJetton, 0, len(raw.Jettons))
	for _, item := range raw.Jettons {
		jetton := domain.TonJetton{
			Name:         item.Metadata.Name,
			Symbol:       item.Metadata.Symbol,
			Verification: item.Verification,
			Holders:      item.Holders,
		}
		if jetton.Verification == "" {
			jetton.Verification = item.Metadata.Verification
		}
		jettons = append(jettons, jetton)
	}
	return jettons, nil
}

// ResolveDomain реализует domain.TonExplorer.
func (t *TonAPI) ResolveDomain(ctx context.Context, name string) (domain.TonDomain, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	var resolved struct {
		Wallet struct {
			Address string `json:"address"`
		} `json:"wallet"`
	}
	endpoint := t.base + "/v2/dns/" + url.PathEscape(name) + "/resolve"
	if err := getJSON(ctx, t.client, "tonapi", "dns_resolve", "ton", endpoint, t.headers(), &resolved); err != nil {
		return domain.TonDomain{}, domain.ErrNotFound
	}

	result := domain.TonDomain{Name: name, Owner: resolved.Wallet.Address}

	var info struct {
		ExpiringAt int64 `json:"expiring_at"`
		Item       struct {
			Owner struct {
				Address string `json:"address"`
			} `json:"owner"`
		} `json:"item"`
	}
	if err := getJSON(ctx, t.client, "tonapi", "dns_info", "ton", t.base+"/v2/dns/"+url.PathEscape(name), t.headers(), &info); err == nil {
		if result.Owner == "" {
			result.Owner = info.Item.Owner.Address
		}
		if info.ExpiringAt > 0 {
			expires := time.Unix(info.ExpiringAt, 0).UTC()
			result.ExpiresAt = &expires
		}
	}
	return result, nil
}

// AccountDomains реализует domain.TonExplorer.
func (t *TonAPI) AccountDomains(ctx context.Context, address string) ([]domain.TonDomain, error) {
	var raw struct {
		Domains []string `json:"domains"`
	}
	endpoint := t.base + "/v2/accounts/" + url.PathEscape(strings.TrimSpace(address)) + "/dns/backresolve"
	if err := getJSON(ctx, t.client, "tonapi", "dns_backresolve", "ton", endpoint, t.headers(), &raw); err != nil {
		return nil, err
	}
	domains := make([]domain.TonDomain, 0, len(raw.Domains))
	for _, name := range raw.Domains {
		domains = append(domains, domain.TonDomain{Name: name, Owner: address})
	}
	return domains, nil
}

// AccountNFTs реализует domain.TonExplorer.
func (t *TonAPI) AccountNFTs(ctx context.Context, address string, limit int) ([]domain.TonNFT, error) {
	if limit <= 0 {
		limit = 50
	}

	var raw struct {
		Items []struct {
			Metadata struct {
				Name        string `json:"name"`
				Description string `json:"description"`
			} `json:"metadata"`
			Collection struct {
				Name string `json:"name"`
			} `json:"collection"`
			ApprovedBy []string `json:"approved_by"`
		} `json:"nft_items"`
	}
	endpoint := t.base + "/v2/accounts/" + url.PathEscape(strings.TrimSpace(address)) + "/nfts?limit=" + strconv.Itoa(limit)
	if err := getJSON(ctx, t.client, "tonapi", "account_nfts", "ton", endpoint, t.headers(), &raw); err != nil {
		return nil, err
	}

	nfts := make([]domain.TonNFT, 0, len(raw.Items))
	for _, item := range raw.Items {
		name := item.Metadata.Name
		if name == "" {
			name = item.Metadata.Description
		}
		nfts = append(nfts, domain.TonNFT{
			Name:       name,
			Collection: item.Collection.Name,
			Verified:   len(item.ApprovedBy) > 0,
		})
	}
	return nfts, nil
}
