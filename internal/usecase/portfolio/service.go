package portfolio

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"tg-invest-bot/internal/domain"
)

var (
	// ErrLinkFormat означает, что строка привязки не разобрана.
	ErrLinkFormat = errors.New("неверный формат привязки")
	// ErrInvalidCSV означает, что в CSV не нашлось ни одной позиции.
	ErrInvalidCSV = errors.New("не удалось разобрать csv")
)

// Deps перечисляет зависимости портфельного сервиса.
type Deps struct {
	Log      zerolog.Logger
	Repo     domain.PortfolioRepo
	Links    domain.LinkRepo
	Ton      domain.TonExplorer
	Exchange domain.ExchangeClient
	Stocks   domain.StockMarket
	Crypto   domain.CryptoMarket
	Charts   domain.ChartRenderer
}

// Service управляет портфелем: позиции, оценка, импорт и синхронизация.
type Service struct {
	log      zerolog.Logger
	repo     domain.PortfolioRepo
	links    domain.LinkRepo
	ton      domain.TonExplorer
	exchange domain.ExchangeClient
	stocks   domain.StockMarket
	crypto   domain.CryptoMarket
	charts   domain.ChartRenderer
}

// NewService создаёт портфельный сервис.
func NewService(deps Deps) *Service {
	return &Service{
		log:      deps.Log,
		repo:     deps.Repo,
		links:    deps.Links,
		ton:      deps.Ton,
		exchange: deps.Exchange,
		stocks:   deps.Stocks,
		crypto:   deps.Crypto,
		charts:   deps.Charts,
	}
}

// List возвращает позиции портфеля.
func (s *Service) List(userID int64) ([]domain.PortfolioItem, error) {
	return s.repo.ListItems(userID)
}

// Add добавляет позицию, введённую вручную.
func (s *Service) Add(userID int64, assetType, symbol string, amount, cost float64) error {
	return s.repo.AddItem(userID, domain.PortfolioItem{
		UserID:    userID,
		AssetType: strings.ToLower(strings.TrimSpace(assetType)),
		Symbol:    strings.ToUpper(strings.TrimSpace(symbol)),
		Amount:    amount,
		CostBasis: cost,
		Source:    "manual",
	})
}

// Remove удаляет позиции по символу и возвращает их количество.
func (s *Service) Remove(userID int64, symbol string) (int64, error) {
	return s.repo.RemoveBySymbol(userID, symbol)
}

// Position объединяет позицию с текущей рыночной ценой.
type Position struct {
	Item  domain.PortfolioItem
	Price *float64
}

// Value возвращает рыночную стоимость позиции.
func (p Position) Value() *float64 {
	if p.Price == nil {
		return nil
	}
	v := *p.Price * p.Item.Amount
	return &v
}

// PnL возвращает прибыль против цены покупки.
func (p Position) PnL() *float64 {
	value := p.Value()
	if value == nil {
		return nil
	}
	pnl := *value - p.Item.CostBasis*p.Item.Amount
	return &pnl
}

// PnLPct возвращает прибыль в процентах от вложенного.
func (p Position) PnLPct() *float64 {
	pnl := p.PnL()
	invested := p.Item.CostBasis * p.Item.Amount
	if pnl == nil || invested == 0 {
		return nil
	}
	pct := *pnl / invested * 100
	return &pct
}

func isStockLike(assetType string) bool {
	switch strings.ToLower(assetType) {
	case "stock", "fund", "etf":
		return true
	}
	return false
}

// Valuations возвращает позиции с текущими ценами. Котировки запрашиваются
// пакетно по классам активов, недоступная цена остаётся nil.
func (s *Service) Valuations(ctx context.Context, userID int64) ([]Position, error) {
	items, err := s.repo.ListItems(userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	var stockSymbols, cryptoSymbols []string
	seenStock := map[string]bool{}
	seenCrypto := map[string]bool{}
	for _, item := range items {
		symbol := strings.ToUpper(item.Symbol)
		if isStockLike(item.AssetType) {
			if !seenStock[symbol] {
				seenStock[symbol] = true
				stockSymbols = append(stockSymbols, symbol)
			}
		} else if !seenCrypto[symbol] {
			seenCrypto[symbol] = true
			cryptoSymbols = append(cryptoSymbols, symbol)
		}
	}

	stockQuotes := map[string]domain.Quote{}
	if len(stockSymbols) > 0 {
		if stockQuotes, err = s.stocks.Quotes(ctx, stockSymbols); err != nil {
			s.log.Warn().Err(err).Msg("не удалось получить котировки акций для портфеля")
			stockQuotes = map[string]domain.Quote{}
		}
	}
	cryptoAssets := map[string]domain.CryptoAsset{}
	if len(cryptoSymbols) > 0 {
		if cryptoAssets, err = s.crypto.Assets(ctx, cryptoSymbols); err != nil {
			s.log.Warn().Err(err).Msg("не удалось получить котировки крипты для портфеля")
			cryptoAssets = map[string]domain.CryptoAsset{}
		}
	}

	positions := make([]Position, 0, len(items))
	for _, item := range items {
		symbol := strings.ToUpper(item.Symbol)
		position := Position{Item: item}
		if isStockLike(item.AssetType) {
			position.Price = stockQuotes[symbol].Price
		} else if asset, ok := cryptoAssets[symbol]; ok {
			position.Price = asset.Price
		}
		positions = append(positions, position)
	}
	return positions, nil
}

// Allocation возвращает стоимость по символам. Без рыночной цены позиция
// учитывается по цене покупки.
func (s *Service) Allocation(ctx context.Context, userID int64) (map[string]float64, error) {
	positions, err := s.Valuations(ctx, userID)
	if err != nil {
		return nil, err
	}
	values := make(map[string]float64, len(positions))
	for _, position := range positions {
		value := position.Item.CostBasis * position.Item.Amount
		if market := position.Value(); market != nil {
			value = *market
		}
		if value > 0 {
			values[strings.ToUpper(position.Item.Symbol)] += value
		}
	}
	return values, nil
}

// AllocationChart строит круговую диаграмму распределения портфеля.
func (s *Service) AllocationChart(ctx context.Context, userID int64) ([]byte, error) {
	values, err := s.Allocation(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.charts.AllocationPie(values)
}

// ExportCSV выгружает портфель в CSV с заголовком.
func (s *Service) ExportCSV(userID int64) (string, error) {
	items, err := s.repo.ListItems(userID)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", nil
	}
	var b strings.Builder
	b.WriteString("asset_type,symbol,amount,cost_basis\n")
	for _, item := range items {
		fmt.Fprintf(&b, "%s,%s,%s,%s\n",
			item.AssetType, item.Symbol, trimFloat(item.Amount), trimFloat(item.CostBasis))
	}
	return b.String(), nil
}

// SyncResult содержит итоги синхронизации привязанных аккаунтов.
type SyncResult struct {
	Wallets   int
	Exchanges int
	Assets    int
}

// LinkExchange разбирает строку "provider api_key api_secret [passphrase]"
// и сохраняет привязку биржи.
func (s *Service) LinkExchange(userID int64, input string) (domain.LinkedAccount, error) {
	fields := strings.Fields(strings.TrimSpace(input))
	if len(fields) < 3 {
		return domain.LinkedAccount{}, ErrLinkFormat
	}
	provider := strings.ToLower(fields[0])
	if !knownExchange(provider) {
		return domain.LinkedAccount{}, fmt.Errorf("%w: %s", domain.ErrExchangeUnknown, provider)
	}
	data := map[string]string{
		"api_key":    fields[1],
		"api_secret": fields[2],
	}
	if len(fields) > 3 {
		data["passphrase"] = fields[3]
	}
	return s.links.AddLink(domain.LinkedAccount{
		UserID:   userID,
		Kind:     "exchange",
		Provider: provider,
		Label:    fmt.Sprintf("%s #%d", strings.ToUpper(provider), userID),
		Data:     data,
	})
}

func knownExchange(provider string) bool {
	switch provider {
	case "binance", "bybit", "okx":
		return true
	}
	return false
}

// LinkWallet разбирает строку "ton ADDRESS [LABEL]" и сохраняет привязку.
func (s *Service) LinkWallet(userID int64, input string) (domain.LinkedAccount, error) {
	fields := strings.Fields(strings.TrimSpace(input))
	if len(fields) < 2 {
		return domain.LinkedAccount{}, ErrLinkFormat
	}
	provider := strings.ToLower(fields[0])
	if provider != "ton" {
		return domain.LinkedAccount{}, fmt.Errorf("%w: %s", domain.ErrExchangeUnknown, provider)
	}
	label := fields[1]
	if len(fields) > 2 {
		label = strings.Join(fields[2:], " ")
	}
	return s.links.AddLink(domain.LinkedAccount{
		UserID:   userID,
		Kind:     "wallet",
		Provider: provider,
		Label:    label,
		Data:     map[string]string{"address": fields[1]},
	})
}

// Links возвращает привязанные аккаунты.
func (s *Service) Links(userID int64) ([]domain.LinkedAccount, error) {
	return s.links.ListLinks(userID)
}

// Unlink удаляет привязку.
func (s *Service) Unlink(userID, linkID int64) (bool, error) {
	return s.links.RemoveLink(userID, linkID)
}

// SyncRun обновляет портфель по всем привязкам. Позиции каждой привязки
// полностью заменяют прошлый результат её синхронизации, ручные позиции
// не затрагиваются.
func (s *Service) SyncRun(ctx context.Context, userID int64) (SyncResult, error) {
	links, err := s.links.ListLinks(userID)
	if err != nil {
		return SyncResult{}, err
	}

	var result SyncResult
	for _, link := range links {
		var items []domain.PortfolioItem
		switch link.Kind {
		case "wallet":
			items, err = s.syncWallet(ctx, link)
			if err == nil {
				result.Wallets++
			}
		case "exchange":
			items, err = s.syncExchange(ctx, link)
			if err == nil {
				result.Exchanges++
			}
		default:
			continue
		}
		if err != nil {
			s.log.Warn().Err(err).
				Str("kind", link.Kind).
				Str("provider", link.Provider).
				Int64("link_id", link.ID).
				Msg("синхронизация привязки не удалась")
			continue
		}
		source := fmt.Sprintf("%s:%s:%d", link.Kind, link.Provider, link.ID)
		if err := s.repo.ReplaceBySource(userID, source, items); err != nil {
			return result, err
		}
		result.Assets += len(items)
	}
	return result, nil
}

func (s *Service) syncWallet(ctx context.Context, link domain.LinkedAccount) ([]domain.PortfolioItem, error) {
	address := link.Data["address"]
	if address == "" {
		return nil, ErrLinkFormat
	}
	wallet, err := s.ton.Wallet(ctx, address)
	if err != nil {
		return nil, err
	}

	var items []domain.PortfolioItem
	if wallet.BalanceTON != nil && *wallet.BalanceTON > 0 {
		items = append(items, domain.PortfolioItem{
			UserID:    link.UserID,
			AssetType: "crypto",
			Symbol:    "TON",
			Amount:    *wallet.BalanceTON,
		})
	}
	jettons, err := s.ton.WalletJettons(ctx, address)
	if err != nil {
		s.log.Warn().Err(err).Msg("не удалось получить жетоны кошелька")
		jettons = nil
	}
	for _, jetton := range jettons {
		if jetton.Balance == nil || *jetton.Balance <= 0 || jetton.Symbol == "" {
			continue
		}
		items = append(items, domain.PortfolioItem{
			UserID:    link.UserID,
			AssetType: "crypto",
			Symbol:    strings.ToUpper(jetton.Symbol),
			Amount:    *jetton.Balance,
		})
	}
	return items, nil
}

func (s *Service) syncExchange(ctx context.Context, link domain.LinkedAccount) ([]domain.PortfolioItem, error) {
	balances, err := s.exchange.FetchBalances(ctx, link.Provider,
		link.Data["api_key"], link.Data["api_secret"], link.Data["passphrase"])
	if err != nil {
		return nil, err
	}

	symbols := make([]string, 0, len(balances))
	for symbol := range balances {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	items := make([]domain.PortfolioItem, 0, len(symbols))
	for _, symbol := range symbols {
		items = append(items, domain.PortfolioItem{
			UserID:    link.UserID,
			AssetType: "crypto",
			Symbol:    strings.ToUpper(symbol),
			Amount:    balances[symbol],
		})
	}
	return items, nil
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.8f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
