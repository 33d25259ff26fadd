package portfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"tg-invest-bot/internal/domain"
)

func fptr(v float64) *float64 { return &v }

type stubRepo struct {
	items    []domain.PortfolioItem
	replaced map[string][]domain.PortfolioItem
}

func (r *stubRepo) AddItem(userID int64, item domain.PortfolioItem) error {
	r.items = append(r.items, item)
	return nil
}

func (r *stubRepo) RemoveBySymbol(userID int64, symbol string) (int64, error) {
	var kept []domain.PortfolioItem
	var removed int64
	for _, item := range r.items {
		if item.Symbol == symbol {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	r.items = kept
	return removed, nil
}

func (r *stubRepo) ListItems(userID int64) ([]domain.PortfolioItem, error) {
	return r.items, nil
}

func (r *stubRepo) ReplaceBySource(userID int64, source string, items []domain.PortfolioItem) error {
	if r.replaced == nil {
		r.replaced = map[string][]domain.PortfolioItem{}
	}
	r.replaced[source] = items
	return nil
}

type stubLinks struct {
	links  []domain.LinkedAccount
	nextID int64
}

func (l *stubLinks) AddLink(link domain.LinkedAccount) (domain.LinkedAccount, error) {
	l.nextID++
	link.ID = l.nextID
	l.links = append(l.links, link)
	return link, nil
}

func (l *stubLinks) GetLink(userID, linkID int64) (domain.LinkedAccount, error) {
	for _, link := range l.links {
		if link.ID == linkID {
			return link, nil
		}
	}
	return domain.LinkedAccount{}, domain.ErrNotFound
}

func (l *stubLinks) ListLinks(userID int64) ([]domain.LinkedAccount, error) {
	return l.links, nil
}

func (l *stubLinks) RemoveLink(userID, linkID int64) (bool, error) {
	for i, link := range l.links {
		if link.ID == linkID {
			l.links = append(l.links[:i], l.links[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type stubStocks struct {
	domain.StockMarket
	quotes map[string]domain.Quote
	calls  [][]string
}

func (s *stubStocks) Quotes(ctx context.Context, symbols []string) (map[string]domain.Quote, error) {
	s.calls = append(s.calls, symbols)
	return s.quotes, nil
}

type stubCrypto struct {
	domain.CryptoMarket
	assets map[string]domain.CryptoAsset
}

func (s *stubCrypto) Assets(ctx context.Context, symbols []string) (map[string]domain.CryptoAsset, error) {
	return s.assets, nil
}

type stubTon struct {
	domain.TonExplorer
	balance *float64
	jettons []domain.TonJetton
}

func (s *stubTon) Wallet(ctx context.Context, address string) (domain.TonWallet, error) {
	return domain.TonWallet{Address: address, BalanceTON: s.balance}, nil
}

func (s *stubTon) WalletJettons(ctx context.Context, address string) ([]domain.TonJetton, error) {
	return s.jettons, nil
}

type stubExchange struct {
	balances map[string]float64
	err      error
}

func (s *stubExchange) FetchBalances(ctx context.Context, provider, apiKey, apiSecret, passphrase string) (map[string]float64, error) {
	return s.balances, s.err
}

func newTestService(repo *stubRepo, links *stubLinks, ton *stubTon, exchange *stubExchange, stocks *stubStocks, crypto *stubCrypto) *Service {
	if repo == nil {
		repo = &stubRepo{}
	}
	if links == nil {
		links = &stubLinks{}
	}
	if ton == nil {
		ton = &stubTon{}
	}
	if exchange == nil {
		exchange = &stubExchange{}
	}
	if stocks == nil {
		stocks = &stubStocks{}
	}
	if crypto == nil {
		crypto = &stubCrypto{}
	}
	return NewService(Deps{
		Log:      zerolog.Nop(),
		Repo:     repo,
		Links:    links,
		Ton:      ton,
		Exchange: exchange,
		Stocks:   stocks,
		Crypto:   crypto,
	})
}

func TestAddNormalizesInput(t *testing.T) {
	repo := &stubRepo{}
	s := newTestService(repo, nil, nil, nil, nil, nil)
	if err := s.Add(1, " Stock ", " aapl ", 2, 150); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(repo.items) != 1 {
		t.Fatalf("ожидалась одна позиция, получено %d", len(repo.items))
	}
	item := repo.items[0]
	if item.AssetType != "stock" || item.Symbol != "AAPL" || item.Source != "manual" {
		t.Fatalf("позиция не нормализована: %+v", item)
	}
}

func TestValuations(t *testing.T) {
	repo := &stubRepo{items: []domain.PortfolioItem{
		{Symbol: "AAPL", AssetType: "stock", Amount: 2, CostBasis: 100},
		{Symbol: "BTC", AssetType: "crypto", Amount: 0.5, CostBasis: 20000},
		{Symbol: "XYZ", AssetType: "crypto", Amount: 1},
	}}
	stocks := &stubStocks{quotes: map[string]domain.Quote{"AAPL": {Price: fptr(150)}}}
	crypto := &stubCrypto{assets: map[string]domain.CryptoAsset{"BTC": {Price: fptr(40000)}}}
	s := newTestService(repo, nil, nil, nil, stocks, crypto)

	positions, err := s.Valuations(context.Background(), 1)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(positions) != 3 {
		t.Fatalf("ожидалось 3 позиции, получено %d", len(positions))
	}
	if positions[0].Price == nil || *positions[0].Price != 150 {
		t.Fatalf("цена AAPL = %v, ожидалось 150", positions[0].Price)
	}
	if v := positions[0].Value(); v == nil || *v != 300 {
		t.Fatalf("стоимость AAPL = %v, ожидалось 300", v)
	}
	if pnl := positions[1].PnL(); pnl == nil || *pnl != 10000 {
		t.Fatalf("PnL BTC = %v, ожидалось 10000", pnl)
	}
	if positions[2].Price != nil {
		t.Fatalf("для XYZ без котировки цена должна быть nil, получено %v", positions[2].Price)
	}
	if len(stocks.calls) != 1 || len(stocks.calls[0]) != 1 || stocks.calls[0][0] != "AAPL" {
		t.Fatalf("акции должны запрашиваться пакетно одним вызовом: %v", stocks.calls)
	}
}

func TestAllocationFallsBackToCost(t *testing.T) {
	repo := &stubRepo{items: []domain.PortfolioItem{
		{Symbol: "BTC", AssetType: "crypto", Amount: 1, CostBasis: 30000},
		{Symbol: "FREE", AssetType: "crypto", Amount: 5},
	}}
	s := newTestService(repo, nil, nil, nil, nil, &stubCrypto{assets: map[string]domain.CryptoAsset{}})
	values, err := s.Allocation(context.Background(), 1)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if values["BTC"] != 30000 {
		t.Fatalf("без котировки стоимость берётся из цены покупки, получено %v", values["BTC"])
	}
	if _, ok := values["FREE"]; ok {
		t.Fatal("позиция с нулевой стоимостью не должна попадать в распределение")
	}
}

func TestExportCSV(t *testing.T) {
	repo := &stubRepo{items: []domain.PortfolioItem{
		{AssetType: "crypto", Symbol: "BTC", Amount: 0.5, CostBasis: 20000},
	}}
	s := newTestService(repo, nil, nil, nil, nil, nil)
	out, err := s.ExportCSV(1)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	want := "asset_type,symbol,amount,cost_basis\ncrypto,BTC,0.5,20000\n"
	if out != want {
		t.Fatalf("CSV = %q, ожидалось %q", out, want)
	}

	empty := newTestService(&stubRepo{}, nil, nil, nil, nil, nil)
	out, err = empty.ExportCSV(1)
	if err != nil || out != "" {
		t.Fatalf("пустой портфель должен давать пустую выгрузку, получено (%q, %v)", out, err)
	}
}

func TestImportCSV(t *testing.T) {
	repo := &stubRepo{}
	s := newTestService(repo, nil, nil, nil, nil, nil)

	csvText := "Ticker,Qty,avg_price\naapl,2,150\nbtc,0.5,20000\n,3,1\n"
	count, err := s.ImportCSV(7, csvText)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if count != 2 {
		t.Fatalf("импортировано %d позиций, ожидалось 2", count)
	}
	items := repo.replaced["csv"]
	if len(items) != 2 || items[0].Symbol != "AAPL" || items[0].CostBasis != 150 {
		t.Fatalf("неожиданные позиции импорта: %+v", items)
	}
	if items[0].AssetType != "crypto" {
		t.Fatalf("без колонки типа подставляется crypto, получено %q", items[0].AssetType)
	}

	if _, err := s.ImportCSV(7, "symbol,amount\n"); !errors.Is(err, ErrInvalidCSV) {
		t.Fatalf("CSV без строк должен давать ErrInvalidCSV, получено %v", err)
	}
	if _, err := s.ImportCSV(7, "foo,bar\n1,2\n"); !errors.Is(err, ErrInvalidCSV) {
		t.Fatalf("CSV без нужных колонок должен давать ErrInvalidCSV, получено %v", err)
	}
}

func TestLinkExchange(t *testing.T) {
	links := &stubLinks{}
	s := newTestService(nil, links, nil, nil, nil, nil)

	link, err := s.LinkExchange(9, "binance KEY SECRET")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if link.Kind != "exchange" || link.Provider != "binance" || link.Data["api_key"] != "KEY" {
		t.Fatalf("неожиданная привязка: %+v", link)
	}

	if _, err := s.LinkExchange(9, "binance KEY"); !errors.Is(err, ErrLinkFormat) {
		t.Fatalf("короткая строка должна давать ErrLinkFormat, получено %v", err)
	}
	if _, err := s.LinkExchange(9, "kraken KEY SECRET"); !errors.Is(err, domain.ErrExchangeUnknown) {
		t.Fatalf("неизвестная биржа должна давать ErrExchangeUnknown, получено %v", err)
	}
}

func TestLinkWallet(t *testing.T) {
	links := &stubLinks{}
	s := newTestService(nil, links, nil, nil, nil, nil)

	link, err := s.LinkWallet(9, "ton EQabc My Wallet")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if link.Kind != "wallet" || link.Label != "My Wallet" || link.Data["address"] != "EQabc" {
		t.Fatalf("неожиданная привязка: %+v", link)
	}

	if _, err := s.LinkWallet(9, "ton"); !errors.Is(err, ErrLinkFormat) {
		t.Fatalf("строка без адреса должна давать ErrLinkFormat, получено %v", err)
	}
	if _, err := s.LinkWallet(9, "eth 0xabc"); !errors.Is(err, domain.ErrExchangeUnknown) {
		t.Fatalf("не-TON кошелёк должен отклоняться, получено %v", err)
	}
}

func TestSyncRun(t *testing.T) {
	repo := &stubRepo{}
	links := &stubLinks{}
	links.AddLink(domain.LinkedAccount{
		UserID: 5, Kind: "wallet", Provider: "ton",
		Data: map[string]string{"address": "EQabc"},
	})
	links.AddLink(domain.LinkedAccount{
		UserID: 5, Kind: "exchange", Provider: "binance",
		Data: map[string]string{"api_key": "K", "api_secret": "S"},
	})
	ton := &stubTon{
		balance: fptr(12.5),
		jettons: []domain.TonJetton{
			{Symbol: "usdt", Balance: fptr(100)},
			{Symbol: "DUST", Balance: fptr(0)},
		},
	}
	exchange := &stubExchange{balances: map[string]float64{"btc": 0.25, "eth": 2}}
	s := newTestService(repo, links, ton, exchange, nil, nil)

	result, err := s.SyncRun(context.Background(), 5)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if result.Wallets != 1 || result.Exchanges != 1 || result.Assets != 4 {
		t.Fatalf("итоги синхронизации %+v, ожидалось 1 кошелёк, 1 биржа, 4 актива", result)
	}

	walletItems := repo.replaced["wallet:ton:1"]
	if len(walletItems) != 2 || walletItems[0].Symbol != "TON" || walletItems[1].Symbol != "USDT" {
		t.Fatalf("неожиданные позиции кошелька: %+v", walletItems)
	}
	exchangeItems := repo.replaced["exchange:binance:2"]
	if len(exchangeItems) != 2 || exchangeItems[0].Symbol != "BTC" || exchangeItems[1].Symbol != "ETH" {
		t.Fatalf("позиции биржи должны быть отсортированы по символу: %+v", exchangeItems)
	}
}

func TestSyncRunSkipsFailedLink(t *testing.T) {
	repo := &stubRepo{}
	links := &stubLinks{}
	links.AddLink(domain.LinkedAccount{
		UserID: 5, Kind: "exchange", Provider: "binance",
		Data: map[string]string{"api_key": "K", "api_secret": "S"},
	})
	exchange := &stubExchange{err: errors.New("api down")}
	s := newTestService(repo, links, nil, exchange, nil, nil)

	result, err := s.SyncRun(context.Background(), 5)
	if err != nil {
		t.Fatalf("сбой привязки не должен прерывать синхронизацию: %v", err)
	}
	if result.Exchanges != 0 || result.Assets != 0 {
		t.Fatalf("итоги должны быть пустыми, получено %+v", result)
	}
	if len(repo.replaced) != 0 {
		t.Fatalf("позиции не должны были замениться: %+v", repo.replaced)
	}
}
