package watch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tg-invest-bot/internal/domain"
)

func fptr(v float64) *float64 { return &v }

type stubWatchRepo struct {
	items  []domain.WatchItem
	states map[domain.WatchKey]domain.PriceWatchState

	upserts []upsert
}

type upsert struct {
	key      domain.WatchKey
	price    *float64
	notified bool
}

func (r *stubWatchRepo) ListWatchItems(platform string) ([]domain.WatchItem, error) {
	return r.items, nil
}

func (r *stubWatchRepo) LoadStates() (map[domain.WatchKey]domain.PriceWatchState, error) {
	if r.states == nil {
		return map[domain.WatchKey]domain.PriceWatchState{}, nil
	}
	return r.states, nil
}

func (r *stubWatchRepo) UpsertState(key domain.WatchKey, lastPrice *float64, notified bool, now time.Time) error {
	r.upserts = append(r.upserts, upsert{key: key, price: lastPrice, notified: notified})
	return nil
}

type stubCrypto struct {
	domain.CryptoMarket
	assets map[string]domain.CryptoAsset
}

func (s *stubCrypto) Assets(ctx context.Context, symbols []string) (map[string]domain.CryptoAsset, error) {
	return s.assets, nil
}

type stubStocks struct {
	domain.StockMarket
	quotes map[string]domain.Quote
}

func (s *stubStocks) Quotes(ctx context.Context, symbols []string) (map[string]domain.Quote, error) {
	return s.quotes, nil
}

type stubForex struct {
	domain.ForexMarket
	quotes map[string]domain.ForexQuote
}

func (s *stubForex) Pairs(ctx context.Context, pairs []string) (map[string]domain.ForexQuote, error) {
	return s.quotes, nil
}

type stubNotifier struct {
	sent []string
	err  error
}

func (n *stubNotifier) Notify(ctx context.Context, platformUserID, text string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, platformUserID+": "+text)
	return nil
}

func watchItem(symbol string) domain.WatchItem {
	return domain.WatchItem{
		UserID:         1,
		PlatformUserID: "100",
		Language:       "en",
		AssetType:      "crypto",
		Symbol:         symbol,
	}
}

func newWatcher(repo *stubWatchRepo, crypto *stubCrypto, notifier *stubNotifier) *Service {
	return NewService(Deps{
		Log:       zerolog.Nop(),
		Repo:      repo,
		Stocks:    &stubStocks{},
		Crypto:    crypto,
		Forex:     &stubForex{},
		Notifier:  notifier,
		Platform:  "telegram",
		Threshold: 5,
	})
}

func TestTickFirstObservationDoesNotNotify(t *testing.T) {
	repo := &stubWatchRepo{items: []domain.WatchItem{watchItem("BTC")}}
	crypto := &stubCrypto{assets: map[string]domain.CryptoAsset{"BTC": {Price: fptr(40000)}}}
	notifier := &stubNotifier{}

	if err := newWatcher(repo, crypto, notifier).Tick(context.Background()); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("первое наблюдение не должно уведомлять: %v", notifier.sent)
	}
	if len(repo.upserts) != 1 || repo.upserts[0].notified {
		t.Fatalf("состояние должно сохраниться без отметки: %+v", repo.upserts)
	}
	if *repo.upserts[0].price != 40000 {
		t.Fatalf("базовая цена %v, ожидалось 40000", *repo.upserts[0].price)
	}
}

func TestTickNotifiesAboveThreshold(t *testing.T) {
	key := domain.WatchKey{UserID: 1, AssetType: "crypto", Symbol: "BTC"}
	repo := &stubWatchRepo{
		items:  []domain.WatchItem{watchItem("BTC")},
		states: map[domain.WatchKey]domain.PriceWatchState{key: {LastPrice: fptr(40000)}},
	}
	crypto := &stubCrypto{assets: map[string]domain.CryptoAsset{"BTC": {Price: fptr(44000)}}}
	notifier := &stubNotifier{}

	if err := newWatcher(repo, crypto, notifier).Tick(context.Background()); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("ожидалось одно уведомление, получено %d", len(notifier.sent))
	}
	if len(repo.upserts) != 1 || !repo.upserts[0].notified {
		t.Fatalf("доставка должна пометить состояние: %+v", repo.upserts)
	}
	if *repo.upserts[0].price != 44000 {
		t.Fatalf("базовая цена должна сброситься на 44000, получено %v", *repo.upserts[0].price)
	}
}

func TestTickBelowThresholdOnlyUpdatesPrice(t *testing.T) {
	key := domain.WatchKey{UserID: 1, AssetType: "crypto", Symbol: "BTC"}
	repo := &stubWatchRepo{
		items:  []domain.WatchItem{watchItem("BTC")},
		states: map[domain.WatchKey]domain.PriceWatchState{key: {LastPrice: fptr(40000)}},
	}
	crypto := &stubCrypto{assets: map[string]domain.CryptoAsset{"BTC": {Price: fptr(40400)}}}
	notifier := &stubNotifier{}

	if err := newWatcher(repo, crypto, notifier).Tick(context.Background()); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("движение в 1%% не должно уведомлять: %v", notifier.sent)
	}
	if len(repo.upserts) != 1 || repo.upserts[0].notified || *repo.upserts[0].price != 40400 {
		t.Fatalf("цена должна обновиться без отметки: %+v", repo.upserts)
	}
}

func TestTickFailedDeliveryLeavesUnnotified(t *testing.T) {
	key := domain.WatchKey{UserID: 1, AssetType: "crypto", Symbol: "BTC"}
	repo := &stubWatchRepo{
		items:  []domain.WatchItem{watchItem("BTC")},
		states: map[domain.WatchKey]domain.PriceWatchState{key: {LastPrice: fptr(40000)}},
	}
	crypto := &stubCrypto{assets: map[string]domain.CryptoAsset{"BTC": {Price: fptr(50000)}}}
	notifier := &stubNotifier{err: errors.New("blocked by user")}

	if err := newWatcher(repo, crypto, notifier).Tick(context.Background()); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(repo.upserts) != 1 || repo.upserts[0].notified {
		t.Fatalf("сбой доставки не должен помечать состояние: %+v", repo.upserts)
	}
}

func TestTickSkipsMissingPrice(t *testing.T) {
	repo := &stubWatchRepo{items: []domain.WatchItem{watchItem("XYZ")}}
	crypto := &stubCrypto{assets: map[string]domain.CryptoAsset{}}
	notifier := &stubNotifier{}

	if err := newWatcher(repo, crypto, notifier).Tick(context.Background()); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(repo.upserts) != 0 {
		t.Fatalf("без цены состояние не трогается: %+v", repo.upserts)
	}
}

func TestTickMixedClassesObservesEveryProvider(t *testing.T) {
	btc := watchItem("BTC")
	aapl := watchItem("AAPL")
	aapl.AssetType = "stock"
	eurusd := watchItem("EURUSD")
	eurusd.AssetType = "forex"

	repo := &stubWatchRepo{items: []domain.WatchItem{btc, aapl, eurusd}}
	service := NewService(Deps{
		Log:      zerolog.Nop(),
		Repo:     repo,
		Stocks:   &stubStocks{quotes: map[string]domain.Quote{"AAPL": {Price: fptr(190)}}},
		Crypto:   &stubCrypto{assets: map[string]domain.CryptoAsset{"BTC": {Price: fptr(40000)}}},
		Forex:    &stubForex{quotes: map[string]domain.ForexQuote{"EURUSD": {Rate: fptr(1.09)}}},
		Notifier: &stubNotifier{},
		Platform: "telegram",
	})

	if err := service.Tick(context.Background()); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(repo.upserts) != 3 {
		t.Fatalf("ожидалось 3 сохранённых состояния, получено %d: %+v", len(repo.upserts), repo.upserts)
	}
	bySymbol := map[string]float64{}
	for _, u := range repo.upserts {
		if u.price == nil {
			t.Fatalf("цена не должна быть nil: %+v", u)
		}
		bySymbol[u.key.Symbol] = *u.price
	}
	if bySymbol["BTC"] != 40000 || bySymbol["AAPL"] != 190 || bySymbol["EURUSD"] != 1.09 {
		t.Fatalf("неожиданные базовые цены: %v", bySymbol)
	}
}

func TestNewServiceDefaults(t *testing.T) {
	s := NewService(Deps{Log: zerolog.Nop()})
	if s.threshold != 5 {
		t.Fatalf("порог по умолчанию %v, ожидалось 5", s.threshold)
	}
	if s.now == nil {
		t.Fatal("часы по умолчанию должны быть заданы")
	}
}

func TestFormatPrice(t *testing.T) {
	if got := formatPrice(1234.5); got != "$1234.50" {
		t.Fatalf("formatPrice(1234.5) = %q", got)
	}
	if got := formatPrice(0.000123); got != "$0.000123" {
		t.Fatalf("formatPrice(0.000123) = %q", got)
	}
	if got := formatPrice(0); got != "$0.00" {
		t.Fatalf("formatPrice(0) = %q", got)
	}
}
