package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrExchangeUnavailable означает, что интеграция с биржами отключена.
	ErrExchangeUnavailable = errors.New("интеграция с биржами недоступна")
	// ErrExchangeUnknown означает неподдерживаемого провайдера.
	ErrExchangeUnknown = errors.New("неизвестный провайдер биржи")
	// ErrNotFound означает отсутствие запрошенной сущности.
	ErrNotFound = errors.New("не найдено")
)

// PlatformProfile содержит идентичность пользователя, полученную от транспорта.
type PlatformProfile struct {
	Platform       string
	PlatformUserID string
	Username       string
	Language       string
}

// UserRepo управляет пользователями.
type UserRepo interface {
	UpsertByPlatformID(profile PlatformProfile) (User, error)
	GetByPlatformID(platform, platformUserID string) (User, error)
	UpdateLanguage(userID int64, language string) error
	UpdateTier(userID int64, tier Tier) error
	// UpdateBadge возвращает false, если пользователь не найден.
	UpdateBadge(platform, platformUserID string, badge Badge) (bool, error)
	ListPlatformUserIDs(platform string) ([]string, error)
	CountByTier() (map[Tier]int, error)
}

// PortfolioRepo управляет портфелями и их позициями.
type PortfolioRepo interface {
	AddItem(userID int64, item PortfolioItem) error
	// RemoveBySymbol возвращает количество удалённых позиций.
	RemoveBySymbol(userID int64, symbol string) (int64, error)
	ListItems(userID int64) ([]PortfolioItem, error)
	// ReplaceBySource заменяет все позиции с данным источником на новые.
	ReplaceBySource(userID int64, source string, items []PortfolioItem) error
}

// FavoriteRepo управляет избранными активами.
type FavoriteRepo interface {
	// Add возвращает false, если актив уже был в избранном.
	Add(userID int64, assetType, symbol string) (bool, error)
	Remove(userID int64, assetType, symbol string) (bool, error)
	List(userID int64) ([]Favorite, error)
}

// AlertRepo управляет ценовыми алертами.
type AlertRepo interface {
	Create(alert Alert) (Alert, error)
	ListActive(userID int64) ([]Alert, error)
}

// LinkRepo управляет привязанными биржами и кошельками.
type LinkRepo interface {
	AddLink(link LinkedAccount) (LinkedAccount, error)
	GetLink(userID, linkID int64) (LinkedAccount, error)
	ListLinks(userID int64) ([]LinkedAccount, error)
	RemoveLink(userID, linkID int64) (bool, error)
}

// WatchRepo управляет состоянием фонового наблюдения за ценами.
type WatchRepo interface {
	// ListWatchItems возвращает объединение портфелей и избранного,
	// дедуплицированное по (пользователь, класс, символ).
	ListWatchItems(platform string) ([]WatchItem, error)
	LoadStates() (map[WatchKey]PriceWatchState, error)
	// UpsertState всегда обновляет последнюю цену; отметку об уведомлении
	// переписывает только при notified.
	UpsertState(key WatchKey, lastPrice *float64, notified bool, now time.Time) error
}

// AuditRepo пишет журнал действий.
type AuditRepo interface {
	Record(entry AuditEntry) error
}

// FeatureToggleRepo хранит административные переключатели функций.
type FeatureToggleRepo interface {
	// Toggle переключает флаг и возвращает новое состояние.
	Toggle(feature string) (bool, error)
	IsEnabled(feature string) (bool, error)
}

// StockMarket предоставляет данные по акциям и ETF.
type StockMarket interface {
	Quote(ctx context.Context, symbol string) (Quote, error)
	Quotes(ctx context.Context, symbols []string) (map[string]Quote, error)
	Metrics(ctx context.Context, symbol string) (StockMetrics, error)
	Profile(ctx context.Context, symbol string) (CompanyProfile, error)
	Dividends(ctx context.Context, symbol string, from, to time.Time) ([]DividendPayment, error)
	Earnings(ctx context.Context, symbol string) ([]EarningsReport, error)
	Search(ctx context.Context, query string) ([]SymbolMatch, error)
	Sentiment(ctx context.Context, symbol string) (SocialSentiment, error)
}

// CryptoMarket предоставляет данные по криптоактивам.
type CryptoMarket interface {
	Asset(ctx context.Context, symbol string) (CryptoAsset, error)
	Assets(ctx context.Context, symbols []string) (map[string]CryptoAsset, error)
	Listings(ctx context.Context, limit int) ([]CryptoAsset, error)
	Dominance(ctx context.Context) (MarketDominance, error)
}

// ForexMarket предоставляет котировки валютных пар вида "EUR/USD".
type ForexMarket interface {
	Pair(ctx context.Context, pair string) (ForexQuote, error)
	Pairs(ctx context.Context, pairs []string) (map[string]ForexQuote, error)
}

// TonExplorer предоставляет данные сети TON.
type TonExplorer interface {
	Price(ctx context.Context) (CryptoAsset, error)
	Wallet(ctx context.Context, address string) (TonWallet, error)
	WalletJettons(ctx context.Context, address string) ([]TonJetton, error)
	Jettons(ctx context.Context, limit, offset int) ([]TonJetton, error)
	ResolveDomain(ctx context.Context, name string) (TonDomain, error)
	AccountDomains(ctx context.Context, address string) ([]TonDomain, error)
	AccountNFTs(ctx context.Context, address string, limit int) ([]TonNFT, error)
}

// NFTMarket предоставляет данные маркетплейса NFT.
type NFTMarket interface {
	Collection(ctx context.Context, slug string) (NFTCollection, error)
	TopCollections(ctx context.Context, limit int) ([]NFTCollection, error)
	Search(ctx context.Context, query string) ([]NFTCollection, error)
}

// NewsFeed предоставляет новостную ленту.
type NewsFeed interface {
	Headlines(ctx context.Context, limit int) ([]NewsItem, error)
	Search(ctx context.Context, query string, limit int) ([]NewsItem, error)
}

// Translator переводит тексты.
type Translator interface {
	Configured() bool
	// Available сообщает, поддерживает ли сервис целевой язык.
	Available(ctx context.Context, target string) bool
	// TranslateAll возвращает переводы и false, если перевод не удался.
	TranslateAll(ctx context.Context, texts []string, target string) ([]string, bool)
}

// ExchangeClient запрашивает балансы на привязанной бирже.
type ExchangeClient interface {
	// FetchBalances возвращает ненулевые балансы по символам.
	FetchBalances(ctx context.Context, provider, apiKey, apiSecret, passphrase string) (map[string]float64, error)
}

// PaymentProvider выдаёт платёжные ссылки и статус подписки.
type PaymentProvider interface {
	Configured() bool
	CheckoutURL(ctx context.Context, user User, tier Tier) (string, error)
	PortalURL(ctx context.Context, user User) (string, error)
	SubscriptionStatus(ctx context.Context, user User) (string, error)
}

// Notifier доставляет сообщение пользователю платформы.
type Notifier interface {
	Notify(ctx context.Context, platformUserID, text string) error
}

// ChartRenderer строит изображения диаграмм.
type ChartRenderer interface {
	AllocationPie(values map[string]float64) ([]byte, error)
}

// Cache используется для простых TTL-хранилищ.
type Cache interface {
	Once(key string, ttl time.Duration, fn func() error) error
	Set(key string, value []byte, ttl time.Duration) error
	Get(key string) ([]byte, error)
}
