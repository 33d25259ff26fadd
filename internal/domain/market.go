package domain

import "time"

// Quote содержит котировку акции или ETF. Недоступные у провайдера
// поля остаются nil и отображаются как N/A.
type Quote struct {
	Symbol    string
	Price     *float64
	Change    *float64
	ChangePct *float64
	PrevClose *float64
	High      *float64
	Low       *float64
	Volume    *float64
}

// StockMetrics содержит фундаментальные показатели компании.
type StockMetrics struct {
	MarketCap     *float64
	EPSTTM        *float64
	EPSGrowth3Y   *float64
	PENormalized  *float64
	PB            *float64
	PS            *float64
	ROE           *float64
	DebtToEquity  *float64
	CurrentRatio  *float64
	Beta          *float64
	DividendYield *float64
	High52W       *float64
	Low52W        *float64
}

// CompanyProfile содержит краткий профиль эмитента.
type CompanyProfile struct {
	Symbol   string
	Name     string
	Exchange string
	Industry string
	Country  string
	IPO      string
	WebURL   string
}

// DividendPayment описывает одну дивидендную выплату.
type DividendPayment struct {
	ExDate string
	Amount *float64
}

// EarningsReport описывает один квартальный отчёт.
type EarningsReport struct {
	Period      string
	EPSActual   *float64
	EPSEstimate *float64
	SurprisePct *float64
}

// SocialSentiment содержит агрегированные упоминания из соцсетей.
type SocialSentiment struct {
	RedditMentions  int
	RedditScore     *float64
	RedditPositive  int
	RedditNegative  int
	TwitterMentions int
	TwitterScore    *float64
	TwitterPositive int
	TwitterNegative int
}

// SymbolMatch описывает результат поиска тикера.
type SymbolMatch struct {
	Symbol      string
	Description string
	Type        string
}

// CryptoAsset содержит данные криптоактива.
type CryptoAsset struct {
	Rank      *int
	Symbol    string
	Name      string
	Price     *float64
	Change24h *float64
	Change7d  *float64
	MarketCap *float64
	Volume24h *float64
}

// MarketDominance содержит доли BTC и ETH в общей капитализации.
type MarketDominance struct {
	BTC *float64
	ETH *float64
}

// ForexQuote содержит котировку валютной пары.
type ForexQuote struct {
	Pair      string
	Rate      *float64
	Open      *float64
	High      *float64
	Low       *float64
	PrevClose *float64
	ChangePct *float64
}

// NewsItem описывает новость.
type NewsItem struct {
	Title       string
	Description string
	Source      string
	URL         string
	PublishedAt time.Time
}

// TonWallet содержит сведения о TON-кошельке.
type TonWallet struct {
	Address    string
	BalanceTON *float64
	Status     string
	Name       string
}

// TonJetton описывает жетон в сети TON.
type TonJetton struct {
	Name         string
	Symbol       string
	Verification string
	Holders      *int64
	Balance      *float64
}

// TonDomain описывает домен .ton.
type TonDomain struct {
	Name      string
	Owner     string
	ExpiresAt *time.Time
}

// TonNFT описывает NFT-предмет в сети TON.
type TonNFT struct {
	Name       string
	Collection string
	Verified   bool
}

// NFTCollection описывает коллекцию NFT на маркетплейсе.
type NFTCollection struct {
	Slug       string
	Name       string
	FloorPrice *float64
	Currency   string
}
