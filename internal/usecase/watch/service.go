package watch

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/i18n"
	"tg-invest-bot/internal/infra/metrics"
)

const tickLockKey = "watch:tick:lock"

// Deps перечисляет зависимости наблюдателя за ценами.
type Deps struct {
	Log       zerolog.Logger
	Repo      domain.WatchRepo
	Stocks    domain.StockMarket
	Crypto    domain.CryptoMarket
	Forex     domain.ForexMarket
	Notifier  domain.Notifier
	Cache     domain.Cache
	Platform  string
	Threshold float64
	Now       func() time.Time
}

// Service периодически сверяет цены наблюдаемых активов и шлёт
// уведомления о значимых движениях.
type Service struct {
	log       zerolog.Logger
	repo      domain.WatchRepo
	stocks    domain.StockMarket
	crypto    domain.CryptoMarket
	forex     domain.ForexMarket
	notifier  domain.Notifier
	cache     domain.Cache
	platform  string
	threshold float64
	now       func() time.Time
}

// NewService создаёт наблюдателя. Порог задаётся в процентах.
func NewService(deps Deps) *Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	threshold := deps.Threshold
	if threshold <= 0 {
		threshold = 5
	}
	return &Service{
		log:       deps.Log,
		repo:      deps.Repo,
		stocks:    deps.Stocks,
		crypto:    deps.Crypto,
		forex:     deps.Forex,
		notifier:  deps.Notifier,
		cache:     deps.Cache,
		platform:  deps.Platform,
		threshold: threshold,
		now:       now,
	}
}

// Run выполняет проходы с заданным интервалом до отмены контекста.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := s.Tick(ctx); err != nil {
			s.log.Error().Err(err).Msg("проход наблюдения не удался")
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Tick выполняет один проход. Замок в кэше не даёт параллельным
// репликам обойти один и тот же набор дважды.
func (s *Service) Tick(ctx context.Context) error {
	if s.cache == nil {
		return s.tick(ctx)
	}
	return s.cache.Once(tickLockKey, time.Minute, func() error {
		return s.tick(ctx)
	})
}

func (s *Service) tick(ctx context.Context) error {
	start := s.now()
	defer func() {
		metrics.WatchTickSeconds.Observe(time.Since(start).Seconds())
	}()

	items, err := s.repo.ListWatchItems(s.platform)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	states, err := s.repo.LoadStates()
	if err != nil {
		return err
	}

	prices := s.fetchPrices(ctx, items)
	now := s.now()
	for _, item := range items {
		key := item.Key()
		price, ok := prices[priceKey(item)]
		if !ok || price == nil {
			continue
		}

		state, seen := states[key]
		if !seen || state.LastPrice == nil {
			if err := s.repo.UpsertState(key, price, false, now); err != nil {
				s.log.Error().Err(err).Str("symbol", key.Symbol).Msg("не удалось сохранить состояние")
			}
			continue
		}

		pct := (*price - *state.LastPrice) / *state.LastPrice * 100
		notified := false
		if math.Abs(pct) >= s.threshold && *state.LastPrice != 0 {
			notified = s.notify(ctx, item, pct, *price)
		}
		if err := s.repo.UpsertState(key, price, notified, now); err != nil {
			s.log.Error().Err(err).Str("symbol", key.Symbol).Msg("не удалось сохранить состояние")
		}
	}
	return nil
}

func priceKey(item domain.WatchItem) string {
	return assetClass(item.AssetType) + ":" + strings.ToUpper(item.Symbol)
}

func assetClass(assetType string) string {
	switch strings.ToLower(assetType) {
	case "stock", "fund", "etf":
		return "stock"
	case "forex":
		return "forex"
	}
	return "crypto"
}

// fetchPrices пакетно запрашивает цены по классам активов.
// Ключ результата — "класс:СИМВОЛ".
func (s *Service) fetchPrices(ctx context.Context, items []domain.WatchItem) map[string]*float64 {
	classSymbols := map[string][]string{}
	seen := map[string]bool{}
	for _, item := range items {
		key := priceKey(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		class := assetClass(item.AssetType)
		classSymbols[class] = append(classSymbols[class], strings.ToUpper(item.Symbol))
	}
	for _, symbols := range classSymbols {
		sort.Strings(symbols)
	}

	// Провайдеры независимы, классы опрашиваются параллельно.
	prices := make(map[string]*float64, len(seen))
	var mu sync.Mutex
	var wg sync.WaitGroup

	fetch := func(class string, load func([]string)) {
		symbols := classSymbols[class]
		if len(symbols) == 0 {
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			load(symbols)
		}()
	}

	fetch("stock", func(symbols []string) {
		quotes, err := s.stocks.Quotes(ctx, symbols)
		if err != nil {
			s.log.Warn().Err(err).Msg("не удалось получить котировки акций")
		}
		mu.Lock()
		defer mu.Unlock()
		for symbol, quote := range quotes {
			prices["stock:"+strings.ToUpper(symbol)] = quote.Price
		}
	})
	fetch("crypto", func(symbols []string) {
		assets, err := s.crypto.Assets(ctx, symbols)
		if err != nil {
			s.log.Warn().Err(err).Msg("не удалось получить котировки крипты")
		}
		mu.Lock()
		defer mu.Unlock()
		for symbol, asset := range assets {
			prices["crypto:"+strings.ToUpper(symbol)] = asset.Price
		}
	})
	fetch("forex", func(pairs []string) {
		quotes, err := s.forex.Pairs(ctx, pairs)
		if err != nil {
			s.log.Warn().Err(err).Msg("не удалось получить валютные курсы")
		}
		mu.Lock()
		defer mu.Unlock()
		for pair, quote := range quotes {
			prices["forex:"+strings.ToUpper(pair)] = quote.Rate
		}
	})

	wg.Wait()
	return prices
}

// notify шлёт уведомление и возвращает true при успешной доставке.
// Недоставленное уведомление не помечается, попытка повторится
// только после нового движения от свежей базовой цены.
func (s *Service) notify(ctx context.Context, item domain.WatchItem, pct, price float64) bool {
	text := i18n.TF(item.Language, "msg.price_moved", map[string]string{
		"symbol": strings.ToUpper(item.Symbol),
		"pct":    fmt.Sprintf("%+.2f%%", pct),
		"price":  formatPrice(price),
	})
	if err := s.notifier.Notify(ctx, item.PlatformUserID, text); err != nil {
		s.log.Error().Err(err).
			Str("platform_user_id", item.PlatformUserID).
			Str("symbol", item.Symbol).
			Msg("не удалось доставить уведомление")
		return false
	}
	metrics.WatchNotificationsTotal.Inc()
	return true
}

func formatPrice(v float64) string {
	if v != 0 && math.Abs(v) < 1 {
		return fmt.Sprintf("$%.6f", v)
	}
	return fmt.Sprintf("$%.2f", v)
}
