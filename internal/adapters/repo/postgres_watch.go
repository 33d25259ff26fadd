package repo

import (
	"time"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/infra/metrics"
)

// ListWatchItems реализует domain.WatchRepo. Набор наблюдения строится
// как объединение портфелей и избранного всех пользователей платформы.
func (p *Postgres) ListWatchItems(platform string) ([]domain.WatchItem, error) {
	ctx, cancel := p.connCtx()
	defer cancel()

	start := time.Now()
	rows, err := p.pool.Query(ctx, `
SELECT u.id, u.platform_user_id, u.language, w.asset_type, w.symbol
FROM (
    SELECT user_id, asset_type, symbol FROM portfolio_items
    UNION
    SELECT user_id, asset_type, symbol FROM favorites
) w
JOIN users u ON u.id = w.user_id
WHERE u.platform = $1
ORDER BY u.id, w.asset_type, w.symbol
`, platform)
	metrics.ObserveNetworkRequest("postgres", "watch_list", "price_watch", start, err)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := make(map[domain.WatchKey]struct{})
	var items []domain.WatchItem
	for rows.Next() {
		var item domain.WatchItem
		if err := rows.Scan(&item.UserID, &item.PlatformUserID, &item.Language, &item.AssetType, &item.Symbol); err != nil {
			return nil, err
		}
		key := item.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, item)
	}
	return items, rows.Err()
}

// LoadStates реализует domain.WatchRepo.
func (p *Postgres) LoadStates() (map[domain.WatchKey]domain.PriceWatchState, error) {
	ctx, cancel := p.connCtx()
	defer cancel()

	start := time.Now()
	rows, err := p.pool.Query(ctx, `
SELECT user_id, asset_type, symbol, last_price, last_notified_at FROM price_watch
`)
	metrics.ObserveNetworkRequest("postgres", "watch_load_states", "price_watch", start, err)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	states := make(map[domain.WatchKey]domain.PriceWatchState)
	for rows.Next() {
		var (
			key   domain.WatchKey
			state domain.PriceWatchState
		)
		if err := rows.Scan(&key.UserID, &key.AssetType, &key.Symbol, &state.LastPrice, &state.LastNotifiedAt); err != nil {
			return nil, err
		}
		states[key] = state
	}
	return states, rows.Err()
}

// UpsertState реализует domain.WatchRepo. Последняя цена переписывается
// всегда, отметка об уведомлении только при notified.
func (p *Postgres) UpsertState(key domain.WatchKey, lastPrice *float64, notified bool, now time.Time) error {
	ctx, cancel := p.connCtx()
	defer cancel()

	start := time.Now()
	_, err := p.pool.Exec(ctx, `
INSERT INTO price_watch (user_id, asset_type, symbol, last_price, last_notified_at, updated_at)
VALUES ($1, $2, $3, $4, CASE WHEN $5 THEN $6::timestamptz ELSE NULL END, $6)
ON CONFLICT (user_id, asset_type, symbol) DO UPDATE SET
    last_price = EXCLUDED.last_price,
    last_notified_at = CASE WHEN $5 THEN $6::timestamptz ELSE price_watch.last_notified_at END,
    updated_at = $6
`, key.UserID, key.AssetType, key.Symbol, lastPrice, notified, now)
	metrics.ObserveNetworkRequest("postgres", "watch_upsert_state", "price_watch", start, err)
	return err
}
