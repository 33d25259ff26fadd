package repo

import (
	"time"

	"github.com/jackc/pgx/v5"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/infra/metrics"
)

// AddItem реализует domain.PortfolioRepo.
func (p *Postgres) AddItem(userID int64, item domain.PortfolioItem) error {
	ctx, cancel := p.connCtx()
	defer cancel()

	source := item.Source
	if source == "" {
		source = "manual"
	}

	start := time.Now()
	_, err := p.pool.Exec(ctx, `
INSERT INTO portfolio_items (user_id, asset_type, symbol, amount, cost_basis, source)
VALUES ($1, $2, $3, $4, $5, $6)
`, userID, item.AssetType, item.Symbol, item.Amount, item.CostBasis, source)
	metrics.ObserveNetworkRequest("postgres", "portfolio_add", "portfolio_items", start, err)
	return err
}

// RemoveBySymbol реализует domain.PortfolioRepo.
func (p *Postgres) RemoveBySymbol(userID int64, symbol string) (int64, error) {
	ctx, cancel := p.connCtx()
	defer cancel()

	start := time.Now()
	tag, err := p.pool.Exec(ctx, `
DELETE FROM portfolio_items WHERE user_id = $1 AND UPPER(symbol) = UPPER($2)
`, userID, symbol)
	metrics.ObserveNetworkRequest("postgres", "portfolio_remove", "portfolio_items", start, err)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListItems реализует domain.PortfolioRepo.
func (p *Postgres) ListItems(userID int64) ([]domain.PortfolioItem, error) {
	ctx, cancel := p.connCtx()
	defer cancel()

	start := time.Now()
	rows, err := p.pool.Query(ctx, `
SELECT id, user_id, asset_type, symbol, amount, cost_basis, source, created_at
FROM portfolio_items WHERE user_id = $1 ORDER BY id
`, userID)
	metrics.ObserveNetworkRequest("postgres", "portfolio_list", "portfolio_items", start, err)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.PortfolioItem
	for rows.Next() {
		var item domain.PortfolioItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.AssetType, &item.Symbol, &item.Amount, &item.CostBasis, &item.Source, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ReplaceBySource реализует domain.PortfolioRepo.
func (p *Postgres) ReplaceBySource(userID int64, source string, items []domain.PortfolioItem) error {
	ctx, cancel := p.connCtx()
	defer cancel()

	start := time.Now()
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	metrics.ObserveNetworkRequest("postgres", "begin_tx", "portfolio_items", start, err)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	start = time.Now()
	_, err = tx.Exec(ctx, `DELETE FROM portfolio_items WHERE user_id = $1 AND source = $2`, userID, source)
	metrics.ObserveNetworkRequest("postgres", "portfolio_replace_delete", "portfolio_items", start, err)
	if err != nil {
		return err
	}

	for _, item := range items {
		start = time.Now()
		_, err = tx.Exec(ctx, `
INSERT INTO portfolio_items (user_id, asset_type, symbol, amount, cost_basis, source)
VALUES ($1, $2, $3, $4, $5, $6)
`, userID, item.AssetType, item.Symbol, item.Amount, item.CostBasis, source)
		metrics.ObserveNetworkRequest("postgres", "portfolio_replace_insert", "portfolio_items", start, err)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Add реализует domain.FavoriteRepo.
func (p *Postgres) Add(userID int64, assetType, symbol string) (bool, error) {
	ctx, cancel := p.connCtx()
	defer cancel()

	start := time.Now()
	tag, err := p.pool.Exec(ctx, `
INSERT INTO favorites (user_id, asset_type, symbol) VALUES ($1, LOWER($2), UPPER($3))
ON CONFLICT (user_id, asset_type, symbol) DO NOTHING
`, userID, assetType, symbol)
	metrics.ObserveNetworkRequest("postgres", "favorites_add", "favorites", start, err)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Remove реализует domain.FavoriteRepo.
func (p *Postgres) Remove(userID int64, assetType, symbol string) (bool, error) {
	ctx, cancel := p.connCtx()
	defer cancel()

	start := time.Now()
	tag, err := p.pool.Exec(ctx, `
DELETE FROM favorites WHERE user_id = $1 AND asset_type = LOWER($2) AND symbol = UPPER($3)
`, userID, assetType, symbol)
	metrics.ObserveNetworkRequest("postgres", "favorites_remove", "favorites", start, err)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// List реализует domain.FavoriteRepo.
func (p *Postgres) List(userID int64) ([]domain.Favorite, error) {
	ctx, cancel := p.connCtx()
	defer cancel()

	start := time.Now()
	rows, err := p.pool.Query(ctx, `
SELECT id, user_id, asset_type, symbol, created_at FROM favorites WHERE user_id = $1 ORDER BY id
`, userID)
	metrics.ObserveNetworkRequest("postgres", "favorites_list", "favorites", start, err)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []domain.Favorite
	for rows.Next() {
		var f domain.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.AssetType, &f.Symbol, &f.CreatedAt); err != nil {
			return nil, err
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}
