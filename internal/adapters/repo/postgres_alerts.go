package repo

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/infra/metrics"
)

// Create реализует domain.AlertRepo.
func (p *Postgres) Create(alert domain.Alert) (domain.Alert, error) {
	ctx, cancel := p.connCtx()
	defer cancel()

	start := time.Now()
	err := p.pool.QueryRow(ctx, `
INSERT INTO alerts (user_id, asset_type, symbol, condition, target)
VALUES ($1, LOWER($2), UPPER($3), $4, $5)
RETURNING id, created_at
`, alert.UserID, alert.AssetType, alert.Symbol, alert.Condition, alert.TargetValue).Scan(&alert.ID, &alert.CreatedAt)
	metrics.ObserveNetworkRequest("postgres", "alerts_create", "alerts", start, err)
	if err != nil {
		return domain.Alert{}, err
	}
	alert.IsActive = true
	return alert, nil
}

// ListActive реализует domain.AlertRepo.
func (p *Postgres) ListActive(userID int64) ([]domain.Alert, error) {
	ctx, cancel := p.connCtx()
	defer cancel()

	start := time.Now()
	rows, err := p.pool.Query(ctx, `
SELECT id, user_id, asset_type, symbol, condition, target, active, created_at
FROM alerts WHERE user_id = $1 AND active ORDER BY id
`, userID)
	metrics.ObserveNetworkRequest("postgres", "alerts_list", "alerts", start, err)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []domain.Alert
	for rows.Next() {
		var a domain.Alert
		if err := rows.Scan(&a.ID, &a.UserID, &a.AssetType, &a.Symbol, &a.Condition, &a.TargetValue, &a.IsActive, &a.CreatedAt); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// AddLink реализует domain.LinkRepo.Add.
func (p *Postgres) AddLink(link domain.LinkedAccount) (domain.LinkedAccount, error) {
	ctx, cancel := p.connCtx()
	defer cancel()

	payload, err := json.Marshal(link.Data)
	if err != nil {
		return domain.LinkedAccount{}, err
	}

	start := time.Now()
	err = p.pool.QueryRow(ctx, `
INSERT INTO linked_accounts (user_id, kind, provider, label, data)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at
`, link.UserID, link.Kind, link.Provider, link.Label, payload).Scan(&link.ID, &link.CreatedAt)
	metrics.ObserveNetworkRequest("postgres", "links_add", "linked_accounts", start, err)
	if err != nil {
		return domain.LinkedAccount{}, err
	}
	return link, nil
}

// GetLink реализует domain.LinkRepo.Get.
func (p *Postgres) GetLink(userID, linkID int64) (domain.LinkedAccount, error) {
	ctx, cancel := p.connCtx()
	defer cancel()

	start := time.Now()
	row := p.pool.QueryRow(ctx, `
SELECT id, user_id, kind, provider, label, data, created_at
FROM linked_accounts WHERE user_id = $1 AND id = $2
`, userID, linkID)
	link, err := scanLink(row)
	if errors.Is(err, pgx.ErrNoRows) {
		err = domain.ErrNotFound
	}
	metrics.ObserveNetworkRequest("postgres", "links_get", "linked_accounts", start, err)
	return link, err
}

// ListLinks реализует domain.LinkRepo.List.
func (p *Postgres) ListLinks(userID int64) ([]domain.LinkedAccount, error) {
	ctx, cancel := p.connCtx()
	defer cancel()

	start := time.Now()
	rows, err := p.pool.Query(ctx, `
SELECT id, user_id, kind, provider, label, data, created_at
FROM linked_accounts WHERE user_id = $1 ORDER BY id
`, userID)
	metrics.ObserveNetworkRequest("postgres", "links_list", "linked_accounts", start, err)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []domain.LinkedAccount
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

// RemoveLink реализует domain.LinkRepo.Remove.
func (p *Postgres) RemoveLink(userID, linkID int64) (bool, error) {
	ctx, cancel := p.connCtx()
	defer cancel()

	start := time.Now()
	tag, err := p.pool.Exec(ctx, `DELETE FROM linked_accounts WHERE user_id = $1 AND id = $2`, userID, linkID)
	metrics.ObserveNetworkRequest("postgres", "links_remove", "linked_accounts", start, err)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanLink(row pgx.Row) (domain.LinkedAccount, error) {
	var (
		link    domain.LinkedAccount
		payload []byte
	)
	if err := row.Scan(&link.ID, &link.UserID, &link.Kind, &link.Provider, &link.Label, &payload, &link.CreatedAt); err != nil {
		return domain.LinkedAccount{}, err
	}
	link.Data = map[string]string{}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &link.Data); err != nil {
			return domain.LinkedAccount{}, err
		}
	}
	return link, nil
}
