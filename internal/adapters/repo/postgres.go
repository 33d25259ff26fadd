package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tg-invest-bot/internal/domain"
	"tg-invest-bot/internal/infra/metrics"
)

// Postgres реализует репозитории на основе pgxpool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres создаёт адаптер БД.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) connCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// UpsertByPlatformID реализует domain.UserRepo.
func (p *Postgres) UpsertByPlatformID(profile domain.PlatformProfile) (domain.User, error) {
	ctx, cancel := p.connCtx()
	defer cancel()

	username := strings.TrimSpace(profile.Username)
	language := strings.TrimSpace(profile.Language)

	start := time.Now()
	row := p.pool.QueryRow(ctx, `
INSERT INTO users (platform, platform_user_id, username, language)
VALUES ($1, $2, $3, COALESCE(NULLIF($4,''),'en'))
ON CONFLICT (platform, platform_user_id) DO UPDATE SET
    username = COALESCE(NULLIF(EXCLUDED.username,''), users.username),
    updated_at = now()
RETURNING id, platform, platform_user_id, username, tier, is_admin, stripe_customer_id, language, badge, created_at
`, profile.Platform, profile.PlatformUserID, username, language)
	user, err := scanUser(row)
	metrics.ObserveNetworkRequest("postgres", "users_upsert", "users", start, err)
	return user, err
}

// GetByPlatformID реализует domain.UserRepo.
func (p *Postgres) GetByPlatformID(platform, platformUserID string) (domain.User, error) {
	ctx, cancel := p.connCtx()
	defer cancel()

	start := time.Now()
	row := p.pool.QueryRow(ctx, `
SELECT id, platform, platform_user_id, username, tier, is_admin, stripe_customer_id, language, badge, created_at
FROM users WHERE platform = $1 AND platform_user_id = $2
`, platform, platformUserID)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		err = domain.ErrNotFound
	}
	metrics.ObserveNetworkRequest("postgres", "users_get", "users", start, err)
	return user, err
}

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		u     domain.User
		tier  string
		badge string
	)
	err := row.Scan(&u.ID, &u.Platform, &u.PlatformUserID, &u.Username, &tier, &u.IsAdmin, &u.StripeCustomerID, &u.Language, &badge, &u.CreatedAt)
	if err != nil {
		return domain.User{}, err
	}
	u.Tier = domain.NormalizeTier(tier)
	if b, ok := domain.NormalizeBadge(badge); ok {
		u.Badge = b
	}
	return u, nil
}

// UpdateLanguage реализует domain.UserRepo.
func (p *Postgres) UpdateLanguage(userID int64, language string) error {
	ctx, cancel := p.connCtx()
	defer cancel()

	start := time.Now()
	_, err := p.pool.Exec(ctx, `UPDATE users SET language = $2, updated_at = now() WHERE id = $1`, userID, language)
	metrics.ObserveNetworkRequest("postgres", "users_update_language", "users", start, err)
	return err
}

// UpdateTier реализует domain.UserRepo.
func (p *Postgres) UpdateTier(userID int64, tier domain.Tier) error {
	ctx, cancel := p.connCtx()
	defer cancel()

	start := time.Now()
	_, err := p.pool.Exec(ctx, `UPDATE users SET tier = $2, updated_at = now() WHERE id = $1`, userID, string(tier))
	metrics.ObserveNetworkRequest("postgres", "users_update_tier", "users", start, err)
	return err
}

// UpdateBadge реализует domain.UserRepo.
func (p *Postgres) UpdateBadge(platform, platformUserID string, badge domain.Badge) (bool, error) {
	ctx, cancel := p.connCtx()
	defer cancel()

	start := time.Now()
	tag, err := p.pool.Exec(ctx, `
UPDATE users SET badge = $3, updated_at = now() WHERE platform = $1 AND platform_user_id = $2
`, platform, platformUserID, string(badge))
	metrics.ObserveNetworkRequest("postgres", "users_update_badge", "users", start, err)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListPlatformUserIDs реализует domain.UserRepo.
func (p *Postgres) ListPlatformUserIDs(platform string) ([]string, error) {
	ctx, cancel := p.connCtx()
	defer cancel()

	start := time.Now()
	rows, err := p.pool.Query(ctx, `SELECT platform_user_id FROM users WHERE platform = $1 ORDER BY id`, platform)
	metrics.ObserveNetworkRequest("postgres", "users_list_ids", "users", start, err)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountByTier реализует domain.UserRepo.
func (p *Postgres) CountByTier() (map[domain.Tier]int, error) {
	ctx, cancel := p.connCtx()
	defer cancel()

	start := time.Now()
	rows, err := p.pool.Query(ctx, `SELECT tier, COUNT(*) FROM users GROUP BY tier`)
	metrics.ObserveNetworkRequest("postgres", "users_count_by_tier", "users", start, err)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.Tier]int)
	for rows.Next() {
		var (
			tier  string
			count int
		)
		if err := rows.Scan(&tier, &count); err != nil {
			return nil, err
		}
		counts[domain.NormalizeTier(tier)] += count
	}
	return counts, rows.Err()
}

// Record реализует domain.AuditRepo.
func (p *Postgres) Record(entry domain.AuditEntry) error {
	ctx, cancel := p.connCtx()
	defer cancel()

	start := time.Now()
	_, err := p.pool.Exec(ctx, `
INSERT INTO audit_log (user_id, action, payload) VALUES (NULLIF($1, 0), $2, $3)
`, entry.UserID, entry.Action, entry.Metadata)
	metrics.ObserveNetworkRequest("postgres", "audit_insert", "audit_log", start, err)
	return err
}

// Toggle реализует domain.FeatureToggleRepo.
func (p *Postgres) Toggle(feature string) (bool, error) {
	ctx, cancel := p.connCtx()
	defer cancel()

	start := time.Now()
	var enabled bool
	err := p.pool.QueryRow(ctx, `
INSERT INTO feature_toggles (feature, enabled) VALUES ($1, FALSE)
ON CONFLICT (feature) DO UPDATE SET enabled = NOT feature_toggles.enabled, updated_at = now()
RETURNING enabled
`, feature).Scan(&enabled)
	metrics.ObserveNetworkRequest("postgres", "toggles_flip", "feature_toggles", start, err)
	return enabled, err
}

// IsEnabled реализует domain.FeatureToggleRepo.
func (p *Postgres) IsEnabled(feature string) (bool, error) {
	ctx, cancel := p.connCtx()
	defer cancel()

	start := time.Now()
	var enabled bool
	err := p.pool.QueryRow(ctx, `SELECT enabled FROM feature_toggles WHERE feature = $1`, feature).Scan(&enabled)
	metrics.ObserveNetworkRequest("postgres", "toggles_get", "feature_toggles", start, err)
	if errors.Is(err, pgx.ErrNoRows) {
		return true, nil
	}
	return enabled, err
}
