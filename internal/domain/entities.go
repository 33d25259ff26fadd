package domain

import (
	"strings"
	"time"
)

// User описывает пользователя бота на одной из платформ.
type User struct {
	ID               int64
	Platform         string
	PlatformUserID   string
	Username         string
	Tier             Tier
	IsAdmin          bool
	StripeCustomerID string
	Language         string
	Badge            Badge
	CreatedAt        time.Time
}

// PortfolioItem описывает позицию портфеля.
type PortfolioItem struct {
	ID        int64
	UserID    int64
	AssetType string
	Symbol    string
	Amount    float64
	CostBasis float64
	Source    string
	CreatedAt time.Time
}

// Favorite описывает избранный актив пользователя.
type Favorite struct {
	ID        int64
	UserID    int64
	AssetType string
	Symbol    string
	CreatedAt time.Time
}

// Alert описывает ценовой алерт пользователя.
type Alert struct {
	ID          int64
	UserID      int64
	AssetType   string
	Symbol      string
	Condition   string
	TargetValue float64
	IsActive    bool
	CreatedAt   time.Time
}

// LinkedAccount описывает привязанную биржу или кошелёк.
type LinkedAccount struct {
	ID        int64
	UserID    int64
	Kind      string
	Provider  string
	Label     string
	Data      map[string]string
	CreatedAt time.Time
}

// WatchKey идентифицирует наблюдаемый актив пользователя.
type WatchKey struct {
	UserID    int64
	AssetType string
	Symbol    string
}

// WatchItem описывает актив из объединённого набора наблюдения
// (портфель плюс избранное) вместе с данными для доставки уведомления.
type WatchItem struct {
	UserID         int64
	PlatformUserID string
	Language       string
	AssetType      string
	Symbol         string
}

// Key возвращает нормализованный ключ наблюдения.
func (w WatchItem) Key() WatchKey {
	return WatchKey{
		UserID:    w.UserID,
		AssetType: strings.ToLower(w.AssetType),
		Symbol:    strings.ToUpper(w.Symbol),
	}
}

// PriceWatchState хранит последнее известное состояние наблюдаемого актива.
type PriceWatchState struct {
	LastPrice      *float64
	LastNotifiedAt *time.Time
}

// AuditEntry описывает запись журнала действий.
type AuditEntry struct {
	UserID   int64
	Action   string
	Metadata string
}
