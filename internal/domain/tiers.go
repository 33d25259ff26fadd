package domain

import "strings"

// Tier описывает тариф пользователя.
type Tier string

const (
	TierFree  Tier = "free"
	TierPro   Tier = "pro"
	TierElite Tier = "elite"
)

var tierRank = map[Tier]int{
	TierFree:  0,
	TierPro:   1,
	TierElite: 2,
}

// NormalizeTier приводит строку к известному тарифу, по умолчанию free.
func NormalizeTier(s string) Tier {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := tierRank[t]; ok {
		return t
	}
	return TierFree
}

// AtLeast сообщает, покрывает ли тариф минимально требуемый.
func (t Tier) AtLeast(min Tier) bool {
	return tierRank[NormalizeTier(string(t))] >= tierRank[NormalizeTier(string(min))]
}

var featureGates = map[string]Tier{
	"stocks_fundamentals": TierPro,
	"stocks_ratios":       TierPro,
	"stocks_dividends":    TierPro,
	"stocks_earnings":     TierElite,
	"crypto_onchain":      TierPro,
	"alerts_advanced":     TierPro,
	"portfolio_pnl":       TierPro,
	"news_project":        TierPro,
	"education_quiz":      TierElite,
	"admin_panel":         TierElite,
}

// RequiredTier возвращает минимальный тариф фичи. Для фич без
// ограничений возвращает false вторым значением.
func RequiredTier(feature string) (Tier, bool) {
	t, ok := featureGates[feature]
	return t, ok
}

// HasAccess проверяет доступ пользователя к фиче.
// Фича без записи в таблице доступна всем.
func (u User) HasAccess(feature string) bool {
	min, ok := featureGates[feature]
	if !ok {
		return true
	}
	return u.Tier.AtLeast(min)
}

// Badge описывает значок профиля.
type Badge string

const (
	BadgeNone     Badge = "none"
	BadgeMajor    Badge = "major"
	BadgeHodl     Badge = "hodl"
	BadgeVerified Badge = "verified"
)

var badgeIcons = map[Badge]string{
	BadgeMajor:    "🏦",
	BadgeHodl:     "💎",
	BadgeVerified: "✅",
}

// NormalizeBadge приводит строку к известному значку, по умолчанию none.
func NormalizeBadge(s string) (Badge, bool) {
	b := Badge(strings.ToLower(strings.TrimSpace(s)))
	switch b {
	case BadgeNone, BadgeMajor, BadgeHodl, BadgeVerified:
		return b, true
	}
	return BadgeNone, false
}

// Icon возвращает эмодзи значка, пустую строку для none.
func (b Badge) Icon() string {
	return badgeIcons[b]
}
