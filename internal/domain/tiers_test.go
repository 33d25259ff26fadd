package domain

import "testing"

func TestHasAccess(t *testing.T) {
	tests := []struct {
		name    string
		tier    Tier
		feature string
		want    bool
	}{
		{name: "free open feature", tier: TierFree, feature: "stocks_price", want: true},
		{name: "free gated pro", tier: TierFree, feature: "stocks_fundamentals", want: false},
		{name: "pro gated pro", tier: TierPro, feature: "stocks_fundamentals", want: true},
		{name: "pro gated elite", tier: TierPro, feature: "stocks_earnings", want: false},
		{name: "elite gated pro", tier: TierElite, feature: "portfolio_pnl", want: true},
		{name: "elite gated elite", tier: TierElite, feature: "education_quiz", want: true},
		{name: "unknown tier treated as free", tier: Tier("platinum"), feature: "news_project", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{Tier: tt.tier}
			if got := u.HasAccess(tt.feature); got != tt.want {
				t.Fatalf("HasAccess(%q) при тарифе %q = %v, want %v", tt.feature, tt.tier, got, tt.want)
			}
		})
	}
}

func TestTierAtLeastMonotonic(t *testing.T) {
	ordered := []Tier{TierFree, TierPro, TierElite}
	for i, lower := range ordered {
		for j, higher := range ordered {
			want := i >= j
			if got := lower.AtLeast(higher); got != want {
				t.Fatalf("%v.AtLeast(%v) = %v, want %v", lower, higher, got, want)
			}
		}
	}
}

func TestNormalizeTier(t *testing.T) {
	if got := NormalizeTier(" Pro "); got != TierPro {
		t.Fatalf("NormalizeTier(\" Pro \") = %v, want pro", got)
	}
	if got := NormalizeTier("vip"); got != TierFree {
		t.Fatalf("NormalizeTier(\"vip\") = %v, want free", got)
	}
}

func TestNormalizeBadge(t *testing.T) {
	if b, ok := NormalizeBadge("Verified"); !ok || b != BadgeVerified {
		t.Fatalf("NormalizeBadge(\"Verified\") = %v, %v", b, ok)
	}
	if _, ok := NormalizeBadge("golden"); ok {
		t.Fatal("неизвестный значок не должен проходить нормализацию")
	}
}
