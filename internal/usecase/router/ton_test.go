package router

import (
	"testing"
	"time"

	"tg-invest-bot/internal/domain"
)

func TestNormalizeDomain(t *testing.T) {
	cases := map[string]string{
		"@Alice":     "alice.ton",
		"bob":        "bob.ton",
		"carol.ton":  "carol.ton",
		" dave.t.me": "dave.t.me",
		"":           "",
	}
	for input, want := range cases {
		if got := normalizeDomain(input); got != want {
			t.Fatalf("normalizeDomain(%q) = %q, ожидалось %q", input, got, want)
		}
	}
}

func TestLooksLikeAddress(t *testing.T) {
	if !looksLikeAddress("EQabc123") {
		t.Fatal("EQ-префикс должен распознаваться как адрес")
	}
	if !looksLikeAddress("0:deadbeef") {
		t.Fatal("raw-форма должна распознаваться как адрес")
	}
	if looksLikeAddress("alice.ton") {
		t.Fatal("домен не должен распознаваться как адрес")
	}
}

func TestExpiringDomains(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	soon := now.AddDate(0, 0, 10)
	far := now.AddDate(0, 6, 0)
	past := now.AddDate(0, 0, -1)

	domains := []domain.TonDomain{
		{Name: "soon.ton", ExpiresAt: &soon},
		{Name: "far.ton", ExpiresAt: &far},
		{Name: "past.ton", ExpiresAt: &past},
		{Name: "forever.ton"},
	}
	got := expiringDomains(domains, now)
	if len(got) != 1 || got[0].Name != "soon.ton" {
		t.Fatalf("expiringDomains = %+v, ожидался только soon.ton", got)
	}
}

func TestShortAddress(t *testing.T) {
	if got := shortAddress("EQabc"); got != "EQabc" {
		t.Fatalf("короткий адрес не должен обрезаться: %q", got)
	}
	long := "EQ1234567890abcdefghij"
	if got := shortAddress(long); got != "EQ1234…ghij" {
		t.Fatalf("shortAddress(%q) = %q", long, got)
	}
}
