package router

import "testing"

func TestParseToken(t *testing.T) {
	cases := []struct {
		raw  string
		want Token
		ok   bool
	}{
		{"menu:main", Token{Kind: "menu", Key: "main"}, true},
		{"  menu:crypto  ", Token{Kind: "menu", Key: "crypto"}, true},
		{"action:stocks_price", Token{Kind: "action", Key: "stocks_price"}, true},
		{"action:stocks_top:gainers:2", Token{Kind: "action", Key: "stocks_top", Payload: "gainers:2"}, true},
		{"page:news_headlines:2:tr", Token{Kind: "page", Key: "news_headlines", Payload: "2:tr"}, true},
		{"menu:", Token{}, false},
		{"action:", Token{}, false},
		{"bogus:main", Token{}, false},
		{"noseparator", Token{}, false},
		{"", Token{}, false},
	}
	for _, tc := range cases {
		got, ok := ParseToken(tc.raw)
		if ok != tc.ok {
			t.Fatalf("ParseToken(%q): ok = %v, ожидалось %v", tc.raw, ok, tc.ok)
		}
		if got != tc.want {
			t.Fatalf("ParseToken(%q) = %+v, ожидалось %+v", tc.raw, got, tc.want)
		}
	}
}

func TestParseSortPage(t *testing.T) {
	cases := []struct {
		payload  string
		wantSort string
		wantPage int
	}{
		{"", "gainers", 1},
		{"losers", "losers", 1},
		{"3", "gainers", 3},
		{"volume:2", "volume", 2},
		{"2:volume", "volume", 2},
		{"popular:1", "popular", 1},
		{"mystery:0", "gainers", 1},
	}
	for _, tc := range cases {
		sortMode, page := parseSortPage(tc.payload, "gainers")
		if sortMode != tc.wantSort || page != tc.wantPage {
			t.Fatalf("parseSortPage(%q) = (%q, %d), ожидалось (%q, %d)",
				tc.payload, sortMode, page, tc.wantSort, tc.wantPage)
		}
	}
}

func TestParsePageMode(t *testing.T) {
	cases := []struct {
		payload  string
		wantPage int
		wantMode string
	}{
		{"", 1, "orig"},
		{"2", 2, "orig"},
		{"tr", 1, "tr"},
		{"3:tr", 3, "tr"},
		{"tr:4", 4, "tr"},
		{"orig", 1, "orig"},
	}
	for _, tc := range cases {
		page, mode := parsePageMode(tc.payload)
		if page != tc.wantPage || mode != tc.wantMode {
			t.Fatalf("parsePageMode(%q) = (%d, %q), ожидалось (%d, %q)",
				tc.payload, page, mode, tc.wantPage, tc.wantMode)
		}
	}
}
