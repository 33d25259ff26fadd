package router

import (
	"testing"

	"tg-invest-bot/internal/domain"
)

func row(symbol string, pct, volume *float64) quoteRow {
	return quoteRow{Symbol: symbol, Quote: domain.Quote{ChangePct: pct, Volume: volume}}
}

func symbols(rows []quoteRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Symbol
	}
	return out
}

func assertOrder(t *testing.T, got []quoteRow, want ...string) {
	t.Helper()
	gotSymbols := symbols(got)
	if len(gotSymbols) != len(want) {
		t.Fatalf("получено %d строк, ожидалось %d", len(gotSymbols), len(want))
	}
	for i := range want {
		if gotSymbols[i] != want[i] {
			t.Fatalf("порядок %v, ожидалось %v", gotSymbols, want)
		}
	}
}

func TestSortQuotesGainers(t *testing.T) {
	rows := []quoteRow{
		row("AAA", fptr(-2), nil),
		row("BBB", fptr(5), nil),
		row("NIL", nil, nil),
		row("CCC", fptr(1), nil),
	}
	sorted := sortQuotes(rows, "gainers")
	assertOrder(t, sorted, "BBB", "CCC", "AAA", "NIL")
	// Исходный срез не меняется.
	assertOrder(t, rows, "AAA", "BBB", "NIL", "CCC")
}

func TestSortQuotesLosers(t *testing.T) {
	rows := []quoteRow{
		row("AAA", fptr(-2), nil),
		row("NIL", nil, nil),
		row("BBB", fptr(5), nil),
	}
	assertOrder(t, sortQuotes(rows, "losers"), "AAA", "BBB", "NIL")
}

func TestSortQuotesVolume(t *testing.T) {
	rows := []quoteRow{
		row("LOW", nil, fptr(100)),
		row("NIL", nil, nil),
		row("HIGH", nil, fptr(9000)),
	}
	assertOrder(t, sortQuotes(rows, "volume"), "HIGH", "LOW", "NIL")
}

func TestSortQuotesPopularKeepsOrder(t *testing.T) {
	rows := []quoteRow{
		row("BTC", fptr(-1), nil),
		row("ETH", fptr(7), nil),
		row("TON", nil, nil),
	}
	assertOrder(t, sortQuotes(rows, "popular"), "BTC", "ETH", "TON")
}
