package router

import "testing"

func fptr(v float64) *float64 { return &v }

func TestWithCommas(t *testing.T) {
	cases := []struct {
		value    float64
		decimals int
		want     string
	}{
		{0, 0, "0"},
		{999, 0, "999"},
		{1000, 0, "1,000"},
		{1234567.891, 2, "1,234,567.89"},
		{-9876543, 0, "-9,876,543"},
		{42.5, 2, "42.50"},
	}
	for _, tc := range cases {
		if got := withCommas(tc.value, tc.decimals); got != tc.want {
			t.Fatalf("withCommas(%v, %d) = %q, ожидалось %q", tc.value, tc.decimals, got, tc.want)
		}
	}
}

func TestFmtPrice(t *testing.T) {
	if got := fmtPrice(nil); got != "N/A" {
		t.Fatalf("fmtPrice(nil) = %q, ожидалось N/A", got)
	}
	if got := fmtPrice(fptr(1234.5)); got != "$1,234.50" {
		t.Fatalf("fmtPrice(1234.5) = %q", got)
	}
	if got := fmtPrice(fptr(0.000123)); got != "$0.000123" {
		t.Fatalf("fmtPrice(0.000123) = %q", got)
	}
	if got := fmtPrice(fptr(-5.25)); got != "$-5.25" {
		t.Fatalf("fmtPrice(-5.25) = %q", got)
	}
}

func TestFmtPct(t *testing.T) {
	if got := fmtPct(nil); got != "N/A" {
		t.Fatalf("fmtPct(nil) = %q, ожидалось N/A", got)
	}
	if got := fmtPct(fptr(3.456)); got != "+3.46%" {
		t.Fatalf("fmtPct(3.456) = %q", got)
	}
	if got := fmtPct(fptr(-1.2)); got != "-1.20%" {
		t.Fatalf("fmtPct(-1.2) = %q", got)
	}
}

func TestFmtCap(t *testing.T) {
	cases := []struct {
		value *float64
		want  string
	}{
		{nil, "N/A"},
		{fptr(2.5e12), "$2.50T"},
		{fptr(7.8e9), "$7.80B"},
		{fptr(3.25e6), "$3.25M"},
		{fptr(950000), "$950,000"},
	}
	for _, tc := range cases {
		if got := fmtCap(tc.value); got != tc.want {
			t.Fatalf("fmtCap = %q, ожидалось %q", got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate короткой строки = %q", got)
	}
	if got := truncate("  padded  ", 10); got != "padded" {
		t.Fatalf("truncate должен убирать пробелы по краям, получено %q", got)
	}
	if got := truncate("длинное описание проекта", 7); got != "длинное…" {
		t.Fatalf("truncate по рунам = %q", got)
	}
}
