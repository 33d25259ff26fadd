package domain

import "testing"

func TestPaginate(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g"}
	tests := []struct {
		name      string
		page      int
		wantPage  int
		wantTotal int
		wantLen   int
	}{
		{name: "first page", page: 1, wantPage: 1, wantTotal: 2, wantLen: 5},
		{name: "last page", page: 2, wantPage: 2, wantTotal: 2, wantLen: 2},
		{name: "page below range", page: 0, wantPage: 1, wantTotal: 2, wantLen: 5},
		{name: "page above range", page: 9, wantPage: 2, wantTotal: 2, wantLen: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, page, total := Paginate(items, tt.page, 5)
			if page != tt.wantPage || total != tt.wantTotal || len(got) != tt.wantLen {
				t.Fatalf("Paginate(page=%d) = (%d элементов, стр. %d из %d), want (%d, %d, %d)",
					tt.page, len(got), page, total, tt.wantLen, tt.wantPage, tt.wantTotal)
			}
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	got, page, total := Paginate([]string{}, 3, 5)
	if len(got) != 0 || page != 1 || total != 1 {
		t.Fatalf("пустой список: got %d элементов, стр. %d из %d", len(got), page, total)
	}
}

func TestInferStyle(t *testing.T) {
	tests := []struct {
		name string
		btn  Button
		want ButtonStyle
	}{
		{name: "explicit wins", btn: Button{Label: "Remove", Style: StyleSuccess}, want: StyleSuccess},
		{name: "danger by action", btn: Button{Label: "X", Action: "action:portfolio_remove"}, want: StyleDanger},
		{name: "success by label", btn: Button{Label: "➕ Add", Action: "action:noop"}, want: StyleSuccess},
		{name: "menu defaults to primary", btn: Button{Label: "Markets", Action: "menu:markets"}, want: StylePrimary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferStyle(tt.btn); got != tt.want {
				t.Fatalf("InferStyle(%+v) = %v, want %v", tt.btn, got, tt.want)
			}
		})
	}
}
