package bot

import "testing"

func TestSessionStore(t *testing.T) {
	s := NewSessionStore()

	if tag, ok := s.Pop(1); ok || tag != "" {
		t.Fatalf("пустое хранилище: Pop = (%q, %v)", tag, ok)
	}

	s.Set(1, "portfolio_add")
	tag, ok := s.Pop(1)
	if !ok || tag != "portfolio_add" {
		t.Fatalf("Pop = (%q, %v), ожидался сохранённый тег", tag, ok)
	}
	if _, ok := s.Pop(1); ok {
		t.Fatal("Pop должен снимать ожидание")
	}

	s.Set(2, "alert_price")
	s.Set(2, "")
	if _, ok := s.Pop(2); ok {
		t.Fatal("пустой тег должен снимать ожидание")
	}

	s.Set(3, "alert_price")
	s.Clear(3)
	if _, ok := s.Pop(3); ok {
		t.Fatal("Clear должен снимать ожидание")
	}
}
