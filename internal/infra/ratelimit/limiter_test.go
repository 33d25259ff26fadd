package ratelimit

import (
	"testing"
	"time"
)

func TestAllowWithinWindow(t *testing.T) {
	current := time.Unix(1000, 0)
	l := New(3, 10*time.Second)
	l.now = func() time.Time { return current }

	for i := 0; i < 3; i++ {
		if !l.Allow("u1") {
			t.Fatalf("запрос %d должен пройти", i+1)
		}
	}
	if l.Allow("u1") {
		t.Fatal("четвёртый запрос в окне должен быть отброшен")
	}
}

func TestAllowAfterEviction(t *testing.T) {
	current := time.Unix(1000, 0)
	l := New(2, 10*time.Second)
	l.now = func() time.Time { return current }

	l.Allow("u1")
	l.Allow("u1")
	if l.Allow("u1") {
		t.Fatal("лимит исчерпан, запрос не должен пройти")
	}

	current = current.Add(11 * time.Second)
	if !l.Allow("u1") {
		t.Fatal("после выхода отметок из окна запрос должен пройти")
	}
}

func TestDeniedRequestNotRecorded(t *testing.T) {
	current := time.Unix(1000, 0)
	l := New(1, 10*time.Second)
	l.now = func() time.Time { return current }

	l.Allow("u1")
	for i := 0; i < 5; i++ {
		l.Allow("u1")
	}

	current = current.Add(10*time.Second + time.Millisecond)
	if !l.Allow("u1") {
		t.Fatal("отброшенные запросы не должны продлевать окно")
	}
}

func TestKeysIndependent(t *testing.T) {
	l := New(1, 10*time.Second)
	if !l.Allow("u1") || !l.Allow("u2") {
		t.Fatal("ключи должны учитываться независимо")
	}
}
