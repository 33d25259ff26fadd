package ratelimit

import (
	"sync"
	"time"
)

// Limiter реализует скользящее окно запросов по ключу.
// Заявка проходит, только если в окне меньше max отметок; отметка
// времени добавляется лишь при допуске.
type Limiter struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	hits   map[string][]time.Time
	now    func() time.Time
}

// New создаёт лимитер на max запросов в окне window.
func New(max int, window time.Duration) *Limiter {
	return &Limiter{
		max:    max,
		window: window,
		hits:   map[string][]time.Time{},
		now:    time.Now,
	}
}

// Allow проверяет и учитывает запрос по ключу.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)
	hits := l.hits[key]
	for len(hits) > 0 && hits[0].Before(cutoff) {
		hits = hits[1:]
	}
	if len(hits) >= l.max {
		l.hits[key] = hits
		return false
	}
	l.hits[key] = append(hits, now)
	return true
}
