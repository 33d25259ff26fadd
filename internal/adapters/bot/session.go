package bot

import "sync"

// SessionStore хранит тег ожидаемого ввода по идентификатору чата.
type SessionStore struct {
	mu      sync.Mutex
	pending map[int64]string
}

// NewSessionStore создаёт хранилище сессий.
func NewSessionStore() *SessionStore {
	return &SessionStore{pending: map[int64]string{}}
}

// Set запоминает тег ожидаемого ввода для чата.
func (s *SessionStore) Set(chatID int64, tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tag == "" {
		delete(s.pending, chatID)
		return
	}
	s.pending[chatID] = tag
}

// Pop забирает тег и снимает ожидание.
func (s *SessionStore) Pop(chatID int64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tag, ok := s.pending[chatID]
	if ok {
		delete(s.pending, chatID)
	}
	return tag, ok
}

// Clear снимает ожидание ввода для чата.
func (s *SessionStore) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, chatID)
}
