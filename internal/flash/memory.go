package flash

import (
	"context"
	"sync"
)

// MemoryStore is used when no Redis address is configured.
type MemoryStore struct {
	mu       sync.Mutex
	messages map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{messages: make(map[string][]string)}
}

func (s *MemoryStore) Add(_ context.Context, sessionID, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[sessionID] = append(s.messages[sessionID], message)
	return nil
}

func (s *MemoryStore) Pop(_ context.Context, sessionID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.messages[sessionID]
	delete(s.messages, sessionID)
	return msgs, nil
}
