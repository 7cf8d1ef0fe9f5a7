package wallet

import (
	"context"
	"sync"
)

// MemoryStore keeps wallet links in process memory. Links are lost on
// restart; used for tests and no-persistence runs.
type MemoryStore struct {
	mu    sync.RWMutex
	links map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{links: make(map[string]string)}
}

func (s *MemoryStore) Upsert(_ context.Context, userID, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[userID] = address
	return nil
}

func (s *MemoryStore) Get(_ context.Context, userID string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	address, ok := s.links[userID]
	return address, ok, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
