package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type MemoryStore struct {
	mu      sync.RWMutex
	cursors map[uuid.UUID]Cursor
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cursors: make(map[uuid.UUID]Cursor)}
}

func (m *MemoryStore) Get(_ context.Context, userID uuid.UUID) (Cursor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cursors[userID], nil
}

func (m *MemoryStore) Put(_ context.Context, userID uuid.UUID, cur Cursor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursors[userID] = cur
	return nil
}
