package survey

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type MemoryStore struct {
	mu      sync.RWMutex
	answers map[uuid.UUID][]*Answer
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{answers: make(map[uuid.UUID][]*Answer)}
}

func (m *MemoryStore) Insert(_ context.Context, a *Answer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *a
	m.answers[a.UserID] = append(m.answers[a.UserID], &cp)
	return nil
}

func (m *MemoryStore) ListByUser(_ context.Context, userID uuid.UUID) ([]Answer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := m.answers[userID]
	out := make([]Answer, 0, len(rows))
	for _, a := range rows {
		out = append(out, *a)
	}
	return out, nil
}

func (m *MemoryStore) CountByUser(_ context.Context, userID uuid.UUID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.answers[userID]), nil
}
