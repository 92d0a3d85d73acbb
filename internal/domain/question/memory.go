package question

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu        sync.RWMutex
	questions []*Question
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Insert(_ context.Context, q *Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *q
	m.questions = append(m.questions, &cp)
	return nil
}

func (m *MemoryStore) ListActive(_ context.Context) ([]Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Question, 0, len(m.questions))
	for _, q := range m.questions {
		if q.Status == StatusActive {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (m *MemoryStore) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.questions), nil
}
