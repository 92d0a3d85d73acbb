package wallet

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is the default Store backing. Transactions are held per user
// in insertion order, which is also creation order.
type MemoryStore struct {
	mu      sync.RWMutex
	txs     map[uuid.UUID][]*Transaction
	payouts map[uuid.UUID][]*PayoutRequest
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		txs:     make(map[uuid.UUID][]*Transaction),
		payouts: make(map[uuid.UUID][]*PayoutRequest),
	}
}

func (m *MemoryStore) AppendTransaction(_ context.Context, tx *Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *tx
	m.txs[tx.UserID] = append(m.txs[tx.UserID], &cp)
	return nil
}

func (m *MemoryStore) ListTransactions(_ context.Context, userID uuid.UUID) ([]Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := m.txs[userID]
	out := make([]Transaction, 0, len(rows))
	for _, tx := range rows {
		out = append(out, *tx)
	}
	return out, nil
}

func (m *MemoryStore) CreatePayout(_ context.Context, pr *PayoutRequest, tx *Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	prCp := *pr
	txCp := *tx
	m.payouts[pr.UserID] = append(m.payouts[pr.UserID], &prCp)
	m.txs[tx.UserID] = append(m.txs[tx.UserID], &txCp)
	return nil
}

func (m *MemoryStore) GetPayout(_ context.Context, userID, payoutID uuid.UUID) (*PayoutRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, pr := range m.payouts[userID] {
		if pr.ID == payoutID {
			cp := *pr
			return &cp, nil
		}
	}
	return nil, ErrPayoutNotFound
}

func (m *MemoryStore) ListPayouts(_ context.Context, userID uuid.UUID) ([]PayoutRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := m.payouts[userID]
	out := make([]PayoutRequest, 0, len(rows))
	for _, pr := range rows {
		out = append(out, *pr)
	}
	return out, nil
}

func (m *MemoryStore) MarkPayoutCompleted(_ context.Context, userID, payoutID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var found *PayoutRequest
	for _, pr := range m.payouts[userID] {
		if pr.ID == payoutID {
			found = pr
			break
		}
	}
	if found == nil {
		return ErrPayoutNotFound
	}

	found.Status = TxStatusCompleted
	ref := payoutID.String()
	for _, tx := range m.txs[userID] {
		if tx.Reference != nil && *tx.Reference == ref && tx.Type == TxTypePayoutRequest {
			tx.Status = TxStatusCompleted
		}
	}
	return nil
}
