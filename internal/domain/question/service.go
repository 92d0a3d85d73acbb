package question

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/coinquest/coinquest-api/internal/domain/session"
	"github.com/coinquest/coinquest-api/internal/pkg/userlock"
)

// Service serves the catalog with a weak anti-repeat rotation: scan active
// questions in stored order and pick the first whose id differs from the
// user's last served one. A pool of size one, or an anonymous caller, falls
// back to the first active question.
type Service struct {
	store   Store
	cursors session.Store
	locks   *userlock.Locks
	now     func() time.Time
}

func NewService(store Store, cursors session.Store, locks *userlock.Locks) *Service {
	return &Service{store: store, cursors: cursors, locks: locks, now: time.Now}
}

// NewServiceWithClock is used by tests that need a deterministic clock.
func NewServiceWithClock(store Store, cursors session.Store, locks *userlock.Locks, now func() time.Time) *Service {
	return &Service{store: store, cursors: cursors, locks: locks, now: now}
}

// ActiveQuestions returns the servable pool in stored order.
func (s *Service) ActiveQuestions(ctx context.Context) ([]Question, error) {
	return s.store.ListActive(ctx)
}

// NextQuestion picks the next question for a user and stamps the serve
// cursor. An empty pool is a valid nil result, not an error. Anonymous
// callers (userID == uuid.Nil) get a question without any cursor rotation.
func (s *Service) NextQuestion(ctx context.Context, userID uuid.UUID) (*Question, error) {
	pool, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, nil
	}

	if userID == uuid.Nil {
		q := pool[0]
		return &q, nil
	}

	// Serve and submit race on the same cursor; the user lock keeps a
	// fresh serve from being overwritten by a concurrent answer.
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	cur, err := s.cursors.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	picked := pool[0]
	for _, cand := range pool {
		if cand.ID != cur.LastServedQuestionID {
			picked = cand
			break
		}
	}

	cur.LastServedQuestionID = picked.ID
	cur.LastServedAt = s.now()
	cur.Consumed = false
	if err := s.cursors.Put(ctx, userID, cur); err != nil {
		return nil, err
	}

	return &picked, nil
}
