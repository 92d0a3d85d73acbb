package survey

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/coinquest/coinquest-api/internal/domain/session"
	"github.com/coinquest/coinquest-api/internal/domain/wallet"
	"github.com/coinquest/coinquest-api/internal/metrics"
	"github.com/coinquest/coinquest-api/internal/pkg/userlock"
)

// Service is the submission gate. Checks run in order (serve-state match,
// then minimum dwell, then hourly cap) and the first failure wins. A passing
// submission records the answer, credits one coin, and advances the rate
// window under the user's lock so concurrent submissions cannot
// double-credit.
type Service struct {
	answers Store
	wallet  *wallet.Service
	cursors session.Store
	locks   *userlock.Locks
	now     func() time.Time

	minDwell   time.Duration
	maxPerHour int
}

type Config struct {
	MinDwell   time.Duration
	MaxPerHour int
}

func NewService(answers Store, walletSvc *wallet.Service, cursors session.Store, locks *userlock.Locks, cfg Config) *Service {
	return &Service{
		answers:    answers,
		wallet:     walletSvc,
		cursors:    cursors,
		locks:      locks,
		now:        time.Now,
		minDwell:   cfg.MinDwell,
		maxPerHour: cfg.MaxPerHour,
	}
}

// NewServiceWithClock is used by tests that need a deterministic clock.
func NewServiceWithClock(answers Store, walletSvc *wallet.Service, cursors session.Store, locks *userlock.Locks, cfg Config, now func() time.Time) *Service {
	s := NewService(answers, walletSvc, cursors, locks, cfg)
	s.now = now
	return s
}

// SubmitAnswer validates and records a submission, returning the resulting
// available balance. The serve cursor is consumed on success, so replaying
// the same question id without a fresh serve fails with
// ErrQuestionNotServed.
func (s *Service) SubmitAnswer(ctx context.Context, userID, questionID uuid.UUID, payload json.RawMessage, meta *AnswerMeta) (int64, error) {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	cur, err := s.cursors.Get(ctx, userID)
	if err != nil {
		return 0, err
	}

	// 1. staleness
	if cur.LastServedQuestionID == uuid.Nil || cur.LastServedQuestionID != questionID || cur.Consumed {
		metrics.AnswersRejected.WithLabelValues("not_served").Inc()
		return 0, ErrQuestionNotServed
	}

	// 2. minimum dwell
	now := s.now()
	if now.Sub(cur.LastServedAt) < s.minDwell {
		metrics.AnswersRejected.WithLabelValues("too_fast").Inc()
		return 0, ErrTooFast
	}

	// 3. hourly window
	if now.Sub(cur.WindowStart) > time.Hour {
		cur.WindowStart = now
		cur.WindowCount = 0
	} else if cur.WindowCount >= s.maxPerHour {
		metrics.AnswersRejected.WithLabelValues("rate_limited").Inc()
		return 0, ErrRateLimited
	}

	answer := &Answer{
		ID:          uuid.New(),
		UserID:      userID,
		QuestionID:  questionID,
		Payload:     payload,
		AwardedCoin: 1,
		CreatedAt:   now,
		Meta:        meta,
	}
	if err := s.answers.Insert(ctx, answer); err != nil {
		return 0, err
	}

	if _, err := s.wallet.CreditCoins(ctx, userID, 1, "answer:"+questionID.String()); err != nil {
		// the answer row is already in; a missing credit breaks the
		// one-coin-per-answer invariant and must be surfaced loudly
		log.Error().Err(err).
			Str("user_id", userID.String()).
			Str("answer_id", answer.ID.String()).
			Msg("answer recorded but credit failed")
		return 0, fmt.Errorf("credit coin: %w", err)
	}

	cur.WindowCount++
	cur.Consumed = true // the serve is spent, but keep the id for rotation
	if err := s.cursors.Put(ctx, userID, cur); err != nil {
		return 0, err
	}

	metrics.AnswersAccepted.Inc()

	bal, err := s.wallet.GetBalance(ctx, userID)
	if err != nil {
		return 0, err
	}
	return bal.Available, nil
}

// AnswerCount reports how many answers a user has recorded. Used for
// ledger reconciliation: it must always equal the user's completed credits.
func (s *Service) AnswerCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.answers.CountByUser(ctx, userID)
}
