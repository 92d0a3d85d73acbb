package payout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/coinquest/coinquest-api/internal/domain/wallet"
	"github.com/coinquest/coinquest-api/internal/metrics"
	"github.com/coinquest/coinquest-api/internal/pkg/userlock"
	"github.com/coinquest/coinquest-api/internal/pkg/validator"
)

// Service is the eligibility engine. It runs every rule before touching the
// ledger; the ledger itself never rejects. Checks run in a fixed order and
// the first failure wins: minimum, balance, payment info, daily limit.
//
// The once-per-day rule compares calendar dates in UTC so behavior does not
// drift with host timezones across deployments.
type Service struct {
	wallet *wallet.Service
	locks  *userlock.Locks
	now    func() time.Time

	minWithdrawCoins int64
}

func NewService(walletSvc *wallet.Service, locks *userlock.Locks, minWithdrawCoins int64) *Service {
	return &Service{
		wallet:           walletSvc,
		locks:            locks,
		now:              time.Now,
		minWithdrawCoins: minWithdrawCoins,
	}
}

// NewServiceWithClock is used by tests that need a deterministic clock.
func NewServiceWithClock(walletSvc *wallet.Service, locks *userlock.Locks, minWithdrawCoins int64, now func() time.Time) *Service {
	s := NewService(walletSvc, locks, minWithdrawCoins)
	s.now = now
	return s
}

// RequestPayout validates a withdrawal and, when eligible, creates the
// pending payout request plus its linked ledger transaction. The whole
// check-then-create sequence holds the user's lock so concurrent requests
// cannot slip past the balance check or the daily limit.
func (s *Service) RequestPayout(ctx context.Context, userID uuid.UUID, coins int64, mtn string) (*wallet.PayoutRequest, error) {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	// 1. minimum threshold
	if coins < s.minWithdrawCoins {
		metrics.PayoutsRejected.WithLabelValues("below_minimum").Inc()
		return nil, ErrBelowMinimum
	}

	// 2. available balance
	bal, err := s.wallet.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if coins > bal.Available {
		metrics.PayoutsRejected.WithLabelValues("insufficient_balance").Inc()
		return nil, ErrInsufficientBalance
	}

	// 3. payment destination
	if err := validator.ValidateVar(mtn, "required,msisdn"); err != nil {
		metrics.PayoutsRejected.WithLabelValues("missing_payment_info").Inc()
		return nil, ErrMissingPaymentInfo
	}

	// 4. once per calendar day (UTC)
	last, err := s.wallet.LastPayoutRequestAt(ctx, userID)
	if err != nil {
		return nil, err
	}
	if last != nil && sameUTCDate(*last, s.now()) {
		metrics.PayoutsRejected.WithLabelValues("daily_limit").Inc()
		return nil, ErrDailyLimitReached
	}

	pr, err := s.wallet.CreatePayout(ctx, userID, coins, mtn)
	if err != nil {
		return nil, err
	}

	metrics.PayoutsRequested.Inc()
	log.Info().Str("user_id", userID.String()).Str("payout_id", pr.ID.String()).Int64("coins", coins).Msg("payout requested")
	return pr, nil
}

// ListPayouts returns the user's payout history, oldest first.
func (s *Service) ListPayouts(ctx context.Context, userID uuid.UUID) ([]wallet.PayoutRequest, error) {
	return s.wallet.ListPayouts(ctx, userID)
}

// CompletePayout is the external-actor hook that settles a pending payout.
func (s *Service) CompletePayout(ctx context.Context, userID, payoutID uuid.UUID) error {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	return s.wallet.MarkPayoutCompleted(ctx, userID, payoutID)
}

func sameUTCDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
