package wallet

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/coinquest/coinquest-api/internal/metrics"
)

// Service is the ledger. It does bookkeeping only: insufficient-funds and
// eligibility checks belong to the payout engine, which runs them before
// calling CreatePayout. That split is deliberate and must stay.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// NewServiceWithClock is used by tests that need a deterministic clock.
func NewServiceWithClock(store Store, now func() time.Time) *Service {
	return &Service{store: store, now: now}
}

// CreditCoins appends a completed credit transaction. The available balance
// increases immediately.
func (s *Service) CreditCoins(ctx context.Context, userID uuid.UUID, coins int64, ref string) (*Transaction, error) {
	if coins <= 0 {
		return nil, ErrInvalidAmount
	}

	tx := &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        TxTypeCredit,
		AmountCoins: coins,
		Status:      TxStatusCompleted,
		CreatedAt:   s.now(),
	}
	if ref != "" {
		tx.Reference = &ref
	}

	if err := s.store.AppendTransaction(ctx, tx); err != nil {
		return nil, err
	}

	metrics.CoinsCredited.Add(float64(coins))
	log.Info().Str("user_id", userID.String()).Int64("coins", coins).Str("reference", ref).Msg("coins credited")
	return tx, nil
}

// CreatePayout appends a pending payout request and its linked pending
// payout_request transaction in one step. Pending balance goes up and
// available balance goes down immediately.
func (s *Service) CreatePayout(ctx context.Context, userID uuid.UUID, coins int64, mtn string) (*PayoutRequest, error) {
	if coins <= 0 {
		return nil, ErrInvalidAmount
	}

	now := s.now()
	pr := &PayoutRequest{
		ID:              uuid.New(),
		UserID:          userID,
		AmountCoins:     coins,
		MTNMobileNumber: mtn,
		Status:          TxStatusPending,
		CreatedAt:       now,
	}
	ref := pr.ID.String()
	tx := &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        TxTypePayoutRequest,
		AmountCoins: coins,
		Status:      TxStatusPending,
		Reference:   &ref,
		CreatedAt:   now,
	}

	if err := s.store.CreatePayout(ctx, pr, tx); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", userID.String()).Str("payout_id", pr.ID.String()).Int64("coins", coins).Msg("payout request created")
	return pr, nil
}

// MarkPayoutCompleted flips the payout request and its linked transaction to
// completed. Returns ErrPayoutNotFound when the request does not exist.
func (s *Service) MarkPayoutCompleted(ctx context.Context, userID, payoutID uuid.UUID) error {
	if err := s.store.MarkPayoutCompleted(ctx, userID, payoutID); err != nil {
		return err
	}

	metrics.PayoutsCompleted.Inc()
	log.Info().Str("user_id", userID.String()).Str("payout_id", payoutID.String()).Msg("payout completed")
	return nil
}

// GetPayout returns a user's payout request by id.
func (s *Service) GetPayout(ctx context.Context, userID, payoutID uuid.UUID) (*PayoutRequest, error) {
	return s.store.GetPayout(ctx, userID, payoutID)
}

// ListPayouts returns a user's payout requests, oldest first.
func (s *Service) ListPayouts(ctx context.Context, userID uuid.UUID) ([]PayoutRequest, error) {
	return s.store.ListPayouts(ctx, userID)
}

// GetBalance folds the transaction log:
//
//	available = completed credits - non-failed debits and payout_requests
//	pending   = pending debits and payout_requests
//
// Transactions are returned newest-first.
func (s *Service) GetBalance(ctx context.Context, userID uuid.UUID) (*Balance, error) {
	txs, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	bal := &Balance{Transactions: txs}
	for _, t := range txs {
		if t.Type == TxTypeCredit && t.Status == TxStatusCompleted {
			bal.Available += t.AmountCoins
		}
		if (t.Type == TxTypeDebit || t.Type == TxTypePayoutRequest) && t.Status != TxStatusFailed {
			bal.Available -= t.AmountCoins
		}
		if t.Status == TxStatusPending && (t.Type == TxTypeDebit || t.Type == TxTypePayoutRequest) {
			bal.Pending += t.AmountCoins
		}
	}

	sort.SliceStable(bal.Transactions, func(i, j int) bool {
		return bal.Transactions[i].CreatedAt.After(bal.Transactions[j].CreatedAt)
	})
	return bal, nil
}

// LastPayoutRequestAt returns the creation time of the user's most recent
// payout_request transaction, or nil when none exists.
func (s *Service) LastPayoutRequestAt(ctx context.Context, userID uuid.UUID) (*time.Time, error) {
	txs, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	var latest *time.Time
	for i := range txs {
		t := txs[i]
		if t.Type != TxTypePayoutRequest {
			continue
		}
		if latest == nil || t.CreatedAt.After(*latest) {
			created := t.CreatedAt
			latest = &created
		}
	}
	return latest, nil
}
