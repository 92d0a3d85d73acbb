package wallet

import (
	"context"

	"github.com/google/uuid"
)

// Store is the append-only persistence boundary of the ledger. It does pure
// bookkeeping: no balance or eligibility checks live here, those belong to
// the callers. Implementations must be safe for concurrent use.
type Store interface {
	// AppendTransaction appends a ledger row.
	AppendTransaction(ctx context.Context, tx *Transaction) error

	// ListTransactions returns all ledger rows for a user, oldest first.
	ListTransactions(ctx context.Context, userID uuid.UUID) ([]Transaction, error)

	// CreatePayout persists a payout request together with its linked
	// payout_request transaction in one atomic step.
	CreatePayout(ctx context.Context, pr *PayoutRequest, tx *Transaction) error

	// GetPayout returns a user's payout request by id.
	// Returns ErrPayoutNotFound when absent.
	GetPayout(ctx context.Context, userID, payoutID uuid.UUID) (*PayoutRequest, error)

	// ListPayouts returns all payout requests for a user, oldest first.
	ListPayouts(ctx context.Context, userID uuid.UUID) ([]PayoutRequest, error)

	// MarkPayoutCompleted flips a payout request and its linked transaction
	// to completed. Returns ErrPayoutNotFound when absent.
	MarkPayoutCompleted(ctx context.Context, userID, payoutID uuid.UUID) error
}
