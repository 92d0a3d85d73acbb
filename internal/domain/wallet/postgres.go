package wallet

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// PostgresStore is the durable Store backing, selected when DATABASE_URL
// is set. Same operations, same semantics as MemoryStore.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (r *PostgresStore) AppendTransaction(ctx context.Context, tx *Transaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wallet_transactions (id, user_id, type, amount_coins, status, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, tx.ID, tx.UserID, string(tx.Type), tx.AmountCoins, string(tx.Status), tx.Reference, tx.CreatedAt)
	return err
}

func (r *PostgresStore) ListTransactions(ctx context.Context, userID uuid.UUID) ([]Transaction, error) {
	var rows []Transaction
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, type, amount_coins, status, reference, created_at
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresStore) CreatePayout(ctx context.Context, pr *PayoutRequest, tx *Transaction) error {
	dbTx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `
		INSERT INTO payout_requests (id, user_id, amount_coins, mtn_mobile_number, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, pr.ID, pr.UserID, pr.AmountCoins, pr.MTNMobileNumber, string(pr.Status), pr.CreatedAt); err != nil {
		return err
	}

	if _, err := dbTx.ExecContext(ctx, `
		INSERT INTO wallet_transactions (id, user_id, type, amount_coins, status, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, tx.ID, tx.UserID, string(tx.Type), tx.AmountCoins, string(tx.Status), tx.Reference, tx.CreatedAt); err != nil {
		return err
	}

	return dbTx.Commit()
}

func (r *PostgresStore) GetPayout(ctx context.Context, userID, payoutID uuid.UUID) (*PayoutRequest, error) {
	var pr PayoutRequest
	err := r.db.GetContext(ctx, &pr, `
		SELECT id, user_id, amount_coins, mtn_mobile_number, status, created_at
		FROM payout_requests
		WHERE user_id = $1 AND id = $2
	`, userID, payoutID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPayoutNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pr, nil
}

func (r *PostgresStore) ListPayouts(ctx context.Context, userID uuid.UUID) ([]PayoutRequest, error) {
	var rows []PayoutRequest
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, amount_coins, mtn_mobile_number, status, created_at
		FROM payout_requests
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresStore) MarkPayoutCompleted(ctx context.Context, userID, payoutID uuid.UUID) error {
	dbTx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer dbTx.Rollback()

	res, err := dbTx.ExecContext(ctx, `
		UPDATE payout_requests
		SET status = 'completed'
		WHERE user_id = $1 AND id = $2 AND status = 'pending'
	`, userID, payoutID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// distinguish missing from already-completed
		var exists bool
		if err := dbTx.GetContext(ctx, &exists, `
			SELECT EXISTS(SELECT 1 FROM payout_requests WHERE user_id = $1 AND id = $2)
		`, userID, payoutID); err != nil {
			return err
		}
		if !exists {
			return ErrPayoutNotFound
		}
	}

	if _, err := dbTx.ExecContext(ctx, `
		UPDATE wallet_transactions
		SET status = 'completed'
		WHERE user_id = $1 AND type = 'payout_request' AND reference = $2
	`, userID, payoutID.String()); err != nil {
		return err
	}

	return dbTx.Commit()
}
