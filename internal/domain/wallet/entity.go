package wallet

import (
	"time"

	"github.com/google/uuid"
)

type TxType string

const (
	TxTypeCredit         TxType = "credit"
	TxTypeDebit          TxType = "debit"
	TxTypePayoutRequest  TxType = "payout_request"
	TxTypePayoutComplete TxType = "payout_complete"
)

type TxStatus string

const (
	TxStatusPending   TxStatus = "pending"
	TxStatusCompleted TxStatus = "completed"
	TxStatusFailed    TxStatus = "failed"
)

// Transaction is a ledger row. Immutable once written except for the
// status transitions pending -> completed | failed.
type Transaction struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Type        TxType    `db:"type" json:"type"`
	AmountCoins int64     `db:"amount_coins" json:"amount_coins"`
	Status      TxStatus  `db:"status" json:"status"`
	Reference   *string   `db:"reference" json:"reference,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// PayoutRequest is created 1:1 with a payout_request transaction whose
// reference holds this request's id. The two always travel together.
type PayoutRequest struct {
	ID              uuid.UUID `db:"id" json:"id"`
	UserID          uuid.UUID `db:"user_id" json:"user_id"`
	AmountCoins     int64     `db:"amount_coins" json:"amount_coins"`
	MTNMobileNumber string    `db:"mtn_mobile_number" json:"mtn_mobile_number"`
	Status          TxStatus  `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// Balance is derived by folding the transaction log; it is never stored.
type Balance struct {
	Available    int64         `json:"available"`
	Pending      int64         `json:"pending"`
	Transactions []Transaction `json:"transactions"`
}
