package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Cursor is the per-user serve state: which question was last shown and
// when, plus the rolling answers-per-hour window. It is not authoritative:
// unlike the ledger it may be reset or reconstructed at any time, so losing
// it costs a user one extra question serve at worst.
type Cursor struct {
	LastServedQuestionID uuid.UUID `json:"last_served_question_id"`
	LastServedAt         time.Time `json:"last_served_at"`
	// Consumed flips when the served question is answered. The id itself
	// stays so the next serve can still rotate away from it.
	Consumed    bool      `json:"consumed"`
	WindowStart time.Time `json:"window_start"`
	WindowCount int       `json:"window_count"`
}

// Store keeps cursors keyed by user id.
type Store interface {
	// Get returns the user's cursor, or a zero Cursor when none exists.
	Get(ctx context.Context, userID uuid.UUID) (Cursor, error)

	// Put replaces the user's cursor.
	Put(ctx context.Context, userID uuid.UUID, cur Cursor) error
}
