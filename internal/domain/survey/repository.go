package survey

import (
	"context"

	"github.com/google/uuid"
)

// Store persists accepted answers.
type Store interface {
	// Insert appends an answer record.
	Insert(ctx context.Context, a *Answer) error

	// ListByUser returns a user's answers, oldest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Answer, error)

	// CountByUser returns how many answers a user has recorded.
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}
