package question

import (
	"context"
)

// Store holds the question catalog. Stored order is serving order, so
// implementations must return questions in insertion order.
type Store interface {
	// Insert adds a question to the catalog.
	Insert(ctx context.Context, q *Question) error

	// ListActive returns active questions in stored order.
	ListActive(ctx context.Context) ([]Question, error)

	// Count returns the total catalog size regardless of status.
	Count(ctx context.Context) (int, error)
}
