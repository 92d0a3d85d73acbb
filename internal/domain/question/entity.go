package question

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusPaused   Status = "paused"
	StatusArchived Status = "archived"
)

// Meta carries optional classification of a question.
type Meta struct {
	Tags       []string `json:"tags,omitempty"`
	Category   string   `json:"category,omitempty"`
	Difficulty string   `json:"difficulty,omitempty"`
}

// Question is a servable survey item. Only active questions are served.
type Question struct {
	ID          uuid.UUID `json:"id"`
	Text        string    `json:"text"`
	Explanation string    `json:"explanation"`
	Metadata    *Meta     `json:"metadata,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
