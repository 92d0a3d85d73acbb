package survey

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AnswerMeta carries optional client-reported timing, kept for later fraud
// analysis. Millisecond epoch values as submitted.
type AnswerMeta struct {
	ClientTs          *int64 `json:"client_ts,omitempty"`
	ExplanationReadAt *int64 `json:"explanation_read_at,omitempty"`
}

// Answer records one accepted submission. Written once, never mutated, and
// always paired with exactly one completed credit transaction of one coin.
type Answer struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	QuestionID  uuid.UUID       `json:"question_id"`
	Payload     json.RawMessage `json:"answer_payload,omitempty"`
	AwardedCoin int64           `json:"awarded_coin"`
	CreatedAt   time.Time       `json:"created_at"`
	Meta        *AnswerMeta     `json:"meta,omitempty"`
}
