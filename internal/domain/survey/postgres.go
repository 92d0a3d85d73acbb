package survey

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type answerRow struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	QuestionID  uuid.UUID `db:"question_id"`
	Payload     []byte    `db:"answer_payload"`
	AwardedCoin int64     `db:"awarded_coin"`
	Meta        []byte    `db:"meta"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r *PostgresStore) Insert(ctx context.Context, a *Answer) error {
	var meta []byte
	if a.Meta != nil {
		raw, err := json.Marshal(a.Meta)
		if err != nil {
			return err
		}
		meta = raw
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO answers (id, user_id, question_id, answer_payload, awarded_coin, meta, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, a.ID, a.UserID, a.QuestionID, []byte(a.Payload), a.AwardedCoin, meta, a.CreatedAt)
	return err
}

func (r *PostgresStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]Answer, error) {
	var rows []answerRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, question_id, answer_payload, awarded_coin, meta, created_at
		FROM answers
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, err
	}

	out := make([]Answer, 0, len(rows))
	for _, row := range rows {
		a := Answer{
			ID:          row.ID,
			UserID:      row.UserID,
			QuestionID:  row.QuestionID,
			Payload:     json.RawMessage(row.Payload),
			AwardedCoin: row.AwardedCoin,
			CreatedAt:   row.CreatedAt,
		}
		if len(row.Meta) > 0 {
			var meta AnswerMeta
			if err := json.Unmarshal(row.Meta, &meta); err == nil {
				a.Meta = &meta
			}
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *PostgresStore) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM answers WHERE user_id = $1`, userID)
	return count, err
}
