package question

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

// questionRow maps the questions table; metadata is a jsonb column.
type questionRow struct {
	ID          uuid.UUID `db:"id"`
	Text        string    `db:"text"`
	Explanation string    `db:"explanation"`
	Metadata    []byte    `db:"metadata"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r *PostgresStore) Insert(ctx context.Context, q *Question) error {
	var meta []byte
	if q.Metadata != nil {
		raw, err := json.Marshal(q.Metadata)
		if err != nil {
			return err
		}
		meta = raw
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO questions (id, text, explanation, metadata, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, q.ID, q.Text, q.Explanation, meta, string(q.Status), q.CreatedAt)
	return err
}

func (r *PostgresStore) ListActive(ctx context.Context) ([]Question, error) {
	var rows []questionRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, text, explanation, metadata, status, created_at
		FROM questions
		WHERE status = 'active'
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}

	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		q := Question{
			ID:          row.ID,
			Text:        row.Text,
			Explanation: row.Explanation,
			Status:      Status(row.Status),
			CreatedAt:   row.CreatedAt,
		}
		if len(row.Metadata) > 0 {
			var meta Meta
			if err := json.Unmarshal(row.Metadata, &meta); err == nil {
				q.Metadata = &meta
			}
		}
		out = append(out, q)
	}
	return out, nil
}

func (r *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM questions`)
	return count, err
}
