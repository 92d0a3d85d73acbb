package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS questions (
		id          uuid PRIMARY KEY,
		text        text NOT NULL,
		explanation text NOT NULL,
		metadata    jsonb,
		status      text NOT NULL DEFAULT 'active',
		created_at  timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS answers (
		id             uuid PRIMARY KEY,
		user_id        uuid NOT NULL,
		question_id    uuid NOT NULL,
		answer_payload jsonb,
		awarded_coin   bigint NOT NULL DEFAULT 1,
		meta           jsonb,
		created_at     timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_answers_user ON answers (user_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS wallet_transactions (
		id           uuid PRIMARY KEY,
		user_id      uuid NOT NULL,
		type         text NOT NULL,
		amount_coins bigint NOT NULL,
		status       text NOT NULL,
		reference    text,
		created_at   timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_wallet_tx_user ON wallet_transactions (user_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS payout_requests (
		id                uuid PRIMARY KEY,
		user_id           uuid NOT NULL,
		amount_coins      bigint NOT NULL,
		mtn_mobile_number text NOT NULL,
		status            text NOT NULL,
		created_at        timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_payout_requests_user ON payout_requests (user_id, created_at)`,
}

// Migrate applies the schema. Statements are idempotent so reruns are safe.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	log.Info().Msg("Database schema ensured")
	return nil
}
