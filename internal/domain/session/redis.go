package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Cursors expire after a day of inactivity. The window they carry only
// spans an hour, so expiry never rejects a submission that should pass.
const cursorTTL = 24 * time.Hour

// RedisStore keeps cursors in Redis, selected when REDIS_URL is set.
// Because cursors are reconstructable, a flush is harmless.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func key(userID uuid.UUID) string {
	return "cursor:" + userID.String()
}

func (r *RedisStore) Get(ctx context.Context, userID uuid.UUID) (Cursor, error) {
	raw, err := r.client.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Cursor{}, nil
	}
	if err != nil {
		return Cursor{}, err
	}

	var cur Cursor
	if err := json.Unmarshal(raw, &cur); err != nil {
		// treat a corrupt cursor as absent
		return Cursor{}, nil
	}
	return cur, nil
}

func (r *RedisStore) Put(ctx context.Context, userID uuid.UUID, cur Cursor) error {
	raw, err := json.Marshal(cur)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key(userID), raw, cursorTTL).Err()
}
