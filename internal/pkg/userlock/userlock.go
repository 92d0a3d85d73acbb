package userlock

import (
	"sync"

	"github.com/google/uuid"
)

const shards = 64

// Locks provides per-user mutual exclusion without unbounded growth.
// All check-then-act sequences touching a single user's ledger or cursor
// must hold that user's lock. Locks for different users may map to the
// same shard; that only costs contention, never correctness.
type Locks struct {
	mus [shards]sync.Mutex
}

func New() *Locks {
	return &Locks{}
}

// Lock acquires the lock shard for the given user id.
func (l *Locks) Lock(userID uuid.UUID) {
	l.mus[shard(userID)].Lock()
}

// Unlock releases the lock shard for the given user id.
func (l *Locks) Unlock(userID uuid.UUID) {
	l.mus[shard(userID)].Unlock()
}

func shard(id uuid.UUID) int {
	// FNV-1a over the raw uuid bytes
	var h uint32 = 2166136261
	for _, b := range id {
		h ^= uint32(b)
		h *= 16777619
	}
	return int(h % shards)
}
