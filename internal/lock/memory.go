package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

// MemoryLocker is the single-process Locker: a map from key to an
// expiring lease. Same semantics as the Redis implementation, including
// TTL reclamation of leases whose holder never released.
type MemoryLocker struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{entries: make(map[string]memoryEntry)}
}

func (l *MemoryLocker) Acquire(ctx context.Context, key string, ttl, wait time.Duration) (*Lease, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}

	token := uuid.NewString()
	deadline := time.Now().Add(wait)
	for {
		if l.tryAcquire(key, token, ttl) {
			return &Lease{Key: key, Token: token}, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrAcquireTimeout
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(acquireRetryInterval):
		}
	}
}

func (l *MemoryLocker) Release(ctx context.Context, lease *Lease) error {
	_ = ctx
	if lease == nil || lease.Key == "" || lease.Token == "" {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if entry, ok := l.entries[lease.Key]; ok && entry.token == lease.Token {
		delete(l.entries, lease.Key)
	}
	return nil
}

func (l *MemoryLocker) tryAcquire(key, token string, ttl time.Duration) bool {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	if entry, ok := l.entries[key]; ok && entry.expiresAt.After(now) {
		return false
	}
	l.entries[key] = memoryEntry{token: token, expiresAt: now.Add(ttl)}
	return true
}
