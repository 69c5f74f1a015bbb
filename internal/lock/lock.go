package lock

import (
	"context"
	"errors"
	"time"
)

var (
	ErrAcquireTimeout = errors.New("lock_acquire_timeout")
	ErrInvalidKey     = errors.New("lock_key_is_empty")
	ErrInvalidTTL     = errors.New("lock_ttl_must_be_positive")
)

// Lease is an acquired keyed lease. Token fences the release so an
// expired holder cannot delete a lease re-acquired by someone else.
type Lease struct {
	Key   string
	Token string
}

// Locker hands out per-key leases with a bounded hold time. Leases
// auto-expire after the TTL, trading strict mutual exclusion for
// liveness when a holder crashes or hangs.
type Locker interface {
	// Acquire blocks until the lease is granted, the wait budget is
	// spent (ErrAcquireTimeout), or ctx is done.
	Acquire(ctx context.Context, key string, ttl, wait time.Duration) (*Lease, error)
	Release(ctx context.Context, lease *Lease) error
}

const acquireRetryInterval = 25 * time.Millisecond
