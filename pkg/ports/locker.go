package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock obtained from a DistributedLocker.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serializes cycles of the same viewer session across replicas,
// so two requests never prune or record history for one session concurrently.
type DistributedLocker interface {
	// Lock blocks until the lock for key is held or ctx is done.
	// The returned UnlockFunc MUST be called; ttl bounds how long a crashed holder keeps it.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
