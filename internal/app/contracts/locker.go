package contracts

import (
	"context"
	"time"
)

// LockerService guards the read-modify-write cycle against the remote
// document store. It wraps the vote path from the outside; the merge logic
// itself stays pure.
type LockerService interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error)
	Unlock(ctx context.Context, key, lockValue string) error
}
