package service

import "context"

// IdempotencyGuard remembers request keys so a replayed order placement is rejected.
type IdempotencyGuard interface {
	// Acquire reports true the first time key is seen; later calls report false.
	Acquire(ctx context.Context, key string) (bool, error)

	// Release forgets key so a failed request can be retried.
	Release(ctx context.Context, key string) error
}
