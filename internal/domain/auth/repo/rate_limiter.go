package repo

import (
	"context"
	"time"
)

// RateLimiter counts attempts per (operation, identifier) in a fixed window.
// The first attempt opens the window; later attempts increment the counter
// without touching its TTL. A store error is returned as-is, callers allow
// the attempt in that case.
type RateLimiter interface {
	Allow(ctx context.Context, operation, identifier string, maxAttempts int, window time.Duration) (bool, error)
}
