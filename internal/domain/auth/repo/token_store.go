package repo

import (
	"context"
	"time"
)

// TokenStore holds refresh-token fingerprints and blacklisted tokens in a
// fast key/expiry store. Presence of a fingerprint is the sole authority for
// "this refresh token is still valid"; revocation deletes (or never stores)
// it. Implementations return store errors as-is so each call site can decide
// between fail-open and fail-closed.
type TokenStore interface {
	StoreRefreshFingerprint(ctx context.Context, userID uint, fingerprint string, ttl time.Duration) error

	VerifyRefreshFingerprint(ctx context.Context, userID uint, fingerprint string) (bool, error)

	RevokeRefreshFingerprint(ctx context.Context, userID uint, fingerprint string) error

	BlacklistToken(ctx context.Context, rawToken string, ttl time.Duration) error

	IsBlacklisted(ctx context.Context, rawToken string) (bool, error)
}
