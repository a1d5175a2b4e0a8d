package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTokenStore keeps refresh-token fingerprints and blacklisted tokens.
// Keys never contain the raw bearer token, only sha256 digests. Store errors
// are returned to the caller, which decides fail-open vs fail-closed.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (r *RedisTokenStore) StoreRefreshFingerprint(ctx context.Context, userID uint, fingerprint string, ttl time.Duration) error {
	return r.client.Set(ctx, refreshKey(userID, fingerprint), "1", safeTTL(ttl)).Err()
}

func (r *RedisTokenStore) VerifyRefreshFingerprint(ctx context.Context, userID uint, fingerprint string) (bool, error) {
	n, err := r.client.Exists(ctx, refreshKey(userID, fingerprint)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisTokenStore) RevokeRefreshFingerprint(ctx context.Context, userID uint, fingerprint string) error {
	return r.client.Del(ctx, refreshKey(userID, fingerprint)).Err()
}

func (r *RedisTokenStore) BlacklistToken(ctx context.Context, rawToken string, ttl time.Duration) error {
	return r.client.Set(ctx, blacklistKey(rawToken), "1", safeTTL(ttl)).Err()
}

func (r *RedisTokenStore) IsBlacklisted(ctx context.Context, rawToken string) (bool, error) {
	n, err := r.client.Exists(ctx, blacklistKey(rawToken)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func refreshKey(userID uint, fingerprint string) string {
	return fmt.Sprintf("refresh_token:%d:%s", userID, fingerprint)
}

func blacklistKey(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return "blacklist:" + hex.EncodeToString(sum[:])
}

func safeTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		// minimal TTL so the key still disappears
		return time.Minute
	}
	return ttl
}
