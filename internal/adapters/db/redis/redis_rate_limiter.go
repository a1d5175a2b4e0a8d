package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a fixed-window counter. The first attempt creates the
// key with the window's TTL; increments never touch the TTL, so the window
// resets wholesale when the key expires.
type RedisRateLimiter struct {
	client *redis.Client
}

func NewRedisRateLimiter(client *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{client: client}
}

func (r *RedisRateLimiter) Allow(ctx context.Context, operation, identifier string, maxAttempts int, window time.Duration) (bool, error) {
	key := rateKey(operation, identifier)

	current, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		if err := r.client.Set(ctx, key, "1", window).Err(); err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	count, err := strconv.Atoi(current)
	if err != nil {
		return false, fmt.Errorf("malformed counter at %s: %w", key, err)
	}
	if count >= maxAttempts {
		return false, nil
	}

	if err := r.client.Incr(ctx, key).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func rateKey(operation, identifier string) string {
	return fmt.Sprintf("rate_limit:%s:%s", operation, identifier)
}
