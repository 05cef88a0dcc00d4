package redis

import (
	"context"
	"fmt"
	"time"
)

// RateLimiter is a fixed-window counter. A nil *RateLimiter allows
// everything, so callers can wire it unconditionally.
type RateLimiter struct {
	client RedisClient
}

func NewRateLimiter(client RedisClient) *RateLimiter {
	return &RateLimiter{client: client}
}

func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if r == nil || r.client == nil {
		return true, nil
	}

	count, err := r.client.Incr(ctx, key)
	if err != nil {
		return false, err
	}

	if count == 1 {
		if err := r.client.Expire(ctx, key, window); err != nil {
			return false, err
		}
	}

	return count <= int64(limit), nil
}

// EndpointKey scopes the counter per endpoint and caller address.
func EndpointKey(endpoint, remote string) string {
	return fmt.Sprintf("rate_limit:%s:%s", endpoint, remote)
}
