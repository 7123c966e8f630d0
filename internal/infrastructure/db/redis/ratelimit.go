package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitStore is a fixed-window counter usable as an echo rate limiter
// store. Counts survive restarts and are shared across instances.
// Key format: ratelimit:<prefix>:<identifier>
type RateLimitStore struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

// NewRateLimitStore creates a store allowing limit requests per identifier
// within each window.
func NewRateLimitStore(client *redis.Client, prefix string, limit int, window time.Duration) *RateLimitStore {
	return &RateLimitStore{
		client: client,
		prefix: prefix,
		limit:  int64(limit),
		window: window,
	}
}

// Allow increments the counter for identifier and reports whether the
// request falls within the window's budget. On Redis failure the request
// is allowed so an outage does not take authentication down with it.
func (s *RateLimitStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	key := s.key(identifier)
	n, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return true, nil
	}
	if n == 1 {
		// First hit in the window sets the expiry.
		if err := s.client.Expire(ctx, key, s.window).Err(); err != nil {
			return true, nil
		}
	}
	return n <= s.limit, nil
}

func (s *RateLimitStore) key(identifier string) string {
	return fmt.Sprintf("ratelimit:%s:%s", s.prefix, identifier)
}
