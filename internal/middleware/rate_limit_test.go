package middleware

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	if os.Getenv("REDIS_HOST") == "" {
		t.Skip("Skipping Redis-dependent test - REDIS_HOST not set")
	}
	return redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_HOST") + ":6379",
	})
}

func TestRateLimiterCountsDownToZero(t *testing.T) {
	redisClient := newTestRedis(t)
	ctx := context.Background()

	limiter := NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Minute,
		Limit:     3,
		KeyPrefix: fmt.Sprintf("rate_limit:test:%d", time.Now().UnixNano()),
	})
	client := "10.0.0.1"

	// Untouched window reports the full allowance.
	remaining, _, err := limiter.GetRemainingRequests(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)

	for i := 0; i < 3; i++ {
		allowed, _, _, err := limiter.IsAllowed(ctx, client)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	remaining, resetTime, err := limiter.GetRemainingRequests(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
	assert.True(t, resetTime.After(time.Now()))

	// The next request over the limit is rejected.
	allowed, remaining, _, err := limiter.IsAllowed(ctx, client)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
}

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	redisClient := newTestRedis(t)
	ctx := context.Background()

	limiter := NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Minute,
		Limit:     2,
		KeyPrefix: fmt.Sprintf("rate_limit:test:%d", time.Now().UnixNano()),
	})

	allowed, _, _, err := limiter.IsAllowed(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)

	remaining, _, err := limiter.GetRemainingRequests(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.Equal(t, 2, remaining, "one client's requests must not count against another")
}
