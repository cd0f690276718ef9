package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitService enforces per-client daily request limits using Redis.
// The public API is unauthenticated, so clients are keyed by IP.
type RateLimitService struct {
	client *redis.Client
}

// NewRateLimitService creates a new rate limit service.
func NewRateLimitService(redisURL string) (*RateLimitService, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RateLimitService{client: client}, nil
}

// RateLimitResult contains the result of a rate limit check.
type RateLimitResult struct {
	Allowed        bool
	Used           int
	Limit          int
	RetryAfterSecs int
}

// CheckAndIncrement checks whether the client is within its daily limit and
// increments its counter. The counter expires at the end of the day.
func (s *RateLimitService) CheckAndIncrement(ctx context.Context, clientKey string, dailyLimit int) (*RateLimitResult, error) {
	now := time.Now()
	key := fmt.Sprintf("ratelimit:daily:%s:%s", clientKey, now.Format("2006-01-02"))

	count, err := s.client.Get(ctx, key).Int()
	if err != nil && err != redis.Nil {
		return nil, err
	}

	result := &RateLimitResult{
		Used:  count,
		Limit: dailyLimit,
	}

	tomorrow := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	if count >= dailyLimit {
		result.RetryAfterSecs = int(tomorrow.Sub(now).Seconds())
		result.Allowed = false
		return result, nil
	}

	pipe := s.client.Pipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireAt(ctx, key, tomorrow)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	result.Allowed = true
	result.Used++

	return result, nil
}

// Close closes the Redis connection.
func (s *RateLimitService) Close() error {
	return s.client.Close()
}
