package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/verdemed/verdemed/application/port/outbound"
	"github.com/verdemed/verdemed/infrastructure/service/logger"
)

type Config struct {
	Enabled       bool
	RedisURL      string
	Attempts      int
	Window        time.Duration
	BlockDuration time.Duration
}

type rateLimitService struct {
	redisClient *redis.Client
	logger      logger.Logger
}

// NewRateLimitService builds a redis-backed limiter, or a noop one when
// disabled so callers never branch on configuration.
func NewRateLimitService(config Config, log logger.Logger) (outbound.RateLimitService, error) {
	if !config.Enabled {
		log.Info(context.Background(), "Rate limiting disabled", nil)
		return &noopRateLimitService{}, nil
	}

	opt, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info(context.Background(), "Rate limiting service initialized", map[string]interface{}{
		"attempts":       config.Attempts,
		"window":         config.Window.String(),
		"block_duration": config.BlockDuration.String(),
	})

	return &rateLimitService{redisClient: client, logger: log}, nil
}

func (s *rateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := s.redisClient.Get(ctx, key).Int()
	if err != nil && err != redis.Nil {
		return false, fmt.Errorf("failed to read rate limit counter: %w", err)
	}
	return count < limit, nil
}

func (s *rateLimitService) Increment(ctx context.Context, key string, window time.Duration) error {
	pipeline := s.redisClient.Pipeline()
	pipeline.Incr(ctx, key)
	pipeline.Expire(ctx, key, window)
	if _, err := pipeline.Exec(ctx); err != nil {
		s.logger.Error(ctx, "Failed to increment rate limit counter", err, map[string]interface{}{"key": key})
		return fmt.Errorf("failed to increment rate limit: %w", err)
	}
	return nil
}

func (s *rateLimitService) IsBlocked(ctx context.Context, key string) (bool, error) {
	exists, err := s.redisClient.Exists(ctx, blockKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check block status: %w", err)
	}
	return exists > 0, nil
}

func (s *rateLimitService) Block(ctx context.Context, key string, duration time.Duration, reason string) error {
	pipeline := s.redisClient.Pipeline()
	pipeline.HSet(ctx, blockKey(key), map[string]interface{}{
		"reason":     reason,
		"blocked_at": time.Now().Unix(),
	})
	pipeline.Expire(ctx, blockKey(key), duration)
	if _, err := pipeline.Exec(ctx); err != nil {
		return fmt.Errorf("failed to block key: %w", err)
	}

	s.logger.Warn(ctx, "Key blocked due to rate limit exceeded", map[string]interface{}{
		"key":      key,
		"duration": duration.String(),
		"reason":   reason,
	})
	return nil
}

func blockKey(key string) string {
	return "blocked:" + key
}

type noopRateLimitService struct{}

func (noopRateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return true, nil
}

func (noopRateLimitService) Increment(ctx context.Context, key string, window time.Duration) error {
	return nil
}

func (noopRateLimitService) IsBlocked(ctx context.Context, key string) (bool, error) {
	return false, nil
}

func (noopRateLimitService) Block(ctx context.Context, key string, duration time.Duration, reason string) error {
	return nil
}
