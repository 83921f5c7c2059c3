package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/pet-service/internal/config"
	"github.com/spec-kit/pet-service/internal/domain"
)

const statisticsKey = "stats:summary"

// Redis wraps the go-redis client.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// GetStatistics returns the cached snapshot. A miss yields (nil, false, nil).
func (r *Redis) GetStatistics(ctx context.Context) (*domain.Statistics, bool, error) {
	if r == nil || r.Client == nil {
		return nil, false, nil
	}
	raw, err := r.Client.Get(ctx, statisticsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var stats domain.Statistics
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false, err
	}
	return &stats, true, nil
}

// SetStatistics stores a snapshot for ttl. A non-positive ttl disables caching.
func (r *Redis) SetStatistics(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error {
	if r == nil || r.Client == nil || stats == nil || ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, statisticsKey, raw, ttl).Err()
}

// InvalidateStatistics drops the cached snapshot.
func (r *Redis) InvalidateStatistics(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Del(ctx, statisticsKey).Err()
}
