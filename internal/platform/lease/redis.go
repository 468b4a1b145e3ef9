package lease

import (
	"context"
	"fmt"
	"time"

	"blog_backend/internal/platform/config"
	"blog_backend/internal/platform/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil without error when no Redis address is configured.
func ConnectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("could not connect to Redis: %w", err)
	}
	logger.Info("Successfully connected to Redis!")
	return rdb, nil
}

func CloseRedis(rdb *redis.Client) {
	if rdb != nil {
		rdb.Close()
		logger.Info("Redis connection closed.")
	}
}

// RedisLease is a named lock held for a fixed TTL. It is never released
// early: whoever wins it owns the current period.
type RedisLease struct {
	rdb   *redis.Client
	key   string
	ttl   time.Duration
	owner string
}

func NewRedisLease(rdb *redis.Client, key string, ttl time.Duration) *RedisLease {
	return &RedisLease{rdb: rdb, key: key, ttl: ttl, owner: uuid.NewString()}
}

// TryAcquire reports whether this process now holds the lease.
func (l *RedisLease) TryAcquire(ctx context.Context) (bool, error) {
	ok, err := l.rdb.SetNX(ctx, l.key, l.owner, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("lease %s: %w", l.key, err)
	}
	return ok, nil
}
