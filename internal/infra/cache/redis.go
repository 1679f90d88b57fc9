package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	TTL      time.Duration `yaml:"ttl"`
}

// RedisStore keeps the projection in Redis, for server-side deployments
// where several processes share one session cache.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore connects and pings the configured Redis instance.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{rdb: rdb, ttl: ttl}, nil
}

func (s *RedisStore) Load(ctx context.Context) ([]byte, error) {
	data, err := s.rdb.Get(ctx, UserInfoKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return data, err
}

func (s *RedisStore) Save(ctx context.Context, data []byte) error {
	return s.rdb.Set(ctx, UserInfoKey, data, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.rdb.Del(ctx, UserInfoKey).Err()
}

// Close releases the underlying connection.
func (s *RedisStore) Close() error { return s.rdb.Close() }
