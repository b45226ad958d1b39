package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/juju/errors"
	"github.com/redis/go-redis/v9"
)

func NewRedisFromConnectionString[T any](connStr string) (Cache[T], error) {
	opt, err := redis.ParseURL(connStr)
	if err != nil {
		return nil, errors.Annotatef(err, "failed to parse redis url")
	}

	rdb := redis.NewClient(opt)

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}

	return RedisImpl[T]{
		client:         rdb,
		ExpirationTime: &DefaultDuration,
	}, nil
}

// Set stores a value in Redis with JSON serialization
func (r RedisImpl[T]) Set(ctx context.Context, key string, val T, duration *time.Duration) error {
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}

	if duration == nil {
		duration = r.ExpirationTime
	}
	return r.client.Set(ctx, key, data, *duration).Err()
}

// Get retrieves and deserializes a value from Redis
func (r RedisImpl[T]) Get(ctx context.Context, key string) (*T, error) {
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			// Key doesn't exist
			return nil, nil
		}
		return nil, err
	}

	var val T
	if err := json.Unmarshal([]byte(data), &val); err != nil {
		return nil, err
	}

	return &val, nil
}

// Close closes the Redis connection
func (r RedisImpl[T]) Close() error {
	return r.client.Close()
}
