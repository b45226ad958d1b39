package locker

import (
	"context"
	"time"

	"meridianit/inbox-project/pkgs/conf"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// Locker serializes a critical section on a string key. The webhook uses it
// per contact phone number around the conversation find-or-create.
type Locker interface {
	// WithLock runs fn while holding the key's lock. When the lock is
	// already held elsewhere, fn runs anyway after the retry budget is
	// exhausted: the database constraints are the correctness backstop,
	// the lock only reduces contention.
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

type RedisLocker struct {
	client *redislock.Client
	prefix string
	expiry time.Duration
}

func NewRedisLocker(ctx context.Context, prefix string) (*RedisLocker, error) {
	cfg := conf.GetConfig()

	opt, err := redis.ParseURL(cfg.RedisConfig.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisLocker{
		client: redislock.New(client),
		prefix: prefix,
		expiry: 30 * time.Second,
	}, nil
}

func (r *RedisLocker) Obtain(ctx context.Context, key string, expiry *time.Duration) (*redislock.Lock, error) {
	lockKey := r.prefix + key
	if expiry == nil {
		expiry = &r.expiry
	}
	retry := redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 20)
	lock, err := r.client.Obtain(ctx, lockKey, *expiry, &redislock.Options{RetryStrategy: retry})
	if err == redislock.ErrNotObtained {
		return nil, nil
	}
	return lock, err
}

func (r *RedisLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	lock, err := r.Obtain(ctx, key, nil)
	if err != nil {
		return err
	}
	if lock != nil {
		defer lock.Release(context.WithoutCancel(ctx))
	}
	return fn(ctx)
}

// NopLocker runs the critical section without locking. Used when Redis is not
// configured and by tests.
type NopLocker struct{}

func (NopLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
