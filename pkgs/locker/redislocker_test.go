package locker

import (
	"context"
	"testing"
	"time"

	"meridianit/inbox-project/pkgs/conf"
)

func setupTestLocker(t *testing.T) *RedisLocker {
	// load env from repo .env so conf.GetConfig() can pick up Redis settings
	err := conf.LoadEnvFromFile("../../.env")
	if err != nil {
		t.Fatalf("failed to load env file: %v", err)
	}
	l, err := NewRedisLocker(context.Background(), "testlock:")
	if err != nil {
		t.Fatalf("failed to create locker: %v", err)
	}
	return l
}

func TestObtainReleaseLock_Integration(t *testing.T) {
	locker := setupTestLocker(t)
	ctx := context.Background()
	key := "mykey"

	expiry := 10 * time.Second
	lck, err := locker.Obtain(ctx, key, &expiry)
	if err != nil {
		t.Fatalf("Obtain failed: %v", err)
	}
	if lck == nil {
		t.Fatalf("expected lock but got nil")
	}

	// second obtain should not succeed while lock is held
	lck2, err := locker.Obtain(ctx, key, &expiry)
	if err != nil {
		t.Fatalf("second Obtain returned error: %v", err)
	}
	if lck2 != nil {
		_ = lck2.Release(ctx)
		t.Fatalf("expected second Obtain to return nil when lock already held")
	}

	if err := lck.Release(ctx); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	// after release, obtain should succeed again
	lck3, err := locker.Obtain(ctx, key, &expiry)
	if err != nil {
		t.Fatalf("Obtain after release failed: %v", err)
	}
	if lck3 == nil {
		t.Fatalf("expected lock after release but got nil")
	}
	_ = lck3.Release(ctx)
}

func TestWithLockRunsCriticalSection_Integration(t *testing.T) {
	locker := setupTestLocker(t)
	ctx := context.Background()

	ran := false
	err := locker.WithLock(ctx, "withlock-key", func(ctx context.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("WithLock failed: %v", err)
	}
	if !ran {
		t.Fatalf("critical section did not run")
	}
}

func TestNopLockerRunsFn(t *testing.T) {
	ran := false
	err := NopLocker{}.WithLock(context.Background(), "any", func(ctx context.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("NopLocker.WithLock failed: %v", err)
	}
	if !ran {
		t.Fatalf("critical section did not run")
	}
}
