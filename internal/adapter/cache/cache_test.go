package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/seu-repo/bankbot/internal/ports"
)

func TestLocalCache_SetGetExpire(t *testing.T) {
	c := NewLocalCache(time.Hour, zap.NewNop())
	defer c.Close()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ports.ErrCacheMiss) {
		t.Fatalf("expected miss, got %v", err)
	}

	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if v, err := c.Get(ctx, "k"); err != nil || v != "v" {
		t.Errorf("expected 'v', got %q, %v", v, err)
	}

	now = now.Add(time.Minute)
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ports.ErrCacheMiss) {
		t.Errorf("expected expired entry to miss, got %v", err)
	}

	c.sweep()
	c.mu.RLock()
	n := len(c.data)
	c.mu.RUnlock()
	if n != 0 {
		t.Errorf("expected sweep to drop expired entry, %d left", n)
	}
}

func TestLocalCache_Delete(t *testing.T) {
	c := NewLocalCache(time.Hour, zap.NewNop())
	defer c.Close()
	ctx := context.Background()

	_ = c.Set(ctx, "k", "v", 0)
	_ = c.Delete(ctx, "k")
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ports.ErrCacheMiss) {
		t.Errorf("expected miss after delete, got %v", err)
	}
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisCache(client, "test:", zap.NewNop())
	ctx := context.Background()

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ports.ErrCacheMiss) {
		t.Fatalf("expected miss, got %v", err)
	}
	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got, _ := mr.Get("test:k"); got != "v" {
		t.Errorf("expected prefixed key, got %q", got)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ports.ErrCacheMiss) {
		t.Errorf("expected miss after ttl, got %v", err)
	}
}
