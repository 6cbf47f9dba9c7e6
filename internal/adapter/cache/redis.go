package cache

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/seu-repo/bankbot/internal/ports"
)

// RedisCache stores entries as plain strings under prefix. It shares the
// client with the rest of the process, so Close does not close it.
type RedisCache struct {
	client *goredis.Client
	prefix string
	log    *zap.Logger
}

func NewRedisCache(client *goredis.Client, prefix string, log *zap.Logger) *RedisCache {
	log.Info("Redis cache initialized", zap.String("prefix", prefix))
	return &RedisCache{
		client: client,
		prefix: prefix,
		log:    log,
	}
}

var _ ports.Cache = (*RedisCache)(nil)

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	v, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", ports.ErrCacheMiss
	}
	return v, err
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}

func (c *RedisCache) Close() error {
	return nil
}
