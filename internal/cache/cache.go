package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a short-TTL redis cache for the public job listing and search
// responses. A nil *Cache is valid and behaves as a miss on every call, so
// the API runs unchanged without redis configured.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

type Config struct {
	Addr     string
	Password string
	TTL      time.Duration
}

func New(cfg Config) *Cache {
	if cfg.Addr == "" {
		return nil
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

// Get returns the cached JSON payload for key, or ok=false on miss or any
// redis failure. Cache trouble must never fail a request.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}

	val, err := c.rdb.Get(ctx, key).Bytes()

	if err != nil {
		return nil, false
	}

	return val, true
}

func (c *Cache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil {
		return
	}

	_ = c.rdb.Set(ctx, key, payload, c.ttl).Err()
}

// InvalidatePrefix drops every key under prefix, used after any job
// mutation.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	if c == nil {
		return
	}

	iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()

	for iter.Next(ctx) {
		_ = c.rdb.Del(ctx, iter.Val()).Err()
	}
}
