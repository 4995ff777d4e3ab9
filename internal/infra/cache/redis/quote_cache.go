package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"roomrates/internal/app/policies"
	"roomrates/internal/domain/quote"
)

// store is the part of *redis.Client the cache needs.
type store interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
}

// QuoteCache keeps engine results as JSON under version-scoped keys.
type QuoteCache struct {
	client store
	ttl    time.Duration
	prefix string
}

func NewClient(addr, password string, db int) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewQuoteCache(client store, ttl time.Duration) *QuoteCache {
	return &QuoteCache{client: client, ttl: ttl, prefix: "roomrates:"}
}

func (c *QuoteCache) Get(ctx context.Context, key string) (quote.Result, bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return quote.Result{}, false, nil
	}
	if err != nil {
		return quote.Result{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	var res quote.Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return quote.Result{}, false, fmt.Errorf("decode cached quote %s: %w", key, err)
	}
	return res, true, nil
}

func (c *QuoteCache) Set(ctx context.Context, key string, result quote.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.prefix+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Ping is a readiness probe.
func Ping(client *goredis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

var _ policies.QuoteCache = (*QuoteCache)(nil)
