package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL constants
const (
	TTLLeaderboard = 30 * time.Second
	TTLDefault     = 5 * time.Minute
)

// Key prefixes
const (
	PrefixLeaderboard = "gyansetu:leaderboard:"
)

// ErrMiss is returned when a key is absent or the cache is disabled
var ErrMiss = errors.New("cache miss")

// Service Redis-backed JSON cache. Every method is a no-op (or ErrMiss) without a client.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	GetLeaderboard(ctx context.Context, limit int, dest interface{}) error
	SetLeaderboard(ctx context.Context, limit int, data interface{}) error
	InvalidateLeaderboard(ctx context.Context) error

	IsAvailable() bool
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a cache over client. client may be nil.
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Get decodes the cached JSON value into dest
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return ErrMiss
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// Set stores value as JSON
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) leaderboardKey(limit int) string {
	return fmt.Sprintf("%s%d", PrefixLeaderboard, limit)
}

func (c *redisCache) GetLeaderboard(ctx context.Context, limit int, dest interface{}) error {
	return c.Get(ctx, c.leaderboardKey(limit), dest)
}

func (c *redisCache) SetLeaderboard(ctx context.Context, limit int, data interface{}) error {
	return c.Set(ctx, c.leaderboardKey(limit), data, TTLLeaderboard)
}

// InvalidateLeaderboard drops every cached page size
func (c *redisCache) InvalidateLeaderboard(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.deleteByPattern(ctx, PrefixLeaderboard+"*")
}

func (c *redisCache) deleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return c.Delete(ctx, keys...)
}
