package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/oggyb/reelread/internal/config"
)

// ErrMiss is returned by GetJSON when the key does not exist.
var ErrMiss = errors.New("cache miss")

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.Client.Close()
}

// SetJSON stores v encoded as JSON.
func (c *RedisCache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return c.Client.Set(ctx, key, b, ttl).Err()
}

// GetJSON decodes the value at key into dst. Returns ErrMiss when absent.
func (c *RedisCache) GetJSON(ctx context.Context, key string, dst any) error {
	b, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	} else if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

// --- recap ---

// KeyForRecapVersion holds a per-user counter bumped on every review write.
func (c *RedisCache) KeyForRecapVersion(userID string) string {
	return fmt.Sprintf("recap:ver:%s", userID)
}

// RecapVersion returns the user's current recap generation (0 when unset).
func (c *RedisCache) RecapVersion(ctx context.Context, userID string) (int64, error) {
	val, err := c.Client.Get(ctx, c.KeyForRecapVersion(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

// InvalidateRecaps moves the user to a new recap generation; old entries
// are never read again and expire on their own TTL.
func (c *RedisCache) InvalidateRecaps(ctx context.Context, userID string) error {
	return c.Client.Incr(ctx, c.KeyForRecapVersion(userID)).Err()
}

// KeyForRecap generates the key of one cached recap.
func (c *RedisCache) KeyForRecap(userID, kind string, year int, month time.Month, version int64) string {
	return fmt.Sprintf("recap:%s:%s:%04d-%02d:v%d", userID, kind, year, int(month), version)
}

// --- friends ---

// KeyForFriendsCount generates Redis key for a user's friend count
func (c *RedisCache) KeyForFriendsCount(userID string) string {
	return fmt.Sprintf("friends:count:%s", userID)
}

func (c *RedisCache) UpdateFriendsCount(ctx context.Context, userID string, count int64) error {
	// Always refresh TTL when updating
	return c.Client.Set(ctx, c.KeyForFriendsCount(userID), count, time.Hour).Err()
}

// GetFriendsCount returns the cached count; ok is false on a miss.
func (c *RedisCache) GetFriendsCount(ctx context.Context, userID string) (int64, bool, error) {
	key := c.KeyForFriendsCount(userID)
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}
	// refresh TTL on access
	_ = c.Client.Expire(ctx, key, time.Hour).Err()
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}
