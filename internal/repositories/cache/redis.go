// Package cache provides the Redis-backed account cache.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"paylater/internal/models"
	"paylater/internal/repositories"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// NewRedisClient creates a Redis client from config.
func NewRedisClient(cfg *RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// AccountCache caches ledger accounts in Redis. Platform stats are
// deliberately never cached here; they must reflect committed state.
type AccountCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAccountCache wraps a Redis client as a repositories.AccountCache.
func NewAccountCache(client *redis.Client, ttl time.Duration) *AccountCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &AccountCache{client: client, ttl: ttl}
}

func accountKey(userID uint) string {
	return fmt.Sprintf("account:%d", userID)
}

func (c *AccountCache) GetAccount(ctx context.Context, userID uint) (*models.Account, error) {
	val, err := c.client.Get(ctx, accountKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	var account models.Account
	if err := json.Unmarshal([]byte(val), &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *AccountCache) SetAccount(ctx context.Context, account *models.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, accountKey(account.UserID), data, c.ttl).Err()
}

func (c *AccountCache) InvalidateAccount(ctx context.Context, userID uint) error {
	return c.client.Del(ctx, accountKey(userID)).Err()
}

// HealthCheck pings Redis.
func (c *AccountCache) HealthCheck(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (c *AccountCache) Close() error {
	return c.client.Close()
}
