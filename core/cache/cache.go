package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"meeting-optimizer-api/core/config"
	"meeting-optimizer-api/core/constants"
	"meeting-optimizer-api/core/logger"

	"github.com/redis/go-redis/v9"
)

// Cache is the redis-backed cache used by the auth layer. Availability
// computation never reads or writes it; token caching is a decorator around
// the on-behalf-of exchange only.
type Cache interface {
	GetGraphToken(ctx context.Context, userOID string, scopes []string) (string, bool)
	SetGraphToken(ctx context.Context, userOID string, scopes []string, token string, ttl time.Duration) error
	Close() error
}

type redisCache struct {
	client *redis.Client
}

func NewCache(cfg config.RedisConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis cache initialized", "addr", cfg.Addr, "db", cfg.DB)
	return &redisCache{client: client}, nil
}

// tokenKey builds a cache key from the user object id and the requested
// scope set. Scopes are hashed so arbitrary scope strings stay key-safe.
func tokenKey(userOID string, scopes []string) string {
	sum := sha256.Sum256([]byte(strings.Join(scopes, ",")))
	return constants.RedisKeyGraphToken + userOID + ":" + hex.EncodeToString(sum[:8])
}

func (c *redisCache) GetGraphToken(ctx context.Context, userOID string, scopes []string) (string, bool) {
	val, err := c.client.Get(ctx, tokenKey(userOID, scopes)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Cache:GetGraphToken:Error", "error", err)
		}
		return "", false
	}
	return val, true
}

func (c *redisCache) SetGraphToken(ctx context.Context, userOID string, scopes []string, token string, ttl time.Duration) error {
	return c.client.Set(ctx, tokenKey(userOID, scopes), token, ttl).Err()
}

func (c *redisCache) Close() error {
	return c.client.Close()
}
