// Package redis holds thin clients over go-redis. The creator cache keeps a
// user id -> creator id hint so repeated profile lookups skip a database
// round trip; every entry is advisory and the database stays authoritative.
package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jarahq/jara-backend/internal/logger"
)

type CreatorCache interface {
	GetCreatorID(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool)
	SetCreatorID(ctx context.Context, userID, creatorID uuid.UUID)
	Invalidate(ctx context.Context, userID uuid.UUID)
	Close() error
}

type creatorCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewCreatorCache(log *logger.Logger) (CreatorCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &creatorCache{
		log: log.With("service", "RedisCreatorCache"),
		rdb: rdb,
		ttl: 10 * time.Minute,
	}, nil
}

func cacheKey(userID uuid.UUID) string {
	return "creator:user:" + userID.String()
}

func (c *creatorCache) GetCreatorID(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool) {
	if c == nil || c.rdb == nil || userID == uuid.Nil {
		return uuid.Nil, false
	}
	raw, err := c.rdb.Get(ctx, cacheKey(userID)).Result()
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (c *creatorCache) SetCreatorID(ctx context.Context, userID, creatorID uuid.UUID) {
	if c == nil || c.rdb == nil || userID == uuid.Nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(userID), creatorID.String(), c.ttl).Err(); err != nil {
		c.log.Warn("Failed to cache creator id", "error", err)
	}
}

func (c *creatorCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if c == nil || c.rdb == nil || userID == uuid.Nil {
		return
	}
	if err := c.rdb.Del(ctx, cacheKey(userID)).Err(); err != nil {
		c.log.Warn("Failed to invalidate creator id", "error", err)
	}
}

func (c *creatorCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
