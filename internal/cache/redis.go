package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"lacajita-admin/internal/config"
	"lacajita-admin/internal/permission"
)

const grantTTL = 5 * time.Minute

// RedisGrantCache stores resolved permission grants in Redis so repeated
// requests from the same user don't hit the identity provider every time.
// All errors degrade to a cache miss; the resolver re-runs the pipeline.
type RedisGrantCache struct {
	logger *zap.SugaredLogger
	client *redis.Client
}

func NewRedisGrantCache(ctx context.Context, logger *zap.SugaredLogger, wg *sync.WaitGroup, cfg config.RedisConfig) (*RedisGrantCache, error) {
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		if err := client.Close(); err != nil {
			logger.Errorw("failed to close redis client", "error", err)
		}
	}()

	return &RedisGrantCache{
		logger: logger,
		client: client,
	}, nil
}

func grantKey(userID string) string {
	return "grant:" + userID
}

func (c *RedisGrantCache) GetGrant(ctx context.Context, userID string) (*permission.Grant, bool) {
	data, err := c.client.Get(ctx, grantKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warnw("failed to read cached grant", "userId", userID, "error", err)
		}
		return nil, false
	}

	grant := &permission.Grant{}
	if err := json.Unmarshal(data, grant); err != nil {
		c.logger.Warnw("discarding undecodable cached grant", "userId", userID, "error", err)
		c.InvalidateGrant(ctx, userID)
		return nil, false
	}

	return grant, true
}

func (c *RedisGrantCache) SetGrant(ctx context.Context, grant *permission.Grant) {
	data, err := json.Marshal(grant)
	if err != nil {
		c.logger.Errorw("failed to encode grant", "userId", grant.UserID, "error", err)
		return
	}

	if err := c.client.Set(ctx, grantKey(grant.UserID), data, grantTTL).Err(); err != nil {
		c.logger.Warnw("failed to cache grant", "userId", grant.UserID, "error", err)
	}
}

func (c *RedisGrantCache) InvalidateGrant(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, grantKey(userID)).Err(); err != nil {
		c.logger.Warnw("failed to invalidate cached grant", "userId", userID, "error", err)
	}
}

// InvalidateAllGrants drops every cached grant after a role mutation.
func (c *RedisGrantCache) InvalidateAllGrants(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, grantKey("*"), 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warnw("failed to invalidate cached grant", "key", iter.Val(), "error", err)
			return
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warnw("failed to scan cached grants", "error", err)
	}
}
