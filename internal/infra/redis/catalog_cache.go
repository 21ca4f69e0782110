package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
)

// CatalogCache stores fetched catalogs so restarts and other instances skip the content API.
type CatalogCache struct {
	rdb    goredis.Cmdable
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

func NewCatalogCache(rdb goredis.Cmdable, prefix string, ttl time.Duration, logger *zap.Logger) *CatalogCache {
	return &CatalogCache{
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CatalogCache) key(module entities.ModuleKey) string {
	return fmt.Sprintf("%s:catalog:%s", c.prefix, module)
}

// Get returns the cached catalog and whether it was present.
// A payload that fails to decode is dropped and reported as a miss.
func (c *CatalogCache) Get(ctx context.Context, module entities.ModuleKey) ([]entities.Item, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(module)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("catalog cache get: %w", err)
	}

	var items []entities.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		c.logger.Warn("dropping corrupt catalog cache entry",
			zap.String("module", string(module)),
			zap.Error(err),
		)
		_ = c.rdb.Del(ctx, c.key(module)).Err()
		return nil, false, nil
	}

	return items, true, nil
}

func (c *CatalogCache) Set(ctx context.Context, module entities.ModuleKey, items []entities.Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	if err := c.rdb.Set(ctx, c.key(module), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("catalog cache set: %w", err)
	}
	return nil
}
