// internal/products/cache.go
package products

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"shopmate-api/internal/common/logger"
	"shopmate-api/internal/models"

	"github.com/redis/go-redis/v9"
)

// CachedStore is a read-through cache in front of another Store. Cache
// failures are invisible to callers; every miss or Redis error falls
// through to the backend.
type CachedStore struct {
	backend Store
	redis   *redis.Client
	ttl     time.Duration
	logger  logger.Logger
}

func NewCachedStore(backend Store, redisClient *redis.Client, ttl time.Duration, log logger.Logger) *CachedStore {
	return &CachedStore{
		backend: backend,
		redis:   redisClient,
		ttl:     ttl,
		logger:  log.WithFields(map[string]interface{}{"component": "product-cache"}),
	}
}

func (c *CachedStore) NamesByCategory(ctx context.Context, category string) ([]string, error) {
	key := cacheKey(models.QueryTypeNamesByCategory, strings.ToLower(category))

	var names []string
	if c.getJSON(ctx, key, &names) {
		return names, nil
	}

	names, err := c.backend.NamesByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	c.setJSON(ctx, key, names)
	return names, nil
}

func (c *CachedStore) Count(ctx context.Context) (int, error) {
	key := cacheKey(models.QueryTypeProductCount, "")

	var count int
	if c.getJSON(ctx, key, &count) {
		return count, nil
	}

	count, err := c.backend.Count(ctx)
	if err != nil {
		return 0, err
	}
	c.setJSON(ctx, key, count)
	return count, nil
}

func (c *CachedStore) ListNames(ctx context.Context, limit int) ([]string, error) {
	key := cacheKey(models.QueryTypeProductList, fmt.Sprintf("%d", limit))

	var names []string
	if c.getJSON(ctx, key, &names) {
		return names, nil
	}

	names, err := c.backend.ListNames(ctx, limit)
	if err != nil {
		return nil, err
	}
	c.setJSON(ctx, key, names)
	return names, nil
}

// FindByName is not cached: price lookups must reflect the live catalog.
func (c *CachedStore) FindByName(ctx context.Context, fragment string) (*models.Product, error) {
	return c.backend.FindByName(ctx, fragment)
}

func cacheKey(queryType models.QueryType, arg string) string {
	if arg == "" {
		return fmt.Sprintf("products:%s", queryType)
	}
	return fmt.Sprintf("products:%s:%s", queryType, arg)
}

func (c *CachedStore) getJSON(ctx context.Context, key string, dest interface{}) bool {
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		c.logger.Warn("corrupt cache entry dropped", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		c.redis.Del(ctx, key)
		return false
	}
	return true
}

func (c *CachedStore) setJSON(ctx context.Context, key string, val interface{}) {
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
