package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	expensesdomain "finance-tracker-go/internal/domain/expenses"
	"finance-tracker-go/pkg/logger"
	goredis "github.com/redis/go-redis/v9"
)

const categoriesKeyPrefix = "finance:categories:"

// CategoriesCache shares the categories of a user between service
// instances. Redis failures are logged and treated as misses.
type CategoriesCache struct {
	client *goredis.Client
	log    logger.Logger
}

func NewCategoriesCache(client *goredis.Client, log logger.Logger) *CategoriesCache {
	return &CategoriesCache{client: client, log: log}
}

func categoriesKey(userID string) string {
	return categoriesKeyPrefix + userID
}

func (c *CategoriesCache) GetByUserID(ctx context.Context, userID string) ([]expensesdomain.Category, bool) {
	data, err := c.client.Get(ctx, categoriesKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.log.Warn("cache.categories: get failed", "user_id", userID, "err", err)
		}
		return nil, false
	}

	var categories []expensesdomain.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		c.log.Warn("cache.categories: decode failed", "user_id", userID, "err", err)
		return nil, false
	}
	return categories, true
}

func (c *CategoriesCache) SetByUserID(ctx context.Context, userID string, categories []expensesdomain.Category, ttl time.Duration) {
	if ttl <= 0 {
		c.DeleteByUserID(ctx, userID)
		return
	}

	data, err := json.Marshal(categories)
	if err != nil {
		c.log.Warn("cache.categories: encode failed", "user_id", userID, "err", err)
		return
	}

	if err := c.client.Set(ctx, categoriesKey(userID), data, ttl).Err(); err != nil {
		c.log.Warn("cache.categories: set failed", "user_id", userID, "err", err)
	}
}

func (c *CategoriesCache) DeleteByUserID(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, categoriesKey(userID)).Err(); err != nil {
		c.log.Warn("cache.categories: delete failed", "user_id", userID, "err", err)
	}
}
