package redis

import (
	"context"
	"testing"
	"time"

	expensesdomain "finance-tracker-go/internal/domain/expenses"
	"finance-tracker-go/pkg/logger"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// unreachableClient points at a closed port so every command fails fast.
func unreachableClient(t *testing.T) *goredis.Client {
	t.Helper()
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestCategoriesKeyIsScopedByUser(t *testing.T) {
	assert.Equal(t, "finance:categories:u1", categoriesKey("u1"))
	assert.NotEqual(t, categoriesKey("u1"), categoriesKey("u2"))
}

func TestCategoriesCacheDegradesToMissWhenRedisIsDown(t *testing.T) {
	cache := NewCategoriesCache(unreachableClient(t), logger.Discard())
	ctx := context.Background()

	cache.SetByUserID(ctx, "u1", []expensesdomain.Category{{ID: "c1", Name: "Food"}}, time.Minute)
	_, ok := cache.GetByUserID(ctx, "u1")
	assert.False(t, ok)
	cache.DeleteByUserID(ctx, "u1")
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := NewClient(context.Background(), "http://localhost:6379")
	assert.Error(t, err)
}
