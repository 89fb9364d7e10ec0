package inmemory

import (
	"context"
	"slices"
	"sync"
	"time"

	expensesdomain "finance-tracker-go/internal/domain/expenses"
)

// sweepThreshold is the entry count above which writes drop expired entries
// of every user.
const sweepThreshold = 256

// CategoriesCache keeps each user's categories in process memory until the
// entry's TTL runs out.
type CategoriesCache struct {
	mu      sync.Mutex
	entries map[string]categoriesEntry
	clock   func() time.Time
}

type categoriesEntry struct {
	categories []expensesdomain.Category
	expires    time.Time
}

// NewCategoriesCache reads time from clock. A nil clock means time.Now.
func NewCategoriesCache(clock func() time.Time) *CategoriesCache {
	if clock == nil {
		clock = time.Now
	}
	return &CategoriesCache{
		entries: make(map[string]categoriesEntry),
		clock:   clock,
	}
}

func (c *CategoriesCache) GetByUserID(_ context.Context, userID string) ([]expensesdomain.Category, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[userID]
	if !ok {
		return nil, false
	}
	if !c.clock().Before(entry.expires) {
		delete(c.entries, userID)
		return nil, false
	}
	return copyCategories(entry.categories), true
}

func (c *CategoriesCache) SetByUserID(_ context.Context, userID string, categories []expensesdomain.Category, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ttl <= 0 {
		delete(c.entries, userID)
		return
	}

	now := c.clock()
	if len(c.entries) >= sweepThreshold {
		for id, entry := range c.entries {
			if !now.Before(entry.expires) {
				delete(c.entries, id)
			}
		}
	}
	c.entries[userID] = categoriesEntry{
		categories: copyCategories(categories),
		expires:    now.Add(ttl),
	}
}

func (c *CategoriesCache) DeleteByUserID(_ context.Context, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
}

// copyCategories also copies the color each category points at.
func copyCategories(categories []expensesdomain.Category) []expensesdomain.Category {
	copied := slices.Clone(categories)
	for i := range copied {
		if copied[i].Color != nil {
			color := *copied[i].Color
			copied[i].Color = &color
		}
	}
	return copied
}
