package expenses

import (
	"context"
	"sync"
	"time"
)

// CategoriesCache holds the live categories of a user. Implementations must
// return copies so callers can't mutate cached entries.
type CategoriesCache interface {
	GetByUserID(ctx context.Context, userID string) ([]Category, bool)
	SetByUserID(ctx context.Context, userID string, categories []Category, ttl time.Duration)
	DeleteByUserID(ctx context.Context, userID string)
}

type noopCategoriesCache struct{}

func (noopCategoriesCache) GetByUserID(context.Context, string) ([]Category, bool) {
	return nil, false
}

func (noopCategoriesCache) SetByUserID(context.Context, string, []Category, time.Duration) {}

func (noopCategoriesCache) DeleteByUserID(context.Context, string) {}

// categoryGenerations counts category writes per user so a cache fill can
// tell whether its read went stale.
type categoryGenerations struct {
	mu     sync.Mutex
	byUser map[string]uint64
}

func (g *categoryGenerations) current(userID string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.byUser[userID]
}

func (g *categoryGenerations) bump(userID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.byUser == nil {
		g.byUser = make(map[string]uint64)
	}
	g.byUser[userID]++
}
