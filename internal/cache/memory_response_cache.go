package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/SirPenguin555/Whats-That-Color/internal/model"
	"github.com/SirPenguin555/Whats-That-Color/internal/scoring"
)

type memoryResponseCache struct {
	mu       sync.Mutex
	order    *list.List // of *model.CacheEntry, oldest first
	entries  map[string]*list.Element
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryResponseCache creates an in-process cache. Non-positive capacity or ttl take the
// defaults; a nil clock means time.Now.
func NewMemoryResponseCache(capacity int, ttl time.Duration, now func() time.Time) ResponseCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &memoryResponseCache{
		order:    list.New(),
		entries:  make(map[string]*list.Element),
		capacity: capacity,
		ttl:      ttl,
		now:      now,
	}
}

func (c *memoryResponseCache) Get(_ context.Context, key string) (*model.ScoreResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	entry := el.Value.(*model.CacheEntry)
	if c.now().Sub(entry.CreatedAt) > c.ttl || !scoring.Valid(entry.Payload.Scores) {
		c.remove(el)
		return nil, nil
	}

	resp := entry.Payload
	resp.CachedHit = true
	return &resp, nil
}

func (c *memoryResponseCache) Set(_ context.Context, key string, resp *model.ScoreResponse) error {
	if resp == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if el, ok := c.entries[key]; ok {
		entry := el.Value.(*model.CacheEntry)
		entry.Payload = *resp
		entry.CreatedAt = now
		return nil
	}

	for c.order.Len() >= c.capacity {
		c.remove(c.order.Front())
	}
	c.entries[key] = c.order.PushBack(&model.CacheEntry{Key: key, Payload: *resp, CreatedAt: now})
	return nil
}

func (c *memoryResponseCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	clear(c.entries)
	return nil
}

func (c *memoryResponseCache) Stats(_ context.Context) (model.CacheStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// a re-set refreshes createdAt in place, so expired entries can sit anywhere in the list
	now := c.now()
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if now.Sub(el.Value.(*model.CacheEntry).CreatedAt) > c.ttl {
			c.remove(el)
		}
		el = next
	}
	return model.CacheStats{Size: c.order.Len(), MaxSize: c.capacity}, nil
}

func (c *memoryResponseCache) remove(el *list.Element) {
	entry := c.order.Remove(el).(*model.CacheEntry)
	delete(c.entries, entry.Key)
}
