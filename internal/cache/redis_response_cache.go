package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SirPenguin555/Whats-That-Color/internal/model"
	"github.com/SirPenguin555/Whats-That-Color/internal/scoring"
)

const (
	responseKeyPrefix = "colorscore:resp:"
	responseOrderKey  = "colorscore:resp:order"
)

// setResponse drops order members whose payload expired, evicts the oldest members
// while at capacity and writes the payload. A key that is still live keeps its position.
//
// KEYS[1] payload key, KEYS[2] order list
// ARGV[1] payload, ARGV[2] ttl ms, ARGV[3] capacity, ARGV[4] cache key, ARGV[5] payload prefix
var setResponse = redis.NewScript(`
local live = redis.call('EXISTS', KEYS[1])
local members = redis.call('LRANGE', KEYS[2], 0, -1)
for _, m in ipairs(members) do
  if redis.call('EXISTS', ARGV[5] .. m) == 0 then
    redis.call('LREM', KEYS[2], 0, m)
  end
end
if live == 0 then
  local capacity = tonumber(ARGV[3])
  while redis.call('LLEN', KEYS[2]) >= capacity do
    local oldest = redis.call('LPOP', KEYS[2])
    if not oldest then break end
    redis.call('DEL', ARGV[5] .. oldest)
  end
  redis.call('RPUSH', KEYS[2], ARGV[4])
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
return live
`)

type redisResponseCache struct {
	client   *redis.Client
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// NewRedisResponseCache creates a cache shared by every instance using the same Redis.
// Expiry is left to Redis key TTLs.
func NewRedisResponseCache(client *redis.Client, capacity int, ttl time.Duration) ResponseCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &redisResponseCache{
		client:   client,
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (c *redisResponseCache) key(cacheKey string) string {
	return responseKeyPrefix + cacheKey
}

func (c *redisResponseCache) Get(ctx context.Context, key string) (*model.ScoreResponse, error) {
	data, err := c.client.Get(ctx, c.key(key)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entry model.CacheEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil || entry.Key != key || !scoring.Valid(entry.Payload.Scores) {
		return nil, c.discard(ctx, key)
	}

	resp := entry.Payload
	resp.CachedHit = true
	return &resp, nil
}

func (c *redisResponseCache) Set(ctx context.Context, key string, resp *model.ScoreResponse) error {
	if resp == nil {
		return nil
	}
	data, err := json.Marshal(model.CacheEntry{Key: key, Payload: *resp, CreatedAt: c.now()})
	if err != nil {
		return err
	}
	err = setResponse.Run(ctx, c.client,
		[]string{c.key(key), responseOrderKey},
		data, c.ttl.Milliseconds(), c.capacity, key, responseKeyPrefix,
	).Err()
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *redisResponseCache) Clear(ctx context.Context) error {
	members, err := c.client.LRange(ctx, responseOrderKey, 0, -1).Result()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(members)+1)
	for _, m := range members {
		keys = append(keys, c.key(m))
	}
	keys = append(keys, responseOrderKey)
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisResponseCache) Stats(ctx context.Context) (model.CacheStats, error) {
	stats := model.CacheStats{MaxSize: c.capacity}

	members, err := c.client.LRange(ctx, responseOrderKey, 0, -1).Result()
	if err != nil {
		return stats, err
	}
	if len(members) == 0 {
		return stats, nil
	}

	pipe := c.client.Pipeline()
	checks := make([]*redis.IntCmd, len(members))
	for i, m := range members {
		checks[i] = pipe.Exists(ctx, c.key(m))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return stats, err
	}
	for _, cmd := range checks {
		stats.Size += int(cmd.Val())
	}
	return stats, nil
}

// discard drops a payload that no longer decodes into a valid entry
func (c *redisResponseCache) discard(ctx context.Context, key string) error {
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, c.key(key))
	pipe.LRem(ctx, responseOrderKey, 0, key)
	_, err := pipe.Exec(ctx)
	return err
}
