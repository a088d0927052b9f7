package redisadapter

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"plume/contexts/publishing/poll-engine/ports"
)

// Cache stores anonymous tallies in redis under a per-slug key.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) GetTally(ctx context.Context, slug string) (ports.CachedTally, bool, error) {
	raw, err := c.client.Get(ctx, tallyKey(slug)).Bytes()
	if err == redis.Nil {
		return ports.CachedTally{}, false, nil
	}
	if err != nil {
		return ports.CachedTally{}, false, err
	}
	var entry ports.CachedTally
	if err := json.Unmarshal(raw, &entry); err != nil {
		// Treat a corrupt entry as a miss; the next write replaces it.
		return ports.CachedTally{}, false, nil
	}
	return entry, true, nil
}

func (c *Cache) SetTally(ctx context.Context, slug string, entry ports.CachedTally, ttl time.Duration) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, tallyKey(slug), raw, ttl).Err()
}

func (c *Cache) InvalidateTally(ctx context.Context, slug string) error {
	return c.client.Del(ctx, tallyKey(slug)).Err()
}

func tallyKey(slug string) string {
	return "poll:tally:" + slug
}

var _ ports.TallyCache = (*Cache)(nil)
