package suggest

import (
	"context"
	"fmt"
	"log"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/jask/tradedesk/internal/api"
)

const DefaultCacheTTL = 10 * time.Minute

// Cache stores lookup results by query. A failing cache behaves as a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]api.Player, bool)
	Put(ctx context.Context, key string, items []api.Player)
}

// RedisCache keeps lookup results in Redis with a fixed TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisCache connects to the Redis server at url (redis://host:port/db).
func NewRedisCache(ctx context.Context, url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{client: client, ttl: ttl, prefix: "tradedesk:players:"}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]api.Player, bool) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("suggest: cache get %q: %v", key, err)
		}
		return nil, false
	}
	var items []api.Player
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (c *RedisCache) Put(ctx context.Context, key string, items []api.Player) {
	if items == nil {
		items = []api.Player{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		log.Printf("suggest: cache put %q: %v", key, err)
	}
}

func (c *RedisCache) Close() error { return c.client.Close() }
