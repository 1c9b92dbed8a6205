package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL is how long resolved locations stay cached. ZIP-to-place
// mappings change rarely.
const DefaultCacheTTL = 24 * time.Hour

// Cache is a Redis-backed cache for resolved locations. All operations are
// best-effort: cache failures never fail a lookup.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a location cache. A zero ttl uses DefaultCacheTTL.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) key(zip string) string {
	return fmt.Sprintf("geocode:zip:%s", zip)
}

// Get returns the cached location for a ZIP code, if present.
func (c *Cache) Get(ctx context.Context, zip string) (*Location, bool) {
	data, err := c.client.Get(ctx, c.key(zip)).Bytes()
	if err != nil {
		return nil, false
	}

	var loc Location
	if err := json.Unmarshal(data, &loc); err != nil {
		return nil, false
	}
	return &loc, true
}

// Set stores a resolved location.
func (c *Cache) Set(ctx context.Context, loc *Location) {
	data, err := json.Marshal(loc)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key(loc.ZipCode), data, c.ttl).Err()
}
