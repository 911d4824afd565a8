package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"incubator/internal/observability"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long a listing may be served from Redis.
const DefaultTTL = 30 * time.Second

// Listing names.
const (
	Profiles = "profiles"
	Research = "research"
	Startups = "startups"
)

var listings = []string{Profiles, Research, Startups}

// Listings caches directory listings in Redis. Every instance owns its own
// key space, since each process holds its own directory. Keys also carry a
// generation that Invalidate bumps, so a reader that raced a mutation can only
// ever write under a generation nobody reads any more. A nil *Listings, or one
// without a client, always falls through to the loader.
type Listings struct {
	client     *redis.Client
	ttl        time.Duration
	prefix     string
	generation atomic.Int64
}

// NewListings wraps client under a fresh instance id. A non-positive ttl uses
// DefaultTTL.
func NewListings(client *redis.Client, ttl time.Duration) *Listings {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Listings{client: client, ttl: ttl, prefix: "incubator:" + uuid.NewString()}
}

// Key returns the current key for a listing.
func (l *Listings) Key(name string) string {
	return l.keyAt(name, l.generation.Load())
}

func (l *Listings) keyAt(name string, gen int64) string {
	return fmt.Sprintf("%s:%s:v%d", l.prefix, name, gen)
}

// GetJSON reads key into dest. It reports false on a miss.
func (l *Listings) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if l == nil || l.client == nil {
		return false, nil
	}
	s, err := l.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores v under key with the configured TTL.
func (l *Listings) SetJSON(ctx context.Context, key string, v any) error {
	if l == nil || l.client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return l.client.Set(ctx, key, b, l.ttl).Err()
}

// Aside serves listing name from Redis, or calls load (which must fill dest)
// and stores the result. Redis failures are logged and never fail the read.
func (l *Listings) Aside(ctx context.Context, name string, dest any, load func() error) error {
	if l == nil || l.client == nil {
		return load()
	}

	key := l.Key(name)
	found, err := l.GetJSON(ctx, key, dest)
	switch {
	case err != nil:
		observability.CacheLookups.WithLabelValues("error").Inc()
		observability.GlobalLogger.WarnContext(ctx, "listing cache read failed", "key", key, "error", err)
	case found:
		observability.CacheLookups.WithLabelValues("hit").Inc()
		return nil
	default:
		observability.CacheLookups.WithLabelValues("miss").Inc()
	}

	if err := load(); err != nil {
		return err
	}
	if err := l.SetJSON(ctx, key, dest); err != nil {
		observability.GlobalLogger.WarnContext(ctx, "listing cache write failed", "key", key, "error", err)
	}
	return nil
}

// Invalidate retires every cached listing.
func (l *Listings) Invalidate(ctx context.Context) {
	if l == nil {
		return
	}
	old := l.generation.Add(1) - 1
	if l.client == nil {
		return
	}
	keys := make([]string, 0, len(listings))
	for _, name := range listings {
		keys = append(keys, l.keyAt(name, old))
	}
	if err := l.client.Del(ctx, keys...).Err(); err != nil {
		observability.GlobalLogger.WarnContext(ctx, "listing cache invalidation failed", "error", err)
	}
}
