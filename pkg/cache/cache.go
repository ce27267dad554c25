// Package cache is a small Redis read-through cache for the public
// catalog reads. A nil *Store is valid and disables caching, so callers
// never branch on configuration.
//
// Invalidation is by version bump: every product mutation increments a
// version counter that is part of each cache key, so stale entries are
// simply never read again and age out via TTL.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/glowmart/pkg/metrics"
)

const versionKey = "products:ver"

// Store caches JSON-encoded values in Redis.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to Redis. An empty addr returns nil (caching disabled).
func New(addr, password string, ttl time.Duration) *Store {
	if addr == "" {
		return nil
	}
	return &Store{
		rdb: redis.NewClient(&redis.Options{Addr: addr, Password: password}),
		ttl: ttl,
	}
}

// Key builds a versioned cache key from a query signature.
func (s *Store) Key(ctx context.Context, sig string) string {
	if s == nil {
		return ""
	}
	ver, err := s.rdb.Get(ctx, versionKey).Result()
	if err != nil {
		ver = "0"
	}
	return "products:" + ver + ":" + sig
}

// Get unmarshals the cached value for key into dest; reports whether a
// usable entry was found.
func (s *Store) Get(ctx context.Context, key string, dest interface{}) bool {
	if s == nil {
		return false
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil || json.Unmarshal(raw, dest) != nil {
		metrics.CacheMisses.Inc()
		return false
	}
	metrics.CacheHits.Inc()
	return true
}

// Set stores v under key for the configured TTL. Failures are ignored;
// the cache is best-effort.
func (s *Store) Set(ctx context.Context, key string, v interface{}) {
	if s == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = s.rdb.Set(ctx, key, raw, s.ttl).Err()
}

// Invalidate bumps the version counter, orphaning every existing entry.
// Called after each product mutation.
func (s *Store) Invalidate(ctx context.Context) {
	if s == nil {
		return
	}
	_ = s.rdb.Incr(ctx, versionKey).Err()
}

// Close releases the Redis connection.
func (s *Store) Close() {
	if s == nil {
		return
	}
	_ = s.rdb.Close()
}
