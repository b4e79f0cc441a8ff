// Package cache stores rendered dashboards keyed by filter selection.
// The dataset never changes after load, so entries only expire by TTL.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when no live entry exists.
var ErrMiss = errors.New("cache: miss")

// Cache is a byte cache with per-entry TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// ============================================================================
// MEMORY
// ============================================================================

type entry struct {
	value   []byte
	expires time.Time
	seq     uint64 // insertion order
}

// DefaultMaxEntries caps a Memory cache built by NewMemory.
const DefaultMaxEntries = 1024

// Memory is an in-process Cache. The zero TTL keeps entries until they are
// evicted. Expired entries are swept on Set at most once per TTL, and when
// the cache is full the earliest inserted entry is evicted.
type Memory struct {
	mu         sync.RWMutex
	ttl        time.Duration
	max        int
	now        func() time.Time
	nextSweep  time.Time
	entries    map[string]entry
	insertions uint64
}

// NewMemory returns an empty in-process cache holding up to
// DefaultMaxEntries entries.
func NewMemory(ttl time.Duration) *Memory {
	return NewMemorySize(ttl, DefaultMaxEntries)
}

// NewMemorySize is NewMemory with an explicit entry cap. A cap below one
// means DefaultMaxEntries.
func NewMemorySize(ttl time.Duration, max int) *Memory {
	if max < 1 {
		max = DefaultMaxEntries
	}
	return &Memory{ttl: ttl, max: max, now: time.Now, entries: make(map[string]entry)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrMiss
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, ErrMiss
	}
	return e.value, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ttl > 0 && !now.Before(m.nextSweep) {
		m.sweep(now)
		m.nextSweep = now.Add(m.ttl)
	}
	if _, ok := m.entries[key]; !ok && len(m.entries) >= m.max {
		m.sweep(now)
		if len(m.entries) >= m.max {
			m.evictOldest()
		}
	}

	m.insertions++
	e := entry{value: append([]byte(nil), value...), seq: m.insertions}
	if m.ttl > 0 {
		e.expires = now.Add(m.ttl)
	}
	m.entries[key] = e
	return nil
}

// sweep drops expired entries. Callers hold mu.
func (m *Memory) sweep(now time.Time) {
	for k, e := range m.entries {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(m.entries, k)
		}
	}
}

// evictOldest drops the earliest inserted entry. Callers hold mu.
func (m *Memory) evictOldest() {
	var oldest string
	var seq uint64
	for k, e := range m.entries {
		if seq == 0 || e.seq < seq {
			oldest, seq = k, e.seq
		}
	}
	delete(m.entries, oldest)
}

// Len reports the number of stored entries, including expired ones not
// yet swept.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// ============================================================================
// REDIS
// ============================================================================

// Redis is a Cache shared between server replicas.
type Redis struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedis wraps an existing client. Keys are namespaced under prefix.
func NewRedis(rdb *redis.Client, ttl time.Duration, prefix string) *Redis {
	return &Redis{rdb: rdb, ttl: ttl, prefix: prefix}
}

// DialRedis connects using a redis:// URL and pings the server.
func DialRedis(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return NewRedis(rdb, ttl, "pizzadash:"), nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return b, err
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.rdb.Set(ctx, r.prefix+key, value, r.ttl).Err()
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error { return r.rdb.Close() }
