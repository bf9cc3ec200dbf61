package main

import (
	"container/list"
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStatus is reported to clients via X-Cache-Status (spec.md §6).
type CacheStatus string

const (
	CacheHit    CacheStatus = "HIT"
	CacheMiss   CacheStatus = "MISS"
	CacheBypass CacheStatus = "BYPASS"
)

// Cache is the edge service's CSV cache. Get reports CacheMiss (not an
// error) when the key is absent.
type Cache interface {
	Get(ctx context.Context, key string) (value string, status CacheStatus, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// NewCache builds a Redis-backed cache when redisURL is set, verified with
// a startup Ping the way internal/config/redis.go does; it falls back to
// an in-process LRU when redisURL is empty or unreachable, so the service
// still runs without external state.
func NewCache(redisURL string, lruCapacity int) Cache {
	if redisURL == "" {
		return newLRUCache(lruCapacity)
	}

	var opt *redis.Options
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		parsed, err := redis.ParseURL(redisURL)
		if err != nil {
			slog.Warn("cache: invalid redis url, falling back to in-process LRU", "error", err)
			return newLRUCache(lruCapacity)
		}
		opt = parsed
	} else {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		slog.Warn("cache: redis unreachable, falling back to in-process LRU", "error", err)
		return newLRUCache(lruCapacity)
	}

	return &redisCache{client: client}
}

type redisCache struct {
	client *redis.Client
}

func (c *redisCache) Get(ctx context.Context, key string) (string, CacheStatus, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", CacheMiss, nil
	}
	if err != nil {
		return "", CacheMiss, err
	}
	return val, CacheHit, nil
}

func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// lruCache is a bounded in-process fallback, used only when Redis isn't
// configured or isn't reachable.
type lruCache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
}

type lruEntry struct {
	key       string
	value     string
	expiresAt time.Time
	noTTL     bool
}

func newLRUCache(capacity int) *lruCache {
	if capacity <= 0 {
		capacity = 32
	}
	return &lruCache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element),
	}
}

func (c *lruCache) Get(_ context.Context, key string) (string, CacheStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return "", CacheMiss, nil
	}
	entry := el.Value.(*lruEntry)
	if !entry.noTTL && time.Now().After(entry.expiresAt) {
		c.ll.Remove(el)
		delete(c.items, key)
		return "", CacheMiss, nil
	}
	c.ll.MoveToFront(el)
	return entry.value, CacheHit, nil
}

func (c *lruCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.ll.MoveToFront(el)
		entry := el.Value.(*lruEntry)
		entry.value = value
		if ttl <= 0 {
			entry.noTTL = true
		} else {
			entry.noTTL = false
			entry.expiresAt = time.Now().Add(ttl)
		}
		return nil
	}

	entry := &lruEntry{key: key, value: value}
	if ttl <= 0 {
		entry.noTTL = true
	} else {
		entry.expiresAt = time.Now().Add(ttl)
	}
	el := c.ll.PushFront(entry)
	c.items[key] = el

	if c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		if oldest != nil {
			c.ll.Remove(oldest)
			delete(c.items, oldest.Value.(*lruEntry).key)
		}
	}
	return nil
}
