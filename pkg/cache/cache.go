// Package cache holds small key/value state shared across requests: assistant
// question quotas and analytics snapshots. Redis backs it in production; the
// in-memory store is used when redis is disabled and in tests.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

var ErrMiss = errors.New("cache: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// Incr increments key and applies ttl when the key is created.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	// Decr undoes one Incr, never going below zero.
	Decr(ctx context.Context, key string) (int64, error)
	// Count returns the integer stored at key, 0 when missing.
	Count(ctx context.Context, key string) (int64, error)
}

// New picks the redis store when a client is available.
func New(rdb *redis.Client) Store {
	if rdb == nil {
		return NewMemoryStore()
	}
	return &RedisStore{Client: rdb}
}

type RedisStore struct {
	Client *redis.Client
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return b, err
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.Client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.Client.Del(ctx, keys...).Err()
}

func (s *RedisStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	n, err := s.Client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	// the window starts at the first increment
	if n == 1 && ttl > 0 {
		if err := s.Client.Expire(ctx, key, ttl).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (s *RedisStore) Decr(ctx context.Context, key string) (int64, error) {
	n, err := s.Client.Decr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, s.Client.Set(ctx, key, 0, redis.KeepTTL).Err()
	}
	return n, nil
}

func (s *RedisStore) Count(ctx context.Context, key string) (int64, error) {
	n, err := s.Client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

type memItem struct {
	value   []byte
	n       int64
	expires time.Time
}

func (i memItem) expired(now time.Time) bool {
	return !i.expires.IsZero() && now.After(i.expires)
}

type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memItem
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memItem), now: time.Now}
}

func (s *MemoryStore) lookup(key string) (memItem, bool) {
	it, ok := s.items[key]
	if !ok {
		return memItem{}, false
	}
	if it.expired(s.now()) {
		delete(s.items, key)
		return memItem{}, false
	}
	return it, true
}

func (s *MemoryStore) expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return s.now().Add(ttl)
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.lookup(key)
	if !ok || it.value == nil {
		return nil, ErrMiss
	}
	return append([]byte(nil), it.value...), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = memItem{value: append([]byte(nil), value...), expires: s.expiry(ttl)}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.items, k)
	}
	return nil
}

func (s *MemoryStore) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.lookup(key)
	if !ok {
		it = memItem{expires: s.expiry(ttl)}
	}
	it.n++
	s.items[key] = it
	return it.n, nil
}

func (s *MemoryStore) Decr(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.lookup(key)
	if !ok || it.n == 0 {
		return 0, nil
	}
	it.n--
	s.items[key] = it
	return it.n, nil
}

func (s *MemoryStore) Count(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, _ := s.lookup(key)
	return it.n, nil
}
