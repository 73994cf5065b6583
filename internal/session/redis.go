package session

import (
	"context"
	"errors"
	"time"

	"github.com/lingoloop/lingoloop/internal/cache"
)

// RedisStore keeps sessions in Redis so multiple API instances can share
// them. The TTL refreshes on every write, matching MemoryStore semantics.
type RedisStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewRedisStore(c *cache.Cache, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{cache: c, ttl: ttl}
}

func sessionKey(id string) string { return "session:" + id }

func (r *RedisStore) Put(ctx context.Context, s *Session) error {
	return r.cache.Set(ctx, sessionKey(s.ID), s, r.ttl)
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	var s Session
	err := r.cache.Get(ctx, sessionKey(id), &s)
	if errors.Is(err, cache.ErrMiss) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.cache.Delete(ctx, sessionKey(id))
}
