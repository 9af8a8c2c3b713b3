package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultSessionTTL = 24 * time.Hour

// Store implements ports.Storage on Redis. Every key carries the session TTL,
// so abandoned sessions expire without a sweeper.
// Key format: gw:<key> (e.g. gw:credential:<session_id>, gw:workspace:<session_id>)
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewStore creates a Store wrapping the given Redis client.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Store{client: client, prefix: "gw:", ttl: ttl}
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
