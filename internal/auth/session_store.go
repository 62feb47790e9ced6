package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore keeps session bindings in Redis with TTL.
type RedisSessionStore struct {
	client *redis.Client
}

// Ensure RedisSessionStore implements SessionStore
var _ SessionStore = (*RedisSessionStore)(nil)

// NewRedisSessionStore creates a Redis-backed session store.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

// Lookup resolves a token to the bound user id.
func (s *RedisSessionStore) Lookup(ctx context.Context, token string) (uint, bool, error) {
	val, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil || id == 0 {
		return 0, false, fmt.Errorf("corrupt session %q", token)
	}
	return uint(id), true, nil
}

// Bind stores token -> userID unless the token is already in use.
func (s *RedisSessionStore) Bind(ctx context.Context, token string, userID uint, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, sessionKeyPrefix+token, strconv.FormatUint(uint64(userID), 10), ttl).Result()
}

// Delete removes a token binding.
func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}
