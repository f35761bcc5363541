package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// CarryOverStore keeps carried-over values in Redis. Every write refreshes the
// key's TTL, so values vanish once the browsing session goes idle.
type CarryOverStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCarryOverStore(client *redis.Client, ttl time.Duration) *CarryOverStore {
	return &CarryOverStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *CarryOverStore) Save(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, s.ttl).Err()
}

func (s *CarryOverStore) Load(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *CarryOverStore) Clear(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
