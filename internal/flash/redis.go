package flash

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisStore{Client: client, TTL: ttl}
}

func key(sessionID string) string {
	return "flash:" + sessionID
}

func (s *RedisStore) Add(ctx context.Context, sessionID, message string) error {
	k := key(sessionID)
	_, err := s.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, k, message)
		pipe.Expire(ctx, k, s.TTL)
		return nil
	})
	return err
}

func (s *RedisStore) Pop(ctx context.Context, sessionID string) ([]string, error) {
	k := key(sessionID)
	var lrange *redis.StringSliceCmd
	_, err := s.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		lrange = pipe.LRange(ctx, k, 0, -1)
		pipe.Del(ctx, k)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lrange.Val(), nil
}
