package storage

import (
	"context"
	"errors"

	"github.com/etnz/qianbao"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces the keys written in redis.
const DefaultRedisPrefix = "qianbao:"

// Redis is a slot where each key is a redis string.
type Redis struct {
	rdb    *redis.Client
	prefix string
}

// NewRedis connects lazily to the redis server at addr.
func NewRedis(addr, password string, db int, prefix string) *Redis {
	return NewRedisClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}), prefix)
}

// NewRedisClient uses an existing client.
func NewRedisClient(rdb *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &Redis{rdb: rdb, prefix: prefix}
}

func (s *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, qianbao.ErrSlotEmpty
	}
	return data, err
}

func (s *Redis) Set(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *Redis) Close() error { return s.rdb.Close() }
