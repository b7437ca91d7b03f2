package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"blog-showcase/cmd/internal/logger"
)

// Redis 는 여러 API 인스턴스가 upstream 응답을 공유할 때 쓰는 백엔드다.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedis(client *redis.Client, prefix string, ttl time.Duration) *Redis {
	return &Redis{client: client, prefix: prefix, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.WarnWithFields("redis cache get failed", logger.Fields{"key": key, "error": err.Error()})
		}
		return nil, false
	}
	return b, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) {
	if err := r.client.Set(ctx, r.prefix+key, value, r.ttl).Err(); err != nil {
		logger.WarnWithFields("redis cache set failed", logger.Fields{"key": key, "error": err.Error()})
	}
}
