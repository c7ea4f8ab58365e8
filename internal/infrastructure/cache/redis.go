package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	opTimeout  = 1 * time.Second
	defaultTTL = 1 * time.Minute
)

// Redis stores rendered slips. Every call is bounded by a short timeout so
// a slow cache never holds up rendering.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if ttl <= 0 {
		ttl = defaultTTL
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
