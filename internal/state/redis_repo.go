package state

import (
	"context"

	"github.com/threadline/storefront/pkg/redis"
)

// RedisRepository persists collection documents as redis string keys.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository constructs a repository over the shared redis client.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

// Get returns the stored payload, or nil when the key is absent.
func (r *RedisRepository) Get(ctx context.Context, namespace string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.client.CollectionKey(namespace))
	if err != nil {
		if redis.IsNil(err) {
			return nil, nil
		}
		return nil, err
	}
	return []byte(value), nil
}

// Put replaces the key's payload. Collections never expire.
func (r *RedisRepository) Put(ctx context.Context, namespace string, payload []byte) error {
	return r.client.Set(ctx, r.client.CollectionKey(namespace), string(payload), 0)
}
