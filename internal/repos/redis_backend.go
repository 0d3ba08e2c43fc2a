package repos

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores each collection under <prefix>:<collection>.
type RedisBackend struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisBackend(client redis.UniversalClient, prefix string) *RedisBackend {
	if prefix == "" {
		prefix = "storefront"
	}
	return &RedisBackend{client: client, prefix: prefix}
}

func (b *RedisBackend) key(collection string) string {
	return fmt.Sprintf("%s:%s", b.prefix, collection)
}

func (b *RedisBackend) Read(ctx context.Context, collection string) ([]byte, error) {
	body, err := b.client.Get(ctx, b.key(collection)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (b *RedisBackend) Write(ctx context.Context, collection string, body []byte) error {
	return b.client.Set(ctx, b.key(collection), body, 0).Err()
}
