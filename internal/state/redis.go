package state

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "mastoride:state:"

// RedisStore backs the client-state cache with Redis so cached profile
// edits, settings and badge splits survive process restarts.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(identityKey, namespace string) string {
	return keyPrefix + identityKey + ":" + namespace
}

func (r *RedisStore) Get(ctx context.Context, identityKey, namespace string) ([]byte, bool, error) {
	raw, err := r.client.Get(ctx, redisKey(identityKey, namespace)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (r *RedisStore) Put(ctx context.Context, identityKey, namespace string, value []byte) error {
	return r.client.Set(ctx, redisKey(identityKey, namespace), value, 0).Err()
}

func (r *RedisStore) Delete(ctx context.Context, identityKey, namespace string) error {
	return r.client.Del(ctx, redisKey(identityKey, namespace)).Err()
}
