package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps every record as a JSON string under <prefix><key>
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ WeightStore = &RedisStore{}

func NewRedisStore(addr, prefix string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
		prefix: prefix,
	}
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Save(ctx context.Context, key string, rec Record) error {
	bs, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.prefix+key, bs, 0).Err()
}

func (r *RedisStore) Load(ctx context.Context, key string) (*Record, error) {
	bs, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	} else if err != nil {
		return nil, err
	}
	rec := &Record{}
	if err := json.Unmarshal(bs, rec); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, err)
	}
	return rec, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
