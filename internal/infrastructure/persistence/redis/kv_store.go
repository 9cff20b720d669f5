package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/checkout-tokenization/internal/application"
	goredis "github.com/redis/go-redis/v9"
)

// KVStore keeps settings as plain redis strings under a common prefix.
// Set writes its batch in a MULTI/EXEC block.
type KVStore struct {
	client goredis.UniversalClient
	prefix string
}

var _ application.KeyValueStore = (*KVStore)(nil)

func NewKVStore(client goredis.UniversalClient, prefix string) *KVStore {
	return &KVStore{client: client, prefix: prefix}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *KVStore) Set(ctx context.Context, entries map[string]*string) error {
	if len(entries) == 0 {
		return nil
	}

	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for key, value := range entries {
			if value == nil {
				pipe.Del(ctx, s.prefix+key)
				continue
			}
			pipe.Set(ctx, s.prefix+key, *value, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("set batch: %w", err)
	}
	return nil
}
