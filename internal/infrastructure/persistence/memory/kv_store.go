package memory

import (
	"context"
	"maps"
	"sync"
)

// KVStore keeps settings in process memory.
type KVStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewKVStore() *KVStore {
	return &KVStore{entries: make(map[string]string)}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok, nil
}

// Set applies the batch under one lock; nil values delete.
func (s *KVStore) Set(ctx context.Context, entries map[string]*string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range entries {
		if v == nil {
			delete(s.entries, k)
			continue
		}
		s.entries[k] = *v
	}
	return nil
}

// Snapshot returns a copy of every entry.
func (s *KVStore) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.entries)
}
