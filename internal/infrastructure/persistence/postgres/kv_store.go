package postgres

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/DanielPopoola/checkout-tokenization/internal/application"
	"github.com/jackc/pgx/v5"
)

// KVStore keeps settings in the kv_entries table. A batch is written in
// one transaction.
type KVStore struct {
	db *DB
}

var _ application.KeyValueStore = (*KVStore)(nil)

func NewKVStore(db *DB) *KVStore {
	return &KVStore{db: db}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.Pool.QueryRow(ctx, `SELECT value FROM kv_entries WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
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

	// Stable key order keeps concurrent batches from deadlocking.
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return s.db.WithTransaction(ctx, func(ctx context.Context, q Executor) error {
		for _, key := range keys {
			if err := setEntry(ctx, q, key, entries[key]); err != nil {
				return err
			}
		}
		return nil
	})
}

func setEntry(ctx context.Context, q Executor, key string, value *string) error {
	if value == nil {
		if _, err := q.Exec(ctx, `DELETE FROM kv_entries WHERE key = $1`, key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
		return nil
	}

	query := `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := q.Exec(ctx, query, key, *value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
