package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/DanielPopoola/checkout-tokenization/internal/application"
)

// Settings reads typed values from a KeyValueStore.
type Settings struct {
	store application.KeyValueStore
}

func NewSettings(store application.KeyValueStore) Settings {
	return Settings{store: store}
}

func (s Settings) String(ctx context.Context, key string) (string, bool, error) {
	return s.store.Get(ctx, key)
}

// Bool treats a missing key as false.
func (s Settings) Bool(ctx context.Context, key string) (bool, error) {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("setting %s: %w", key, err)
	}
	return v, nil
}

func (s Settings) Set(ctx context.Context, entries map[string]*string) error {
	return s.store.Set(ctx, entries)
}

func StringValue(v string) *string {
	return &v
}

func BoolValue(v bool) *string {
	s := strconv.FormatBool(v)
	return &s
}
