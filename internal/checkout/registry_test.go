package checkout_test

import (
	"context"
	"testing"
	"time"

	"github.com/DanielPopoola/checkout-tokenization/internal/application/mocks"
	"github.com/DanielPopoola/checkout-tokenization/internal/checkout"
	"github.com/DanielPopoola/checkout-tokenization/internal/domain"
	"github.com/DanielPopoola/checkout-tokenization/internal/tokenization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func idleFlow(t *testing.T) *tokenization.Flow {
	flow, err := tokenization.NewFlow(tokenization.Config{
		Request: bankCard(),
		Params:  tokenization.Params{Amount: domain.MustAmount("10.00", domain.CurrencyRUB)},
	}, tokenization.Dependencies{})
	require.NoError(t, err)
	return flow
}

func TestRegistry(t *testing.T) {
	t.Run("add get remove", func(t *testing.T) {
		registry := checkout.NewRegistry()
		flow := idleFlow(t)

		registry.Add(flow)
		got, ok := registry.Get(flow.ID())
		require.True(t, ok)
		assert.Same(t, flow, got)

		registry.Remove(flow.ID())
		_, ok = registry.Get(flow.ID())
		assert.False(t, ok)
	})

	t.Run("reap abandons stale unfinished flows", func(t *testing.T) {
		stale := idleFlow(t)
		time.Sleep(5 * time.Millisecond)
		cutoff := time.Now()
		fresh := idleFlow(t)

		registry := checkout.NewRegistryWithClock(func() time.Time { return cutoff.Add(30 * time.Minute) })
		registry.Add(stale)
		registry.Add(fresh)

		abandoned := registry.Reap(30 * time.Minute)

		assert.Equal(t, 1, abandoned)
		assert.Equal(t, tokenization.StateFailed, stale.State())
		assert.ErrorIs(t, stale.Err(), domain.ErrInterrupted)
		assert.Equal(t, tokenization.StateIdle, fresh.State())
		_, ok := registry.Get(stale.ID())
		assert.False(t, ok)
		assert.Equal(t, 1, registry.Len())
	})

	t.Run("reap forgets finished flows without counting them", func(t *testing.T) {
		now := time.Now()
		registry := checkout.NewRegistryWithClock(func() time.Time { return now })

		fp := mocks.NewMockFingerprintProvider(t)
		fp.EXPECT().Profile(mock.Anything).Return("", nil).Maybe()
		flow, err := tokenization.NewFlow(tokenization.Config{
			Request: domain.ApplePayRequest{},
			Params:  tokenization.Params{Amount: domain.MustAmount("10.00", domain.CurrencyRUB)},
		}, tokenization.Dependencies{Fingerprint: fp})
		require.NoError(t, err)
		require.NoError(t, flow.Start(context.Background()))
		<-flow.Done()
		registry.Add(flow)

		now = now.Add(time.Hour)

		assert.Zero(t, registry.Reap(time.Minute))
		assert.Zero(t, registry.Len())
	})
}
