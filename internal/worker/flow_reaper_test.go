package worker_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/DanielPopoola/checkout-tokenization/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistry struct {
	mu    sync.Mutex
	flows int
	calls []time.Duration
}

func (f *fakeRegistry) Reap(olderThan time.Duration) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, olderThan)
	f.flows = 0
	return 1
}

func (f *fakeRegistry) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flows
}

func (f *fakeRegistry) reapCalls() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration(nil), f.calls...)
}

func TestFlowReaper(t *testing.T) {
	registry := &fakeRegistry{flows: 3}
	reaper := worker.NewFlowReaper(registry, 15*time.Minute, 5*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reaper.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return len(registry.reapCalls()) >= 2 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop after cancel")
	}

	assert.Equal(t, 15*time.Minute, registry.reapCalls()[0])
	assert.Zero(t, registry.Len())
}
