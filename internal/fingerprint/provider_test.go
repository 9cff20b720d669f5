package fingerprint_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DanielPopoola/checkout-tokenization/internal/config"
	"github.com/DanielPopoola/checkout-tokenization/internal/fingerprint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfiler struct {
	mu    sync.Mutex
	calls int32

	ConfigureFn func(ctx context.Context, orgID string) error
	ProfileFn   func(ctx context.Context, call int32) (fingerprint.Result, error)
}

func (f *fakeProfiler) Configure(ctx context.Context, orgID string) error {
	if f.ConfigureFn != nil {
		return f.ConfigureFn(ctx, orgID)
	}
	return nil
}

func (f *fakeProfiler) Profile(ctx context.Context, _ string) (fingerprint.Result, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()
	return f.ProfileFn(ctx, n)
}

func (f *fakeProfiler) Calls() int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newProvider(t *testing.T, profiler fingerprint.Profiler) *fingerprint.Provider {
	t.Helper()
	p := fingerprint.NewProvider(profiler, config.FingerprintConfig{
		OrgID:        "org-1",
		MaxPolls:     3,
		PollInterval: time.Millisecond,
		Timeout:      time.Second,
	}, testLogger())
	require.NoError(t, p.Configure(context.Background()))
	return p
}

func ok(sessionID string) fingerprint.Result {
	return fingerprint.Result{Status: fingerprint.StatusOK, SessionID: sessionID}
}

func TestProvider_Configure(t *testing.T) {
	t.Run("profile fails fast when not configured", func(t *testing.T) {
		profiler := &fakeProfiler{}
		p := fingerprint.NewProvider(profiler, config.FingerprintConfig{OrgID: "org-1"}, testLogger())

		_, err := p.Profile(context.Background())

		assert.ErrorIs(t, err, fingerprint.ErrInvalidConfiguration)
		assert.Zero(t, profiler.Calls())
	})

	t.Run("configure is idempotent", func(t *testing.T) {
		var configured atomic.Int32
		profiler := &fakeProfiler{
			ConfigureFn: func(_ context.Context, orgID string) error {
				assert.Equal(t, "org-1", orgID)
				configured.Add(1)
				return nil
			},
		}
		p := fingerprint.NewProvider(profiler, config.FingerprintConfig{OrgID: "org-1"}, testLogger())

		require.NoError(t, p.Configure(context.Background()))
		require.NoError(t, p.Configure(context.Background()))

		assert.Equal(t, int32(1), configured.Load())
	})

	t.Run("failed configure leaves provider unconfigured", func(t *testing.T) {
		profiler := &fakeProfiler{
			ConfigureFn: func(context.Context, string) error { return errors.New("bad org") },
		}
		p := fingerprint.NewProvider(profiler, config.FingerprintConfig{OrgID: "org-1"}, testLogger())

		err := p.Configure(context.Background())
		assert.ErrorIs(t, err, fingerprint.ErrInvalidConfiguration)

		_, err = p.Profile(context.Background())
		assert.ErrorIs(t, err, fingerprint.ErrInvalidConfiguration)
	})

	t.Run("missing org id", func(t *testing.T) {
		p := fingerprint.NewProvider(&fakeProfiler{}, config.FingerprintConfig{}, testLogger())

		assert.ErrorIs(t, p.Configure(context.Background()), fingerprint.ErrInvalidConfiguration)
	})
}

func TestProvider_Profile(t *testing.T) {
	t.Run("returns session id", func(t *testing.T) {
		p := newProvider(t, &fakeProfiler{
			ProfileFn: func(context.Context, int32) (fingerprint.Result, error) { return ok("sid-1"), nil },
		})

		sid, err := p.Profile(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "sid-1", sid)
	})

	t.Run("re-polls while profile is not ready", func(t *testing.T) {
		profiler := &fakeProfiler{
			ProfileFn: func(_ context.Context, call int32) (fingerprint.Result, error) {
				if call < 3 {
					return fingerprint.Result{Status: fingerprint.StatusNotYet}, nil
				}
				return ok("sid-3"), nil
			},
		}
		p := newProvider(t, profiler)

		sid, err := p.Profile(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "sid-3", sid)
		assert.Equal(t, int32(3), profiler.Calls())
	})

	t.Run("gives up after max polls", func(t *testing.T) {
		profiler := &fakeProfiler{
			ProfileFn: func(context.Context, int32) (fingerprint.Result, error) {
				return fingerprint.Result{Status: fingerprint.StatusNotYet}, nil
			},
		}
		p := newProvider(t, profiler)

		_, err := p.Profile(context.Background())

		assert.ErrorIs(t, err, fingerprint.ErrInternal)
		assert.Equal(t, int32(3), profiler.Calls())
	})

	statusCases := []struct {
		status fingerprint.Status
		want   error
	}{
		{fingerprint.StatusConnectionError, fingerprint.ErrConnectionFail},
		{fingerprint.StatusHostNotFound, fingerprint.ErrConnectionFail},
		{fingerprint.StatusNetworkTimeout, fingerprint.ErrConnectionFail},
		{fingerprint.StatusPartialProfile, fingerprint.ErrConnectionFail},
		{fingerprint.StatusInternalError, fingerprint.ErrInternal},
		{fingerprint.StatusInvalidOrgID, fingerprint.ErrInternal},
		{fingerprint.StatusCertificateMismatch, fingerprint.ErrInternal},
	}
	for _, tc := range statusCases {
		t.Run("maps status "+string(tc.status), func(t *testing.T) {
			p := newProvider(t, &fakeProfiler{
				ProfileFn: func(context.Context, int32) (fingerprint.Result, error) {
					return fingerprint.Result{Status: tc.status}, nil
				},
			})

			_, err := p.Profile(context.Background())

			assert.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("network error maps to connection failure", func(t *testing.T) {
		p := newProvider(t, &fakeProfiler{
			ProfileFn: func(context.Context, int32) (fingerprint.Result, error) {
				return fingerprint.Result{}, &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
			},
		})

		_, err := p.Profile(context.Background())

		assert.ErrorIs(t, err, fingerprint.ErrConnectionFail)
	})
}

func TestProvider_SingleFlight(t *testing.T) {
	t.Run("second call interrupts the first", func(t *testing.T) {
		started := make(chan struct{})
		p := newProvider(t, &fakeProfiler{
			ProfileFn: func(ctx context.Context, call int32) (fingerprint.Result, error) {
				if call == 1 {
					close(started)
					<-ctx.Done()
					return fingerprint.Result{}, ctx.Err()
				}
				return ok("sid-2"), nil
			},
		})

		firstErr := make(chan error, 1)
		go func() {
			_, err := p.Profile(context.Background())
			firstErr <- err
		}()
		<-started

		sid, err := p.Profile(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "sid-2", sid)
		assert.ErrorIs(t, <-firstErr, fingerprint.ErrInterrupted)
	})

	t.Run("late success of a superseded call is discarded", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		p := newProvider(t, &fakeProfiler{
			ProfileFn: func(_ context.Context, call int32) (fingerprint.Result, error) {
				if call == 1 {
					close(started)
					<-release
					return ok("sid-stale"), nil
				}
				return ok("sid-2"), nil
			},
		})

		firstResult := make(chan error, 1)
		go func() {
			sid, err := p.Profile(context.Background())
			assert.Empty(t, sid)
			firstResult <- err
		}()
		<-started

		sid, err := p.Profile(context.Background())
		close(release)

		require.NoError(t, err)
		assert.Equal(t, "sid-2", sid)
		assert.ErrorIs(t, <-firstResult, fingerprint.ErrInterrupted)
	})

	t.Run("cancel resolves the pending call", func(t *testing.T) {
		started := make(chan struct{})
		p := newProvider(t, &fakeProfiler{
			ProfileFn: func(ctx context.Context, _ int32) (fingerprint.Result, error) {
				close(started)
				<-ctx.Done()
				return fingerprint.Result{}, ctx.Err()
			},
		})

		result := make(chan error, 1)
		go func() {
			_, err := p.Profile(context.Background())
			result <- err
		}()
		<-started

		p.Cancel()

		assert.ErrorIs(t, <-result, fingerprint.ErrInterrupted)
	})

	t.Run("shutdown unconfigures the provider", func(t *testing.T) {
		p := newProvider(t, &fakeProfiler{
			ProfileFn: func(context.Context, int32) (fingerprint.Result, error) { return ok("sid"), nil },
		})

		p.Shutdown()
		_, err := p.Profile(context.Background())

		assert.ErrorIs(t, err, fingerprint.ErrInvalidConfiguration)
	})
}
