package fingerprint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DanielPopoola/checkout-tokenization/internal/config"
	"github.com/google/uuid"
)

// Provider wraps a Profiler with configure-once and single-flight semantics.
// At most one profiling call is in flight; a newer call interrupts the older.
type Provider struct {
	profiler Profiler
	cfg      config.FingerprintConfig
	logger   *slog.Logger

	mu         sync.Mutex
	configured bool
	inflight   *call
}

type call struct {
	cancel      context.CancelFunc
	interrupted atomic.Bool
}

func (c *call) interrupt() {
	c.interrupted.Store(true)
	c.cancel()
}

func NewProvider(profiler Profiler, cfg config.FingerprintConfig, logger *slog.Logger) *Provider {
	if cfg.MaxPolls <= 0 {
		cfg.MaxPolls = 1
	}
	return &Provider{
		profiler: profiler,
		cfg:      cfg,
		logger:   logger,
	}
}

// Configure is idempotent. On failure the provider stays unconfigured and
// every Profile call fails with ErrInvalidConfiguration.
func (p *Provider) Configure(ctx context.Context) error {
	p.mu.Lock()
	configured := p.configured
	p.mu.Unlock()
	if configured {
		return nil
	}

	if p.cfg.OrgID == "" {
		p.logger.Warn("fingerprint org id is empty, provider left unconfigured")
		return ErrInvalidConfiguration
	}

	if err := p.profiler.Configure(ctx, p.cfg.OrgID); err != nil {
		p.logger.Error("failed to configure fingerprint profiler", "error", err)
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	p.mu.Lock()
	p.configured = true
	p.mu.Unlock()

	p.logger.Info("fingerprint provider configured")
	return nil
}

// Profile returns a fresh profiling session id.
func (p *Provider) Profile(ctx context.Context) (string, error) {
	p.mu.Lock()
	if !p.configured {
		p.mu.Unlock()
		return "", ErrInvalidConfiguration
	}
	if p.inflight != nil {
		p.logger.Debug("superseding in-flight profiling call")
		p.inflight.interrupt()
	}

	var (
		callCtx context.Context
		cancel  context.CancelFunc
	)
	if p.cfg.Timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
	} else {
		callCtx, cancel = context.WithCancel(ctx)
	}
	c := &call{cancel: cancel}
	p.inflight = c
	p.mu.Unlock()

	defer p.release(c)

	sessionID, err := p.run(callCtx)
	if c.interrupted.Load() {
		return "", ErrInterrupted
	}
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// Cancel resolves the pending Profile call, if any, with ErrInterrupted.
func (p *Provider) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.inflight != nil {
		p.inflight.interrupt()
		p.inflight = nil
	}
}

// Shutdown cancels the pending call and returns the provider to the
// unconfigured state.
func (p *Provider) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.inflight != nil {
		p.inflight.interrupt()
		p.inflight = nil
	}
	p.configured = false
}

func (p *Provider) release(c *call) {
	p.mu.Lock()
	if p.inflight == c {
		p.inflight = nil
	}
	p.mu.Unlock()
	c.cancel()
}

func (p *Provider) run(ctx context.Context) (string, error) {
	requestID := uuid.NewString()

	for poll := 1; ; poll++ {
		res, err := p.profiler.Profile(ctx, requestID)
		if err != nil {
			return "", classifyTransportError(ctx, err)
		}

		switch {
		case res.Status == StatusOK:
			if res.SessionID == "" {
				return "", fmt.Errorf("%w: empty session id", ErrInternal)
			}
			return res.SessionID, nil
		case res.Status == StatusNotYet:
			if poll >= p.cfg.MaxPolls {
				return "", fmt.Errorf("%w: profile not ready after %d polls", ErrInternal, poll)
			}
		case res.Status.transport():
			return "", fmt.Errorf("%w: %s", ErrConnectionFail, res.Status)
		default:
			return "", fmt.Errorf("%w: %s", ErrInternal, res.Status)
		}

		select {
		case <-ctx.Done():
			return "", classifyTransportError(ctx, ctx.Err())
		case <-time.After(p.cfg.PollInterval):
		}
	}
}

func classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return ErrInterrupted
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrConnectionFail, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrConnectionFail, err)
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}
