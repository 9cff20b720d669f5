package worker

import (
	"context"
	"log/slog"
	"time"
)

// Reaper is the part of the flow registry the reaper drives.
type Reaper interface {
	Reap(olderThan time.Duration) int
	Len() int
}

// FlowReaper periodically abandons tokenization flows that outlived their TTL.
type FlowReaper struct {
	registry Reaper
	ttl      time.Duration
	interval time.Duration
	logger   *slog.Logger
}

func NewFlowReaper(registry Reaper, ttl, interval time.Duration, logger *slog.Logger) *FlowReaper {
	return &FlowReaper{
		registry: registry,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
	}
}

func (w *FlowReaper) Start(ctx context.Context) {
	w.logger.Info("flow reaper started", "interval", w.interval, "ttl", w.ttl)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("flow reaper stopping")
			return
		case <-ticker.C:
			w.reap()
		}
	}
}

func (w *FlowReaper) reap() {
	before := w.registry.Len()
	abandoned := w.registry.Reap(w.ttl)
	removed := before - w.registry.Len()
	if removed == 0 {
		return
	}

	w.logger.Info("reaped tokenization flows",
		"removed", removed,
		"abandoned", abandoned,
	)
}
