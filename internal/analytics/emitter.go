package analytics

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Recorder persists or exports events.
type Recorder interface {
	Record(ctx context.Context, event Event) error
}

// Emitter buffers events and hands them to a Recorder on a single goroutine.
// Track never blocks; events are dropped when the buffer is full.
type Emitter struct {
	events   chan Event
	recorder Recorder
	logger   *slog.Logger
	dropped  atomic.Int64
}

func NewEmitter(recorder Recorder, bufferSize int, logger *slog.Logger) *Emitter {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Emitter{
		events:   make(chan Event, bufferSize),
		recorder: recorder,
		logger:   logger,
	}
}

func (e *Emitter) Track(event Event) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	select {
	case e.events <- event:
	default:
		e.dropped.Add(1)
		e.logger.Debug("analytics buffer full, event dropped", "event", event.Name)
	}
}

// Dropped reports how many events were discarded.
func (e *Emitter) Dropped() int64 {
	return e.dropped.Load()
}

// Run drains the buffer until ctx is done, then flushes what is left.
func (e *Emitter) Run(ctx context.Context) {
	e.logger.Info("analytics emitter started")

	for {
		select {
		case <-ctx.Done():
			e.flush()
			e.logger.Info("analytics emitter stopped", "dropped", e.Dropped())
			return
		case event := <-e.events:
			e.record(ctx, event)
		}
	}
}

func (e *Emitter) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for {
		select {
		case event := <-e.events:
			e.record(ctx, event)
		default:
			return
		}
	}
}

func (e *Emitter) record(ctx context.Context, event Event) {
	if err := e.recorder.Record(ctx, event); err != nil {
		e.logger.Warn("failed to record analytics event",
			"event", event.Name,
			"error", err,
		)
	}
}
