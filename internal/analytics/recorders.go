package analytics

import (
	"context"
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// LogRecorder writes events to the structured log.
type LogRecorder struct {
	logger *slog.Logger
}

func NewLogRecorder(logger *slog.Logger) *LogRecorder {
	return &LogRecorder{logger: logger}
}

func (r *LogRecorder) Record(ctx context.Context, event Event) error {
	r.logger.InfoContext(ctx, "analytics event",
		"event_id", event.ID,
		"event", event.Name,
		"flow_id", event.FlowID,
		"scheme", event.Scheme,
		"auth_type", event.AuthType,
		"token_type", event.TokenType,
		"error_kind", event.ErrorKind,
	)
	return nil
}

// PrometheusRecorder counts events by name and tags.
type PrometheusRecorder struct {
	events *prometheus.CounterVec
}

func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout",
		Name:      "events_total",
		Help:      "Tokenization analytics events by name, scheme, auth type and error kind.",
	}, []string{"name", "scheme", "auth_type", "error_kind"})

	if err := reg.Register(events); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, err
		}
		events = already.ExistingCollector.(*prometheus.CounterVec)
	}
	return &PrometheusRecorder{events: events}, nil
}

func (r *PrometheusRecorder) Record(_ context.Context, event Event) error {
	r.events.WithLabelValues(
		string(event.Name),
		string(event.Scheme),
		string(event.AuthType),
		event.ErrorKind,
	).Inc()
	return nil
}

// MultiRecorder fans an event out to every recorder.
type MultiRecorder []Recorder

func (m MultiRecorder) Record(ctx context.Context, event Event) error {
	var errs []error
	for _, r := range m {
		if err := r.Record(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
