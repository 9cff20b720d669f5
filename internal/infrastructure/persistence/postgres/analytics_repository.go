package postgres

import (
	"context"
	"fmt"

	"github.com/DanielPopoola/checkout-tokenization/internal/analytics"
)

// AnalyticsRepository persists analytics events. It is an analytics.Recorder.
type AnalyticsRepository struct {
	db *DB
}

var _ analytics.Recorder = (*AnalyticsRepository)(nil)

func NewAnalyticsRepository(db *DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// Record inserts the event. A redelivered event is ignored.
func (r *AnalyticsRepository) Record(ctx context.Context, event analytics.Event) error {
	query := `
		INSERT INTO analytics_events (
			id, name, flow_id, scheme, auth_type, token_type, error_kind, occurred_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	m := toEventModel(event)
	_, err := r.db.Pool.Exec(ctx, query,
		m.ID,
		m.Name,
		m.FlowID,
		m.Scheme,
		m.AuthType,
		m.TokenType,
		m.ErrorKind,
		m.OccurredAt,
	)
	if IsUniqueViolation(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("insert analytics event: %w", err)
	}
	return nil
}

// ListByFlow returns a flow's events in the order they happened.
func (r *AnalyticsRepository) ListByFlow(ctx context.Context, flowID string) ([]analytics.Event, error) {
	query := `
		SELECT id, name, flow_id, scheme, auth_type, token_type, error_kind, occurred_at
		FROM analytics_events
		WHERE flow_id = $1
		ORDER BY occurred_at, recorded_at
	`

	rows, err := r.db.Pool.Query(ctx, query, flowID)
	if err != nil {
		return nil, fmt.Errorf("query analytics events: %w", err)
	}
	defer rows.Close()

	var events []analytics.Event
	for rows.Next() {
		var m EventModel
		if err := rows.Scan(&m.ID, &m.Name, &m.FlowID, &m.Scheme, &m.AuthType, &m.TokenType, &m.ErrorKind, &m.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan analytics event: %w", err)
		}
		events = append(events, m.toEvent())
	}
	return events, rows.Err()
}
