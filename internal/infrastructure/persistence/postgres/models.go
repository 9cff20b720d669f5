package postgres

import (
	"time"

	"github.com/DanielPopoola/checkout-tokenization/internal/analytics"
	"github.com/google/uuid"
)

// EventModel is one analytics_events row. Empty tags are stored as NULL.
type EventModel struct {
	ID         uuid.UUID
	Name       string
	FlowID     *string
	Scheme     *string
	AuthType   *string
	TokenType  *string
	ErrorKind  *string
	OccurredAt time.Time
}

func toEventModel(e analytics.Event) EventModel {
	return EventModel{
		ID:         e.ID,
		Name:       string(e.Name),
		FlowID:     nullable(e.FlowID),
		Scheme:     nullable(string(e.Scheme)),
		AuthType:   nullable(string(e.AuthType)),
		TokenType:  nullable(string(e.TokenType)),
		ErrorKind:  nullable(e.ErrorKind),
		OccurredAt: e.OccurredAt,
	}
}

func (m EventModel) toEvent() analytics.Event {
	return analytics.Event{
		ID:         m.ID,
		Name:       analytics.Name(m.Name),
		FlowID:     deref(m.FlowID),
		Scheme:     analytics.Scheme(deref(m.Scheme)),
		AuthType:   analytics.AuthType(deref(m.AuthType)),
		TokenType:  analytics.TokenType(deref(m.TokenType)),
		ErrorKind:  deref(m.ErrorKind),
		OccurredAt: m.OccurredAt,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
