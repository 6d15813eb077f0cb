package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventParse         EventType = "parse"
	EventDifferentiate EventType = "differentiate"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ParseEvent is emitted after every parse attempt.
type ParseEvent struct {
	EventBase
	Expression string `json:"expression"`
	Terms      int    `json:"terms"`
	ErrorKind  string `json:"error_kind,omitempty"` // empty on success
}

// DifferentiateEvent is emitted after a derivative is produced.
type DifferentiateEvent struct {
	EventBase
	InputTerms  int  `json:"input_terms"`
	OutputTerms int  `json:"output_terms"`
	Cached      bool `json:"cached,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnParse         func(context.Context, *ParseEvent)
	OnDifferentiate func(context.Context, *DifferentiateEvent)
}
