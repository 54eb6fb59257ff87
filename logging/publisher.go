package logging

import (
	"context"
	"time"
)

type EventType string

type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

// EntityKind identifies what a generation event is about.
type EntityKind string

const (
	EntityKindUnknown EntityKind = "unknown"
	EntityKindWorld   EntityKind = "world"
	EntityKindGrid    EntityKind = "grid"
	EntityKindCell    EntityKind = "cell"
	EntityKindCatalog EntityKind = "catalog"
)

// EntityRef names the subject of an event, e.g. {ID: "strategic", Kind: grid}.
type EntityRef struct {
	ID   string     `json:"id"`
	Kind EntityKind `json:"kind"`
}

// Event is one structured record routed to the configured sinks.
type Event struct {
	Type     EventType      `json:"type"`
	Time     time.Time      `json:"time"`
	Subject  EntityRef      `json:"subject"`
	Seed     string         `json:"seed,omitempty"`
	Severity Severity       `json:"severity"`
	Category string         `json:"category,omitempty"`
	Payload  any            `json:"payload,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

const (
	CategoryGeneration = "generation"
	CategoryCatalog    = "catalog"
	CategorySystem     = "system"
)

type Publisher interface {
	Publish(ctx context.Context, event Event)
}

type PublisherFunc func(ctx context.Context, event Event)

func (f PublisherFunc) Publish(ctx context.Context, event Event) {
	if f == nil {
		return
	}
	f(ctx, event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) {}

func NopPublisher() Publisher {
	return nopPublisher{}
}

// WithFields returns a publisher that stamps the fields into every event's
// Extra map without overwriting values already present.
func WithFields(p Publisher, fields map[string]any) Publisher {
	if p == nil {
		return NopPublisher()
	}
	if len(fields) == 0 {
		return p
	}
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return PublisherFunc(func(ctx context.Context, event Event) {
		event = cloneForFields(event)
		if event.Extra == nil {
			event.Extra = make(map[string]any, len(copied))
		}
		for k, v := range copied {
			if _, exists := event.Extra[k]; !exists {
				event.Extra[k] = v
			}
		}
		p.Publish(ctx, event)
	})
}

func cloneForFields(event Event) Event {
	cloned := event
	if event.Extra != nil {
		copied := make(map[string]any, len(event.Extra))
		for k, v := range event.Extra {
			copied[k] = v
		}
		cloned.Extra = copied
	}
	return cloned
}
