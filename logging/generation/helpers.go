package generation

import (
	"context"
	"time"

	"second-earth/server/logging"
)

const (
	// EventStarted is emitted when terrain generation begins for a grid.
	EventStarted logging.EventType = "generation.started"
	// EventCompleted is emitted once a grid is fully generated.
	EventCompleted logging.EventType = "generation.completed"
	// EventCatalogLoaded is emitted after startup configuration resolves.
	EventCatalogLoaded logging.EventType = "generation.catalog_loaded"
	// EventCatalogWarning is emitted for each non-fatal catalog finding.
	EventCatalogWarning logging.EventType = "generation.catalog_warning"
	// EventLoadRecovered is emitted when a save cell fails validation.
	EventLoadRecovered logging.EventType = "generation.load_recovered"
)

// StartedPayload captures the dimensions the generator was asked to fill.
type StartedPayload struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Worms  int `json:"worms"`
}

// CompletedPayload summarises the finished generation run.
type CompletedPayload struct {
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Worms     int           `json:"worms"`
	Duration  time.Duration `json:"duration"`
	Consensus int           `json:"consensusCells"`
	Fallback  int           `json:"fallbackCells"`
	Features  int           `json:"features"`
	Resources int           `json:"resourceCells"`
}

// CatalogLoadedPayload reports the resolved catalog sizes.
type CatalogLoadedPayload struct {
	Terrains int `json:"terrains"`
	Features int `json:"features"`
	Warnings int `json:"warnings"`
}

// LoadRecoveredPayload identifies a save cell that referenced an unknown name.
type LoadRecoveredPayload struct {
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Field      string `json:"field"`
	Name       string `json:"name"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Started publishes a generation start event.
func Started(ctx context.Context, pub logging.Publisher, subject logging.EntityRef, seed string, payload StartedPayload) {
	publish(ctx, pub, EventStarted, subject, seed, logging.SeverityInfo, payload)
}

// Completed publishes a generation completion event.
func Completed(ctx context.Context, pub logging.Publisher, subject logging.EntityRef, seed string, payload CompletedPayload) {
	publish(ctx, pub, EventCompleted, subject, seed, logging.SeverityInfo, payload)
}

// CatalogLoaded publishes a catalog resolution event.
func CatalogLoaded(ctx context.Context, pub logging.Publisher, payload CatalogLoadedPayload) {
	subject := logging.EntityRef{Kind: logging.EntityKindCatalog}
	publish(ctx, pub, EventCatalogLoaded, subject, "", logging.SeverityInfo, payload)
}

// CatalogWarning publishes one non-fatal catalog finding.
func CatalogWarning(ctx context.Context, pub logging.Publisher, warning string) {
	subject := logging.EntityRef{Kind: logging.EntityKindCatalog}
	publish(ctx, pub, EventCatalogWarning, subject, "", logging.SeverityWarn, warning)
}

// LoadRecovered publishes a recoverable save-load finding.
func LoadRecovered(ctx context.Context, pub logging.Publisher, subject logging.EntityRef, payload LoadRecoveredPayload) {
	publish(ctx, pub, EventLoadRecovered, subject, "", logging.SeverityWarn, payload)
}

func publish(ctx context.Context, pub logging.Publisher, eventType logging.EventType, subject logging.EntityRef, seed string, severity logging.Severity, payload any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     eventType,
		Subject:  subject,
		Seed:     seed,
		Severity: severity,
		Category: logging.CategoryGeneration,
		Payload:  payload,
	})
}
