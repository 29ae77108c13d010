package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Degradation kinds.
const (
	// KindModifiedFallback is emitted when a modified timestamp could not be
	// parsed and the current time was stored instead.
	KindModifiedFallback = "modified_fallback"

	// KindThumbnailFallback is emitted when a thumbnail could not be cached
	// and the record was stored with a null thumbnail.
	KindThumbnailFallback = "thumbnail_fallback"

	// KindRecordSkipped is emitted when an upstream record could not be mapped.
	KindRecordSkipped = "record_skipped"
)

// DegradationEvent describes a lossy default substituted for a failed step.
type DegradationEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Kind is one of the Kind* constants
	Kind string `json:"kind"`

	// Entity is the entity kind involved ("character" or "comic"), if known
	Entity string `json:"entity,omitempty"`

	// EntityID is the id of the record being mapped or stored, if known
	EntityID string `json:"entity_id,omitempty"`

	// Input is the value that could not be used
	Input string `json:"input"`

	// Reason is the text of the underlying error
	Reason string `json:"reason"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewDegradationEvent creates a DegradationEvent for the given kind and cause.
func NewDegradationEvent(kind, entity, entityID, input string, cause error) *DegradationEvent {
	reason := ""
	if cause != nil {
		reason = cause.Error()
	}
	return &DegradationEvent{
		ID:        uuid.New(),
		Kind:      kind,
		Entity:    entity,
		EntityID:  entityID,
		Input:     input,
		Reason:    reason,
		CreatedAt: time.Now(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *DegradationEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows components to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *DegradationEvent) error
}
