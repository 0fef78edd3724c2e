package dto

import (
	"time"

	"github.com/google/uuid"
)

// LifecycleEventMessage is the payload carried on the in-process bus for
// every lifecycle transition, and mirrored to NATS for other consumers.
type LifecycleEventMessage struct {
	EventType  string    `json:"event_type"` // e.g. NOTEBOOK_TRASHED
	EntityKind string    `json:"entity_kind"` // "notebook" | "note"
	EntityId   uuid.UUID `json:"entity_id"`
	UserId     uuid.UUID `json:"user_id"`
	Title      string    `json:"title"`
	OccurredAt time.Time `json:"occurred_at"`
}
