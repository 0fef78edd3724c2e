package events

import (
	"notevault-be/internal/dto"
)

// NewLifecycleEvent wraps a lifecycle transition message for the event bus.
func NewLifecycleEvent(msg dto.LifecycleEventMessage) Event {
	return BaseEvent{
		Type: msg.EventType,
		Data: map[string]interface{}{
			"entity_kind": msg.EntityKind,
			"entity_id":   msg.EntityId,
			"user_id":     msg.UserId,
			"title":       msg.Title,
		},
		OccurredAt: msg.OccurredAt,
	}
}
