package event

import (
	"github.com/tms/backend/internal/domain/audit"
	"github.com/tms/backend/internal/domain/dispatch"
)

// RegisterEventTypes registers every domain event type with the serializer so
// outbox entries can be deserialized back into typed events. An unregistered
// type dead-letters after max retries, so new events must be added here.
func RegisterEventTypes(serializer *EventSerializer) {
	serializer.Register(dispatch.EventTypeLoadCreated, &dispatch.LoadCreatedEvent{})
	serializer.Register(dispatch.EventTypeLoadStatusChanged, &dispatch.LoadStatusChangedEvent{})
	serializer.Register(dispatch.EventTypeLoadAdjusted, &dispatch.LoadAdjustedEvent{})
	serializer.Register(audit.EventTypeEntryRecorded, &audit.EntryRecordedEvent{})
}
