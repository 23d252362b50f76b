package audit

import (
	"github.com/tms/backend/internal/domain/shared"
)

// EventTypeEntryRecorded identifies a queued audit entry riding the outbox
// when the primary audit sink is unavailable
const EventTypeEntryRecorded = "audit.entry_recorded"

// AggregateTypeEntry identifies the audit entry in outbox records
const AggregateTypeEntry = "audit_entry"

// EntryRecordedEvent wraps an audit entry for durable outbox delivery. The
// payload is the serialized entry itself; the outbox processor replays it
// into the audit repository.
type EntryRecordedEvent struct {
	shared.BaseDomainEvent
	Entry *Entry `json:"entry"`
}

// NewEntryRecordedEvent creates a new EntryRecordedEvent
func NewEntryRecordedEvent(entry *Entry) *EntryRecordedEvent {
	return &EntryRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEntryRecorded, AggregateTypeEntry, entry.ID, entry.TenantID),
		Entry:           entry,
	}
}
