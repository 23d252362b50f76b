package dispatch

import (
	"github.com/tms/backend/internal/domain/shared"
)

// Event types for the load aggregate
const (
	EventTypeLoadCreated       = "load.created"
	EventTypeLoadStatusChanged = "load.status_changed"
	EventTypeLoadAdjusted      = "load.adjusted"
)

// AggregateTypeLoad identifies the load aggregate in events and audit records
const AggregateTypeLoad = "load"

// LoadCreatedEvent is raised when a load is created
type LoadCreatedEvent struct {
	shared.BaseDomainEvent
	LoadNumber string `json:"load_number"`
}

// NewLoadCreatedEvent creates a new LoadCreatedEvent
func NewLoadCreatedEvent(load *Load) *LoadCreatedEvent {
	return &LoadCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLoadCreated, AggregateTypeLoad, load.ID, load.TenantID),
		LoadNumber:      load.LoadNumber,
	}
}

// LoadStatusChangedEvent is raised when a load moves through the dispatch flow
type LoadStatusChangedEvent struct {
	shared.BaseDomainEvent
	LoadNumber string     `json:"load_number"`
	From       LoadStatus `json:"from"`
	To         LoadStatus `json:"to"`
}

// NewLoadStatusChangedEvent creates a new LoadStatusChangedEvent
func NewLoadStatusChangedEvent(load *Load, from, to LoadStatus) *LoadStatusChangedEvent {
	return &LoadStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLoadStatusChanged, AggregateTypeLoad, load.ID, load.TenantID),
		LoadNumber:      load.LoadNumber,
		From:            from,
		To:              to,
	}
}

// LoadAdjustedEvent is raised when a material change is applied to a locked load
type LoadAdjustedEvent struct {
	shared.BaseDomainEvent
	LoadNumber    string   `json:"load_number"`
	ChangedFields []string `json:"changed_fields"`
	Reason        string   `json:"reason"`
}

// NewLoadAdjustedEvent creates a new LoadAdjustedEvent
func NewLoadAdjustedEvent(load *Load, changedFields []string, reason string) *LoadAdjustedEvent {
	return &LoadAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLoadAdjusted, AggregateTypeLoad, load.ID, load.TenantID),
		LoadNumber:      load.LoadNumber,
		ChangedFields:   changedFields,
		Reason:          reason,
	}
}
