package audit

import (
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/tms/backend/internal/domain/shared"
)

// Action represents the kind of change an audit entry records
type Action string

const (
	ActionCreate       Action = "CREATE"
	ActionUpdate       Action = "UPDATE"
	ActionDelete       Action = "DELETE"
	ActionStatusChange Action = "STATUS_CHANGE"
	// ActionAdjustment marks a material change applied to a locked load.
	// These entries always carry a reason.
	ActionAdjustment Action = "ADJUSTMENT"
)

// IsValid checks if the action is a valid Action
func (a Action) IsValid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionStatusChange, ActionAdjustment:
		return true
	}
	return false
}

// String returns the string representation of Action
func (a Action) String() string {
	return string(a)
}

// Entry is an immutable audit record. It captures who changed what, when,
// the before/after field values, and the justification when one was required.
type Entry struct {
	shared.BaseEntity
	TenantID   uuid.UUID      `json:"tenant_id"`
	ActorUID   string         `json:"actor_uid"`
	ActorRole  string         `json:"actor_role"`
	EntityType string         `json:"entity_type"`
	EntityID   uuid.UUID      `json:"entity_id"`
	Action     Action         `json:"action"`
	Before     map[string]any `json:"before,omitempty"`
	After      map[string]any `json:"after,omitempty"`
	Reason     string         `json:"reason,omitempty"`
}

// NewEntry creates a new audit entry
func NewEntry(tenantID uuid.UUID, actorUID, actorRole, entityType string, entityID uuid.UUID, action Action, before, after map[string]any, reason string) (*Entry, error) {
	if entityType == "" {
		return nil, shared.NewDomainError("INVALID_ENTITY_TYPE", "Entity type cannot be empty")
	}
	if entityID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ENTITY_ID", "Entity ID cannot be empty")
	}
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTION", "Invalid audit action")
	}
	if action == ActionAdjustment && reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Adjustment entries require a reason")
	}

	return &Entry{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		ActorUID:   actorUID,
		ActorRole:  actorRole,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Before:     before,
		After:      after,
		Reason:     reason,
	}, nil
}

// GetBefore returns a copy of the before snapshot
func (e *Entry) GetBefore() map[string]any {
	if e.Before == nil {
		return make(map[string]any)
	}
	result := make(map[string]any, len(e.Before))
	maps.Copy(result, e.Before)
	return result
}

// GetAfter returns a copy of the after snapshot
func (e *Entry) GetAfter() map[string]any {
	if e.After == nil {
		return make(map[string]any)
	}
	result := make(map[string]any, len(e.After))
	maps.Copy(result, e.After)
	return result
}

// GetTimestamp returns when the audit entry was recorded
func (e *Entry) GetTimestamp() time.Time {
	return e.CreatedAt
}
