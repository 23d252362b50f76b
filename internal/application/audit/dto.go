package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/tms/backend/internal/domain/audit"
)

// TrailListFilter represents filter options for audit trail listing
type TrailListFilter struct {
	Action    string     `form:"action"`
	ActorUID  string     `form:"actor_uid"`
	StartDate *time.Time `form:"start_date"`
	EndDate   *time.Time `form:"end_date"`
	Page      int        `form:"page" binding:"min=0"`
	PageSize  int        `form:"page_size" binding:"min=0,max=100"`
}

// EntryResponse represents an audit entry in API responses
type EntryResponse struct {
	ID         uuid.UUID      `json:"id"`
	TenantID   uuid.UUID      `json:"tenant_id"`
	ActorUID   string         `json:"actor_uid"`
	ActorRole  string         `json:"actor_role"`
	EntityType string         `json:"entity_type"`
	EntityID   uuid.UUID      `json:"entity_id"`
	Action     string         `json:"action"`
	Before     map[string]any `json:"before,omitempty"`
	After      map[string]any `json:"after,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

// ToEntryResponse converts a domain audit entry to its response form
func ToEntryResponse(e *audit.Entry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		TenantID:   e.TenantID,
		ActorUID:   e.ActorUID,
		ActorRole:  e.ActorRole,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Action:     e.Action.String(),
		Before:     e.GetBefore(),
		After:      e.GetAfter(),
		Reason:     e.Reason,
		Timestamp:  e.GetTimestamp(),
	}
}

// ToEntryResponses converts a slice of domain audit entries
func ToEntryResponses(entries []audit.Entry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
