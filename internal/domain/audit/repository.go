package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/tms/backend/internal/domain/shared"
)

// Repository defines the append-only persistence interface for audit entries.
// Entries are never updated or deleted once written.
type Repository interface {
	// Append persists an audit entry
	Append(ctx context.Context, entry *Entry) error
	// FindByEntity returns the audit trail for a single entity, newest first
	FindByEntity(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID, filter shared.Filter) ([]Entry, int64, error)
	// FindForTenant returns audit entries for a tenant, newest first
	FindForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Entry, int64, error)
}
