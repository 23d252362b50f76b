package dispatch

import (
	"context"

	"github.com/google/uuid"

	"github.com/tms/backend/internal/domain/shared"
)

// LoadRepository defines the persistence interface for loads
type LoadRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Load, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Load, error)
	FindByLoadNumber(ctx context.Context, tenantID uuid.UUID, loadNumber string) (*Load, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Load, error)
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status LoadStatus, filter shared.Filter) ([]Load, error)
	FindByDriver(ctx context.Context, tenantID, driverID uuid.UUID, filter shared.Filter) ([]Load, error)
	Save(ctx context.Context, load *Load) error
	// SaveWithLock persists the load only if its version still matches the
	// stored record, returning shared.ErrConcurrencyConflict otherwise
	SaveWithLock(ctx context.Context, load *Load) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, tenantID uuid.UUID, status LoadStatus) (int64, error)
	// GenerateLoadNumber produces the next sequential load number for a tenant
	GenerateLoadNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}
