package fleet

import (
	"context"

	"github.com/google/uuid"

	"github.com/tms/backend/internal/domain/shared"
)

// DriverRepository defines the persistence interface for drivers
type DriverRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Driver, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Driver, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Driver, error)
	FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]Driver, error)
	Save(ctx context.Context, driver *Driver) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// DispatcherRepository defines the persistence interface for dispatchers
type DispatcherRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Dispatcher, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Dispatcher, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Dispatcher, error)
	Save(ctx context.Context, dispatcher *Dispatcher) error
	Delete(ctx context.Context, id uuid.UUID) error
}
