package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/tms/backend/internal/domain/shared"
)

// BrokerRepository defines the persistence interface for brokers
type BrokerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Broker, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Broker, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Broker, error)
	Save(ctx context.Context, broker *Broker) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FactoringCompanyRepository defines the persistence interface for factoring companies
type FactoringCompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*FactoringCompany, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*FactoringCompany, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]FactoringCompany, error)
	// FindDefaultForTenant returns the company flagged as the tenant default
	FindDefaultForTenant(ctx context.Context, tenantID uuid.UUID) (*FactoringCompany, error)
	Save(ctx context.Context, company *FactoringCompany) error
	Delete(ctx context.Context, id uuid.UUID) error
}
