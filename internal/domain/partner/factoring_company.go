package partner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tms/backend/internal/domain/shared"
)

// FactoringCompany represents a company that buys a load's receivable for
// immediate discounted payment. FeePercentage is the default fee basis unless
// a load carries an explicit override.
type FactoringCompany struct {
	shared.TenantAggregateRoot
	Name          string
	FeePercentage decimal.Decimal // 0-100
	ContactName   string
	ContactPhone  string
	ContactEmail  string
	IsDefault     bool
}

// NewFactoringCompany creates a new factoring company
func NewFactoringCompany(tenantID uuid.UUID, name string, feePercentage decimal.Decimal) (*FactoringCompany, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_FACTORING_NAME", "Factoring company name cannot be empty")
	}
	if feePercentage.IsNegative() || feePercentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_FEE_PERCENTAGE", "Fee percentage must be between 0 and 100")
	}

	return &FactoringCompany{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		FeePercentage:       feePercentage,
	}, nil
}

// UpdateFeePercentage updates the default fee percentage
func (f *FactoringCompany) UpdateFeePercentage(feePercentage decimal.Decimal) error {
	if feePercentage.IsNegative() || feePercentage.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_FEE_PERCENTAGE", "Fee percentage must be between 0 and 100")
	}
	f.FeePercentage = feePercentage
	f.UpdatedAt = time.Now()
	return nil
}

// MarkDefault flags this company as the tenant's default selection
func (f *FactoringCompany) MarkDefault() {
	f.IsDefault = true
	f.UpdatedAt = time.Now()
}

// ClearDefault removes the default flag
func (f *FactoringCompany) ClearDefault() {
	f.IsDefault = false
	f.UpdatedAt = time.Now()
}

// DefaultFactoringCompanyResolver resolves a tenant's default factoring
// company as an explicit, overridable policy. Nothing in the system may pick
// a default by array position.
type DefaultFactoringCompanyResolver interface {
	// ResolveDefault returns the tenant's default factoring company, or
	// shared.ErrNotFound when the tenant has not configured one.
	ResolveDefault(ctx context.Context, tenantID uuid.UUID) (*FactoringCompany, error)
}
