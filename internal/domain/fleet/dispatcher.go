package fleet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tms/backend/internal/domain/shared"
)

// CommissionType represents how a dispatcher's commission is calculated
type CommissionType string

const (
	CommissionTypePercentage CommissionType = "percentage"
	CommissionTypeFlatFee    CommissionType = "flat_fee"
	CommissionTypePerMile    CommissionType = "per_mile"
)

// IsValid checks if the commission type is a valid CommissionType
func (c CommissionType) IsValid() bool {
	switch c {
	case CommissionTypePercentage, CommissionTypeFlatFee, CommissionTypePerMile:
		return true
	}
	return false
}

// String returns the string representation of CommissionType
func (c CommissionType) String() string {
	return string(c)
}

// Dispatcher represents the employee who books loads and earns commission on
// them. The rate field is overloaded by type: a percentage (0-100), a flat
// dollar amount, or a dollars-per-mile rate.
type Dispatcher struct {
	shared.TenantAggregateRoot
	Name           string
	Phone          string
	Email          string
	Status         DriverStatus
	CommissionType CommissionType
	CommissionRate decimal.Decimal
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(tenantID uuid.UUID, name string, commissionType CommissionType, commissionRate decimal.Decimal) (*Dispatcher, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_DISPATCHER_NAME", "Dispatcher name cannot be empty")
	}
	if !commissionType.IsValid() {
		return nil, shared.NewDomainError("INVALID_COMMISSION_TYPE", "Commission type must be percentage, flat_fee or per_mile")
	}
	if commissionRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COMMISSION_RATE", "Commission rate cannot be negative")
	}

	return &Dispatcher{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Status:              DriverStatusActive,
		CommissionType:      commissionType,
		CommissionRate:      commissionRate,
	}, nil
}

// UpdateCommission replaces the dispatcher's commission configuration
func (d *Dispatcher) UpdateCommission(commissionType CommissionType, commissionRate decimal.Decimal) error {
	if !commissionType.IsValid() {
		return shared.NewDomainError("INVALID_COMMISSION_TYPE", "Commission type must be percentage, flat_fee or per_mile")
	}
	if commissionRate.IsNegative() {
		return shared.NewDomainError("INVALID_COMMISSION_RATE", "Commission rate cannot be negative")
	}

	d.CommissionType = commissionType
	d.CommissionRate = commissionRate
	d.UpdatedAt = time.Now()
	return nil
}
