package fleet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tms/backend/internal/domain/shared"
)

// PayType represents how a driver's base pay is calculated
type PayType string

const (
	PayTypePercentage PayType = "percentage"
	PayTypePerMile    PayType = "per_mile"
	PayTypeFlatRate   PayType = "flat_rate"
)

// IsValid checks if the pay type is a valid PayType
func (p PayType) IsValid() bool {
	switch p {
	case PayTypePercentage, PayTypePerMile, PayTypeFlatRate:
		return true
	}
	return false
}

// String returns the string representation of PayType
func (p PayType) String() string {
	return string(p)
}

// DriverStatus represents the employment status of a driver
type DriverStatus string

const (
	DriverStatusActive   DriverStatus = "active"
	DriverStatusInactive DriverStatus = "inactive"
)

// PaymentConfig holds a driver's default pay basis. Loads may override the
// rate per slot; the type always comes from the profile.
type PaymentConfig struct {
	Type          PayType
	PayPercentage decimal.Decimal // fraction in the 0-1 range after normalization
	PerMileRate   decimal.Decimal
	FlatRate      decimal.Decimal
}

// NormalizePayPercentage converts a legacy integer-format percentage (e.g. 88)
// into the canonical 0-1 fraction (0.88). Values already in the 0-1 range are
// returned unchanged.
func NormalizePayPercentage(raw decimal.Decimal) decimal.Decimal {
	if raw.GreaterThan(decimal.NewFromInt(1)) {
		return raw.Div(decimal.NewFromInt(100))
	}
	return raw
}

// Driver represents an employed driver and their pay configuration
type Driver struct {
	shared.TenantAggregateRoot
	Name           string
	Phone          string
	Email          string
	LicenseNumber  string
	Status         DriverStatus
	Payment        PaymentConfig
	CurrentTruckID *uuid.UUID
	TrailerID      *uuid.UUID
	HiredAt        *time.Time
}

// NewDriver creates a new driver with a normalized payment configuration
func NewDriver(tenantID uuid.UUID, name string, payment PaymentConfig) (*Driver, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_DRIVER_NAME", "Driver name cannot be empty")
	}
	if !payment.Type.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAY_TYPE", "Driver pay type must be percentage, per_mile or flat_rate")
	}
	if payment.PayPercentage.IsNegative() || payment.PerMileRate.IsNegative() || payment.FlatRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PAY_RATE", "Driver pay rates cannot be negative")
	}

	payment.PayPercentage = NormalizePayPercentage(payment.PayPercentage)

	return &Driver{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Status:              DriverStatusActive,
		Payment:             payment,
	}, nil
}

// UpdatePayment replaces the driver's payment configuration, normalizing the
// percentage before storing it
func (d *Driver) UpdatePayment(payment PaymentConfig) error {
	if !payment.Type.IsValid() {
		return shared.NewDomainError("INVALID_PAY_TYPE", "Driver pay type must be percentage, per_mile or flat_rate")
	}
	if payment.PayPercentage.IsNegative() || payment.PerMileRate.IsNegative() || payment.FlatRate.IsNegative() {
		return shared.NewDomainError("INVALID_PAY_RATE", "Driver pay rates cannot be negative")
	}

	payment.PayPercentage = NormalizePayPercentage(payment.PayPercentage)
	d.Payment = payment
	d.UpdatedAt = time.Now()
	return nil
}

// AssignTruck links the driver to a truck
func (d *Driver) AssignTruck(truckID uuid.UUID) error {
	if truckID == uuid.Nil {
		return shared.NewDomainError("INVALID_TRUCK", "Truck ID cannot be empty")
	}
	d.CurrentTruckID = &truckID
	d.UpdatedAt = time.Now()
	return nil
}

// Deactivate marks the driver as inactive
func (d *Driver) Deactivate() {
	d.Status = DriverStatusInactive
	d.UpdatedAt = time.Now()
}

// Activate marks the driver as active
func (d *Driver) Activate() {
	d.Status = DriverStatusActive
	d.UpdatedAt = time.Now()
}

// IsActive returns true if the driver is active
func (d *Driver) IsActive() bool {
	return d.Status == DriverStatusActive
}
