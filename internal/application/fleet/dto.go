package fleet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tms/backend/internal/domain/fleet"
)

// ==================== Driver DTOs ====================

// PaymentConfigInput carries a driver's pay configuration. Percentages may
// arrive in legacy integer form (88) and are normalized to fractions (0.88).
type PaymentConfigInput struct {
	Type          fleet.PayType   `json:"type" binding:"required,oneof=percentage per_mile flat_rate"`
	PayPercentage decimal.Decimal `json:"pay_percentage"`
	PerMileRate   decimal.Decimal `json:"per_mile_rate"`
	FlatRate      decimal.Decimal `json:"flat_rate"`
}

// CreateDriverRequest represents a request to create a driver
type CreateDriverRequest struct {
	Name          string             `json:"name" binding:"required,min=1,max=200"`
	Phone         string             `json:"phone" binding:"max=50"`
	Email         string             `json:"email" binding:"omitempty,email"`
	LicenseNumber string             `json:"license_number" binding:"max=50"`
	Payment       PaymentConfigInput `json:"payment" binding:"required"`
	HiredAt       *time.Time         `json:"hired_at"`
}

// UpdateDriverRequest represents a partial update to a driver
type UpdateDriverRequest struct {
	Name          *string             `json:"name" binding:"omitempty,min=1,max=200"`
	Phone         *string             `json:"phone" binding:"omitempty,max=50"`
	Email         *string             `json:"email" binding:"omitempty,email"`
	LicenseNumber *string             `json:"license_number" binding:"omitempty,max=50"`
	Payment       *PaymentConfigInput `json:"payment"`
}

// AssignTruckRequest represents a request to link a driver to a truck
type AssignTruckRequest struct {
	TruckID uuid.UUID `json:"truck_id" binding:"required"`
}

// DriverListFilter represents filter options for driver listing
type DriverListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

// DriverResponse represents a driver in API responses
type DriverResponse struct {
	ID             uuid.UUID       `json:"id"`
	TenantID       uuid.UUID       `json:"tenant_id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone,omitempty"`
	Email          string          `json:"email,omitempty"`
	LicenseNumber  string          `json:"license_number,omitempty"`
	Status         string          `json:"status"`
	PayType        string          `json:"pay_type"`
	PayPercentage  decimal.Decimal `json:"pay_percentage"`
	PerMileRate    decimal.Decimal `json:"per_mile_rate"`
	FlatRate       decimal.Decimal `json:"flat_rate"`
	CurrentTruckID *uuid.UUID      `json:"current_truck_id,omitempty"`
	TrailerID      *uuid.UUID      `json:"trailer_id,omitempty"`
	HiredAt        *time.Time      `json:"hired_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToDriverResponse converts a domain driver to its response form
func ToDriverResponse(d *fleet.Driver) DriverResponse {
	return DriverResponse{
		ID:             d.ID,
		TenantID:       d.TenantID,
		Name:           d.Name,
		Phone:          d.Phone,
		Email:          d.Email,
		LicenseNumber:  d.LicenseNumber,
		Status:         string(d.Status),
		PayType:        d.Payment.Type.String(),
		PayPercentage:  d.Payment.PayPercentage,
		PerMileRate:    d.Payment.PerMileRate,
		FlatRate:       d.Payment.FlatRate,
		CurrentTruckID: d.CurrentTruckID,
		TrailerID:      d.TrailerID,
		HiredAt:        d.HiredAt,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// ToDriverResponses converts a slice of domain drivers
func ToDriverResponses(drivers []fleet.Driver) []DriverResponse {
	responses := make([]DriverResponse, len(drivers))
	for i := range drivers {
		responses[i] = ToDriverResponse(&drivers[i])
	}
	return responses
}

func (in PaymentConfigInput) toDomain() fleet.PaymentConfig {
	return fleet.PaymentConfig{
		Type:          in.Type,
		PayPercentage: in.PayPercentage,
		PerMileRate:   in.PerMileRate,
		FlatRate:      in.FlatRate,
	}
}

// ==================== Dispatcher DTOs ====================

// CreateDispatcherRequest represents a request to create a dispatcher
type CreateDispatcherRequest struct {
	Name           string               `json:"name" binding:"required,min=1,max=200"`
	Phone          string               `json:"phone" binding:"max=50"`
	Email          string               `json:"email" binding:"omitempty,email"`
	CommissionType fleet.CommissionType `json:"commission_type" binding:"required,oneof=percentage flat_fee per_mile"`
	CommissionRate decimal.Decimal      `json:"commission_rate"`
}

// UpdateDispatcherRequest represents a partial update to a dispatcher
type UpdateDispatcherRequest struct {
	Name           *string               `json:"name" binding:"omitempty,min=1,max=200"`
	Phone          *string               `json:"phone" binding:"omitempty,max=50"`
	Email          *string               `json:"email" binding:"omitempty,email"`
	CommissionType *fleet.CommissionType `json:"commission_type" binding:"omitempty,oneof=percentage flat_fee per_mile"`
	CommissionRate *decimal.Decimal      `json:"commission_rate"`
}

// DispatcherListFilter represents filter options for dispatcher listing
type DispatcherListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

// DispatcherResponse represents a dispatcher in API responses
type DispatcherResponse struct {
	ID             uuid.UUID       `json:"id"`
	TenantID       uuid.UUID       `json:"tenant_id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone,omitempty"`
	Email          string          `json:"email,omitempty"`
	Status         string          `json:"status"`
	CommissionType string          `json:"commission_type"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToDispatcherResponse converts a domain dispatcher to its response form
func ToDispatcherResponse(d *fleet.Dispatcher) DispatcherResponse {
	return DispatcherResponse{
		ID:             d.ID,
		TenantID:       d.TenantID,
		Name:           d.Name,
		Phone:          d.Phone,
		Email:          d.Email,
		Status:         string(d.Status),
		CommissionType: d.CommissionType.String(),
		CommissionRate: d.CommissionRate,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// ToDispatcherResponses converts a slice of domain dispatchers
func ToDispatcherResponses(dispatchers []fleet.Dispatcher) []DispatcherResponse {
	responses := make([]DispatcherResponse, len(dispatchers))
	for i := range dispatchers {
		responses[i] = ToDispatcherResponse(&dispatchers[i])
	}
	return responses
}
