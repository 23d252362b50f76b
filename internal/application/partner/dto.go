package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tms/backend/internal/domain/partner"
)

// ==================== Broker DTOs ====================

// CreateBrokerRequest represents a request to create a broker
type CreateBrokerRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=200"`
	MCNumber     string `json:"mc_number" binding:"max=20"`
	ContactName  string `json:"contact_name" binding:"max=200"`
	ContactPhone string `json:"contact_phone" binding:"max=50"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	Remark       string `json:"remark" binding:"max=500"`
}

// UpdateBrokerRequest represents a partial update to a broker
type UpdateBrokerRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=200"`
	MCNumber     *string `json:"mc_number" binding:"omitempty,max=20"`
	ContactName  *string `json:"contact_name" binding:"omitempty,max=200"`
	ContactPhone *string `json:"contact_phone" binding:"omitempty,max=50"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email"`
	Remark       *string `json:"remark" binding:"omitempty,max=500"`
}

// BrokerListFilter represents filter options for broker listing
type BrokerListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

// BrokerResponse represents a broker in API responses
type BrokerResponse struct {
	ID           uuid.UUID `json:"id"`
	TenantID     uuid.UUID `json:"tenant_id"`
	Name         string    `json:"name"`
	MCNumber     string    `json:"mc_number,omitempty"`
	ContactName  string    `json:"contact_name,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	Status       string    `json:"status"`
	Remark       string    `json:"remark,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToBrokerResponse converts a domain broker to its response form
func ToBrokerResponse(b *partner.Broker) BrokerResponse {
	return BrokerResponse{
		ID:           b.ID,
		TenantID:     b.TenantID,
		Name:         b.Name,
		MCNumber:     b.MCNumber,
		ContactName:  b.ContactName,
		ContactPhone: b.ContactPhone,
		ContactEmail: b.ContactEmail,
		Status:       string(b.Status),
		Remark:       b.Remark,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// ToBrokerResponses converts a slice of domain brokers
func ToBrokerResponses(brokers []partner.Broker) []BrokerResponse {
	responses := make([]BrokerResponse, len(brokers))
	for i := range brokers {
		responses[i] = ToBrokerResponse(&brokers[i])
	}
	return responses
}

// ==================== Factoring Company DTOs ====================

// CreateFactoringCompanyRequest represents a request to create a factoring company
type CreateFactoringCompanyRequest struct {
	Name          string          `json:"name" binding:"required,min=1,max=200"`
	FeePercentage decimal.Decimal `json:"fee_percentage"`
	ContactName   string          `json:"contact_name" binding:"max=200"`
	ContactPhone  string          `json:"contact_phone" binding:"max=50"`
	ContactEmail  string          `json:"contact_email" binding:"omitempty,email"`
	IsDefault     bool            `json:"is_default"`
}

// UpdateFactoringCompanyRequest represents a partial update to a factoring company
type UpdateFactoringCompanyRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=200"`
	FeePercentage *decimal.Decimal `json:"fee_percentage"`
	ContactName   *string          `json:"contact_name" binding:"omitempty,max=200"`
	ContactPhone  *string          `json:"contact_phone" binding:"omitempty,max=50"`
	ContactEmail  *string          `json:"contact_email" binding:"omitempty,email"`
}

// FactoringCompanyListFilter represents filter options for factoring company listing
type FactoringCompanyListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

// FactoringCompanyResponse represents a factoring company in API responses
type FactoringCompanyResponse struct {
	ID            uuid.UUID       `json:"id"`
	TenantID      uuid.UUID       `json:"tenant_id"`
	Name          string          `json:"name"`
	FeePercentage decimal.Decimal `json:"fee_percentage"`
	ContactName   string          `json:"contact_name,omitempty"`
	ContactPhone  string          `json:"contact_phone,omitempty"`
	ContactEmail  string          `json:"contact_email,omitempty"`
	IsDefault     bool            `json:"is_default"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToFactoringCompanyResponse converts a domain factoring company to its response form
func ToFactoringCompanyResponse(f *partner.FactoringCompany) FactoringCompanyResponse {
	return FactoringCompanyResponse{
		ID:            f.ID,
		TenantID:      f.TenantID,
		Name:          f.Name,
		FeePercentage: f.FeePercentage,
		ContactName:   f.ContactName,
		ContactPhone:  f.ContactPhone,
		ContactEmail:  f.ContactEmail,
		IsDefault:     f.IsDefault,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

// ToFactoringCompanyResponses converts a slice of domain factoring companies
func ToFactoringCompanyResponses(companies []partner.FactoringCompany) []FactoringCompanyResponse {
	responses := make([]FactoringCompanyResponse, len(companies))
	for i := range companies {
		responses[i] = ToFactoringCompanyResponse(&companies[i])
	}
	return responses
}
