package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/tms/backend/internal/domain/shared"
)

// BrokerStatus represents the working relationship with a broker
type BrokerStatus string

const (
	BrokerStatusActive   BrokerStatus = "active"
	BrokerStatusInactive BrokerStatus = "inactive"
)

// Broker represents the freight broker or shipper a load is hauled for
type Broker struct {
	shared.TenantAggregateRoot
	Name         string
	MCNumber     string
	ContactName  string
	ContactPhone string
	ContactEmail string
	Status       BrokerStatus
	Remark       string
}

// NewBroker creates a new broker
func NewBroker(tenantID uuid.UUID, name, mcNumber string) (*Broker, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_BROKER_NAME", "Broker name cannot be empty")
	}

	return &Broker{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		MCNumber:            mcNumber,
		Status:              BrokerStatusActive,
	}, nil
}

// UpdateContact updates broker contact details
func (b *Broker) UpdateContact(name, phone, email string) {
	b.ContactName = name
	b.ContactPhone = phone
	b.ContactEmail = email
	b.UpdatedAt = time.Now()
}

// Deactivate marks the broker relationship as inactive
func (b *Broker) Deactivate() {
	b.Status = BrokerStatusInactive
	b.UpdatedAt = time.Now()
}

// IsActive returns true if the broker is active
func (b *Broker) IsActive() bool {
	return b.Status == BrokerStatusActive
}
