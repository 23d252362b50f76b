package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/tms/backend/internal/domain/partner"
	"github.com/tms/backend/internal/domain/shared"
)

// BrokerService handles broker business operations
type BrokerService struct {
	brokerRepo partner.BrokerRepository
}

// NewBrokerService creates a new BrokerService
func NewBrokerService(brokerRepo partner.BrokerRepository) *BrokerService {
	return &BrokerService{brokerRepo: brokerRepo}
}

// Create creates a new broker
func (s *BrokerService) Create(ctx context.Context, tenantID uuid.UUID, req CreateBrokerRequest) (*BrokerResponse, error) {
	broker, err := partner.NewBroker(tenantID, req.Name, req.MCNumber)
	if err != nil {
		return nil, err
	}

	broker.UpdateContact(req.ContactName, req.ContactPhone, req.ContactEmail)
	broker.Remark = req.Remark

	if err := s.brokerRepo.Save(ctx, broker); err != nil {
		return nil, err
	}

	response := ToBrokerResponse(broker)
	return &response, nil
}

// GetByID retrieves a broker by ID
func (s *BrokerService) GetByID(ctx context.Context, tenantID, brokerID uuid.UUID) (*BrokerResponse, error) {
	broker, err := s.brokerRepo.FindByIDForTenant(ctx, tenantID, brokerID)
	if err != nil {
		return nil, err
	}
	response := ToBrokerResponse(broker)
	return &response, nil
}

// List retrieves brokers with filtering and pagination
func (s *BrokerService) List(ctx context.Context, tenantID uuid.UUID, filter BrokerListFilter) ([]BrokerResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	brokers, err := s.brokerRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	return ToBrokerResponses(brokers), nil
}

// Update applies a partial update to a broker
func (s *BrokerService) Update(ctx context.Context, tenantID, brokerID uuid.UUID, req UpdateBrokerRequest) (*BrokerResponse, error) {
	broker, err := s.brokerRepo.FindByIDForTenant(ctx, tenantID, brokerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_BROKER_NAME", "Broker name cannot be empty")
		}
		broker.Name = *req.Name
	}
	if req.MCNumber != nil {
		broker.MCNumber = *req.MCNumber
	}
	if req.ContactName != nil || req.ContactPhone != nil || req.ContactEmail != nil {
		name, phone, email := broker.ContactName, broker.ContactPhone, broker.ContactEmail
		if req.ContactName != nil {
			name = *req.ContactName
		}
		if req.ContactPhone != nil {
			phone = *req.ContactPhone
		}
		if req.ContactEmail != nil {
			email = *req.ContactEmail
		}
		broker.UpdateContact(name, phone, email)
	}
	if req.Remark != nil {
		broker.Remark = *req.Remark
	}

	if err := s.brokerRepo.Save(ctx, broker); err != nil {
		return nil, err
	}

	response := ToBrokerResponse(broker)
	return &response, nil
}

// Deactivate marks a broker relationship as inactive. Loads keep the broker
// reference for their settlement history.
func (s *BrokerService) Deactivate(ctx context.Context, tenantID, brokerID uuid.UUID) (*BrokerResponse, error) {
	broker, err := s.brokerRepo.FindByIDForTenant(ctx, tenantID, brokerID)
	if err != nil {
		return nil, err
	}

	broker.Deactivate()

	if err := s.brokerRepo.Save(ctx, broker); err != nil {
		return nil, err
	}

	response := ToBrokerResponse(broker)
	return &response, nil
}
