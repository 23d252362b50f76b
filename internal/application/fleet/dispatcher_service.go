package fleet

import (
	"context"

	"github.com/google/uuid"

	"github.com/tms/backend/internal/domain/fleet"
	"github.com/tms/backend/internal/domain/shared"
)

// DispatcherService handles dispatcher business operations
type DispatcherService struct {
	dispatcherRepo fleet.DispatcherRepository
}

// NewDispatcherService creates a new DispatcherService
func NewDispatcherService(dispatcherRepo fleet.DispatcherRepository) *DispatcherService {
	return &DispatcherService{dispatcherRepo: dispatcherRepo}
}

// Create creates a new dispatcher
func (s *DispatcherService) Create(ctx context.Context, tenantID uuid.UUID, req CreateDispatcherRequest) (*DispatcherResponse, error) {
	dispatcher, err := fleet.NewDispatcher(tenantID, req.Name, req.CommissionType, req.CommissionRate)
	if err != nil {
		return nil, err
	}

	dispatcher.Phone = req.Phone
	dispatcher.Email = req.Email

	if err := s.dispatcherRepo.Save(ctx, dispatcher); err != nil {
		return nil, err
	}

	response := ToDispatcherResponse(dispatcher)
	return &response, nil
}

// GetByID retrieves a dispatcher by ID
func (s *DispatcherService) GetByID(ctx context.Context, tenantID, dispatcherID uuid.UUID) (*DispatcherResponse, error) {
	dispatcher, err := s.dispatcherRepo.FindByIDForTenant(ctx, tenantID, dispatcherID)
	if err != nil {
		return nil, err
	}
	response := ToDispatcherResponse(dispatcher)
	return &response, nil
}

// List retrieves dispatchers with filtering and pagination
func (s *DispatcherService) List(ctx context.Context, tenantID uuid.UUID, filter DispatcherListFilter) ([]DispatcherResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search

	dispatchers, err := s.dispatcherRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	return ToDispatcherResponses(dispatchers), nil
}

// Update applies a partial update to a dispatcher
func (s *DispatcherService) Update(ctx context.Context, tenantID, dispatcherID uuid.UUID, req UpdateDispatcherRequest) (*DispatcherResponse, error) {
	dispatcher, err := s.dispatcherRepo.FindByIDForTenant(ctx, tenantID, dispatcherID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_DISPATCHER_NAME", "Dispatcher name cannot be empty")
		}
		dispatcher.Name = *req.Name
	}
	if req.Phone != nil {
		dispatcher.Phone = *req.Phone
	}
	if req.Email != nil {
		dispatcher.Email = *req.Email
	}
	if req.CommissionType != nil || req.CommissionRate != nil {
		commissionType := dispatcher.CommissionType
		commissionRate := dispatcher.CommissionRate
		if req.CommissionType != nil {
			commissionType = *req.CommissionType
		}
		if req.CommissionRate != nil {
			commissionRate = *req.CommissionRate
		}
		if err := dispatcher.UpdateCommission(commissionType, commissionRate); err != nil {
			return nil, err
		}
	}

	if err := s.dispatcherRepo.Save(ctx, dispatcher); err != nil {
		return nil, err
	}

	response := ToDispatcherResponse(dispatcher)
	return &response, nil
}

// Delete removes a dispatcher. Loads keep the dispatcher reference for their
// commission history.
func (s *DispatcherService) Delete(ctx context.Context, tenantID, dispatcherID uuid.UUID) error {
	if _, err := s.dispatcherRepo.FindByIDForTenant(ctx, tenantID, dispatcherID); err != nil {
		return err
	}
	return s.dispatcherRepo.Delete(ctx, dispatcherID)
}
