package fleet

import (
	"context"

	"github.com/google/uuid"

	"github.com/tms/backend/internal/domain/fleet"
	"github.com/tms/backend/internal/domain/shared"
)

// DriverService handles driver business operations
type DriverService struct {
	driverRepo fleet.DriverRepository
}

// NewDriverService creates a new DriverService
func NewDriverService(driverRepo fleet.DriverRepository) *DriverService {
	return &DriverService{driverRepo: driverRepo}
}

// Create creates a new driver with a normalized payment configuration
func (s *DriverService) Create(ctx context.Context, tenantID uuid.UUID, req CreateDriverRequest) (*DriverResponse, error) {
	driver, err := fleet.NewDriver(tenantID, req.Name, req.Payment.toDomain())
	if err != nil {
		return nil, err
	}

	driver.Phone = req.Phone
	driver.Email = req.Email
	driver.LicenseNumber = req.LicenseNumber
	driver.HiredAt = req.HiredAt

	if err := s.driverRepo.Save(ctx, driver); err != nil {
		return nil, err
	}

	response := ToDriverResponse(driver)
	return &response, nil
}

// GetByID retrieves a driver by ID
func (s *DriverService) GetByID(ctx context.Context, tenantID, driverID uuid.UUID) (*DriverResponse, error) {
	driver, err := s.driverRepo.FindByIDForTenant(ctx, tenantID, driverID)
	if err != nil {
		return nil, err
	}
	response := ToDriverResponse(driver)
	return &response, nil
}

// List retrieves drivers with filtering and pagination
func (s *DriverService) List(ctx context.Context, tenantID uuid.UUID, filter DriverListFilter) ([]DriverResponse, int64, error) {
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

	drivers, err := s.driverRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.driverRepo.Count(ctx, tenantID)
	if err != nil {
		return nil, 0, err
	}

	return ToDriverResponses(drivers), total, nil
}

// ListActive retrieves all active drivers for assignment pickers
func (s *DriverService) ListActive(ctx context.Context, tenantID uuid.UUID) ([]DriverResponse, error) {
	drivers, err := s.driverRepo.FindActiveForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return ToDriverResponses(drivers), nil
}

// Update applies a partial update to a driver
func (s *DriverService) Update(ctx context.Context, tenantID, driverID uuid.UUID, req UpdateDriverRequest) (*DriverResponse, error) {
	driver, err := s.driverRepo.FindByIDForTenant(ctx, tenantID, driverID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_DRIVER_NAME", "Driver name cannot be empty")
		}
		driver.Name = *req.Name
	}
	if req.Phone != nil {
		driver.Phone = *req.Phone
	}
	if req.Email != nil {
		driver.Email = *req.Email
	}
	if req.LicenseNumber != nil {
		driver.LicenseNumber = *req.LicenseNumber
	}
	if req.Payment != nil {
		if err := driver.UpdatePayment(req.Payment.toDomain()); err != nil {
			return nil, err
		}
	}

	if err := s.driverRepo.Save(ctx, driver); err != nil {
		return nil, err
	}

	response := ToDriverResponse(driver)
	return &response, nil
}

// AssignTruck links a driver to a truck
func (s *DriverService) AssignTruck(ctx context.Context, tenantID, driverID uuid.UUID, req AssignTruckRequest) (*DriverResponse, error) {
	driver, err := s.driverRepo.FindByIDForTenant(ctx, tenantID, driverID)
	if err != nil {
		return nil, err
	}

	if err := driver.AssignTruck(req.TruckID); err != nil {
		return nil, err
	}

	if err := s.driverRepo.Save(ctx, driver); err != nil {
		return nil, err
	}

	response := ToDriverResponse(driver)
	return &response, nil
}

// Deactivate marks a driver as inactive. Past loads keep their pay records.
func (s *DriverService) Deactivate(ctx context.Context, tenantID, driverID uuid.UUID) (*DriverResponse, error) {
	driver, err := s.driverRepo.FindByIDForTenant(ctx, tenantID, driverID)
	if err != nil {
		return nil, err
	}

	driver.Deactivate()

	if err := s.driverRepo.Save(ctx, driver); err != nil {
		return nil, err
	}

	response := ToDriverResponse(driver)
	return &response, nil
}

// Activate marks a driver as active
func (s *DriverService) Activate(ctx context.Context, tenantID, driverID uuid.UUID) (*DriverResponse, error) {
	driver, err := s.driverRepo.FindByIDForTenant(ctx, tenantID, driverID)
	if err != nil {
		return nil, err
	}

	driver.Activate()

	if err := s.driverRepo.Save(ctx, driver); err != nil {
		return nil, err
	}

	response := ToDriverResponse(driver)
	return &response, nil
}
