package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/tms/backend/internal/domain/partner"
	"github.com/tms/backend/internal/domain/shared"
)

// FactoringCompanyService handles factoring company business operations,
// including the explicit default-company selection loads fall back to
type FactoringCompanyService struct {
	factoringRepo partner.FactoringCompanyRepository
}

// NewFactoringCompanyService creates a new FactoringCompanyService
func NewFactoringCompanyService(factoringRepo partner.FactoringCompanyRepository) *FactoringCompanyService {
	return &FactoringCompanyService{factoringRepo: factoringRepo}
}

// Create creates a new factoring company
func (s *FactoringCompanyService) Create(ctx context.Context, tenantID uuid.UUID, req CreateFactoringCompanyRequest) (*FactoringCompanyResponse, error) {
	company, err := partner.NewFactoringCompany(tenantID, req.Name, req.FeePercentage)
	if err != nil {
		return nil, err
	}

	company.ContactName = req.ContactName
	company.ContactPhone = req.ContactPhone
	company.ContactEmail = req.ContactEmail

	if req.IsDefault {
		if err := s.demoteCurrentDefault(ctx, tenantID); err != nil {
			return nil, err
		}
		company.MarkDefault()
	}

	if err := s.factoringRepo.Save(ctx, company); err != nil {
		return nil, err
	}

	response := ToFactoringCompanyResponse(company)
	return &response, nil
}

// GetByID retrieves a factoring company by ID
func (s *FactoringCompanyService) GetByID(ctx context.Context, tenantID, companyID uuid.UUID) (*FactoringCompanyResponse, error) {
	company, err := s.factoringRepo.FindByIDForTenant(ctx, tenantID, companyID)
	if err != nil {
		return nil, err
	}
	response := ToFactoringCompanyResponse(company)
	return &response, nil
}

// List retrieves factoring companies with filtering and pagination
func (s *FactoringCompanyService) List(ctx context.Context, tenantID uuid.UUID, filter FactoringCompanyListFilter) ([]FactoringCompanyResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search

	companies, err := s.factoringRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	return ToFactoringCompanyResponses(companies), nil
}

// Update applies a partial update to a factoring company
func (s *FactoringCompanyService) Update(ctx context.Context, tenantID, companyID uuid.UUID, req UpdateFactoringCompanyRequest) (*FactoringCompanyResponse, error) {
	company, err := s.factoringRepo.FindByIDForTenant(ctx, tenantID, companyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_FACTORING_NAME", "Factoring company name cannot be empty")
		}
		company.Name = *req.Name
	}
	if req.FeePercentage != nil {
		if err := company.UpdateFeePercentage(*req.FeePercentage); err != nil {
			return nil, err
		}
	}
	if req.ContactName != nil {
		company.ContactName = *req.ContactName
	}
	if req.ContactPhone != nil {
		company.ContactPhone = *req.ContactPhone
	}
	if req.ContactEmail != nil {
		company.ContactEmail = *req.ContactEmail
	}

	if err := s.factoringRepo.Save(ctx, company); err != nil {
		return nil, err
	}

	response := ToFactoringCompanyResponse(company)
	return &response, nil
}

// SetDefault promotes one company to the tenant's default and demotes the
// previous one. Default selection is always this explicit flag, never list
// position.
func (s *FactoringCompanyService) SetDefault(ctx context.Context, tenantID, companyID uuid.UUID) (*FactoringCompanyResponse, error) {
	company, err := s.factoringRepo.FindByIDForTenant(ctx, tenantID, companyID)
	if err != nil {
		return nil, err
	}

	if err := s.demoteCurrentDefault(ctx, tenantID); err != nil {
		return nil, err
	}

	company.MarkDefault()
	if err := s.factoringRepo.Save(ctx, company); err != nil {
		return nil, err
	}

	response := ToFactoringCompanyResponse(company)
	return &response, nil
}

// ResolveDefault returns the tenant's default factoring company. It
// implements partner.DefaultFactoringCompanyResolver.
func (s *FactoringCompanyService) ResolveDefault(ctx context.Context, tenantID uuid.UUID) (*partner.FactoringCompany, error) {
	return s.factoringRepo.FindDefaultForTenant(ctx, tenantID)
}

func (s *FactoringCompanyService) demoteCurrentDefault(ctx context.Context, tenantID uuid.UUID) error {
	current, err := s.factoringRepo.FindDefaultForTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	current.ClearDefault()
	return s.factoringRepo.Save(ctx, current)
}
