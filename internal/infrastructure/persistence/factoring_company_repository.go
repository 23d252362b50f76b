package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tms/backend/internal/domain/partner"
	"github.com/tms/backend/internal/domain/shared"
	"github.com/tms/backend/internal/infrastructure/persistence/models"
)

// GormFactoringCompanyRepository implements FactoringCompanyRepository using GORM
type GormFactoringCompanyRepository struct {
	db *gorm.DB
}

// NewGormFactoringCompanyRepository creates a new GormFactoringCompanyRepository
func NewGormFactoringCompanyRepository(db *gorm.DB) *GormFactoringCompanyRepository {
	return &GormFactoringCompanyRepository{db: db}
}

// FindByID finds a factoring company by its ID
func (r *GormFactoringCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.FactoringCompany, error) {
	var model models.FactoringCompanyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a factoring company by ID within a tenant
func (r *GormFactoringCompanyRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.FactoringCompany, error) {
	var model models.FactoringCompanyModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all factoring companies for a tenant with filtering
func (r *GormFactoringCompanyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.FactoringCompany, error) {
	var companyModels []models.FactoringCompanyModel
	query := r.db.WithContext(ctx).Model(&models.FactoringCompanyModel{}).Where("tenant_id = ?", tenantID)

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ?", searchPattern)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, FactoringCompanySortFields, "name")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("name ASC")
	}

	if err := query.Find(&companyModels).Error; err != nil {
		return nil, err
	}

	companies := make([]partner.FactoringCompany, len(companyModels))
	for i := range companyModels {
		companies[i] = *companyModels[i].ToDomain()
	}
	return companies, nil
}

// FindDefaultForTenant returns the company flagged as the tenant default
func (r *GormFactoringCompanyRepository) FindDefaultForTenant(ctx context.Context, tenantID uuid.UUID) (*partner.FactoringCompany, error) {
	var model models.FactoringCompanyModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_default = ?", tenantID, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a factoring company
func (r *GormFactoringCompanyRepository) Save(ctx context.Context, company *partner.FactoringCompany) error {
	model := models.FactoringCompanyModelFromDomain(company)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	company.CreatedAt = model.CreatedAt
	company.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete deletes a factoring company
func (r *GormFactoringCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FactoringCompanyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormFactoringCompanyRepository implements FactoringCompanyRepository
var _ partner.FactoringCompanyRepository = (*GormFactoringCompanyRepository)(nil)
