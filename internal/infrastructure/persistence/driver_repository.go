package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tms/backend/internal/domain/fleet"
	"github.com/tms/backend/internal/domain/shared"
	"github.com/tms/backend/internal/infrastructure/persistence/models"
)

// GormDriverRepository implements DriverRepository using GORM
type GormDriverRepository struct {
	db *gorm.DB
}

// NewGormDriverRepository creates a new GormDriverRepository
func NewGormDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

// FindByID finds a driver by its ID
func (r *GormDriverRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Driver, error) {
	var model models.DriverModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a driver by ID within a tenant
func (r *GormDriverRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fleet.Driver, error) {
	var model models.DriverModel
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

// FindAllForTenant finds all drivers for a tenant with filtering
func (r *GormDriverRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.Driver, error) {
	var driverModels []models.DriverModel
	query := r.db.WithContext(ctx).Model(&models.DriverModel{}).Where("tenant_id = ?", tenantID)

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR license_number ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "pay_type":
			query = query.Where("pay_type = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, DriverSortFields, "name")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("name ASC")
	}

	if err := query.Find(&driverModels).Error; err != nil {
		return nil, err
	}

	drivers := make([]fleet.Driver, len(driverModels))
	for i := range driverModels {
		drivers[i] = *driverModels[i].ToDomain()
	}
	return drivers, nil
}

// FindActiveForTenant finds all active drivers for a tenant
func (r *GormDriverRepository) FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]fleet.Driver, error) {
	var driverModels []models.DriverModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, fleet.DriverStatusActive).
		Order("name ASC").
		Find(&driverModels).Error; err != nil {
		return nil, err
	}

	drivers := make([]fleet.Driver, len(driverModels))
	for i := range driverModels {
		drivers[i] = *driverModels[i].ToDomain()
	}
	return drivers, nil
}

// Save creates or updates a driver
func (r *GormDriverRepository) Save(ctx context.Context, driver *fleet.Driver) error {
	model := models.DriverModelFromDomain(driver)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	driver.CreatedAt = model.CreatedAt
	driver.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete deletes a driver
func (r *GormDriverRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DriverModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts drivers for a tenant
func (r *GormDriverRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DriverModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormDriverRepository implements DriverRepository
var _ fleet.DriverRepository = (*GormDriverRepository)(nil)
