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

// GormDispatcherRepository implements DispatcherRepository using GORM
type GormDispatcherRepository struct {
	db *gorm.DB
}

// NewGormDispatcherRepository creates a new GormDispatcherRepository
func NewGormDispatcherRepository(db *gorm.DB) *GormDispatcherRepository {
	return &GormDispatcherRepository{db: db}
}

// FindByID finds a dispatcher by its ID
func (r *GormDispatcherRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Dispatcher, error) {
	var model models.DispatcherModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a dispatcher by ID within a tenant
func (r *GormDispatcherRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fleet.Dispatcher, error) {
	var model models.DispatcherModel
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

// FindAllForTenant finds all dispatchers for a tenant with filtering
func (r *GormDispatcherRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.Dispatcher, error) {
	var dispatcherModels []models.DispatcherModel
	query := r.db.WithContext(ctx).Model(&models.DispatcherModel{}).Where("tenant_id = ?", tenantID)

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "commission_type":
			query = query.Where("commission_type = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, DispatcherSortFields, "name")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("name ASC")
	}

	if err := query.Find(&dispatcherModels).Error; err != nil {
		return nil, err
	}

	dispatchers := make([]fleet.Dispatcher, len(dispatcherModels))
	for i := range dispatcherModels {
		dispatchers[i] = *dispatcherModels[i].ToDomain()
	}
	return dispatchers, nil
}

// Save creates or updates a dispatcher
func (r *GormDispatcherRepository) Save(ctx context.Context, dispatcher *fleet.Dispatcher) error {
	model := models.DispatcherModelFromDomain(dispatcher)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	dispatcher.CreatedAt = model.CreatedAt
	dispatcher.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete deletes a dispatcher
func (r *GormDispatcherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DispatcherModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormDispatcherRepository implements DispatcherRepository
var _ fleet.DispatcherRepository = (*GormDispatcherRepository)(nil)
