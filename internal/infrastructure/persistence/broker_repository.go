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

// GormBrokerRepository implements BrokerRepository using GORM
type GormBrokerRepository struct {
	db *gorm.DB
}

// NewGormBrokerRepository creates a new GormBrokerRepository
func NewGormBrokerRepository(db *gorm.DB) *GormBrokerRepository {
	return &GormBrokerRepository{db: db}
}

// FindByID finds a broker by its ID
func (r *GormBrokerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Broker, error) {
	var model models.BrokerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a broker by ID within a tenant
func (r *GormBrokerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Broker, error) {
	var model models.BrokerModel
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

// FindAllForTenant finds all brokers for a tenant with filtering
func (r *GormBrokerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Broker, error) {
	var brokerModels []models.BrokerModel
	query := r.db.WithContext(ctx).Model(&models.BrokerModel{}).Where("tenant_id = ?", tenantID)

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR mc_number ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, BrokerSortFields, "name")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("name ASC")
	}

	if err := query.Find(&brokerModels).Error; err != nil {
		return nil, err
	}

	brokers := make([]partner.Broker, len(brokerModels))
	for i := range brokerModels {
		brokers[i] = *brokerModels[i].ToDomain()
	}
	return brokers, nil
}

// Save creates or updates a broker
func (r *GormBrokerRepository) Save(ctx context.Context, broker *partner.Broker) error {
	model := models.BrokerModelFromDomain(broker)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	broker.CreatedAt = model.CreatedAt
	broker.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete deletes a broker
func (r *GormBrokerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BrokerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormBrokerRepository implements BrokerRepository
var _ partner.BrokerRepository = (*GormBrokerRepository)(nil)
