package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tms/backend/internal/domain/dispatch"
	"github.com/tms/backend/internal/domain/shared"
	"github.com/tms/backend/internal/infrastructure/persistence/models"
)

// GormLoadRepository implements LoadRepository using GORM
type GormLoadRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormLoadRepository creates a new GormLoadRepository
func NewGormLoadRepository(db *gorm.DB) *GormLoadRepository {
	return &GormLoadRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormLoadRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// FindByID finds a load by its ID
func (r *GormLoadRepository) FindByID(ctx context.Context, id uuid.UUID) (*dispatch.Load, error) {
	var model models.LoadModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a load by ID within a tenant
func (r *GormLoadRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*dispatch.Load, error) {
	var model models.LoadModel
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

// FindByLoadNumber finds a load by load number for a tenant
func (r *GormLoadRepository) FindByLoadNumber(ctx context.Context, tenantID uuid.UUID, loadNumber string) (*dispatch.Load, error) {
	var model models.LoadModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND load_number = ?", tenantID, loadNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all loads for a tenant with filtering
func (r *GormLoadRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]dispatch.Load, error) {
	var loadModels []models.LoadModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.LoadModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&loadModels).Error; err != nil {
		return nil, err
	}
	return toDomainLoads(loadModels), nil
}

// FindByStatus finds loads by status for a tenant
func (r *GormLoadRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status dispatch.LoadStatus, filter shared.Filter) ([]dispatch.Load, error) {
	var loadModels []models.LoadModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.LoadModel{}).
			Where("tenant_id = ? AND status = ?", tenantID, status),
		filter,
	)

	if err := query.Find(&loadModels).Error; err != nil {
		return nil, err
	}
	return toDomainLoads(loadModels), nil
}

// FindByDriver finds loads where the driver occupies either slot
func (r *GormLoadRepository) FindByDriver(ctx context.Context, tenantID, driverID uuid.UUID, filter shared.Filter) ([]dispatch.Load, error) {
	var loadModels []models.LoadModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.LoadModel{}).
			Where("tenant_id = ? AND (driver_id = ? OR driver2_id = ?)", tenantID, driverID, driverID),
		filter,
	)

	if err := query.Find(&loadModels).Error; err != nil {
		return nil, err
	}
	return toDomainLoads(loadModels), nil
}

// Save creates or updates a load. Pending domain events are written to the
// outbox in the same transaction so they cannot be lost between the row
// update and publication.
func (r *GormLoadRepository) Save(ctx context.Context, load *dispatch.Load) error {
	model := models.LoadModelFromDomain(load)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		return r.saveEvents(ctx, tx, load)
	})
	if err != nil {
		return err
	}
	load.CreatedAt = model.CreatedAt
	load.UpdatedAt = model.UpdatedAt
	load.ClearDomainEvents()
	return nil
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormLoadRepository) SaveWithLock(ctx context.Context, load *dispatch.Load) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Take, not Scan: Scan into a scalar reports a missing row as a zero
		// value instead of ErrRecordNotFound, and a deleted load would then
		// surface as a version conflict.
		var current struct{ Version int }
		if err := tx.Model(&models.LoadModel{}).
			Where("id = ?", load.ID).
			Select("version").
			Take(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if current.Version != load.Version {
			return shared.ErrConcurrencyConflict
		}

		load.Version++
		load.UpdatedAt = time.Now()

		model := models.LoadModelFromDomain(load)
		result := tx.Model(&models.LoadModel{}).
			Where("id = ? AND version = ?", load.ID, current.Version).
			Updates(loadUpdateColumns(model))

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return r.saveEvents(ctx, tx, load)
	})
	if err != nil {
		return err
	}
	load.ClearDomainEvents()
	return nil
}

func (r *GormLoadRepository) saveEvents(ctx context.Context, tx *gorm.DB, load *dispatch.Load) error {
	events := load.GetDomainEvents()
	if r.outboxSaver == nil || len(events) == 0 {
		return nil
	}
	if err := r.outboxSaver.SaveEvents(ctx, tx, events...); err != nil {
		return fmt.Errorf("failed to save events to outbox: %w", err)
	}
	return nil
}

// DeleteForTenant deletes a load for a tenant
func (r *GormLoadRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.LoadModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts loads for a tenant with optional filters
func (r *GormLoadRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.LoadModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts loads by status for a tenant
func (r *GormLoadRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status dispatch.LoadStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.LoadModel{}).
		Where("tenant_id = ? AND status = ?", tenantID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// existsByLoadNumber checks if a load number exists for a tenant
func (r *GormLoadRepository) existsByLoadNumber(ctx context.Context, tenantID uuid.UUID, loadNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.LoadModel{}).
		Where("tenant_id = ? AND load_number = ?", tenantID, loadNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GenerateLoadNumber generates a unique load number for a tenant
// Format: L-YYYY-NNNNN (e.g., L-2026-00001)
func (r *GormLoadRepository) GenerateLoadNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("L-%d-", year)

	// Get the highest load number for this year
	var lastLoad models.LoadModel
	err := r.db.WithContext(ctx).
		Model(&models.LoadModel{}).
		Where("tenant_id = ? AND load_number LIKE ?", tenantID, prefix+"%").
		Order("load_number DESC").
		First(&lastLoad).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastLoad.LoadNumber != "" {
		parts := strings.Split(lastLoad.LoadNumber, "-")
		if len(parts) == 3 {
			var num int64
			_, parseErr := fmt.Sscanf(parts[2], "%d", &num)
			if parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	loadNumber := fmt.Sprintf("%s%05d", prefix, nextNum)

	// Verify uniqueness
	exists, err := r.existsByLoadNumber(ctx, tenantID, loadNumber)
	if err != nil {
		return "", err
	}
	if exists {
		// If taken, keep incrementing until a free one comes up
		for i := 0; i < 100; i++ {
			nextNum++
			loadNumber = fmt.Sprintf("%s%05d", prefix, nextNum)
			exists, err = r.existsByLoadNumber(ctx, tenantID, loadNumber)
			if err != nil {
				return "", err
			}
			if !exists {
				break
			}
		}
	}

	return loadNumber, nil
}

// applyFilter applies filter options to the query
func (r *GormLoadRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering through the sort whitelist
	orderBy := ValidateSortField(filter.OrderBy, LoadSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormLoadRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("load_number ILIKE ? OR customer_name ILIKE ? OR broker_name ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
		case "driver_id":
			query = query.Where("(driver_id = ? OR driver2_id = ?)", value, value)
		case "dispatcher_id":
			query = query.Where("dispatcher_id = ?", value)
		case "broker_id":
			query = query.Where("broker_id = ?", value)
		case "is_factored":
			query = query.Where("is_factored = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("pickup_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("pickup_date <= ?", t)
			}
		}
	}

	return query
}

func toDomainLoads(loadModels []models.LoadModel) []dispatch.Load {
	loads := make([]dispatch.Load, len(loadModels))
	for i := range loadModels {
		loads[i] = *loadModels[i].ToDomain()
	}
	return loads
}

// loadUpdateColumns builds the column map for the version-checked update.
// Every mutable column is listed so adjustments to locked loads persist all
// recomputed derived figures in the same statement as the version bump.
func loadUpdateColumns(m *models.LoadModel) map[string]interface{} {
	return map[string]interface{}{
		"load_number":   m.LoadNumber,
		"rate":          m.Rate,
		"miles":         m.Miles,
		"origin_city":   m.OriginCity,
		"origin_state":  m.OriginState,
		"dest_city":     m.DestCity,
		"dest_state":    m.DestState,
		"pickup_date":   m.PickupDate,
		"delivery_date": m.DeliveryDate,
		"status":        m.Status,
		"customer_name": m.CustomerName,

		"driver_id":        m.DriverID,
		"driver_name":      m.DriverName,
		"driver_pay_type":  m.DriverPayType,
		"driver_pay_rate":  m.DriverPayRate,
		"driver2_id":       m.Driver2ID,
		"driver2_name":     m.Driver2Name,
		"driver2_pay_type": m.Driver2PayType,
		"driver2_pay_rate": m.Driver2PayRate,
		"is_team_load":     m.IsTeamLoad,
		"dispatcher_id":    m.DispatcherID,
		"broker_id":        m.BrokerID,
		"broker_name":      m.BrokerName,
		"truck_id":         m.TruckID,
		"trailer_id":       m.TrailerID,

		"has_detention":      m.HasDetention,
		"detention_hours":    m.DetentionHours,
		"detention_rate":     m.DetentionRate,
		"has_layover":        m.HasLayover,
		"layover_days":       m.LayoverDays,
		"layover_rate":       m.LayoverRate,
		"has_lumper":         m.HasLumper,
		"lumper_fee":         m.LumperFee,
		"has_fsc":            m.HasFSC,
		"fsc_type":           m.FSCType,
		"fsc_rate":           m.FSCRate,
		"has_tonu":           m.HasTONU,
		"tonu_fee":           m.TONUFee,
		"other_accessorials": m.OtherAccessorials,

		"is_factored":           m.IsFactored,
		"factoring_company_id":  m.FactoringCompanyID,
		"factoring_fee_percent": m.FactoringFeePercent,
		"factored_date":         m.FactoredDate,

		"detention_amount":   m.DetentionAmount,
		"layover_amount":     m.LayoverAmount,
		"lumper_amount":      m.LumperAmount,
		"fsc_amount":         m.FSCAmount,
		"tonu_amount":        m.TONUAmount,
		"total_accessorials": m.TotalAccessorials,
		"grand_total":        m.GrandTotal,

		"driver_base_pay":      m.DriverBasePay,
		"driver_detention_pay": m.DriverDetentionPay,
		"driver_layover_pay":   m.DriverLayoverPay,
		"driver_total_gross":   m.DriverTotalGross,
		"driver2_earnings":     m.Driver2Earnings,
		"total_driver_pay":     m.TotalDriverPay,

		"dispatcher_commission_amount": m.DispatcherCommissionAmount,

		"factoring_fee":   m.FactoringFee,
		"factored_amount": m.FactoredAmount,

		"notes":      m.Notes,
		"version":    m.Version,
		"updated_at": m.UpdatedAt,
	}
}

// Ensure GormLoadRepository implements LoadRepository
var _ dispatch.LoadRepository = (*GormLoadRepository)(nil)
