package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tms/backend/internal/domain/audit"
	"github.com/tms/backend/internal/domain/shared"
	"github.com/tms/backend/internal/infrastructure/persistence/models"
)

// GormAuditRepository implements the append-only audit Repository using GORM.
// Rows are only ever inserted; there is no update or delete path.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append persists an audit entry
func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	model, err := models.AuditEntryModelFromDomain(entry)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByEntity returns the audit trail for a single entity, newest first
func (r *GormAuditRepository) FindByEntity(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID, filter shared.Filter) ([]audit.Entry, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.AuditEntryModel{}).
		Where("tenant_id = ? AND entity_type = ? AND entity_id = ?", tenantID, entityType, entityID)
	return r.query(base, filter)
}

// FindForTenant returns audit entries for a tenant, newest first
func (r *GormAuditRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]audit.Entry, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.AuditEntryModel{}).
		Where("tenant_id = ?", tenantID)
	return r.query(base, filter)
}

func (r *GormAuditRepository) query(base *gorm.DB, filter shared.Filter) ([]audit.Entry, int64, error) {
	base = applyAuditFilters(base, filter)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base.Session(&gorm.Session{})
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	query = query.Order("created_at DESC")

	var entryModels []models.AuditEntryModel
	if err := query.Find(&entryModels).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]audit.Entry, 0, len(entryModels))
	for i := range entryModels {
		entry, err := entryModels[i].ToDomain()
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, *entry)
	}
	return entries, total, nil
}

func applyAuditFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("actor_uid ILIKE ? OR reason ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "action":
			if s, ok := value.(string); ok {
				value = strings.ToUpper(s)
			}
			query = query.Where("action = ?", value)
		case "actor_uid":
			query = query.Where("actor_uid = ?", value)
		case "entity_type":
			query = query.Where("entity_type = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormAuditRepository implements audit.Repository
var _ audit.Repository = (*GormAuditRepository)(nil)
