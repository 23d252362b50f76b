package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tms/backend/internal/domain/audit"
	"github.com/tms/backend/internal/domain/shared"
)

// newMockAuditRepository creates a GormAuditRepository with a mocked SQL connection
func newMockAuditRepository(t *testing.T) (*GormAuditRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormAuditRepository(gormDB), mock, mockDB
}

func auditEntryRows(t *testing.T, entryID, tenantID, entityID uuid.UUID, action audit.Action, reason string) *sqlmock.Rows {
	before, err := json.Marshal(map[string]any{"rate": "2500"})
	require.NoError(t, err)
	after, err := json.Marshal(map[string]any{"rate": "2650"})
	require.NoError(t, err)

	return sqlmock.NewRows([]string{"id", "tenant_id", "actor_uid", "actor_role", "entity_type", "entity_id", "action", "before", "after", "reason", "created_at"}).
		AddRow(entryID, tenantID, "user-1", "dispatcher", "load", entityID, action, before, after, reason, time.Now())
}

func TestGormAuditRepository_Append(t *testing.T) {
	t.Run("inserts an audit entry", func(t *testing.T) {
		repo, mock, mockDB := newMockAuditRepository(t)
		defer mockDB.Close()

		entry, err := audit.NewEntry(
			uuid.New(), "user-1", "dispatcher", "load", uuid.New(),
			audit.ActionAdjustment,
			map[string]any{"rate": "2500"},
			map[string]any{"rate": "2650"},
			"Detention billed after delivery",
		)
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO "audit_entries"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Append(context.Background(), entry)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates insert errors", func(t *testing.T) {
		repo, mock, mockDB := newMockAuditRepository(t)
		defer mockDB.Close()

		entry, err := audit.NewEntry(
			uuid.New(), "user-1", "dispatcher", "load", uuid.New(),
			audit.ActionCreate, nil, map[string]any{"status": "available"}, "",
		)
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO "audit_entries"`).
			WillReturnError(gorm.ErrInvalidDB)

		err = repo.Append(context.Background(), entry)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAuditRepository_FindByEntity(t *testing.T) {
	t.Run("returns entries with total count", func(t *testing.T) {
		repo, mock, mockDB := newMockAuditRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		entityID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_entries" WHERE tenant_id = \$1 AND entity_type = \$2 AND entity_id = \$3`).
			WithArgs(tenantID, "load", entityID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))
		mock.ExpectQuery(`SELECT \* FROM "audit_entries" WHERE tenant_id = \$1 AND entity_type = \$2 AND entity_id = \$3 ORDER BY created_at DESC`).
			WillReturnRows(auditEntryRows(t, uuid.New(), tenantID, entityID, audit.ActionAdjustment, "Lumper receipt arrived late"))

		entries, total, err := repo.FindByEntity(context.Background(), tenantID, "load", entityID, shared.Filter{})

		assert.NoError(t, err)
		assert.Equal(t, int64(9), total)
		require.Len(t, entries, 1)
		assert.Equal(t, audit.ActionAdjustment, entries[0].Action)
		assert.Equal(t, "Lumper receipt arrived late", entries[0].Reason)
		assert.Equal(t, "2500", entries[0].Before["rate"])
		assert.Equal(t, "2650", entries[0].After["rate"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies pagination", func(t *testing.T) {
		repo, mock, mockDB := newMockAuditRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		entityID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_entries"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
		mock.ExpectQuery(`SELECT \* FROM "audit_entries" WHERE .* ORDER BY created_at DESC LIMIT .* OFFSET .*`).
			WillReturnRows(auditEntryRows(t, uuid.New(), tenantID, entityID, audit.ActionUpdate, ""))

		entries, total, err := repo.FindByEntity(context.Background(), tenantID, "load", entityID, shared.Filter{
			Page: 2, PageSize: 10,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(25), total)
		assert.Len(t, entries, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAuditRepository_FindForTenant(t *testing.T) {
	t.Run("normalizes action filter to upper case", func(t *testing.T) {
		repo, mock, mockDB := newMockAuditRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_entries" WHERE tenant_id = \$1 AND action = \$2`).
			WithArgs(tenantID, "ADJUSTMENT").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT \* FROM "audit_entries" WHERE tenant_id = \$1 AND action = \$2 ORDER BY created_at DESC`).
			WithArgs(tenantID, "ADJUSTMENT").
			WillReturnRows(auditEntryRows(t, uuid.New(), tenantID, uuid.New(), audit.ActionAdjustment, "Rate correction per broker"))

		entries, total, err := repo.FindForTenant(context.Background(), tenantID, shared.Filter{
			Filters: map[string]interface{}{"action": "adjustment"},
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, entries, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies date range on recorded time", func(t *testing.T) {
		repo, mock, mockDB := newMockAuditRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_entries" WHERE tenant_id = \$1 AND created_at >= \$2`).
			WithArgs(tenantID, from).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT \* FROM "audit_entries" WHERE tenant_id = \$1 AND created_at >= \$2 ORDER BY created_at DESC`).
			WithArgs(tenantID, from).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		entries, total, err := repo.FindForTenant(context.Background(), tenantID, shared.Filter{
			Filters: map[string]interface{}{"start_date": from},
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, entries)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAuditRepository_InterfaceCompliance(t *testing.T) {
	t.Run("implements audit.Repository interface", func(t *testing.T) {
		repo, _, mockDB := newMockAuditRepository(t)
		defer mockDB.Close()

		var _ audit.Repository = repo
	})
}
