package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tms/backend/internal/domain/dispatch"
	"github.com/tms/backend/internal/domain/shared"
)

// newMockLoadRepository creates a GormLoadRepository with a mocked SQL connection
func newMockLoadRepository(t *testing.T) (*GormLoadRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormLoadRepository(gormDB), mock, mockDB
}

func loadRows(loadID, tenantID uuid.UUID, loadNumber string, status dispatch.LoadStatus) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "tenant_id", "version", "load_number", "rate", "miles", "status", "customer_name"}).
		AddRow(loadID, tenantID, 1, loadNumber, decimal.NewFromInt(2500), decimal.NewFromInt(800), status, "Acme Foods")
}

func TestNewGormLoadRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockLoadRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormLoadRepository_FindByID(t *testing.T) {
	t.Run("finds existing load", func(t *testing.T) {
		repo, mock, mockDB := newMockLoadRepository(t)
		defer mockDB.Close()

		loadID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "loads" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(loadID, 1).
			WillReturnRows(loadRows(loadID, tenantID, "L-2026-00001", dispatch.LoadStatusAvailable))

		load, err := repo.FindByID(context.Background(), loadID)

		assert.NoError(t, err)
		assert.NotNil(t, load)
		assert.Equal(t, loadID, load.ID)
		assert.Equal(t, "L-2026-00001", load.LoadNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent load", func(t *testing.T) {
		repo, mock, mockDB := newMockLoadRepository(t)
		defer mockDB.Close()

		loadID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "loads" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(loadID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		load, err := repo.FindByID(context.Background(), loadID)

		assert.Error(t, err)
		assert.Nil(t, load)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLoadRepository_FindByIDForTenant(t *testing.T) {
	t.Run("finds load within tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockLoadRepository(t)
		defer mockDB.Close()

		loadID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "loads" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, loadID, 1).
			WillReturnRows(loadRows(loadID, tenantID, "L-2026-00001", dispatch.LoadStatusDelivered))

		load, err := repo.FindByIDForTenant(context.Background(), tenantID, loadID)

		assert.NoError(t, err)
		assert.NotNil(t, load)
		assert.Equal(t, tenantID, load.TenantID)
		assert.Equal(t, dispatch.LoadStatusDelivered, load.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("does not leak loads across tenants", func(t *testing.T) {
		repo, mock, mockDB := newMockLoadRepository(t)
		defer mockDB.Close()

		loadID := uuid.New()
		otherTenant := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "loads" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(otherTenant, loadID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		load, err := repo.FindByIDForTenant(context.Background(), otherTenant, loadID)

		assert.Nil(t, load)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLoadRepository_FindByLoadNumber(t *testing.T) {
	t.Run("finds load by number", func(t *testing.T) {
		repo, mock, mockDB := newMockLoadRepository(t)
		defer mockDB.Close()

		loadID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "loads" WHERE tenant_id = \$1 AND load_number = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, "L-2026-00042", 1).
			WillReturnRows(loadRows(loadID, tenantID, "L-2026-00042", dispatch.LoadStatusInTransit))

		load, err := repo.FindByLoadNumber(context.Background(), tenantID, "L-2026-00042")

		assert.NoError(t, err)
		assert.NotNil(t, load)
		assert.Equal(t, "L-2026-00042", load.LoadNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLoadRepository_FindAllForTenant(t *testing.T) {
	t.Run("applies default ordering and pagination", func(t *testing.T) {
		repo, mock, mockDB := newMockLoadRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "loads" WHERE tenant_id = \$1 .* ORDER BY created_at DESC LIMIT .* OFFSET .*`).
			WillReturnRows(loadRows(uuid.New(), tenantID, "L-2026-00001", dispatch.LoadStatusAvailable))

		loads, err := repo.FindAllForTenant(context.Background(), tenantID, shared.Filter{
			Page: 2, PageSize: 20,
		})

		assert.NoError(t, err)
		assert.Len(t, loads, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies status and date filters", func(t *testing.T) {
		repo, mock, mockDB := newMockLoadRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "loads" WHERE tenant_id = \$1 AND status IN \(\$2,\$3\) AND pickup_date >= \$4`).
			WillReturnRows(loadRows(uuid.New(), tenantID, "L-2026-00010", dispatch.LoadStatusDelivered))

		loads, err := repo.FindAllForTenant(context.Background(), tenantID, shared.Filter{
			Filters: map[string]interface{}{
				"statuses":   []string{"delivered", "completed"},
				"start_date": time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			},
		})

		assert.NoError(t, err)
		assert.Len(t, loads, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLoadRepository_FindByDriver(t *testing.T) {
	t.Run("matches either driver slot", func(t *testing.T) {
		repo, mock, mockDB := newMockLoadRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		driverID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "loads" WHERE tenant_id = \$1 AND \(driver_id = \$2 OR driver2_id = \$3\)`).
			WillReturnRows(loadRows(uuid.New(), tenantID, "L-2026-00003", dispatch.LoadStatusDispatched))

		loads, err := repo.FindByDriver(context.Background(), tenantID, driverID, shared.Filter{})

		assert.NoError(t, err)
		assert.Len(t, loads, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLoadRepository_SaveWithLock(t *testing.T) {
	newLoad := func(tenantID uuid.UUID) *dispatch.Load {
		load, err := dispatch.NewLoad(tenantID, "L-2026-00001", decimal.NewFromInt(2500), decimal.NewFromInt(800))
		require.NoError(t, err)
		return load
	}

	t.Run("bumps version on success", func(t *testing.T) {
		repo, mock, mockDB := newMockLoadRepository(t)
		defer mockDB.Close()

		load := newLoad(uuid.New())
		load.Version = 3

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "loads" WHERE id = \$1 LIMIT \$2`).
			WithArgs(load.ID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(3))
		mock.ExpectExec(`UPDATE "loads" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.SaveWithLock(context.Background(), load)

		assert.NoError(t, err)
		assert.Equal(t, 4, load.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects stale version", func(t *testing.T) {
		repo, mock, mockDB := newMockLoadRepository(t)
		defer mockDB.Close()

		load := newLoad(uuid.New())
		load.Version = 2

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "loads" WHERE id = \$1 LIMIT \$2`).
			WithArgs(load.ID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(5))
		mock.ExpectRollback()

		err := repo.SaveWithLock(context.Background(), load)

		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.Equal(t, 2, load.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("detects concurrent update between read and write", func(t *testing.T) {
		repo, mock, mockDB := newMockLoadRepository(t)
		defer mockDB.Close()

		load := newLoad(uuid.New())
		load.Version = 1

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "loads" WHERE id = \$1 LIMIT \$2`).
			WithArgs(load.ID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1))
		mock.ExpectExec(`UPDATE "loads" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.SaveWithLock(context.Background(), load)

		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deleted load surfaces not found, not a conflict", func(t *testing.T) {
		repo, mock, mockDB := newMockLoadRepository(t)
		defer mockDB.Close()

		load := newLoad(uuid.New())
		load.Version = 2

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "loads" WHERE id = \$1 LIMIT \$2`).
			WithArgs(load.ID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"version"}))
		mock.ExpectRollback()

		err := repo.SaveWithLock(context.Background(), load)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.Equal(t, 2, load.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLoadRepository_DeleteForTenant(t *testing.T) {
	t.Run("deletes load within tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockLoadRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		loadID := uuid.New()

		mock.ExpectExec(`DELETE FROM "loads" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, loadID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteForTenant(context.Background(), tenantID, loadID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent load", func(t *testing.T) {
		repo, mock, mockDB := newMockLoadRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "loads" WHERE tenant_id = \$1 AND id = \$2`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteForTenant(context.Background(), uuid.New(), uuid.New())

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLoadRepository_CountByStatus(t *testing.T) {
	t.Run("counts loads by status", func(t *testing.T) {
		repo, mock, mockDB := newMockLoadRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "loads" WHERE tenant_id = \$1 AND status = \$2`).
			WithArgs(tenantID, dispatch.LoadStatusDelivered).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))

		count, err := repo.CountByStatus(context.Background(), tenantID, dispatch.LoadStatusDelivered)

		assert.NoError(t, err)
		assert.Equal(t, int64(6), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLoadRepository_GenerateLoadNumber(t *testing.T) {
	year := time.Now().Year()

	t.Run("starts at 00001 when no loads exist", func(t *testing.T) {
		repo, mock, mockDB := newMockLoadRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "loads" WHERE tenant_id = \$1 AND load_number LIKE \$2`).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "loads" WHERE tenant_id = \$1 AND load_number = \$2`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		loadNumber, err := repo.GenerateLoadNumber(context.Background(), tenantID)

		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("L-%d-00001", year), loadNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("increments past the highest existing number", func(t *testing.T) {
		repo, mock, mockDB := newMockLoadRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "loads" WHERE tenant_id = \$1 AND load_number LIKE \$2`).
			WillReturnRows(loadRows(uuid.New(), tenantID, fmt.Sprintf("L-%d-00041", year), dispatch.LoadStatusCompleted))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "loads" WHERE tenant_id = \$1 AND load_number = \$2`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		loadNumber, err := repo.GenerateLoadNumber(context.Background(), tenantID)

		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("L-%d-00042", year), loadNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLoadRepository_InterfaceCompliance(t *testing.T) {
	t.Run("implements LoadRepository interface", func(t *testing.T) {
		repo, _, mockDB := newMockLoadRepository(t)
		defer mockDB.Close()

		var _ dispatch.LoadRepository = repo
	})
}
