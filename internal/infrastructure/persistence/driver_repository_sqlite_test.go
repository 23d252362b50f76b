package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tms/backend/internal/domain/fleet"
	"github.com/tms/backend/internal/domain/shared"
	"github.com/tms/backend/internal/infrastructure/persistence/models"
)

// Round-trip tests against an in-memory sqlite database. These cover the
// model mapping and query paths that sqlmock cannot verify. The ILIKE search
// path is postgres-only and is covered by the sqlmock tests instead.
func newSqliteDriverRepo(t *testing.T) *GormDriverRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.DriverModel{}))

	return NewGormDriverRepository(db)
}

func newTestDriver(t *testing.T, tenantID uuid.UUID, name string) *fleet.Driver {
	t.Helper()

	driver, err := fleet.NewDriver(tenantID, name, fleet.PaymentConfig{
		Type:          fleet.PayTypePercentage,
		PayPercentage: decimal.RequireFromString("0.25"),
	})
	require.NoError(t, err)
	return driver
}

func TestGormDriverRepository_SqliteRoundTrip(t *testing.T) {
	repo := newSqliteDriverRepo(t)
	ctx := context.Background()
	tenantID := uuid.New()

	driver := newTestDriver(t, tenantID, "John Smith")
	driver.LicenseNumber = "CDL-12345"
	require.NoError(t, repo.Save(ctx, driver))

	t.Run("find by id for tenant", func(t *testing.T) {
		found, err := repo.FindByIDForTenant(ctx, tenantID, driver.ID)
		require.NoError(t, err)
		assert.Equal(t, driver.ID, found.ID)
		assert.Equal(t, "John Smith", found.Name)
		assert.Equal(t, "CDL-12345", found.LicenseNumber)
		assert.Equal(t, fleet.PayTypePercentage, found.Payment.Type)
		assert.True(t, found.Payment.PayPercentage.Equal(decimal.RequireFromString("0.25")))
		assert.Equal(t, fleet.DriverStatusActive, found.Status)
	})

	t.Run("tenant isolation", func(t *testing.T) {
		_, err := repo.FindByIDForTenant(ctx, uuid.New(), driver.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("update persists", func(t *testing.T) {
		driver.Deactivate()
		require.NoError(t, repo.Save(ctx, driver))

		found, err := repo.FindByIDForTenant(ctx, tenantID, driver.ID)
		require.NoError(t, err)
		assert.Equal(t, fleet.DriverStatusInactive, found.Status)
	})
}

func TestGormDriverRepository_SqliteListing(t *testing.T) {
	repo := newSqliteDriverRepo(t)
	ctx := context.Background()
	tenantID := uuid.New()

	active1 := newTestDriver(t, tenantID, "Alice Brown")
	active2 := newTestDriver(t, tenantID, "Bob Green")
	inactive := newTestDriver(t, tenantID, "Carl White")
	inactive.Deactivate()
	other := newTestDriver(t, uuid.New(), "Dora Black")

	for _, d := range []*fleet.Driver{active1, active2, inactive, other} {
		require.NoError(t, repo.Save(ctx, d))
	}

	t.Run("list all for tenant ordered by name", func(t *testing.T) {
		drivers, err := repo.FindAllForTenant(ctx, tenantID, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, drivers, 3)
		assert.Equal(t, "Alice Brown", drivers[0].Name)
		assert.Equal(t, "Bob Green", drivers[1].Name)
		assert.Equal(t, "Carl White", drivers[2].Name)
	})

	t.Run("status filter", func(t *testing.T) {
		drivers, err := repo.FindAllForTenant(ctx, tenantID, shared.Filter{
			Filters: map[string]interface{}{"status": "inactive"},
		})
		require.NoError(t, err)
		require.Len(t, drivers, 1)
		assert.Equal(t, "Carl White", drivers[0].Name)
	})

	t.Run("pagination", func(t *testing.T) {
		drivers, err := repo.FindAllForTenant(ctx, tenantID, shared.Filter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		require.Len(t, drivers, 1)
		assert.Equal(t, "Carl White", drivers[0].Name)
	})

	t.Run("active only", func(t *testing.T) {
		drivers, err := repo.FindActiveForTenant(ctx, tenantID)
		require.NoError(t, err)
		assert.Len(t, drivers, 2)
	})

	t.Run("count scoped to tenant", func(t *testing.T) {
		count, err := repo.Count(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, inactive.ID))
		assert.ErrorIs(t, repo.Delete(ctx, inactive.ID), shared.ErrNotFound)
	})
}
