package fleet

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePayPercentage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"legacy integer format", "88", "0.88"},
		{"already a fraction", "0.88", "0.88"},
		{"boundary one", "1", "1"},
		{"just above one", "1.5", "0.015"},
		{"zero", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := decimal.NewFromString(tt.raw)
			require.NoError(t, err)
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			assert.True(t, NormalizePayPercentage(raw).Equal(want),
				"got %s, want %s", NormalizePayPercentage(raw), want)
		})
	}
}

func TestNewDriver(t *testing.T) {
	tenantID := uuid.New()

	t.Run("normalizes legacy percentage on creation", func(t *testing.T) {
		driver, err := NewDriver(tenantID, "John Mercer", PaymentConfig{
			Type:          PayTypePercentage,
			PayPercentage: decimal.NewFromInt(88),
		})
		require.NoError(t, err)
		assert.True(t, driver.Payment.PayPercentage.Equal(decimal.NewFromFloat(0.88)))
		assert.Equal(t, DriverStatusActive, driver.Status)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewDriver(tenantID, "", PaymentConfig{Type: PayTypePercentage})
		assert.Error(t, err)
	})

	t.Run("rejects invalid pay type", func(t *testing.T) {
		_, err := NewDriver(tenantID, "John Mercer", PaymentConfig{Type: PayType("hourly")})
		assert.Error(t, err)
	})

	t.Run("rejects negative rates", func(t *testing.T) {
		_, err := NewDriver(tenantID, "John Mercer", PaymentConfig{
			Type:        PayTypePerMile,
			PerMileRate: decimal.NewFromFloat(-0.55),
		})
		assert.Error(t, err)
	})
}

func TestDriver_UpdatePayment(t *testing.T) {
	driver, err := NewDriver(uuid.New(), "John Mercer", PaymentConfig{
		Type:          PayTypePercentage,
		PayPercentage: decimal.NewFromFloat(0.25),
	})
	require.NoError(t, err)

	err = driver.UpdatePayment(PaymentConfig{
		Type:          PayTypePercentage,
		PayPercentage: decimal.NewFromInt(30),
	})
	require.NoError(t, err)
	assert.True(t, driver.Payment.PayPercentage.Equal(decimal.NewFromFloat(0.30)))

	err = driver.UpdatePayment(PaymentConfig{Type: PayType("bogus")})
	assert.Error(t, err)
}

func TestDriver_Lifecycle(t *testing.T) {
	driver, err := NewDriver(uuid.New(), "John Mercer", PaymentConfig{
		Type:        PayTypePerMile,
		PerMileRate: decimal.NewFromFloat(0.55),
	})
	require.NoError(t, err)

	truckID := uuid.New()
	require.NoError(t, driver.AssignTruck(truckID))
	assert.Equal(t, truckID, *driver.CurrentTruckID)
	assert.Error(t, driver.AssignTruck(uuid.Nil))

	driver.Deactivate()
	assert.False(t, driver.IsActive())
	driver.Activate()
	assert.True(t, driver.IsActive())
}

func TestNewDispatcher(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates dispatcher", func(t *testing.T) {
		d, err := NewDispatcher(tenantID, "Sandra Lee", CommissionTypePercentage, decimal.NewFromInt(5))
		require.NoError(t, err)
		assert.Equal(t, CommissionTypePercentage, d.CommissionType)
	})

	t.Run("rejects invalid commission type", func(t *testing.T) {
		_, err := NewDispatcher(tenantID, "Sandra Lee", CommissionType("weekly"), decimal.NewFromInt(5))
		assert.Error(t, err)
	})

	t.Run("rejects negative rate", func(t *testing.T) {
		_, err := NewDispatcher(tenantID, "Sandra Lee", CommissionTypeFlatFee, decimal.NewFromInt(-50))
		assert.Error(t, err)
	})
}
