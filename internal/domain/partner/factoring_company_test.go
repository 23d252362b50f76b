package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFactoringCompany(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates company", func(t *testing.T) {
		c, err := NewFactoringCompany(tenantID, "Apex Capital", decimal.NewFromInt(3))
		require.NoError(t, err)
		assert.True(t, c.FeePercentage.Equal(decimal.NewFromInt(3)))
		assert.False(t, c.IsDefault)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewFactoringCompany(tenantID, "", decimal.NewFromInt(3))
		assert.Error(t, err)
	})

	t.Run("rejects out-of-range fee", func(t *testing.T) {
		_, err := NewFactoringCompany(tenantID, "Apex Capital", decimal.NewFromInt(-1))
		assert.Error(t, err)
		_, err = NewFactoringCompany(tenantID, "Apex Capital", decimal.NewFromInt(101))
		assert.Error(t, err)
	})
}

func TestFactoringCompany_UpdateFeePercentage(t *testing.T) {
	c, err := NewFactoringCompany(uuid.New(), "Apex Capital", decimal.NewFromInt(3))
	require.NoError(t, err)

	require.NoError(t, c.UpdateFeePercentage(decimal.NewFromFloat(2.5)))
	assert.True(t, c.FeePercentage.Equal(decimal.NewFromFloat(2.5)))
	assert.Error(t, c.UpdateFeePercentage(decimal.NewFromInt(150)))
}

func TestFactoringCompany_DefaultFlag(t *testing.T) {
	c, err := NewFactoringCompany(uuid.New(), "Apex Capital", decimal.NewFromInt(3))
	require.NoError(t, err)

	c.MarkDefault()
	assert.True(t, c.IsDefault)
	c.ClearDefault()
	assert.False(t, c.IsDefault)
}

func TestNewBroker(t *testing.T) {
	b, err := NewBroker(uuid.New(), "TQL", "MC-123456")
	require.NoError(t, err)
	assert.True(t, b.IsActive())

	b.Deactivate()
	assert.False(t, b.IsActive())

	_, err = NewBroker(uuid.New(), "", "MC-123456")
	assert.Error(t, err)
}
