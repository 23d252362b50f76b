package dispatch

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tms/backend/internal/domain/partner"
)

func TestCalculateFactoring(t *testing.T) {
	company, err := partner.NewFactoringCompany(uuid.New(), "Apex Capital", d("3"))
	require.NoError(t, err)

	t.Run("company default fee", func(t *testing.T) {
		result, warnings := CalculateFactoring(d("1000"), nil, company)
		assert.Empty(t, warnings)
		assert.Equal(t, "30", result.Fee.String())
		assert.Equal(t, "970", result.NetAmount.String())
	})

	t.Run("load override beats company default", func(t *testing.T) {
		override := d("2.5")
		result, _ := CalculateFactoring(d("1000"), &override, company)
		assert.Equal(t, "25", result.Fee.String())
		assert.Equal(t, "975", result.NetAmount.String())
	})

	t.Run("no fee configured warns and charges nothing", func(t *testing.T) {
		result, warnings := CalculateFactoring(d("1000"), nil, nil)
		require.Len(t, warnings, 1)
		assert.Equal(t, "FACTORING_FEE_MISSING", warnings[0].Code)
		assert.True(t, result.Fee.IsZero())
		assert.Equal(t, "1000", result.NetAmount.String())
	})

	t.Run("fee plus net equals grand total to the cent", func(t *testing.T) {
		// A fee percentage that doesn't divide evenly still reconciles
		// because the net is derived by subtraction after cent rounding.
		cases := []struct{ total, pct string }{
			{"1000", "3"},
			{"1234.56", "2.75"},
			{"999.99", "3.333"},
			{"0.01", "3"},
		}
		for _, tc := range cases {
			override := d(tc.pct)
			result, _ := CalculateFactoring(d(tc.total), &override, nil)
			assert.True(t, result.Fee.Add(result.NetAmount).Equal(d(tc.total)),
				"total=%s pct=%s fee=%s net=%s", tc.total, tc.pct, result.Fee, result.NetAmount)
			assert.True(t, result.Fee.Exponent() >= -2, "fee %s not rounded to cents", result.Fee)
		}
	})
}
