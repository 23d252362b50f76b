package dispatch

import (
	"github.com/shopspring/decimal"

	"github.com/tms/backend/internal/domain/fleet"
)

// CalculateDispatcherCommission computes the commission owed to the booking
// dispatcher. The rate field is overloaded by type:
//   - percentage: rate * commissionRate/100, on the base rate, never the
//     grand total
//   - flat_fee: the rate field holds the flat dollar amount directly
//   - per_mile: miles * commissionRate
//
// An unknown commission type is a configuration problem: the amount defaults
// to zero and the condition is surfaced as a warning.
func CalculateDispatcherCommission(commissionType fleet.CommissionType, commissionRate, rate, miles decimal.Decimal) (decimal.Decimal, []Warning) {
	switch commissionType {
	case fleet.CommissionTypePercentage:
		return rate.Mul(commissionRate).Div(decimal.NewFromInt(100)), nil
	case fleet.CommissionTypeFlatFee:
		return commissionRate, nil
	case fleet.CommissionTypePerMile:
		return miles.Mul(commissionRate), nil
	default:
		return decimal.Zero, []Warning{{
			Code:    "COMMISSION_TYPE_MISSING",
			Message: "Dispatcher is assigned but no commission type is set; amount defaulted to 0",
		}}
	}
}
