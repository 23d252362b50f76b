package dispatch

import (
	"github.com/shopspring/decimal"

	"github.com/tms/backend/internal/domain/partner"
)

// FactoringResult holds the computed factoring split for a load
type FactoringResult struct {
	Fee       decimal.Decimal
	NetAmount decimal.Decimal
}

// CalculateFactoring computes the factoring fee and net factored amount when
// a load's invoice is sold. The effective fee percentage is the load-level
// override when set, otherwise the factoring company's default. Neither being
// configured is a warning, not a failure: the fee is zero and the carrier
// receives the full grand total.
//
// The fee is rounded to whole cents and the net amount is derived by
// subtraction, so fee + net always equals the grand total exactly.
func CalculateFactoring(grandTotal decimal.Decimal, feeOverride *decimal.Decimal, company *partner.FactoringCompany) (FactoringResult, []Warning) {
	var feePercent decimal.Decimal
	var warnings []Warning

	switch {
	case feeOverride != nil:
		feePercent = *feeOverride
	case company != nil:
		feePercent = company.FeePercentage
	default:
		warnings = append(warnings, Warning{
			Code:    "FACTORING_FEE_MISSING",
			Message: "Load is factored but no fee percentage is configured; fee defaulted to 0",
		})
		feePercent = decimal.Zero
	}

	fee := grandTotal.Mul(feePercent).Div(decimal.NewFromInt(100)).Round(2)
	return FactoringResult{
		Fee:       fee,
		NetAmount: grandTotal.Sub(fee),
	}, warnings
}
