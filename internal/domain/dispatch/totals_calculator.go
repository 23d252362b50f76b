package dispatch

import "github.com/shopspring/decimal"

// LoadTotals holds the aggregated revenue figures for a load
type LoadTotals struct {
	TotalAccessorials decimal.Decimal
	GrandTotal        decimal.Decimal
}

// CalculateTotals aggregates the accessorial amounts and combines them with
// the base rate. This is the single source of truth for totalAccessorials and
// grandTotal; downstream calculators read these values and never recompute
// them independently.
func CalculateTotals(rate decimal.Decimal, accessorials AccessorialAmounts, otherAccessorials decimal.Decimal) LoadTotals {
	totalAccessorials := accessorials.Detention.
		Add(accessorials.Layover).
		Add(accessorials.Lumper).
		Add(accessorials.FSC).
		Add(accessorials.TONU).
		Add(otherAccessorials)

	return LoadTotals{
		TotalAccessorials: totalAccessorials,
		GrandTotal:        rate.Add(totalAccessorials),
	}
}
