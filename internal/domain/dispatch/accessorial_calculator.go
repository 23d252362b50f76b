package dispatch

import (
	"github.com/shopspring/decimal"

	"github.com/tms/backend/internal/domain/shared"
)

// Warning is a non-fatal condition surfaced by a calculator. The affected
// amount defaults to zero; the caller decides whether to block or just show
// the condition to the user.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AccessorialAmounts holds the computed amount per accessorial type
type AccessorialAmounts struct {
	Detention decimal.Decimal
	Layover   decimal.Decimal
	Lumper    decimal.Decimal
	FSC       decimal.Decimal
	TONU      decimal.Decimal
}

// CalculateAccessorials computes detention, layover, lumper, fuel-surcharge
// and TONU amounts from their rate/quantity inputs. The per-type flag is
// authoritative: a disabled accessorial contributes zero regardless of stale
// quantity or rate values. Negative quantities and rates are rejected, not
// clamped. FSC percentage is applied to the load's base rate, never the
// grand total, which would be circular.
func CalculateAccessorials(in AccessorialInputs, rate, miles decimal.Decimal) (AccessorialAmounts, []Warning, error) {
	amounts := AccessorialAmounts{
		Detention: decimal.Zero,
		Layover:   decimal.Zero,
		Lumper:    decimal.Zero,
		FSC:       decimal.Zero,
		TONU:      decimal.Zero,
	}
	var warnings []Warning

	if in.HasDetention {
		if in.DetentionHours.IsNegative() {
			return amounts, nil, shared.NewDomainError("INVALID_DETENTION_HOURS", "Detention hours cannot be negative")
		}
		if in.DetentionRate.IsNegative() {
			return amounts, nil, shared.NewDomainError("INVALID_DETENTION_RATE", "Detention rate cannot be negative")
		}
		amounts.Detention = in.DetentionHours.Mul(in.DetentionRate)
	}

	if in.HasLayover {
		if in.LayoverDays.IsNegative() {
			return amounts, nil, shared.NewDomainError("INVALID_LAYOVER_DAYS", "Layover days cannot be negative")
		}
		if in.LayoverRate.IsNegative() {
			return amounts, nil, shared.NewDomainError("INVALID_LAYOVER_RATE", "Layover rate cannot be negative")
		}
		amounts.Layover = in.LayoverDays.Mul(in.LayoverRate)
	}

	if in.HasLumper {
		if in.LumperFee.IsNegative() {
			return amounts, nil, shared.NewDomainError("INVALID_LUMPER_FEE", "Lumper fee cannot be negative")
		}
		amounts.Lumper = in.LumperFee
	}

	if in.HasFSC {
		if in.FSCRate.IsNegative() {
			return amounts, nil, shared.NewDomainError("INVALID_FSC_RATE", "Fuel surcharge rate cannot be negative")
		}
		switch in.FSCType {
		case FSCTypePercentage:
			amounts.FSC = rate.Mul(in.FSCRate).Div(decimal.NewFromInt(100))
		case FSCTypePerMile:
			amounts.FSC = miles.Mul(in.FSCRate)
		case FSCTypeFlat:
			amounts.FSC = in.FSCRate
		default:
			// Enabled FSC with no calculation basis is a configuration
			// problem, not a hard failure: the amount stays zero.
			warnings = append(warnings, Warning{
				Code:    "FSC_TYPE_MISSING",
				Message: "Fuel surcharge is enabled but no calculation type is set; amount defaulted to 0",
			})
		}
	}

	if in.HasTONU {
		if in.TONUFee.IsNegative() {
			return amounts, nil, shared.NewDomainError("INVALID_TONU_FEE", "TONU fee cannot be negative")
		}
		amounts.TONU = in.TONUFee
	}

	return amounts, warnings, nil
}
