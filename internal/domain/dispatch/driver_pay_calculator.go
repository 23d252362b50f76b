package dispatch

import (
	"github.com/shopspring/decimal"

	"github.com/tms/backend/internal/domain/fleet"
	"github.com/tms/backend/internal/domain/shared"
)

// DriverSlotConfig is the effective pay configuration for one driver slot
// after overrides and profile defaults have been resolved
type DriverSlotConfig struct {
	PayType     fleet.PayType
	Percentage  decimal.Decimal // 0-1 fraction; legacy >1 values are normalized before use
	PerMileRate decimal.Decimal
	FlatAmount  decimal.Decimal
}

// DriverPayResult holds the pay components for one driver slot
type DriverPayResult struct {
	BasePay      decimal.Decimal
	DetentionPay decimal.Decimal
	LayoverPay   decimal.Decimal
	TotalGross   decimal.Decimal
}

// resolveSlotConfig merges the load's slot overrides with the driver's
// profile defaults. An override on the slot wins; otherwise the profile
// value is used.
func resolveSlotConfig(slot DriverSlot, profile *fleet.Driver) (DriverSlotConfig, error) {
	var cfg DriverSlotConfig

	switch {
	case slot.PayTypeOverride != nil:
		cfg.PayType = *slot.PayTypeOverride
	case profile != nil:
		cfg.PayType = profile.Payment.Type
	default:
		return cfg, shared.NewDomainError("MISSING_PAY_CONFIG", "Driver slot has no pay type: no override set and no driver profile available")
	}
	if !cfg.PayType.IsValid() {
		return cfg, shared.NewDomainError("INVALID_PAY_TYPE", "Driver slot pay type must be percentage, per_mile or flat_rate")
	}

	if profile != nil {
		cfg.Percentage = profile.Payment.PayPercentage
		cfg.PerMileRate = profile.Payment.PerMileRate
		cfg.FlatAmount = profile.Payment.FlatRate
	}
	if slot.PayRateOverride != nil {
		switch cfg.PayType {
		case fleet.PayTypePercentage:
			cfg.Percentage = *slot.PayRateOverride
		case fleet.PayTypePerMile:
			cfg.PerMileRate = *slot.PayRateOverride
		case fleet.PayTypeFlatRate:
			cfg.FlatAmount = *slot.PayRateOverride
		}
	}

	return cfg, nil
}

// CalculateDriverPay computes one driver slot's pay from the load figures.
// Pay basis:
//   - percentage: rate * payPercentage, with the percentage normalized to the
//     0-1 range (legacy integer-format values stored as e.g. 88 become 0.88)
//   - per_mile: miles * perMileRate
//   - flat_rate: the flat amount, no multiplier
//
// When passThrough is true, detention and layover amounts flow to the driver
// in full: accessorial income is never split by the carrier's percentage cut.
func CalculateDriverPay(cfg DriverSlotConfig, rate, miles, detentionAmount, layoverAmount decimal.Decimal, passThrough bool) (DriverPayResult, error) {
	result := DriverPayResult{
		BasePay:      decimal.Zero,
		DetentionPay: decimal.Zero,
		LayoverPay:   decimal.Zero,
	}

	switch cfg.PayType {
	case fleet.PayTypePercentage:
		if cfg.Percentage.IsNegative() {
			return result, shared.NewDomainError("INVALID_PAY_RATE", "Driver pay percentage cannot be negative")
		}
		result.BasePay = rate.Mul(fleet.NormalizePayPercentage(cfg.Percentage))
	case fleet.PayTypePerMile:
		if cfg.PerMileRate.IsNegative() {
			return result, shared.NewDomainError("INVALID_PAY_RATE", "Driver per-mile rate cannot be negative")
		}
		result.BasePay = miles.Mul(cfg.PerMileRate)
	case fleet.PayTypeFlatRate:
		if cfg.FlatAmount.IsNegative() {
			return result, shared.NewDomainError("INVALID_PAY_RATE", "Driver flat amount cannot be negative")
		}
		result.BasePay = cfg.FlatAmount
	default:
		return result, shared.NewDomainError("INVALID_PAY_TYPE", "Driver slot pay type must be percentage, per_mile or flat_rate")
	}

	if passThrough {
		result.DetentionPay = detentionAmount
		result.LayoverPay = layoverAmount
	}

	result.TotalGross = result.BasePay.Add(result.DetentionPay).Add(result.LayoverPay)
	return result, nil
}
