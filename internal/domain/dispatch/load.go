package dispatch

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tms/backend/internal/domain/fleet"
	"github.com/tms/backend/internal/domain/partner"
	"github.com/tms/backend/internal/domain/shared"
)

// LoadStatus represents the lifecycle status of a load
type LoadStatus string

const (
	LoadStatusAvailable  LoadStatus = "available"
	LoadStatusDispatched LoadStatus = "dispatched"
	LoadStatusInTransit  LoadStatus = "in_transit"
	LoadStatusDelivered  LoadStatus = "delivered"
	LoadStatusCompleted  LoadStatus = "completed"
	LoadStatusCancelled  LoadStatus = "cancelled"
	LoadStatusTONU       LoadStatus = "tonu"
)

// IsValid checks if the status is a valid LoadStatus
func (s LoadStatus) IsValid() bool {
	switch s {
	case LoadStatusAvailable, LoadStatusDispatched, LoadStatusInTransit,
		LoadStatusDelivered, LoadStatusCompleted, LoadStatusCancelled, LoadStatusTONU:
		return true
	}
	return false
}

// String returns the string representation of LoadStatus
func (s LoadStatus) String() string {
	return string(s)
}

// IsLocked returns true when the status places the load in the reason-gated
// adjustment regime
func (s LoadStatus) IsLocked() bool {
	return s == LoadStatusDelivered || s == LoadStatusCompleted
}

// CanTransitionTo checks if the status can transition to the target status
// through the normal dispatch flow. Reverting a delivered/completed load is
// not a flow transition; it is a material change subject to the lock policy.
func (s LoadStatus) CanTransitionTo(target LoadStatus) bool {
	switch s {
	case LoadStatusAvailable:
		return target == LoadStatusDispatched || target == LoadStatusCancelled || target == LoadStatusTONU
	case LoadStatusDispatched:
		return target == LoadStatusInTransit || target == LoadStatusCancelled || target == LoadStatusTONU
	case LoadStatusInTransit:
		return target == LoadStatusDelivered || target == LoadStatusCancelled
	case LoadStatusDelivered:
		return target == LoadStatusCompleted
	case LoadStatusCompleted, LoadStatusCancelled, LoadStatusTONU:
		return false // Terminal for the normal flow
	}
	return false
}

// FSCType represents the fuel surcharge calculation basis
type FSCType string

const (
	FSCTypePercentage FSCType = "percentage"
	FSCTypePerMile    FSCType = "per_mile"
	FSCTypeFlat       FSCType = "flat"
)

// IsValid checks if the value is a valid FSCType
func (f FSCType) IsValid() bool {
	switch f {
	case FSCTypePercentage, FSCTypePerMile, FSCTypeFlat:
		return true
	}
	return false
}

// AccessorialInputs holds the raw accessorial flags and rate/quantity pairs.
// Each flag is authoritative: when off, the amount is zero no matter what the
// stale quantity and rate fields say.
type AccessorialInputs struct {
	HasDetention   bool
	DetentionHours decimal.Decimal
	DetentionRate  decimal.Decimal

	HasLayover  bool
	LayoverDays decimal.Decimal
	LayoverRate decimal.Decimal

	HasLumper bool
	LumperFee decimal.Decimal

	HasFSC  bool
	FSCType FSCType
	FSCRate decimal.Decimal

	HasTONU bool
	TONUFee decimal.Decimal

	OtherAccessorials decimal.Decimal
}

// DriverSlot holds the assignment and pay configuration for one driver
// position on a load. Overrides take precedence over the driver's profile
// defaults; a nil override falls through to the profile.
type DriverSlot struct {
	DriverID        *uuid.UUID
	DriverName      string
	PayTypeOverride *fleet.PayType
	PayRateOverride *decimal.Decimal
}

// IsAssigned returns true when a driver occupies the slot
func (s DriverSlot) IsAssigned() bool {
	return s.DriverID != nil && *s.DriverID != uuid.Nil
}

// DerivedFinancials holds every money figure the calculation cascade produces.
// These fields are never hand-edited; they are recomputed whenever any input
// they depend on changes.
type DerivedFinancials struct {
	DetentionAmount   decimal.Decimal
	LayoverAmount     decimal.Decimal
	LumperAmount      decimal.Decimal
	FSCAmount         decimal.Decimal
	TONUAmount        decimal.Decimal
	TotalAccessorials decimal.Decimal
	GrandTotal        decimal.Decimal

	DriverBasePay      decimal.Decimal
	DriverDetentionPay decimal.Decimal
	DriverLayoverPay   decimal.Decimal
	DriverTotalGross   decimal.Decimal
	Driver2Earnings    decimal.Decimal
	TotalDriverPay     decimal.Decimal

	DispatcherCommissionAmount decimal.Decimal

	FactoringFee   decimal.Decimal
	FactoredAmount decimal.Decimal
}

// Load represents a single shipment/haul record: route, rate, assignments,
// accessorials, and the derived money figures computed from them.
type Load struct {
	shared.TenantAggregateRoot
	LoadNumber string

	// Route and booking inputs
	Rate         decimal.Decimal
	Miles        decimal.Decimal
	OriginCity   string
	OriginState  string
	DestCity     string
	DestState    string
	PickupDate   *time.Time
	DeliveryDate *time.Time
	Status       LoadStatus
	CustomerName string

	// Assignments
	Driver       DriverSlot
	Driver2      DriverSlot
	IsTeamLoad   bool
	DispatcherID *uuid.UUID
	BrokerID     *uuid.UUID
	BrokerName   string
	TruckID      *uuid.UUID
	TrailerID    *uuid.UUID

	// Accessorial inputs
	Accessorials AccessorialInputs

	// Factoring inputs
	IsFactored          bool
	FactoringCompanyID  *uuid.UUID
	FactoringFeePercent *decimal.Decimal // load-level override of the company default
	FactoredDate        *time.Time

	// Derived outputs
	Financials DerivedFinancials

	Notes string
}

// CalculationContext carries the collaborator profiles the calculation
// cascade resolves rates from
type CalculationContext struct {
	PrimaryDriver    *fleet.Driver
	SecondDriver     *fleet.Driver
	Dispatcher       *fleet.Dispatcher
	FactoringCompany *partner.FactoringCompany
}

// NewLoad creates a new load in available status with all derived fields at
// their computed initial values
func NewLoad(tenantID uuid.UUID, loadNumber string, rate, miles decimal.Decimal) (*Load, error) {
	if loadNumber == "" {
		return nil, shared.NewDomainError("INVALID_LOAD_NUMBER", "Load number cannot be empty")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Load rate cannot be negative")
	}
	if miles.IsNegative() {
		return nil, shared.NewDomainError("INVALID_MILES", "Load miles cannot be negative")
	}

	load := &Load{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		LoadNumber:          loadNumber,
		Rate:                rate,
		Miles:               miles,
		Status:              LoadStatusAvailable,
	}

	if _, err := load.RecalculateFinancials(CalculationContext{}); err != nil {
		return nil, err
	}

	load.AddDomainEvent(NewLoadCreatedEvent(load))

	return load, nil
}

// RecalculateFinancials runs the full calculation cascade in dependency
// order: accessorials, totals, driver pay, dispatcher commission, factoring.
// It is the only code path allowed to write derived fields, and it is
// idempotent: re-running it on unchanged inputs yields identical outputs.
// Configuration problems (missing FSC type, missing factoring fee) default
// the affected amount to zero and come back as warnings.
func (l *Load) RecalculateFinancials(ctx CalculationContext) ([]Warning, error) {
	var warnings []Warning

	accessorials, accWarnings, err := CalculateAccessorials(l.Accessorials, l.Rate, l.Miles)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, accWarnings...)

	totals := CalculateTotals(l.Rate, accessorials, l.Accessorials.OtherAccessorials)

	pay, payErr := l.calculateDriverPay(ctx, accessorials)
	if payErr != nil {
		return nil, payErr
	}

	commission, commWarnings := l.calculateCommission(ctx)
	warnings = append(warnings, commWarnings...)

	factoring, factWarnings := l.calculateFactoring(ctx, totals.GrandTotal)
	warnings = append(warnings, factWarnings...)

	l.Financials = DerivedFinancials{
		DetentionAmount:   accessorials.Detention,
		LayoverAmount:     accessorials.Layover,
		LumperAmount:      accessorials.Lumper,
		FSCAmount:         accessorials.FSC,
		TONUAmount:        accessorials.TONU,
		TotalAccessorials: totals.TotalAccessorials,
		GrandTotal:        totals.GrandTotal,

		DriverBasePay:      pay.Primary.BasePay,
		DriverDetentionPay: pay.Primary.DetentionPay,
		DriverLayoverPay:   pay.Primary.LayoverPay,
		DriverTotalGross:   pay.Primary.TotalGross,
		Driver2Earnings:    pay.SecondEarnings,
		TotalDriverPay:     pay.TotalDriverPay,

		DispatcherCommissionAmount: commission,

		FactoringFee:   factoring.Fee,
		FactoredAmount: factoring.NetAmount,
	}

	return warnings, nil
}

// driverPayTotals bundles the per-slot results of the driver pay cascade
type driverPayTotals struct {
	Primary        DriverPayResult
	SecondEarnings decimal.Decimal
	TotalDriverPay decimal.Decimal
}

func (l *Load) calculateDriverPay(ctx CalculationContext, accessorials AccessorialAmounts) (driverPayTotals, error) {
	var totals driverPayTotals

	if l.Driver.IsAssigned() {
		slot, err := resolveSlotConfig(l.Driver, ctx.PrimaryDriver)
		if err != nil {
			return totals, err
		}
		primary, err := CalculateDriverPay(slot, l.Rate, l.Miles, accessorials.Detention, accessorials.Layover, true)
		if err != nil {
			return totals, err
		}
		totals.Primary = primary
	}

	if l.IsTeamLoad && l.Driver2.IsAssigned() {
		slot, err := resolveSlotConfig(l.Driver2, ctx.SecondDriver)
		if err != nil {
			return totals, err
		}
		// The second driver earns base pay only. Detention and layover are
		// operational events billed once and paid to the primary driver.
		second, err := CalculateDriverPay(slot, l.Rate, l.Miles, decimal.Zero, decimal.Zero, false)
		if err != nil {
			return totals, err
		}
		totals.SecondEarnings = second.BasePay
	}

	totals.TotalDriverPay = totals.Primary.TotalGross.Add(totals.SecondEarnings)
	return totals, nil
}

func (l *Load) calculateCommission(ctx CalculationContext) (decimal.Decimal, []Warning) {
	if l.DispatcherID == nil || *l.DispatcherID == uuid.Nil || ctx.Dispatcher == nil {
		// No dispatcher selected: the amount is cleared, never left stale.
		return decimal.Zero, nil
	}
	return CalculateDispatcherCommission(ctx.Dispatcher.CommissionType, ctx.Dispatcher.CommissionRate, l.Rate, l.Miles)
}

func (l *Load) calculateFactoring(ctx CalculationContext, grandTotal decimal.Decimal) (FactoringResult, []Warning) {
	if !l.IsFactored {
		return FactoringResult{Fee: decimal.Zero, NetAmount: decimal.Zero}, nil
	}
	return CalculateFactoring(grandTotal, l.FactoringFeePercent, ctx.FactoringCompany)
}

// ClearFactoring toggles factoring off and clears every factoring field in
// one deterministic step, so that no state lingers from a prior toggle-on
func (l *Load) ClearFactoring() {
	l.IsFactored = false
	l.FactoringCompanyID = nil
	l.FactoringFeePercent = nil
	l.FactoredDate = nil
	l.Financials.FactoringFee = decimal.Zero
	l.Financials.FactoredAmount = decimal.Zero
	l.UpdatedAt = time.Now()
}

// TransitionTo moves the load through the normal dispatch flow
func (l *Load) TransitionTo(target LoadStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown load status %q", target))
	}
	if !l.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move load from %s to %s", l.Status, target))
	}

	from := l.Status
	l.Status = target
	l.UpdatedAt = time.Now()

	l.AddDomainEvent(NewLoadStatusChangedEvent(l, from, target))

	return nil
}

// OverrideStatus sets the status outside the normal dispatch flow. This is
// how a delivered or completed load is reverted; the lock policy treats the
// status change as material and demands a reason before it is applied.
func (l *Load) OverrideStatus(target LoadStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown load status %q", target))
	}
	if target == l.Status {
		return nil
	}

	from := l.Status
	l.Status = target
	l.UpdatedAt = time.Now()

	l.AddDomainEvent(NewLoadStatusChangedEvent(l, from, target))

	return nil
}

// IsLocked returns true when the load is in the reason-gated adjustment regime
func (l *Load) IsLocked() bool {
	return l.Status.IsLocked()
}

// Clone returns a deep copy of the load suitable for building a candidate
// snapshot. Pending domain events are not carried over.
func (l *Load) Clone() *Load {
	clone := *l
	clone.ClearDomainEvents()

	if l.PickupDate != nil {
		d := *l.PickupDate
		clone.PickupDate = &d
	}
	if l.DeliveryDate != nil {
		d := *l.DeliveryDate
		clone.DeliveryDate = &d
	}
	if l.FactoredDate != nil {
		d := *l.FactoredDate
		clone.FactoredDate = &d
	}
	clone.Driver = cloneSlot(l.Driver)
	clone.Driver2 = cloneSlot(l.Driver2)
	clone.DispatcherID = cloneUUIDPtr(l.DispatcherID)
	clone.BrokerID = cloneUUIDPtr(l.BrokerID)
	clone.TruckID = cloneUUIDPtr(l.TruckID)
	clone.TrailerID = cloneUUIDPtr(l.TrailerID)
	clone.FactoringCompanyID = cloneUUIDPtr(l.FactoringCompanyID)
	if l.FactoringFeePercent != nil {
		p := *l.FactoringFeePercent
		clone.FactoringFeePercent = &p
	}

	return &clone
}

func cloneSlot(s DriverSlot) DriverSlot {
	out := s
	out.DriverID = cloneUUIDPtr(s.DriverID)
	if s.PayTypeOverride != nil {
		t := *s.PayTypeOverride
		out.PayTypeOverride = &t
	}
	if s.PayRateOverride != nil {
		r := *s.PayRateOverride
		out.PayRateOverride = &r
	}
	return out
}

func cloneUUIDPtr(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
