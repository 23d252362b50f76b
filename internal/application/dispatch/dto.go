package dispatch

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tms/backend/internal/domain/dispatch"
	"github.com/tms/backend/internal/domain/fleet"
)

// Actor identifies who performed an operation, for the audit trail
type Actor struct {
	UID  string
	Role string
}

// DriverSlotInput assigns a driver to a load slot, optionally overriding the
// driver's profile pay configuration for this load only
type DriverSlotInput struct {
	DriverID        uuid.UUID        `json:"driver_id" binding:"required"`
	PayTypeOverride *fleet.PayType   `json:"pay_type_override" binding:"omitempty,oneof=percentage per_mile flat_rate"`
	PayRateOverride *decimal.Decimal `json:"pay_rate_override"`
}

// AccessorialInput carries the raw accessorial flags and rate/quantity pairs
type AccessorialInput struct {
	HasDetention   bool            `json:"has_detention"`
	DetentionHours decimal.Decimal `json:"detention_hours"`
	DetentionRate  decimal.Decimal `json:"detention_rate"`

	HasLayover  bool            `json:"has_layover"`
	LayoverDays decimal.Decimal `json:"layover_days"`
	LayoverRate decimal.Decimal `json:"layover_rate"`

	HasLumper bool            `json:"has_lumper"`
	LumperFee decimal.Decimal `json:"lumper_fee"`

	HasFSC  bool            `json:"has_fsc"`
	FSCType string          `json:"fsc_type" binding:"omitempty,oneof=percentage per_mile flat"`
	FSCRate decimal.Decimal `json:"fsc_rate"`

	HasTONU bool            `json:"has_tonu"`
	TONUFee decimal.Decimal `json:"tonu_fee"`

	OtherAccessorials decimal.Decimal `json:"other_accessorials"`
}

// FactoringInput carries the factoring toggle and its dependent fields. When
// IsFactored is false every dependent field is cleared no matter what the
// request carries.
type FactoringInput struct {
	IsFactored         bool             `json:"is_factored"`
	FactoringCompanyID *uuid.UUID       `json:"factoring_company_id"`
	FeePercent         *decimal.Decimal `json:"fee_percent"`
	FactoredDate       *time.Time       `json:"factored_date"`
}

// CreateLoadRequest represents a request to create a load
type CreateLoadRequest struct {
	LoadNumber   string          `json:"load_number" binding:"max=50"` // generated when empty
	Rate         decimal.Decimal `json:"rate" binding:"required"`
	Miles        decimal.Decimal `json:"miles"`
	OriginCity   string          `json:"origin_city" binding:"max=100"`
	OriginState  string          `json:"origin_state" binding:"max=2"`
	DestCity     string          `json:"dest_city" binding:"max=100"`
	DestState    string          `json:"dest_state" binding:"max=2"`
	PickupDate   *time.Time      `json:"pickup_date"`
	DeliveryDate *time.Time      `json:"delivery_date"`
	CustomerName string          `json:"customer_name" binding:"max=200"`

	Driver       *DriverSlotInput `json:"driver"`
	Driver2      *DriverSlotInput `json:"driver2"`
	IsTeamLoad   bool             `json:"is_team_load"`
	DispatcherID *uuid.UUID       `json:"dispatcher_id"`
	BrokerID     *uuid.UUID       `json:"broker_id"`
	BrokerName   string           `json:"broker_name" binding:"max=200"`
	TruckID      *uuid.UUID       `json:"truck_id"`
	TrailerID    *uuid.UUID       `json:"trailer_id"`

	Accessorials *AccessorialInput `json:"accessorials"`
	Factoring    *FactoringInput   `json:"factoring"`

	Notes string `json:"notes" binding:"max=2000"`
}

// UpdateLoadRequest represents a partial update to a load. Nil fields are
// left untouched. Reason is required only when the load is locked and a
// material field changes.
type UpdateLoadRequest struct {
	Rate         *decimal.Decimal `json:"rate"`
	Miles        *decimal.Decimal `json:"miles"`
	OriginCity   *string          `json:"origin_city" binding:"omitempty,max=100"`
	OriginState  *string          `json:"origin_state" binding:"omitempty,max=2"`
	DestCity     *string          `json:"dest_city" binding:"omitempty,max=100"`
	DestState    *string          `json:"dest_state" binding:"omitempty,max=2"`
	PickupDate   *time.Time       `json:"pickup_date"`
	DeliveryDate *time.Time       `json:"delivery_date"`
	CustomerName *string          `json:"customer_name" binding:"omitempty,max=200"`

	// Status moves a load outside the normal dispatch flow. On a locked load
	// this is the revert path and is reason-gated like any material change.
	Status *dispatch.LoadStatus `json:"status"`

	Driver       *DriverSlotInput `json:"driver"`
	ClearDriver  bool             `json:"clear_driver"`
	Driver2      *DriverSlotInput `json:"driver2"`
	ClearDriver2 bool             `json:"clear_driver2"`
	IsTeamLoad   *bool            `json:"is_team_load"`
	DispatcherID *uuid.UUID       `json:"dispatcher_id"`
	BrokerID     *uuid.UUID       `json:"broker_id"`
	BrokerName   *string          `json:"broker_name" binding:"omitempty,max=200"`
	TruckID      *uuid.UUID       `json:"truck_id"`
	TrailerID    *uuid.UUID       `json:"trailer_id"`

	Accessorials *AccessorialInput `json:"accessorials"`
	Factoring    *FactoringInput   `json:"factoring"`

	Notes *string `json:"notes" binding:"omitempty,max=2000"`

	Reason string `json:"reason" binding:"max=500"`
}

// ChangeLoadStatusRequest represents a request to move a load through the
// dispatch flow
type ChangeLoadStatusRequest struct {
	Status dispatch.LoadStatus `json:"status" binding:"required"`
}

// LoadListFilter represents filter options for load listing
type LoadListFilter struct {
	Search       string               `form:"search"`
	Status       *dispatch.LoadStatus `form:"status"`
	DriverID     *uuid.UUID           `form:"driver_id"`
	DispatcherID *uuid.UUID           `form:"dispatcher_id"`
	BrokerID     *uuid.UUID           `form:"broker_id"`
	StartDate    *time.Time           `form:"start_date"`
	EndDate      *time.Time           `form:"end_date"`
	Page         int                  `form:"page" binding:"min=0"`
	PageSize     int                  `form:"page_size" binding:"min=0,max=100"`
	OrderBy      string               `form:"order_by"`
	OrderDir     string               `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// DriverSlotResponse represents one driver slot in API responses
type DriverSlotResponse struct {
	DriverID        *uuid.UUID       `json:"driver_id,omitempty"`
	DriverName      string           `json:"driver_name,omitempty"`
	PayTypeOverride *fleet.PayType   `json:"pay_type_override,omitempty"`
	PayRateOverride *decimal.Decimal `json:"pay_rate_override,omitempty"`
}

// FinancialsResponse represents the derived money figures in API responses
type FinancialsResponse struct {
	DetentionAmount   decimal.Decimal `json:"detention_amount"`
	LayoverAmount     decimal.Decimal `json:"layover_amount"`
	LumperAmount      decimal.Decimal `json:"lumper_amount"`
	FSCAmount         decimal.Decimal `json:"fsc_amount"`
	TONUAmount        decimal.Decimal `json:"tonu_amount"`
	TotalAccessorials decimal.Decimal `json:"total_accessorials"`
	GrandTotal        decimal.Decimal `json:"grand_total"`

	DriverBasePay      decimal.Decimal `json:"driver_base_pay"`
	DriverDetentionPay decimal.Decimal `json:"driver_detention_pay"`
	DriverLayoverPay   decimal.Decimal `json:"driver_layover_pay"`
	DriverTotalGross   decimal.Decimal `json:"driver_total_gross"`
	Driver2Earnings    decimal.Decimal `json:"driver2_earnings"`
	TotalDriverPay     decimal.Decimal `json:"total_driver_pay"`

	DispatcherCommissionAmount decimal.Decimal `json:"dispatcher_commission_amount"`

	FactoringFee   decimal.Decimal `json:"factoring_fee"`
	FactoredAmount decimal.Decimal `json:"factored_amount"`
}

// AccessorialResponse represents the accessorial inputs in API responses
type AccessorialResponse struct {
	HasDetention   bool            `json:"has_detention"`
	DetentionHours decimal.Decimal `json:"detention_hours"`
	DetentionRate  decimal.Decimal `json:"detention_rate"`

	HasLayover  bool            `json:"has_layover"`
	LayoverDays decimal.Decimal `json:"layover_days"`
	LayoverRate decimal.Decimal `json:"layover_rate"`

	HasLumper bool            `json:"has_lumper"`
	LumperFee decimal.Decimal `json:"lumper_fee"`

	HasFSC  bool            `json:"has_fsc"`
	FSCType string          `json:"fsc_type,omitempty"`
	FSCRate decimal.Decimal `json:"fsc_rate"`

	HasTONU bool            `json:"has_tonu"`
	TONUFee decimal.Decimal `json:"tonu_fee"`

	OtherAccessorials decimal.Decimal `json:"other_accessorials"`
}

// LoadResponse represents a load in API responses
type LoadResponse struct {
	ID           uuid.UUID       `json:"id"`
	TenantID     uuid.UUID       `json:"tenant_id"`
	LoadNumber   string          `json:"load_number"`
	Rate         decimal.Decimal `json:"rate"`
	Miles        decimal.Decimal `json:"miles"`
	OriginCity   string          `json:"origin_city,omitempty"`
	OriginState  string          `json:"origin_state,omitempty"`
	DestCity     string          `json:"dest_city,omitempty"`
	DestState    string          `json:"dest_state,omitempty"`
	PickupDate   *time.Time      `json:"pickup_date,omitempty"`
	DeliveryDate *time.Time      `json:"delivery_date,omitempty"`
	Status       string          `json:"status"`
	CustomerName string          `json:"customer_name,omitempty"`

	Driver       DriverSlotResponse `json:"driver"`
	Driver2      DriverSlotResponse `json:"driver2"`
	IsTeamLoad   bool               `json:"is_team_load"`
	DispatcherID *uuid.UUID         `json:"dispatcher_id,omitempty"`
	BrokerID     *uuid.UUID         `json:"broker_id,omitempty"`
	BrokerName   string             `json:"broker_name,omitempty"`
	TruckID      *uuid.UUID         `json:"truck_id,omitempty"`
	TrailerID    *uuid.UUID         `json:"trailer_id,omitempty"`

	Accessorials AccessorialResponse `json:"accessorials"`

	IsFactored          bool             `json:"is_factored"`
	FactoringCompanyID  *uuid.UUID       `json:"factoring_company_id,omitempty"`
	FactoringFeePercent *decimal.Decimal `json:"factoring_fee_percent,omitempty"`
	FactoredDate        *time.Time       `json:"factored_date,omitempty"`

	Financials FinancialsResponse `json:"financials"`

	Notes     string             `json:"notes,omitempty"`
	Warnings  []dispatch.Warning `json:"warnings,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	Version   int                `json:"version"`
}

// LoadListItemResponse represents a load in list responses (less detail)
type LoadListItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	LoadNumber   string          `json:"load_number"`
	Rate         decimal.Decimal `json:"rate"`
	Miles        decimal.Decimal `json:"miles"`
	OriginCity   string          `json:"origin_city,omitempty"`
	OriginState  string          `json:"origin_state,omitempty"`
	DestCity     string          `json:"dest_city,omitempty"`
	DestState    string          `json:"dest_state,omitempty"`
	PickupDate   *time.Time      `json:"pickup_date,omitempty"`
	DeliveryDate *time.Time      `json:"delivery_date,omitempty"`
	Status       string          `json:"status"`
	CustomerName string          `json:"customer_name,omitempty"`
	DriverName   string          `json:"driver_name,omitempty"`
	BrokerName   string          `json:"broker_name,omitempty"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	IsFactored   bool            `json:"is_factored"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// FieldChangeResponse represents one field's before/after values
type FieldChangeResponse struct {
	Before any `json:"before"`
	After  any `json:"after"`
}

// UpdateEvaluationResponse represents a dry-run of the lock policy against a
// proposed update
type UpdateEvaluationResponse struct {
	Allowed        bool                           `json:"allowed"`
	RequiresReason bool                           `json:"requires_reason"`
	ChangedFields  []string                       `json:"changed_fields,omitempty"`
	Diff           map[string]FieldChangeResponse `json:"diff,omitempty"`
	Action         string                         `json:"action"`
}

// LoadStatusSummary represents load counts by status for a tenant
type LoadStatusSummary struct {
	Available  int64 `json:"available"`
	Dispatched int64 `json:"dispatched"`
	InTransit  int64 `json:"in_transit"`
	Delivered  int64 `json:"delivered"`
	Completed  int64 `json:"completed"`
	Cancelled  int64 `json:"cancelled"`
	TONU       int64 `json:"tonu"`
	Total      int64 `json:"total"`
}

// ToLoadResponse converts a domain load to its response form
func ToLoadResponse(l *dispatch.Load) LoadResponse {
	return LoadResponse{
		ID:           l.ID,
		TenantID:     l.TenantID,
		LoadNumber:   l.LoadNumber,
		Rate:         l.Rate,
		Miles:        l.Miles,
		OriginCity:   l.OriginCity,
		OriginState:  l.OriginState,
		DestCity:     l.DestCity,
		DestState:    l.DestState,
		PickupDate:   l.PickupDate,
		DeliveryDate: l.DeliveryDate,
		Status:       l.Status.String(),
		CustomerName: l.CustomerName,

		Driver:       toDriverSlotResponse(l.Driver),
		Driver2:      toDriverSlotResponse(l.Driver2),
		IsTeamLoad:   l.IsTeamLoad,
		DispatcherID: l.DispatcherID,
		BrokerID:     l.BrokerID,
		BrokerName:   l.BrokerName,
		TruckID:      l.TruckID,
		TrailerID:    l.TrailerID,

		Accessorials: toAccessorialResponse(l.Accessorials),

		IsFactored:          l.IsFactored,
		FactoringCompanyID:  l.FactoringCompanyID,
		FactoringFeePercent: l.FactoringFeePercent,
		FactoredDate:        l.FactoredDate,

		Financials: toFinancialsResponse(l.Financials),

		Notes:     l.Notes,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
		Version:   l.Version,
	}
}

// ToLoadListItemResponses converts a slice of domain loads to list responses
func ToLoadListItemResponses(loads []dispatch.Load) []LoadListItemResponse {
	responses := make([]LoadListItemResponse, len(loads))
	for i := range loads {
		l := &loads[i]
		responses[i] = LoadListItemResponse{
			ID:           l.ID,
			LoadNumber:   l.LoadNumber,
			Rate:         l.Rate,
			Miles:        l.Miles,
			OriginCity:   l.OriginCity,
			OriginState:  l.OriginState,
			DestCity:     l.DestCity,
			DestState:    l.DestState,
			PickupDate:   l.PickupDate,
			DeliveryDate: l.DeliveryDate,
			Status:       l.Status.String(),
			CustomerName: l.CustomerName,
			DriverName:   l.Driver.DriverName,
			BrokerName:   l.BrokerName,
			GrandTotal:   l.Financials.GrandTotal,
			IsFactored:   l.IsFactored,
			CreatedAt:    l.CreatedAt,
			UpdatedAt:    l.UpdatedAt,
		}
	}
	return responses
}

// ToUpdateEvaluationResponse converts a lock policy evaluation to its
// response form
func ToUpdateEvaluationResponse(eval dispatch.UpdateEvaluation) UpdateEvaluationResponse {
	diff := make(map[string]FieldChangeResponse, len(eval.Diff))
	for field, change := range eval.Diff {
		diff[field] = FieldChangeResponse{Before: change.Before, After: change.After}
	}
	return UpdateEvaluationResponse{
		Allowed:        eval.Allowed,
		RequiresReason: eval.RequiresReason,
		ChangedFields:  eval.ChangedFields,
		Diff:           diff,
		Action:         eval.Action.String(),
	}
}

func toDriverSlotResponse(s dispatch.DriverSlot) DriverSlotResponse {
	return DriverSlotResponse{
		DriverID:        s.DriverID,
		DriverName:      s.DriverName,
		PayTypeOverride: s.PayTypeOverride,
		PayRateOverride: s.PayRateOverride,
	}
}

func toAccessorialResponse(in dispatch.AccessorialInputs) AccessorialResponse {
	return AccessorialResponse{
		HasDetention:   in.HasDetention,
		DetentionHours: in.DetentionHours,
		DetentionRate:  in.DetentionRate,

		HasLayover:  in.HasLayover,
		LayoverDays: in.LayoverDays,
		LayoverRate: in.LayoverRate,

		HasLumper: in.HasLumper,
		LumperFee: in.LumperFee,

		HasFSC:  in.HasFSC,
		FSCType: string(in.FSCType),
		FSCRate: in.FSCRate,

		HasTONU: in.HasTONU,
		TONUFee: in.TONUFee,

		OtherAccessorials: in.OtherAccessorials,
	}
}

func toFinancialsResponse(f dispatch.DerivedFinancials) FinancialsResponse {
	return FinancialsResponse{
		DetentionAmount:   f.DetentionAmount,
		LayoverAmount:     f.LayoverAmount,
		LumperAmount:      f.LumperAmount,
		FSCAmount:         f.FSCAmount,
		TONUAmount:        f.TONUAmount,
		TotalAccessorials: f.TotalAccessorials,
		GrandTotal:        f.GrandTotal,

		DriverBasePay:      f.DriverBasePay,
		DriverDetentionPay: f.DriverDetentionPay,
		DriverLayoverPay:   f.DriverLayoverPay,
		DriverTotalGross:   f.DriverTotalGross,
		Driver2Earnings:    f.Driver2Earnings,
		TotalDriverPay:     f.TotalDriverPay,

		DispatcherCommissionAmount: f.DispatcherCommissionAmount,

		FactoringFee:   f.FactoringFee,
		FactoredAmount: f.FactoredAmount,
	}
}

func (in AccessorialInput) toDomain() dispatch.AccessorialInputs {
	return dispatch.AccessorialInputs{
		HasDetention:   in.HasDetention,
		DetentionHours: in.DetentionHours,
		DetentionRate:  in.DetentionRate,

		HasLayover:  in.HasLayover,
		LayoverDays: in.LayoverDays,
		LayoverRate: in.LayoverRate,

		HasLumper: in.HasLumper,
		LumperFee: in.LumperFee,

		HasFSC:  in.HasFSC,
		FSCType: dispatch.FSCType(in.FSCType),
		FSCRate: in.FSCRate,

		HasTONU: in.HasTONU,
		TONUFee: in.TONUFee,

		OtherAccessorials: in.OtherAccessorials,
	}
}
