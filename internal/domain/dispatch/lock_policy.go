package dispatch

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tms/backend/internal/domain/audit"
)

// materialFields is the financial/operational field set whose post-delivery
// change must be justified with a reason and recorded as an adjustment.
// Status is in the set: un-delivering a load is itself a locked-load change.
var materialFields = map[string]bool{
	"rate":          true,
	"miles":         true,
	"origin_city":   true,
	"origin_state":  true,
	"dest_city":     true,
	"dest_state":    true,
	"pickup_date":   true,
	"delivery_date": true,
	"status":        true,
	"driver_id":     true,
	"driver_name":   true,
	"broker_name":   true,
	"broker_id":     true,
	"grand_total":   true,
	"customer_name": true,
	"dispatcher_id": true,
	"truck_id":      true,
	"trailer_id":    true,
}

// IsMaterialField returns true if a change to the named field on a locked
// load requires a reason
func IsMaterialField(name string) bool {
	return materialFields[name]
}

// FieldChange captures one field's before and after values
type FieldChange struct {
	Before any `json:"before"`
	After  any `json:"after"`
}

// UpdateEvaluation is the outcome of running a candidate load through the
// lock policy
type UpdateEvaluation struct {
	// Allowed is false only when a locked load's material fields changed
	// without a reason. Nothing is ever hard-blocked: supplying a reason
	// always unblocks the update.
	Allowed bool
	// RequiresReason reports why Allowed is false
	RequiresReason bool
	// ChangedFields lists the material fields a locked-load change touched,
	// whether or not a reason accompanied it. On rejection the caller uses it
	// to prompt for a reason; on success it names the adjusted fields.
	ChangedFields []string
	// Diff is the complete field-level before/after set
	Diff map[string]FieldChange
	// Action classifies the audit record the change warrants
	Action audit.Action
}

// ReasonRequiredError is returned when a material change to a locked load is
// attempted without a reason. It carries the changed field names for the
// caller to present.
type ReasonRequiredError struct {
	ChangedFields []string
}

// Error implements the error interface
func (e *ReasonRequiredError) Error() string {
	return fmt.Sprintf("a reason is required to change %s on a delivered load", strings.Join(e.ChangedFields, ", "))
}

// EvaluateUpdate diffs a candidate load against the stored load and applies
// the lock policy. Open loads and non-material changes pass through; material
// changes to a locked load require a non-empty reason. The reason is a
// record-keeping gate, not an authorization gate.
func EvaluateUpdate(stored, candidate *Load, reason string) UpdateEvaluation {
	diff := DiffLoads(stored, candidate)

	eval := UpdateEvaluation{
		Allowed: true,
		Diff:    diff,
		Action:  audit.ActionUpdate,
	}

	if !stored.IsLocked() {
		return eval
	}

	var material []string
	for field := range diff {
		if IsMaterialField(field) {
			material = append(material, field)
		}
	}
	if len(material) == 0 {
		return eval
	}
	sort.Strings(material)

	eval.Action = audit.ActionAdjustment
	eval.ChangedFields = material
	if strings.TrimSpace(reason) == "" {
		eval.Allowed = false
		eval.RequiresReason = true
	}
	return eval
}

// DiffLoads computes the field-level difference between two load snapshots
func DiffLoads(stored, candidate *Load) map[string]FieldChange {
	before := SnapshotFields(stored)
	after := SnapshotFields(candidate)

	diff := make(map[string]FieldChange)
	for field, beforeVal := range before {
		if afterVal := after[field]; beforeVal != afterVal {
			diff[field] = FieldChange{Before: beforeVal, After: afterVal}
		}
	}
	return diff
}

// SnapshotFields flattens a load into canonical scalar values keyed by field
// name, suitable for diffing and for audit before/after records
func SnapshotFields(l *Load) map[string]any {
	return map[string]any{
		"load_number":   l.LoadNumber,
		"rate":          decString(l.Rate),
		"miles":         decString(l.Miles),
		"origin_city":   l.OriginCity,
		"origin_state":  l.OriginState,
		"dest_city":     l.DestCity,
		"dest_state":    l.DestState,
		"pickup_date":   dateString(l.PickupDate),
		"delivery_date": dateString(l.DeliveryDate),
		"status":        string(l.Status),
		"customer_name": l.CustomerName,

		"driver_id":    uuidString(l.Driver.DriverID),
		"driver_name":  l.Driver.DriverName,
		"driver2_id":   uuidString(l.Driver2.DriverID),
		"driver2_name": l.Driver2.DriverName,
		"is_team_load": l.IsTeamLoad,

		"dispatcher_id": uuidString(l.DispatcherID),
		"broker_id":     uuidString(l.BrokerID),
		"broker_name":   l.BrokerName,
		"truck_id":      uuidString(l.TruckID),
		"trailer_id":    uuidString(l.TrailerID),

		"has_detention":      l.Accessorials.HasDetention,
		"detention_hours":    decString(l.Accessorials.DetentionHours),
		"detention_rate":     decString(l.Accessorials.DetentionRate),
		"has_layover":        l.Accessorials.HasLayover,
		"layover_days":       decString(l.Accessorials.LayoverDays),
		"layover_rate":       decString(l.Accessorials.LayoverRate),
		"has_lumper":         l.Accessorials.HasLumper,
		"lumper_fee":         decString(l.Accessorials.LumperFee),
		"has_fsc":            l.Accessorials.HasFSC,
		"fsc_type":           string(l.Accessorials.FSCType),
		"fsc_rate":           decString(l.Accessorials.FSCRate),
		"has_tonu":           l.Accessorials.HasTONU,
		"tonu_fee":           decString(l.Accessorials.TONUFee),
		"other_accessorials": decString(l.Accessorials.OtherAccessorials),

		"is_factored":           l.IsFactored,
		"factoring_company_id":  uuidString(l.FactoringCompanyID),
		"factoring_fee_percent": decPtrString(l.FactoringFeePercent),
		"factored_date":         dateString(l.FactoredDate),

		"grand_total": decString(l.Financials.GrandTotal),

		"notes": l.Notes,
	}
}

func decString(d decimal.Decimal) string {
	return d.String()
}

func decPtrString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func uuidString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func dateString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
