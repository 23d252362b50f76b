package dispatch

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tms/backend/internal/domain/audit"
)

func deliveredLoad(t *testing.T) *Load {
	t.Helper()
	load, err := NewLoad(uuid.New(), "L-1001", d("1000"), d("400"))
	require.NoError(t, err)
	load.Status = LoadStatusDelivered
	return load
}

func TestLoadStatus_IsLocked(t *testing.T) {
	tests := []struct {
		status LoadStatus
		locked bool
	}{
		{LoadStatusAvailable, false},
		{LoadStatusDispatched, false},
		{LoadStatusInTransit, false},
		{LoadStatusDelivered, true},
		{LoadStatusCompleted, true},
		{LoadStatusCancelled, false},
		{LoadStatusTONU, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.locked, tt.status.IsLocked())
		})
	}
}

func TestEvaluateUpdate_OpenLoad(t *testing.T) {
	stored, err := NewLoad(uuid.New(), "L-1001", d("1000"), d("400"))
	require.NoError(t, err)

	candidate := stored.Clone()
	candidate.Rate = d("1100")

	eval := EvaluateUpdate(stored, candidate, "")
	assert.True(t, eval.Allowed)
	assert.False(t, eval.RequiresReason)
	assert.Equal(t, audit.ActionUpdate, eval.Action)
	assert.Contains(t, eval.Diff, "rate")
}

func TestEvaluateUpdate_LockedMaterialWithoutReason(t *testing.T) {
	stored := deliveredLoad(t)

	candidate := stored.Clone()
	candidate.Rate = d("1100")

	eval := EvaluateUpdate(stored, candidate, "")
	assert.False(t, eval.Allowed)
	assert.True(t, eval.RequiresReason)
	assert.Equal(t, []string{"rate"}, eval.ChangedFields)
}

func TestEvaluateUpdate_LockedMaterialWithReason(t *testing.T) {
	stored := deliveredLoad(t)

	candidate := stored.Clone()
	candidate.Rate = d("1100")

	eval := EvaluateUpdate(stored, candidate, "broker approved rate increase")
	assert.True(t, eval.Allowed)
	assert.Equal(t, audit.ActionAdjustment, eval.Action)
	assert.Contains(t, eval.Diff, "rate")
	// The adjusted field list is reported on success too, so the adjustment
	// event and the dry-run response can name what changed.
	assert.Equal(t, []string{"rate"}, eval.ChangedFields)
	assert.False(t, eval.RequiresReason)
}

func TestEvaluateUpdate_LockedNonMaterial(t *testing.T) {
	stored := deliveredLoad(t)

	candidate := stored.Clone()
	candidate.Notes = "POD received"

	eval := EvaluateUpdate(stored, candidate, "")
	assert.True(t, eval.Allowed)
	assert.False(t, eval.RequiresReason)
	assert.Equal(t, audit.ActionUpdate, eval.Action)
	assert.Contains(t, eval.Diff, "notes")
}

func TestEvaluateUpdate_MultipleMaterialFieldsListed(t *testing.T) {
	stored := deliveredLoad(t)

	candidate := stored.Clone()
	candidate.Rate = d("1100")
	candidate.Miles = d("420")
	candidate.Notes = "also touched"

	eval := EvaluateUpdate(stored, candidate, "")
	assert.False(t, eval.Allowed)
	// Sorted material fields only; the notes change rides along once a
	// reason is supplied.
	assert.Equal(t, []string{"miles", "rate"}, eval.ChangedFields)
}

func TestEvaluateUpdate_StatusRevertIsMaterialGated(t *testing.T) {
	stored := deliveredLoad(t)

	t.Run("status-only revert requires a reason", func(t *testing.T) {
		candidate := stored.Clone()
		candidate.Status = LoadStatusInTransit

		eval := EvaluateUpdate(stored, candidate, "")
		assert.False(t, eval.Allowed)
		assert.True(t, eval.RequiresReason)
		assert.Equal(t, []string{"status"}, eval.ChangedFields)
	})

	t.Run("a whitespace reason does not count", func(t *testing.T) {
		candidate := stored.Clone()
		candidate.Status = LoadStatusInTransit
		candidate.Rate = d("900")

		eval := EvaluateUpdate(stored, candidate, "   ")
		assert.False(t, eval.Allowed)
		assert.True(t, eval.RequiresReason)
		assert.Equal(t, []string{"rate", "status"}, eval.ChangedFields)
	})

	t.Run("reason unblocks the revert as an adjustment", func(t *testing.T) {
		candidate := stored.Clone()
		candidate.Status = LoadStatusInTransit

		eval := EvaluateUpdate(stored, candidate, "delivery disputed by broker")
		assert.True(t, eval.Allowed)
		assert.Equal(t, audit.ActionAdjustment, eval.Action)
		assert.Equal(t, []string{"status"}, eval.ChangedFields)
	})
}

func TestIsMaterialField(t *testing.T) {
	material := []string{
		"rate", "miles", "origin_city", "origin_state", "dest_city", "dest_state",
		"pickup_date", "delivery_date", "status", "driver_id", "driver_name",
		"broker_name", "broker_id", "grand_total", "customer_name",
		"dispatcher_id", "truck_id", "trailer_id",
	}
	for _, f := range material {
		assert.True(t, IsMaterialField(f), "%s should be material", f)
	}

	for _, f := range []string{"notes", "has_detention", "lumper_fee", "is_factored"} {
		assert.False(t, IsMaterialField(f), "%s should not be material", f)
	}
}

func TestDiffLoads(t *testing.T) {
	stored, err := NewLoad(uuid.New(), "L-1001", d("1000"), d("400"))
	require.NoError(t, err)

	t.Run("identical snapshots produce empty diff", func(t *testing.T) {
		assert.Empty(t, DiffLoads(stored, stored.Clone()))
	})

	t.Run("captures before and after values", func(t *testing.T) {
		candidate := stored.Clone()
		candidate.Rate = d("1100")
		driverID := uuid.New()
		candidate.Driver.DriverID = &driverID
		candidate.Driver.DriverName = "John Mercer"

		diff := DiffLoads(stored, candidate)
		require.Contains(t, diff, "rate")
		assert.Equal(t, "1000", diff["rate"].Before)
		assert.Equal(t, "1100", diff["rate"].After)
		assert.Equal(t, "", diff["driver_id"].Before)
		assert.Equal(t, driverID.String(), diff["driver_id"].After)
		assert.Equal(t, "John Mercer", diff["driver_name"].After)
	})
}

func TestReasonRequiredError_Message(t *testing.T) {
	err := &ReasonRequiredError{ChangedFields: []string{"rate", "miles"}}
	assert.Contains(t, err.Error(), "rate, miles")
}
