package audit

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAction_IsValid(t *testing.T) {
	tests := []struct {
		action  Action
		isValid bool
	}{
		{ActionCreate, true},
		{ActionUpdate, true},
		{ActionDelete, true},
		{ActionStatusChange, true},
		{ActionAdjustment, true},
		{Action("MERGE"), false},
		{Action(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.action.IsValid())
		})
	}
}

func TestNewEntry(t *testing.T) {
	tenantID := uuid.New()
	entityID := uuid.New()

	t.Run("creates entry", func(t *testing.T) {
		entry, err := NewEntry(tenantID, "user-1", "dispatcher", "load", entityID, ActionUpdate,
			map[string]any{"notes": "old"}, map[string]any{"notes": "new"}, "")
		require.NoError(t, err)
		assert.Equal(t, ActionUpdate, entry.Action)
		assert.Equal(t, "load", entry.EntityType)
	})

	t.Run("adjustment requires reason", func(t *testing.T) {
		_, err := NewEntry(tenantID, "user-1", "admin", "load", entityID, ActionAdjustment,
			map[string]any{"rate": "1000"}, map[string]any{"rate": "1100"}, "")
		assert.Error(t, err)

		entry, err := NewEntry(tenantID, "user-1", "admin", "load", entityID, ActionAdjustment,
			map[string]any{"rate": "1000"}, map[string]any{"rate": "1100"}, "broker approved rate increase")
		require.NoError(t, err)
		assert.Equal(t, "broker approved rate increase", entry.Reason)
	})

	t.Run("rejects empty entity type", func(t *testing.T) {
		_, err := NewEntry(tenantID, "user-1", "admin", "", entityID, ActionCreate, nil, nil, "")
		assert.Error(t, err)
	})

	t.Run("rejects nil entity id", func(t *testing.T) {
		_, err := NewEntry(tenantID, "user-1", "admin", "load", uuid.Nil, ActionCreate, nil, nil, "")
		assert.Error(t, err)
	})

	t.Run("rejects invalid action", func(t *testing.T) {
		_, err := NewEntry(tenantID, "user-1", "admin", "load", entityID, Action("PATCH"), nil, nil, "")
		assert.Error(t, err)
	})
}

func TestEntry_SnapshotCopies(t *testing.T) {
	entry, err := NewEntry(uuid.New(), "user-1", "admin", "load", uuid.New(), ActionUpdate,
		map[string]any{"rate": "1000"}, map[string]any{"rate": "1100"}, "")
	require.NoError(t, err)

	before := entry.GetBefore()
	before["rate"] = "tampered"
	assert.Equal(t, "1000", entry.Before["rate"])

	after := entry.GetAfter()
	after["rate"] = "tampered"
	assert.Equal(t, "1100", entry.After["rate"])
}
