package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tms/backend/internal/domain/audit"
	"github.com/tms/backend/internal/domain/shared"
)

// MockAuditRepository is a mock implementation of audit.Repository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) FindByEntity(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID, filter shared.Filter) ([]audit.Entry, int64, error) {
	args := m.Called(ctx, tenantID, entityType, entityID, filter)
	return args.Get(0).([]audit.Entry), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]audit.Entry, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]audit.Entry), args.Get(1).(int64), args.Error(2)
}

// MockOutboxRepository is a mock implementation of shared.OutboxRepository
type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) Save(ctx context.Context, entries ...*shared.OutboxEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockOutboxRepository) FindPending(ctx context.Context, limit int) ([]*shared.OutboxEntry, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*shared.OutboxEntry), args.Error(1)
}

func (m *MockOutboxRepository) FindRetryable(ctx context.Context, before time.Time, limit int) ([]*shared.OutboxEntry, error) {
	args := m.Called(ctx, before, limit)
	return args.Get(0).([]*shared.OutboxEntry), args.Error(1)
}

func (m *MockOutboxRepository) FindDead(ctx context.Context, page, pageSize int) ([]*shared.OutboxEntry, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]*shared.OutboxEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockOutboxRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.OutboxEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.OutboxEntry), args.Error(1)
}

func (m *MockOutboxRepository) MarkProcessing(ctx context.Context, ids []uuid.UUID) ([]*shared.OutboxEntry, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*shared.OutboxEntry), args.Error(1)
}

func (m *MockOutboxRepository) Update(ctx context.Context, entry *shared.OutboxEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockOutboxRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOutboxRepository) CountByStatus(ctx context.Context) (map[shared.OutboxStatus]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[shared.OutboxStatus]int64), args.Error(1)
}

func testEntry(t *testing.T) *audit.Entry {
	t.Helper()
	entry, err := audit.NewEntry(
		uuid.New(), "user-1", "dispatcher", "load", uuid.New(),
		audit.ActionUpdate,
		map[string]any{"notes": ""},
		map[string]any{"notes": "POD received"},
		"",
	)
	require.NoError(t, err)
	return entry
}

func TestWriter_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("writes to the primary sink", func(t *testing.T) {
		repo := new(MockAuditRepository)
		outbox := new(MockOutboxRepository)
		writer := NewWriter(repo, outbox, zap.NewNop())

		entry := testEntry(t)
		repo.On("Append", ctx, entry).Return(nil)

		writer.Record(ctx, entry)

		repo.AssertExpectations(t)
		outbox.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("falls back to the outbox when the primary sink fails", func(t *testing.T) {
		repo := new(MockAuditRepository)
		outbox := new(MockOutboxRepository)
		writer := NewWriter(repo, outbox, zap.NewNop())

		entry := testEntry(t)
		repo.On("Append", ctx, entry).Return(errors.New("connection refused"))
		outbox.On("Save", ctx, mock.MatchedBy(func(entries []*shared.OutboxEntry) bool {
			return len(entries) == 1 &&
				entries[0].EventType == audit.EventTypeEntryRecorded &&
				entries[0].TenantID == entry.TenantID
		})).Return(nil)

		writer.Record(ctx, entry)

		repo.AssertExpectations(t)
		outbox.AssertExpectations(t)
	})

	t.Run("never panics when both sinks fail", func(t *testing.T) {
		repo := new(MockAuditRepository)
		outbox := new(MockOutboxRepository)
		writer := NewWriter(repo, outbox, zap.NewNop())

		entry := testEntry(t)
		repo.On("Append", ctx, entry).Return(errors.New("connection refused"))
		outbox.On("Save", ctx, mock.Anything).Return(errors.New("disk full"))

		assert.NotPanics(t, func() {
			writer.Record(ctx, entry)
		})
	})
}
