package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	dispatchapp "github.com/tms/backend/internal/application/dispatch"
	"github.com/tms/backend/internal/domain/audit"
	"github.com/tms/backend/internal/domain/dispatch"
	"github.com/tms/backend/internal/domain/fleet"
	"github.com/tms/backend/internal/domain/partner"
	"github.com/tms/backend/internal/domain/shared"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// =============================================================================
// Mock Repositories
// =============================================================================

type MockLoadRepository struct {
	mock.Mock
}

func (m *MockLoadRepository) FindByID(ctx context.Context, id uuid.UUID) (*dispatch.Load, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dispatch.Load), args.Error(1)
}

func (m *MockLoadRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*dispatch.Load, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dispatch.Load), args.Error(1)
}

func (m *MockLoadRepository) FindByLoadNumber(ctx context.Context, tenantID uuid.UUID, loadNumber string) (*dispatch.Load, error) {
	args := m.Called(ctx, tenantID, loadNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dispatch.Load), args.Error(1)
}

func (m *MockLoadRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]dispatch.Load, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]dispatch.Load), args.Error(1)
}

func (m *MockLoadRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status dispatch.LoadStatus, filter shared.Filter) ([]dispatch.Load, error) {
	args := m.Called(ctx, tenantID, status, filter)
	return args.Get(0).([]dispatch.Load), args.Error(1)
}

func (m *MockLoadRepository) FindByDriver(ctx context.Context, tenantID, driverID uuid.UUID, filter shared.Filter) ([]dispatch.Load, error) {
	args := m.Called(ctx, tenantID, driverID, filter)
	return args.Get(0).([]dispatch.Load), args.Error(1)
}

func (m *MockLoadRepository) Save(ctx context.Context, load *dispatch.Load) error {
	args := m.Called(ctx, load)
	return args.Error(0)
}

func (m *MockLoadRepository) SaveWithLock(ctx context.Context, load *dispatch.Load) error {
	args := m.Called(ctx, load)
	return args.Error(0)
}

func (m *MockLoadRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockLoadRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLoadRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status dispatch.LoadStatus) (int64, error) {
	args := m.Called(ctx, tenantID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLoadRepository) GenerateLoadNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}

type MockDriverRepository struct {
	mock.Mock
}

func (m *MockDriverRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Driver), args.Error(1)
}

func (m *MockDriverRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fleet.Driver, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Driver), args.Error(1)
}

func (m *MockDriverRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.Driver, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]fleet.Driver), args.Error(1)
}

func (m *MockDriverRepository) FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]fleet.Driver, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]fleet.Driver), args.Error(1)
}

func (m *MockDriverRepository) Save(ctx context.Context, driver *fleet.Driver) error {
	args := m.Called(ctx, driver)
	return args.Error(0)
}

func (m *MockDriverRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDriverRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

type MockDispatcherRepository struct {
	mock.Mock
}

func (m *MockDispatcherRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Dispatcher, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Dispatcher), args.Error(1)
}

func (m *MockDispatcherRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fleet.Dispatcher, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Dispatcher), args.Error(1)
}

func (m *MockDispatcherRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.Dispatcher, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]fleet.Dispatcher), args.Error(1)
}

func (m *MockDispatcherRepository) Save(ctx context.Context, dispatcher *fleet.Dispatcher) error {
	args := m.Called(ctx, dispatcher)
	return args.Error(0)
}

func (m *MockDispatcherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBrokerRepository struct {
	mock.Mock
}

func (m *MockBrokerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Broker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Broker), args.Error(1)
}

func (m *MockBrokerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Broker, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Broker), args.Error(1)
}

func (m *MockBrokerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Broker, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Broker), args.Error(1)
}

func (m *MockBrokerRepository) Save(ctx context.Context, broker *partner.Broker) error {
	args := m.Called(ctx, broker)
	return args.Error(0)
}

func (m *MockBrokerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockFactoringCompanyRepository struct {
	mock.Mock
}

func (m *MockFactoringCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.FactoringCompany, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.FactoringCompany), args.Error(1)
}

func (m *MockFactoringCompanyRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.FactoringCompany, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.FactoringCompany), args.Error(1)
}

func (m *MockFactoringCompanyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.FactoringCompany, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.FactoringCompany), args.Error(1)
}

func (m *MockFactoringCompanyRepository) FindDefaultForTenant(ctx context.Context, tenantID uuid.UUID) (*partner.FactoringCompany, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.FactoringCompany), args.Error(1)
}

func (m *MockFactoringCompanyRepository) Save(ctx context.Context, company *partner.FactoringCompany) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockFactoringCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(ctx context.Context, entry *audit.Entry) {
	m.Called(ctx, entry)
}

// =============================================================================
// Test helpers
// =============================================================================

type loadHandlerMocks struct {
	loads       *MockLoadRepository
	drivers     *MockDriverRepository
	dispatchers *MockDispatcherRepository
	brokers     *MockBrokerRepository
	factoring   *MockFactoringCompanyRepository
	auditor     *MockAuditRecorder
}

func newLoadHandlerTest() (*gin.Engine, *loadHandlerMocks) {
	m := &loadHandlerMocks{
		loads:       new(MockLoadRepository),
		drivers:     new(MockDriverRepository),
		dispatchers: new(MockDispatcherRepository),
		brokers:     new(MockBrokerRepository),
		factoring:   new(MockFactoringCompanyRepository),
		auditor:     new(MockAuditRecorder),
	}
	service := dispatchapp.NewLoadService(m.loads, m.drivers, m.dispatchers, m.brokers, m.factoring, m.auditor)
	h := NewLoadHandler(service)

	r := gin.New()
	loads := r.Group("/api/v1/dispatch/loads")
	{
		loads.POST("", h.Create)
		loads.GET("", h.List)
		loads.GET("/summary", h.StatusSummary)
		loads.GET("/:id", h.GetByID)
		loads.POST("/:id/evaluate", h.EvaluateUpdate)
		loads.PUT("/:id", h.Update)
		loads.PATCH("/:id/status", h.ChangeStatus)
		loads.DELETE("/:id", h.Delete)
	}
	return r, m
}

func doRequest(r *gin.Engine, method, path string, tenantID string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tenantID != "" {
		req.Header.Set("X-Tenant-ID", tenantID)
	}
	req.Header.Set("X-Actor-UID", "user-1")
	req.Header.Set("X-Actor-Role", "dispatcher")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func deliveredLoad(t *testing.T, tenantID uuid.UUID) *dispatch.Load {
	t.Helper()
	load, err := dispatch.NewLoad(tenantID, "L-1001", decimal.NewFromInt(1000), decimal.NewFromInt(400))
	require.NoError(t, err)
	load.Status = dispatch.LoadStatusDelivered
	load.ClearDomainEvents()
	return load
}

// =============================================================================
// Tests
// =============================================================================

func TestLoadHandler_Create(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates a load", func(t *testing.T) {
		r, m := newLoadHandlerTest()

		m.loads.On("Save", mock.Anything, mock.AnythingOfType("*dispatch.Load")).Return(nil)
		m.auditor.On("Record", mock.Anything, mock.MatchedBy(func(entry *audit.Entry) bool {
			return entry.Action == audit.ActionCreate
		})).Return()

		w := doRequest(r, http.MethodPost, "/api/v1/dispatch/loads", tenantID.String(), map[string]any{
			"load_number": "L-1001",
			"rate":        "2500",
			"miles":       "500",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				LoadNumber string `json:"load_number"`
				Status     string `json:"status"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "L-1001", resp.Data.LoadNumber)
		assert.Equal(t, "available", resp.Data.Status)
		m.loads.AssertExpectations(t)
	})

	t.Run("missing tenant header is rejected", func(t *testing.T) {
		r, _ := newLoadHandlerTest()

		w := doRequest(r, http.MethodPost, "/api/v1/dispatch/loads", "", map[string]any{
			"load_number": "L-1001",
			"rate":        "2500",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_UNAUTHORIZED")
	})

	t.Run("negative rate is rejected", func(t *testing.T) {
		r, m := newLoadHandlerTest()

		w := doRequest(r, http.MethodPost, "/api/v1/dispatch/loads", tenantID.String(), map[string]any{
			"load_number": "L-1001",
			"rate":        "-100",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		m.loads.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestLoadHandler_GetByID(t *testing.T) {
	tenantID := uuid.New()

	t.Run("returns the load", func(t *testing.T) {
		r, m := newLoadHandlerTest()
		stored := deliveredLoad(t, tenantID)

		m.loads.On("FindByIDForTenant", mock.Anything, tenantID, stored.ID).Return(stored, nil)

		w := doRequest(r, http.MethodGet, "/api/v1/dispatch/loads/"+stored.ID.String(), tenantID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "L-1001")
	})

	t.Run("unknown load returns 404", func(t *testing.T) {
		r, m := newLoadHandlerTest()
		loadID := uuid.New()

		m.loads.On("FindByIDForTenant", mock.Anything, tenantID, loadID).Return(nil, shared.ErrNotFound)

		w := doRequest(r, http.MethodGet, "/api/v1/dispatch/loads/"+loadID.String(), tenantID.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
	})

	t.Run("malformed ID returns 400", func(t *testing.T) {
		r, _ := newLoadHandlerTest()

		w := doRequest(r, http.MethodGet, "/api/v1/dispatch/loads/not-a-uuid", tenantID.String(), nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoadHandler_List(t *testing.T) {
	tenantID := uuid.New()

	t.Run("returns loads with pagination meta", func(t *testing.T) {
		r, m := newLoadHandlerTest()
		stored := deliveredLoad(t, tenantID)

		m.loads.On("FindAllForTenant", mock.Anything, tenantID, mock.Anything).Return([]dispatch.Load{*stored}, nil)
		m.loads.On("CountForTenant", mock.Anything, tenantID, mock.Anything).Return(int64(1), nil)

		w := doRequest(r, http.MethodGet, "/api/v1/dispatch/loads?page=1&page_size=20", tenantID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Meta    struct {
				Total    int64 `json:"total"`
				Page     int   `json:"page"`
				PageSize int   `json:"page_size"`
			} `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, int64(1), resp.Meta.Total)
		assert.Equal(t, 1, resp.Meta.Page)
	})

	t.Run("rejects an oversized page size", func(t *testing.T) {
		r, _ := newLoadHandlerTest()

		w := doRequest(r, http.MethodGet, "/api/v1/dispatch/loads?page_size=500", tenantID.String(), nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoadHandler_Update(t *testing.T) {
	tenantID := uuid.New()

	t.Run("locked material change without reason returns 422 with fields", func(t *testing.T) {
		r, m := newLoadHandlerTest()
		stored := deliveredLoad(t, tenantID)

		m.loads.On("FindByIDForTenant", mock.Anything, tenantID, stored.ID).Return(stored, nil)

		w := doRequest(r, http.MethodPut, "/api/v1/dispatch/loads/"+stored.ID.String(), tenantID.String(), map[string]any{
			"rate": "3000",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Error   struct {
				Code   string   `json:"code"`
				Fields []string `json:"fields"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "ERR_REASON_REQUIRED", resp.Error.Code)
		assert.Equal(t, []string{"rate"}, resp.Error.Fields)
		m.loads.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("locked material change with reason succeeds", func(t *testing.T) {
		r, m := newLoadHandlerTest()
		stored := deliveredLoad(t, tenantID)

		m.loads.On("FindByIDForTenant", mock.Anything, tenantID, stored.ID).Return(stored, nil)
		m.loads.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*dispatch.Load")).Return(nil)
		m.auditor.On("Record", mock.Anything, mock.MatchedBy(func(entry *audit.Entry) bool {
			return entry.Action == audit.ActionAdjustment && entry.Reason == "Detention billed after delivery"
		})).Return()

		w := doRequest(r, http.MethodPut, "/api/v1/dispatch/loads/"+stored.ID.String(), tenantID.String(), map[string]any{
			"rate":   "3000",
			"reason": "Detention billed after delivery",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		m.auditor.AssertExpectations(t)
	})

	t.Run("stale version returns 409", func(t *testing.T) {
		r, m := newLoadHandlerTest()
		stored := deliveredLoad(t, tenantID)

		m.loads.On("FindByIDForTenant", mock.Anything, tenantID, stored.ID).Return(stored, nil)
		m.loads.On("SaveWithLock", mock.Anything, mock.Anything).Return(shared.ErrConcurrencyConflict)

		w := doRequest(r, http.MethodPut, "/api/v1/dispatch/loads/"+stored.ID.String(), tenantID.String(), map[string]any{
			"rate":   "3000",
			"reason": "Detention billed after delivery",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_CONCURRENCY_CONFLICT")
	})
}

func TestLoadHandler_EvaluateUpdate(t *testing.T) {
	tenantID := uuid.New()

	t.Run("reports a reason requirement without persisting", func(t *testing.T) {
		r, m := newLoadHandlerTest()
		stored := deliveredLoad(t, tenantID)

		m.loads.On("FindByIDForTenant", mock.Anything, tenantID, stored.ID).Return(stored, nil)

		w := doRequest(r, http.MethodPost, "/api/v1/dispatch/loads/"+stored.ID.String()+"/evaluate", tenantID.String(), map[string]any{
			"rate": "3000",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				Allowed        bool     `json:"allowed"`
				RequiresReason bool     `json:"requires_reason"`
				ChangedFields  []string `json:"changed_fields"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Data.Allowed)
		assert.True(t, resp.Data.RequiresReason)
		assert.Equal(t, []string{"rate"}, resp.Data.ChangedFields)
		m.loads.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
		m.loads.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestLoadHandler_ChangeStatus(t *testing.T) {
	tenantID := uuid.New()

	t.Run("invalid transition returns 422", func(t *testing.T) {
		r, m := newLoadHandlerTest()
		stored := deliveredLoad(t, tenantID)

		m.loads.On("FindByIDForTenant", mock.Anything, tenantID, stored.ID).Return(stored, nil)

		w := doRequest(r, http.MethodPatch, "/api/v1/dispatch/loads/"+stored.ID.String()+"/status", tenantID.String(), map[string]any{
			"status": "available",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		m.loads.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

func TestLoadHandler_Delete(t *testing.T) {
	tenantID := uuid.New()

	t.Run("locked load cannot be deleted", func(t *testing.T) {
		r, m := newLoadHandlerTest()
		stored := deliveredLoad(t, tenantID)

		m.loads.On("FindByIDForTenant", mock.Anything, tenantID, stored.ID).Return(stored, nil)

		w := doRequest(r, http.MethodDelete, "/api/v1/dispatch/loads/"+stored.ID.String(), tenantID.String(), nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_INVALID_STATE")
		m.loads.AssertNotCalled(t, "DeleteForTenant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("open load is deleted", func(t *testing.T) {
		r, m := newLoadHandlerTest()
		stored := deliveredLoad(t, tenantID)
		stored.Status = dispatch.LoadStatusAvailable

		m.loads.On("FindByIDForTenant", mock.Anything, tenantID, stored.ID).Return(stored, nil)
		m.loads.On("DeleteForTenant", mock.Anything, tenantID, stored.ID).Return(nil)
		m.auditor.On("Record", mock.Anything, mock.MatchedBy(func(entry *audit.Entry) bool {
			return entry.Action == audit.ActionDelete
		})).Return()

		w := doRequest(r, http.MethodDelete, "/api/v1/dispatch/loads/"+stored.ID.String(), tenantID.String(), nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		m.loads.AssertExpectations(t)
	})
}

func TestLoadHandler_StatusSummary(t *testing.T) {
	tenantID := uuid.New()

	t.Run("sums counts across statuses", func(t *testing.T) {
		r, m := newLoadHandlerTest()

		counts := map[dispatch.LoadStatus]int64{
			dispatch.LoadStatusAvailable:  3,
			dispatch.LoadStatusDispatched: 2,
			dispatch.LoadStatusInTransit:  1,
			dispatch.LoadStatusDelivered:  4,
			dispatch.LoadStatusCompleted:  10,
			dispatch.LoadStatusCancelled:  1,
			dispatch.LoadStatusTONU:       1,
		}
		for status, count := range counts {
			m.loads.On("CountByStatus", mock.Anything, tenantID, status).Return(count, nil)
		}

		w := doRequest(r, http.MethodGet, "/api/v1/dispatch/loads/summary", tenantID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				Delivered int64 `json:"delivered"`
				Total     int64 `json:"total"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(4), resp.Data.Delivered)
		assert.Equal(t, int64(22), resp.Data.Total)
	})
}
