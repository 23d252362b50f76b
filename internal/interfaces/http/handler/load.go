package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	dispatchapp "github.com/tms/backend/internal/application/dispatch"
)

// LoadHandler handles load-related API endpoints
type LoadHandler struct {
	BaseHandler
	loadService *dispatchapp.LoadService
}

// NewLoadHandler creates a new LoadHandler
func NewLoadHandler(loadService *dispatchapp.LoadService) *LoadHandler {
	return &LoadHandler{
		loadService: loadService,
	}
}

// Create godoc
// @Summary      Create a new load
// @Description  Create a load with optional driver assignments, accessorials and factoring; financials are computed synchronously
// @Tags         loads
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        X-Actor-UID header string true "Acting user ID"
// @Param        request body dispatchapp.CreateLoadRequest true "Load creation request"
// @Success      201 {object} dto.Response{data=dispatchapp.LoadResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /dispatch/loads [post]
func (h *LoadHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Actor identification required")
		return
	}

	var req dispatchapp.CreateLoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	load, err := h.loadService.Create(c.Request.Context(), tenantID, actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, load)
}

// GetByID godoc
// @Summary      Get load by ID
// @Description  Retrieve a load with its derived financials
// @Tags         loads
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        id path string true "Load ID" format(uuid)
// @Success      200 {object} dto.Response{data=dispatchapp.LoadResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /dispatch/loads/{id} [get]
func (h *LoadHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	loadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid load ID format")
		return
	}

	load, err := h.loadService.GetByID(c.Request.Context(), tenantID, loadID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, load)
}

// GetByLoadNumber godoc
// @Summary      Get load by load number
// @Tags         loads
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        load_number path string true "Load Number" example("L-2026-00001")
// @Success      200 {object} dto.Response{data=dispatchapp.LoadResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /dispatch/loads/number/{load_number} [get]
func (h *LoadHandler) GetByLoadNumber(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	loadNumber := c.Param("load_number")
	if loadNumber == "" {
		h.BadRequest(c, "Load number is required")
		return
	}

	load, err := h.loadService.GetByLoadNumber(c.Request.Context(), tenantID, loadNumber)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, load)
}

// List godoc
// @Summary      List loads
// @Description  Retrieve a paginated list of loads with optional filtering
// @Tags         loads
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        search query string false "Search term (load number, customer, broker)"
// @Param        status query string false "Load status" Enums(available, dispatched, in_transit, delivered, completed, cancelled, tonu)
// @Param        driver_id query string false "Driver ID" format(uuid)
// @Param        dispatcher_id query string false "Dispatcher ID" format(uuid)
// @Param        broker_id query string false "Broker ID" format(uuid)
// @Param        start_date query string false "Pickup date from (ISO 8601)" format(date-time)
// @Param        end_date query string false "Pickup date to (ISO 8601)" format(date-time)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field" default(created_at)
// @Param        order_dir query string false "Order direction" Enums(asc, desc) default(desc)
// @Success      200 {object} dto.Response{data=[]dispatchapp.LoadListItemResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /dispatch/loads [get]
func (h *LoadHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var filter dispatchapp.LoadListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	loads, total, err := h.loadService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, loads, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Update a load
// @Description  Partially update a load. Material changes to a delivered or completed load require a reason and are recorded as adjustments.
// @Tags         loads
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        X-Actor-UID header string true "Acting user ID"
// @Param        id path string true "Load ID" format(uuid)
// @Param        request body dispatchapp.UpdateLoadRequest true "Load update request"
// @Success      200 {object} dto.Response{data=dispatchapp.LoadResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /dispatch/loads/{id} [put]
func (h *LoadHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Actor identification required")
		return
	}

	loadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid load ID format")
		return
	}

	var req dispatchapp.UpdateLoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	load, err := h.loadService.ApplyUpdate(c.Request.Context(), tenantID, loadID, actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, load)
}

// EvaluateUpdate godoc
// @Summary      Evaluate a load update
// @Description  Dry-run the edit policy against a proposed update without persisting anything. Returns whether the change is allowed and whether a reason would be required.
// @Tags         loads
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        id path string true "Load ID" format(uuid)
// @Param        request body dispatchapp.UpdateLoadRequest true "Proposed load update"
// @Success      200 {object} dto.Response{data=dispatchapp.UpdateEvaluationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /dispatch/loads/{id}/evaluate [post]
func (h *LoadHandler) EvaluateUpdate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	loadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid load ID format")
		return
	}

	var req dispatchapp.UpdateLoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	eval, err := h.loadService.EvaluateUpdate(c.Request.Context(), tenantID, loadID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, eval)
}

// ChangeStatus godoc
// @Summary      Change load status
// @Description  Move a load through the dispatch flow. Invalid transitions are rejected.
// @Tags         loads
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        X-Actor-UID header string true "Acting user ID"
// @Param        id path string true "Load ID" format(uuid)
// @Param        request body dispatchapp.ChangeLoadStatusRequest true "Status change request"
// @Success      200 {object} dto.Response{data=dispatchapp.LoadResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /dispatch/loads/{id}/status [patch]
func (h *LoadHandler) ChangeStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Actor identification required")
		return
	}

	loadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid load ID format")
		return
	}

	var req dispatchapp.ChangeLoadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	load, err := h.loadService.ChangeStatus(c.Request.Context(), tenantID, loadID, actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, load)
}

// Delete godoc
// @Summary      Delete a load
// @Description  Delete a load. Delivered and completed loads cannot be deleted.
// @Tags         loads
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        X-Actor-UID header string true "Acting user ID"
// @Param        id path string true "Load ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /dispatch/loads/{id} [delete]
func (h *LoadHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Actor identification required")
		return
	}

	loadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid load ID format")
		return
	}

	if err := h.loadService.Delete(c.Request.Context(), tenantID, loadID, actor); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// StatusSummary godoc
// @Summary      Get load counts by status
// @Tags         loads
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Success      200 {object} dto.Response{data=dispatchapp.LoadStatusSummary}
// @Router       /dispatch/loads/summary [get]
func (h *LoadHandler) StatusSummary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	summary, err := h.loadService.GetStatusSummary(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}
