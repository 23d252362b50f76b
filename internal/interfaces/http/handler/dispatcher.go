package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	fleetapp "github.com/tms/backend/internal/application/fleet"
)

// DispatcherHandler handles dispatcher-related API endpoints
type DispatcherHandler struct {
	BaseHandler
	dispatcherService *fleetapp.DispatcherService
}

// NewDispatcherHandler creates a new DispatcherHandler
func NewDispatcherHandler(dispatcherService *fleetapp.DispatcherService) *DispatcherHandler {
	return &DispatcherHandler{
		dispatcherService: dispatcherService,
	}
}

// Create godoc
// @Summary      Create a new dispatcher
// @Description  Create a dispatcher with a commission configuration used in load commission calculations
// @Tags         dispatchers
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        request body fleetapp.CreateDispatcherRequest true "Dispatcher creation request"
// @Success      201 {object} dto.Response{data=fleetapp.DispatcherResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /fleet/dispatchers [post]
func (h *DispatcherHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var req fleetapp.CreateDispatcherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dispatcher, err := h.dispatcherService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, dispatcher)
}

// GetByID godoc
// @Summary      Get dispatcher by ID
// @Tags         dispatchers
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        id path string true "Dispatcher ID" format(uuid)
// @Success      200 {object} dto.Response{data=fleetapp.DispatcherResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /fleet/dispatchers/{id} [get]
func (h *DispatcherHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	dispatcherID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid dispatcher ID format")
		return
	}

	dispatcher, err := h.dispatcherService.GetByID(c.Request.Context(), tenantID, dispatcherID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, dispatcher)
}

// List godoc
// @Summary      List dispatchers
// @Tags         dispatchers
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        search query string false "Search term (name, email)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]fleetapp.DispatcherResponse}
// @Router       /fleet/dispatchers [get]
func (h *DispatcherHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var filter fleetapp.DispatcherListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dispatchers, err := h.dispatcherService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, dispatchers)
}

// Update godoc
// @Summary      Update a dispatcher
// @Description  Update dispatcher profile and commission configuration. Commission changes only affect future calculations.
// @Tags         dispatchers
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        id path string true "Dispatcher ID" format(uuid)
// @Param        request body fleetapp.UpdateDispatcherRequest true "Dispatcher update request"
// @Success      200 {object} dto.Response{data=fleetapp.DispatcherResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /fleet/dispatchers/{id} [put]
func (h *DispatcherHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	dispatcherID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid dispatcher ID format")
		return
	}

	var req fleetapp.UpdateDispatcherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dispatcher, err := h.dispatcherService.Update(c.Request.Context(), tenantID, dispatcherID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, dispatcher)
}

// Delete godoc
// @Summary      Delete a dispatcher
// @Tags         dispatchers
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        id path string true "Dispatcher ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /fleet/dispatchers/{id} [delete]
func (h *DispatcherHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	dispatcherID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid dispatcher ID format")
		return
	}

	if err := h.dispatcherService.Delete(c.Request.Context(), tenantID, dispatcherID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
