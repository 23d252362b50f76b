package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	fleetapp "github.com/tms/backend/internal/application/fleet"
)

// DriverHandler handles driver-related API endpoints
type DriverHandler struct {
	BaseHandler
	driverService *fleetapp.DriverService
}

// NewDriverHandler creates a new DriverHandler
func NewDriverHandler(driverService *fleetapp.DriverService) *DriverHandler {
	return &DriverHandler{
		driverService: driverService,
	}
}

// Create godoc
// @Summary      Create a new driver
// @Description  Create a driver with a pay configuration used as the default for load pay calculations
// @Tags         drivers
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        request body fleetapp.CreateDriverRequest true "Driver creation request"
// @Success      201 {object} dto.Response{data=fleetapp.DriverResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /fleet/drivers [post]
func (h *DriverHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var req fleetapp.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	driver, err := h.driverService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, driver)
}

// GetByID godoc
// @Summary      Get driver by ID
// @Tags         drivers
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        id path string true "Driver ID" format(uuid)
// @Success      200 {object} dto.Response{data=fleetapp.DriverResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /fleet/drivers/{id} [get]
func (h *DriverHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid driver ID format")
		return
	}

	driver, err := h.driverService.GetByID(c.Request.Context(), tenantID, driverID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, driver)
}

// List godoc
// @Summary      List drivers
// @Tags         drivers
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        search query string false "Search term (name, phone)"
// @Param        status query string false "Driver status" Enums(active, inactive)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]fleetapp.DriverResponse,meta=dto.Meta}
// @Router       /fleet/drivers [get]
func (h *DriverHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var filter fleetapp.DriverListFilter
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

	drivers, total, err := h.driverService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, drivers, total, filter.Page, filter.PageSize)
}

// ListActive godoc
// @Summary      List active drivers
// @Description  Retrieve all active drivers, for assignment pickers
// @Tags         drivers
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]fleetapp.DriverResponse}
// @Router       /fleet/drivers/active [get]
func (h *DriverHandler) ListActive(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	drivers, err := h.driverService.ListActive(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, drivers)
}

// Update godoc
// @Summary      Update a driver
// @Description  Update driver profile and pay configuration. Pay changes only affect future calculations.
// @Tags         drivers
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        id path string true "Driver ID" format(uuid)
// @Param        request body fleetapp.UpdateDriverRequest true "Driver update request"
// @Success      200 {object} dto.Response{data=fleetapp.DriverResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /fleet/drivers/{id} [put]
func (h *DriverHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid driver ID format")
		return
	}

	var req fleetapp.UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	driver, err := h.driverService.Update(c.Request.Context(), tenantID, driverID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, driver)
}

// AssignTruck godoc
// @Summary      Assign a truck to a driver
// @Tags         drivers
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        id path string true "Driver ID" format(uuid)
// @Param        request body fleetapp.AssignTruckRequest true "Truck assignment request"
// @Success      200 {object} dto.Response{data=fleetapp.DriverResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /fleet/drivers/{id}/truck [patch]
func (h *DriverHandler) AssignTruck(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid driver ID format")
		return
	}

	var req fleetapp.AssignTruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	driver, err := h.driverService.AssignTruck(c.Request.Context(), tenantID, driverID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, driver)
}

// Deactivate godoc
// @Summary      Deactivate a driver
// @Description  Deactivated drivers keep their history but cannot be assigned to new loads
// @Tags         drivers
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        id path string true "Driver ID" format(uuid)
// @Success      200 {object} dto.Response{data=fleetapp.DriverResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /fleet/drivers/{id}/deactivate [patch]
func (h *DriverHandler) Deactivate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid driver ID format")
		return
	}

	driver, err := h.driverService.Deactivate(c.Request.Context(), tenantID, driverID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, driver)
}

// Activate godoc
// @Summary      Reactivate a driver
// @Tags         drivers
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        id path string true "Driver ID" format(uuid)
// @Success      200 {object} dto.Response{data=fleetapp.DriverResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /fleet/drivers/{id}/activate [patch]
func (h *DriverHandler) Activate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid driver ID format")
		return
	}

	driver, err := h.driverService.Activate(c.Request.Context(), tenantID, driverID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, driver)
}
