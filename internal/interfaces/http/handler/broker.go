package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	partnerapp "github.com/tms/backend/internal/application/partner"
)

// BrokerHandler handles broker-related API endpoints
type BrokerHandler struct {
	BaseHandler
	brokerService *partnerapp.BrokerService
}

// NewBrokerHandler creates a new BrokerHandler
func NewBrokerHandler(brokerService *partnerapp.BrokerService) *BrokerHandler {
	return &BrokerHandler{
		brokerService: brokerService,
	}
}

// Create godoc
// @Summary      Create a new broker
// @Tags         brokers
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        request body partnerapp.CreateBrokerRequest true "Broker creation request"
// @Success      201 {object} dto.Response{data=partnerapp.BrokerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /partner/brokers [post]
func (h *BrokerHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var req partnerapp.CreateBrokerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	broker, err := h.brokerService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, broker)
}

// GetByID godoc
// @Summary      Get broker by ID
// @Tags         brokers
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        id path string true "Broker ID" format(uuid)
// @Success      200 {object} dto.Response{data=partnerapp.BrokerResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /partner/brokers/{id} [get]
func (h *BrokerHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	brokerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid broker ID format")
		return
	}

	broker, err := h.brokerService.GetByID(c.Request.Context(), tenantID, brokerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, broker)
}

// List godoc
// @Summary      List brokers
// @Tags         brokers
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        search query string false "Search term (name, MC number)"
// @Param        status query string false "Broker status" Enums(active, inactive)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]partnerapp.BrokerResponse}
// @Router       /partner/brokers [get]
func (h *BrokerHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var filter partnerapp.BrokerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	brokers, err := h.brokerService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, brokers)
}

// Update godoc
// @Summary      Update a broker
// @Tags         brokers
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        id path string true "Broker ID" format(uuid)
// @Param        request body partnerapp.UpdateBrokerRequest true "Broker update request"
// @Success      200 {object} dto.Response{data=partnerapp.BrokerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /partner/brokers/{id} [put]
func (h *BrokerHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	brokerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid broker ID format")
		return
	}

	var req partnerapp.UpdateBrokerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	broker, err := h.brokerService.Update(c.Request.Context(), tenantID, brokerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, broker)
}

// Deactivate godoc
// @Summary      Deactivate a broker
// @Description  Deactivated brokers keep their history but are hidden from assignment pickers
// @Tags         brokers
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        id path string true "Broker ID" format(uuid)
// @Success      200 {object} dto.Response{data=partnerapp.BrokerResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /partner/brokers/{id}/deactivate [patch]
func (h *BrokerHandler) Deactivate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	brokerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid broker ID format")
		return
	}

	broker, err := h.brokerService.Deactivate(c.Request.Context(), tenantID, brokerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, broker)
}
