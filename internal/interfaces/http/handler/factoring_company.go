package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	partnerapp "github.com/tms/backend/internal/application/partner"
)

// FactoringCompanyHandler handles factoring company API endpoints
type FactoringCompanyHandler struct {
	BaseHandler
	companyService *partnerapp.FactoringCompanyService
}

// NewFactoringCompanyHandler creates a new FactoringCompanyHandler
func NewFactoringCompanyHandler(companyService *partnerapp.FactoringCompanyService) *FactoringCompanyHandler {
	return &FactoringCompanyHandler{
		companyService: companyService,
	}
}

// Create godoc
// @Summary      Create a new factoring company
// @Description  Create a factoring company whose fee percentage is applied to factored loads
// @Tags         factoring-companies
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        request body partnerapp.CreateFactoringCompanyRequest true "Factoring company creation request"
// @Success      201 {object} dto.Response{data=partnerapp.FactoringCompanyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /partner/factoring-companies [post]
func (h *FactoringCompanyHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var req partnerapp.CreateFactoringCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, company)
}

// GetByID godoc
// @Summary      Get factoring company by ID
// @Tags         factoring-companies
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        id path string true "Factoring Company ID" format(uuid)
// @Success      200 {object} dto.Response{data=partnerapp.FactoringCompanyResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /partner/factoring-companies/{id} [get]
func (h *FactoringCompanyHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid factoring company ID format")
		return
	}

	company, err := h.companyService.GetByID(c.Request.Context(), tenantID, companyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, company)
}

// List godoc
// @Summary      List factoring companies
// @Tags         factoring-companies
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        search query string false "Search term (name)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]partnerapp.FactoringCompanyResponse}
// @Router       /partner/factoring-companies [get]
func (h *FactoringCompanyHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var filter partnerapp.FactoringCompanyListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	companies, err := h.companyService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, companies)
}

// Update godoc
// @Summary      Update a factoring company
// @Description  Update a factoring company. Fee changes only affect future calculations; factored loads keep the fee captured at factoring time.
// @Tags         factoring-companies
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        id path string true "Factoring Company ID" format(uuid)
// @Param        request body partnerapp.UpdateFactoringCompanyRequest true "Factoring company update request"
// @Success      200 {object} dto.Response{data=partnerapp.FactoringCompanyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /partner/factoring-companies/{id} [put]
func (h *FactoringCompanyHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid factoring company ID format")
		return
	}

	var req partnerapp.UpdateFactoringCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	company, err := h.companyService.Update(c.Request.Context(), tenantID, companyID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, company)
}

// SetDefault godoc
// @Summary      Set the default factoring company
// @Description  Mark a factoring company as the tenant default, demoting any current default. The default is used when a factored load names no company.
// @Tags         factoring-companies
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        id path string true "Factoring Company ID" format(uuid)
// @Success      200 {object} dto.Response{data=partnerapp.FactoringCompanyResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /partner/factoring-companies/{id}/default [patch]
func (h *FactoringCompanyHandler) SetDefault(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid factoring company ID format")
		return
	}

	company, err := h.companyService.SetDefault(c.Request.Context(), tenantID, companyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, company)
}
