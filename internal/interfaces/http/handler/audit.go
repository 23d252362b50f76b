package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	auditapp "github.com/tms/backend/internal/application/audit"
	"github.com/tms/backend/internal/domain/dispatch"
)

// AuditHandler handles audit trail API endpoints. The trail is read-only
// over HTTP; entries are written by the services performing the mutations.
type AuditHandler struct {
	BaseHandler
	queryService *auditapp.QueryService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(queryService *auditapp.QueryService) *AuditHandler {
	return &AuditHandler{
		queryService: queryService,
	}
}

// ListForLoad godoc
// @Summary      Get the audit trail for a load
// @Description  Retrieve audit entries for a load in reverse chronological order, including post-delivery adjustments with their reasons
// @Tags         audit
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        id path string true "Load ID" format(uuid)
// @Param        action query string false "Action filter" Enums(create, update, delete, status_change, adjustment)
// @Param        actor_uid query string false "Actor UID filter"
// @Param        start_date query string false "Created from (ISO 8601)" format(date-time)
// @Param        end_date query string false "Created to (ISO 8601)" format(date-time)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]auditapp.EntryResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /audit/loads/{id} [get]
func (h *AuditHandler) ListForLoad(c *gin.Context) {
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

	var filter auditapp.TrailListFilter
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

	entries, total, err := h.queryService.ListForEntity(c.Request.Context(), tenantID, dispatch.AggregateTypeLoad, loadID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// List godoc
// @Summary      List audit entries for the tenant
// @Description  Retrieve audit entries across all entities, filterable by action, actor and date range
// @Tags         audit
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID" format(uuid)
// @Param        action query string false "Action filter" Enums(create, update, delete, status_change, adjustment)
// @Param        actor_uid query string false "Actor UID filter"
// @Param        start_date query string false "Created from (ISO 8601)" format(date-time)
// @Param        end_date query string false "Created to (ISO 8601)" format(date-time)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]auditapp.EntryResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /audit/entries [get]
func (h *AuditHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var filter auditapp.TrailListFilter
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

	entries, total, err := h.queryService.ListForTenant(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}
