package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	eventapp "github.com/tms/backend/internal/application/event"
)

// OutboxHandler exposes the outbox dead-letter queue for operators. Entries
// land here after exhausting their retries; the endpoints allow inspecting
// and re-queueing them.
type OutboxHandler struct {
	BaseHandler
	outboxService *eventapp.OutboxService
}

// NewOutboxHandler creates a new OutboxHandler
func NewOutboxHandler(outboxService *eventapp.OutboxService) *OutboxHandler {
	return &OutboxHandler{
		outboxService: outboxService,
	}
}

// GetStats godoc
// @Summary      Get outbox statistics
// @Description  Return entry counts per outbox status
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=eventapp.OutboxStatsDTO}
// @Router       /system/outbox/stats [get]
func (h *OutboxHandler) GetStats(c *gin.Context) {
	stats, err := h.outboxService.GetStats(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, stats)
}

// ListDeadLetters godoc
// @Summary      List dead-lettered outbox entries
// @Description  Return entries that exhausted their retries and need operator attention
// @Tags         system
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=eventapp.OutboxListResult}
// @Router       /system/outbox/dead-letters [get]
func (h *OutboxHandler) ListDeadLetters(c *gin.Context) {
	var filter eventapp.OutboxFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.outboxService.GetDeadLetterEntries(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// GetEntry godoc
// @Summary      Get an outbox entry
// @Tags         system
// @Produce      json
// @Param        id path string true "Entry ID" format(uuid)
// @Success      200 {object} dto.Response{data=eventapp.OutboxEntryDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /system/outbox/entries/{id} [get]
func (h *OutboxHandler) GetEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entry ID format")
		return
	}

	entry, err := h.outboxService.GetEntry(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, entry)
}

// RetryEntry godoc
// @Summary      Re-queue a dead-lettered entry
// @Description  Reset a dead entry so the processor picks it up again
// @Tags         system
// @Produce      json
// @Param        id path string true "Entry ID" format(uuid)
// @Success      200 {object} dto.Response{data=eventapp.OutboxEntryDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /system/outbox/entries/{id}/retry [post]
func (h *OutboxHandler) RetryEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entry ID format")
		return
	}

	entry, err := h.outboxService.RetryDeadEntry(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, entry)
}

// RetryAll godoc
// @Summary      Re-queue all dead-lettered entries
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /system/outbox/dead-letters/retry [post]
func (h *OutboxHandler) RetryAll(c *gin.Context) {
	count, err := h.outboxService.RetryAllDeadEntries(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"retried": count})
}
