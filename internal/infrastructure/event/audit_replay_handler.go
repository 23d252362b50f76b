package event

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tms/backend/internal/domain/audit"
	"github.com/tms/backend/internal/domain/shared"
)

// AuditReplayHandler replays queued audit entries into the audit repository.
// Entries land on the outbox only when the primary append failed, so a replay
// failure here must surface as an error: the processor then retries with
// backoff instead of losing the record.
type AuditReplayHandler struct {
	repo   audit.Repository
	logger *zap.Logger
}

// NewAuditReplayHandler creates a new AuditReplayHandler
func NewAuditReplayHandler(repo audit.Repository, logger *zap.Logger) *AuditReplayHandler {
	return &AuditReplayHandler{
		repo:   repo,
		logger: logger,
	}
}

// Handle appends the wrapped audit entry to the audit trail
func (h *AuditReplayHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	recorded, ok := evt.(*audit.EntryRecordedEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T for type %s", evt, evt.EventType())
	}
	if recorded.Entry == nil {
		return fmt.Errorf("audit event %s carries no entry", evt.EventID())
	}

	if err := h.repo.Append(ctx, recorded.Entry); err != nil {
		return err
	}

	h.logger.Info("replayed audit entry from outbox",
		zap.String("entry_id", recorded.Entry.ID.String()),
		zap.String("entity_type", recorded.Entry.EntityType),
		zap.String("entity_id", recorded.Entry.EntityID.String()),
		zap.String("action", recorded.Entry.Action.String()),
	)
	return nil
}

// EventTypes returns the event types this handler subscribes to
func (h *AuditReplayHandler) EventTypes() []string {
	return []string{audit.EventTypeEntryRecorded}
}

// Ensure AuditReplayHandler implements EventHandler
var _ shared.EventHandler = (*AuditReplayHandler)(nil)
