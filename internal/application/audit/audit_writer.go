package audit

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/tms/backend/internal/domain/audit"
	"github.com/tms/backend/internal/domain/shared"
)

// Writer records audit entries without ever failing the caller's primary
// operation. When the primary sink rejects a write, the entry is queued on
// the transactional outbox and delivered in the background.
type Writer struct {
	repo   audit.Repository
	outbox shared.OutboxRepository
	logger *zap.Logger
}

// NewWriter creates a new audit Writer
func NewWriter(repo audit.Repository, outbox shared.OutboxRepository, logger *zap.Logger) *Writer {
	return &Writer{
		repo:   repo,
		outbox: outbox,
		logger: logger,
	}
}

// Record persists an audit entry. The primary sink is tried first; on failure
// the entry rides the outbox retry queue. Only when both sinks fail is the
// entry lost, and that is logged at error level.
func (w *Writer) Record(ctx context.Context, entry *audit.Entry) {
	appendErr := w.repo.Append(ctx, entry)
	if appendErr == nil {
		return
	}
	w.logger.Warn("audit append failed, queueing entry on outbox",
		zap.String("entity_type", entry.EntityType),
		zap.String("entity_id", entry.EntityID.String()),
		zap.String("action", entry.Action.String()),
		zap.Error(appendErr),
	)

	event := audit.NewEntryRecordedEvent(entry)
	payload, err := json.Marshal(event)
	if err != nil {
		w.logger.Error("audit entry could not be serialized for the outbox",
			zap.String("entity_id", entry.EntityID.String()),
			zap.Error(err),
		)
		return
	}

	outboxEntry := shared.NewOutboxEntry(entry.TenantID, event, payload)
	if err := w.outbox.Save(ctx, outboxEntry); err != nil {
		w.logger.Error("audit entry lost: outbox save failed after primary sink failure",
			zap.String("entity_id", entry.EntityID.String()),
			zap.String("action", entry.Action.String()),
			zap.Error(err),
		)
	}
}
