package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/tms/backend/internal/domain/audit"
	"github.com/tms/backend/internal/domain/shared"
)

// QueryService serves read access to the audit trail
type QueryService struct {
	repo audit.Repository
}

// NewQueryService creates a new QueryService
func NewQueryService(repo audit.Repository) *QueryService {
	return &QueryService{repo: repo}
}

// ListForEntity returns the audit trail for a single entity, newest first
func (s *QueryService) ListForEntity(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID, filter TrailListFilter) ([]EntryResponse, int64, error) {
	entries, total, err := s.repo.FindByEntity(ctx, tenantID, entityType, entityID, toDomainFilter(filter))
	if err != nil {
		return nil, 0, err
	}
	return ToEntryResponses(entries), total, nil
}

// ListForTenant returns audit entries across a tenant, newest first
func (s *QueryService) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter TrailListFilter) ([]EntryResponse, int64, error) {
	entries, total, err := s.repo.FindForTenant(ctx, tenantID, toDomainFilter(filter))
	if err != nil {
		return nil, 0, err
	}
	return ToEntryResponses(entries), total, nil
}

func toDomainFilter(filter TrailListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Action != "" {
		domainFilter.Filters["action"] = filter.Action
	}
	if filter.ActorUID != "" {
		domainFilter.Filters["actor_uid"] = filter.ActorUID
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}
	return domainFilter
}
