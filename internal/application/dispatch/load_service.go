package dispatch

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/tms/backend/internal/domain/audit"
	"github.com/tms/backend/internal/domain/dispatch"
	"github.com/tms/backend/internal/domain/fleet"
	"github.com/tms/backend/internal/domain/partner"
	"github.com/tms/backend/internal/domain/shared"
)

// AuditRecorder records audit entries. Recording never fails the caller's
// primary operation.
type AuditRecorder interface {
	Record(ctx context.Context, entry *audit.Entry)
}

// LoadService handles load business operations: creation, the recalculation
// cascade, the post-delivery lock policy, status flow, and the audit trail.
type LoadService struct {
	loadRepo       dispatch.LoadRepository
	driverRepo     fleet.DriverRepository
	dispatcherRepo fleet.DispatcherRepository
	brokerRepo     partner.BrokerRepository
	factoringRepo  partner.FactoringCompanyRepository
	auditor        AuditRecorder
}

// NewLoadService creates a new LoadService
func NewLoadService(
	loadRepo dispatch.LoadRepository,
	driverRepo fleet.DriverRepository,
	dispatcherRepo fleet.DispatcherRepository,
	brokerRepo partner.BrokerRepository,
	factoringRepo partner.FactoringCompanyRepository,
	auditor AuditRecorder,
) *LoadService {
	return &LoadService{
		loadRepo:       loadRepo,
		driverRepo:     driverRepo,
		dispatcherRepo: dispatcherRepo,
		brokerRepo:     brokerRepo,
		factoringRepo:  factoringRepo,
		auditor:        auditor,
	}
}

// Create creates a new load, runs the full calculation cascade, and records a
// CREATE audit entry
func (s *LoadService) Create(ctx context.Context, tenantID uuid.UUID, actor Actor, req CreateLoadRequest) (*LoadResponse, error) {
	loadNumber := strings.TrimSpace(req.LoadNumber)
	if loadNumber == "" {
		generated, err := s.loadRepo.GenerateLoadNumber(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		loadNumber = generated
	}

	load, err := dispatch.NewLoad(tenantID, loadNumber, req.Rate, req.Miles)
	if err != nil {
		return nil, err
	}

	if err := s.applyCreateRequest(ctx, load, req); err != nil {
		return nil, err
	}

	warnings, err := s.recalculate(ctx, load)
	if err != nil {
		return nil, err
	}

	if err := s.loadRepo.Save(ctx, load); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, tenantID, actor, load.ID, audit.ActionCreate, nil, dispatch.SnapshotFields(load), "")

	response := ToLoadResponse(load)
	response.Warnings = warnings
	return &response, nil
}

// GetByID retrieves a load by ID
func (s *LoadService) GetByID(ctx context.Context, tenantID, loadID uuid.UUID) (*LoadResponse, error) {
	load, err := s.loadRepo.FindByIDForTenant(ctx, tenantID, loadID)
	if err != nil {
		return nil, err
	}
	response := ToLoadResponse(load)
	return &response, nil
}

// GetByLoadNumber retrieves a load by load number
func (s *LoadService) GetByLoadNumber(ctx context.Context, tenantID uuid.UUID, loadNumber string) (*LoadResponse, error) {
	load, err := s.loadRepo.FindByLoadNumber(ctx, tenantID, loadNumber)
	if err != nil {
		return nil, err
	}
	response := ToLoadResponse(load)
	return &response, nil
}

// List retrieves loads with filtering and pagination
func (s *LoadService) List(ctx context.Context, tenantID uuid.UUID, filter LoadListFilter) ([]LoadListItemResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	if filter.Status != nil {
		domainFilter.Filters["status"] = string(*filter.Status)
	}
	if filter.DriverID != nil {
		domainFilter.Filters["driver_id"] = *filter.DriverID
	}
	if filter.DispatcherID != nil {
		domainFilter.Filters["dispatcher_id"] = *filter.DispatcherID
	}
	if filter.BrokerID != nil {
		domainFilter.Filters["broker_id"] = *filter.BrokerID
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	loads, err := s.loadRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.loadRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToLoadListItemResponses(loads), total, nil
}

// EvaluateUpdate dry-runs a proposed update through the lock policy without
// persisting anything. Callers use it to learn whether a reason will be
// required before committing the change.
func (s *LoadService) EvaluateUpdate(ctx context.Context, tenantID, loadID uuid.UUID, req UpdateLoadRequest) (*UpdateEvaluationResponse, error) {
	stored, err := s.loadRepo.FindByIDForTenant(ctx, tenantID, loadID)
	if err != nil {
		return nil, err
	}

	candidate := stored.Clone()
	if err := s.applyUpdateRequest(ctx, candidate, req); err != nil {
		return nil, err
	}

	// The cascade runs before the policy so derived fields like grand_total
	// are part of the diff the policy inspects.
	if _, err := s.recalculate(ctx, candidate); err != nil {
		return nil, err
	}

	eval := dispatch.EvaluateUpdate(stored, candidate, req.Reason)
	response := ToUpdateEvaluationResponse(eval)
	return &response, nil
}

// ApplyUpdate applies a partial update to a load. The stored load is re-read,
// the calculation cascade is re-run on the candidate, the candidate is diffed
// against that read, the lock policy is enforced, and the save is
// version-checked. Material
// changes to a locked load are recorded as ADJUSTMENT audit entries carrying
// the reason; everything else is recorded as UPDATE.
func (s *LoadService) ApplyUpdate(ctx context.Context, tenantID, loadID uuid.UUID, actor Actor, req UpdateLoadRequest) (*LoadResponse, error) {
	stored, err := s.loadRepo.FindByIDForTenant(ctx, tenantID, loadID)
	if err != nil {
		return nil, err
	}

	candidate := stored.Clone()
	if err := s.applyUpdateRequest(ctx, candidate, req); err != nil {
		return nil, err
	}

	// The cascade must run before the policy: an edit to a recompute input
	// (an accessorial, a driver slot) moves derived material fields like
	// grand_total, and the policy has to see those moves in the diff.
	warnings, err := s.recalculate(ctx, candidate)
	if err != nil {
		return nil, err
	}

	eval := dispatch.EvaluateUpdate(stored, candidate, req.Reason)
	if !eval.Allowed {
		return nil, &dispatch.ReasonRequiredError{ChangedFields: eval.ChangedFields}
	}

	diff := eval.Diff
	if len(diff) == 0 {
		response := ToLoadResponse(stored)
		return &response, nil
	}

	reason := strings.TrimSpace(req.Reason)
	if eval.Action == audit.ActionAdjustment {
		candidate.AddDomainEvent(dispatch.NewLoadAdjustedEvent(candidate, eval.ChangedFields, reason))
	}

	if err := s.loadRepo.SaveWithLock(ctx, candidate); err != nil {
		return nil, err
	}

	before := make(map[string]any, len(diff))
	after := make(map[string]any, len(diff))
	for field, change := range diff {
		before[field] = change.Before
		after[field] = change.After
	}
	s.recordAudit(ctx, tenantID, actor, candidate.ID, eval.Action, before, after, reason)

	response := ToLoadResponse(candidate)
	response.Warnings = warnings
	return &response, nil
}

// ChangeStatus moves a load through the normal dispatch flow and records a
// STATUS_CHANGE audit entry
func (s *LoadService) ChangeStatus(ctx context.Context, tenantID, loadID uuid.UUID, actor Actor, req ChangeLoadStatusRequest) (*LoadResponse, error) {
	load, err := s.loadRepo.FindByIDForTenant(ctx, tenantID, loadID)
	if err != nil {
		return nil, err
	}

	from := load.Status
	if err := load.TransitionTo(req.Status); err != nil {
		return nil, err
	}

	if err := s.loadRepo.SaveWithLock(ctx, load); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, tenantID, actor, load.ID, audit.ActionStatusChange,
		map[string]any{"status": from.String()},
		map[string]any{"status": load.Status.String()},
		"",
	)

	response := ToLoadResponse(load)
	return &response, nil
}

// Delete removes a load and records a DELETE audit entry with the final
// snapshot. Locked loads cannot be deleted.
func (s *LoadService) Delete(ctx context.Context, tenantID, loadID uuid.UUID, actor Actor) error {
	load, err := s.loadRepo.FindByIDForTenant(ctx, tenantID, loadID)
	if err != nil {
		return err
	}

	if load.IsLocked() {
		return shared.NewDomainError("INVALID_STATE", "Delivered and completed loads cannot be deleted")
	}

	if err := s.loadRepo.DeleteForTenant(ctx, tenantID, loadID); err != nil {
		return err
	}

	s.recordAudit(ctx, tenantID, actor, load.ID, audit.ActionDelete, dispatch.SnapshotFields(load), nil, "")
	return nil
}

// GetStatusSummary retrieves load counts by status for a tenant
func (s *LoadService) GetStatusSummary(ctx context.Context, tenantID uuid.UUID) (*LoadStatusSummary, error) {
	summary := &LoadStatusSummary{}
	counts := []struct {
		status dispatch.LoadStatus
		target *int64
	}{
		{dispatch.LoadStatusAvailable, &summary.Available},
		{dispatch.LoadStatusDispatched, &summary.Dispatched},
		{dispatch.LoadStatusInTransit, &summary.InTransit},
		{dispatch.LoadStatusDelivered, &summary.Delivered},
		{dispatch.LoadStatusCompleted, &summary.Completed},
		{dispatch.LoadStatusCancelled, &summary.Cancelled},
		{dispatch.LoadStatusTONU, &summary.TONU},
	}

	for _, c := range counts {
		count, err := s.loadRepo.CountByStatus(ctx, tenantID, c.status)
		if err != nil {
			return nil, err
		}
		*c.target = count
		summary.Total += count
	}

	return summary, nil
}

// recalculate resolves the load's collaborator profiles and re-runs the
// calculation cascade
func (s *LoadService) recalculate(ctx context.Context, load *dispatch.Load) ([]dispatch.Warning, error) {
	calcCtx, err := s.buildCalculationContext(ctx, load)
	if err != nil {
		return nil, err
	}
	return load.RecalculateFinancials(calcCtx)
}

// buildCalculationContext loads the driver, dispatcher and factoring company
// profiles the cascade resolves rates from. A factored load with no company
// selected falls back to the tenant's flagged default.
func (s *LoadService) buildCalculationContext(ctx context.Context, load *dispatch.Load) (dispatch.CalculationContext, error) {
	var calcCtx dispatch.CalculationContext

	if load.Driver.IsAssigned() {
		driver, err := s.driverRepo.FindByIDForTenant(ctx, load.TenantID, *load.Driver.DriverID)
		if err != nil {
			return calcCtx, err
		}
		calcCtx.PrimaryDriver = driver
		load.Driver.DriverName = driver.Name
	}

	if load.Driver2.IsAssigned() {
		driver, err := s.driverRepo.FindByIDForTenant(ctx, load.TenantID, *load.Driver2.DriverID)
		if err != nil {
			return calcCtx, err
		}
		calcCtx.SecondDriver = driver
		load.Driver2.DriverName = driver.Name
	}

	if load.DispatcherID != nil && *load.DispatcherID != uuid.Nil {
		dispatcher, err := s.dispatcherRepo.FindByIDForTenant(ctx, load.TenantID, *load.DispatcherID)
		if err != nil {
			return calcCtx, err
		}
		calcCtx.Dispatcher = dispatcher
	}

	if load.IsFactored {
		company, err := s.resolveFactoringCompany(ctx, load)
		if err != nil {
			return calcCtx, err
		}
		calcCtx.FactoringCompany = company
	}

	return calcCtx, nil
}

func (s *LoadService) resolveFactoringCompany(ctx context.Context, load *dispatch.Load) (*partner.FactoringCompany, error) {
	if load.FactoringCompanyID != nil && *load.FactoringCompanyID != uuid.Nil {
		return s.factoringRepo.FindByIDForTenant(ctx, load.TenantID, *load.FactoringCompanyID)
	}

	company, err := s.factoringRepo.FindDefaultForTenant(ctx, load.TenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// No default configured. The factoring calculator surfaces the
			// missing fee as a warning with a zero amount.
			return nil, nil
		}
		return nil, err
	}
	load.FactoringCompanyID = &company.ID
	return company, nil
}

func (s *LoadService) applyCreateRequest(ctx context.Context, load *dispatch.Load, req CreateLoadRequest) error {
	load.OriginCity = req.OriginCity
	load.OriginState = req.OriginState
	load.DestCity = req.DestCity
	load.DestState = req.DestState
	load.PickupDate = req.PickupDate
	load.DeliveryDate = req.DeliveryDate
	load.CustomerName = req.CustomerName
	load.IsTeamLoad = req.IsTeamLoad
	load.DispatcherID = req.DispatcherID
	load.TruckID = req.TruckID
	load.TrailerID = req.TrailerID
	load.Notes = req.Notes

	if req.Driver != nil {
		load.Driver = toDriverSlot(*req.Driver)
	}
	if req.Driver2 != nil {
		load.Driver2 = toDriverSlot(*req.Driver2)
	}

	if err := s.applyBroker(ctx, load, req.BrokerID, req.BrokerName); err != nil {
		return err
	}

	if req.Accessorials != nil {
		load.Accessorials = req.Accessorials.toDomain()
	}

	if req.Factoring != nil {
		applyFactoring(load, *req.Factoring)
	}

	return nil
}

func (s *LoadService) applyUpdateRequest(ctx context.Context, load *dispatch.Load, req UpdateLoadRequest) error {
	if req.Rate != nil {
		load.Rate = *req.Rate
	}
	if req.Miles != nil {
		load.Miles = *req.Miles
	}
	if req.OriginCity != nil {
		load.OriginCity = *req.OriginCity
	}
	if req.OriginState != nil {
		load.OriginState = *req.OriginState
	}
	if req.DestCity != nil {
		load.DestCity = *req.DestCity
	}
	if req.DestState != nil {
		load.DestState = *req.DestState
	}
	if req.PickupDate != nil {
		load.PickupDate = req.PickupDate
	}
	if req.DeliveryDate != nil {
		load.DeliveryDate = req.DeliveryDate
	}
	if req.CustomerName != nil {
		load.CustomerName = *req.CustomerName
	}

	if req.Status != nil && *req.Status != load.Status {
		if load.Status.IsLocked() {
			// Reverting a delivered/completed load bypasses the flow table;
			// the lock policy gates it on a reason instead.
			if err := load.OverrideStatus(*req.Status); err != nil {
				return err
			}
		} else if err := load.TransitionTo(*req.Status); err != nil {
			return err
		}
	}

	if req.ClearDriver {
		load.Driver = dispatch.DriverSlot{}
	} else if req.Driver != nil {
		load.Driver = toDriverSlot(*req.Driver)
	}
	if req.ClearDriver2 {
		load.Driver2 = dispatch.DriverSlot{}
	} else if req.Driver2 != nil {
		load.Driver2 = toDriverSlot(*req.Driver2)
	}
	if req.IsTeamLoad != nil {
		load.IsTeamLoad = *req.IsTeamLoad
	}

	if req.DispatcherID != nil {
		if *req.DispatcherID == uuid.Nil {
			load.DispatcherID = nil
		} else {
			load.DispatcherID = req.DispatcherID
		}
	}
	if req.TruckID != nil {
		load.TruckID = req.TruckID
	}
	if req.TrailerID != nil {
		load.TrailerID = req.TrailerID
	}

	if req.BrokerID != nil || req.BrokerName != nil {
		name := load.BrokerName
		if req.BrokerName != nil {
			name = *req.BrokerName
		}
		if err := s.applyBroker(ctx, load, req.BrokerID, name); err != nil {
			return err
		}
	}

	if req.Accessorials != nil {
		load.Accessorials = req.Accessorials.toDomain()
	}

	if req.Factoring != nil {
		applyFactoring(load, *req.Factoring)
	}

	if req.Notes != nil {
		load.Notes = *req.Notes
	}

	return nil
}

// applyBroker sets the broker reference, resolving the display name from the
// broker record when an ID is given
func (s *LoadService) applyBroker(ctx context.Context, load *dispatch.Load, brokerID *uuid.UUID, brokerName string) error {
	if brokerID != nil && *brokerID != uuid.Nil {
		broker, err := s.brokerRepo.FindByIDForTenant(ctx, load.TenantID, *brokerID)
		if err != nil {
			return err
		}
		load.BrokerID = brokerID
		load.BrokerName = broker.Name
		return nil
	}
	if brokerID != nil {
		load.BrokerID = nil
	}
	load.BrokerName = brokerName
	return nil
}

// applyFactoring applies the factoring toggle. Toggling off clears every
// dependent field in one step.
func applyFactoring(load *dispatch.Load, in FactoringInput) {
	if !in.IsFactored {
		load.ClearFactoring()
		return
	}
	load.IsFactored = true
	load.FactoringCompanyID = in.FactoringCompanyID
	load.FactoringFeePercent = in.FeePercent
	load.FactoredDate = in.FactoredDate
}

func (s *LoadService) recordAudit(ctx context.Context, tenantID uuid.UUID, actor Actor, loadID uuid.UUID, action audit.Action, before, after map[string]any, reason string) {
	entry, err := audit.NewEntry(tenantID, actor.UID, actor.Role, dispatch.AggregateTypeLoad, loadID, action, before, after, reason)
	if err != nil {
		// The primary operation already succeeded; a malformed entry is
		// dropped rather than rolled back.
		return
	}
	s.auditor.Record(ctx, entry)
}

func toDriverSlot(in DriverSlotInput) dispatch.DriverSlot {
	id := in.DriverID
	return dispatch.DriverSlot{
		DriverID:        &id,
		PayTypeOverride: in.PayTypeOverride,
		PayRateOverride: in.PayRateOverride,
	}
}
