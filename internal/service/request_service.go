package service

import (
	"context"
	"fmt"
	"time"

	"facility-services-be/internal/dto"
	"facility-services-be/internal/entity"
	"facility-services-be/internal/pkg/serverutils"
	"facility-services-be/internal/repository/specification"
	"facility-services-be/internal/repository/unitofwork"

	"facility-services-be/pkg/events"
	pktNats "facility-services-be/pkg/nats"

	"github.com/google/uuid"
)

type IRequestService interface {
	Create(ctx context.Context, user *AuthContext, req *dto.CreateServiceRequestRequest) (*dto.CreateServiceRequestResponse, error)
	List(ctx context.Context, user *AuthContext, query *dto.ListServiceRequestsQuery) ([]*dto.ServiceRequestResponse, error)
	Approve(ctx context.Context, user *AuthContext, id uuid.UUID) (*dto.TriageActionResponse, error)
	Reject(ctx context.Context, user *AuthContext, id uuid.UUID, req *dto.RejectServiceRequestRequest) (*dto.TriageActionResponse, error)
	Delegate(ctx context.Context, user *AuthContext, id uuid.UUID, req *dto.DelegateServiceRequestRequest) (*dto.TriageActionResponse, error)
}

// AuthContext is the authenticated caller as resolved by the JWT middleware.
type AuthContext struct {
	UserId   uuid.UUID
	Role     entity.UserRole
	ClientId *uuid.UUID
}

type requestService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewRequestService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) IRequestService {
	return &requestService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (s *requestService) Create(ctx context.Context, user *AuthContext, req *dto.CreateServiceRequestRequest) (*dto.CreateServiceRequestResponse, error) {
	if user.Role != entity.UserRoleClient || user.ClientId == nil {
		return nil, serverutils.NewForbidden("only clients can open service requests")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	branch, err := uow.CompanyRepository().FindBranch(ctx, specification.ByID{ID: req.BranchId})
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, serverutils.NewBadRequest("branch not found")
	}
	if branch.CompanyId != *user.ClientId {
		return nil, serverutils.NewForbidden("branch does not belong to your company")
	}

	item, err := uow.CatalogRepository().FindOne(ctx, specification.ByID{ID: req.ServiceCatalogId}, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, serverutils.NewBadRequest("service not found in catalog")
	}

	desiredDate, err := time.Parse("2006-01-02", req.DesiredDate)
	if err != nil {
		return nil, serverutils.NewBadRequest("desired_date must be YYYY-MM-DD")
	}

	status := entity.RequestStatusPending
	if entity.RequestPriority(req.Priority) == entity.RequestPriorityUrgent {
		status = entity.RequestStatusUrgent
	}

	request := &entity.ServiceRequest{
		Id:               uuid.New(),
		CompanyId:        *user.ClientId,
		BranchId:         branch.Id,
		ServiceCatalogId: item.Id,
		RequesterUserId:  user.UserId,
		Priority:         entity.RequestPriority(req.Priority),
		Status:           status,
		DesiredDate:      desiredDate,
		Description:      req.Description,
		CreatedAt:        time.Now(),
	}

	if err := uow.RequestRepository().Create(ctx, request); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, "REQUEST_CREATED", map[string]interface{}{
		"request_id":  request.Id,
		"company_id":  request.CompanyId,
		"branch_id":   request.BranchId,
		"priority":    string(request.Priority),
		"service":     item.Name,
		"entity_type": "service-request",
		"entity_id":   request.Id,
	})

	return &dto.CreateServiceRequestResponse{Id: request.Id, Status: string(request.Status)}, nil
}

func (s *requestService) List(ctx context.Context, user *AuthContext, query *dto.ListServiceRequestsQuery) ([]*dto.ServiceRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{}
	switch user.Role {
	case entity.UserRoleClient:
		if user.ClientId == nil {
			return nil, serverutils.NewForbidden("no company bound to this account")
		}
		specs = append(specs, specification.ByCompanyID{CompanyID: *user.ClientId})

	case entity.UserRoleCollaborator:
		return nil, serverutils.NewForbidden("collaborators have no access to the request queue")

	case entity.UserRoleManager:
		areaIds, err := uow.UserRepository().FindAreaIdsByUser(ctx, user.UserId)
		if err != nil {
			return nil, err
		}
		specs = append(specs, specification.VisibleToManager{ManagerID: user.UserId, AreaIDs: areaIds})
		if query.Status == "" {
			specs = append(specs, specification.StatusIn{Statuses: requestStatusStrings(entity.ActiveRequestStatuses)})
		}

	case entity.UserRoleAdmin:
		// Full visibility.
	}

	if query.Status != "" {
		specs = append(specs, specification.ByStatus{Status: query.Status})
	}
	if query.Priority != "" {
		specs = append(specs, specification.ByPriority{Priority: query.Priority})
	}
	specs = append(specs, specification.TriageOrder{})

	requests, err := uow.RequestRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	return s.decorate(ctx, uow, requests)
}

// decorate joins display names onto request rows for dashboard listing.
func (s *requestService) decorate(ctx context.Context, uow unitofwork.UnitOfWork, requests []*entity.ServiceRequest) ([]*dto.ServiceRequestResponse, error) {
	companyNames := map[uuid.UUID]string{}
	branchNames := map[uuid.UUID]string{}
	serviceNames := map[uuid.UUID]string{}

	res := make([]*dto.ServiceRequestResponse, 0, len(requests))
	for _, r := range requests {
		if _, ok := companyNames[r.CompanyId]; !ok {
			if company, err := uow.CompanyRepository().FindOne(ctx, specification.ByID{ID: r.CompanyId}); err == nil && company != nil {
				companyNames[r.CompanyId] = company.Name
			}
		}
		if _, ok := branchNames[r.BranchId]; !ok {
			if branch, err := uow.CompanyRepository().FindBranch(ctx, specification.ByID{ID: r.BranchId}); err == nil && branch != nil {
				branchNames[r.BranchId] = branch.Name
			}
		}
		if _, ok := serviceNames[r.ServiceCatalogId]; !ok {
			if item, err := uow.CatalogRepository().FindOne(ctx, specification.ByID{ID: r.ServiceCatalogId}); err == nil && item != nil {
				serviceNames[r.ServiceCatalogId] = item.Name
			}
		}

		res = append(res, &dto.ServiceRequestResponse{
			Id:                    r.Id,
			CompanyId:             r.CompanyId,
			CompanyName:           companyNames[r.CompanyId],
			BranchId:              r.BranchId,
			BranchName:            branchNames[r.BranchId],
			ServiceCatalogId:      r.ServiceCatalogId,
			ServiceName:           serviceNames[r.ServiceCatalogId],
			RequesterUserId:       r.RequesterUserId,
			AssignedManagerUserId: r.AssignedManagerUserId,
			Priority:              string(r.Priority),
			Status:                string(r.Status),
			DesiredDate:           r.DesiredDate,
			Description:           r.Description,
			RejectionReason:       r.RejectionReason,
			CreatedAt:             r.CreatedAt,
		})
	}
	return res, nil
}

// loadForTriage fetches the request and enforces the manager scoping rule.
func (s *requestService) loadForTriage(ctx context.Context, uow unitofwork.UnitOfWork, user *AuthContext, id uuid.UUID) (*entity.ServiceRequest, error) {
	request, err := uow.RequestRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, serverutils.NewNotFound("service request not found")
	}

	switch user.Role {
	case entity.UserRoleAdmin:
		return request, nil
	case entity.UserRoleManager:
		if request.AssignedManagerUserId != nil && *request.AssignedManagerUserId == user.UserId {
			return request, nil
		}
		areaIds, err := uow.UserRepository().FindAreaIdsByUser(ctx, user.UserId)
		if err != nil {
			return nil, err
		}
		branch, err := uow.CompanyRepository().FindBranch(ctx, specification.ByID{ID: request.BranchId})
		if err != nil {
			return nil, err
		}
		if branch != nil {
			for _, areaId := range areaIds {
				if areaId == branch.AreaId {
					return request, nil
				}
			}
		}
		return nil, serverutils.NewForbidden("request is outside your areas")
	default:
		return nil, serverutils.NewForbidden("triage requires manager access")
	}
}

func (s *requestService) Approve(ctx context.Context, user *AuthContext, id uuid.UUID) (*dto.TriageActionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := s.loadForTriage(ctx, uow, user, id)
	if err != nil {
		return nil, err
	}
	if !request.Status.CanTransitionTo(entity.RequestStatusApproved) {
		return nil, serverutils.NewBadRequest(fmt.Sprintf("cannot approve a request in status %s", request.Status))
	}

	request.Status = entity.RequestStatusApproved
	if err := uow.RequestRepository().Update(ctx, request); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, "REQUEST_APPROVED", map[string]interface{}{
		"request_id":  request.Id,
		"company_id":  request.CompanyId,
		"user_id":     request.RequesterUserId,
		"entity_type": "service-request",
		"entity_id":   request.Id,
	})

	return &dto.TriageActionResponse{Id: request.Id, Status: string(request.Status)}, nil
}

func (s *requestService) Reject(ctx context.Context, user *AuthContext, id uuid.UUID, req *dto.RejectServiceRequestRequest) (*dto.TriageActionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := s.loadForTriage(ctx, uow, user, id)
	if err != nil {
		return nil, err
	}
	if !request.Status.CanTransitionTo(entity.RequestStatusRejected) {
		return nil, serverutils.NewBadRequest(fmt.Sprintf("cannot reject a request in status %s", request.Status))
	}

	request.Status = entity.RequestStatusRejected
	request.RejectionReason = &req.Reason
	if err := uow.RequestRepository().Update(ctx, request); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, "REQUEST_REJECTED", map[string]interface{}{
		"request_id":  request.Id,
		"company_id":  request.CompanyId,
		"user_id":     request.RequesterUserId,
		"reason":      req.Reason,
		"entity_type": "service-request",
		"entity_id":   request.Id,
	})

	return &dto.TriageActionResponse{Id: request.Id, Status: string(request.Status)}, nil
}

func (s *requestService) Delegate(ctx context.Context, user *AuthContext, id uuid.UUID, req *dto.DelegateServiceRequestRequest) (*dto.TriageActionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := s.loadForTriage(ctx, uow, user, id)
	if err != nil {
		return nil, err
	}
	if !request.Status.CanTransitionTo(entity.RequestStatusDelegated) {
		return nil, serverutils.NewBadRequest(fmt.Sprintf("cannot delegate a request in status %s", request.Status))
	}

	target, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: req.ManagerUserId})
	if err != nil {
		return nil, err
	}
	if target == nil || target.Role != entity.UserRoleManager || !target.IsActive {
		return nil, serverutils.NewBadRequest("delegation target must be an active manager")
	}

	request.Status = entity.RequestStatusDelegated
	request.AssignedManagerUserId = &target.Id
	if err := uow.RequestRepository().Update(ctx, request); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, "REQUEST_DELEGATED", map[string]interface{}{
		"request_id":  request.Id,
		"user_id":     target.Id,
		"actor_id":    user.UserId,
		"entity_type": "service-request",
		"entity_id":   request.Id,
	})

	return &dto.TriageActionResponse{Id: request.Id, Status: string(request.Status)}, nil
}

func (s *requestService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	event := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
	}
}

func requestStatusStrings(statuses []entity.RequestStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, string(st))
	}
	return out
}
