package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"facility-services-be/internal/dto"
	"facility-services-be/internal/entity"
	"facility-services-be/internal/pkg/serverutils"
	"facility-services-be/internal/repository/specification"
	"facility-services-be/internal/repository/unitofwork"

	"facility-services-be/pkg/events"
	pktNats "facility-services-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const scheduleStatsTTL = 60 * time.Second

type IScheduleService interface {
	Create(ctx context.Context, user *AuthContext, req *dto.CreateScheduleRequest) (*dto.ScheduledServiceResponse, error)
	List(ctx context.Context, user *AuthContext, query *dto.ListScheduleQuery) ([]*dto.ScheduledServiceResponse, error)
	Stats(ctx context.Context, user *AuthContext) (*dto.ScheduleStatsResponse, error)
	UpdateStatus(ctx context.Context, user *AuthContext, id uuid.UUID, req *dto.UpdateScheduleStatusRequest) (*dto.ScheduledServiceResponse, error)
	Cancel(ctx context.Context, user *AuthContext, id uuid.UUID) error
	SavePhoto(ctx context.Context, user *AuthContext, id uuid.UUID, file *multipart.FileHeader, caption string, storedPath string) (*dto.UploadPhotoResponse, error)
	ListPhotos(ctx context.Context, user *AuthContext, id uuid.UUID) ([]*dto.ServicePhotoResponse, error)
}

type scheduleService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	redisClient      *redis.Client
}

func NewScheduleService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService, eventPublisher *pktNats.Publisher, redisClient *redis.Client) IScheduleService {
	return &scheduleService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		redisClient:      redisClient,
	}
}

func (s *scheduleService) Create(ctx context.Context, user *AuthContext, req *dto.CreateScheduleRequest) (*dto.ScheduledServiceResponse, error) {
	if user.Role != entity.UserRoleManager && user.Role != entity.UserRoleAdmin {
		return nil, serverutils.NewForbidden("scheduling requires manager access")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.RequestRepository().FindOne(ctx, specification.ByID{ID: req.ServiceRequestId})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, serverutils.NewNotFound("service request not found")
	}
	if request.Status != entity.RequestStatusApproved {
		return nil, serverutils.NewBadRequest(fmt.Sprintf("request must be approved before scheduling, current status is %s", request.Status))
	}

	existing, err := uow.ScheduleRepository().FindOne(ctx, specification.ByServiceRequestID{ServiceRequestID: request.Id})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.NewBadRequest("request already has a scheduled service")
	}

	collaborator, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: req.CollaboratorUserId})
	if err != nil {
		return nil, err
	}
	if collaborator == nil || collaborator.Role != entity.UserRoleCollaborator || !collaborator.IsActive {
		return nil, serverutils.NewBadRequest("collaborator must be an active collaborator account")
	}

	scheduledDate, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		return nil, serverutils.NewBadRequest("scheduled_date must be YYYY-MM-DD")
	}

	schedule := &entity.ScheduledService{
		Id:                 uuid.New(),
		ServiceRequestId:   request.Id,
		CompanyId:          request.CompanyId,
		BranchId:           request.BranchId,
		CollaboratorUserId: &collaborator.Id,
		ScheduledDate:      scheduledDate,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		Status:             entity.ScheduleStatusScheduled,
		CreatedAt:          time.Now(),
	}
	if req.Notes != "" {
		schedule.Notes = &req.Notes
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ScheduleRepository().Create(ctx, schedule); err != nil {
		return nil, err
	}

	request.Status = entity.RequestStatusScheduled
	if err := uow.RequestRepository().Update(ctx, request); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	s.publishEvent(ctx, "SERVICE_SCHEDULED", map[string]interface{}{
		"schedule_id": schedule.Id,
		"request_id":  request.Id,
		"company_id":  request.CompanyId,
		"user_id":     collaborator.Id,
		"date":        scheduledDate.Format("2006-01-02"),
		"entity_type": "schedule",
		"entity_id":   schedule.Id,
	})

	return s.toResponse(ctx, uow, schedule), nil
}

func (s *scheduleService) visibilitySpecs(ctx context.Context, uow unitofwork.UnitOfWork, user *AuthContext) ([]specification.Specification, error) {
	switch user.Role {
	case entity.UserRoleAdmin:
		return nil, nil
	case entity.UserRoleManager:
		areaIds, err := uow.UserRepository().FindAreaIdsByUser(ctx, user.UserId)
		if err != nil {
			return nil, err
		}
		return []specification.Specification{specification.ScheduleVisibleToManager{AreaIDs: areaIds}}, nil
	case entity.UserRoleCollaborator:
		return []specification.Specification{specification.ByCollaboratorID{CollaboratorID: user.UserId}}, nil
	case entity.UserRoleClient:
		if user.ClientId == nil {
			return nil, serverutils.NewForbidden("no company bound to this account")
		}
		return []specification.Specification{specification.ByCompanyID{CompanyID: *user.ClientId}}, nil
	}
	return nil, serverutils.NewForbidden("unknown role")
}

func (s *scheduleService) List(ctx context.Context, user *AuthContext, query *dto.ListScheduleQuery) ([]*dto.ScheduledServiceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs, err := s.visibilitySpecs(ctx, uow, user)
	if err != nil {
		return nil, err
	}

	dateRange := specification.ByScheduledDateRange{}
	if query.From != "" {
		if dateRange.From, err = time.Parse("2006-01-02", query.From); err != nil {
			return nil, serverutils.NewBadRequest("from must be YYYY-MM-DD")
		}
	}
	if query.To != "" {
		if dateRange.To, err = time.Parse("2006-01-02", query.To); err != nil {
			return nil, serverutils.NewBadRequest("to must be YYYY-MM-DD")
		}
	}
	specs = append(specs, dateRange)
	if query.Status != "" {
		specs = append(specs, specification.ByStatus{Status: query.Status})
	}

	schedules, err := uow.ScheduleRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ScheduledServiceResponse, 0, len(schedules))
	for _, schedule := range schedules {
		res = append(res, s.toResponse(ctx, uow, schedule))
	}
	return res, nil
}

func (s *scheduleService) Stats(ctx context.Context, user *AuthContext) (*dto.ScheduleStatsResponse, error) {
	cacheKey := fmt.Sprintf("schedule:stats:%s:%s", user.Role, user.UserId)

	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var stats dto.ScheduleStatsResponse
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	specs, err := s.visibilitySpecs(ctx, uow, user)
	if err != nil {
		return nil, err
	}

	counts, err := uow.ScheduleRepository().CountByStatus(ctx, specs...)
	if err != nil {
		return nil, err
	}

	stats := &dto.ScheduleStatsResponse{
		Scheduled:  counts[string(entity.ScheduleStatusScheduled)] + counts[string(entity.ScheduleStatusRescheduled)],
		InProgress: counts[string(entity.ScheduleStatusInProgress)],
		Completed:  counts[string(entity.ScheduleStatusCompleted)],
		Cancelled:  counts[string(entity.ScheduleStatusCancelled)],
	}
	for _, c := range counts {
		stats.Total += c
	}

	if s.redisClient != nil {
		if payload, err := json.Marshal(stats); err == nil {
			s.redisClient.Set(ctx, cacheKey, payload, scheduleStatsTTL)
		}
	}

	return stats, nil
}

// loadVisible fetches a schedule and enforces role scoping on single rows.
func (s *scheduleService) loadVisible(ctx context.Context, uow unitofwork.UnitOfWork, user *AuthContext, id uuid.UUID) (*entity.ScheduledService, error) {
	specs := []specification.Specification{specification.ByID{ID: id}}
	visible, err := s.visibilitySpecs(ctx, uow, user)
	if err != nil {
		return nil, err
	}
	specs = append(specs, visible...)

	schedule, err := uow.ScheduleRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, serverutils.NewNotFound("scheduled service not found")
	}
	return schedule, nil
}

func (s *scheduleService) UpdateStatus(ctx context.Context, user *AuthContext, id uuid.UUID, req *dto.UpdateScheduleStatusRequest) (*dto.ScheduledServiceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	schedule, err := s.loadVisible(ctx, uow, user, id)
	if err != nil {
		return nil, err
	}

	if user.Role == entity.UserRoleClient {
		return nil, serverutils.NewForbidden("clients cannot change execution status")
	}
	if user.Role == entity.UserRoleCollaborator {
		if schedule.CollaboratorUserId == nil || *schedule.CollaboratorUserId != user.UserId {
			return nil, serverutils.NewForbidden("service is not assigned to you")
		}
	}

	target := entity.ScheduleStatus(req.Status)
	if !schedule.Status.CanTransitionTo(target) {
		return nil, serverutils.NewBadRequest(fmt.Sprintf("cannot move from %s to %s", schedule.Status, target))
	}

	now := time.Now()
	schedule.Status = target
	switch target {
	case entity.ScheduleStatusInProgress:
		schedule.StartedAt = &now
	case entity.ScheduleStatusCompleted:
		schedule.CompletedAt = &now
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ScheduleRepository().Update(ctx, schedule); err != nil {
		return nil, err
	}

	// Keep the originating request in step with execution.
	if target == entity.ScheduleStatusInProgress {
		request, err := uow.RequestRepository().FindOne(ctx, specification.ByID{ID: schedule.ServiceRequestId})
		if err != nil {
			return nil, err
		}
		if request != nil && request.Status.CanTransitionTo(entity.RequestStatusInProgress) {
			request.Status = entity.RequestStatusInProgress
			if err := uow.RequestRepository().Update(ctx, request); err != nil {
				return nil, err
			}
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	if target == entity.ScheduleStatusCompleted {
		if s.publisherService != nil {
			msgJson, err := json.Marshal(dto.ServiceCompletedMessage{ScheduleId: schedule.Id})
			if err == nil {
				if err := s.publisherService.Publish(ctx, msgJson); err != nil {
					fmt.Printf("[WARN] Failed to queue invoice draft for schedule %s: %v\n", schedule.Id, err)
				}
			}
		}
		s.publishEvent(ctx, "SERVICE_COMPLETED", map[string]interface{}{
			"schedule_id": schedule.Id,
			"request_id":  schedule.ServiceRequestId,
			"company_id":  schedule.CompanyId,
			"entity_type": "schedule",
			"entity_id":   schedule.Id,
		})
	}

	return s.toResponse(ctx, uow, schedule), nil
}

func (s *scheduleService) Cancel(ctx context.Context, user *AuthContext, id uuid.UUID) error {
	if user.Role != entity.UserRoleManager && user.Role != entity.UserRoleAdmin {
		return serverutils.NewForbidden("cancellation requires manager access")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	schedule, err := s.loadVisible(ctx, uow, user, id)
	if err != nil {
		return err
	}
	if schedule.Status.IsTerminal() {
		return serverutils.NewBadRequest(fmt.Sprintf("cannot cancel a %s service", schedule.Status))
	}

	// Cancellation keeps the row; history stays queryable.
	schedule.Status = entity.ScheduleStatusCancelled
	if err := uow.ScheduleRepository().Update(ctx, schedule); err != nil {
		return err
	}

	s.invalidateStats(ctx)
	s.publishEvent(ctx, "SERVICE_CANCELLED", map[string]interface{}{
		"schedule_id": schedule.Id,
		"company_id":  schedule.CompanyId,
		"entity_type": "schedule",
		"entity_id":   schedule.Id,
	})
	return nil
}

func (s *scheduleService) SavePhoto(ctx context.Context, user *AuthContext, id uuid.UUID, file *multipart.FileHeader, caption string, storedPath string) (*dto.UploadPhotoResponse, error) {
	if user.Role != entity.UserRoleCollaborator && user.Role != entity.UserRoleAdmin {
		return nil, serverutils.NewForbidden("only the assigned collaborator can attach photos")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	schedule, err := s.loadVisible(ctx, uow, user, id)
	if err != nil {
		return nil, err
	}
	if user.Role == entity.UserRoleCollaborator {
		if schedule.CollaboratorUserId == nil || *schedule.CollaboratorUserId != user.UserId {
			return nil, serverutils.NewForbidden("service is not assigned to you")
		}
	}
	if schedule.Status != entity.ScheduleStatusInProgress && schedule.Status != entity.ScheduleStatusCompleted {
		return nil, serverutils.NewBadRequest("photos can only document services in execution")
	}

	photo := &entity.ServicePhoto{
		Id:                 uuid.New(),
		ScheduledServiceId: schedule.Id,
		UploaderUserId:     user.UserId,
		FilePath:           storedPath,
		TakenAt:            time.Now(),
		Metadata: map[string]interface{}{
			"original_name": file.Filename,
			"size_bytes":    file.Size,
			"extension":     filepath.Ext(file.Filename),
		},
		CreatedAt: time.Now(),
	}
	if caption != "" {
		photo.Caption = &caption
	}

	if err := uow.ScheduleRepository().CreatePhoto(ctx, photo); err != nil {
		return nil, err
	}

	return &dto.UploadPhotoResponse{Id: photo.Id, FilePath: photo.FilePath}, nil
}

func (s *scheduleService) ListPhotos(ctx context.Context, user *AuthContext, id uuid.UUID) ([]*dto.ServicePhotoResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	schedule, err := s.loadVisible(ctx, uow, user, id)
	if err != nil {
		return nil, err
	}

	photos, err := uow.ScheduleRepository().FindPhotos(ctx, schedule.Id)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ServicePhotoResponse, 0, len(photos))
	for _, photo := range photos {
		item := &dto.ServicePhotoResponse{
			Id:             photo.Id,
			UploaderUserId: photo.UploaderUserId,
			FilePath:       photo.FilePath,
			TakenAt:        photo.TakenAt,
		}
		if photo.Caption != nil {
			item.Caption = *photo.Caption
		}
		res = append(res, item)
	}
	return res, nil
}

func (s *scheduleService) toResponse(ctx context.Context, uow unitofwork.UnitOfWork, schedule *entity.ScheduledService) *dto.ScheduledServiceResponse {
	res := &dto.ScheduledServiceResponse{
		Id:               schedule.Id,
		ServiceRequestId: schedule.ServiceRequestId,
		CompanyId:        schedule.CompanyId,
		BranchId:         schedule.BranchId,
		ScheduledDate:    schedule.ScheduledDate,
		StartTime:        schedule.StartTime,
		EndTime:          schedule.EndTime,
		Status:           string(schedule.Status),
		StartedAt:        schedule.StartedAt,
		CompletedAt:      schedule.CompletedAt,
	}
	if schedule.CollaboratorUserId != nil {
		res.CollaboratorUserId = *schedule.CollaboratorUserId
		if collaborator, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: *schedule.CollaboratorUserId}); err == nil && collaborator != nil {
			res.CollaboratorName = collaborator.FullName
		}
	}
	if schedule.Notes != nil {
		res.Notes = *schedule.Notes
	}
	if company, err := uow.CompanyRepository().FindOne(ctx, specification.ByID{ID: schedule.CompanyId}); err == nil && company != nil {
		res.CompanyName = company.Name
	}
	if branch, err := uow.CompanyRepository().FindBranch(ctx, specification.ByID{ID: schedule.BranchId}); err == nil && branch != nil {
		res.BranchName = branch.Name
	}
	if request, err := uow.RequestRepository().FindOne(ctx, specification.ByID{ID: schedule.ServiceRequestId}); err == nil && request != nil {
		if item, err := uow.CatalogRepository().FindOne(ctx, specification.ByID{ID: request.ServiceCatalogId}); err == nil && item != nil {
			res.ServiceName = item.Name
		}
	}
	return res
}

func (s *scheduleService) invalidateStats(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	iter := s.redisClient.Scan(ctx, 0, "schedule:stats:*", 100).Iterator()
	for iter.Next(ctx) {
		s.redisClient.Del(ctx, iter.Val())
	}
}

func (s *scheduleService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
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
