package service

import (
	"context"
	"fmt"
	"time"

	"facility-services-be/internal/dto"
	"facility-services-be/internal/entity"
	"facility-services-be/internal/pkg/mailer"
	"facility-services-be/internal/pkg/serverutils"
	"facility-services-be/internal/repository/specification"
	"facility-services-be/internal/repository/unitofwork"

	"facility-services-be/pkg/events"
	pktNats "facility-services-be/pkg/nats"

	"github.com/google/uuid"
)

type IConfirmationService interface {
	Propose(ctx context.Context, user *AuthContext, scheduleId uuid.UUID, req *dto.ProposeRescheduleRequest) (*dto.ConfirmationResponse, error)
	Respond(ctx context.Context, user *AuthContext, req *dto.ConfirmationResponseRequest) (*dto.ConfirmationResponse, error)
	ListPending(ctx context.Context, user *AuthContext) ([]*dto.ConfirmationResponse, error)
}

type confirmationService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
}

func NewConfirmationService(uowFactory unitofwork.RepositoryFactory, emailService mailer.IEmailService, eventPublisher *pktNats.Publisher) IConfirmationService {
	return &confirmationService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
	}
}

func (s *confirmationService) Propose(ctx context.Context, user *AuthContext, scheduleId uuid.UUID, req *dto.ProposeRescheduleRequest) (*dto.ConfirmationResponse, error) {
	if user.Role != entity.UserRoleManager && user.Role != entity.UserRoleAdmin {
		return nil, serverutils.NewForbidden("reschedule proposals require manager access")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	schedule, err := uow.ScheduleRepository().FindOne(ctx, specification.ByID{ID: scheduleId})
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, serverutils.NewNotFound("scheduled service not found")
	}
	if !schedule.Status.CanTransitionTo(entity.ScheduleStatusRescheduled) {
		return nil, serverutils.NewBadRequest(fmt.Sprintf("cannot propose a new date for a %s service", schedule.Status))
	}

	pending, err := uow.ConfirmationRepository().HasPending(ctx, schedule.Id)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, serverutils.NewBadRequest("a pending date-change proposal already exists for this service")
	}

	proposedDate, err := time.Parse("2006-01-02", req.ProposedDate)
	if err != nil {
		return nil, serverutils.NewBadRequest("proposed_date must be YYYY-MM-DD")
	}

	confirmation := &entity.Confirmation{
		Id:                 uuid.New(),
		ScheduledServiceId: schedule.Id,
		RequestedDate:      schedule.ScheduledDate,
		ProposedDate:       proposedDate,
		Reason:             req.Reason,
		Status:             entity.ConfirmationStatusPending,
		ProposedByUserId:   user.UserId,
		CreatedAt:          time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ConfirmationRepository().Create(ctx, confirmation); err != nil {
		return nil, err
	}

	schedule.Status = entity.ScheduleStatusRescheduled
	if err := uow.ScheduleRepository().Update(ctx, schedule); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	serviceName := s.serviceName(ctx, uow, schedule)

	// Mail must not block the request path.
	if company, err := uow.CompanyRepository().FindOne(ctx, specification.ByID{ID: schedule.CompanyId}); err == nil && company != nil {
		go func(email string) {
			if mailErr := s.emailService.SendRescheduleProposal(email, serviceName, confirmation.RequestedDate, confirmation.ProposedDate, confirmation.Reason); mailErr != nil {
				fmt.Printf("Error sending reschedule proposal email: %v\n", mailErr)
			}
		}(company.Email)
	}

	s.publishEvent(ctx, "CONFIRMATION_PROPOSED", map[string]interface{}{
		"confirmation_id": confirmation.Id,
		"schedule_id":     schedule.Id,
		"company_id":      schedule.CompanyId,
		"proposed_date":   proposedDate.Format("2006-01-02"),
		"entity_type":     "confirmation",
		"entity_id":       confirmation.Id,
	})

	return s.toResponse(confirmation, serviceName), nil
}

func (s *confirmationService) Respond(ctx context.Context, user *AuthContext, req *dto.ConfirmationResponseRequest) (*dto.ConfirmationResponse, error) {
	if user.Role != entity.UserRoleClient || user.ClientId == nil {
		return nil, serverutils.NewForbidden("only the client can respond to a proposal")
	}
	if req.Action == "reject" && req.Reason == "" {
		return nil, serverutils.NewBadRequest("a reason is required when rejecting a proposal")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	confirmation, err := uow.ConfirmationRepository().FindOne(ctx, specification.ByID{ID: req.ConfirmationId})
	if err != nil {
		return nil, err
	}
	if confirmation == nil {
		return nil, serverutils.NewNotFound("confirmation not found")
	}

	schedule, err := uow.ScheduleRepository().FindOne(ctx, specification.ByID{ID: confirmation.ScheduledServiceId})
	if err != nil {
		return nil, err
	}
	if schedule == nil || schedule.CompanyId != *user.ClientId {
		return nil, serverutils.NewNotFound("confirmation not found")
	}

	status := entity.ConfirmationStatusConfirmed
	if req.Action == "reject" {
		status = entity.ConfirmationStatusRejected
	}
	var responseReason *string
	if req.Reason != "" {
		responseReason = &req.Reason
	}

	// Resolving the confirmation and moving the schedule must land together.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	rows, err := uow.ConfirmationRepository().ResolvePending(ctx, confirmation.Id, status, responseReason, now)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Already resolved; surface the prior resolution without mutating anything.
		resolved, err := uow.ConfirmationRepository().FindOne(ctx, specification.ByID{ID: confirmation.Id})
		if err != nil {
			return nil, err
		}
		return s.toResponse(resolved, s.serviceName(ctx, uow, schedule)), nil
	}

	confirmation.Status = status
	confirmation.ResponseReason = responseReason
	confirmation.ResolvedAt = &now

	accepted := status == entity.ConfirmationStatusConfirmed
	if accepted {
		schedule.ScheduledDate = confirmation.ProposedDate
	}
	if schedule.Status == entity.ScheduleStatusRescheduled {
		schedule.Status = entity.ScheduleStatusScheduled
	}
	if err := uow.ScheduleRepository().Update(ctx, schedule); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	serviceName := s.serviceName(ctx, uow, schedule)

	if proposer, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: confirmation.ProposedByUserId}); err == nil && proposer != nil {
		go func(email string) {
			if mailErr := s.emailService.SendRescheduleResolution(email, serviceName, accepted, schedule.ScheduledDate); mailErr != nil {
				fmt.Printf("Error sending reschedule resolution email: %v\n", mailErr)
			}
		}(proposer.Email)
	}

	eventType := "CONFIRMATION_ACCEPTED"
	if !accepted {
		eventType = "CONFIRMATION_REJECTED"
	}
	s.publishEvent(ctx, eventType, map[string]interface{}{
		"confirmation_id": confirmation.Id,
		"schedule_id":     schedule.Id,
		"user_id":         confirmation.ProposedByUserId,
		"date":            schedule.ScheduledDate.Format("2006-01-02"),
		"entity_type":     "confirmation",
		"entity_id":       confirmation.Id,
	})

	return s.toResponse(confirmation, serviceName), nil
}

func (s *confirmationService) ListPending(ctx context.Context, user *AuthContext) ([]*dto.ConfirmationResponse, error) {
	if user.Role != entity.UserRoleClient || user.ClientId == nil {
		return nil, serverutils.NewForbidden("pending confirmations are a client-portal view")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	schedules, err := uow.ScheduleRepository().FindAll(ctx, specification.ByCompanyID{CompanyID: *user.ClientId})
	if err != nil {
		return nil, err
	}

	res := []*dto.ConfirmationResponse{}
	for _, schedule := range schedules {
		confirmations, err := uow.ConfirmationRepository().FindAll(ctx,
			specification.ByScheduledServiceID{ScheduledServiceID: schedule.Id},
			specification.ByStatus{Status: string(entity.ConfirmationStatusPending)},
		)
		if err != nil {
			return nil, err
		}
		serviceName := s.serviceName(ctx, uow, schedule)
		for _, confirmation := range confirmations {
			res = append(res, s.toResponse(confirmation, serviceName))
		}
	}
	return res, nil
}

func (s *confirmationService) serviceName(ctx context.Context, uow unitofwork.UnitOfWork, schedule *entity.ScheduledService) string {
	request, err := uow.RequestRepository().FindOne(ctx, specification.ByID{ID: schedule.ServiceRequestId})
	if err != nil || request == nil {
		return ""
	}
	item, err := uow.CatalogRepository().FindOne(ctx, specification.ByID{ID: request.ServiceCatalogId})
	if err != nil || item == nil {
		return ""
	}
	return item.Name
}

func (s *confirmationService) toResponse(confirmation *entity.Confirmation, serviceName string) *dto.ConfirmationResponse {
	return &dto.ConfirmationResponse{
		Id:                 confirmation.Id,
		ScheduledServiceId: confirmation.ScheduledServiceId,
		ServiceName:        serviceName,
		RequestedDate:      confirmation.RequestedDate,
		ProposedDate:       confirmation.ProposedDate,
		Reason:             confirmation.Reason,
		Status:             string(confirmation.Status),
		ResponseReason:     confirmation.ResponseReason,
		ResolvedAt:         confirmation.ResolvedAt,
		CreatedAt:          confirmation.CreatedAt,
	}
}

func (s *confirmationService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
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
