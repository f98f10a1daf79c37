package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"facility-services-be/internal/dto"
	"facility-services-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func seedScheduleFixture(uow *fakeUow, status entity.ScheduleStatus) (*entity.ScheduledService, uuid.UUID) {
	companyId, branchId, catalogId := seedRequestFixture(uow)

	request := &entity.ServiceRequest{
		Id:               uuid.New(),
		CompanyId:        companyId,
		BranchId:         branchId,
		ServiceCatalogId: catalogId,
		Status:           entity.RequestStatusScheduled,
	}
	uow.requests.requests[request.Id] = request

	schedule := &entity.ScheduledService{
		Id:               uuid.New(),
		ServiceRequestId: request.Id,
		CompanyId:        companyId,
		BranchId:         branchId,
		ScheduledDate:    time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC),
		StartTime:        "08:00",
		EndTime:          "12:00",
		Status:           status,
	}
	uow.schedules.schedules[schedule.Id] = schedule
	return schedule, companyId
}

func newConfirmationSvc(uow *fakeUow) IConfirmationService {
	return NewConfirmationService(&fakeFactory{uow: uow}, noopMailer{}, nil)
}

func TestProposeRequiresManager(t *testing.T) {
	uow := newFakeUow()
	schedule, companyId := seedScheduleFixture(uow, entity.ScheduleStatusScheduled)
	svc := newConfirmationSvc(uow)

	_, err := svc.Propose(context.Background(), &AuthContext{UserId: uuid.New(), Role: entity.UserRoleClient, ClientId: &companyId}, schedule.Id, &dto.ProposeRescheduleRequest{ProposedDate: "2026-09-25", Reason: "conflito de agenda"})
	assert.Equal(t, 403, apiErrorCode(t, err))
}

func TestProposeParksScheduleAsRescheduled(t *testing.T) {
	uow := newFakeUow()
	schedule, _ := seedScheduleFixture(uow, entity.ScheduleStatusScheduled)
	svc := newConfirmationSvc(uow)

	manager := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleManager}
	res, err := svc.Propose(context.Background(), manager, schedule.Id, &dto.ProposeRescheduleRequest{ProposedDate: "2026-09-25", Reason: "conflito de agenda"})
	assert.NoError(t, err)
	assert.Equal(t, "pending", res.Status)
	assert.Equal(t, "Limpeza Geral", res.ServiceName)
	assert.Equal(t, entity.ScheduleStatusRescheduled, uow.schedules.schedules[schedule.Id].Status)
}

func TestProposeRejectedWhileAnotherPending(t *testing.T) {
	uow := newFakeUow()
	schedule, _ := seedScheduleFixture(uow, entity.ScheduleStatusScheduled)
	svc := newConfirmationSvc(uow)

	manager := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleManager}
	_, err := svc.Propose(context.Background(), manager, schedule.Id, &dto.ProposeRescheduleRequest{ProposedDate: "2026-09-25", Reason: "conflito"})
	assert.NoError(t, err)

	// The schedule is now rescheduled, so a second proposal fails on the
	// transition check before it ever reaches the pending guard.
	_, err = svc.Propose(context.Background(), manager, schedule.Id, &dto.ProposeRescheduleRequest{ProposedDate: "2026-09-26", Reason: "outro conflito"})
	assert.Equal(t, 400, apiErrorCode(t, err))
}

func TestProposeOnInProgressServiceFails(t *testing.T) {
	uow := newFakeUow()
	schedule, _ := seedScheduleFixture(uow, entity.ScheduleStatusInProgress)
	svc := newConfirmationSvc(uow)

	manager := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleManager}
	_, err := svc.Propose(context.Background(), manager, schedule.Id, &dto.ProposeRescheduleRequest{ProposedDate: "2026-09-25", Reason: "conflito"})
	assert.Equal(t, 400, apiErrorCode(t, err))
}

func seedPendingConfirmation(uow *fakeUow, schedule *entity.ScheduledService) *entity.Confirmation {
	confirmation := &entity.Confirmation{
		Id:                 uuid.New(),
		ScheduledServiceId: schedule.Id,
		RequestedDate:      schedule.ScheduledDate,
		ProposedDate:       schedule.ScheduledDate.AddDate(0, 0, 5),
		Reason:             "conflito de agenda",
		Status:             entity.ConfirmationStatusPending,
		ProposedByUserId:   uuid.New(),
		CreatedAt:          time.Now(),
	}
	uow.confirmations.confirmations[confirmation.Id] = confirmation
	return confirmation
}

func TestRespondAcceptAppliesProposedDate(t *testing.T) {
	uow := newFakeUow()
	schedule, companyId := seedScheduleFixture(uow, entity.ScheduleStatusRescheduled)
	confirmation := seedPendingConfirmation(uow, schedule)
	svc := newConfirmationSvc(uow)

	client := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleClient, ClientId: &companyId}
	res, err := svc.Respond(context.Background(), client, &dto.ConfirmationResponseRequest{ConfirmationId: confirmation.Id, Action: "accept"})
	assert.NoError(t, err)
	assert.Equal(t, "confirmed", res.Status)

	stored := uow.schedules.schedules[schedule.Id]
	assert.Equal(t, confirmation.ProposedDate, stored.ScheduledDate)
	assert.Equal(t, entity.ScheduleStatusScheduled, stored.Status)
}

func TestRespondRejectRestoresScheduleKeepsDate(t *testing.T) {
	uow := newFakeUow()
	schedule, companyId := seedScheduleFixture(uow, entity.ScheduleStatusRescheduled)
	originalDate := schedule.ScheduledDate
	confirmation := seedPendingConfirmation(uow, schedule)
	svc := newConfirmationSvc(uow)

	client := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleClient, ClientId: &companyId}
	res, err := svc.Respond(context.Background(), client, &dto.ConfirmationResponseRequest{ConfirmationId: confirmation.Id, Action: "reject", Reason: "data inviável"})
	assert.NoError(t, err)
	assert.Equal(t, "rejected", res.Status)
	assert.Equal(t, "data inviável", *res.ResponseReason)

	stored := uow.schedules.schedules[schedule.Id]
	assert.Equal(t, originalDate, stored.ScheduledDate)
	assert.Equal(t, entity.ScheduleStatusScheduled, stored.Status)
}

func TestRespondRejectWithoutReasonFails(t *testing.T) {
	uow := newFakeUow()
	schedule, companyId := seedScheduleFixture(uow, entity.ScheduleStatusRescheduled)
	confirmation := seedPendingConfirmation(uow, schedule)
	svc := newConfirmationSvc(uow)

	client := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleClient, ClientId: &companyId}
	_, err := svc.Respond(context.Background(), client, &dto.ConfirmationResponseRequest{ConfirmationId: confirmation.Id, Action: "reject"})
	assert.Equal(t, 400, apiErrorCode(t, err))
}

func TestRespondIsIdempotentAfterResolution(t *testing.T) {
	uow := newFakeUow()
	schedule, companyId := seedScheduleFixture(uow, entity.ScheduleStatusRescheduled)
	confirmation := seedPendingConfirmation(uow, schedule)
	svc := newConfirmationSvc(uow)

	client := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleClient, ClientId: &companyId}
	first, err := svc.Respond(context.Background(), client, &dto.ConfirmationResponseRequest{ConfirmationId: confirmation.Id, Action: "accept"})
	assert.NoError(t, err)
	assert.Equal(t, "confirmed", first.Status)

	dateAfterFirst := uow.schedules.schedules[schedule.Id].ScheduledDate

	// A second response loses the conditional update and gets the prior
	// resolution back unchanged.
	second, err := svc.Respond(context.Background(), client, &dto.ConfirmationResponseRequest{ConfirmationId: confirmation.Id, Action: "reject", Reason: "mudei de ideia"})
	assert.NoError(t, err)
	assert.Equal(t, "confirmed", second.Status)
	assert.Equal(t, dateAfterFirst, uow.schedules.schedules[schedule.Id].ScheduledDate)
}

func TestRespondForeignCompanyGetsNotFound(t *testing.T) {
	uow := newFakeUow()
	schedule, _ := seedScheduleFixture(uow, entity.ScheduleStatusRescheduled)
	confirmation := seedPendingConfirmation(uow, schedule)
	svc := newConfirmationSvc(uow)

	otherCompany := uuid.New()
	client := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleClient, ClientId: &otherCompany}
	_, err := svc.Respond(context.Background(), client, &dto.ConfirmationResponseRequest{ConfirmationId: confirmation.Id, Action: "accept"})
	assert.Equal(t, 404, apiErrorCode(t, err))
}

func TestListPendingReturnsOnlyPendingForCompany(t *testing.T) {
	uow := newFakeUow()
	schedule, companyId := seedScheduleFixture(uow, entity.ScheduleStatusRescheduled)
	pending := seedPendingConfirmation(uow, schedule)

	resolvedAt := time.Now()
	resolved := seedPendingConfirmation(uow, schedule)
	resolved.Status = entity.ConfirmationStatusRejected
	resolved.ResolvedAt = &resolvedAt

	svc := newConfirmationSvc(uow)
	client := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleClient, ClientId: &companyId}
	res, err := svc.ListPending(context.Background(), client)
	assert.NoError(t, err)
	assert.Len(t, res, 1)
	assert.Equal(t, pending.Id, res[0].Id)
}

func TestRespondFailedScheduleUpdateLeavesProposalPending(t *testing.T) {
	uow := newFakeUow()
	schedule, companyId := seedScheduleFixture(uow, entity.ScheduleStatusRescheduled)
	confirmation := seedPendingConfirmation(uow, schedule)
	svc := newConfirmationSvc(uow)
	client := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleClient, ClientId: &companyId}

	uow.schedules.updateErr = errors.New("connection reset by peer")
	_, err := svc.Respond(context.Background(), client, &dto.ConfirmationResponseRequest{ConfirmationId: confirmation.Id, Action: "accept"})
	assert.Error(t, err)

	// Both writes roll back together; nothing is half-applied.
	assert.Equal(t, entity.ConfirmationStatusPending, confirmation.Status)
	assert.Equal(t, entity.ScheduleStatusRescheduled, schedule.Status)
	assert.NotEqual(t, confirmation.ProposedDate, schedule.ScheduledDate)

	// A retry is a fresh resolution, not the already-resolved path.
	uow.schedules.updateErr = nil
	res, err := svc.Respond(context.Background(), client, &dto.ConfirmationResponseRequest{ConfirmationId: confirmation.Id, Action: "accept"})
	assert.NoError(t, err)
	assert.Equal(t, "confirmed", res.Status)
	assert.Equal(t, confirmation.ProposedDate, schedule.ScheduledDate)
	assert.Equal(t, entity.ScheduleStatusScheduled, schedule.Status)
}
