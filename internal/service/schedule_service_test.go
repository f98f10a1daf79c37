package service

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"testing"

	"facility-services-be/internal/dto"
	"facility-services-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newScheduleSvc(uow *fakeUow, pub IPublisherService) IScheduleService {
	return NewScheduleService(&fakeFactory{uow: uow}, pub, nil, nil)
}

func seedApprovedRequest(uow *fakeUow) (*entity.ServiceRequest, uuid.UUID) {
	request, _ := seedTriageRequest(uow, entity.RequestStatusApproved)
	collaboratorId := uuid.New()
	uow.users.users[collaboratorId] = &entity.User{Id: collaboratorId, Role: entity.UserRoleCollaborator, IsActive: true, FullName: "João Silva"}
	return request, collaboratorId
}

func TestScheduleCreateRequiresApprovedRequest(t *testing.T) {
	uow := newFakeUow()
	request, collaboratorId := seedApprovedRequest(uow)
	request.Status = entity.RequestStatusPending
	svc := newScheduleSvc(uow, nil)

	manager := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleManager}
	_, err := svc.Create(context.Background(), manager, &dto.CreateScheduleRequest{
		ServiceRequestId:   request.Id,
		CollaboratorUserId: collaboratorId,
		ScheduledDate:      "2026-09-20",
		StartTime:          "08:00",
		EndTime:            "12:00",
	})
	assert.Equal(t, 400, apiErrorCode(t, err))
}

func TestScheduleCreateMovesRequestToScheduled(t *testing.T) {
	uow := newFakeUow()
	request, collaboratorId := seedApprovedRequest(uow)
	svc := newScheduleSvc(uow, nil)

	manager := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleManager}
	res, err := svc.Create(context.Background(), manager, &dto.CreateScheduleRequest{
		ServiceRequestId:   request.Id,
		CollaboratorUserId: collaboratorId,
		ScheduledDate:      "2026-09-20",
		StartTime:          "08:00",
		EndTime:            "12:00",
		Notes:              "acesso pela garagem",
	})
	assert.NoError(t, err)
	assert.Equal(t, "scheduled", res.Status)
	assert.Equal(t, "João Silva", res.CollaboratorName)
	assert.Equal(t, entity.RequestStatusScheduled, uow.requests.requests[request.Id].Status)
}

func TestScheduleCreateRejectsSecondSchedule(t *testing.T) {
	uow := newFakeUow()
	request, collaboratorId := seedApprovedRequest(uow)
	svc := newScheduleSvc(uow, nil)

	manager := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleManager}
	req := &dto.CreateScheduleRequest{
		ServiceRequestId:   request.Id,
		CollaboratorUserId: collaboratorId,
		ScheduledDate:      "2026-09-20",
		StartTime:          "08:00",
		EndTime:            "12:00",
	}
	_, err := svc.Create(context.Background(), manager, req)
	assert.NoError(t, err)

	// Request left "approved" on purpose: the duplicate guard must fire even
	// if the status sync had raced.
	request.Status = entity.RequestStatusApproved
	_, err = svc.Create(context.Background(), manager, req)
	assert.Equal(t, 400, apiErrorCode(t, err))
}

func TestScheduleUpdateStatusClientForbidden(t *testing.T) {
	uow := newFakeUow()
	schedule, companyId := seedScheduleFixture(uow, entity.ScheduleStatusScheduled)
	svc := newScheduleSvc(uow, nil)

	client := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleClient, ClientId: &companyId}
	_, err := svc.UpdateStatus(context.Background(), client, schedule.Id, &dto.UpdateScheduleStatusRequest{Status: "in_progress"})
	assert.Equal(t, 403, apiErrorCode(t, err))
}

func TestScheduleUpdateStatusUnassignedCollaboratorForbidden(t *testing.T) {
	uow := newFakeUow()
	schedule, _ := seedScheduleFixture(uow, entity.ScheduleStatusScheduled)
	other := uuid.New()
	schedule.CollaboratorUserId = &other
	svc := newScheduleSvc(uow, nil)

	collaborator := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleCollaborator}
	_, err := svc.UpdateStatus(context.Background(), collaborator, schedule.Id, &dto.UpdateScheduleStatusRequest{Status: "in_progress"})
	assert.Equal(t, 403, apiErrorCode(t, err))
}

func TestScheduleStartSyncsRequestAndStampsStartedAt(t *testing.T) {
	uow := newFakeUow()
	schedule, _ := seedScheduleFixture(uow, entity.ScheduleStatusScheduled)
	collaboratorId := uuid.New()
	schedule.CollaboratorUserId = &collaboratorId
	uow.requests.requests[schedule.ServiceRequestId].Status = entity.RequestStatusScheduled
	svc := newScheduleSvc(uow, nil)

	collaborator := &AuthContext{UserId: collaboratorId, Role: entity.UserRoleCollaborator}
	res, err := svc.UpdateStatus(context.Background(), collaborator, schedule.Id, &dto.UpdateScheduleStatusRequest{Status: "in_progress"})
	assert.NoError(t, err)
	assert.Equal(t, "in_progress", res.Status)
	assert.NotNil(t, res.StartedAt)
	assert.Equal(t, entity.RequestStatusInProgress, uow.requests.requests[schedule.ServiceRequestId].Status)
}

func TestScheduleCompleteQueuesInvoiceDraft(t *testing.T) {
	uow := newFakeUow()
	schedule, _ := seedScheduleFixture(uow, entity.ScheduleStatusInProgress)
	collaboratorId := uuid.New()
	schedule.CollaboratorUserId = &collaboratorId
	pub := &recordingPublisher{}
	svc := newScheduleSvc(uow, pub)

	collaborator := &AuthContext{UserId: collaboratorId, Role: entity.UserRoleCollaborator}
	res, err := svc.UpdateStatus(context.Background(), collaborator, schedule.Id, &dto.UpdateScheduleStatusRequest{Status: "completed"})
	assert.NoError(t, err)
	assert.Equal(t, "completed", res.Status)
	assert.NotNil(t, res.CompletedAt)

	assert.Len(t, pub.payloads, 1)
	var msg dto.ServiceCompletedMessage
	assert.NoError(t, json.Unmarshal(pub.payloads[0], &msg))
	assert.Equal(t, schedule.Id, msg.ScheduleId)
}

func TestScheduleCompletedCannotRegress(t *testing.T) {
	uow := newFakeUow()
	schedule, _ := seedScheduleFixture(uow, entity.ScheduleStatusCompleted)
	svc := newScheduleSvc(uow, nil)

	admin := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleAdmin}
	_, err := svc.UpdateStatus(context.Background(), admin, schedule.Id, &dto.UpdateScheduleStatusRequest{Status: "scheduled"})
	assert.Equal(t, 400, apiErrorCode(t, err))
}

func TestScheduleCancelKeepsRow(t *testing.T) {
	uow := newFakeUow()
	schedule, _ := seedScheduleFixture(uow, entity.ScheduleStatusScheduled)
	svc := newScheduleSvc(uow, nil)

	admin := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleAdmin}
	err := svc.Cancel(context.Background(), admin, schedule.Id)
	assert.NoError(t, err)

	stored := uow.schedules.schedules[schedule.Id]
	assert.NotNil(t, stored)
	assert.Equal(t, entity.ScheduleStatusCancelled, stored.Status)
}

func TestScheduleCancelTerminalFails(t *testing.T) {
	uow := newFakeUow()
	schedule, _ := seedScheduleFixture(uow, entity.ScheduleStatusCompleted)
	svc := newScheduleSvc(uow, nil)

	admin := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleAdmin}
	err := svc.Cancel(context.Background(), admin, schedule.Id)
	assert.Equal(t, 400, apiErrorCode(t, err))
}

func TestSavePhotoOnlyDuringExecution(t *testing.T) {
	uow := newFakeUow()
	schedule, _ := seedScheduleFixture(uow, entity.ScheduleStatusScheduled)
	collaboratorId := uuid.New()
	schedule.CollaboratorUserId = &collaboratorId
	svc := newScheduleSvc(uow, nil)

	collaborator := &AuthContext{UserId: collaboratorId, Role: entity.UserRoleCollaborator}
	file := &multipart.FileHeader{Filename: "antes.jpg", Size: 1024}
	_, err := svc.SavePhoto(context.Background(), collaborator, schedule.Id, file, "", "uploads/antes.jpg")
	assert.Equal(t, 400, apiErrorCode(t, err))

	schedule.Status = entity.ScheduleStatusInProgress
	res, err := svc.SavePhoto(context.Background(), collaborator, schedule.Id, file, "antes da limpeza", "uploads/antes.jpg")
	assert.NoError(t, err)
	assert.Equal(t, "uploads/antes.jpg", res.FilePath)

	photos, err := svc.ListPhotos(context.Background(), collaborator, schedule.Id)
	assert.NoError(t, err)
	assert.Len(t, photos, 1)
	assert.Equal(t, "antes da limpeza", photos[0].Caption)
}

func TestScheduleStatsCountsRescheduledAsScheduled(t *testing.T) {
	uow := newFakeUow()
	seedScheduleFixture(uow, entity.ScheduleStatusRescheduled)
	svc := newScheduleSvc(uow, nil)

	admin := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleAdmin}
	stats, err := svc.Stats(context.Background(), admin)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
	assert.Equal(t, int64(1), stats.Scheduled)
}
