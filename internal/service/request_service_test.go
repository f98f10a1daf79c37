package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"facility-services-be/internal/dto"
	"facility-services-be/internal/entity"
	"facility-services-be/internal/pkg/serverutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func apiErrorCode(t *testing.T, err error) int {
	t.Helper()
	var apiErr *serverutils.ApiError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *ApiError, got %v", err)
	}
	return apiErr.Code
}

func seedRequestFixture(uow *fakeUow) (companyId, branchId, catalogId uuid.UUID) {
	companyId = uuid.New()
	branchId = uuid.New()
	catalogId = uuid.New()
	areaId := uuid.New()

	uow.companies.companies[companyId] = &entity.Company{Id: companyId, Name: "Condomínio Aurora", Email: "contato@aurora.com"}
	uow.companies.branches[branchId] = &entity.Branch{Id: branchId, CompanyId: companyId, AreaId: areaId, Name: "Sede"}
	uow.catalog.items[catalogId] = &entity.ServiceCatalogItem{Id: catalogId, Name: "Limpeza Geral", IsActive: true}
	return
}

func TestRequestCreateRequiresClient(t *testing.T) {
	uow := newFakeUow()
	svc := NewRequestService(&fakeFactory{uow: uow}, nil)

	_, err := svc.Create(context.Background(), &AuthContext{UserId: uuid.New(), Role: entity.UserRoleManager}, &dto.CreateServiceRequestRequest{})
	assert.Equal(t, 403, apiErrorCode(t, err))
}

func TestRequestCreateRejectsForeignBranch(t *testing.T) {
	uow := newFakeUow()
	_, branchId, catalogId := seedRequestFixture(uow)
	svc := NewRequestService(&fakeFactory{uow: uow}, nil)

	otherCompany := uuid.New()
	user := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleClient, ClientId: &otherCompany}

	_, err := svc.Create(context.Background(), user, &dto.CreateServiceRequestRequest{
		BranchId:         branchId,
		ServiceCatalogId: catalogId,
		Priority:         "routine",
		DesiredDate:      "2026-09-15",
		Description:      "Limpeza da recepção",
	})
	assert.Equal(t, 403, apiErrorCode(t, err))
}

func TestRequestCreateUrgentPriorityGetsUrgentStatus(t *testing.T) {
	uow := newFakeUow()
	companyId, branchId, catalogId := seedRequestFixture(uow)
	svc := NewRequestService(&fakeFactory{uow: uow}, nil)

	user := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleClient, ClientId: &companyId}
	res, err := svc.Create(context.Background(), user, &dto.CreateServiceRequestRequest{
		BranchId:         branchId,
		ServiceCatalogId: catalogId,
		Priority:         "urgent",
		DesiredDate:      "2026-09-15",
		Description:      "Vazamento no subsolo",
	})
	assert.NoError(t, err)
	assert.Equal(t, "urgent", res.Status)

	stored := uow.requests.requests[res.Id]
	assert.Equal(t, entity.RequestStatusUrgent, stored.Status)
	assert.Equal(t, companyId, stored.CompanyId)
}

func TestRequestCreateRejectsInactiveCatalogItem(t *testing.T) {
	uow := newFakeUow()
	companyId, branchId, catalogId := seedRequestFixture(uow)
	uow.catalog.items[catalogId].IsActive = false
	svc := NewRequestService(&fakeFactory{uow: uow}, nil)

	user := &AuthContext{UserId: uuid.New(), Role: entity.UserRoleClient, ClientId: &companyId}
	_, err := svc.Create(context.Background(), user, &dto.CreateServiceRequestRequest{
		BranchId:         branchId,
		ServiceCatalogId: catalogId,
		Priority:         "routine",
		DesiredDate:      "2026-09-15",
	})
	assert.Equal(t, 400, apiErrorCode(t, err))
}

func TestRequestListForbiddenForCollaborators(t *testing.T) {
	uow := newFakeUow()
	svc := NewRequestService(&fakeFactory{uow: uow}, nil)

	_, err := svc.List(context.Background(), &AuthContext{UserId: uuid.New(), Role: entity.UserRoleCollaborator}, &dto.ListServiceRequestsQuery{})
	assert.Equal(t, 403, apiErrorCode(t, err))
}

func seedTriageRequest(uow *fakeUow, status entity.RequestStatus) (*entity.ServiceRequest, uuid.UUID) {
	companyId, branchId, catalogId := seedRequestFixture(uow)
	request := &entity.ServiceRequest{
		Id:               uuid.New(),
		CompanyId:        companyId,
		BranchId:         branchId,
		ServiceCatalogId: catalogId,
		RequesterUserId:  uuid.New(),
		Priority:         entity.RequestPriorityRoutine,
		Status:           status,
		DesiredDate:      time.Now().AddDate(0, 0, 7),
		CreatedAt:        time.Now(),
	}
	uow.requests.requests[request.Id] = request
	return request, uow.companies.branches[branchId].AreaId
}

func TestRequestApproveByManagerInArea(t *testing.T) {
	uow := newFakeUow()
	request, areaId := seedTriageRequest(uow, entity.RequestStatusPending)

	managerId := uuid.New()
	uow.users.areaIds[managerId] = []uuid.UUID{areaId}
	svc := NewRequestService(&fakeFactory{uow: uow}, nil)

	res, err := svc.Approve(context.Background(), &AuthContext{UserId: managerId, Role: entity.UserRoleManager}, request.Id)
	assert.NoError(t, err)
	assert.Equal(t, "approved", res.Status)
	assert.Equal(t, entity.RequestStatusApproved, uow.requests.requests[request.Id].Status)
}

func TestRequestApproveOutsideAreaForbidden(t *testing.T) {
	uow := newFakeUow()
	request, _ := seedTriageRequest(uow, entity.RequestStatusPending)

	managerId := uuid.New()
	uow.users.areaIds[managerId] = []uuid.UUID{uuid.New()} // some other area
	svc := NewRequestService(&fakeFactory{uow: uow}, nil)

	_, err := svc.Approve(context.Background(), &AuthContext{UserId: managerId, Role: entity.UserRoleManager}, request.Id)
	assert.Equal(t, 403, apiErrorCode(t, err))
}

func TestRequestApproveAllowedForAssignedManager(t *testing.T) {
	uow := newFakeUow()
	request, _ := seedTriageRequest(uow, entity.RequestStatusDelegated)

	managerId := uuid.New()
	request.AssignedManagerUserId = &managerId // delegated to them, no area overlap needed
	svc := NewRequestService(&fakeFactory{uow: uow}, nil)

	res, err := svc.Approve(context.Background(), &AuthContext{UserId: managerId, Role: entity.UserRoleManager}, request.Id)
	assert.NoError(t, err)
	assert.Equal(t, "approved", res.Status)
}

func TestRequestApproveRejectedRequestFails(t *testing.T) {
	uow := newFakeUow()
	request, areaId := seedTriageRequest(uow, entity.RequestStatusRejected)

	managerId := uuid.New()
	uow.users.areaIds[managerId] = []uuid.UUID{areaId}
	svc := NewRequestService(&fakeFactory{uow: uow}, nil)

	_, err := svc.Approve(context.Background(), &AuthContext{UserId: managerId, Role: entity.UserRoleManager}, request.Id)
	assert.Equal(t, 400, apiErrorCode(t, err))
}

func TestRequestRejectStoresReason(t *testing.T) {
	uow := newFakeUow()
	request, areaId := seedTriageRequest(uow, entity.RequestStatusUrgent)

	managerId := uuid.New()
	uow.users.areaIds[managerId] = []uuid.UUID{areaId}
	svc := NewRequestService(&fakeFactory{uow: uow}, nil)

	res, err := svc.Reject(context.Background(), &AuthContext{UserId: managerId, Role: entity.UserRoleManager}, request.Id, &dto.RejectServiceRequestRequest{Reason: "fora do contrato"})
	assert.NoError(t, err)
	assert.Equal(t, "rejected", res.Status)

	stored := uow.requests.requests[request.Id]
	assert.NotNil(t, stored.RejectionReason)
	assert.Equal(t, "fora do contrato", *stored.RejectionReason)
}

func TestRequestDelegateToInactiveManagerFails(t *testing.T) {
	uow := newFakeUow()
	request, areaId := seedTriageRequest(uow, entity.RequestStatusPending)

	managerId := uuid.New()
	uow.users.areaIds[managerId] = []uuid.UUID{areaId}

	targetId := uuid.New()
	uow.users.users[targetId] = &entity.User{Id: targetId, Role: entity.UserRoleManager, IsActive: false}
	svc := NewRequestService(&fakeFactory{uow: uow}, nil)

	_, err := svc.Delegate(context.Background(), &AuthContext{UserId: managerId, Role: entity.UserRoleManager}, request.Id, &dto.DelegateServiceRequestRequest{ManagerUserId: targetId})
	assert.Equal(t, 400, apiErrorCode(t, err))
}

func TestRequestDelegateAssignsTarget(t *testing.T) {
	uow := newFakeUow()
	request, areaId := seedTriageRequest(uow, entity.RequestStatusPending)

	managerId := uuid.New()
	uow.users.areaIds[managerId] = []uuid.UUID{areaId}

	targetId := uuid.New()
	uow.users.users[targetId] = &entity.User{Id: targetId, Role: entity.UserRoleManager, IsActive: true}
	svc := NewRequestService(&fakeFactory{uow: uow}, nil)

	res, err := svc.Delegate(context.Background(), &AuthContext{UserId: managerId, Role: entity.UserRoleManager}, request.Id, &dto.DelegateServiceRequestRequest{ManagerUserId: targetId})
	assert.NoError(t, err)
	assert.Equal(t, "delegated", res.Status)

	stored := uow.requests.requests[request.Id]
	assert.NotNil(t, stored.AssignedManagerUserId)
	assert.Equal(t, targetId, *stored.AssignedManagerUserId)
}

func TestRequestTriageForbiddenForClients(t *testing.T) {
	uow := newFakeUow()
	request, _ := seedTriageRequest(uow, entity.RequestStatusPending)
	svc := NewRequestService(&fakeFactory{uow: uow}, nil)

	companyId := request.CompanyId
	_, err := svc.Approve(context.Background(), &AuthContext{UserId: uuid.New(), Role: entity.UserRoleClient, ClientId: &companyId}, request.Id)
	assert.Equal(t, 403, apiErrorCode(t, err))
}
