package service

import (
	"context"
	"time"

	"facility-services-be/internal/dto"
	"facility-services-be/internal/entity"
	"facility-services-be/internal/pkg/serverutils"
	"facility-services-be/internal/repository/specification"
	"facility-services-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IUserService interface {
	Profile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)

	// Admin provisioning
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, query *dto.ListUsersQuery) ([]*dto.UserResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{uowFactory: uowFactory}
}

func (s *userService) Profile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.NewNotFound("user not found")
	}

	return &dto.ProfileResponse{
		Id:        user.Id,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		CompanyId: user.CompanyId,
		Position:  user.Position,
		Team:      user.Team,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.NewNotFound("user not found")
	}

	user.FullName = req.FullName
	if req.Email != "" && req.Email != user.Email {
		existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, serverutils.NewBadRequest("email already in use")
		}
		user.Email = req.Email
	}

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	return s.Profile(ctx, userId)
}

func (s *userService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.NewBadRequest("email already registered")
	}

	role := entity.UserRole(req.Role)
	if role == entity.UserRoleClient && req.CompanyId == nil {
		return nil, serverutils.NewBadRequest("client accounts require a company_id")
	}
	if role == entity.UserRoleManager && len(req.AreaIds) == 0 {
		return nil, serverutils.NewBadRequest("manager accounts require at least one area")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		PasswordHash: &hashStr,
		FullName:     req.FullName,
		Role:         role,
		IsActive:     true,
		CompanyId:    req.CompanyId,
		Position:     req.Position,
		Team:         req.Team,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	for _, areaId := range req.AreaIds {
		if err := uow.UserRepository().AssignArea(ctx, user.Id, areaId); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	user.AreaIds = req.AreaIds
	return s.toResponse(user), nil
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.NewNotFound("user not found")
	}

	user.FullName = req.FullName
	user.Position = req.Position
	user.Team = req.Team
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	if user.Role == entity.UserRoleManager && req.AreaIds != nil {
		current, err := uow.UserRepository().FindAreaIdsByUser(ctx, user.Id)
		if err != nil {
			return nil, err
		}
		for _, areaId := range current {
			if err := uow.UserRepository().UnassignArea(ctx, user.Id, areaId); err != nil {
				return nil, err
			}
		}
		for _, areaId := range req.AreaIds {
			if err := uow.UserRepository().AssignArea(ctx, user.Id, areaId); err != nil {
				return nil, err
			}
		}
		user.AreaIds = req.AreaIds
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return s.toResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, query *dto.ListUsersQuery) ([]*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{}
	if query.Role != "" {
		specs = append(specs, specification.ByRole{Role: query.Role})
	}
	if query.Team != "" {
		specs = append(specs, specification.ByTeam{Team: query.Team})
	}

	users, err := uow.UserRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.UserResponse, 0, len(users))
	for _, user := range users {
		if user.Role == entity.UserRoleManager {
			if areaIds, err := uow.UserRepository().FindAreaIdsByUser(ctx, user.Id); err == nil {
				user.AreaIds = areaIds
			}
		}
		res = append(res, s.toResponse(user))
	}
	return res, nil
}

func (s *userService) toResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		Id:        user.Id,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		CompanyId: user.CompanyId,
		Position:  user.Position,
		Team:      user.Team,
		AreaIds:   user.AreaIds,
		CreatedAt: user.CreatedAt,
	}
}
