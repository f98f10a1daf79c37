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
)

type IConversationService interface {
	Create(ctx context.Context, user *AuthContext, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error)
	List(ctx context.Context, user *AuthContext) ([]*dto.ConversationResponse, error)
	ListMessages(ctx context.Context, user *AuthContext, conversationId uuid.UUID) ([]*dto.MessageResponse, error)
	PostMessage(ctx context.Context, user *AuthContext, conversationId uuid.UUID, req *dto.CreateMessageRequest) (*dto.MessageResponse, error)
}

type conversationService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewConversationService(uowFactory unitofwork.RepositoryFactory) IConversationService {
	return &conversationService{uowFactory: uowFactory}
}

// companyScope resolves which company's threads the caller may touch.
// Clients are pinned to their own company; staff roles see any thread.
func (s *conversationService) companyScope(user *AuthContext) (*uuid.UUID, error) {
	if user.Role == entity.UserRoleClient {
		if user.ClientId == nil {
			return nil, serverutils.NewForbidden("no company bound to this account")
		}
		return user.ClientId, nil
	}
	if user.Role == entity.UserRoleCollaborator {
		return nil, serverutils.NewForbidden("collaborators have no portal messaging access")
	}
	return nil, nil
}

func (s *conversationService) Create(ctx context.Context, user *AuthContext, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error) {
	if user.Role != entity.UserRoleClient || user.ClientId == nil {
		return nil, serverutils.NewForbidden("only clients open portal conversations")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation := &entity.Conversation{
		Id:              uuid.New(),
		CompanyId:       *user.ClientId,
		Subject:         req.Subject,
		CreatedByUserId: user.UserId,
		CreatedAt:       time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ConversationRepository().Create(ctx, conversation); err != nil {
		return nil, err
	}

	message := &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		SenderUserId:   user.UserId,
		Body:           req.Body,
		CreatedAt:      time.Now(),
	}
	if err := uow.ConversationRepository().CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.ConversationResponse{
		Id:          conversation.Id,
		CompanyId:   conversation.CompanyId,
		Subject:     conversation.Subject,
		CreatedBy:   conversation.CreatedByUserId,
		CreatedAt:   conversation.CreatedAt,
		LastMessage: &req.Body,
	}, nil
}

func (s *conversationService) List(ctx context.Context, user *AuthContext) ([]*dto.ConversationResponse, error) {
	companyId, err := s.companyScope(user)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{}
	if companyId != nil {
		specs = append(specs, specification.ByCompanyID{CompanyID: *companyId})
	}

	conversations, err := uow.ConversationRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ConversationResponse, 0, len(conversations))
	for _, conversation := range conversations {
		item := &dto.ConversationResponse{
			Id:        conversation.Id,
			CompanyId: conversation.CompanyId,
			Subject:   conversation.Subject,
			CreatedBy: conversation.CreatedByUserId,
			CreatedAt: conversation.CreatedAt,
		}
		if messages, err := uow.ConversationRepository().FindMessages(ctx, conversation.Id); err == nil && len(messages) > 0 {
			last := messages[len(messages)-1].Body
			item.LastMessage = &last
		}
		res = append(res, item)
	}
	return res, nil
}

func (s *conversationService) loadConversation(ctx context.Context, uow unitofwork.UnitOfWork, user *AuthContext, conversationId uuid.UUID) (*entity.Conversation, error) {
	companyId, err := s.companyScope(user)
	if err != nil {
		return nil, err
	}

	specs := []specification.Specification{specification.ByID{ID: conversationId}}
	if companyId != nil {
		specs = append(specs, specification.ByCompanyID{CompanyID: *companyId})
	}

	conversation, err := uow.ConversationRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, serverutils.NewNotFound("conversation not found")
	}
	return conversation, nil
}

func (s *conversationService) ListMessages(ctx context.Context, user *AuthContext, conversationId uuid.UUID) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := s.loadConversation(ctx, uow, user, conversationId)
	if err != nil {
		return nil, err
	}

	messages, err := uow.ConversationRepository().FindMessages(ctx, conversation.Id)
	if err != nil {
		return nil, err
	}

	// Reading the thread marks the other side's messages as read.
	if err := uow.ConversationRepository().MarkMessagesRead(ctx, conversation.Id, user.UserId); err != nil {
		return nil, err
	}

	senderNames := map[uuid.UUID]string{}
	res := make([]*dto.MessageResponse, 0, len(messages))
	for _, message := range messages {
		if _, ok := senderNames[message.SenderUserId]; !ok {
			if sender, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: message.SenderUserId}); err == nil && sender != nil {
				senderNames[message.SenderUserId] = sender.FullName
			}
		}
		res = append(res, &dto.MessageResponse{
			Id:           message.Id,
			SenderUserId: message.SenderUserId,
			SenderName:   senderNames[message.SenderUserId],
			Body:         message.Body,
			ReadAt:       message.ReadAt,
			CreatedAt:    message.CreatedAt,
		})
	}
	return res, nil
}

func (s *conversationService) PostMessage(ctx context.Context, user *AuthContext, conversationId uuid.UUID, req *dto.CreateMessageRequest) (*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := s.loadConversation(ctx, uow, user, conversationId)
	if err != nil {
		return nil, err
	}

	message := &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		SenderUserId:   user.UserId,
		Body:           req.Body,
		CreatedAt:      time.Now(),
	}
	if err := uow.ConversationRepository().CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	return &dto.MessageResponse{
		Id:           message.Id,
		SenderUserId: message.SenderUserId,
		Body:         message.Body,
		CreatedAt:    message.CreatedAt,
	}, nil
}
