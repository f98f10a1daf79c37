package contract

import (
	"context"

	"facility-services-be/internal/entity"
	"facility-services-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error)

	CreateMessage(ctx context.Context, message *entity.Message) error
	FindMessages(ctx context.Context, conversationId uuid.UUID) ([]*entity.Message, error)
	MarkMessagesRead(ctx context.Context, conversationId, readerUserId uuid.UUID) error
}
