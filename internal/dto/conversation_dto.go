package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateConversationRequest struct {
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

type ConversationResponse struct {
	Id          uuid.UUID `json:"id"`
	CompanyId   uuid.UUID `json:"company_id"`
	Subject     string    `json:"subject"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	LastMessage *string   `json:"last_message,omitempty"`
}

type CreateMessageRequest struct {
	Body string `json:"body" validate:"required"`
}

type MessageResponse struct {
	Id           uuid.UUID  `json:"id"`
	SenderUserId uuid.UUID  `json:"sender_user_id"`
	SenderName   string     `json:"sender_name,omitempty"`
	Body         string     `json:"body"`
	ReadAt       *time.Time `json:"read_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
