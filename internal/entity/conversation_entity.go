package entity

import (
	"time"

	"github.com/google/uuid"
)

// Conversation threads client-portal messages per company. These used to live
// in process-wide arrays on the old backend; they are persisted rows now.
type Conversation struct {
	Id              uuid.UUID
	CompanyId       uuid.UUID
	Subject         string
	CreatedByUserId uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

type Message struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	SenderUserId   uuid.UUID
	Body           string
	ReadAt         *time.Time
	CreatedAt      time.Time
}
