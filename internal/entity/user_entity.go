package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleClient       UserRole = "client"
	UserRoleManager      UserRole = "gestor"
	UserRoleCollaborator UserRole = "colaborador"
	UserRoleAdmin        UserRole = "admin"
)

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash *string
	FullName     string
	Role         UserRole
	IsActive     bool

	// Clients belong to exactly one company.
	CompanyId *uuid.UUID

	// Collaborators carry a position and team.
	Position *string
	Team     *string

	// Managers are scoped to one or more areas.
	AreaIds []uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserRefreshToken struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	IpAddress string
	UserAgent string
	CreatedAt time.Time
}
