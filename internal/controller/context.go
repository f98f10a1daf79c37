package controller

import (
	"facility-services-be/internal/entity"
	"facility-services-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// authFromLocals rebuilds the caller identity placed in locals by the JWT
// middleware.
func authFromLocals(ctx *fiber.Ctx) *service.AuthContext {
	auth := &service.AuthContext{}
	if userId, ok := ctx.Locals("user_id").(uuid.UUID); ok {
		auth.UserId = userId
	}
	if role, ok := ctx.Locals("role").(string); ok {
		auth.Role = entity.UserRole(role)
	}
	if clientId, ok := ctx.Locals("client_id").(uuid.UUID); ok {
		auth.ClientId = &clientId
	}
	return auth
}
