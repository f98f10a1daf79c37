package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"facility-services-be/internal/repository/specification"
	"facility-services-be/internal/repository/unitofwork"
)

const invalidTokenMessage = "Token inválido ou expirado."

// NewAuthMiddleware returns a handler that verifies the bearer token and
// loads the authenticated user. Requests carry user_id, role and, for
// clients, client_id in locals afterwards.
func NewAuthMiddleware(factory unitofwork.RepositoryFactory) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Unauthorized"))
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(invalidTokenMessage))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(invalidTokenMessage))
		}

		userIdStr, _ := claims["user_id"].(string)
		userId, err := uuid.Parse(userIdStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(invalidTokenMessage))
		}

		uow := factory.NewUnitOfWork(ctx.UserContext())
		user, err := uow.UserRepository().FindOne(ctx.UserContext(), specification.ByID{ID: userId})
		if err != nil {
			return err
		}
		if user == nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(invalidTokenMessage))
		}
		if !user.IsActive {
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse("account disabled"))
		}

		ctx.Locals("user_id", user.Id)
		ctx.Locals("role", string(user.Role))
		if user.CompanyId != nil {
			ctx.Locals("client_id", *user.CompanyId)
		}
		return ctx.Next()
	}
}

// RequireRoles rejects requests whose authenticated role is not listed.
func RequireRoles(roles ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		role, _ := ctx.Locals("role").(string)
		for _, allowed := range roles {
			if role == allowed {
				return ctx.Next()
			}
		}
		return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse("forbidden"))
	}
}
