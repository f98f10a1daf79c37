package serverutils

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"facility-services-be/internal/entity"
	"facility-services-be/internal/repository/contract"
	"facility-services-be/internal/repository/specification"
	"facility-services-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// fakeUserRepo serves a single in-memory user to the middleware.
type fakeUserRepo struct {
	contract.UserRepository
	user *entity.User
}

func (f *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	return f.user, nil
}

type fakeUow struct {
	unitofwork.UnitOfWork
	users *fakeUserRepo
}

func (f *fakeUow) UserRepository() contract.UserRepository {
	return f.users
}

type fakeFactory struct {
	user *entity.User
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{users: &fakeUserRepo{user: f.user}}
}

func signToken(t *testing.T, secret string, userId uuid.UUID, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userId.String(),
		"role":    "client",
		"exp":     time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func newProtectedApp(factory unitofwork.RepositoryFactory) *fiber.App {
	app := fiber.New()
	app.Get("/protected", NewAuthMiddleware(factory), func(c *fiber.Ctx) error {
		userId := c.Locals("user_id").(uuid.UUID)
		return c.JSON(SuccessResponse("ok", userId.String()))
	})
	return app
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	app := newProtectedApp(&fakeFactory{})

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var body BaseResponse[any]
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "Unauthorized", body.Message)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newProtectedApp(&fakeFactory{})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var body BaseResponse[any]
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "Token inválido ou expirado.", body.Message)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newProtectedApp(&fakeFactory{})

	token := signToken(t, "test-secret", uuid.New(), -time.Hour)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var body BaseResponse[any]
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "Token inválido ou expirado.", body.Message)
}

func TestAuthMiddlewareUnknownUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newProtectedApp(&fakeFactory{user: nil})

	token := signToken(t, "test-secret", uuid.New(), time.Hour)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareInactiveUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	userId := uuid.New()
	app := newProtectedApp(&fakeFactory{user: &entity.User{
		Id:       userId,
		Role:     entity.UserRoleClient,
		IsActive: false,
	}})

	token := signToken(t, "test-secret", userId, time.Hour)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAuthMiddlewareActiveUserPasses(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	userId := uuid.New()
	companyId := uuid.New()
	app := newProtectedApp(&fakeFactory{user: &entity.User{
		Id:        userId,
		Role:      entity.UserRoleClient,
		IsActive:  true,
		CompanyId: &companyId,
	}})

	token := signToken(t, "test-secret", userId, time.Hour)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body BaseResponse[string]
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, userId.String(), body.Data)
}

func TestRequireRoles(t *testing.T) {
	app := fiber.New()
	app.Get("/admin-only", func(c *fiber.Ctx) error {
		c.Locals("role", c.Get("X-Test-Role"))
		return c.Next()
	}, RequireRoles(string(entity.UserRoleAdmin)), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("X-Test-Role", "admin")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("X-Test-Role", "client")
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestErrorHandlerMiddlewareMapsApiError(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/boom", func(c *fiber.Ctx) error {
		return NewNotFound("agendamento não encontrado")
	})

	req := httptest.NewRequest("GET", "/boom", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body BaseResponse[any]
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "agendamento não encontrado", body.Message)
}

func TestErrorResponseEnvelope(t *testing.T) {
	res := ErrorResponse("boom")
	assert.False(t, res.Success)
	assert.Equal(t, "boom", res.Message)
	assert.Nil(t, res.Data)
}
