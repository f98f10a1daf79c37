package service

import (
	"context"
	"testing"
	"time"

	"facility-services-be/internal/dto"
	"facility-services-be/internal/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func seedLoginUser(t *testing.T, uow *fakeUow, role entity.UserRole, active bool) (*entity.User, string) {
	t.Helper()
	password := "s3nh4-forte"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	hashStr := string(hash)

	user := &entity.User{
		Id:           uuid.New(),
		Email:        "maria@aurora.com",
		FullName:     "Maria Souza",
		Role:         role,
		PasswordHash: &hashStr,
		IsActive:     active,
	}
	if role == entity.UserRoleClient {
		companyId := uuid.New()
		user.CompanyId = &companyId
	}
	uow.users.users[user.Id] = user
	return user, password
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	uow := newFakeUow()
	seedLoginUser(t, uow, entity.UserRoleClient, true)
	svc := NewAuthService(&fakeFactory{uow: uow}, nil)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "maria@aurora.com", Password: "errada"}, "127.0.0.1", "go-test")
	assert.Equal(t, 401, apiErrorCode(t, err))
}

func TestLoginUnknownEmailIsUnauthorized(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	uow := newFakeUow()
	svc := NewAuthService(&fakeFactory{uow: uow}, nil)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ninguem@aurora.com", Password: "x"}, "127.0.0.1", "go-test")
	assert.Equal(t, 401, apiErrorCode(t, err))
}

func TestLoginInactiveUserIsForbidden(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	uow := newFakeUow()
	_, password := seedLoginUser(t, uow, entity.UserRoleClient, false)
	svc := NewAuthService(&fakeFactory{uow: uow}, nil)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "maria@aurora.com", Password: password}, "127.0.0.1", "go-test")
	assert.Equal(t, 403, apiErrorCode(t, err))
}

func TestLoginClientTokenCarriesClientId(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	uow := newFakeUow()
	user, password := seedLoginUser(t, uow, entity.UserRoleClient, true)
	svc := NewAuthService(&fakeFactory{uow: uow}, nil)

	res, err := svc.Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: password}, "127.0.0.1", "go-test")
	assert.NoError(t, err)
	assert.Empty(t, res.RefreshToken)

	parsed, err := jwt.Parse(res.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, user.Id.String(), claims["user_id"])
	assert.Equal(t, "client", claims["role"])
	assert.Equal(t, user.CompanyId.String(), claims["client_id"])
}

func TestLoginRememberMeStoresHashedRefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	uow := newFakeUow()
	user, password := seedLoginUser(t, uow, entity.UserRoleClient, true)
	svc := NewAuthService(&fakeFactory{uow: uow}, nil)

	res, err := svc.Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: password, RememberMe: true}, "127.0.0.1", "go-test")
	assert.NoError(t, err)
	assert.NotEmpty(t, res.RefreshToken)

	// The raw token never hits storage, only its hash.
	assert.Nil(t, uow.users.refreshTokens[res.RefreshToken])
	stored := uow.users.refreshTokens[hashToken(res.RefreshToken)]
	assert.NotNil(t, stored)
	assert.Equal(t, user.Id, stored.UserId)
}

func TestAdminLoginRejectsNonAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	uow := newFakeUow()
	user, password := seedLoginUser(t, uow, entity.UserRoleManager, true)
	svc := NewAuthService(&fakeFactory{uow: uow}, nil)

	_, err := svc.LoginAdmin(context.Background(), &dto.AdminLoginRequest{Email: user.Email, Password: password}, "127.0.0.1", "go-test")
	assert.Equal(t, 403, apiErrorCode(t, err))
}

func TestRefreshRotatesToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	uow := newFakeUow()
	user, password := seedLoginUser(t, uow, entity.UserRoleClient, true)
	svc := NewAuthService(&fakeFactory{uow: uow}, nil)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: password, RememberMe: true}, "127.0.0.1", "go-test")
	assert.NoError(t, err)

	res, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken}, "127.0.0.1", "go-test")
	assert.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, res.RefreshToken)

	// The presented token is revoked and cannot be replayed.
	_, err = svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken}, "127.0.0.1", "go-test")
	assert.Equal(t, 401, apiErrorCode(t, err))

	// The rotated one still works.
	_, err = svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: res.RefreshToken}, "127.0.0.1", "go-test")
	assert.NoError(t, err)
}

func TestRefreshExpiredTokenIsUnauthorized(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	uow := newFakeUow()
	user, _ := seedLoginUser(t, uow, entity.UserRoleClient, true)
	svc := NewAuthService(&fakeFactory{uow: uow}, nil)

	raw := uuid.New().String()
	uow.users.refreshTokens[hashToken(raw)] = &entity.UserRefreshToken{
		Id:        uuid.New(),
		UserId:    user.Id,
		TokenHash: hashToken(raw),
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	_, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: raw}, "127.0.0.1", "go-test")
	assert.Equal(t, 401, apiErrorCode(t, err))
}

func TestLogoutRevokesTokenAndIsIdempotent(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	uow := newFakeUow()
	user, password := seedLoginUser(t, uow, entity.UserRoleClient, true)
	svc := NewAuthService(&fakeFactory{uow: uow}, nil)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: password, RememberMe: true}, "127.0.0.1", "go-test")
	assert.NoError(t, err)

	assert.NoError(t, svc.Logout(context.Background(), login.RefreshToken))
	assert.True(t, uow.users.refreshTokens[hashToken(login.RefreshToken)].Revoked)

	assert.NoError(t, svc.Logout(context.Background(), "token-desconhecido"))
}
