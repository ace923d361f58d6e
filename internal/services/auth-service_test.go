package services

import (
	"context"
	"testing"

	"github.com/SundayYogurt/claim_service/internal/domain"
	"github.com/SundayYogurt/claim_service/internal/dto"
	"github.com/SundayYogurt/claim_service/internal/helper"
	"github.com/SundayYogurt/claim_service/internal/repository"
	"github.com/SundayYogurt/claim_service/internal/testutil"
	"github.com/SundayYogurt/claim_service/pkg/errno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (AuthService, *domain.Admin) {
	auth := helper.SetupAuth(bcrypt.MinCost)
	repo := repository.NewAdminRepository(testutil.NewDB(t))

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	admin := &domain.Admin{Email: "admin@example.com", PasswordHash: hash}
	require.NoError(t, repo.Create(context.Background(), admin))

	return NewAuthService(repo, auth), admin
}

func TestLogin(t *testing.T) {
	svc, admin := newAuthFixture(t)
	ctx := context.Background()

	got, err := svc.Login(ctx, dto.AdminLogin{Email: " Admin@Example.com ", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)

	_, err = svc.Login(ctx, dto.AdminLogin{Email: "admin@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, errno.ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.AdminLogin{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, errno.ErrInvalidCredentials)
	assert.Equal(t, "Invalid credentials", err.Error(), "unknown email looks like a wrong password")

	_, err = svc.Login(ctx, dto.AdminLogin{Email: "admin@example.com"})
	assert.ErrorIs(t, err, errno.ErrValidation)
	assert.Equal(t, "Missing credentials", err.Error())
}

func TestChangePassword(t *testing.T) {
	svc, admin := newAuthFixture(t)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, admin.ID, "12345")
	assert.ErrorIs(t, err, errno.ErrValidation)
	err = svc.ChangePassword(ctx, admin.ID, "      ")
	assert.ErrorIs(t, err, errno.ErrValidation)

	require.NoError(t, svc.ChangePassword(ctx, admin.ID, "newpass"))

	_, err = svc.Login(ctx, dto.AdminLogin{Email: "admin@example.com", Password: "password123"})
	assert.ErrorIs(t, err, errno.ErrInvalidCredentials)
	_, err = svc.Login(ctx, dto.AdminLogin{Email: "admin@example.com", Password: "newpass"})
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(ctx, 0, "newpass"), errno.ErrUnauthorized)
	assert.ErrorIs(t, svc.ChangePassword(ctx, 999, "newpass"), errno.ErrUnauthorized)
}

func TestFindAdmin(t *testing.T) {
	svc, admin := newAuthFixture(t)

	got, err := svc.FindAdmin(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", got.Email)

	_, err = svc.FindAdmin(context.Background(), 42)
	assert.ErrorIs(t, err, errno.ErrUnauthorized)
}
