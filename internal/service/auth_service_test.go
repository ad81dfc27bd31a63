package service

import (
	"context"
	"testing"
	"time"

	"cokilo-admin/internal/core/domain"
	"cokilo-admin/internal/core/ports/mocks"
	"cokilo-admin/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type authTestDeps struct {
	svc      *AuthServiceImpl
	admins   *mocks.MockAdminRepository
	hashSvc  *mocks.MockHashService
	tokenSvc *mocks.MockTokenService
	ctrl     *gomock.Controller
}

func setupAuthService(t *testing.T) *authTestDeps {
	ctrl := gomock.NewController(t)
	d := &authTestDeps{
		admins:   mocks.NewMockAdminRepository(ctrl),
		hashSvc:  mocks.NewMockHashService(ctrl),
		tokenSvc: mocks.NewMockTokenService(ctrl),
		ctrl:     ctrl,
	}
	d.svc = NewAuthService(d.admins, d.hashSvc, d.tokenSvc)
	return d
}

func activeAdmin() *domain.Admin {
	return &domain.Admin{
		ID:           uuid.New(),
		Email:        "ops@cokilo.com",
		Name:         "Nadia K.",
		Role:         "admin",
		PasswordHash: "argon2_hash",
		Status:       domain.AdminStatusActive,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	admin := activeAdmin()
	expiry := time.Now().Add(time.Hour)

	d.admins.EXPECT().GetByEmail(ctx, "ops@cokilo.com").Return(admin, nil)
	d.hashSvc.EXPECT().Verify("s3cret", "argon2_hash").Return(true, nil)
	d.tokenSvc.EXPECT().Generate(admin.ID, admin.Email, admin.Role).Return("jwt_token", expiry, nil)

	res, err := d.svc.Login(ctx, "ops@cokilo.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "jwt_token", res.Token)
	assert.Equal(t, expiry, res.ExpiresAt)
	assert.Equal(t, admin.Email, res.Admin.Email)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.admins.EXPECT().GetByEmail(ctx, "nobody@cokilo.com").Return(nil, nil)

	_, err := d.svc.Login(ctx, "nobody@cokilo.com", "pw")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "AUTH_001", appErr.Code)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	admin := activeAdmin()
	d.admins.EXPECT().GetByEmail(ctx, admin.Email).Return(admin, nil)
	d.hashSvc.EXPECT().Verify("wrong", "argon2_hash").Return(false, nil)

	_, err := d.svc.Login(ctx, admin.Email, "wrong")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "AUTH_001", appErr.Code)
}

func TestAuthService_Login_SuspendedAdmin(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	admin := activeAdmin()
	admin.Status = domain.AdminStatusSuspended

	d.admins.EXPECT().GetByEmail(ctx, admin.Email).Return(admin, nil)
	d.hashSvc.EXPECT().Verify("s3cret", "argon2_hash").Return(true, nil)

	_, err := d.svc.Login(ctx, admin.Email, "s3cret")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "AUTH_003", appErr.Code)
}
