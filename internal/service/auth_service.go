package service

import (
	"context"
	"fmt"

	"cokilo-admin/internal/core/ports"
	"cokilo-admin/pkg/apperror"
)

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	admins   ports.AdminRepository
	hashSvc  ports.HashService
	tokenSvc ports.TokenService
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	admins ports.AdminRepository,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		admins:   admins,
		hashSvc:  hashSvc,
		tokenSvc: tokenSvc,
	}
}

// Login validates staff credentials and returns a bearer token.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find admin: %w", err))
	}
	if admin == nil {
		return nil, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(password, admin.PasswordHash)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		return nil, apperror.ErrInvalidCredentials()
	}

	if !admin.IsActive() {
		return nil, apperror.ErrAdminSuspended()
	}

	token, expiresAt, err := s.tokenSvc.Generate(admin.ID, admin.Email, admin.Role)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	return &ports.LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Admin:     *admin,
	}, nil
}
