package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/SundayYogurt/claim_service/internal/domain"
	"github.com/SundayYogurt/claim_service/internal/dto"
	"github.com/SundayYogurt/claim_service/internal/helper"
	"github.com/SundayYogurt/claim_service/internal/helper/utils"
	"github.com/SundayYogurt/claim_service/internal/repository"
	"github.com/SundayYogurt/claim_service/pkg/errno"
	"github.com/SundayYogurt/claim_service/pkg/logger"
	"github.com/SundayYogurt/claim_service/pkg/monitor"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const MinPasswordLength = 6

type AuthService interface {
	Login(ctx context.Context, input dto.AdminLogin) (*domain.Admin, error)
	ChangePassword(ctx context.Context, adminID uint, password string) error
	FindAdmin(ctx context.Context, adminID uint) (*domain.Admin, error)
}

type authService struct {
	repo repository.AdminRepository
	auth helper.Auth
}

func NewAuthService(repo repository.AdminRepository, auth helper.Auth) AuthService {
	return &authService{
		repo: repo,
		auth: auth,
	}
}

// Login checks the credentials. Unknown email and wrong password both
// return ErrInvalidCredentials after the same amount of bcrypt work.
func (s *authService) Login(ctx context.Context, input dto.AdminLogin) (*domain.Admin, error) {
	email := utils.NormalizeEmail(input.Email)
	password := input.Password

	if email == "" || password == "" {
		return nil, errno.Validation("Missing credentials")
	}

	admin, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.auth.BurnVerify(password)
		monitor.AdminLogin(false)
		return nil, errno.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errno.ErrServer
	}

	if err := s.auth.VerifyPassword(password, admin.PasswordHash); err != nil {
		monitor.AdminLogin(false)
		return nil, errno.ErrInvalidCredentials
	}

	monitor.AdminLogin(true)
	logger.Info("admin logged in", zap.Uint("admin_id", admin.ID))
	return admin, nil
}

func (s *authService) ChangePassword(ctx context.Context, adminID uint, password string) error {
	if adminID == 0 {
		return errno.ErrUnauthorized
	}
	if utf8.RuneCountInString(password) < MinPasswordLength || strings.TrimSpace(password) == "" {
		return errno.Validation("Password must be at least 6 characters")
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		logger.Error("hash password error", zap.Uint("admin_id", adminID), zap.Error(err))
		return errno.ErrServer
	}

	if err := s.repo.UpdatePasswordHash(ctx, adminID, hash); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errno.ErrUnauthorized
		}
		return errno.ErrServer
	}

	logger.Info("admin password changed", zap.Uint("admin_id", adminID))
	return nil
}

func (s *authService) FindAdmin(ctx context.Context, adminID uint) (*domain.Admin, error) {
	admin, err := s.repo.FindByID(ctx, adminID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errno.ErrUnauthorized
	}
	if err != nil {
		return nil, errno.ErrServer
	}
	return admin, nil
}
