package auth

import (
	"context"
	"time"

	"github.com/Iqbalshah786/inventory/internal/core/apperror"
	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/domain/audit"
	"github.com/Iqbalshah786/inventory/pkg/logger"
)

// Service handles login and credential management.
type Service struct {
	repo     Repository
	issuer   *TokenIssuer
	recorder audit.Recorder
}

// NewService creates a new auth service.
func NewService(repo Repository, issuer *TokenIssuer, recorder audit.Recorder) *Service {
	return &Service{repo: repo, issuer: issuer, recorder: recorder}
}

// Login verifies credentials and returns a signed token. Wrong username
// and wrong password produce the same error so the response does not
// reveal which part failed.
func (s *Service) Login(ctx context.Context, username, password string) (string, *Admin, error) {
	admin, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if admin == nil || !admin.CheckPassword(password) {
		return "", nil, apperror.NewUnauthorized("invalid credentials")
	}

	token, err := s.issuer.Issue(admin.ID, admin.Username)
	if err != nil {
		return "", nil, apperror.NewInternal(err)
	}

	audit.Record(s.recorder, ctx, audit.ActionLogin, "admin", admin.ID, nil)
	logger.Info(ctx, "admin logged in", "username", admin.Username)
	return token, admin, nil
}

// ValidateToken checks a bearer token and returns its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return s.issuer.Validate(tokenString)
}

// ChangeUsername updates the admin's login name.
func (s *Service) ChangeUsername(ctx context.Context, adminID id.ID, username string) error {
	if username == "" {
		return apperror.NewValidation("username is required")
	}

	admin, err := s.repo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}
	if admin == nil {
		return apperror.NewNotFound("admin", adminID)
	}

	if err := s.repo.UpdateUsername(ctx, adminID, username); err != nil {
		return err
	}

	audit.Record(s.recorder, ctx, audit.ActionUpdate, "admin", adminID, map[string]string{"username": username})
	logger.Info(ctx, "admin username changed", "admin_id", adminID)
	return nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *Service) ChangePassword(ctx context.Context, adminID id.ID, current, next string) error {
	if len(next) < 8 {
		return apperror.NewValidation("password must be at least 8 characters")
	}

	admin, err := s.repo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}
	if admin == nil {
		return apperror.NewNotFound("admin", adminID)
	}
	if !admin.CheckPassword(current) {
		return apperror.NewUnauthorized("current password is incorrect")
	}

	if err := admin.SetPassword(next); err != nil {
		return apperror.NewInternal(err)
	}
	if err := s.repo.UpdatePassword(ctx, adminID, admin.PasswordHash); err != nil {
		return err
	}

	audit.Record(s.recorder, ctx, audit.ActionUpdate, "admin", adminID, nil)
	logger.Info(ctx, "admin password changed", "admin_id", adminID)
	return nil
}

// EnsureAdmin bootstraps the admin account on first start. An existing
// account is left untouched.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := &Admin{
		ID:        id.New(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := admin.SetPassword(password); err != nil {
		return apperror.NewInternal(err)
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return err
	}

	logger.Info(ctx, "admin account bootstrapped", "username", username)
	return nil
}
