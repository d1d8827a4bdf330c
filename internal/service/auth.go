package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/inventory-service/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/repository"
	"github.com/tuanvumaihuynh/inventory-service/pkg/password"
)

// Identity is the verified account returned by a successful login.
// Credential verification only; session and token handling live
// outside this service.
type Identity struct {
	ID    uuid.UUID  `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

type AuthService interface {
	// VerifyCredentials resolves the account for email across admins,
	// staff and users and checks the raw password against the stored hash.
	VerifyCredentials(ctx context.Context, email, rawPassword string) (Identity, error)
}

type authService struct {
	adminRepo repository.AdminRepository
	staffRepo repository.StaffRepository
	userRepo  repository.UserRepository
	logger    *slog.Logger
}

func NewAuthService(
	adminRepo repository.AdminRepository,
	staffRepo repository.StaffRepository,
	userRepo repository.UserRepository,
	logger *slog.Logger,
) AuthService {
	return &authService{
		adminRepo: adminRepo,
		staffRepo: staffRepo,
		userRepo:  userRepo,
		logger:    logger.With(slog.String("service", "auth")),
	}
}

func (s *authService) VerifyCredentials(ctx context.Context, email, rawPassword string) (Identity, error) {
	admin, err := s.adminRepo.GetAdminByEmail(ctx, email)
	if err == nil {
		return s.verify(ctx, Identity{
			ID:    admin.ID,
			Name:  admin.Name,
			Email: admin.Email,
			Role:  model.RoleAdmin,
		}, rawPassword, admin.PasswordHash)
	}
	if !repository.IsNotFound(err) {
		return Identity{}, fmt.Errorf("get admin by email: %w", err)
	}

	staff, err := s.staffRepo.GetStaffByEmail(ctx, email)
	if err == nil {
		return s.verify(ctx, Identity{
			ID:    staff.ID,
			Name:  staff.Name,
			Email: staff.Email,
			Role:  model.RoleStaff,
		}, rawPassword, staff.PasswordHash)
	}
	if !repository.IsNotFound(err) {
		return Identity{}, fmt.Errorf("get staff by email: %w", err)
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			// Same error as a wrong password, so probing for accounts
			// yields nothing.
			return Identity{}, apperr.InvalidCredentialsErr
		}
		return Identity{}, fmt.Errorf("get user by email: %w", err)
	}

	return s.verify(ctx, Identity{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  model.RoleUser,
	}, rawPassword, user.PasswordHash)
}

func (s *authService) verify(ctx context.Context, identity Identity, rawPassword, storedHash string) (Identity, error) {
	if err := password.Verify(rawPassword, storedHash); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			s.logger.WarnContext(ctx, "login rejected",
				slog.String("email", identity.Email))
			return Identity{}, apperr.InvalidCredentialsErr
		}
		return Identity{}, fmt.Errorf("verify password: %w", err)
	}

	s.logger.InfoContext(ctx, "login verified",
		slog.String("email", identity.Email),
		slog.String("role", string(identity.Role)))

	return identity, nil
}
