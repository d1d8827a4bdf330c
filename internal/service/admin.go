package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/inventory-service/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/repository"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/db"
	"github.com/tuanvumaihuynh/inventory-service/pkg/password"
)

type CreateAdminParams struct {
	Name     string
	Email    string
	Password string
	Rights   string
	Status   model.AccountStatus
}

// UpdateAdminParams carries a partial update. The password is re-hashed
// only when a new one is supplied.
type UpdateAdminParams struct {
	Name     *string
	Email    *string
	Password *string
	Rights   *string
	Status   *model.AccountStatus
}

type AdminService interface {
	CreateAdmin(ctx context.Context, params CreateAdminParams) (model.Admin, error)
	UpdateAdmin(ctx context.Context, id uuid.UUID, params UpdateAdminParams) (model.Admin, error)
	GetAdmin(ctx context.Context, id uuid.UUID) (model.Admin, error)
	ListAllAdmins(ctx context.Context) ([]model.Admin, error)
	DeleteAdmin(ctx context.Context, id uuid.UUID) error

	// AnyAdminExists reports whether at least one admin account exists.
	AnyAdminExists(ctx context.Context) (bool, error)

	// RegisterSuperAdmin bootstraps the first admin account. It fails
	// once any admin exists, so it is only usable on a fresh system.
	RegisterSuperAdmin(ctx context.Context, params CreateAdminParams) (model.Admin, error)
}

type adminService struct {
	db        db.DB
	adminRepo repository.AdminRepository
	logger    *slog.Logger
}

func NewAdminService(db db.DB, adminRepo repository.AdminRepository, logger *slog.Logger) AdminService {
	return &adminService{
		db:        db,
		adminRepo: adminRepo,
		logger:    logger.With(slog.String("service", "admin")),
	}
}

func (s *adminService) CreateAdmin(ctx context.Context, params CreateAdminParams) (model.Admin, error) {
	admin, err := s.buildAdmin(params)
	if err != nil {
		return model.Admin{}, err
	}

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		return s.insertAdmin(ctx, s.adminRepo.WithDB(db), admin)
	}); err != nil {
		return model.Admin{}, fmt.Errorf("db with tx: %w", err)
	}

	s.logger.InfoContext(ctx, "admin created",
		slog.String("admin_id", admin.ID.String()),
		slog.String("email", admin.Email))

	return admin, nil
}

func (s *adminService) RegisterSuperAdmin(ctx context.Context, params CreateAdminParams) (model.Admin, error) {
	admin, err := s.buildAdmin(params)
	if err != nil {
		return model.Admin{}, err
	}

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		repo := s.adminRepo.WithDB(db)

		count, err := repo.CountAdmins(ctx)
		if err != nil {
			return fmt.Errorf("count admins: %w", err)
		}
		if count > 0 {
			return apperr.SuperAdminExistsErr
		}

		return s.insertAdmin(ctx, repo, admin)
	}); err != nil {
		return model.Admin{}, fmt.Errorf("db with tx: %w", err)
	}

	s.logger.InfoContext(ctx, "super admin registered",
		slog.String("admin_id", admin.ID.String()),
		slog.String("email", admin.Email))

	return admin, nil
}

func (s *adminService) buildAdmin(params CreateAdminParams) (model.Admin, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.Admin{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	passwordHash, err := password.Hash(params.Password)
	if err != nil {
		return model.Admin{}, fmt.Errorf("hash password: %w", err)
	}

	rights := params.Rights
	if rights == "" {
		rights = "FULL"
	}
	status := params.Status
	if status == "" {
		status = model.AccountStatusActive
	}

	now := time.Now()
	return model.Admin{
		ID:           id,
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
		Rights:       rights,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *adminService) insertAdmin(ctx context.Context, repo repository.AdminRepository, admin model.Admin) error {
	exists, err := repo.ExistsByEmail(ctx, admin.Email)
	if err != nil {
		return fmt.Errorf("exists by email: %w", err)
	}
	if exists {
		return apperr.EmailTakenErr
	}

	if err := repo.CreateAdmin(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	return nil
}

func (s *adminService) UpdateAdmin(ctx context.Context, id uuid.UUID, params UpdateAdminParams) (model.Admin, error) {
	var admin model.Admin

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		repo := s.adminRepo.WithDB(db)

		current, err := repo.GetAdminByID(ctx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return apperr.AdminNotFoundErr.WrapParent(err)
			}
			return fmt.Errorf("get admin by id: %w", err)
		}

		if params.Email != nil && *params.Email != current.Email {
			exists, err := repo.ExistsByEmail(ctx, *params.Email)
			if err != nil {
				return fmt.Errorf("exists by email: %w", err)
			}
			if exists {
				return apperr.EmailTakenErr
			}
			current.Email = *params.Email
		}
		if params.Name != nil {
			current.Name = *params.Name
		}
		if params.Password != nil && *params.Password != "" {
			passwordHash, err := password.Hash(*params.Password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			current.PasswordHash = passwordHash
		}
		if params.Rights != nil {
			current.Rights = *params.Rights
		}
		if params.Status != nil {
			current.Status = *params.Status
		}

		current.UpdatedAt = time.Now()

		if err := repo.UpdateAdmin(ctx, current); err != nil {
			return fmt.Errorf("update admin: %w", err)
		}

		admin = current
		return nil
	}); err != nil {
		return model.Admin{}, fmt.Errorf("db with tx: %w", err)
	}

	return admin, nil
}

func (s *adminService) GetAdmin(ctx context.Context, id uuid.UUID) (model.Admin, error) {
	admin, err := s.adminRepo.GetAdminByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return model.Admin{}, apperr.AdminNotFoundErr.WrapParent(err)
		}
		return model.Admin{}, fmt.Errorf("get admin by id: %w", err)
	}

	return admin, nil
}

func (s *adminService) ListAllAdmins(ctx context.Context) ([]model.Admin, error) {
	admins, err := s.adminRepo.ListAllAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all admins: %w", err)
	}

	return admins, nil
}

func (s *adminService) DeleteAdmin(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.adminRepo.DeleteAdmin(ctx, id)
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	if !deleted {
		return apperr.AdminNotFoundErr
	}

	return nil
}

func (s *adminService) AnyAdminExists(ctx context.Context) (bool, error) {
	count, err := s.adminRepo.CountAdmins(ctx)
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}

	return count > 0, nil
}
