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

type CreateStaffParams struct {
	Name        string
	Email       string
	Password    string
	Designation string
	Department  string
	PhoneNumber string
	Rights      string
	Status      model.AccountStatus
}

// UpdateStaffParams carries a partial update. The password is re-hashed
// only when a new one is supplied.
type UpdateStaffParams struct {
	Name        *string
	Email       *string
	Password    *string
	Designation *string
	Department  *string
	PhoneNumber *string
	Rights      *string
	Status      *model.AccountStatus
}

type StaffService interface {
	CreateStaff(ctx context.Context, params CreateStaffParams) (model.Staff, error)
	UpdateStaff(ctx context.Context, id uuid.UUID, params UpdateStaffParams) (model.Staff, error)
	GetStaff(ctx context.Context, id uuid.UUID) (model.Staff, error)
	ListAllStaff(ctx context.Context) ([]model.Staff, error)
	DeleteStaff(ctx context.Context, id uuid.UUID) error
}

type staffService struct {
	db        db.DB
	staffRepo repository.StaffRepository
	logger    *slog.Logger
}

func NewStaffService(db db.DB, staffRepo repository.StaffRepository, logger *slog.Logger) StaffService {
	return &staffService{
		db:        db,
		staffRepo: staffRepo,
		logger:    logger.With(slog.String("service", "staff")),
	}
}

func (s *staffService) CreateStaff(ctx context.Context, params CreateStaffParams) (model.Staff, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.Staff{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	passwordHash, err := password.Hash(params.Password)
	if err != nil {
		return model.Staff{}, fmt.Errorf("hash password: %w", err)
	}

	rights := params.Rights
	if rights == "" {
		rights = "BASIC"
	}
	status := params.Status
	if status == "" {
		status = model.AccountStatusActive
	}

	now := time.Now()
	staff := model.Staff{
		ID:           id,
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
		Designation:  params.Designation,
		Department:   params.Department,
		PhoneNumber:  params.PhoneNumber,
		Rights:       rights,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		repo := s.staffRepo.WithDB(db)

		exists, err := repo.ExistsByEmail(ctx, staff.Email)
		if err != nil {
			return fmt.Errorf("exists by email: %w", err)
		}
		if exists {
			return apperr.EmailTakenErr
		}

		if err := repo.CreateStaff(ctx, staff); err != nil {
			return fmt.Errorf("create staff: %w", err)
		}

		return nil
	}); err != nil {
		return model.Staff{}, fmt.Errorf("db with tx: %w", err)
	}

	s.logger.InfoContext(ctx, "staff created",
		slog.String("staff_id", staff.ID.String()),
		slog.String("email", staff.Email))

	return staff, nil
}

func (s *staffService) UpdateStaff(ctx context.Context, id uuid.UUID, params UpdateStaffParams) (model.Staff, error) {
	var staff model.Staff

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		repo := s.staffRepo.WithDB(db)

		current, err := repo.GetStaffByID(ctx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return apperr.StaffNotFoundErr.WrapParent(err)
			}
			return fmt.Errorf("get staff by id: %w", err)
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
		if params.Designation != nil {
			current.Designation = *params.Designation
		}
		if params.Department != nil {
			current.Department = *params.Department
		}
		if params.PhoneNumber != nil {
			current.PhoneNumber = *params.PhoneNumber
		}
		if params.Rights != nil {
			current.Rights = *params.Rights
		}
		if params.Status != nil {
			current.Status = *params.Status
		}

		current.UpdatedAt = time.Now()

		if err := repo.UpdateStaff(ctx, current); err != nil {
			return fmt.Errorf("update staff: %w", err)
		}

		staff = current
		return nil
	}); err != nil {
		return model.Staff{}, fmt.Errorf("db with tx: %w", err)
	}

	return staff, nil
}

func (s *staffService) GetStaff(ctx context.Context, id uuid.UUID) (model.Staff, error) {
	staff, err := s.staffRepo.GetStaffByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return model.Staff{}, apperr.StaffNotFoundErr.WrapParent(err)
		}
		return model.Staff{}, fmt.Errorf("get staff by id: %w", err)
	}

	return staff, nil
}

func (s *staffService) ListAllStaff(ctx context.Context) ([]model.Staff, error) {
	staffMembers, err := s.staffRepo.ListAllStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all staff: %w", err)
	}

	return staffMembers, nil
}

func (s *staffService) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.staffRepo.DeleteStaff(ctx, id)
	if err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	if !deleted {
		return apperr.StaffNotFoundErr
	}

	return nil
}
