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

type CreateUserParams struct {
	Name        string
	Email       string
	Password    string
	Address     string
	PhoneNumber string
}

type UpdateUserParams struct {
	Name        *string
	Email       *string
	Password    *string
	Address     *string
	PhoneNumber *string
	Status      *model.AccountStatus
}

type UserService interface {
	CreateUser(ctx context.Context, params CreateUserParams) (model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, params UpdateUserParams) (model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
	ListAllUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	db       db.DB
	userRepo repository.UserRepository
	logger   *slog.Logger
}

func NewUserService(db db.DB, userRepo repository.UserRepository, logger *slog.Logger) UserService {
	return &userService{
		db:       db,
		userRepo: userRepo,
		logger:   logger.With(slog.String("service", "user")),
	}
}

func (s *userService) CreateUser(ctx context.Context, params CreateUserParams) (model.User, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.User{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	passwordHash, err := password.Hash(params.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:           id,
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
		Address:      params.Address,
		PhoneNumber:  params.PhoneNumber,
		Status:       model.AccountStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		repo := s.userRepo.WithDB(db)

		exists, err := repo.ExistsByEmail(ctx, user.Email)
		if err != nil {
			return fmt.Errorf("exists by email: %w", err)
		}
		if exists {
			return apperr.EmailTakenErr
		}

		if err := repo.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		return nil
	}); err != nil {
		return model.User{}, fmt.Errorf("db with tx: %w", err)
	}

	s.logger.InfoContext(ctx, "user created",
		slog.String("user_id", user.ID.String()),
		slog.String("email", user.Email))

	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, params UpdateUserParams) (model.User, error) {
	var user model.User

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		repo := s.userRepo.WithDB(db)

		current, err := repo.GetUserByID(ctx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return apperr.UserNotFoundErr.WrapParent(err)
			}
			return fmt.Errorf("get user by id: %w", err)
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
		if params.Address != nil {
			current.Address = *params.Address
		}
		if params.PhoneNumber != nil {
			current.PhoneNumber = *params.PhoneNumber
		}
		if params.Status != nil {
			current.Status = *params.Status
		}

		current.UpdatedAt = time.Now()

		if err := repo.UpdateUser(ctx, current); err != nil {
			return fmt.Errorf("update user: %w", err)
		}

		user = current
		return nil
	}); err != nil {
		return model.User{}, fmt.Errorf("db with tx: %w", err)
	}

	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return model.User{}, apperr.UserNotFoundErr.WrapParent(err)
		}
		return model.User{}, fmt.Errorf("get user by id: %w", err)
	}

	return user, nil
}

func (s *userService) ListAllUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.ListAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all users: %w", err)
	}

	return users, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.userRepo.DeleteUser(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !deleted {
		return apperr.UserNotFoundErr
	}

	return nil
}
