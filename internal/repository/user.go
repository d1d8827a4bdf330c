package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/db"
)

type UserRepository interface {
	WithDB(db db.DB) UserRepository

	CreateUser(ctx context.Context, user model.User) error
	UpdateUser(ctx context.Context, user model.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListAllUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) (bool, error)
}

type userRepository struct {
	db db.DB
}

func NewUserRepository(db db.DB) UserRepository {
	return &userRepository{db: db}
}

func (r userRepository) WithDB(db db.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, password_hash, address, phone_number, status, created_at, updated_at`

func (r userRepository) CreateUser(ctx context.Context, user model.User) error {
	if _, err := r.db.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, address, phone_number, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Address,
		user.PhoneNumber,
		string(user.Status),
		user.CreatedAt,
		user.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (r userRepository) UpdateUser(ctx context.Context, user model.User) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET name = $2,
			email = $3,
			password_hash = $4,
			address = $5,
			phone_number = $6,
			status = $7,
			updated_at = $8
		WHERE id = $1`,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Address,
		user.PhoneNumber,
		string(user.Status),
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update user %s: %w", user.ID, pgx.ErrNoRows)
	}

	return nil
}

func (r userRepository) GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	user, err := scanUser(row)
	if err != nil {
		return model.User{}, fmt.Errorf("get user by id: %w", err)
	}

	return user, nil
}

func (r userRepository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	user, err := scanUser(row)
	if err != nil {
		return model.User{}, fmt.Errorf("get user by email: %w", err)
	}

	return user, nil
}

func (r userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("user exists by email: %w", err)
	}

	return exists, nil
}

func (r userRepository) ListAllUsers(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list all users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

func (r userRepository) DeleteUser(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func scanUser(row pgx.Row) (model.User, error) {
	var (
		user   model.User
		status string
	)

	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Address,
		&user.PhoneNumber,
		&status,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return model.User{}, err
	}

	user.Status = model.AccountStatus(status)
	return user, nil
}
