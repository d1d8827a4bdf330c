package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/db"
)

type AdminRepository interface {
	WithDB(db db.DB) AdminRepository

	CreateAdmin(ctx context.Context, admin model.Admin) error
	UpdateAdmin(ctx context.Context, admin model.Admin) error
	GetAdminByID(ctx context.Context, id uuid.UUID) (model.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (model.Admin, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountAdmins(ctx context.Context) (int, error)
	ListAllAdmins(ctx context.Context) ([]model.Admin, error)
	DeleteAdmin(ctx context.Context, id uuid.UUID) (bool, error)
}

type adminRepository struct {
	db db.DB
}

func NewAdminRepository(db db.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r adminRepository) WithDB(db db.DB) AdminRepository {
	return &adminRepository{db: db}
}

const adminColumns = `id, name, email, password_hash, rights, status, created_at, updated_at`

func (r adminRepository) CreateAdmin(ctx context.Context, admin model.Admin) error {
	if _, err := r.db.Exec(ctx, `
		INSERT INTO admins (id, name, email, password_hash, rights, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		admin.ID,
		admin.Name,
		admin.Email,
		admin.PasswordHash,
		admin.Rights,
		string(admin.Status),
		admin.CreatedAt,
		admin.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}

	return nil
}

func (r adminRepository) UpdateAdmin(ctx context.Context, admin model.Admin) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE admins
		SET name = $2,
			email = $3,
			password_hash = $4,
			rights = $5,
			status = $6,
			updated_at = $7
		WHERE id = $1`,
		admin.ID,
		admin.Name,
		admin.Email,
		admin.PasswordHash,
		admin.Rights,
		string(admin.Status),
		admin.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update admin %s: %w", admin.ID, pgx.ErrNoRows)
	}

	return nil
}

func (r adminRepository) GetAdminByID(ctx context.Context, id uuid.UUID) (model.Admin, error) {
	row := r.db.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = $1`, id)

	admin, err := scanAdmin(row)
	if err != nil {
		return model.Admin{}, fmt.Errorf("get admin by id: %w", err)
	}

	return admin, nil
}

func (r adminRepository) GetAdminByEmail(ctx context.Context, email string) (model.Admin, error) {
	row := r.db.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE email = $1`, email)

	admin, err := scanAdmin(row)
	if err != nil {
		return model.Admin{}, fmt.Errorf("get admin by email: %w", err)
	}

	return admin, nil
}

func (r adminRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM admins WHERE email = $1)`, email,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("admin exists by email: %w", err)
	}

	return exists, nil
}

func (r adminRepository) CountAdmins(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}

	return count, nil
}

func (r adminRepository) ListAllAdmins(ctx context.Context) ([]model.Admin, error) {
	rows, err := r.db.Query(ctx, `SELECT `+adminColumns+` FROM admins ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list all admins: %w", err)
	}
	defer rows.Close()

	var admins []model.Admin
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("scan admin: %w", err)
		}
		admins = append(admins, admin)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate admins: %w", err)
	}

	return admins, nil
}

func (r adminRepository) DeleteAdmin(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete admin: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func scanAdmin(row pgx.Row) (model.Admin, error) {
	var (
		admin  model.Admin
		status string
	)

	if err := row.Scan(
		&admin.ID,
		&admin.Name,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Rights,
		&status,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	); err != nil {
		return model.Admin{}, err
	}

	admin.Status = model.AccountStatus(status)
	return admin, nil
}
