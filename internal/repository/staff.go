package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/db"
)

type StaffRepository interface {
	WithDB(db db.DB) StaffRepository

	CreateStaff(ctx context.Context, staff model.Staff) error
	UpdateStaff(ctx context.Context, staff model.Staff) error
	GetStaffByID(ctx context.Context, id uuid.UUID) (model.Staff, error)
	GetStaffByEmail(ctx context.Context, email string) (model.Staff, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListAllStaff(ctx context.Context) ([]model.Staff, error)
	DeleteStaff(ctx context.Context, id uuid.UUID) (bool, error)
}

type staffRepository struct {
	db db.DB
}

func NewStaffRepository(db db.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r staffRepository) WithDB(db db.DB) StaffRepository {
	return &staffRepository{db: db}
}

const staffColumns = `id, name, email, password_hash, designation, department, phone_number, rights, status, created_at, updated_at`

func (r staffRepository) CreateStaff(ctx context.Context, staff model.Staff) error {
	if _, err := r.db.Exec(ctx, `
		INSERT INTO staff (id, name, email, password_hash, designation, department, phone_number, rights, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		staff.ID,
		staff.Name,
		staff.Email,
		staff.PasswordHash,
		staff.Designation,
		staff.Department,
		staff.PhoneNumber,
		staff.Rights,
		string(staff.Status),
		staff.CreatedAt,
		staff.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert staff: %w", err)
	}

	return nil
}

func (r staffRepository) UpdateStaff(ctx context.Context, staff model.Staff) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE staff
		SET name = $2,
			email = $3,
			password_hash = $4,
			designation = $5,
			department = $6,
			phone_number = $7,
			rights = $8,
			status = $9,
			updated_at = $10
		WHERE id = $1`,
		staff.ID,
		staff.Name,
		staff.Email,
		staff.PasswordHash,
		staff.Designation,
		staff.Department,
		staff.PhoneNumber,
		staff.Rights,
		string(staff.Status),
		staff.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update staff: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update staff %s: %w", staff.ID, pgx.ErrNoRows)
	}

	return nil
}

func (r staffRepository) GetStaffByID(ctx context.Context, id uuid.UUID) (model.Staff, error) {
	row := r.db.QueryRow(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = $1`, id)

	staff, err := scanStaff(row)
	if err != nil {
		return model.Staff{}, fmt.Errorf("get staff by id: %w", err)
	}

	return staff, nil
}

func (r staffRepository) GetStaffByEmail(ctx context.Context, email string) (model.Staff, error) {
	row := r.db.QueryRow(ctx, `SELECT `+staffColumns+` FROM staff WHERE email = $1`, email)

	staff, err := scanStaff(row)
	if err != nil {
		return model.Staff{}, fmt.Errorf("get staff by email: %w", err)
	}

	return staff, nil
}

func (r staffRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM staff WHERE email = $1)`, email,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("staff exists by email: %w", err)
	}

	return exists, nil
}

func (r staffRepository) ListAllStaff(ctx context.Context) ([]model.Staff, error) {
	rows, err := r.db.Query(ctx, `SELECT `+staffColumns+` FROM staff ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list all staff: %w", err)
	}
	defer rows.Close()

	var staffMembers []model.Staff
	for rows.Next() {
		staff, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		staffMembers = append(staffMembers, staff)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate staff: %w", err)
	}

	return staffMembers, nil
}

func (r staffRepository) DeleteStaff(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete staff: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func scanStaff(row pgx.Row) (model.Staff, error) {
	var (
		staff  model.Staff
		status string
	)

	if err := row.Scan(
		&staff.ID,
		&staff.Name,
		&staff.Email,
		&staff.PasswordHash,
		&staff.Designation,
		&staff.Department,
		&staff.PhoneNumber,
		&staff.Rights,
		&status,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	); err != nil {
		return model.Staff{}, err
	}

	staff.Status = model.AccountStatus(status)
	return staff, nil
}
