package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role distinguishes the three account types of the system.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
	RoleUser  Role = "USER"
)

// AccountStatus is the lifecycle state of a staff or user account.
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "ACTIVE"
	AccountStatusInactive AccountStatus = "INACTIVE"
)

// Validate implements the enum contract used by the validator.
func (s AccountStatus) Validate() error {
	switch s {
	case AccountStatusActive, AccountStatusInactive:
		return nil
	default:
		return fmt.Errorf("invalid account status: %s", s)
	}
}

// Admin is a privileged account that manages staff and system settings.
// PasswordHash is never serialized.
type Admin struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	Rights       string        `json:"rights"`
	Status       AccountStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Staff is a back-office account that manages the catalog.
// PasswordHash is never serialized.
type Staff struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	Designation  string        `json:"designation"`
	Department   string        `json:"department"`
	PhoneNumber  string        `json:"phone_number"`
	Rights       string        `json:"rights"`
	Status       AccountStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// User is a customer account that places orders.
type User struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	Address      string        `json:"address"`
	PhoneNumber  string        `json:"phone_number"`
	Status       AccountStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
