// Package repository contains pgx-backed persistence for the inventory
// domain. Repositories participate in caller-owned transactions via
// WithDB.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// IsNotFound reports whether err stems from a query that matched no row.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
