package apperr

import (
	"fmt"

	"github.com/tuanvumaihuynh/inventory-service/pkg/zerror"
)

const (
	ValidationErrorCode         = "VALIDATION_FAILED"
	ProductNameTakenErrorCode   = "PRODUCT_NAME_TAKEN"
	ProductNotFoundErrorCode    = "PRODUCT_NOT_FOUND"
	InsufficientStockErrorCode  = "INSUFFICIENT_STOCK"
	InvalidQuantityErrorCode    = "INVALID_QUANTITY"
	EmailTakenErrorCode         = "EMAIL_TAKEN"
	AdminNotFoundErrorCode      = "ADMIN_NOT_FOUND"
	StaffNotFoundErrorCode      = "STAFF_NOT_FOUND"
	UserNotFoundErrorCode       = "USER_NOT_FOUND"
	SuperAdminExistsErrorCode   = "SUPER_ADMIN_EXISTS"
	InvalidCredentialsErrorCode = "INVALID_CREDENTIALS"

	DatabaseUnavailableErrorCode = "DATABASE_UNAVAILABLE"
)

var (
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	ProductNameTakenErr  = zerror.NewConflict(ProductNameTakenErrorCode, "a product with this name already exists")
	ProductNotFoundErr   = zerror.NewNotFound(ProductNotFoundErrorCode, "product not found")
	InsufficientStockErr = zerror.NewConflict(InsufficientStockErrorCode, "insufficient stock to fulfill the order")
	InvalidQuantityErr   = zerror.NewBadRequest(InvalidQuantityErrorCode, "quantity must be a positive integer")

	EmailTakenErr         = zerror.NewConflict(EmailTakenErrorCode, "an account with this email already exists")
	AdminNotFoundErr      = zerror.NewNotFound(AdminNotFoundErrorCode, "admin not found")
	StaffNotFoundErr      = zerror.NewNotFound(StaffNotFoundErrorCode, "staff member not found")
	UserNotFoundErr       = zerror.NewNotFound(UserNotFoundErrorCode, "user not found")
	SuperAdminExistsErr   = zerror.NewForbidden(SuperAdminExistsErrorCode, "a super admin already exists")
	InvalidCredentialsErr = zerror.NewUnauthorized(InvalidCredentialsErrorCode, "invalid email or password")

	DatabaseUnavailableErr = zerror.NewServiceUnavailable(DatabaseUnavailableErrorCode, "database is unavailable")
)

// NewInsufficientStockErr builds an insufficient-stock error carrying
// the available vs requested quantities, so callers can render an
// actionable message.
func NewInsufficientStockErr(productName string, available, requested int) zerror.ZError {
	return zerror.NewConflict(InsufficientStockErrorCode,
		fmt.Sprintf("insufficient stock for %s: available %d, requested %d",
			productName, available, requested))
}
