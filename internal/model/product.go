package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProductStatus is the catalog lifecycle state of a product.
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "ACTIVE"
	ProductStatusInactive     ProductStatus = "INACTIVE"
	ProductStatusDiscontinued ProductStatus = "DISCONTINUED"
)

// Validate implements the enum contract used by the validator.
func (s ProductStatus) Validate() error {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDiscontinued:
		return nil
	default:
		return fmt.Errorf("invalid product status: %s", s)
	}
}

type Product struct {
	ID                uuid.UUID     `json:"id"`
	ProductName       string        `json:"product_name"`
	Model             string        `json:"model"`
	PricePerQuantity  float64       `json:"price_per_quantity"`
	UnitStockQuantity int           `json:"unit_stock_quantity"`
	TotalPrice        float64       `json:"total_price"`
	Status            ProductStatus `json:"status"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// RecalculateTotalPrice keeps TotalPrice consistent with the current
// price and stock quantity. Must run before every persist that changes
// either field.
func (p *Product) RecalculateTotalPrice() {
	p.TotalPrice = p.PricePerQuantity * float64(p.UnitStockQuantity)
}
