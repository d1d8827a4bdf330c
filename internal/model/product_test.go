package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/inventory-service/internal/model"
)

func TestProductRecalculateTotalPrice(t *testing.T) {
	product := model.Product{
		PricePerQuantity:  25.5,
		UnitStockQuantity: 40,
	}

	product.RecalculateTotalPrice()
	assert.InDelta(t, 1020.0, product.TotalPrice, 1e-9)

	product.UnitStockQuantity = 0
	product.RecalculateTotalPrice()
	assert.Zero(t, product.TotalPrice)
}

func TestProductStatusValidate(t *testing.T) {
	assert.NoError(t, model.ProductStatusActive.Validate())
	assert.NoError(t, model.ProductStatusInactive.Validate())
	assert.NoError(t, model.ProductStatusDiscontinued.Validate())
	assert.Error(t, model.ProductStatus("BOGUS").Validate())
}

func TestAccountStatusValidate(t *testing.T) {
	assert.NoError(t, model.AccountStatusActive.Validate())
	assert.Error(t, model.AccountStatus("BOGUS").Validate())
}
