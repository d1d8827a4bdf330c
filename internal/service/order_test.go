package service_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-service/internal/service"
)

func TestOrderServiceCheckout(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	t.Run("Should fulfill every line and confirm the order", func(t *testing.T) {
		f := newInventoryFixture(t)
		f.createProduct(t, "Widget", "W-100", 25.0, 40)
		f.createProduct(t, "Gadget", "G-1", 10.0, 40)
		orderSvc := service.NewOrderService(f.svc, f.notifier, logger)

		result, err := orderSvc.Checkout(ctx, service.CheckoutParams{
			CustomerName:  "Alex",
			CustomerEmail: "alex@example.com",
			Items: []service.CheckoutItem{
				{ProductName: "Widget", Model: "W-100", Quantity: 2},
				{ProductName: "Gadget", Model: "G-1", Quantity: 3},
			},
		})
		require.NoError(t, err)

		assert.True(t, result.Succeeded())
		require.Len(t, result.Summary.Lines, 2)
		assert.InDelta(t, 80.0, result.Summary.TotalAmount, 1e-9)
		assert.Equal(t, 5, result.Summary.TotalItems)
		assert.Equal(t, 1, f.notifier.orderConfirmed)
		assert.Equal(t, "alex@example.com", f.notifier.lastOrderEmail)
	})

	t.Run("Should collect failures and skip confirmation", func(t *testing.T) {
		f := newInventoryFixture(t)
		f.createProduct(t, "Widget", "W-100", 25.0, 40)
		orderSvc := service.NewOrderService(f.svc, f.notifier, logger)

		result, err := orderSvc.Checkout(ctx, service.CheckoutParams{
			CustomerName:  "Alex",
			CustomerEmail: "alex@example.com",
			Items: []service.CheckoutItem{
				{ProductName: "Widget", Model: "W-100", Quantity: 2},
				{ProductName: "Ghost", Model: "X-0", Quantity: 1},
			},
		})
		require.NoError(t, err)

		assert.False(t, result.Succeeded())
		require.Len(t, result.FailedItems, 1)
		assert.Contains(t, result.FailedItems[0], "Ghost (X-0)")
		assert.Equal(t, 0, f.notifier.orderConfirmed)

		// Lines processed before the failure stay processed.
		all, err := f.svc.ListAllProducts(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, 38, all[0].UnitStockQuantity)
	})

	t.Run("Should reject insufficient stock lines with an actionable message", func(t *testing.T) {
		f := newInventoryFixture(t)
		f.createProduct(t, "Widget", "W-100", 25.0, 5)
		orderSvc := service.NewOrderService(f.svc, f.notifier, logger)

		result, err := orderSvc.Checkout(ctx, service.CheckoutParams{
			CustomerName:  "Alex",
			CustomerEmail: "alex@example.com",
			Items: []service.CheckoutItem{
				{ProductName: "Widget", Model: "W-100", Quantity: 9},
			},
		})
		require.NoError(t, err)

		assert.False(t, result.Succeeded())
		require.Len(t, result.FailedItems, 1)
		assert.Contains(t, result.FailedItems[0], "available 5, requested 9")
	})
}
