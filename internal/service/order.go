package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/inventory-service/internal/notifier"
	"github.com/tuanvumaihuynh/inventory-service/pkg/zerror"
)

type CheckoutItem struct {
	ProductName string
	Model       string
	Quantity    int
}

type CheckoutParams struct {
	CustomerName  string
	CustomerEmail string
	Items         []CheckoutItem
}

// CheckoutResult reports the outcome of a checkout. Each line item is
// all-or-nothing; FailedItems carries one message per line that could
// not be fulfilled. Lines processed before a failure stay processed.
type CheckoutResult struct {
	Summary     notifier.OrderSummary
	FailedItems []string
}

// Succeeded reports whether every line item was fulfilled.
func (r CheckoutResult) Succeeded() bool {
	return len(r.FailedItems) == 0
}

type OrderService interface {
	Checkout(ctx context.Context, params CheckoutParams) (CheckoutResult, error)
}

type orderService struct {
	inventorySvc InventoryService
	notifier     notifier.Notifier
	logger       *slog.Logger
}

func NewOrderService(
	inventorySvc InventoryService,
	notifier notifier.Notifier,
	logger *slog.Logger,
) OrderService {
	return &orderService{
		inventorySvc: inventorySvc,
		notifier:     notifier,
		logger:       logger.With(slog.String("service", "order")),
	}
}

func (s *orderService) Checkout(ctx context.Context, params CheckoutParams) (CheckoutResult, error) {
	var result CheckoutResult

	for _, item := range params.Items {
		product, err := s.inventorySvc.ProcessOrder(ctx, item.ProductName, item.Model, item.Quantity)
		if err != nil {
			var zErr zerror.ZError
			if !errors.As(err, &zErr) {
				return CheckoutResult{}, fmt.Errorf("process order: %w", err)
			}

			s.logger.WarnContext(ctx, "checkout item rejected",
				slog.String("product_name", item.ProductName),
				slog.String("model", item.Model),
				slog.Int("quantity", item.Quantity),
				slog.Any("error", err))
			result.FailedItems = append(result.FailedItems,
				fmt.Sprintf("%s (%s): %s", item.ProductName, item.Model, zErr.Msg()))
			continue
		}

		lineTotal := product.PricePerQuantity * float64(item.Quantity)
		result.Summary.Lines = append(result.Summary.Lines, notifier.OrderLine{
			ProductName:    product.ProductName,
			Model:          product.Model,
			Quantity:       item.Quantity,
			UnitPrice:      product.PricePerQuantity,
			LineTotal:      lineTotal,
			RemainingStock: product.UnitStockQuantity,
		})
		result.Summary.TotalAmount += lineTotal
		result.Summary.TotalItems += item.Quantity
	}

	if !result.Succeeded() {
		return result, nil
	}

	customer := notifier.Customer{
		Name:  params.CustomerName,
		Email: params.CustomerEmail,
	}
	s.notifier.NotifyOrderConfirmed(ctx, customer, result.Summary)

	s.logger.InfoContext(ctx, "checkout completed",
		slog.String("customer_email", params.CustomerEmail),
		slog.Int("total_items", result.Summary.TotalItems),
		slog.Float64("total_amount", result.Summary.TotalAmount))

	return result, nil
}
