// Package notifier delivers inventory notifications to the admin and
// to customers. Every method is fire-and-forget: implementations log
// delivery failures themselves and never surface them to callers, so a
// slow or broken mail backend cannot fail or stall a stock mutation.
package notifier

import (
	"context"
	"log/slog"

	"github.com/tuanvumaihuynh/inventory-service/internal/model"
)

// Customer identifies the recipient of an order confirmation.
type Customer struct {
	Name  string
	Email string
}

// OrderLine is one fulfilled line item in an order summary.
type OrderLine struct {
	ProductName    string  `json:"product_name"`
	Model          string  `json:"model"`
	Quantity       int     `json:"quantity"`
	UnitPrice      float64 `json:"unit_price"`
	LineTotal      float64 `json:"line_total"`
	RemainingStock int     `json:"remaining_stock"`
}

// OrderSummary describes a fully processed checkout.
type OrderSummary struct {
	Lines       []OrderLine `json:"lines"`
	TotalAmount float64     `json:"total_amount"`
	TotalItems  int         `json:"total_items"`
}

type Notifier interface {
	NotifyLowStock(ctx context.Context, product model.Product, threshold int)
	NotifyNewProduct(ctx context.Context, product model.Product)
	NotifyReplenished(ctx context.Context, product model.Product, quantityAdded int)
	NotifyOrderConfirmed(ctx context.Context, customer Customer, summary OrderSummary)
}

var _ Notifier = (*Noop)(nil)

// Noop logs notifications instead of sending them. Used when no mail
// backend is configured.
type Noop struct {
	logger *slog.Logger
}

func NewNoop(logger *slog.Logger) *Noop {
	return &Noop{logger: logger.With(slog.String("service", "notifier"))}
}

func (n *Noop) NotifyLowStock(ctx context.Context, product model.Product, threshold int) {
	n.logger.InfoContext(ctx, "low stock notification suppressed, mail not configured",
		slog.String("product_name", product.ProductName),
		slog.Int("stock", product.UnitStockQuantity),
		slog.Int("threshold", threshold))
}

func (n *Noop) NotifyNewProduct(ctx context.Context, product model.Product) {
	n.logger.InfoContext(ctx, "new product notification suppressed, mail not configured",
		slog.String("product_name", product.ProductName))
}

func (n *Noop) NotifyReplenished(ctx context.Context, product model.Product, quantityAdded int) {
	n.logger.InfoContext(ctx, "replenishment notification suppressed, mail not configured",
		slog.String("product_name", product.ProductName),
		slog.Int("quantity_added", quantityAdded))
}

func (n *Noop) NotifyOrderConfirmed(ctx context.Context, customer Customer, summary OrderSummary) {
	n.logger.InfoContext(ctx, "order confirmation suppressed, mail not configured",
		slog.String("customer_email", customer.Email),
		slog.Float64("total_amount", summary.TotalAmount))
}
