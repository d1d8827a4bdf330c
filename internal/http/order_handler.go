package http

import (
	"net/http"

	"github.com/tuanvumaihuynh/inventory-service/internal/notifier"
	"github.com/tuanvumaihuynh/inventory-service/internal/service"
)

type orderHandler struct {
	svc      *Service
	orderSvc service.OrderService
}

func newOrderHandler(svc *Service, orderSvc service.OrderService) *orderHandler {
	return &orderHandler{
		svc:      svc,
		orderSvc: orderSvc,
	}
}

type checkoutItemRequest struct {
	ProductName string `json:"product_name" validate:"required,min=1,max=255"`
	Model       string `json:"model" validate:"required,min=1,max=255"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
}

type checkoutRequest struct {
	CustomerName  string                `json:"customer_name" validate:"required,min=1,max=255"`
	CustomerEmail string                `json:"customer_email" validate:"required,email"`
	Items         []checkoutItemRequest `json:"items" validate:"required,min=1,dive"`
}

type checkoutResponse struct {
	Success     bool                   `json:"success"`
	Summary     *notifier.OrderSummary `json:"summary,omitempty"`
	FailedItems []string               `json:"failed_items,omitempty"`
}

func (h *orderHandler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := h.svc.decodeAndValidate(r, &req); err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	items := make([]service.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CheckoutItem{
			ProductName: item.ProductName,
			Model:       item.Model,
			Quantity:    item.Quantity,
		})
	}

	result, err := h.orderSvc.Checkout(r.Context(), service.CheckoutParams{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Items:         items,
	})
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	if !result.Succeeded() {
		h.svc.writeJSON(w, r, http.StatusConflict, checkoutResponse{
			Success:     false,
			FailedItems: result.FailedItems,
		})
		return
	}

	h.svc.writeJSON(w, r, http.StatusOK, checkoutResponse{
		Success: true,
		Summary: &result.Summary,
	})
}
