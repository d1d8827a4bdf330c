package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/inventory-service/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/service"
)

type productHandler struct {
	svc          *Service
	inventorySvc service.InventoryService
}

func newProductHandler(svc *Service, inventorySvc service.InventoryService) *productHandler {
	return &productHandler{
		svc:          svc,
		inventorySvc: inventorySvc,
	}
}

type createProductRequest struct {
	ProductName       string              `json:"product_name" validate:"required,min=1,max=255,productname"`
	Model             string              `json:"model" validate:"required,min=1,max=255"`
	PricePerQuantity  float64             `json:"price_per_quantity" validate:"gte=0"`
	UnitStockQuantity int                 `json:"unit_stock_quantity" validate:"gte=0"`
	Status            model.ProductStatus `json:"status" validate:"omitempty,enum"`
}

type updateProductRequest struct {
	ProductName       *string              `json:"product_name" validate:"omitempty,min=1,max=255,productname"`
	Model             *string              `json:"model" validate:"omitempty,min=1,max=255"`
	PricePerQuantity  *float64             `json:"price_per_quantity" validate:"omitempty,gte=0"`
	UnitStockQuantity *int                 `json:"unit_stock_quantity" validate:"omitempty,gte=0"`
	Status            *model.ProductStatus `json:"status" validate:"omitempty,enum"`
}

type replenishStockRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

type stockStatusResponse struct {
	service.StockStatus
	Timestamp time.Time `json:"ts"`
}

func (h *productHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.inventorySvc.ListAllProducts(r.Context())
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusOK, products)
}

func (h *productHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "productId")
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	product, err := h.inventorySvc.GetProduct(r.Context(), id)
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusOK, product)
}

func (h *productHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := h.svc.decodeAndValidate(r, &req); err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	product, err := h.inventorySvc.CreateProduct(r.Context(), service.CreateProductParams{
		ProductName:       req.ProductName,
		Model:             req.Model,
		PricePerQuantity:  req.PricePerQuantity,
		UnitStockQuantity: req.UnitStockQuantity,
		Status:            req.Status,
	})
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusCreated, product)
}

func (h *productHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "productId")
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	var req updateProductRequest
	if err := h.svc.decodeAndValidate(r, &req); err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	product, err := h.inventorySvc.UpdateProduct(r.Context(), id, service.UpdateProductParams{
		ProductName:       req.ProductName,
		Model:             req.Model,
		PricePerQuantity:  req.PricePerQuantity,
		UnitStockQuantity: req.UnitStockQuantity,
		Status:            req.Status,
	})
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusOK, product)
}

func (h *productHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "productId")
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	if err := h.inventorySvc.DeleteProduct(r.Context(), id); err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusNoContent, nil)
}

func (h *productHandler) replenishStock(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "productId")
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	var req replenishStockRequest
	if err := h.svc.decodeAndValidate(r, &req); err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	product, err := h.inventorySvc.ReplenishStock(r.Context(), id, req.Quantity)
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusOK, product)
}

func (h *productHandler) listLowStockProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.inventorySvc.ListLowStockProducts(r.Context())
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusOK, products)
}

func (h *productHandler) stockStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.inventorySvc.StockStatus(r.Context())
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusOK, stockStatusResponse{
		StockStatus: status,
		Timestamp:   time.Now(),
	})
}

func (h *productHandler) checkStock(w http.ResponseWriter, r *http.Request) {
	count, err := h.inventorySvc.CheckAllForLowStock(r.Context())
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusOK, map[string]int{"low_stock_count": count})
}

func (h *productHandler) exportProducts(w http.ResponseWriter, r *http.Request) {
	link, err := h.inventorySvc.ExportCatalog(r.Context())
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusOK, map[string]string{"link": link})
}

func (h *productHandler) clearAlerts(w http.ResponseWriter, r *http.Request) {
	h.inventorySvc.ClearAlertHistory(r.Context())
	h.svc.writeJSON(w, r, http.StatusOK, map[string]string{"status": "cleared"})
}

func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, apperr.ValidationErr.WrapParent(err)
	}
	return id, nil
}
