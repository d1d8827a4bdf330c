package http_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-service/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-service/internal/config"
	internalhttp "github.com/tuanvumaihuynh/inventory-service/internal/http"
	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/notifier"
	"github.com/tuanvumaihuynh/inventory-service/internal/service"
	"github.com/tuanvumaihuynh/inventory-service/pkg/validator"
)

type stubInventoryService struct {
	createFn      func(ctx context.Context, params service.CreateProductParams) (model.Product, error)
	getFn         func(ctx context.Context, id uuid.UUID) (model.Product, error)
	listFn        func(ctx context.Context) ([]model.Product, error)
	checkAllFn    func(ctx context.Context) (int, error)
	stockStatusFn func(ctx context.Context) (service.StockStatus, error)
}

func (s *stubInventoryService) CreateProduct(ctx context.Context, params service.CreateProductParams) (model.Product, error) {
	return s.createFn(ctx, params)
}

func (s *stubInventoryService) UpdateProduct(context.Context, uuid.UUID, service.UpdateProductParams) (model.Product, error) {
	return model.Product{}, apperr.ProductNotFoundErr
}

func (s *stubInventoryService) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	return s.getFn(ctx, id)
}

func (s *stubInventoryService) ListAllProducts(ctx context.Context) ([]model.Product, error) {
	return s.listFn(ctx)
}

func (s *stubInventoryService) ListLowStockProducts(ctx context.Context) ([]model.Product, error) {
	return s.listFn(ctx)
}

func (s *stubInventoryService) DeleteProduct(context.Context, uuid.UUID) error {
	return apperr.ProductNotFoundErr
}

func (s *stubInventoryService) ProcessOrder(context.Context, string, string, int) (model.Product, error) {
	return model.Product{}, apperr.ProductNotFoundErr
}

func (s *stubInventoryService) ReplenishStock(context.Context, uuid.UUID, int) (model.Product, error) {
	return model.Product{}, apperr.ProductNotFoundErr
}

func (s *stubInventoryService) CheckAllForLowStock(ctx context.Context) (int, error) {
	return s.checkAllFn(ctx)
}

func (s *stubInventoryService) ReconcileAlerts(context.Context) (int, error) { return 0, nil }

func (s *stubInventoryService) ClearAlertHistory(context.Context) {}

func (s *stubInventoryService) AlertedProducts() []uuid.UUID { return nil }

func (s *stubInventoryService) StockStatus(ctx context.Context) (service.StockStatus, error) {
	return s.stockStatusFn(ctx)
}

func (s *stubInventoryService) ExportCatalog(context.Context) (string, error) { return "", nil }

type stubOrderService struct {
	checkoutFn func(ctx context.Context, params service.CheckoutParams) (service.CheckoutResult, error)
}

func (s *stubOrderService) Checkout(ctx context.Context, params service.CheckoutParams) (service.CheckoutResult, error) {
	return s.checkoutFn(ctx, params)
}

type stubHealthChecker struct{ healthy bool }

func (s stubHealthChecker) IsHealthy(context.Context) (bool, error) {
	if !s.healthy {
		return false, nil
	}
	return true, nil
}

type stubAdminService struct{}

func (stubAdminService) CreateAdmin(context.Context, service.CreateAdminParams) (model.Admin, error) {
	return model.Admin{}, apperr.EmailTakenErr
}

func (stubAdminService) UpdateAdmin(context.Context, uuid.UUID, service.UpdateAdminParams) (model.Admin, error) {
	return model.Admin{}, apperr.AdminNotFoundErr
}

func (stubAdminService) GetAdmin(context.Context, uuid.UUID) (model.Admin, error) {
	return model.Admin{}, apperr.AdminNotFoundErr
}

func (stubAdminService) ListAllAdmins(context.Context) ([]model.Admin, error) { return nil, nil }

func (stubAdminService) DeleteAdmin(context.Context, uuid.UUID) error {
	return apperr.AdminNotFoundErr
}

func (stubAdminService) AnyAdminExists(context.Context) (bool, error) { return true, nil }

func (stubAdminService) RegisterSuperAdmin(context.Context, service.CreateAdminParams) (model.Admin, error) {
	return model.Admin{}, apperr.SuperAdminExistsErr
}

type stubAuthService struct{}

func (stubAuthService) VerifyCredentials(context.Context, string, string) (service.Identity, error) {
	return service.Identity{}, apperr.InvalidCredentialsErr
}

func newTestRouter(t *testing.T, inventorySvc service.InventoryService, orderSvc service.OrderService) chi.Router {
	t.Helper()

	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	svc := internalhttp.New(
		config.HTTP{Port: 0},
		slog.New(slog.DiscardHandler),
		v,
		stubHealthChecker{healthy: true},
		inventorySvc,
		orderSvc,
		stubAdminService{},
		nil,
		nil,
		stubAuthService{},
	)

	r := chi.NewRouter()
	svc.RegisterHandlers(r)
	return r
}

func testProduct() model.Product {
	return model.Product{
		ID:                uuid.Must(uuid.NewV7()),
		ProductName:       "Widget",
		Model:             "W-100",
		PricePerQuantity:  25.5,
		UnitStockQuantity: 40,
		TotalPrice:        1020,
		Status:            model.ProductStatusActive,
	}
}

func TestProductRoutes(t *testing.T) {
	t.Run("Should create a product", func(t *testing.T) {
		product := testProduct()
		inventorySvc := &stubInventoryService{
			createFn: func(_ context.Context, params service.CreateProductParams) (model.Product, error) {
				assert.Equal(t, "Widget", params.ProductName)
				return product, nil
			},
		}
		r := newTestRouter(t, inventorySvc, &stubOrderService{})

		body := `{"product_name":"Widget","model":"W-100","price_per_quantity":25.5,"unit_stock_quantity":40}`
		req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusCreated, resp.Code)

		var got model.Product
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
		assert.Equal(t, product.ID, got.ID)
	})

	t.Run("Should reject an invalid create payload with field details", func(t *testing.T) {
		r := newTestRouter(t, &stubInventoryService{}, &stubOrderService{})

		body := `{"product_name":"","model":"","price_per_quantity":-1}`
		req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Contains(t, resp.Body.String(), "validationError")
		assert.Contains(t, resp.Body.String(), "details")
	})

	t.Run("Should map a missing product to 404", func(t *testing.T) {
		inventorySvc := &stubInventoryService{
			getFn: func(context.Context, uuid.UUID) (model.Product, error) {
				return model.Product{}, apperr.ProductNotFoundErr
			},
		}
		r := newTestRouter(t, inventorySvc, &stubOrderService{})

		req := httptest.NewRequest(http.MethodGet, "/api/products/"+uuid.Must(uuid.NewV7()).String(), nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.Contains(t, resp.Body.String(), apperr.ProductNotFoundErrorCode)
	})

	t.Run("Should reject a malformed product id", func(t *testing.T) {
		r := newTestRouter(t, &stubInventoryService{}, &stubOrderService{})

		req := httptest.NewRequest(http.MethodGet, "/api/products/not-a-uuid", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("Should run a sweep on demand", func(t *testing.T) {
		inventorySvc := &stubInventoryService{
			checkAllFn: func(context.Context) (int, error) { return 3, nil },
		}
		r := newTestRouter(t, inventorySvc, &stubOrderService{})

		req := httptest.NewRequest(http.MethodPost, "/api/products/check-stock", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{"low_stock_count":3}`, resp.Body.String())
	})
}

func TestOrderRoutes(t *testing.T) {
	t.Run("Should return 409 when a line item fails", func(t *testing.T) {
		orderSvc := &stubOrderService{
			checkoutFn: func(context.Context, service.CheckoutParams) (service.CheckoutResult, error) {
				return service.CheckoutResult{
					FailedItems: []string{"Widget (W-100): insufficient stock"},
				}, nil
			},
		}
		r := newTestRouter(t, &stubInventoryService{}, orderSvc)

		body := `{"customer_name":"Alex","customer_email":"alex@example.com","items":[{"product_name":"Widget","model":"W-100","quantity":2}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders/checkout", strings.NewReader(body))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusConflict, resp.Code)
		assert.Contains(t, resp.Body.String(), "insufficient stock")
	})

	t.Run("Should return the summary on success", func(t *testing.T) {
		orderSvc := &stubOrderService{
			checkoutFn: func(context.Context, service.CheckoutParams) (service.CheckoutResult, error) {
				return service.CheckoutResult{
					Summary: notifier.OrderSummary{TotalAmount: 51, TotalItems: 2},
				}, nil
			},
		}
		r := newTestRouter(t, &stubInventoryService{}, orderSvc)

		body := `{"customer_name":"Alex","customer_email":"alex@example.com","items":[{"product_name":"Widget","model":"W-100","quantity":2}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders/checkout", strings.NewReader(body))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"total_amount":51`)
	})

	t.Run("Should reject an empty item list", func(t *testing.T) {
		r := newTestRouter(t, &stubInventoryService{}, &stubOrderService{})

		body := `{"customer_name":"Alex","customer_email":"alex@example.com","items":[]}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders/checkout", strings.NewReader(body))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestAuthRoutes(t *testing.T) {
	t.Run("Should map invalid credentials to 401", func(t *testing.T) {
		r := newTestRouter(t, &stubInventoryService{}, &stubOrderService{})

		body := `{"email":"ghost@example.com","password":"whatever"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Contains(t, resp.Body.String(), apperr.InvalidCredentialsErrorCode)
	})
}

func TestAdminRoutes(t *testing.T) {
	t.Run("Should refuse super admin registration when one exists", func(t *testing.T) {
		r := newTestRouter(t, &stubInventoryService{}, &stubOrderService{})

		body := `{"name":"Alex","email":"alex@example.com","password":"admin-pass-1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register/super-admin", strings.NewReader(body))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusForbidden, resp.Code)
		assert.Contains(t, resp.Body.String(), apperr.SuperAdminExistsErrorCode)
	})

	t.Run("Should map a missing admin to 404", func(t *testing.T) {
		r := newTestRouter(t, &stubInventoryService{}, &stubOrderService{})

		req := httptest.NewRequest(http.MethodGet, "/api/admin/"+uuid.Must(uuid.NewV7()).String(), nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.Contains(t, resp.Body.String(), apperr.AdminNotFoundErrorCode)
	})
}

func TestStaffRoutes(t *testing.T) {
	t.Run("Should reject a designation with special characters", func(t *testing.T) {
		r := newTestRouter(t, &stubInventoryService{}, &stubOrderService{})

		body := `{"name":"Jamie","email":"jamie@example.com","password":"s3cret-pass","designation":"Manager<script>"}`
		req := httptest.NewRequest(http.MethodPost, "/api/staff", strings.NewReader(body))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Contains(t, resp.Body.String(), "alphanumeric characters and spaces")
	})
}

func TestHealthz(t *testing.T) {
	t.Run("Should report ok when the database is reachable", func(t *testing.T) {
		r := newTestRouter(t, &stubInventoryService{}, &stubOrderService{})

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)
	})
}
