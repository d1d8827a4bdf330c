package service_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-service/internal/alert"
	"github.com/tuanvumaihuynh/inventory-service/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/service"
	"github.com/tuanvumaihuynh/inventory-service/pkg/ptr"
	"github.com/tuanvumaihuynh/inventory-service/pkg/zerror"
)

const testThreshold = 10

type inventoryFixture struct {
	svc      service.InventoryService
	repo     *fakeProductRepo
	tracker  *alert.Tracker
	notifier *fakeNotifier
	exporter *fakeExporter
}

func newInventoryFixture(t *testing.T) *inventoryFixture {
	t.Helper()

	repo := newFakeProductRepo()
	tracker := alert.NewTracker()
	n := &fakeNotifier{}
	e := &fakeExporter{link: "https://example.com/sheet"}
	logger := slog.New(slog.DiscardHandler)

	return &inventoryFixture{
		svc:      service.NewInventoryService(fakeDB{}, repo, tracker, n, e, testThreshold, logger),
		repo:     repo,
		tracker:  tracker,
		notifier: n,
		exporter: e,
	}
}

func (f *inventoryFixture) createProduct(t *testing.T, name, productModel string, price float64, stock int) model.Product {
	t.Helper()

	product, err := f.svc.CreateProduct(context.Background(), service.CreateProductParams{
		ProductName:       name,
		Model:             productModel,
		PricePerQuantity:  price,
		UnitStockQuantity: stock,
	})
	require.NoError(t, err)
	return product
}

func errCode(t *testing.T, err error) string {
	t.Helper()

	var zErr zerror.ZError
	require.ErrorAs(t, err, &zErr)
	return zErr.Code()
}

func TestInventoryServiceCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Should compute total price and default status", func(t *testing.T) {
		f := newInventoryFixture(t)

		product := f.createProduct(t, "Widget", "W-100", 25.5, 40)

		assert.Equal(t, model.ProductStatusActive, product.Status)
		assert.InDelta(t, 1020.0, product.TotalPrice, 1e-9)
		assert.Equal(t, []string{"Widget"}, f.notifier.newProduct)
	})

	t.Run("Should reject duplicate product name", func(t *testing.T) {
		f := newInventoryFixture(t)
		f.createProduct(t, "Widget", "W-100", 10, 40)

		_, err := f.svc.CreateProduct(ctx, service.CreateProductParams{
			ProductName:       "Widget",
			Model:             "W-200",
			PricePerQuantity:  10,
			UnitStockQuantity: 5,
		})
		assert.Equal(t, apperr.ProductNameTakenErrorCode, errCode(t, err))
	})

	t.Run("Should alert when created at or below threshold", func(t *testing.T) {
		f := newInventoryFixture(t)

		product := f.createProduct(t, "Gadget", "G-1", 10, testThreshold)

		assert.Equal(t, 1, f.notifier.lowStockCount())
		assert.True(t, f.tracker.Contains(product.ID))
	})
}

func TestInventoryServiceUpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Should retain fields not supplied", func(t *testing.T) {
		f := newInventoryFixture(t)
		product := f.createProduct(t, "Widget", "W-100", 25.5, 40)

		updated, err := f.svc.UpdateProduct(ctx, product.ID, service.UpdateProductParams{
			PricePerQuantity: ptr.New(30.0),
		})
		require.NoError(t, err)

		assert.Equal(t, "Widget", updated.ProductName)
		assert.Equal(t, "W-100", updated.Model)
		assert.Equal(t, 40, updated.UnitStockQuantity)
		assert.InDelta(t, 1200.0, updated.TotalPrice, 1e-9)
	})

	t.Run("Should reject rename to a taken name", func(t *testing.T) {
		f := newInventoryFixture(t)
		f.createProduct(t, "Widget", "W-100", 10, 40)
		other := f.createProduct(t, "Gadget", "G-1", 10, 40)

		_, err := f.svc.UpdateProduct(ctx, other.ID, service.UpdateProductParams{
			ProductName: ptr.New("Widget"),
		})
		assert.Equal(t, apperr.ProductNameTakenErrorCode, errCode(t, err))
	})

	t.Run("Should return not found for unknown id", func(t *testing.T) {
		f := newInventoryFixture(t)
		product := f.createProduct(t, "Widget", "W-100", 10, 40)
		require.NoError(t, f.svc.DeleteProduct(ctx, product.ID))

		_, err := f.svc.UpdateProduct(ctx, product.ID, service.UpdateProductParams{ProductName: ptr.New("Widget")})
		assert.Equal(t, apperr.ProductNotFoundErrorCode, errCode(t, err))
	})

	t.Run("Should clear alert when stock is raised above threshold", func(t *testing.T) {
		f := newInventoryFixture(t)
		product := f.createProduct(t, "Widget", "W-100", 10, 5)
		require.True(t, f.tracker.Contains(product.ID))

		_, err := f.svc.UpdateProduct(ctx, product.ID, service.UpdateProductParams{
			UnitStockQuantity: ptr.New(50),
		})
		require.NoError(t, err)
		assert.False(t, f.tracker.Contains(product.ID))
	})
}

func TestInventoryServiceProcessOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Should decrement stock and keep total price consistent", func(t *testing.T) {
		f := newInventoryFixture(t)
		f.createProduct(t, "Widget", "W-100", 25.5, 40)

		product, err := f.svc.ProcessOrder(ctx, "Widget", "W-100", 15)
		require.NoError(t, err)

		assert.Equal(t, 25, product.UnitStockQuantity)
		assert.InDelta(t, 25.5*25, product.TotalPrice, 1e-9)
	})

	t.Run("Should reject non positive quantity", func(t *testing.T) {
		f := newInventoryFixture(t)
		f.createProduct(t, "Widget", "W-100", 10, 40)

		_, err := f.svc.ProcessOrder(ctx, "Widget", "W-100", 0)
		assert.Equal(t, apperr.InvalidQuantityErrorCode, errCode(t, err))
	})

	t.Run("Should return not found for unknown product", func(t *testing.T) {
		f := newInventoryFixture(t)

		_, err := f.svc.ProcessOrder(ctx, "Nope", "N-1", 1)
		assert.Equal(t, apperr.ProductNotFoundErrorCode, errCode(t, err))
	})

	t.Run("Should fail without mutating stock when insufficient", func(t *testing.T) {
		f := newInventoryFixture(t)
		created := f.createProduct(t, "Widget", "W-100", 10, 5)

		_, err := f.svc.ProcessOrder(ctx, "Widget", "W-100", 6)
		assert.Equal(t, apperr.InsufficientStockErrorCode, errCode(t, err))
		assert.Contains(t, err.Error(), "available 5, requested 6")

		current, err := f.svc.GetProduct(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, current.UnitStockQuantity)
	})

	t.Run("Should never oversell under concurrent orders", func(t *testing.T) {
		f := newInventoryFixture(t)
		created := f.createProduct(t, "Widget", "W-100", 10, 50)

		var wg sync.WaitGroup
		var mu sync.Mutex
		wins, losses := 0, 0

		for range 100 {
			wg.Go(func() {
				_, err := f.svc.ProcessOrder(ctx, "Widget", "W-100", 1)
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					wins++
				} else {
					losses++
				}
			})
		}
		wg.Wait()

		assert.Equal(t, 50, wins)
		assert.Equal(t, 50, losses)

		current, err := f.svc.GetProduct(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, current.UnitStockQuantity)
	})
}

func TestInventoryServiceLowStockEpisodes(t *testing.T) {
	ctx := context.Background()

	t.Run("Should notify once per episode across the stock lifecycle", func(t *testing.T) {
		f := newInventoryFixture(t)
		product := f.createProduct(t, "Widget", "W-100", 10, 15)
		require.Equal(t, 0, f.notifier.lowStockCount())

		// 15 -> 8 enters low stock, one notification.
		_, err := f.svc.ProcessOrder(ctx, "Widget", "W-100", 7)
		require.NoError(t, err)
		assert.Equal(t, 1, f.notifier.lowStockCount())

		// 8 -> 6 stays low, still one.
		_, err = f.svc.ProcessOrder(ctx, "Widget", "W-100", 2)
		require.NoError(t, err)
		assert.Equal(t, 1, f.notifier.lowStockCount())

		// Recovery above the threshold closes the episode.
		_, err = f.svc.ReplenishStock(ctx, product.ID, 6)
		require.NoError(t, err)
		assert.False(t, f.tracker.Contains(product.ID))

		// 12 -> 5 opens a new episode, second notification.
		_, err = f.svc.ProcessOrder(ctx, "Widget", "W-100", 7)
		require.NoError(t, err)
		assert.Equal(t, 2, f.notifier.lowStockCount())
	})

	t.Run("Should treat stock exactly at threshold as low", func(t *testing.T) {
		f := newInventoryFixture(t)
		f.createProduct(t, "Widget", "W-100", 10, testThreshold+1)

		_, err := f.svc.ProcessOrder(ctx, "Widget", "W-100", 1)
		require.NoError(t, err)
		assert.Equal(t, 1, f.notifier.lowStockCount())
	})
}

func TestInventoryServiceCheckAllForLowStock(t *testing.T) {
	ctx := context.Background()

	t.Run("Should be idempotent across repeated sweeps", func(t *testing.T) {
		f := newInventoryFixture(t)
		f.createProduct(t, "Widget", "W-100", 10, 5)
		f.createProduct(t, "Gadget", "G-1", 10, 50)
		before := f.notifier.lowStockCount()

		count, err := f.svc.CheckAllForLowStock(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		count, err = f.svc.CheckAllForLowStock(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		// The creation already alerted; sweeps add nothing new.
		assert.Equal(t, before, f.notifier.lowStockCount())
	})
}

func TestInventoryServiceReconcileAlerts(t *testing.T) {
	ctx := context.Background()

	t.Run("Should drop recovered and deleted products without notifying", func(t *testing.T) {
		f := newInventoryFixture(t)
		recovered := f.createProduct(t, "Widget", "W-100", 10, 5)
		deleted := f.createProduct(t, "Gadget", "G-1", 10, 5)
		stillLow := f.createProduct(t, "Doohickey", "D-1", 10, 5)
		require.Equal(t, 3, f.tracker.Len())

		// Recover one out of band and drop one row directly, so only
		// reconciliation can observe the change.
		_, err := f.repo.IncrementStock(ctx, recovered.ID, 100)
		require.NoError(t, err)
		_, err = f.repo.DeleteProduct(ctx, deleted.ID)
		require.NoError(t, err)

		before := f.notifier.lowStockCount()
		removed, err := f.svc.ReconcileAlerts(ctx)
		require.NoError(t, err)

		assert.Equal(t, 2, removed)
		assert.False(t, f.tracker.Contains(recovered.ID))
		assert.False(t, f.tracker.Contains(deleted.ID))
		assert.True(t, f.tracker.Contains(stillLow.ID))
		assert.Equal(t, before, f.notifier.lowStockCount())
	})
}

func TestInventoryServiceClearAlertHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("Should allow a duplicate notification for a still low product", func(t *testing.T) {
		f := newInventoryFixture(t)
		f.createProduct(t, "Widget", "W-100", 10, 5)
		require.Equal(t, 1, f.notifier.lowStockCount())

		f.svc.ClearAlertHistory(ctx)
		assert.Empty(t, f.svc.AlertedProducts())

		_, err := f.svc.CheckAllForLowStock(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, f.notifier.lowStockCount())
	})
}

func TestInventoryServiceDeleteProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Should purge alert membership", func(t *testing.T) {
		f := newInventoryFixture(t)
		product := f.createProduct(t, "Widget", "W-100", 10, 5)
		require.True(t, f.tracker.Contains(product.ID))

		require.NoError(t, f.svc.DeleteProduct(ctx, product.ID))
		assert.False(t, f.tracker.Contains(product.ID))
	})

	t.Run("Should return not found for unknown id", func(t *testing.T) {
		f := newInventoryFixture(t)
		product := f.createProduct(t, "Widget", "W-100", 10, 40)
		require.NoError(t, f.svc.DeleteProduct(ctx, product.ID))

		err := f.svc.DeleteProduct(ctx, product.ID)
		assert.Equal(t, apperr.ProductNotFoundErrorCode, errCode(t, err))
	})
}

func TestInventoryServiceStockStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Should report low and alerted products", func(t *testing.T) {
		f := newInventoryFixture(t)
		low := f.createProduct(t, "Widget", "W-100", 10, 5)
		f.createProduct(t, "Gadget", "G-1", 10, 50)

		status, err := f.svc.StockStatus(ctx)
		require.NoError(t, err)

		assert.Equal(t, 1, status.LowStockCount)
		assert.Equal(t, 1, status.AlertedCount)
		require.Len(t, status.LowStockProducts, 1)
		assert.Equal(t, low.ID, status.LowStockProducts[0].ID)
		require.Len(t, status.AlertedIDs, 1)
		assert.Equal(t, low.ID, status.AlertedIDs[0])
	})
}

func TestInventoryServiceExportCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("Should export every product and return the link", func(t *testing.T) {
		f := newInventoryFixture(t)
		f.createProduct(t, "Widget", "W-100", 10, 40)
		f.createProduct(t, "Gadget", "G-1", 10, 40)

		link, err := f.svc.ExportCatalog(ctx)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/sheet", link)
	})
}

func TestInventoryServiceReplenishStock(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject non positive quantity", func(t *testing.T) {
		f := newInventoryFixture(t)
		product := f.createProduct(t, "Widget", "W-100", 10, 40)

		_, err := f.svc.ReplenishStock(ctx, product.ID, 0)
		assert.Equal(t, apperr.InvalidQuantityErrorCode, errCode(t, err))
	})

	t.Run("Should send a replenishment notification", func(t *testing.T) {
		f := newInventoryFixture(t)
		product := f.createProduct(t, "Widget", "W-100", 10, 40)

		updated, err := f.svc.ReplenishStock(ctx, product.ID, 10)
		require.NoError(t, err)

		assert.Equal(t, 50, updated.UnitStockQuantity)
		assert.Equal(t, []string{"Widget"}, f.notifier.replenished)
	})

	t.Run("Should return not found for unknown id", func(t *testing.T) {
		f := newInventoryFixture(t)

		_, err := f.svc.ReplenishStock(ctx, uuid.Must(uuid.NewV7()), 10)
		require.Error(t, err)
		assert.Equal(t, apperr.ProductNotFoundErrorCode, errCode(t, err))
	})
}
