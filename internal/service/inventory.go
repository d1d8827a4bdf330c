package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/inventory-service/internal/alert"
	"github.com/tuanvumaihuynh/inventory-service/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-service/internal/exporter"
	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/notifier"
	"github.com/tuanvumaihuynh/inventory-service/internal/repository"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/db"
)

const exportTimeout = 30 * time.Second

type CreateProductParams struct {
	ProductName       string
	Model             string
	PricePerQuantity  float64
	UnitStockQuantity int
	Status            model.ProductStatus
}

// UpdateProductParams carries a partial update. Nil fields retain the
// product's prior value.
type UpdateProductParams struct {
	ProductName       *string
	Model             *string
	PricePerQuantity  *float64
	UnitStockQuantity *int
	Status            *model.ProductStatus
}

// StockStatus is a point-in-time view of low-stock state.
type StockStatus struct {
	LowStockCount    int             `json:"low_stock_count"`
	AlertedCount     int             `json:"alerted_count"`
	LowStockProducts []model.Product `json:"low_stock_products"`
	AlertedIDs       []uuid.UUID     `json:"alerted_ids"`
}

// InventoryService is the single writer of product stock state. Every
// stock-changing mutation re-evaluates the product's low-stock level
// against the alert tracker before returning.
type InventoryService interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) (model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error)
	ListAllProducts(ctx context.Context) ([]model.Product, error)
	ListLowStockProducts(ctx context.Context) ([]model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// ProcessOrder fulfills one order line all-or-nothing. Two
	// concurrent orders against the same product never oversell: the
	// loser fails with an insufficient stock error.
	ProcessOrder(ctx context.Context, productName, productModel string, quantity int) (model.Product, error)

	ReplenishStock(ctx context.Context, id uuid.UUID, quantityToAdd int) (model.Product, error)

	// CheckAllForLowStock sweeps the catalog and evaluates every
	// product at or below the threshold. Idempotent: only products
	// entering a new low-stock episode produce a notification.
	// Returns the number of currently-low products.
	CheckAllForLowStock(ctx context.Context) (int, error)

	// ReconcileAlerts drops tracker entries whose product recovered or
	// no longer exists. It never sends notifications. Returns the
	// number of entries removed.
	ReconcileAlerts(ctx context.Context) (int, error)

	ClearAlertHistory(ctx context.Context)
	AlertedProducts() []uuid.UUID
	StockStatus(ctx context.Context) (StockStatus, error)

	// ExportCatalog pushes the whole catalog to the configured sync
	// target and returns a link to the exported document.
	ExportCatalog(ctx context.Context) (string, error)
}

type inventoryService struct {
	db          db.DB
	productRepo repository.ProductRepository
	tracker     *alert.Tracker
	notifier    notifier.Notifier
	exporter    exporter.Exporter
	threshold   int
	logger      *slog.Logger
}

func NewInventoryService(
	db db.DB,
	productRepo repository.ProductRepository,
	tracker *alert.Tracker,
	notifier notifier.Notifier,
	exporter exporter.Exporter,
	stockThreshold int,
	logger *slog.Logger,
) InventoryService {
	return &inventoryService{
		db:          db,
		productRepo: productRepo,
		tracker:     tracker,
		notifier:    notifier,
		exporter:    exporter,
		threshold:   stockThreshold,
		logger:      logger.With(slog.String("service", "inventory")),
	}
}

func (s *inventoryService) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.Product{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	status := params.Status
	if status == "" {
		status = model.ProductStatusActive
	}

	now := time.Now()
	product := model.Product{
		ID:                id,
		ProductName:       params.ProductName,
		Model:             params.Model,
		PricePerQuantity:  params.PricePerQuantity,
		UnitStockQuantity: params.UnitStockQuantity,
		Status:            status,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	product.RecalculateTotalPrice()

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		repo := s.productRepo.WithDB(db)

		exists, err := repo.ExistsByProductName(ctx, product.ProductName)
		if err != nil {
			return fmt.Errorf("exists by product name: %w", err)
		}
		if exists {
			return apperr.ProductNameTakenErr
		}

		if err := repo.CreateProduct(ctx, product); err != nil {
			return fmt.Errorf("create product: %w", err)
		}

		return nil
	}); err != nil {
		return model.Product{}, fmt.Errorf("db with tx: %w", err)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID.String()),
		slog.String("product_name", product.ProductName),
		slog.Int("stock", product.UnitStockQuantity))

	s.evaluateStockLevel(ctx, product)
	s.notifier.NotifyNewProduct(ctx, product)
	s.exportAsync(ctx, product)

	return product, nil
}

func (s *inventoryService) UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) (model.Product, error) {
	var product model.Product

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		repo := s.productRepo.WithDB(db)

		current, err := repo.GetProductByID(ctx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return apperr.ProductNotFoundErr.WrapParent(err)
			}
			return fmt.Errorf("get product by id: %w", err)
		}

		if params.ProductName != nil && *params.ProductName != current.ProductName {
			exists, err := repo.ExistsByProductName(ctx, *params.ProductName)
			if err != nil {
				return fmt.Errorf("exists by product name: %w", err)
			}
			if exists {
				return apperr.ProductNameTakenErr
			}
			current.ProductName = *params.ProductName
		}
		if params.Model != nil {
			current.Model = *params.Model
		}
		if params.PricePerQuantity != nil {
			current.PricePerQuantity = *params.PricePerQuantity
		}
		if params.UnitStockQuantity != nil {
			current.UnitStockQuantity = *params.UnitStockQuantity
		}
		if params.Status != nil {
			current.Status = *params.Status
		}

		current.RecalculateTotalPrice()
		current.UpdatedAt = time.Now()

		if err := repo.UpdateProduct(ctx, current); err != nil {
			return fmt.Errorf("update product: %w", err)
		}

		product = current
		return nil
	}); err != nil {
		return model.Product{}, fmt.Errorf("db with tx: %w", err)
	}

	s.logger.InfoContext(ctx, "product updated",
		slog.String("product_id", product.ID.String()),
		slog.String("product_name", product.ProductName),
		slog.Int("stock", product.UnitStockQuantity))

	s.evaluateStockLevel(ctx, product)
	s.exportAsync(ctx, product)

	return product, nil
}

func (s *inventoryService) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return model.Product{}, apperr.ProductNotFoundErr.WrapParent(err)
		}
		return model.Product{}, fmt.Errorf("get product by id: %w", err)
	}

	return product, nil
}

func (s *inventoryService) ListAllProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.ListAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all products: %w", err)
	}

	return products, nil
}

func (s *inventoryService) ListLowStockProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.ListProductsByStockAtMost(ctx, s.threshold)
	if err != nil {
		return nil, fmt.Errorf("list products by stock: %w", err)
	}

	return products, nil
}

func (s *inventoryService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.productRepo.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if !deleted {
		return apperr.ProductNotFoundErr
	}

	// Purge alert membership so sweeps never reference the dead id.
	s.tracker.Remove(id)

	s.logger.InfoContext(ctx, "product deleted", slog.String("product_id", id.String()))
	return nil
}

func (s *inventoryService) ProcessOrder(ctx context.Context, productName, productModel string, quantity int) (model.Product, error) {
	if quantity <= 0 {
		return model.Product{}, apperr.InvalidQuantityErr
	}

	product, err := s.productRepo.GetProductByNameAndModel(ctx, productName, productModel)
	if err != nil {
		if repository.IsNotFound(err) {
			return model.Product{}, apperr.ProductNotFoundErr.WrapParent(err)
		}
		return model.Product{}, fmt.Errorf("get product by name and model: %w", err)
	}

	updated, ok, err := s.productRepo.DecrementStockIfAvailable(ctx, product.ID, quantity)
	if err != nil {
		return model.Product{}, fmt.Errorf("decrement stock: %w", err)
	}
	if !ok {
		// The conditional update lost: either a concurrent order drained
		// the stock or it was already too low. Re-read for the message.
		available := product.UnitStockQuantity
		if current, err := s.productRepo.GetProductByID(ctx, product.ID); err == nil {
			available = current.UnitStockQuantity
		}
		return model.Product{}, apperr.NewInsufficientStockErr(productName, available, quantity)
	}

	s.logger.InfoContext(ctx, "order processed",
		slog.String("product_id", updated.ID.String()),
		slog.String("product_name", updated.ProductName),
		slog.Int("quantity", quantity),
		slog.Int("stock", updated.UnitStockQuantity))

	s.evaluateStockLevel(ctx, updated)

	return updated, nil
}

func (s *inventoryService) ReplenishStock(ctx context.Context, id uuid.UUID, quantityToAdd int) (model.Product, error) {
	if quantityToAdd <= 0 {
		return model.Product{}, apperr.InvalidQuantityErr
	}

	product, err := s.productRepo.IncrementStock(ctx, id, quantityToAdd)
	if err != nil {
		if repository.IsNotFound(err) {
			return model.Product{}, apperr.ProductNotFoundErr.WrapParent(err)
		}
		return model.Product{}, fmt.Errorf("increment stock: %w", err)
	}

	s.logger.InfoContext(ctx, "stock replenished",
		slog.String("product_id", product.ID.String()),
		slog.String("product_name", product.ProductName),
		slog.Int("quantity_added", quantityToAdd),
		slog.Int("stock", product.UnitStockQuantity))

	s.notifier.NotifyReplenished(ctx, product, quantityToAdd)
	s.evaluateStockLevel(ctx, product)

	return product, nil
}

func (s *inventoryService) CheckAllForLowStock(ctx context.Context) (int, error) {
	lowProducts, err := s.productRepo.ListProductsByStockAtMost(ctx, s.threshold)
	if err != nil {
		return 0, fmt.Errorf("list products by stock: %w", err)
	}

	for _, product := range lowProducts {
		s.evaluateStockLevel(ctx, product)
	}

	s.logger.InfoContext(ctx, "low stock sweep completed",
		slog.Int("low_stock_count", len(lowProducts)))

	return len(lowProducts), nil
}

func (s *inventoryService) ReconcileAlerts(ctx context.Context) (int, error) {
	removed := 0
	for _, id := range s.tracker.Snapshot() {
		product, err := s.productRepo.GetProductByID(ctx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				s.tracker.Remove(id)
				removed++
				continue
			}
			return removed, fmt.Errorf("get product by id: %w", err)
		}

		if product.UnitStockQuantity > s.threshold {
			s.tracker.Remove(id)
			removed++
		}
	}

	s.logger.InfoContext(ctx, "alert reconcile completed", slog.Int("removed", removed))
	return removed, nil
}

func (s *inventoryService) ClearAlertHistory(ctx context.Context) {
	s.tracker.Clear()
	s.logger.InfoContext(ctx, "alert history cleared")
}

func (s *inventoryService) AlertedProducts() []uuid.UUID {
	return s.tracker.Snapshot()
}

func (s *inventoryService) StockStatus(ctx context.Context) (StockStatus, error) {
	lowProducts, err := s.ListLowStockProducts(ctx)
	if err != nil {
		return StockStatus{}, fmt.Errorf("list low stock products: %w", err)
	}

	alertedIDs := s.tracker.Snapshot()

	return StockStatus{
		LowStockCount:    len(lowProducts),
		AlertedCount:     len(alertedIDs),
		LowStockProducts: lowProducts,
		AlertedIDs:       alertedIDs,
	}, nil
}

func (s *inventoryService) ExportCatalog(ctx context.Context) (string, error) {
	products, err := s.productRepo.ListAllProducts(ctx)
	if err != nil {
		return "", fmt.Errorf("list all products: %w", err)
	}

	link, err := s.exporter.ExportAll(ctx, products)
	if err != nil {
		return "", fmt.Errorf("export all products: %w", err)
	}

	s.logger.InfoContext(ctx, "catalog exported",
		slog.Int("product_count", len(products)))

	return link, nil
}

// evaluateStockLevel applies the episode rules after a stock-changing
// mutation: entering low stock dispatches exactly one notification per
// episode, and recovering above the threshold closes the episode.
// Never fails the surrounding business operation.
func (s *inventoryService) evaluateStockLevel(ctx context.Context, product model.Product) {
	isLow := product.UnitStockQuantity <= s.threshold

	if !isLow {
		s.tracker.Remove(product.ID)
		return
	}

	// Add reports whether the id was newly tracked, so the check and
	// the membership update are a single atomic step under concurrency.
	if s.tracker.Add(product.ID) {
		s.logger.WarnContext(ctx, "low stock detected",
			slog.String("product_id", product.ID.String()),
			slog.String("product_name", product.ProductName),
			slog.Int("stock", product.UnitStockQuantity),
			slog.Int("threshold", s.threshold))
		s.notifier.NotifyLowStock(ctx, product, s.threshold)
	}
}

// exportAsync pushes the product to the sync exporter without blocking
// the caller. Failures are logged and swallowed.
func (s *inventoryService) exportAsync(ctx context.Context, product model.Product) {
	exportCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), exportTimeout)

	go func() {
		defer cancel()

		if _, err := s.exporter.ExportOne(exportCtx, product); err != nil {
			s.logger.WarnContext(exportCtx, "error exporting product",
				slog.String("product_id", product.ID.String()),
				slog.Any("error", err))
		}
	}()
}
