package service_test

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/notifier"
	"github.com/tuanvumaihuynh/inventory-service/internal/repository"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/db"
)

// fakeDB satisfies db.DB for services that only need WithTx to run the
// transactional function. Query methods are never reached because the
// fake repository keeps its own state.
type fakeDB struct{}

func (fakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, nil
}

func (fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func (f fakeDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	return txFunc(f)
}

// fakeProductRepo is an in-memory, mutex-guarded product store with the
// same conditional-decrement contract as the real repository.
type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]model.Product
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]model.Product)}
}

func (r *fakeProductRepo) WithDB(db.DB) repository.ProductRepository { return r }

func (r *fakeProductRepo) CreateProduct(_ context.Context, product model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) UpdateProduct(_ context.Context, product model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetProductByID(_ context.Context, id uuid.UUID) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return model.Product{}, pgx.ErrNoRows
	}
	return product, nil
}

func (r *fakeProductRepo) GetProductByNameAndModel(_ context.Context, productName, productModel string) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, product := range r.products {
		if product.ProductName == productName && product.Model == productModel {
			return product, nil
		}
	}
	return model.Product{}, pgx.ErrNoRows
}

func (r *fakeProductRepo) ExistsByProductName(_ context.Context, productName string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, product := range r.products {
		if product.ProductName == productName {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProductRepo) ListAllProducts(context.Context) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	products := make([]model.Product, 0, len(r.products))
	for _, product := range r.products {
		products = append(products, product)
	}
	return products, nil
}

func (r *fakeProductRepo) ListProductsByStockAtMost(_ context.Context, threshold int) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var products []model.Product
	for _, product := range r.products {
		if product.UnitStockQuantity <= threshold {
			products = append(products, product)
		}
	}
	return products, nil
}

func (r *fakeProductRepo) DecrementStockIfAvailable(_ context.Context, id uuid.UUID, quantity int) (model.Product, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok || product.UnitStockQuantity < quantity {
		return model.Product{}, false, nil
	}
	product.UnitStockQuantity -= quantity
	product.RecalculateTotalPrice()
	r.products[id] = product
	return product, true, nil
}

func (r *fakeProductRepo) IncrementStock(_ context.Context, id uuid.UUID, quantity int) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return model.Product{}, pgx.ErrNoRows
	}
	product.UnitStockQuantity += quantity
	product.RecalculateTotalPrice()
	r.products[id] = product
	return product, nil
}

func (r *fakeProductRepo) DeleteProduct(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return false, nil
	}
	delete(r.products, id)
	return true, nil
}

// fakeNotifier counts dispatched notifications per kind.
type fakeNotifier struct {
	mu              sync.Mutex
	lowStock        []string
	newProduct      []string
	replenished     []string
	orderConfirmed  int
	lastOrderEmail  string
	lastOrderAmount float64
}

var _ notifier.Notifier = (*fakeNotifier)(nil)

func (n *fakeNotifier) NotifyLowStock(_ context.Context, product model.Product, _ int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.lowStock = append(n.lowStock, product.ProductName)
}

func (n *fakeNotifier) NotifyNewProduct(_ context.Context, product model.Product) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.newProduct = append(n.newProduct, product.ProductName)
}

func (n *fakeNotifier) NotifyReplenished(_ context.Context, product model.Product, _ int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.replenished = append(n.replenished, product.ProductName)
}

func (n *fakeNotifier) NotifyOrderConfirmed(_ context.Context, customer notifier.Customer, summary notifier.OrderSummary) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orderConfirmed++
	n.lastOrderEmail = customer.Email
	n.lastOrderAmount = summary.TotalAmount
}

func (n *fakeNotifier) lowStockCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.lowStock)
}

// fakeExporter records exported products and returns a fixed link.
type fakeExporter struct {
	mu       sync.Mutex
	exported []model.Product
	link     string
}

func (e *fakeExporter) ExportOne(_ context.Context, product model.Product) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.exported = append(e.exported, product)
	return e.link, nil
}

func (e *fakeExporter) ExportAll(_ context.Context, products []model.Product) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.exported = append(e.exported, products...)
	return e.link, nil
}
