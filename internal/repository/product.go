package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/db"
)

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository

	CreateProduct(ctx context.Context, product model.Product) error
	UpdateProduct(ctx context.Context, product model.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (model.Product, error)
	GetProductByNameAndModel(ctx context.Context, productName, productModel string) (model.Product, error)
	ExistsByProductName(ctx context.Context, productName string) (bool, error)
	ListAllProducts(ctx context.Context) ([]model.Product, error)
	ListProductsByStockAtMost(ctx context.Context, threshold int) ([]model.Product, error)

	// DecrementStockIfAvailable atomically decrements stock by quantity
	// when at least that much is available, keeping total_price
	// consistent in the same statement. ok is false when the guard did
	// not match; callers distinguish missing product from insufficient
	// stock with a follow-up read.
	DecrementStockIfAvailable(ctx context.Context, id uuid.UUID, quantity int) (product model.Product, ok bool, err error)

	// IncrementStock atomically increments stock by quantity.
	IncrementStock(ctx context.Context, id uuid.UUID, quantity int) (model.Product, error)

	DeleteProduct(ctx context.Context, id uuid.UUID) (bool, error)
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, product_name, model, price_per_quantity, unit_stock_quantity, total_price, status, created_at, updated_at`

func (r productRepository) CreateProduct(ctx context.Context, product model.Product) error {
	price, err := numericFromFloat(product.PricePerQuantity)
	if err != nil {
		return fmt.Errorf("convert price: %w", err)
	}
	totalPrice, err := numericFromFloat(product.TotalPrice)
	if err != nil {
		return fmt.Errorf("convert total price: %w", err)
	}

	if _, err := r.db.Exec(ctx, `
		INSERT INTO products (id, product_name, model, price_per_quantity, unit_stock_quantity, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		product.ID,
		product.ProductName,
		product.Model,
		price,
		product.UnitStockQuantity,
		totalPrice,
		string(product.Status),
		product.CreatedAt,
		product.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

func (r productRepository) UpdateProduct(ctx context.Context, product model.Product) error {
	price, err := numericFromFloat(product.PricePerQuantity)
	if err != nil {
		return fmt.Errorf("convert price: %w", err)
	}
	totalPrice, err := numericFromFloat(product.TotalPrice)
	if err != nil {
		return fmt.Errorf("convert total price: %w", err)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET product_name = $2,
			model = $3,
			price_per_quantity = $4,
			unit_stock_quantity = $5,
			total_price = $6,
			status = $7,
			updated_at = $8
		WHERE id = $1`,
		product.ID,
		product.ProductName,
		product.Model,
		price,
		product.UnitStockQuantity,
		totalPrice,
		string(product.Status),
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update product %s: %w", product.ID, pgx.ErrNoRows)
	}

	return nil
}

func (r productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (model.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	product, err := scanProduct(row)
	if err != nil {
		return model.Product{}, fmt.Errorf("get product by id: %w", err)
	}

	return product, nil
}

func (r productRepository) GetProductByNameAndModel(ctx context.Context, productName, productModel string) (model.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE product_name = $1 AND model = $2`,
		productName, productModel)

	product, err := scanProduct(row)
	if err != nil {
		return model.Product{}, fmt.Errorf("get product by name and model: %w", err)
	}

	return product, nil
}

func (r productRepository) ExistsByProductName(ctx context.Context, productName string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE product_name = $1)`, productName,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists by product name: %w", err)
	}

	return exists, nil
}

func (r productRepository) ListAllProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY product_name, model`)
	if err != nil {
		return nil, fmt.Errorf("list all products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r productRepository) ListProductsByStockAtMost(ctx context.Context, threshold int) ([]model.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE unit_stock_quantity <= $1 ORDER BY unit_stock_quantity`,
		threshold)
	if err != nil {
		return nil, fmt.Errorf("list products by stock: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r productRepository) DecrementStockIfAvailable(ctx context.Context, id uuid.UUID, quantity int) (model.Product, bool, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE products
		SET unit_stock_quantity = unit_stock_quantity - $2,
			total_price = price_per_quantity * (unit_stock_quantity - $2),
			updated_at = now()
		WHERE id = $1 AND unit_stock_quantity >= $2
		RETURNING `+productColumns,
		id, quantity)

	product, err := scanProduct(row)
	if err != nil {
		if isNoRows(err) {
			return model.Product{}, false, nil
		}
		return model.Product{}, false, fmt.Errorf("decrement stock: %w", err)
	}

	return product, true, nil
}

func (r productRepository) IncrementStock(ctx context.Context, id uuid.UUID, quantity int) (model.Product, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE products
		SET unit_stock_quantity = unit_stock_quantity + $2,
			total_price = price_per_quantity * (unit_stock_quantity + $2),
			updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns,
		id, quantity)

	product, err := scanProduct(row)
	if err != nil {
		return model.Product{}, fmt.Errorf("increment stock: %w", err)
	}

	return product, nil
}

func (r productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		product    model.Product
		price      pgtype.Numeric
		totalPrice pgtype.Numeric
		status     string
	)

	if err := row.Scan(
		&product.ID,
		&product.ProductName,
		&product.Model,
		&price,
		&product.UnitStockQuantity,
		&totalPrice,
		&status,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return model.Product{}, err
	}

	priceValue, err := price.Float64Value()
	if err != nil {
		return model.Product{}, fmt.Errorf("convert price to float64: %w", err)
	}
	totalPriceValue, err := totalPrice.Float64Value()
	if err != nil {
		return model.Product{}, fmt.Errorf("convert total price to float64: %w", err)
	}

	product.PricePerQuantity = priceValue.Float64
	product.TotalPrice = totalPriceValue.Float64
	product.Status = model.ProductStatus(status)

	return product, nil
}

func collectProducts(rows pgx.Rows) ([]model.Product, error) {
	var products []model.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

func numericFromFloat(v float64) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	if err := n.Scan(fmt.Sprintf("%f", v)); err != nil {
		return pgtype.Numeric{}, fmt.Errorf("scan numeric: %w", err)
	}
	return n, nil
}
