package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"samansetu/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindByIDWithOwner(ctx context.Context, id uuid.UUID) (*domain.ProductWithOwner, error)
	ListByStorehouse(ctx context.Context, storehouseID uuid.UUID) ([]*domain.Product, error)
	ListAllWithOwner(ctx context.Context) ([]*domain.ProductWithOwner, error)
	Search(ctx context.Context, query string, ownerID *uuid.UUID) ([]*domain.ProductWithOwner, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `
	p.id, p.name, p.total_quantity, p.quantity_sold, p.price_per_unit,
	p.revenue, p.description, p.storehouse_id, p.owner_id, p.created_at, p.updated_at
`

// joinedColumns extends productColumns with the owner and storehouse
// rows so buyer-facing reads need a single round trip
const joinedColumns = productColumns + `,
	u.id, u.email, u.role, u.created_at,
	s.id, s.name, s.description, s.location, s.owner_id, s.created_at
`

// Create inserts a new product. Revenue must already be computed by the
// caller from quantity_sold and price_per_unit.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, name, total_quantity, quantity_sold, price_per_unit,
			revenue, description, storehouse_id, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.TotalQuantity,
		product.QuantitySold,
		product.PricePerUnit,
		product.Revenue,
		product.Description,
		product.StorehouseID,
		product.OwnerID,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update writes the full product row. Partial-update merging happens in
// the service before this call.
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, total_quantity = $3, quantity_sold = $4, price_per_unit = $5,
		    revenue = $6, description = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.TotalQuantity,
		product.QuantitySold,
		product.PricePerUnit,
		product.Revenue,
		product.Description,
		product.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product row
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a product by ID
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`

	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.TotalQuantity,
		&product.QuantitySold,
		&product.PricePerUnit,
		&product.Revenue,
		&product.Description,
		&product.StorehouseID,
		&product.OwnerID,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// FindByIDWithOwner retrieves a product with its owner and storehouse
// eagerly attached in a single query
func (r *productRepository) FindByIDWithOwner(ctx context.Context, id uuid.UUID) (*domain.ProductWithOwner, error) {
	query := `
		SELECT ` + joinedColumns + `
		FROM products p
		JOIN users u ON u.id = p.owner_id
		JOIN storehouses s ON s.id = p.storehouse_id
		WHERE p.id = $1
	`

	product, err := scanProductWithOwner(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product with owner: %w", err)
	}

	return product, nil
}

// ListByStorehouse retrieves all products in a storehouse in insertion order
func (r *productRepository) ListByStorehouse(ctx context.Context, storehouseID uuid.UUID) ([]*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE p.storehouse_id = $1
		ORDER BY p.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, storehouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.TotalQuantity,
			&product.QuantitySold,
			&product.PricePerUnit,
			&product.Revenue,
			&product.Description,
			&product.StorehouseID,
			&product.OwnerID,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// ListAllWithOwner retrieves every product with owner and storehouse
// attached, avoiding N+1 lookups on the buyer catalog
func (r *productRepository) ListAllWithOwner(ctx context.Context) ([]*domain.ProductWithOwner, error) {
	query := `
		SELECT ` + joinedColumns + `
		FROM products p
		JOIN users u ON u.id = p.owner_id
		JOIN storehouses s ON s.id = p.storehouse_id
		ORDER BY p.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products with owner: %w", err)
	}
	defer rows.Close()

	return scanProductsWithOwner(rows)
}

// Search performs a case-insensitive substring search over product name
// or description. A non-nil ownerID restricts results to that owner's
// products.
func (r *productRepository) Search(ctx context.Context, query string, ownerID *uuid.UUID) ([]*domain.ProductWithOwner, error) {
	searchPattern := "%" + query + "%"

	searchQuery := `
		SELECT ` + joinedColumns + `
		FROM products p
		JOIN users u ON u.id = p.owner_id
		JOIN storehouses s ON s.id = p.storehouse_id
		WHERE (p.name ILIKE $1 OR p.description ILIKE $1)
	`
	args := []interface{}{searchPattern}

	if ownerID != nil {
		searchQuery += ` AND p.owner_id = $2`
		args = append(args, *ownerID)
	}

	searchQuery += ` ORDER BY p.created_at ASC`

	rows, err := r.db.QueryContext(ctx, searchQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	return scanProductsWithOwner(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProductWithOwner(row rowScanner) (*domain.ProductWithOwner, error) {
	product := &domain.ProductWithOwner{}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.TotalQuantity,
		&product.QuantitySold,
		&product.PricePerUnit,
		&product.Revenue,
		&product.Description,
		&product.StorehouseID,
		&product.OwnerID,
		&product.CreatedAt,
		&product.UpdatedAt,
		&product.Owner.ID,
		&product.Owner.Email,
		&product.Owner.Role,
		&product.Owner.CreatedAt,
		&product.Storehouse.ID,
		&product.Storehouse.Name,
		&product.Storehouse.Description,
		&product.Storehouse.Location,
		&product.Storehouse.OwnerID,
		&product.Storehouse.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func scanProductsWithOwner(rows *sql.Rows) ([]*domain.ProductWithOwner, error) {
	products := []*domain.ProductWithOwner{}
	for rows.Next() {
		product, err := scanProductWithOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product with owner: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products with owner: %w", err)
	}

	return products, nil
}
