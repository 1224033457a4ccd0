package service

import (
	"context"
	"fmt"
	"time"

	"samansetu/internal/domain"
	"samansetu/internal/repository"

	"github.com/google/uuid"
)

// CreateProductInput carries the client-settable product fields. Revenue
// is never client-settable; it is derived on every write.
type CreateProductInput struct {
	Name          string
	TotalQuantity int
	QuantitySold  int
	PricePerUnit  float64
	Description   string
}

// UpdateProductInput is a partial update: nil fields keep their prior
// values
type UpdateProductInput struct {
	Name          *string
	TotalQuantity *int
	QuantitySold  *int
	PricePerUnit  *float64
	Description   *string
}

// ProductService defines the interface for product business logic
type ProductService interface {
	CreateProduct(ctx context.Context, input CreateProductInput, storehouseID, ownerID uuid.UUID) (*domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetProductWithOwner(ctx context.Context, id uuid.UUID) (*domain.ProductWithOwner, error)
	ListByStorehouse(ctx context.Context, storehouseID uuid.UUID) ([]*domain.Product, error)
	ListAllWithOwner(ctx context.Context) ([]*domain.ProductWithOwner, error)
	SearchProducts(ctx context.Context, query string, ownerID *uuid.UUID) ([]*domain.ProductWithOwner, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

// CreateProduct persists a new product with its revenue computed from
// quantity sold and unit price
func (s *productService) CreateProduct(ctx context.Context, input CreateProductInput, storehouseID, ownerID uuid.UUID) (*domain.Product, error) {
	now := time.Now()
	product := &domain.Product{
		ID:            uuid.New(),
		Name:          input.Name,
		TotalQuantity: input.TotalQuantity,
		QuantitySold:  input.QuantitySold,
		PricePerUnit:  input.PricePerUnit,
		Description:   input.Description,
		StorehouseID:  storehouseID,
		OwnerID:       ownerID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	product.RecomputeRevenue()

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// GetProductWithOwner retrieves a product with owner and storehouse attached
func (s *productService) GetProductWithOwner(ctx context.Context, id uuid.UUID) (*domain.ProductWithOwner, error) {
	return s.productRepo.FindByIDWithOwner(ctx, id)
}

// ListByStorehouse lists a storehouse's products in insertion order
func (s *productService) ListByStorehouse(ctx context.Context, storehouseID uuid.UUID) ([]*domain.Product, error) {
	return s.productRepo.ListByStorehouse(ctx, storehouseID)
}

// ListAllWithOwner lists every product for the buyer catalog
func (s *productService) ListAllWithOwner(ctx context.Context) ([]*domain.ProductWithOwner, error) {
	return s.productRepo.ListAllWithOwner(ctx)
}

// SearchProducts searches products by name or description, optionally
// restricted to one owner's products
func (s *productService) SearchProducts(ctx context.Context, query string, ownerID *uuid.UUID) ([]*domain.ProductWithOwner, error) {
	return s.productRepo.Search(ctx, query, ownerID)
}

// UpdateProduct applies only the supplied fields, then recomputes
// revenue from the resulting quantity sold and unit price
func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.TotalQuantity != nil {
		product.TotalQuantity = *input.TotalQuantity
	}
	if input.QuantitySold != nil {
		product.QuantitySold = *input.QuantitySold
	}
	if input.PricePerUnit != nil {
		product.PricePerUnit = *input.PricePerUnit
	}
	if input.Description != nil {
		product.Description = *input.Description
	}

	product.RecomputeRevenue()
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes a product and returns its last snapshot
func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	return product, nil
}
