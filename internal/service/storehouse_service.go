package service

import (
	"context"
	"fmt"
	"time"

	"samansetu/internal/domain"
	"samansetu/internal/repository"

	"github.com/google/uuid"
)

// CreateStorehouseInput carries the client-settable storehouse fields
type CreateStorehouseInput struct {
	Name        string
	Description string
	Location    string
}

// StorehouseService defines the interface for storehouse business logic
type StorehouseService interface {
	CreateStorehouse(ctx context.Context, input CreateStorehouseInput, ownerID uuid.UUID) (*domain.Storehouse, error)
	GetStorehouse(ctx context.Context, id uuid.UUID) (*domain.Storehouse, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Storehouse, error)
	SearchByOwner(ctx context.Context, ownerID uuid.UUID, query string) ([]*domain.Storehouse, error)
}

type storehouseService struct {
	storehouseRepo repository.StorehouseRepository
}

// NewStorehouseService creates a new instance of StorehouseService
func NewStorehouseService(storehouseRepo repository.StorehouseRepository) StorehouseService {
	return &storehouseService{storehouseRepo: storehouseRepo}
}

// CreateStorehouse persists a new storehouse for the owner
func (s *storehouseService) CreateStorehouse(ctx context.Context, input CreateStorehouseInput, ownerID uuid.UUID) (*domain.Storehouse, error) {
	storehouse := &domain.Storehouse{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Location:    input.Location,
		OwnerID:     ownerID,
		CreatedAt:   time.Now(),
	}

	if err := s.storehouseRepo.Create(ctx, storehouse); err != nil {
		return nil, fmt.Errorf("failed to create storehouse: %w", err)
	}

	return storehouse, nil
}

// GetStorehouse retrieves a storehouse by ID
func (s *storehouseService) GetStorehouse(ctx context.Context, id uuid.UUID) (*domain.Storehouse, error) {
	return s.storehouseRepo.FindByID(ctx, id)
}

// ListByOwner lists the owner's storehouses in insertion order
func (s *storehouseService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Storehouse, error) {
	return s.storehouseRepo.ListByOwner(ctx, ownerID)
}

// SearchByOwner searches the owner's storehouses by name or location
func (s *storehouseService) SearchByOwner(ctx context.Context, ownerID uuid.UUID, query string) ([]*domain.Storehouse, error) {
	return s.storehouseRepo.SearchByOwner(ctx, ownerID, query)
}
