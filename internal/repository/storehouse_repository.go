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
	ErrStorehouseNotFound = errors.New("storehouse not found")
)

// StorehouseRepository defines the interface for storehouse data access
type StorehouseRepository interface {
	Create(ctx context.Context, storehouse *domain.Storehouse) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Storehouse, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Storehouse, error)
	SearchByOwner(ctx context.Context, ownerID uuid.UUID, query string) ([]*domain.Storehouse, error)
}

type storehouseRepository struct {
	db *sql.DB
}

// NewStorehouseRepository creates a new instance of StorehouseRepository
func NewStorehouseRepository(db *sql.DB) StorehouseRepository {
	return &storehouseRepository{db: db}
}

// Create inserts a new storehouse
func (r *storehouseRepository) Create(ctx context.Context, storehouse *domain.Storehouse) error {
	query := `
		INSERT INTO storehouses (id, name, description, location, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		storehouse.ID,
		storehouse.Name,
		storehouse.Description,
		storehouse.Location,
		storehouse.OwnerID,
		storehouse.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create storehouse: %w", err)
	}

	return nil
}

// FindByID retrieves a storehouse by ID
func (r *storehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Storehouse, error) {
	query := `
		SELECT id, name, description, location, owner_id, created_at
		FROM storehouses
		WHERE id = $1
	`

	storehouse := &domain.Storehouse{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&storehouse.ID,
		&storehouse.Name,
		&storehouse.Description,
		&storehouse.Location,
		&storehouse.OwnerID,
		&storehouse.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrStorehouseNotFound
		}
		return nil, fmt.Errorf("failed to find storehouse by ID: %w", err)
	}

	return storehouse, nil
}

// ListByOwner retrieves all storehouses of an owner in insertion order
func (r *storehouseRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Storehouse, error) {
	query := `
		SELECT id, name, description, location, owner_id, created_at
		FROM storehouses
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list storehouses: %w", err)
	}
	defer rows.Close()

	return scanStorehouses(rows)
}

// SearchByOwner performs a case-insensitive substring search over the
// owner's storehouses, matching name or location
func (r *storehouseRepository) SearchByOwner(ctx context.Context, ownerID uuid.UUID, query string) ([]*domain.Storehouse, error) {
	searchPattern := "%" + query + "%"

	searchQuery := `
		SELECT id, name, description, location, owner_id, created_at
		FROM storehouses
		WHERE owner_id = $1 AND (name ILIKE $2 OR location ILIKE $2)
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, searchQuery, ownerID, searchPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search storehouses: %w", err)
	}
	defer rows.Close()

	return scanStorehouses(rows)
}

func scanStorehouses(rows *sql.Rows) ([]*domain.Storehouse, error) {
	storehouses := []*domain.Storehouse{}
	for rows.Next() {
		storehouse := &domain.Storehouse{}
		err := rows.Scan(
			&storehouse.ID,
			&storehouse.Name,
			&storehouse.Description,
			&storehouse.Location,
			&storehouse.OwnerID,
			&storehouse.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan storehouse: %w", err)
		}
		storehouses = append(storehouses, storehouse)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating storehouses: %w", err)
	}

	return storehouses, nil
}
