package repository

import (
	"context"
	"database/sql"
	"fmt"

	"samansetu/internal/domain"
)

// InquiryRepository defines the interface for inquiry data access.
// Inquiries are append-only.
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *domain.Inquiry) error
}

type inquiryRepository struct {
	db *sql.DB
}

// NewInquiryRepository creates a new instance of InquiryRepository
func NewInquiryRepository(db *sql.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

// Create inserts a new inquiry
func (r *inquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	query := `
		INSERT INTO inquiries (id, message, quantity, product_id, buyer_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		inquiry.ID,
		inquiry.Message,
		inquiry.Quantity,
		inquiry.ProductID,
		inquiry.BuyerID,
		inquiry.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create inquiry: %w", err)
	}

	return nil
}
