package domain

import (
	"time"

	"github.com/google/uuid"
)

// Inquiry is a buyer's expression of interest in a product. Inquiries
// are append-only.
type Inquiry struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Message   string    `json:"message" db:"message"`
	Quantity  int       `json:"quantity" db:"quantity"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	BuyerID   uuid.UUID `json:"buyer_id" db:"buyer_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
