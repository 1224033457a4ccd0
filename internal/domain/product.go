package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product represents an item stocked in a storehouse. OwnerID is a
// denormalized copy of the storehouse's owner taken at creation time;
// storehouse ownership never changes, so the two cannot diverge.
type Product struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	TotalQuantity int       `json:"total_quantity" db:"total_quantity"`
	QuantitySold  int       `json:"quantity_sold" db:"quantity_sold"`
	PricePerUnit  float64   `json:"price_per_unit" db:"price_per_unit"`
	Revenue       float64   `json:"revenue" db:"revenue"`
	Description   string    `json:"description" db:"description"`
	StorehouseID  uuid.UUID `json:"storehouse_id" db:"storehouse_id"`
	OwnerID       uuid.UUID `json:"owner_id" db:"owner_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// AvailableQuantity is derived on read and never persisted
func (p *Product) AvailableQuantity() int {
	return p.TotalQuantity - p.QuantitySold
}

// RecomputeRevenue refreshes the derived revenue field from the current
// quantity sold and unit price
func (p *Product) RecomputeRevenue() {
	p.Revenue = float64(p.QuantitySold) * p.PricePerUnit
}

// ProductWithOwner is a product with its owner and storehouse eagerly
// attached, used by buyer-facing listings and search
type ProductWithOwner struct {
	Product
	Owner      User       `json:"owner"`
	Storehouse Storehouse `json:"storehouse"`
}
