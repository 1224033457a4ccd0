package transport

import (
	"time"

	"samansetu/internal/domain"
)

// UserProfile is the public view of a user; the password hash is never
// echoed
type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// StorehouseResponse is the wire form of a storehouse
type StorehouseResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductResponse is the wire form of a product. AvailableQuantity is
// computed on every read, never stored.
type ProductResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	TotalQuantity     int       `json:"total_quantity"`
	QuantitySold      int       `json:"quantity_sold"`
	PricePerUnit      float64   `json:"price_per_unit"`
	Revenue           float64   `json:"revenue"`
	AvailableQuantity int       `json:"available_quantity"`
	Description       string    `json:"description"`
	StorehouseID      string    `json:"storehouse_id"`
	OwnerID           string    `json:"owner_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProductWithOwnerResponse embeds the owner and storehouse for
// buyer-facing listings
type ProductWithOwnerResponse struct {
	ProductResponse
	Owner      UserProfile        `json:"owner"`
	Storehouse StorehouseResponse `json:"storehouse"`
}

func toUserProfile(user *domain.User) UserProfile {
	return UserProfile{
		ID:        user.ID.String(),
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

func toStorehouseResponse(storehouse *domain.Storehouse) StorehouseResponse {
	return StorehouseResponse{
		ID:          storehouse.ID.String(),
		Name:        storehouse.Name,
		Description: storehouse.Description,
		Location:    storehouse.Location,
		OwnerID:     storehouse.OwnerID.String(),
		CreatedAt:   storehouse.CreatedAt,
	}
}

func toStorehouseResponses(storehouses []*domain.Storehouse) []StorehouseResponse {
	responses := make([]StorehouseResponse, 0, len(storehouses))
	for _, s := range storehouses {
		responses = append(responses, toStorehouseResponse(s))
	}
	return responses
}

func toProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:                product.ID.String(),
		Name:              product.Name,
		TotalQuantity:     product.TotalQuantity,
		QuantitySold:      product.QuantitySold,
		PricePerUnit:      product.PricePerUnit,
		Revenue:           product.Revenue,
		AvailableQuantity: product.AvailableQuantity(),
		Description:       product.Description,
		StorehouseID:      product.StorehouseID.String(),
		OwnerID:           product.OwnerID.String(),
		CreatedAt:         product.CreatedAt,
		UpdatedAt:         product.UpdatedAt,
	}
}

func toProductResponses(products []*domain.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, toProductResponse(p))
	}
	return responses
}

func toProductWithOwnerResponse(product *domain.ProductWithOwner) ProductWithOwnerResponse {
	return ProductWithOwnerResponse{
		ProductResponse: toProductResponse(&product.Product),
		Owner:           toUserProfile(&product.Owner),
		Storehouse:      toStorehouseResponse(&product.Storehouse),
	}
}

func toProductWithOwnerResponses(products []*domain.ProductWithOwner) []ProductWithOwnerResponse {
	responses := make([]ProductWithOwnerResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, toProductWithOwnerResponse(p))
	}
	return responses
}
