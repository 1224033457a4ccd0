package transport

import (
	"net/http"

	"samansetu/internal/domain"
	"samansetu/internal/middleware"
	"samansetu/internal/repository"
	"samansetu/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateProductRequest represents the product creation payload. Revenue
// is not accepted from clients.
type CreateProductRequest struct {
	Name          string  `json:"name" validate:"required"`
	TotalQuantity int     `json:"total_quantity" validate:"gte=0"`
	QuantitySold  int     `json:"quantity_sold" validate:"gte=0"`
	PricePerUnit  float64 `json:"price_per_unit" validate:"gte=0"`
	Description   string  `json:"description"`
}

// UpdateProductRequest is a partial update: omitted fields keep their
// prior values
type UpdateProductRequest struct {
	Name          *string  `json:"name"`
	TotalQuantity *int     `json:"total_quantity" validate:"omitempty,gte=0"`
	QuantitySold  *int     `json:"quantity_sold" validate:"omitempty,gte=0"`
	PricePerUnit  *float64 `json:"price_per_unit" validate:"omitempty,gte=0"`
	Description   *string  `json:"description"`
}

// ProductHandler handles product routes for both roles
type ProductHandler struct {
	productService    service.ProductService
	storehouseService service.StorehouseService
	logger            *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, storehouseService service.StorehouseService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService:    productService,
		storehouseService: storehouseService,
		logger:            logger,
	}
}

// RegisterRoutes registers the product routes under the auth middleware
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/storehouses/{storehouseID}/products", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireRole(domain.RoleOwner, h.logger))
		r.Get("/", h.ListByStorehouse)
		r.Post("/", h.Create)
	})

	r.Route("/products", func(r chi.Router) {
		r.Use(authMiddleware)

		// Search is shared: buyers see all matches, owners only their own
		r.Get("/search", h.Search)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(domain.RoleBuyer, h.logger))
			r.Get("/", h.ListAll)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(domain.RoleOwner, h.logger))
			r.Put("/{productID}", h.Update)
			r.Delete("/{productID}", h.Delete)
		})
	})
}

// requireStorehouseOwner loads the path storehouse and checks it belongs
// to the token user
func (h *ProductHandler) requireStorehouseOwner(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	storehouseID, err := uuid.Parse(chi.URLParam(r, "storehouseID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid storehouse ID")
		return uuid.Nil, false
	}

	storehouse, err := h.storehouseService.GetStorehouse(r.Context(), storehouseID)
	if err != nil {
		if err == repository.ErrStorehouseNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "storehouse not found")
			return uuid.Nil, false
		}
		h.logger.Error("Failed to load storehouse", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load storehouse")
		return uuid.Nil, false
	}

	user, ok := middleware.GetCurrentUser(r.Context())
	if !ok || storehouse.OwnerID != user.ID {
		middleware.RespondWithError(w, http.StatusForbidden, "not authorized")
		return uuid.Nil, false
	}

	return storehouseID, true
}

// requireProductOwner loads the path product and checks it belongs to
// the token user
func (h *ProductHandler) requireProductOwner(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return uuid.Nil, false
	}

	product, err := h.productService.GetProduct(r.Context(), productID)
	if err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return uuid.Nil, false
		}
		h.logger.Error("Failed to load product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load product")
		return uuid.Nil, false
	}

	user, ok := middleware.GetCurrentUser(r.Context())
	if !ok || product.OwnerID != user.ID {
		middleware.RespondWithError(w, http.StatusForbidden, "not authorized")
		return uuid.Nil, false
	}

	return productID, true
}

// ListByStorehouse returns the storehouse's products
func (h *ProductHandler) ListByStorehouse(w http.ResponseWriter, r *http.Request) {
	storehouseID, ok := h.requireStorehouseOwner(w, r)
	if !ok {
		return
	}

	products, err := h.productService.ListByStorehouse(r.Context(), storehouseID)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductResponses(products))
}

// Create creates a product under the storehouse. The product's owner is
// the storehouse's owner, copied at creation time.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	storehouseID, ok := h.requireStorehouseOwner(w, r)
	if !ok {
		return
	}

	var req CreateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, _ := middleware.GetCurrentUser(r.Context())

	product, err := h.productService.CreateProduct(r.Context(), service.CreateProductInput{
		Name:          req.Name,
		TotalQuantity: req.TotalQuantity,
		QuantitySold:  req.QuantitySold,
		PricePerUnit:  req.PricePerUnit,
		Description:   req.Description,
	}, storehouseID, user.ID)
	if err != nil {
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("storehouse_id", storehouseID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(product))
}

// Update applies a partial update and recomputes revenue
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.requireProductOwner(w, r)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product update validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.UpdateProduct(r.Context(), productID, service.UpdateProductInput{
		Name:          req.Name,
		TotalQuantity: req.TotalQuantity,
		QuantitySold:  req.QuantitySold,
		PricePerUnit:  req.PricePerUnit,
		Description:   req.Description,
	})
	if err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to update product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(product))
}

// Delete removes a product
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.requireProductOwner(w, r)
	if !ok {
		return
	}

	if _, err := h.productService.DeleteProduct(r.Context(), productID); err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to delete product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	h.logger.Info("Product deleted", zap.String("product_id", productID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

// ListAll returns the full catalog with owner and storehouse attached
func (h *ProductHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListAllWithOwner(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductWithOwnerResponses(products))
}

// Search searches products by name or description. Buyers see all
// matches; owners only their own.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetCurrentUser(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if !r.URL.Query().Has("q") {
		middleware.RespondWithError(w, http.StatusBadRequest, "missing search query")
		return
	}
	query := r.URL.Query().Get("q")

	var ownerID *uuid.UUID
	switch user.Role {
	case domain.RoleBuyer:
		// All matching products
	case domain.RoleOwner:
		ownerID = &user.ID
	default:
		middleware.RespondWithError(w, http.StatusForbidden, "not authorized")
		return
	}

	products, err := h.productService.SearchProducts(r.Context(), query, ownerID)
	if err != nil {
		h.logger.Error("Failed to search products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to search products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductWithOwnerResponses(products))
}
