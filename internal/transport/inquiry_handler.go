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

// CreateInquiryRequest represents the inquiry payload
type CreateInquiryRequest struct {
	Message  string `json:"message" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// InquiryResponse confirms a persisted inquiry. It is returned even
// when the owner notification could not be sent.
type InquiryResponse struct {
	Message   string `json:"message"`
	InquiryID string `json:"inquiry_id"`
}

// InquiryHandler handles buyer inquiry routes
type InquiryHandler struct {
	inquiryService service.InquiryService
	productService service.ProductService
	logger         *zap.Logger
}

// NewInquiryHandler creates a new InquiryHandler
func NewInquiryHandler(inquiryService service.InquiryService, productService service.ProductService, logger *zap.Logger) *InquiryHandler {
	return &InquiryHandler{
		inquiryService: inquiryService,
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers the inquiry routes under the auth middleware
func (h *InquiryHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireRole(domain.RoleBuyer, h.logger))
		r.Post("/products/{productID}/inquiry", h.Create)
	})
}

// Create persists an inquiry on a product. Any buyer may inquire on any
// product.
func (h *InquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req CreateInquiryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Inquiry validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Owner and storehouse are needed for the notification, so load
	// the joined row up front
	product, err := h.productService.GetProductWithOwner(r.Context(), productID)
	if err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to load product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	current, _ := middleware.GetCurrentUser(r.Context())
	buyer := &domain.User{ID: current.ID, Email: current.Email, Role: current.Role}

	inquiry, err := h.inquiryService.CreateInquiry(r.Context(), service.CreateInquiryInput{
		Message:  req.Message,
		Quantity: req.Quantity,
	}, product, buyer)
	if err != nil {
		h.logger.Error("Failed to create inquiry", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create inquiry")
		return
	}

	h.logger.Info("Inquiry created",
		zap.String("inquiry_id", inquiry.ID.String()),
		zap.String("product_id", productID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusOK, InquiryResponse{
		Message:   "Inquiry sent successfully",
		InquiryID: inquiry.ID.String(),
	})
}
