package transport

import (
	"net/http"

	"samansetu/internal/domain"
	"samansetu/internal/middleware"
	"samansetu/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateStorehouseRequest represents the storehouse creation payload
type CreateStorehouseRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// StorehouseHandler handles owner storehouse routes
type StorehouseHandler struct {
	storehouseService service.StorehouseService
	logger            *zap.Logger
}

// NewStorehouseHandler creates a new StorehouseHandler
func NewStorehouseHandler(storehouseService service.StorehouseService, logger *zap.Logger) *StorehouseHandler {
	return &StorehouseHandler{
		storehouseService: storehouseService,
		logger:            logger,
	}
}

// RegisterRoutes registers the storehouse routes under the auth
// middleware. All routes are owner-only and gated on the path owner id
// matching the token user.
func (h *StorehouseHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/owners/{ownerID}/storehouses", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireRole(domain.RoleOwner, h.logger))
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/search", h.Search)
	})
}

// requireOwner parses the path owner id and checks it against the token
// user. Returns uuid.Nil after writing the error response on failure.
func (h *StorehouseHandler) requireOwner(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	ownerID, err := uuid.Parse(chi.URLParam(r, "ownerID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid owner ID")
		return uuid.Nil, false
	}

	user, ok := middleware.GetCurrentUser(r.Context())
	if !ok || user.ID != ownerID {
		middleware.RespondWithError(w, http.StatusForbidden, "not authorized")
		return uuid.Nil, false
	}

	return ownerID, true
}

// List returns the owner's storehouses
func (h *StorehouseHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.requireOwner(w, r)
	if !ok {
		return
	}

	storehouses, err := h.storehouseService.ListByOwner(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("Failed to list storehouses", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list storehouses")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toStorehouseResponses(storehouses))
}

// Create creates a storehouse under the owner
func (h *StorehouseHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.requireOwner(w, r)
	if !ok {
		return
	}

	var req CreateStorehouseRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Storehouse validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	storehouse, err := h.storehouseService.CreateStorehouse(r.Context(), service.CreateStorehouseInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
	}, ownerID)
	if err != nil {
		h.logger.Error("Failed to create storehouse", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create storehouse")
		return
	}

	h.logger.Info("Storehouse created",
		zap.String("storehouse_id", storehouse.ID.String()),
		zap.String("owner_id", ownerID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusOK, toStorehouseResponse(storehouse))
}

// Search searches the owner's storehouses by name or location
func (h *StorehouseHandler) Search(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.requireOwner(w, r)
	if !ok {
		return
	}

	if !r.URL.Query().Has("q") {
		middleware.RespondWithError(w, http.StatusBadRequest, "missing search query")
		return
	}
	query := r.URL.Query().Get("q")

	storehouses, err := h.storehouseService.SearchByOwner(r.Context(), ownerID, query)
	if err != nil {
		h.logger.Error("Failed to search storehouses", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to search storehouses")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toStorehouseResponses(storehouses))
}
