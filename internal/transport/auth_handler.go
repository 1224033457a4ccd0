package transport

import (
	"net/http"

	"samansetu/internal/domain"
	"samansetu/internal/middleware"
	"samansetu/internal/repository"
	"samansetu/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SignupRequest represents the signup request payload
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse represents the login response
type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        UserProfile `json:"user"`
}

// AuthHandler handles signup and login for both roles
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// RegisterRoutes registers the auth routes. The role is fixed by the
// route, not by the payload. rateLimit guards the unauthenticated
// routes.
func (h *AuthHandler) RegisterRoutes(r chi.Router, rateLimit func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		if rateLimit != nil {
			r.Use(rateLimit)
		}
		r.Post("/owners/signup", h.signup(domain.RoleOwner))
		r.Post("/buyers/signup", h.signup(domain.RoleBuyer))
		r.Post("/owners/login", h.login(domain.RoleOwner))
		r.Post("/buyers/login", h.login(domain.RoleBuyer))
	})
}

func (h *AuthHandler) signup(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest

		if err := middleware.DecodeAndValidate(r, &req); err != nil {
			h.logger.Debug("Signup validation failed", zap.Error(err))

			if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
				middleware.RespondWithValidationErrors(w, validationErrors)
				return
			}

			middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := h.authService.Signup(r.Context(), req.Email, req.Password, role)
		if err != nil {
			if err == repository.ErrUserAlreadyExists {
				middleware.RespondWithError(w, http.StatusConflict, "email already registered")
				return
			}

			h.logger.Error("Signup failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to sign up")
			return
		}

		h.logger.Info("User signed up",
			zap.String("user_id", user.ID.String()),
			zap.String("role", string(role)),
		)
		middleware.RespondWithJSON(w, http.StatusOK, toUserProfile(user))
	}
}

func (h *AuthHandler) login(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := middleware.DecodeAndValidate(r, &req); err != nil {
			h.logger.Debug("Login validation failed", zap.Error(err))

			if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
				middleware.RespondWithValidationErrors(w, validationErrors)
				return
			}

			middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		accessToken, user, err := h.authService.Login(r.Context(), req.Email, req.Password, role)
		if err != nil {
			if err == service.ErrInvalidCredentials {
				// One message for bad email, bad password and
				// wrong-role-for-route alike
				middleware.RespondWithError(w, http.StatusUnauthorized, "incorrect email or password")
				return
			}

			h.logger.Error("Login failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to log in")
			return
		}

		h.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
		middleware.RespondWithJSON(w, http.StatusOK, TokenResponse{
			AccessToken: accessToken,
			TokenType:   "bearer",
			User:        toUserProfile(user),
		})
	}
}
