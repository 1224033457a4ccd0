package middleware

import (
	"context"
	"net/http"
	"strings"

	"samansetu/internal/domain"
	"samansetu/internal/repository"
	"samansetu/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const currentUserKey contextKey = "current_user"

// CurrentUser is the authenticated identity exposed to handlers
type CurrentUser struct {
	ID    uuid.UUID
	Email string
	Role  domain.Role
}

// AuthMiddleware validates the bearer token and resolves the current
// user: the verified token's subject email is loaded from the store and
// {id, email, role} is placed in the request context. Missing or invalid
// tokens and unknown subjects are all 401.
func AuthMiddleware(authService service.AuthService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug("Missing authorization header")
				RespondWithError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Debug("Invalid authorization header format")
				RespondWithError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			claims, err := authService.ValidateToken(parts[1])
			if err != nil {
				logger.Debug("Token validation failed", zap.Error(err))
				RespondWithError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			user, err := authService.GetUserByEmail(r.Context(), claims.Subject)
			if err != nil {
				if err == repository.ErrUserNotFound {
					logger.Debug("Token subject not found", zap.String("email", claims.Subject))
					RespondWithError(w, http.StatusUnauthorized, "invalid token")
					return
				}
				logger.Error("Failed to resolve current user", zap.Error(err))
				RespondWithError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), currentUserKey, &CurrentUser{
				ID:    user.ID,
				Email: user.Email,
				Role:  user.Role,
			})

			logger.Debug("User authenticated",
				zap.String("user_id", user.ID.String()),
				zap.String("role", string(user.Role)),
			)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetCurrentUser extracts the authenticated user from request context
func GetCurrentUser(ctx context.Context) (*CurrentUser, bool) {
	user, ok := ctx.Value(currentUserKey).(*CurrentUser)
	return user, ok
}

// WithCurrentUser returns a context carrying the given user, for tests
// and request-scoped plumbing
func WithCurrentUser(ctx context.Context, user *CurrentUser) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}
