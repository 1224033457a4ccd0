package middleware

import (
	"net/http"

	"samansetu/internal/domain"

	"go.uber.org/zap"
)

// RequireRole ensures the authenticated user has the given role. The
// role set is closed: anything other than owner or buyer is rejected.
func RequireRole(role domain.Role, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetCurrentUser(r.Context())
			if !ok {
				logger.Warn("User not found in context")
				RespondWithError(w, http.StatusForbidden, "not authorized")
				return
			}

			switch user.Role {
			case domain.RoleOwner, domain.RoleBuyer:
				if user.Role != role {
					logger.Warn("Role not authorized for route",
						zap.String("role", string(user.Role)),
						zap.String("required", string(role)),
					)
					RespondWithError(w, http.StatusForbidden, "not authorized")
					return
				}
			default:
				logger.Warn("Unknown role in context", zap.String("role", string(user.Role)))
				RespondWithError(w, http.StatusForbidden, "not authorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
