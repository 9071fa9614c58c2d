package middleware

import (
	"errors"
	"net/http"

	"github.com/verdemed/verdemed/application/port/outbound"
	"github.com/verdemed/verdemed/domain/entity"
	"github.com/verdemed/verdemed/infrastructure/http/response"
	"github.com/verdemed/verdemed/infrastructure/service/logger"
	"github.com/verdemed/verdemed/pkg/apperror"
)

type RBACMiddleware struct {
	profiles outbound.ProfileRepository
	logger   logger.Logger
}

func NewRBACMiddleware(profiles outbound.ProfileRepository, logger logger.Logger) *RBACMiddleware {
	return &RBACMiddleware{
		profiles: profiles,
		logger:   logger,
	}
}

// RequireRole looks up the caller's profile role and rejects the request
// unless it matches one of the allowed roles. Runs after RequireAuth.
func (m *RBACMiddleware) RequireRole(allowed ...entity.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())
			if identity == nil {
				response.Unauthorized(w, "User not authenticated")
				return
			}

			role, err := m.profiles.FindRoleByID(r.Context(), identity.ID)
			if err != nil {
				// An authenticated identity with no profile row (saga left a
				// half-provisioned account) surfaces as not-found rather than
				// a permission denial.
				if errors.Is(err, outbound.ErrProfileNotFound) {
					response.WriteError(w, apperror.NewNotFound("User profile not found"))
					return
				}
				m.logger.Error(r.Context(), "role lookup failed during authorization", err, map[string]interface{}{
					"identityId": identity.ID,
				})
				response.WriteError(w, err)
				return
			}

			for _, want := range allowed {
				if role == want {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "Insufficient permissions")
		}
	}
}
