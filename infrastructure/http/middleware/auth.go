package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/verdemed/verdemed/application/port/outbound"
	"github.com/verdemed/verdemed/domain/entity"
	"github.com/verdemed/verdemed/infrastructure/http/response"
)

type contextKey string

const identityKey contextKey = "auth_identity"

type AuthMiddleware struct {
	identityProvider outbound.IdentityProvider
}

func NewAuthMiddleware(identityProvider outbound.IdentityProvider) *AuthMiddleware {
	return &AuthMiddleware{
		identityProvider: identityProvider,
	}
}

// RequireAuth verifies the Bearer token against the identity provider and
// stores the resolved identity in the request context.
func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			response.Unauthorized(w, "Authorization header required")
			return
		}

		identity, err := m.identityProvider.VerifyToken(r.Context(), token)
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

// GetIdentity retrieves the authenticated identity from the request context.
func GetIdentity(ctx context.Context) *entity.Identity {
	if identity, ok := ctx.Value(identityKey).(*entity.Identity); ok {
		return identity
	}
	return nil
}
