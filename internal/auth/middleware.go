// internal/auth/middleware.go
// JWT verification middleware. Token issuance lives in the auth service
// that fronts this API; this package only verifies and extracts claims.

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/yonah-prog/datedrop-app/internal/common/utils"
)

// Middleware protects routes behind a verified access token.
type Middleware struct {
	jwtSecret  string
	adminToken string
}

func NewMiddleware(jwtSecret, adminToken string) *Middleware {
	return &Middleware{jwtSecret: jwtSecret, adminToken: adminToken}
}

// Authenticate verifies the bearer token and puts the user id on the
// request context under "userID".
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.extractToken(r)
		if token == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Missing or invalid authorization header")
			return
		}

		claims, err := utils.ValidateJWT(token, m.jwtSecret)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		if claims.Type != "access" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token type")
			return
		}

		ctx := context.WithValue(r.Context(), "userID", claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates admin-only routes behind a shared operations token
// carried in X-Admin-Token. Use after Authenticate.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.adminToken == "" || r.Header.Get("X-Admin-Token") != m.adminToken {
			utils.RespondWithError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
