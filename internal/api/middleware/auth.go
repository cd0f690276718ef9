package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/doafacil/doafacil/internal/service"
)

// Context keys
type contextKey string

const (
	// AdminIDKey carries the authenticated admin's ID.
	AdminIDKey contextKey = "admin_id"
)

// AuthMiddleware guards the administrative endpoints.
type AuthMiddleware struct {
	authService *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware.
func NewAuthMiddleware(authService *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// RequireAdmin validates the Bearer token and stores the admin ID in the
// request context.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, `{"success": false, "error": "Unauthorized"}`, http.StatusUnauthorized)
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		adminID, err := m.authService.ValidateToken(token)
		if err != nil || adminID == nil {
			http.Error(w, `{"success": false, "error": "Unauthorized"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), AdminIDKey, adminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAdminID extracts the admin ID from context.
func GetAdminID(ctx context.Context) *uuid.UUID {
	if id, ok := ctx.Value(AdminIDKey).(*uuid.UUID); ok {
		return id
	}
	return nil
}
