package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doafacil/doafacil/internal/service"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func adminClaims(adminID uuid.UUID) jwt.MapClaims {
	return jwt.MapClaims{
		"admin_id":   adminID.String(),
		"admin_name": "Administrator",
		"exp":        time.Now().Add(time.Hour).Unix(),
		"iat":        time.Now().Unix(),
	}
}

func requireAdmin(secret string) http.Handler {
	m := NewAuthMiddleware(service.NewAuthService(nil, secret))
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return m.RequireAdmin(next)
}

func TestRequireAdmin_ValidToken(t *testing.T) {
	adminID := uuid.New()
	m := NewAuthMiddleware(service.NewAuthService(nil, "test-secret"))

	var captured *uuid.UUID
	handler := m.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetAdminID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("PATCH", "/institutions/x/verify", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", adminClaims(adminID)))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, captured)
	assert.Equal(t, adminID, *captured)
}

func TestRequireAdmin_MissingHeader(t *testing.T) {
	handler := requireAdmin("test-secret")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("DELETE", "/institutions/x", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin_NotBearer(t *testing.T) {
	handler := requireAdmin("test-secret")

	req := httptest.NewRequest("DELETE", "/institutions/x", nil)
	req.Header.Set("Authorization", "Basic abc123")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin_WrongSecret(t *testing.T) {
	handler := requireAdmin("test-secret")

	req := httptest.NewRequest("DELETE", "/institutions/x", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", adminClaims(uuid.New())))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin_ExpiredToken(t *testing.T) {
	handler := requireAdmin("test-secret")

	claims := adminClaims(uuid.New())
	claims["exp"] = time.Now().Add(-time.Minute).Unix()

	req := httptest.NewRequest("DELETE", "/institutions/x", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", claims))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetAdminID_AbsentReturnsNil(t *testing.T) {
	assert.Nil(t, GetAdminID(context.Background()))
}
