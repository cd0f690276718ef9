package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/doafacil/doafacil/internal/repository"
	"github.com/doafacil/doafacil/internal/service"
)

func newAuthRouter(t *testing.T) (sqlmock.Sqlmock, *chi.Mux) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := service.NewAuthService(repository.NewAdminRepository(db), "test-secret")
	h := NewAuthHandler(svc)

	r := chi.NewRouter()
	r.Post("/auth/login", h.Login)
	return mock, r
}

func TestLogin_Success(t *testing.T) {
	mock, r := newAuthRouter(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT (.+) FROM admins").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
			AddRow(uuid.New(), "Administrator", "admin@doafacil.org.br", string(hash), time.Now()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/auth/login",
		strings.NewReader(`{"email": "admin@doafacil.org.br", "password": "secret"}`)))

	require.Equal(t, http.StatusOK, w.Code, "body=%s", w.Body.String())
	resp := decodeEnvelope(t, w)
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["accessToken"])
	assert.Equal(t, "Bearer", data["tokenType"])
	assert.Equal(t, float64(3600), data["expiresIn"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	mock, r := newAuthRouter(t)

	mock.ExpectQuery("SELECT (.+) FROM admins").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/auth/login",
		strings.NewReader(`{"email": "admin@doafacil.org.br", "password": "wrong"}`)))

	require.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, "Invalid credentials", resp["error"])
}

func TestLogin_MissingFields(t *testing.T) {
	_, r := newAuthRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{}`)))

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w)
	details := resp["details"].(map[string]interface{})
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
}
