package service

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/doafacil/doafacil/internal/repository"
)

var adminTestColumns = []string{"id", "name", "email", "password_hash", "created_at"}

func newAuthService(t *testing.T) (*AuthService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewAuthService(repository.NewAdminRepository(db), "test-secret"), mock
}

func adminRow(t *testing.T, id uuid.UUID, email, password string) *sqlmock.Rows {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return sqlmock.NewRows(adminTestColumns).
		AddRow(id, "Administrator", email, string(hash), time.Now())
}

func TestAuthService_Login(t *testing.T) {
	svc, mock := newAuthService(t)
	adminID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM admins\\s+WHERE email = \\$1").
		WithArgs("admin@doafacil.org.br").
		WillReturnRows(adminRow(t, adminID, "admin@doafacil.org.br", "secret"))

	token, err := svc.Login(context.Background(), "admin@doafacil.org.br", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, 3600, token.ExpiresIn)

	parsedID, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, adminID, *parsedID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery("SELECT (.+) FROM admins").
		WillReturnRows(adminRow(t, uuid.New(), "admin@doafacil.org.br", "secret"))

	_, err := svc.Login(context.Background(), "admin@doafacil.org.br", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery("SELECT (.+) FROM admins").
		WillReturnRows(sqlmock.NewRows(adminTestColumns))

	_, err := svc.Login(context.Background(), "nobody@doafacil.org.br", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery("SELECT (.+) FROM admins").
		WillReturnRows(adminRow(t, uuid.New(), "admin@doafacil.org.br", "secret"))

	token, err := svc.Login(context.Background(), "admin@doafacil.org.br", "secret")
	require.NoError(t, err)

	other := NewAuthService(nil, "different-secret")
	_, err = other.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
