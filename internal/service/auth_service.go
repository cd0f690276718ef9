package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/doafacil/doafacil/internal/domain"
	"github.com/doafacil/doafacil/internal/repository"
)

// AuthService handles admin authentication for the approval workflow.
type AuthService struct {
	adminRepo *repository.AdminRepository
	jwtSecret []byte
}

// NewAuthService creates a new auth service.
func NewAuthService(adminRepo *repository.AdminRepository, jwtSecret string) *AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		jwtSecret: []byte(jwtSecret),
	}
}

// Login validates admin credentials and issues a JWT. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.TokenResponse, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateToken(admin)
}

func (s *AuthService) generateToken(admin *domain.Admin) (*domain.TokenResponse, error) {
	expiresIn := 3600 // 1 hour

	claims := jwt.MapClaims{
		"admin_id":   admin.ID.String(),
		"admin_name": admin.Name,
		"exp":        time.Now().Add(time.Duration(expiresIn) * time.Second).Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &domain.TokenResponse{
		AccessToken: signedToken,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}

// ValidateToken validates a JWT and returns the admin ID.
func (s *AuthService) ValidateToken(tokenString string) (*uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidCredentials
		}
		return s.jwtSecret, nil
	})

	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidCredentials
	}

	adminIDStr, ok := claims["admin_id"].(string)
	if !ok {
		return nil, ErrInvalidCredentials
	}

	adminID, err := uuid.Parse(adminIDStr)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return &adminID, nil
}
