package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doafacil/doafacil/internal/domain"
)

// AdminRepository handles admin account persistence.
type AdminRepository struct {
	db *sql.DB
}

// NewAdminRepository creates a new admin repository with a shared database
// connection.
func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// FindByEmail finds an admin by email.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM admins
		WHERE email = $1
	`

	var admin domain.Admin
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&admin.ID,
		&admin.Name,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}

	return &admin, nil
}
