package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/doafacil/doafacil/internal/domain"
)

// DonationTypeRepository handles donation type persistence.
type DonationTypeRepository struct {
	db *sql.DB
}

// NewDonationTypeRepository creates a new donation type repository with a
// shared database connection.
func NewDonationTypeRepository(db *sql.DB) *DonationTypeRepository {
	return &DonationTypeRepository{db: db}
}

// List lists all donation types ordered by name.
func (r *DonationTypeRepository) List(ctx context.Context) ([]domain.DonationType, error) {
	query := `
		SELECT id, name, description, created_at
		FROM donation_types
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list donation types: %w", err)
	}
	defer rows.Close()

	var donationTypes []domain.DonationType
	for rows.Next() {
		var donationType domain.DonationType
		if err := rows.Scan(&donationType.ID, &donationType.Name, &donationType.Description, &donationType.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan donation type: %w", err)
		}
		donationTypes = append(donationTypes, donationType)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating donation types: %w", err)
	}

	return donationTypes, nil
}

// FindByName finds a donation type by its unique name.
func (r *DonationTypeRepository) FindByName(ctx context.Context, name string) (*domain.DonationType, error) {
	query := `
		SELECT id, name, description, created_at
		FROM donation_types
		WHERE name = $1
	`

	var donationType domain.DonationType
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&donationType.ID,
		&donationType.Name,
		&donationType.Description,
		&donationType.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find donation type: %w", err)
	}

	return &donationType, nil
}

// Create inserts a new donation type. A duplicate name surfaces as a
// unique constraint violation from the database.
func (r *DonationTypeRepository) Create(ctx context.Context, donationType *domain.DonationType) error {
	query := `
		INSERT INTO donation_types (id, name, description, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query,
		donationType.ID,
		donationType.Name,
		donationType.Description,
		donationType.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create donation type: %w", err)
	}

	return nil
}

// CountByIDs counts how many of the given ids resolve to existing donation
// types.
func (r *DonationTypeRepository) CountByIDs(ctx context.Context, ids []uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM donation_types WHERE id = ANY($1)`

	var count int
	if err := r.db.QueryRowContext(ctx, query, pq.Array(ids)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count donation types: %w", err)
	}

	return count, nil
}
