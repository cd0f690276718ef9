package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doafacil/doafacil/internal/domain"
)

// StatsRepository runs the aggregate count queries backing the stats
// endpoint.
type StatsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new stats repository with a shared database
// connection.
func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Overview returns the top-level counters.
func (r *StatsRepository) Overview(ctx context.Context) (*domain.StatsOverview, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM institutions),
			(SELECT COUNT(*) FROM institutions WHERE is_active = TRUE),
			(SELECT COUNT(*) FROM institutions WHERE is_verified = TRUE AND is_active = TRUE),
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM donation_types)
	`

	var overview domain.StatsOverview
	err := r.db.QueryRowContext(ctx, query).Scan(
		&overview.TotalInstitutions,
		&overview.ActiveInstitutions,
		&overview.VerifiedInstitutions,
		&overview.TotalCategories,
		&overview.TotalDonationTypes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats overview: %w", err)
	}

	return &overview, nil
}

// ByState counts active institutions per state, most populous first.
func (r *StatsRepository) ByState(ctx context.Context) ([]domain.StateCount, error) {
	query := `
		SELECT state, COUNT(*)
		FROM institutions
		WHERE is_active = TRUE
		GROUP BY state
		ORDER BY COUNT(*) DESC, state ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count institutions by state: %w", err)
	}
	defer rows.Close()

	var counts []domain.StateCount
	for rows.Next() {
		var c domain.StateCount
		if err := rows.Scan(&c.State, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan state count: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating state counts: %w", err)
	}

	return counts, nil
}

// ByCategory counts active institutions per category, most linked first.
func (r *StatsRepository) ByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	query := `
		SELECT c.id, c.name, COUNT(*)
		FROM institution_categories ic
		JOIN categories c ON c.id = ic.category_id
		JOIN institutions i ON i.id = ic.institution_id
		WHERE i.is_active = TRUE
		GROUP BY c.id, c.name
		ORDER BY COUNT(*) DESC, c.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count institutions by category: %w", err)
	}
	defer rows.Close()

	var counts []domain.CategoryCount
	for rows.Next() {
		var c domain.CategoryCount
		if err := rows.Scan(&c.CategoryID, &c.CategoryName, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category counts: %w", err)
	}

	return counts, nil
}

// ByDonationType counts active institutions per donation type, most linked
// first.
func (r *StatsRepository) ByDonationType(ctx context.Context) ([]domain.DonationTypeCount, error) {
	query := `
		SELECT dt.id, dt.name, COUNT(*)
		FROM institution_donation_types idt
		JOIN donation_types dt ON dt.id = idt.donation_type_id
		JOIN institutions i ON i.id = idt.institution_id
		WHERE i.is_active = TRUE
		GROUP BY dt.id, dt.name
		ORDER BY COUNT(*) DESC, dt.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count institutions by donation type: %w", err)
	}
	defer rows.Close()

	var counts []domain.DonationTypeCount
	for rows.Next() {
		var c domain.DonationTypeCount
		if err := rows.Scan(&c.DonationTypeID, &c.DonationTypeName, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan donation type count: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating donation type counts: %w", err)
	}

	return counts, nil
}
