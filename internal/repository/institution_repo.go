package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/doafacil/doafacil/internal/domain"
)

// institutionColumns is the select list shared by every institution query.
const institutionColumns = `id, name, description, address, city, state, phone, email, website,
	       cnpj, responsible_name, responsible_cpf, operating_hours, additional_info,
	       is_active, is_verified, created_at, updated_at`

// InstitutionRepository handles institution persistence.
type InstitutionRepository struct {
	db *sql.DB
}

// NewInstitutionRepository creates a new institution repository with a
// shared database connection.
func NewInstitutionRepository(db *sql.DB) *InstitutionRepository {
	return &InstitutionRepository{db: db}
}

func scanInstitution(row interface{ Scan(...interface{}) error }) (*domain.Institution, error) {
	var inst domain.Institution
	err := row.Scan(
		&inst.ID,
		&inst.Name,
		&inst.Description,
		&inst.Address,
		&inst.City,
		&inst.State,
		&inst.Phone,
		&inst.Email,
		&inst.Website,
		&inst.CNPJ,
		&inst.ResponsibleName,
		&inst.ResponsibleCPF,
		&inst.OperatingHours,
		&inst.AdditionalInfo,
		&inst.IsActive,
		&inst.IsVerified,
		&inst.CreatedAt,
		&inst.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

// FindByID finds an institution by its ID, regardless of active flag.
func (r *InstitutionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Institution, error) {
	query := fmt.Sprintf(`SELECT %s FROM institutions WHERE id = $1`, institutionColumns)

	inst, err := scanInstitution(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find institution: %w", err)
	}

	return inst, nil
}

// FindByCNPJ finds an institution by its CNPJ.
func (r *InstitutionRepository) FindByCNPJ(ctx context.Context, cnpj string) (*domain.Institution, error) {
	query := fmt.Sprintf(`SELECT %s FROM institutions WHERE cnpj = $1`, institutionColumns)

	inst, err := scanInstitution(r.db.QueryRowContext(ctx, query, cnpj))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find institution by cnpj: %w", err)
	}

	return inst, nil
}

// Search returns the page of active institutions matching the parameters,
// ordered by name (id as the stable tie-break), together with the total
// match count.
func (r *InstitutionRepository) Search(ctx context.Context, params domain.SearchInstitutionsParams) ([]*domain.Institution, int, error) {
	filter := buildSearchFilter(params)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM institutions WHERE %s`, filter.where)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, filter.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count institutions: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM institutions
		WHERE %s
		ORDER BY name ASC, id ASC
		LIMIT $%d OFFSET $%d
	`, institutionColumns, filter.where, len(filter.args)+1, len(filter.args)+2)

	args := append(filter.args, filter.limit, filter.offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search institutions: %w", err)
	}
	defer rows.Close()

	var institutions []*domain.Institution
	for rows.Next() {
		inst, err := scanInstitution(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan institution: %w", err)
		}
		institutions = append(institutions, inst)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating institutions: %w", err)
	}

	return institutions, total, nil
}

// Create inserts an institution together with its category and donation
// type associations in a single transaction.
func (r *InstitutionRepository) Create(ctx context.Context, inst *domain.Institution, categoryIDs, donationTypeIDs []uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO institutions (id, name, description, address, city, state, phone, email, website,
		                          cnpj, responsible_name, responsible_cpf, operating_hours, additional_info,
		                          is_active, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err = tx.ExecContext(ctx, query,
		inst.ID,
		inst.Name,
		inst.Description,
		inst.Address,
		inst.City,
		inst.State,
		inst.Phone,
		inst.Email,
		inst.Website,
		inst.CNPJ,
		inst.ResponsibleName,
		inst.ResponsibleCPF,
		inst.OperatingHours,
		inst.AdditionalInfo,
		inst.IsActive,
		inst.IsVerified,
		inst.CreatedAt,
		inst.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create institution: %w", err)
	}

	if err := insertAssociations(ctx, tx, "institution_categories", "category_id", inst.ID, categoryIDs); err != nil {
		return err
	}
	if err := insertAssociations(ctx, tx, "institution_donation_types", "donation_type_id", inst.ID, donationTypeIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit institution create: %w", err)
	}

	return nil
}

// Update writes the full institution row and, when a set is non-nil,
// replaces the corresponding association rows wholesale. Everything runs in
// one transaction so no reader observes an empty association set.
func (r *InstitutionRepository) Update(ctx context.Context, inst *domain.Institution, categoryIDs, donationTypeIDs []uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE institutions
		SET name = $2, description = $3, address = $4, city = $5, state = $6,
		    phone = $7, email = $8, website = $9, cnpj = $10,
		    responsible_name = $11, responsible_cpf = $12,
		    operating_hours = $13, additional_info = $14, updated_at = NOW()
		WHERE id = $1
	`

	_, err = tx.ExecContext(ctx, query,
		inst.ID,
		inst.Name,
		inst.Description,
		inst.Address,
		inst.City,
		inst.State,
		inst.Phone,
		inst.Email,
		inst.Website,
		inst.CNPJ,
		inst.ResponsibleName,
		inst.ResponsibleCPF,
		inst.OperatingHours,
		inst.AdditionalInfo,
	)
	if err != nil {
		return fmt.Errorf("failed to update institution: %w", err)
	}

	if categoryIDs != nil {
		if err := replaceAssociations(ctx, tx, "institution_categories", "category_id", inst.ID, categoryIDs); err != nil {
			return err
		}
	}
	if donationTypeIDs != nil {
		if err := replaceAssociations(ctx, tx, "institution_donation_types", "donation_type_id", inst.ID, donationTypeIDs); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit institution update: %w", err)
	}

	return nil
}

// SoftDelete marks an institution inactive. Returns false when no row
// matched.
func (r *InstitutionRepository) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `UPDATE institutions SET is_active = FALSE, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to soft delete institution: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read soft delete result: %w", err)
	}

	return affected > 0, nil
}

// SetVerified flips the admin-approval flag. Returns false when no row
// matched.
func (r *InstitutionRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) (bool, error) {
	query := `UPDATE institutions SET is_verified = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, verified)
	if err != nil {
		return false, fmt.Errorf("failed to set verification flag: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read verification result: %w", err)
	}

	return affected > 0, nil
}

// CategoriesFor loads the categories associated with each of the given
// institutions in one query.
func (r *InstitutionRepository) CategoriesFor(ctx context.Context, institutionIDs []uuid.UUID) (map[uuid.UUID][]domain.NamedRef, error) {
	query := `
		SELECT ic.institution_id, c.id, c.name, c.description
		FROM institution_categories ic
		JOIN categories c ON c.id = ic.category_id
		WHERE ic.institution_id = ANY($1)
		ORDER BY c.name ASC
	`
	return r.loadAssociations(ctx, query, institutionIDs)
}

// DonationTypesFor loads the donation types associated with each of the
// given institutions in one query.
func (r *InstitutionRepository) DonationTypesFor(ctx context.Context, institutionIDs []uuid.UUID) (map[uuid.UUID][]domain.NamedRef, error) {
	query := `
		SELECT idt.institution_id, dt.id, dt.name, dt.description
		FROM institution_donation_types idt
		JOIN donation_types dt ON dt.id = idt.donation_type_id
		WHERE idt.institution_id = ANY($1)
		ORDER BY dt.name ASC
	`
	return r.loadAssociations(ctx, query, institutionIDs)
}

func (r *InstitutionRepository) loadAssociations(ctx context.Context, query string, institutionIDs []uuid.UUID) (map[uuid.UUID][]domain.NamedRef, error) {
	result := make(map[uuid.UUID][]domain.NamedRef, len(institutionIDs))
	if len(institutionIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.QueryContext(ctx, query, pq.Array(institutionIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load associations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var institutionID uuid.UUID
		var ref domain.NamedRef
		if err := rows.Scan(&institutionID, &ref.ID, &ref.Name, &ref.Description); err != nil {
			return nil, fmt.Errorf("failed to scan association: %w", err)
		}
		result[institutionID] = append(result[institutionID], ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating associations: %w", err)
	}

	return result, nil
}

func insertAssociations(ctx context.Context, tx *sql.Tx, table, column string, institutionID uuid.UUID, ids []uuid.UUID) error {
	query := fmt.Sprintf(`INSERT INTO %s (institution_id, %s) VALUES ($1, $2)`, table, column)
	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, query, institutionID, id); err != nil {
			return fmt.Errorf("failed to link %s: %w", column, err)
		}
	}
	return nil
}

func replaceAssociations(ctx context.Context, tx *sql.Tx, table, column string, institutionID uuid.UUID, ids []uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE institution_id = $1`, table)
	if _, err := tx.ExecContext(ctx, query, institutionID); err != nil {
		return fmt.Errorf("failed to clear %s links: %w", column, err)
	}
	return insertAssociations(ctx, tx, table, column, institutionID, ids)
}
