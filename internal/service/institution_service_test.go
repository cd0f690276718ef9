package service

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doafacil/doafacil/internal/domain"
	"github.com/doafacil/doafacil/internal/repository"
)

var institutionTestColumns = []string{
	"id", "name", "description", "address", "city", "state", "phone", "email", "website",
	"cnpj", "responsible_name", "responsible_cpf", "operating_hours", "additional_info",
	"is_active", "is_verified", "created_at", "updated_at",
}

func newInstitutionService(t *testing.T) (*InstitutionService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewInstitutionService(
		repository.NewInstitutionRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewDonationTypeRepository(db),
	), mock
}

func createRequest(catID, dtID uuid.UUID) *domain.CreateInstitutionRequest {
	return &domain.CreateInstitutionRequest{
		Name:            "Instituto Criança Feliz",
		Description:     "Dedicada ao cuidado e educação de crianças.",
		Address:         "Rua das Flores, 123",
		City:            "São Paulo",
		State:           "SP",
		Phone:           "(11) 1234-5678",
		Email:           "contato@criancafeliz.org.br",
		CNPJ:            "12.345.678/0001-95",
		ResponsibleName: "Maria Silva Santos",
		ResponsibleCPF:  "123.456.789-09",
		CategoryIDs:     []string{catID.String()},
		DonationTypeIDs: []string{dtID.String()},
	}
}

func institutionRowWithID(id uuid.UUID) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(institutionTestColumns).AddRow(
		id, "Instituto Teste", "Uma instituição de teste com descrição.", "Rua Teste, 1", "São Paulo", "SP",
		"(11) 1234-5678", "contato@teste.org.br", nil,
		"12.345.678/0001-95", "Maria Silva", "123.456.789-09", nil, nil,
		true, false, now, now,
	)
}

func institutionRowWithCNPJ(cnpj string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(institutionTestColumns).AddRow(
		uuid.New(), "Instituto Teste", "Uma instituição de teste com descrição.", "Rua Teste, 1", "São Paulo", "SP",
		"(11) 1234-5678", "contato@teste.org.br", nil,
		cnpj, "Maria Silva", "123.456.789-09", nil, nil,
		true, false, now, now,
	)
}

func expectEmptyAssociations(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("FROM institution_categories").
		WillReturnRows(sqlmock.NewRows([]string{"institution_id", "id", "name", "description"}))
	mock.ExpectQuery("FROM institution_donation_types").
		WillReturnRows(sqlmock.NewRows([]string{"institution_id", "id", "name", "description"}))
}

func TestInstitutionService_Create(t *testing.T) {
	svc, mock := newInstitutionService(t)
	catID, dtID := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM categories WHERE id = ANY\\(\\$1\\)").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM donation_types WHERE id = ANY\\(\\$1\\)").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM institutions WHERE cnpj = \\$1").
		WithArgs("12.345.678/0001-95").
		WillReturnRows(sqlmock.NewRows(institutionTestColumns))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO institutions").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO institution_categories").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO institution_donation_types").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("FROM institution_categories").
		WillReturnRows(sqlmock.NewRows([]string{"institution_id", "id", "name", "description"}))
	mock.ExpectQuery("FROM institution_donation_types").
		WillReturnRows(sqlmock.NewRows([]string{"institution_id", "id", "name", "description"}))

	inst, err := svc.Create(context.Background(), createRequest(catID, dtID))
	require.NoError(t, err)
	assert.Equal(t, "Instituto Criança Feliz", inst.Name)
	assert.True(t, inst.IsActive)
	assert.False(t, inst.IsVerified)
	assert.Nil(t, inst.Website)
	assert.NotNil(t, inst.Categories)
	assert.NotNil(t, inst.DonationTypes)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstitutionService_Create_CollapsesDuplicateAssociationIDs(t *testing.T) {
	svc, mock := newInstitutionService(t)
	catID, dtID := uuid.New(), uuid.New()

	req := createRequest(catID, dtID)
	req.CategoryIDs = []string{catID.String(), catID.String()}
	req.DonationTypeIDs = []string{dtID.String(), dtID.String()}

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM categories WHERE id = ANY\\(\\$1\\)").
		WithArgs(pq.Array([]uuid.UUID{catID})).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM donation_types WHERE id = ANY\\(\\$1\\)").
		WithArgs(pq.Array([]uuid.UUID{dtID})).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM institutions WHERE cnpj = \\$1").
		WillReturnRows(sqlmock.NewRows(institutionTestColumns))

	// Exactly one row per association table; a second insert would hit the
	// primary key and report an unrelated CNPJ conflict.
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO institutions").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO institution_categories").
		WithArgs(sqlmock.AnyArg(), catID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO institution_donation_types").
		WithArgs(sqlmock.AnyArg(), dtID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectEmptyAssociations(mock)

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstitutionService_Create_DuplicateCNPJPreCheck(t *testing.T) {
	svc, mock := newInstitutionService(t)
	catID, dtID := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM categories").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM donation_types").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery("SELECT (.+) FROM institutions WHERE cnpj = \\$1").
		WillReturnRows(institutionRowWithCNPJ("12.345.678/0001-95"))

	_, err := svc.Create(context.Background(), createRequest(catID, dtID))
	assert.ErrorIs(t, err, ErrCNPJAlreadyRegistered)
}

func TestInstitutionService_Create_UniqueViolationLosesRace(t *testing.T) {
	svc, mock := newInstitutionService(t)
	catID, dtID := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM categories").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM donation_types").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM institutions WHERE cnpj = \\$1").
		WillReturnRows(sqlmock.NewRows(institutionTestColumns))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO institutions").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "institutions_cnpj_key"})
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), createRequest(catID, dtID))
	assert.ErrorIs(t, err, ErrCNPJAlreadyRegistered)
}

func TestInstitutionService_Create_UnknownCategory(t *testing.T) {
	svc, mock := newInstitutionService(t)
	catID, dtID := uuid.New(), uuid.New()

	// One id supplied, zero resolved.
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM categories").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := svc.Create(context.Background(), createRequest(catID, dtID))
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestInstitutionService_Create_UnknownDonationType(t *testing.T) {
	svc, mock := newInstitutionService(t)
	catID, dtID := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM categories").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM donation_types").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := svc.Create(context.Background(), createRequest(catID, dtID))
	assert.ErrorIs(t, err, ErrUnknownDonationType)
}

func TestInstitutionService_Get_NotFound(t *testing.T) {
	svc, mock := newInstitutionService(t)

	mock.ExpectQuery("SELECT (.+) FROM institutions WHERE id = \\$1").
		WillReturnRows(sqlmock.NewRows(institutionTestColumns))

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInstitutionService_Update_NotFound(t *testing.T) {
	svc, mock := newInstitutionService(t)

	mock.ExpectQuery("SELECT (.+) FROM institutions WHERE id = \\$1").
		WillReturnRows(sqlmock.NewRows(institutionTestColumns))

	_, err := svc.Update(context.Background(), uuid.New(), &domain.UpdateInstitutionRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInstitutionService_Update_CNPJConflict(t *testing.T) {
	svc, mock := newInstitutionService(t)
	id := uuid.New()
	otherCNPJ := "11.222.333/0001-81"

	mock.ExpectQuery("SELECT (.+) FROM institutions WHERE id = \\$1").
		WillReturnRows(institutionRowWithCNPJ("12.345.678/0001-95"))
	mock.ExpectQuery("SELECT (.+) FROM institutions WHERE cnpj = \\$1").
		WithArgs(otherCNPJ).
		WillReturnRows(institutionRowWithCNPJ(otherCNPJ))

	_, err := svc.Update(context.Background(), id, &domain.UpdateInstitutionRequest{CNPJ: &otherCNPJ})
	assert.ErrorIs(t, err, ErrCNPJAlreadyRegistered)
}

func TestInstitutionService_Update_SameCNPJSkipsConflictCheck(t *testing.T) {
	svc, mock := newInstitutionService(t)
	id := uuid.New()
	sameCNPJ := "12.345.678/0001-95"

	mock.ExpectQuery("SELECT (.+) FROM institutions WHERE id = \\$1").
		WillReturnRows(institutionRowWithCNPJ(sameCNPJ))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE institutions").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT (.+) FROM institutions WHERE id = \\$1").
		WillReturnRows(institutionRowWithCNPJ(sameCNPJ))
	expectEmptyAssociations(mock)

	inst, err := svc.Update(context.Background(), id, &domain.UpdateInstitutionRequest{CNPJ: &sameCNPJ})
	require.NoError(t, err)
	assert.Equal(t, sameCNPJ, inst.CNPJ)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstitutionService_Delete(t *testing.T) {
	svc, mock := newInstitutionService(t)
	id := uuid.New()

	mock.ExpectExec("UPDATE institutions SET is_active = FALSE").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, svc.Delete(context.Background(), id))
}

func TestInstitutionService_Delete_NotFound(t *testing.T) {
	svc, mock := newInstitutionService(t)
	id := uuid.New()

	mock.ExpectExec("UPDATE institutions SET is_active = FALSE").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, svc.Delete(context.Background(), id), ErrNotFound)
}

func TestInstitutionService_Search_FormatsAndPaginates(t *testing.T) {
	svc, mock := newInstitutionService(t)
	instID := uuid.New()
	catID := uuid.New()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM institutions").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery("SELECT (.+) FROM institutions").
		WillReturnRows(institutionRowWithID(instID))
	mock.ExpectQuery("FROM institution_categories").
		WillReturnRows(sqlmock.NewRows([]string{"institution_id", "id", "name", "description"}).
			AddRow(instID, catID, "Animais", nil))
	mock.ExpectQuery("FROM institution_donation_types").
		WillReturnRows(sqlmock.NewRows([]string{"institution_id", "id", "name", "description"}))

	result, err := svc.Search(context.Background(), domain.SearchInstitutionsParams{Page: 2, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Pagination.Page)
	assert.Equal(t, 10, result.Pagination.Limit)
	assert.Equal(t, 25, result.Pagination.Total)
	assert.Equal(t, 3, result.Pagination.TotalPages)

	require.Len(t, result.Data, 1)
	require.Len(t, result.Data[0].Categories, 1)
	assert.Equal(t, "Animais", result.Data[0].Categories[0].Name)
	assert.NotNil(t, result.Data[0].DonationTypes)
	assert.Empty(t, result.Data[0].DonationTypes)
}
