package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/doafacil/doafacil/internal/domain"
	"github.com/doafacil/doafacil/internal/repository"
)

// InstitutionService carries the business rules around institution intake,
// search, update and approval.
type InstitutionService struct {
	institutionRepo  *repository.InstitutionRepository
	categoryRepo     *repository.CategoryRepository
	donationTypeRepo *repository.DonationTypeRepository
}

// NewInstitutionService creates a new institution service.
func NewInstitutionService(
	institutionRepo *repository.InstitutionRepository,
	categoryRepo *repository.CategoryRepository,
	donationTypeRepo *repository.DonationTypeRepository,
) *InstitutionService {
	return &InstitutionService{
		institutionRepo:  institutionRepo,
		categoryRepo:     categoryRepo,
		donationTypeRepo: donationTypeRepo,
	}
}

// Search returns the paginated, formatted listing of active institutions
// matching the validated parameters.
func (s *InstitutionService) Search(ctx context.Context, params domain.SearchInstitutionsParams) (*domain.PaginatedInstitutions, error) {
	institutions, total, err := s.institutionRepo.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(institutions))
	for _, inst := range institutions {
		ids = append(ids, inst.ID)
	}

	categories, err := s.institutionRepo.CategoriesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	donationTypes, err := s.institutionRepo.DonationTypesFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	formatted := make([]*domain.PublicInstitution, 0, len(institutions))
	for _, inst := range institutions {
		formatted = append(formatted, domain.FormatInstitution(inst, categories[inst.ID], donationTypes[inst.ID]))
	}

	return &domain.PaginatedInstitutions{
		Data:       formatted,
		Pagination: domain.NewPagination(params.Page, params.Limit, total),
	}, nil
}

// Get fetches one institution by id, including the inactive and
// verification flags so an admin view can act on it.
func (s *InstitutionService) Get(ctx context.Context, id uuid.UUID) (*domain.PublicInstitution, error) {
	inst, err := s.institutionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, ErrNotFound
	}
	return s.format(ctx, inst)
}

// Create registers a new institution with its associations. The insert and
// the association rows share one transaction; a concurrent duplicate CNPJ
// loses against the unique constraint and is reported as the same conflict.
func (s *InstitutionService) Create(ctx context.Context, req *domain.CreateInstitutionRequest) (*domain.PublicInstitution, error) {
	categoryIDs, err := parseIDs(req.CategoryIDs)
	if err != nil {
		return nil, ErrUnknownCategory
	}
	donationTypeIDs, err := parseIDs(req.DonationTypeIDs)
	if err != nil {
		return nil, ErrUnknownDonationType
	}

	if err := s.resolveReferences(ctx, categoryIDs, donationTypeIDs); err != nil {
		return nil, err
	}

	existing, err := s.institutionRepo.FindByCNPJ(ctx, req.CNPJ)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCNPJAlreadyRegistered
	}

	now := time.Now()
	inst := &domain.Institution{
		ID:              uuid.New(),
		Name:            req.Name,
		Description:     req.Description,
		Address:         req.Address,
		City:            req.City,
		State:           req.State,
		Phone:           req.Phone,
		Email:           req.Email,
		Website:         optional(req.Website),
		CNPJ:            req.CNPJ,
		ResponsibleName: req.ResponsibleName,
		ResponsibleCPF:  req.ResponsibleCPF,
		OperatingHours:  optional(req.OperatingHours),
		AdditionalInfo:  optional(req.AdditionalInfo),
		IsActive:        true,
		IsVerified:      false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.institutionRepo.Create(ctx, inst, categoryIDs, donationTypeIDs); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCNPJAlreadyRegistered
		}
		return nil, err
	}

	return s.format(ctx, inst)
}

// Update applies a partial update. Only supplied fields change; a supplied
// id list replaces the whole association set within the update transaction.
func (s *InstitutionService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateInstitutionRequest) (*domain.PublicInstitution, error) {
	inst, err := s.institutionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, ErrNotFound
	}

	var categoryIDs, donationTypeIDs []uuid.UUID
	if req.CategoryIDs != nil {
		if categoryIDs, err = parseIDs(*req.CategoryIDs); err != nil {
			return nil, ErrUnknownCategory
		}
	}
	if req.DonationTypeIDs != nil {
		if donationTypeIDs, err = parseIDs(*req.DonationTypeIDs); err != nil {
			return nil, ErrUnknownDonationType
		}
	}
	if err := s.resolveReferences(ctx, categoryIDs, donationTypeIDs); err != nil {
		return nil, err
	}

	if req.CNPJ != nil && *req.CNPJ != inst.CNPJ {
		existing, err := s.institutionRepo.FindByCNPJ(ctx, *req.CNPJ)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrCNPJAlreadyRegistered
		}
	}

	applyUpdate(inst, req)

	if err := s.institutionRepo.Update(ctx, inst, categoryIDs, donationTypeIDs); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCNPJAlreadyRegistered
		}
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete soft deletes an institution. The row and its associations remain.
func (s *InstitutionService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.institutionRepo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// SetVerified flips the admin-approval flag and returns the refreshed
// record.
func (s *InstitutionService) SetVerified(ctx context.Context, id uuid.UUID, verified bool) (*domain.PublicInstitution, error) {
	updated, err := s.institutionRepo.SetVerified(ctx, id, verified)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

// resolveReferences verifies every supplied category and donation type id
// exists; any unresolved id blocks the whole write.
func (s *InstitutionService) resolveReferences(ctx context.Context, categoryIDs, donationTypeIDs []uuid.UUID) error {
	if len(categoryIDs) > 0 {
		count, err := s.categoryRepo.CountByIDs(ctx, categoryIDs)
		if err != nil {
			return err
		}
		if count != len(categoryIDs) {
			return ErrUnknownCategory
		}
	}
	if len(donationTypeIDs) > 0 {
		count, err := s.donationTypeRepo.CountByIDs(ctx, donationTypeIDs)
		if err != nil {
			return err
		}
		if count != len(donationTypeIDs) {
			return ErrUnknownDonationType
		}
	}
	return nil
}

func (s *InstitutionService) format(ctx context.Context, inst *domain.Institution) (*domain.PublicInstitution, error) {
	categories, err := s.institutionRepo.CategoriesFor(ctx, []uuid.UUID{inst.ID})
	if err != nil {
		return nil, err
	}
	donationTypes, err := s.institutionRepo.DonationTypesFor(ctx, []uuid.UUID{inst.ID})
	if err != nil {
		return nil, err
	}
	return domain.FormatInstitution(inst, categories[inst.ID], donationTypes[inst.ID]), nil
}

func applyUpdate(inst *domain.Institution, req *domain.UpdateInstitutionRequest) {
	if req.Name != nil {
		inst.Name = *req.Name
	}
	if req.Description != nil {
		inst.Description = *req.Description
	}
	if req.Address != nil {
		inst.Address = *req.Address
	}
	if req.City != nil {
		inst.City = *req.City
	}
	if req.State != nil {
		inst.State = *req.State
	}
	if req.Phone != nil {
		inst.Phone = *req.Phone
	}
	if req.Email != nil {
		inst.Email = *req.Email
	}
	if req.Website != nil {
		inst.Website = optional(*req.Website)
	}
	if req.CNPJ != nil {
		inst.CNPJ = *req.CNPJ
	}
	if req.ResponsibleName != nil {
		inst.ResponsibleName = *req.ResponsibleName
	}
	if req.ResponsibleCPF != nil {
		inst.ResponsibleCPF = *req.ResponsibleCPF
	}
	if req.OperatingHours != nil {
		inst.OperatingHours = optional(*req.OperatingHours)
	}
	if req.AdditionalInfo != nil {
		inst.AdditionalInfo = optional(*req.AdditionalInfo)
	}
}

// parseIDs parses a request id list and collapses duplicates. A repeated id
// would otherwise trip the association primary key and surface as an
// unrelated conflict.
func parseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return unique(ids), nil
}

func unique(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
