package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/doafacil/doafacil/internal/domain"
	"github.com/doafacil/doafacil/internal/repository"
)

// CatalogService manages the reference data institutions are tagged with:
// categories and donation types.
type CatalogService struct {
	categoryRepo     *repository.CategoryRepository
	donationTypeRepo *repository.DonationTypeRepository
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(categoryRepo *repository.CategoryRepository, donationTypeRepo *repository.DonationTypeRepository) *CatalogService {
	return &CatalogService{
		categoryRepo:     categoryRepo,
		donationTypeRepo: donationTypeRepo,
	}
}

// ListCategories lists all categories ordered by name.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.List(ctx)
}

// CreateCategory creates a category with a unique name. A duplicate, found
// either by the pre-check or by the unique constraint under a concurrent
// race, is reported as the same conflict.
func (s *CatalogService) CreateCategory(ctx context.Context, req *domain.CreateCategoryRequest) (*domain.Category, error) {
	existing, err := s.categoryRepo.FindByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrNameAlreadyExists
	}

	category := &domain.Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: optional(req.Description),
		CreatedAt:   time.Now(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrNameAlreadyExists
		}
		return nil, err
	}

	return category, nil
}

// ListDonationTypes lists all donation types ordered by name.
func (s *CatalogService) ListDonationTypes(ctx context.Context) ([]domain.DonationType, error) {
	return s.donationTypeRepo.List(ctx)
}

// CreateDonationType creates a donation type with a unique name.
func (s *CatalogService) CreateDonationType(ctx context.Context, req *domain.CreateDonationTypeRequest) (*domain.DonationType, error) {
	existing, err := s.donationTypeRepo.FindByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrNameAlreadyExists
	}

	donationType := &domain.DonationType{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: optional(req.Description),
		CreatedAt:   time.Now(),
	}

	if err := s.donationTypeRepo.Create(ctx, donationType); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrNameAlreadyExists
		}
		return nil, err
	}

	return donationType, nil
}
