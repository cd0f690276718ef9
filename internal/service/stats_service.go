package service

import (
	"context"

	"github.com/doafacil/doafacil/internal/domain"
	"github.com/doafacil/doafacil/internal/repository"
)

// StatsService assembles the aggregate statistics response.
type StatsService struct {
	statsRepo *repository.StatsRepository
}

// NewStatsService creates a new stats service.
func NewStatsService(statsRepo *repository.StatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

// Get returns the overview counters and the per-state, per-category and
// per-donation-type breakdowns over active institutions.
func (s *StatsService) Get(ctx context.Context) (*domain.Stats, error) {
	overview, err := s.statsRepo.Overview(ctx)
	if err != nil {
		return nil, err
	}

	byState, err := s.statsRepo.ByState(ctx)
	if err != nil {
		return nil, err
	}

	byCategory, err := s.statsRepo.ByCategory(ctx)
	if err != nil {
		return nil, err
	}

	byDonationType, err := s.statsRepo.ByDonationType(ctx)
	if err != nil {
		return nil, err
	}

	if byState == nil {
		byState = []domain.StateCount{}
	}
	if byCategory == nil {
		byCategory = []domain.CategoryCount{}
	}
	if byDonationType == nil {
		byDonationType = []domain.DonationTypeCount{}
	}

	return &domain.Stats{
		Overview:                   *overview,
		InstitutionsByState:        byState,
		InstitutionsByCategory:     byCategory,
		InstitutionsByDonationType: byDonationType,
	}, nil
}
