package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/repository"
)

// StatsCache stores statistics snapshots.
type StatsCache interface {
	GetStatistics(ctx context.Context) (*domain.Statistics, bool, error)
	SetStatistics(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error
	InvalidateStatistics(ctx context.Context) error
}

// StatisticsService computes registry counts, read through a cache.
type StatisticsService struct {
	owners repository.OwnerRepository
	pets   repository.PetRepository
	cache  StatsCache
	ttl    time.Duration
	logger *zap.Logger
}

// StatisticsDependencies bundles collaborators for the statistics service.
type StatisticsDependencies struct {
	OwnerRepo repository.OwnerRepository
	PetRepo   repository.PetRepository
	Cache     StatsCache
	TTL       time.Duration
	Logger    *zap.Logger
}

// NewStatisticsService constructs the service. A nil cache disables caching.
func NewStatisticsService(deps StatisticsDependencies) *StatisticsService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatisticsService{
		owners: deps.OwnerRepo,
		pets:   deps.PetRepo,
		cache:  deps.Cache,
		ttl:    deps.TTL,
		logger: logger,
	}
}

// Summary returns the current statistics. Cache failures fall back to the database.
func (s *StatisticsService) Summary(ctx context.Context) (*domain.Statistics, error) {
	if s.cache != nil && s.ttl > 0 {
		cached, ok, err := s.cache.GetStatistics(ctx)
		if err != nil {
			s.logger.Warn("statistics cache read failed", zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.ttl > 0 {
		if err := s.cache.SetStatistics(ctx, stats, s.ttl); err != nil {
			s.logger.Warn("statistics cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}

// Invalidate drops the cached snapshot.
func (s *StatisticsService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.InvalidateStatistics(ctx)
}

func (s *StatisticsService) compute(ctx context.Context) (*domain.Statistics, error) {
	owners, err := s.owners.Count(ctx)
	if err != nil {
		return nil, err
	}
	pets, err := s.pets.Count(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.pets.CountByType(ctx)
	if err != nil {
		return nil, err
	}

	byType := make(map[domain.PetType]int64, len(domain.PetTypes))
	for _, t := range domain.PetTypes {
		byType[t] = counts[t]
	}

	var average int64
	if owners > 0 {
		average = pets / owners
	}
	return &domain.Statistics{
		TotalOwners:         owners,
		TotalPets:           pets,
		PetsByType:          byType,
		AveragePetsPerOwner: average,
	}, nil
}
