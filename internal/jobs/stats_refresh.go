package jobs

import (
	"context"
	"time"

	"bizforge/internal/caching"
	"bizforge/internal/repositories"

	"go.uber.org/zap"
)

const statsCacheTTL = 10 * time.Minute

// StatsRefreshService precomputes per-organization record counts by
// resource type into the cache, so dashboard summaries do not hit the
// record store on every page load.
type StatsRefreshService struct {
	orgRepo    repositories.OrganizationRepository
	recordRepo repositories.RecordRepository
	cacheSvc   caching.CacheService
}

func NewStatsRefreshService(orgRepo repositories.OrganizationRepository, recordRepo repositories.RecordRepository, cacheSvc caching.CacheService) *StatsRefreshService {
	return &StatsRefreshService{
		orgRepo:    orgRepo,
		recordRepo: recordRepo,
		cacheSvc:   cacheSvc,
	}
}

// RefreshAll recomputes and caches record stats for every organization.
func (s *StatsRefreshService) RefreshAll(ctx context.Context) error {
	orgs, err := s.orgRepo.List(ctx, 1000, 0)
	if err != nil {
		zap.L().Error("stats refresh: listing organizations failed", zap.Error(err))
		return err
	}

	for _, org := range orgs {
		counts, err := s.recordRepo.CountByType(ctx, org.ID)
		if err != nil {
			zap.L().Warn("stats refresh failed for organization",
				zap.String("slug", org.Slug), zap.Error(err))
			continue
		}
		if err := s.cacheSvc.SetResourceStats(ctx, org.ID, counts, statsCacheTTL); err != nil {
			zap.L().Warn("stats cache write failed",
				zap.String("slug", org.Slug), zap.Error(err))
		}
	}
	return nil
}
