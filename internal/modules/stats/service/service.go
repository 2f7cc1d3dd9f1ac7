package service

import (
	"context"
	"fmt"

	"shoresquad-server/internal/store"
)

type StatsService interface {
	Current(ctx context.Context) (store.Stats, error)
}

type statsServiceImpl struct {
	repo store.Repository
}

func NewStatsService(repo store.Repository) StatsService {
	return &statsServiceImpl{repo: repo}
}

// Current returns the seeded counters with Crews replaced by the live crew
// count. The other counters are reported as stored and never recomputed.
func (s *statsServiceImpl) Current(ctx context.Context) (store.Stats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return store.Stats{}, fmt.Errorf("read stats: %w", err)
	}
	crews, err := s.repo.Crews(ctx)
	if err != nil {
		return store.Stats{}, fmt.Errorf("count crews: %w", err)
	}
	stats.Crews = len(crews)
	return stats, nil
}
