package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shoresquad-server/internal/store"
)

var ErrBeachNotFound = errors.New("beach not found")

type BeachService interface {
	List(ctx context.Context, query string) ([]store.Beach, error)
	Get(ctx context.Context, id int) (store.Beach, error)
}

type beachServiceImpl struct {
	repo store.Repository
}

func NewBeachService(repo store.Repository) BeachService {
	return &beachServiceImpl{repo: repo}
}

// List returns the beaches whose name or location contains query, ignoring
// case. An empty query returns every beach.
func (s *beachServiceImpl) List(ctx context.Context, query string) ([]store.Beach, error) {
	beaches, err := s.repo.Beaches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list beaches: %w", err)
	}
	return Filter(beaches, query), nil
}

func (s *beachServiceImpl) Get(ctx context.Context, id int) (store.Beach, error) {
	beaches, err := s.repo.Beaches(ctx)
	if err != nil {
		return store.Beach{}, fmt.Errorf("get beach %d: %w", id, err)
	}
	for _, b := range beaches {
		if b.ID == id {
			return b, nil
		}
	}
	return store.Beach{}, fmt.Errorf("beach %d: %w", id, ErrBeachNotFound)
}

func Filter(beaches []store.Beach, query string) []store.Beach {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]store.Beach, 0, len(beaches))
	for _, b := range beaches {
		if q == "" ||
			strings.Contains(strings.ToLower(b.Name), q) ||
			strings.Contains(strings.ToLower(b.Location), q) {
			out = append(out, b)
		}
	}
	return out
}
