package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"shoresquad-server/internal/store"
)

var (
	ErrCrewNotFound = errors.New("crew not found")
	ErrInvalidCrew  = errors.New("invalid crew")
)

const (
	EventCrewCreated = "crew_created"
	EventCrewJoined  = "crew_joined"

	nextCleanupLead = 7 * 24 * time.Hour
	dateLayout      = "2006-01-02"
)

// Event is published after a crew change has been persisted.
type Event struct {
	Event string     `json:"event"`
	Crew  store.Crew `json:"crew"`
	At    time.Time  `json:"at"`
}

// Publisher delivers crew events to whoever listens. Delivery is best effort.
type Publisher interface {
	PublishJSON(ctx context.Context, v any) error
}

// NewCrew is the create form.
type NewCrew struct {
	Name     string
	Location string
	Size     int
}

func (n NewCrew) validate() error {
	if strings.TrimSpace(n.Name) == "" || strings.TrimSpace(n.Location) == "" || n.Size <= 0 {
		return fmt.Errorf("%w: name, location and a positive size are required", ErrInvalidCrew)
	}
	return nil
}

// Service owns crew mutations. Every change is a read-modify-write of the
// whole collection, serialised by mu so sequential actions never lose an
// update within this process.
type Service struct {
	repo      store.Repository
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time

	mu sync.Mutex
}

// NewService builds the crew service. publisher may be nil.
func NewService(repo store.Repository, publisher Publisher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, publisher: publisher, logger: logger, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]store.Crew, error) {
	crews, err := s.repo.Crews(ctx)
	if err != nil {
		return nil, fmt.Errorf("list crews: %w", err)
	}
	return crews, nil
}

func (s *Service) Get(ctx context.Context, id int) (store.Crew, error) {
	crews, err := s.repo.Crews(ctx)
	if err != nil {
		return store.Crew{}, fmt.Errorf("get crew %d: %w", id, err)
	}
	i := indexOf(crews, id)
	if i < 0 {
		return store.Crew{}, fmt.Errorf("crew %d: %w", id, ErrCrewNotFound)
	}
	return crews[i], nil
}

// Create appends a crew with id max+1 (1 for an empty collection), a single
// member and a cleanup one week out.
func (s *Service) Create(ctx context.Context, n NewCrew) (store.Crew, error) {
	if err := n.validate(); err != nil {
		return store.Crew{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	crews, err := s.repo.Crews(ctx)
	if err != nil {
		return store.Crew{}, fmt.Errorf("create crew: %w", err)
	}

	crew := store.Crew{
		ID:          nextID(crews),
		Name:        strings.TrimSpace(n.Name),
		Location:    strings.TrimSpace(n.Location),
		Members:     1,
		NextCleanup: s.now().UTC().Add(nextCleanupLead).Format(dateLayout),
	}
	if err := s.repo.SetCrews(ctx, append(crews, crew)); err != nil {
		return store.Crew{}, fmt.Errorf("create crew: %w", err)
	}

	s.logger.Info("crew created", "crew_id", crew.ID, "name", crew.Name)
	s.publish(ctx, EventCrewCreated, crew)
	return crew, nil
}

// Join adds one member to the crew.
func (s *Service) Join(ctx context.Context, id int) (store.Crew, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	crews, err := s.repo.Crews(ctx)
	if err != nil {
		return store.Crew{}, fmt.Errorf("join crew %d: %w", id, err)
	}
	i := indexOf(crews, id)
	if i < 0 {
		return store.Crew{}, fmt.Errorf("crew %d: %w", id, ErrCrewNotFound)
	}
	crews[i].Members++
	if err := s.repo.SetCrews(ctx, crews); err != nil {
		return store.Crew{}, fmt.Errorf("join crew %d: %w", id, err)
	}

	s.logger.Info("crew joined", "crew_id", id, "members", crews[i].Members)
	s.publish(ctx, EventCrewJoined, crews[i])
	return crews[i], nil
}

func (s *Service) publish(ctx context.Context, event string, crew store.Crew) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishJSON(ctx, Event{Event: event, Crew: crew, At: s.now().UTC()})
	if err != nil {
		s.logger.Warn("crew event not published", "event", event, "crew_id", crew.ID, "error", err)
	}
}

func nextID(crews []store.Crew) int {
	highest := 0
	for _, c := range crews {
		if c.ID > highest {
			highest = c.ID
		}
	}
	return highest + 1
}

func indexOf(crews []store.Crew, id int) int {
	for i, c := range crews {
		if c.ID == id {
			return i
		}
	}
	return -1
}
