package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"shoresquad-server/internal/modules/weather/types"
)

// FallbackWarning is the user-visible notice attached to a fallback panel.
const FallbackWarning = "Live weather is unavailable right now. Showing a sample forecast."

type Fetcher interface {
	FetchAll(ctx context.Context) (types.Feeds, error)
}

// Service keeps the most recently rendered weather panel. Refresh cycles are
// never cancelled by newer ones; whichever completes last owns the panel.
type Service struct {
	fetcher Fetcher
	logger  *slog.Logger
	now     func() time.Time

	mu    sync.RWMutex
	panel *types.Panel

	cron    *cron.Cron
	initial sync.WaitGroup
}

func NewService(fetcher Fetcher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}
}

// Refresh runs one fetch cycle and stores the resulting panel. It never
// fails: any fetch error, or a cycle with no station data, yields the static
// fallback with a warning.
func (s *Service) Refresh(ctx context.Context) types.Panel {
	panel := s.build(ctx)

	s.mu.Lock()
	s.panel = &panel
	s.mu.Unlock()

	return panel
}

func (s *Service) build(ctx context.Context) types.Panel {
	now := s.now().UTC()

	feeds, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		s.logger.Warn("weather fetch failed, using fallback forecast", "error", err)
		return fallbackPanel(now)
	}

	cards := BuildCards(feeds)
	if len(cards) == 0 {
		s.logger.Warn("weather feeds carried no station data, using fallback forecast")
		return fallbackPanel(now)
	}

	s.logger.Info("weather refreshed", "stations", len(cards))
	return types.Panel{Cards: cards, UpdatedAt: now}
}

func fallbackPanel(now time.Time) types.Panel {
	return types.Panel{
		Cards:     FallbackCards(),
		Fallback:  true,
		Warning:   FallbackWarning,
		UpdatedAt: now,
	}
}

// Panel returns the last stored panel. ok is false until the first refresh
// has completed, which callers render as a loading placeholder.
func (s *Service) Panel() (panel types.Panel, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.panel == nil {
		return types.Panel{}, false
	}
	return *s.panel, true
}

// Start kicks off an immediate refresh in the background and schedules one
// every interval until Stop. Cancelling ctx aborts in-flight fetches but does
// not halt the schedule.
func (s *Service) Start(ctx context.Context, interval time.Duration) {
	s.cron = cron.New()
	s.cron.Schedule(cron.Every(interval), cron.FuncJob(func() {
		s.Refresh(ctx)
	}))
	s.cron.Start()

	s.initial.Add(1)
	go func() {
		defer s.initial.Done()
		s.Refresh(ctx)
	}()

	s.logger.Info("weather refresh scheduled", "interval", interval.String())
}

// Stop halts the schedule and waits for any running refresh, including the
// initial one, to return.
func (s *Service) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.initial.Wait()
}
