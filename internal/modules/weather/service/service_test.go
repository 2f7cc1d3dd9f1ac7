package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"shoresquad-server/internal/modules/weather/types"
)

type fakeFetcher struct {
	mu    sync.Mutex
	feeds types.Feeds
	err   error
	calls int
	block chan struct{}
}

func (f *fakeFetcher) FetchAll(ctx context.Context) (types.Feeds, error) {
	f.mu.Lock()
	f.calls++
	block := f.block
	feeds, err := f.feeds, f.err
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return feeds, err
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func liveFeeds() types.Feeds {
	return types.Feeds{
		Temperature: feed([]types.Station{{ID: "S1", Name: "Pasir Ris"}}, reading("S1", f(31.5))),
		Humidity:    feed(nil, reading("S1", f(60))),
		Wind:        feed(nil, reading("S1", f(4.2))),
	}
}

func TestRefresh_Success(t *testing.T) {
	svc := NewService(&fakeFetcher{feeds: liveFeeds()}, nil)

	panel := svc.Refresh(context.Background())
	if panel.Fallback || panel.Warning != "" {
		t.Fatalf("panel = %+v; want live panel", panel)
	}
	if len(panel.Cards) != 1 || panel.Cards[0].Condition != "Sunny & Warm" {
		t.Errorf("cards = %+v", panel.Cards)
	}

	stored, ok := svc.Panel()
	if !ok || len(stored.Cards) != 1 {
		t.Errorf("Panel() = %+v, %v; want stored live panel", stored, ok)
	}
}

func TestRefresh_FetchErrorFallsBack(t *testing.T) {
	svc := NewService(&fakeFetcher{err: errors.New("GET /wind-speed: unexpected status 500")}, nil)

	panel := svc.Refresh(context.Background())
	if !panel.Fallback || panel.Warning != FallbackWarning {
		t.Fatalf("panel = %+v; want fallback with warning", panel)
	}
	if len(panel.Cards) != 4 {
		t.Fatalf("fallback cards = %d; want exactly 4", len(panel.Cards))
	}
	for i, c := range panel.Cards {
		if c != fallbackCards[i] {
			t.Errorf("card[%d] = %+v; want %+v (no mixed render)", i, c, fallbackCards[i])
		}
	}
}

func TestRefresh_NoStationDataFallsBack(t *testing.T) {
	svc := NewService(&fakeFetcher{feeds: types.Feeds{}}, nil)
	if panel := svc.Refresh(context.Background()); !panel.Fallback {
		t.Errorf("panel = %+v; want fallback", panel)
	}
}

func TestPanel_LoadingUntilFirstRefresh(t *testing.T) {
	svc := NewService(&fakeFetcher{}, nil)
	if _, ok := svc.Panel(); ok {
		t.Error("Panel() ok = true before any refresh; want false")
	}
}

func TestRefresh_LaterCompletionWins(t *testing.T) {
	slow := &fakeFetcher{feeds: liveFeeds(), block: make(chan struct{})}
	svc := NewService(slow, nil)

	done := make(chan struct{})
	go func() {
		svc.Refresh(context.Background())
		close(done)
	}()

	// Wait until the slow cycle is in flight, then complete a failing cycle.
	deadline := time.Now().Add(2 * time.Second)
	for slow.callCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	svc.fetcher = &fakeFetcher{err: errors.New("boom")}
	if p := svc.Refresh(context.Background()); !p.Fallback {
		t.Fatalf("second refresh = %+v; want fallback", p)
	}

	close(slow.block)
	<-done

	panel, _ := svc.Panel()
	if panel.Fallback {
		t.Error("Panel() is the fallback; want the later-completing live panel")
	}
}

func TestStartAndStop(t *testing.T) {
	fetcher := &fakeFetcher{feeds: liveFeeds()}
	svc := NewService(fetcher, nil)

	svc.Start(context.Background(), time.Hour)
	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, ok := svc.Panel(); ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("initial refresh did not complete")
		}
		time.Sleep(5 * time.Millisecond)
	}
	svc.Stop()

	if fetcher.callCount() != 1 {
		t.Errorf("FetchAll calls = %d; want 1 (initial only)", fetcher.callCount())
	}
}

func TestStop_WaitsForInitialRefresh(t *testing.T) {
	fetcher := &fakeFetcher{feeds: liveFeeds(), block: make(chan struct{})}
	svc := NewService(fetcher, nil)
	svc.Start(context.Background(), time.Hour)

	stopped := make(chan struct{})
	go func() {
		svc.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop() returned while the initial refresh was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(fetcher.block)
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop() did not return after the initial refresh finished")
	}
	if _, ok := svc.Panel(); !ok {
		t.Error("initial refresh result was not stored before Stop returned")
	}
}

func TestStop_WithoutStart(t *testing.T) {
	NewService(&fakeFetcher{}, nil).Stop()
}
