package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	beachservice "shoresquad-server/internal/modules/beaches/service"
	"shoresquad-server/internal/modules/weather/types"
	"shoresquad-server/internal/store"
	"shoresquad-server/internal/views"
)

type stubWeather struct {
	panel  types.Panel
	loaded bool
}

func (s stubWeather) Panel() (types.Panel, bool) { return s.panel, s.loaded }

type stubBeaches struct {
	beaches []store.Beach
	err     error
}

func (s stubBeaches) List(ctx context.Context, q string) ([]store.Beach, error) {
	return beachservice.Filter(s.beaches, q), s.err
}

func (s stubBeaches) Get(ctx context.Context, id int) (store.Beach, error) {
	return store.Beach{}, beachservice.ErrBeachNotFound
}

type stubCrews struct {
	crews []store.Crew
	err   error
}

func (s stubCrews) List(ctx context.Context) ([]store.Crew, error) { return s.crews, s.err }

type stubStats struct{ stats store.Stats }

func (s stubStats) Current(ctx context.Context) (store.Stats, error) { return s.stats, nil }

type stubMaps struct {
	absent bool
	got    *[]store.Beach
}

func (s stubMaps) Build(beaches []store.Beach) (*views.MapData, bool) {
	if s.got != nil {
		*s.got = beaches
	}
	if s.absent {
		return nil, false
	}
	return &views.MapData{Zoom: 10, Markers: []views.Marker{{Title: "Next Cleanup: Dockweiler State Beach", OpenPopup: true}}}, true
}

var beaches = []store.Beach{
	{ID: 1, Name: "Santa Monica Beach", Location: "Santa Monica, CA"},
	{ID: 2, Name: "Malibu Beach", Location: "Malibu, CA"},
}

func deps() Deps {
	return Deps{
		Weather: stubWeather{},
		Beaches: stubBeaches{beaches: beaches},
		Maps:    stubMaps{},
		Crews:   stubCrews{crews: []store.Crew{{ID: 1, Name: "Beach Warriors"}}},
		Stats:   stubStats{stats: store.Stats{Cleanups: 47, Crews: 1}},
	}
}

func Test_handleIndex(t *testing.T) {
	t.Run("returns 404 when path is not /", func(t *testing.T) {
		ctrl := NewHomeController(deps(), nil).(*homeControllerImpl)
		rec := httptest.NewRecorder()

		ctrl.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/beaches", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d; want %d", rec.Code, http.StatusNotFound)
		}
	})

	if err := views.LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates(): %v", err)
	}

	t.Run("renders every section", func(t *testing.T) {
		ctrl := NewHomeController(deps(), nil).(*homeControllerImpl)
		rec := httptest.NewRecorder()

		ctrl.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d; want 200", rec.Code)
		}
		doc, err := goquery.NewDocumentFromReader(rec.Body)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if n := doc.Find("#beachesList .beach-card").Length(); n != 2 {
			t.Errorf("beach cards = %d; want 2", n)
		}
		if doc.Find("#weatherContainer .weather-loading").Length() != 1 {
			t.Error("weather should be loading")
		}
		if got := doc.Find("#cleanupCount").Text(); got != "47" {
			t.Errorf("#cleanupCount = %q", got)
		}
		var m views.MapData
		if err := json.Unmarshal([]byte(doc.Find("#mapData").Text()), &m); err != nil {
			t.Fatalf("map data: %v", err)
		}
		if len(m.Markers) != 1 || !m.Markers[0].OpenPopup {
			t.Errorf("map markers = %+v", m.Markers)
		}
	})

	t.Run("filtered list keeps full map", func(t *testing.T) {
		var mapped []store.Beach
		d := deps()
		d.Maps = stubMaps{got: &mapped}
		ctrl := NewHomeController(d, nil).(*homeControllerImpl)
		rec := httptest.NewRecorder()

		ctrl.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/?q=malibu", nil))

		if n := strings.Count(rec.Body.String(), `class="beach-card"`); n != 1 {
			t.Errorf("beach cards = %d; want 1", n)
		}
		if len(mapped) != 2 {
			t.Errorf("map built from %d beaches; want 2", len(mapped))
		}
	})

	t.Run("page without map container", func(t *testing.T) {
		d := deps()
		d.Maps = stubMaps{absent: true}
		ctrl := NewHomeController(d, nil).(*homeControllerImpl)
		rec := httptest.NewRecorder()

		ctrl.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusOK || strings.Contains(rec.Body.String(), "beachesMap") {
			t.Errorf("status = %d, map rendered = %v", rec.Code, strings.Contains(rec.Body.String(), "beachesMap"))
		}
	})

	t.Run("returns 500 when crews fail", func(t *testing.T) {
		d := deps()
		d.Crews = stubCrews{err: errors.New("db error")}
		ctrl := NewHomeController(d, nil).(*homeControllerImpl)
		rec := httptest.NewRecorder()

		ctrl.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), "failed to load crews") {
			t.Errorf("status = %d body = %q", rec.Code, rec.Body.String())
		}
	})
}
