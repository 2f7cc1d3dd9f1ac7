// Package mapview builds the marker set consumed by the map widget: one
// marker per beach plus the fixed next-cleanup site.
package mapview

import (
	"bytes"
	"fmt"
	"log/slog"

	"shoresquad-server/internal/store"
	"shoresquad-server/internal/views"
)

const DefaultZoom = 10

// DefaultCenter is the map centre, on Santa Monica Bay. Beaches without a
// known coordinate are placed here.
var DefaultCenter = views.LatLng{Lat: 33.9, Lng: -118.45}

var beachCoordinates = map[int]views.LatLng{
	1: {Lat: 34.0100, Lng: -118.4962},
	2: {Lat: 34.0259, Lng: -118.7798},
	3: {Lat: 33.9850, Lng: -118.4695},
	4: {Lat: 33.7701, Lng: -118.1937},
}

const (
	nextCleanupIcon = "🗓️"
	defaultIcon     = "📍"
)

// NextCleanup is the designated upcoming cleanup site, always on the map.
var NextCleanup = struct {
	Site views.CleanupSite
	At   views.LatLng
}{
	Site: views.CleanupSite{Name: "Dockweiler State Beach", Location: "Playa del Rey, CA"},
	At:   views.LatLng{Lat: 33.9268, Lng: -118.4368},
}

// Coordinate returns the table entry for a beach id, or DefaultCenter.
func Coordinate(id int) views.LatLng {
	if c, ok := beachCoordinates[id]; ok {
		return c
	}
	return DefaultCenter
}

type Renderer struct {
	templates views.Renderer
	logger    *slog.Logger
}

func NewRenderer(templates views.Renderer, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{templates: templates, logger: logger}
}

// Empty is the map without any markers.
func Empty() *views.MapData {
	return &views.MapData{Center: DefaultCenter, Zoom: DefaultZoom, Markers: []views.Marker{}}
}

// Build returns the map for the given beaches. ok is false when the page has
// no map container, in which case nothing is built. A marker that fails to
// build is logged and left out; the rest still render.
func (r *Renderer) Build(beaches []store.Beach) (data *views.MapData, ok bool) {
	if !r.templates.Has(views.TemplateMap) {
		r.logger.Debug("map container not present, skipping markers")
		return nil, false
	}

	data = Empty()
	for _, b := range beaches {
		m, err := r.safeMarker(fmt.Sprintf("beach %d", b.ID), func() (views.Marker, error) {
			return r.beachMarker(b)
		})
		if err != nil {
			r.logger.Warn("map marker failed", "beach_id", b.ID, "error", err)
			continue
		}
		data.Markers = append(data.Markers, m)
	}

	m, err := r.safeMarker("next cleanup", r.nextCleanupMarker)
	if err != nil {
		r.logger.Warn("next cleanup marker failed", "error", err)
	} else {
		data.Markers = append(data.Markers, m)
	}
	return data, true
}

func (r *Renderer) beachMarker(b store.Beach) (views.Marker, error) {
	popup, err := r.popup(views.TemplatePopupBeach, b)
	if err != nil {
		return views.Marker{}, err
	}
	icon := b.Icon
	if icon == "" {
		icon = defaultIcon
	}
	return views.Marker{
		LatLng: Coordinate(b.ID),
		Title:  b.Name,
		Icon:   icon,
		Popup:  popup,
	}, nil
}

func (r *Renderer) nextCleanupMarker() (views.Marker, error) {
	popup, err := r.popup(views.TemplatePopupCleanup, NextCleanup.Site)
	if err != nil {
		return views.Marker{}, err
	}
	return views.Marker{
		LatLng:    NextCleanup.At,
		Title:     "Next Cleanup: " + NextCleanup.Site.Name,
		Icon:      nextCleanupIcon,
		Popup:     popup,
		OpenPopup: true,
	}, nil
}

func (r *Renderer) popup(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.Render(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s popup: %w", name, err)
	}
	return buf.String(), nil
}

// safeMarker turns a panic while building one marker into an error.
func (r *Renderer) safeMarker(what string, build func() (views.Marker, error)) (m views.Marker, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%s marker panicked: %v", what, p)
		}
	}()
	return build()
}
