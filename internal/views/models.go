package views

import (
	"shoresquad-server/internal/modules/weather/types"
	"shoresquad-server/internal/store"
)

// IndexData is the view model for the full page. Map is nil when the page
// has no map container.
type IndexData struct {
	Weather WeatherData
	Beaches BeachesData
	Crews   CrewsData
	Stats   StatsData
	Map     *MapData
}

// WeatherData wraps the cached panel. Loaded is false while the first
// refresh is still outstanding.
type WeatherData struct {
	Loaded bool
	types.Panel
}

type BeachesData struct {
	Query   string
	Beaches []store.Beach
}

type CrewsData struct {
	Crews []store.Crew
}

type StatsData struct {
	Cleanups   int
	Volunteers int
	Trash      int
	Crews      int
}

// Toast kinds understood by the stylesheet.
const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastWarning = "warning"
	ToastInfo    = "info"
)

type ToastData struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Marker is one map pin. Popup is pre-rendered HTML.
type Marker struct {
	LatLng
	Title     string `json:"title"`
	Icon      string `json:"icon"`
	Popup     string `json:"popup"`
	OpenPopup bool   `json:"openPopup,omitempty"`
}

// MapData is what the map widget consumes.
type MapData struct {
	Center  LatLng   `json:"center"`
	Zoom    int      `json:"zoom"`
	Markers []Marker `json:"markers"`
}

// CleanupSite is the view model for the fixed next-cleanup popup.
type CleanupSite struct {
	Name     string
	Location string
	Date     string
}
