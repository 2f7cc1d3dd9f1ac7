package service

import (
	"fmt"

	"shoresquad-server/internal/modules/weather/types"
)

const (
	MaxStations  = 4
	NotAvailable = "N/A"
)

type condition struct {
	Icon  string
	Label string
}

var (
	conditionRainy        = condition{Icon: "🌧️", Label: "Humid/Rainy"}
	conditionCloudy       = condition{Icon: "☁️", Label: "Cloudy"}
	conditionSunny        = condition{Icon: "☀️", Label: "Sunny & Warm"}
	conditionPartlyCloudy = condition{Icon: "⛅", Label: "Partly Cloudy"}
)

// fallbackCards is the canned forecast shown whenever live data is unusable.
var fallbackCards = []types.Card{
	{Label: "Mon", Icon: "☀️", Condition: "Sunny", Temp: "72°F", Wind: "10 mph", Humidity: "65%"},
	{Label: "Tue", Icon: "☁️", Condition: "Cloudy", Temp: "68°F", Wind: "15 mph", Humidity: "70%"},
	{Label: "Wed", Icon: "⛅", Condition: "Partly Cloudy", Temp: "70°F", Wind: "12 mph", Humidity: "68%"},
	{Label: "Thu", Icon: "🌧️", Condition: "Rainy", Temp: "65°F", Wind: "20 mph", Humidity: "85%"},
}

// FallbackCards returns a copy of the static four-day forecast.
func FallbackCards() []types.Card {
	out := make([]types.Card, len(fallbackCards))
	copy(out, fallbackCards)
	return out
}

// MergeStations folds the three feeds into per-station records keyed by
// station id. Order is first appearance across temperature, humidity, then
// wind readings. Null values are skipped, so a station only appears once it
// has at least one usable value.
func MergeStations(feeds types.Feeds) []types.StationReading {
	names := make(map[string]string, len(feeds.Temperature.Metadata.Stations))
	for _, s := range feeds.Temperature.Metadata.Stations {
		names[s.ID] = s.Name
	}

	byID := make(map[string]*types.StationReading)
	var order []string

	merge := func(feed types.Feed, set func(*types.StationReading, float64)) {
		if len(feed.Items) == 0 {
			return
		}
		for _, r := range feed.Items[0].Readings {
			if r.StationID == "" || r.Value == nil {
				continue
			}
			rec, ok := byID[r.StationID]
			if !ok {
				rec = &types.StationReading{StationID: r.StationID, Name: stationName(names, r.StationID)}
				byID[r.StationID] = rec
				order = append(order, r.StationID)
			}
			set(rec, *r.Value)
		}
	}

	merge(feeds.Temperature, func(rec *types.StationReading, v float64) { rec.Temp = &v })
	merge(feeds.Humidity, func(rec *types.StationReading, v float64) { rec.Humidity = &v })
	merge(feeds.Wind, func(rec *types.StationReading, v float64) { rec.Wind = &v })

	out := make([]types.StationReading, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out
}

func stationName(names map[string]string, id string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return "Station " + id
}

// BuildCards merges the feeds and renders at most MaxStations cards. An empty
// result means no station had any data and the caller should fall back.
func BuildCards(feeds types.Feeds) []types.Card {
	stations := MergeStations(feeds)
	if len(stations) > MaxStations {
		stations = stations[:MaxStations]
	}

	cards := make([]types.Card, 0, len(stations))
	for _, s := range stations {
		c := deriveCondition(s.Temp, s.Humidity)
		cards = append(cards, types.Card{
			Label:     s.Name,
			StationID: s.StationID,
			Icon:      c.Icon,
			Condition: c.Label,
			Temp:      formatValue(s.Temp, "%.1f°C"),
			Humidity:  formatValue(s.Humidity, "%.0f%%"),
			Wind:      formatValue(s.Wind, "%.1f m/s"),
		})
	}
	return cards
}

// deriveCondition applies the rules in priority order. A nil value never
// satisfies a threshold.
func deriveCondition(temp, humidity *float64) condition {
	switch {
	case humidity != nil && *humidity > 80:
		return conditionRainy
	case humidity != nil && *humidity > 70:
		return conditionCloudy
	case temp != nil && *temp > 30:
		return conditionSunny
	default:
		return conditionPartlyCloudy
	}
}

func formatValue(v *float64, format string) string {
	if v == nil {
		return NotAvailable
	}
	return fmt.Sprintf(format, *v)
}
