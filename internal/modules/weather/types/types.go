package types

import "time"

type Station struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Reading is one station value in a feed item. Value is nil when the feed
// sends null.
type Reading struct {
	StationID string   `json:"station_id"`
	Value     *float64 `json:"value"`
}

type FeedItem struct {
	Timestamp string    `json:"timestamp"`
	Readings  []Reading `json:"readings"`
}

// Feed is the payload shape shared by the air-temperature, relative-humidity
// and wind-speed endpoints.
type Feed struct {
	Metadata struct {
		Stations    []Station `json:"stations"`
		ReadingType string    `json:"reading_type,omitempty"`
		ReadingUnit string    `json:"reading_unit,omitempty"`
	} `json:"metadata"`
	Items []FeedItem `json:"items"`
}

// Feeds is one fetch cycle: all three feeds, or nothing.
type Feeds struct {
	Temperature Feed
	Humidity    Feed
	Wind        Feed
}

// StationReading is the merged, possibly partial, record for one station.
type StationReading struct {
	StationID string
	Name      string
	Temp      *float64
	Humidity  *float64
	Wind      *float64
}

// Card is one rendered weather entry, either a live station or a canned
// fallback day.
type Card struct {
	Label     string `json:"label"`
	StationID string `json:"stationId,omitempty"`
	Icon      string `json:"icon"`
	Condition string `json:"condition"`
	Temp      string `json:"temp"`
	Humidity  string `json:"humidity"`
	Wind      string `json:"wind"`
}

type Panel struct {
	Cards     []Card    `json:"cards"`
	Fallback  bool      `json:"fallback"`
	Warning   string    `json:"warning,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}
