package store

type Difficulty string

const (
	DifficultyEasy     Difficulty = "Easy"
	DifficultyModerate Difficulty = "Moderate"
	DifficultyHard     Difficulty = "Hard"
)

type Beach struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Location   string     `json:"location"`
	Icon       string     `json:"icon"`
	Difficulty Difficulty `json:"difficulty"`
	Cleanups   int        `json:"cleanups"`
}

type Crew struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Members  int    `json:"members"`
	// NextCleanup is a calendar date, YYYY-MM-DD.
	NextCleanup string `json:"nextCleanup"`
}

// Stats holds the seeded counters. Crews is overwritten with the live crew
// count whenever the panel renders.
type Stats struct {
	Cleanups   int `json:"cleanups"`
	Volunteers int `json:"volunteers"`
	Trash      int `json:"trash"`
	Crews      int `json:"crews"`
}
