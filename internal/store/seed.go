package store

func defaultBeaches() []Beach {
	return []Beach{
		{ID: 1, Name: "Santa Monica Beach", Location: "Santa Monica, CA", Icon: "🏖️", Difficulty: DifficultyEasy, Cleanups: 12},
		{ID: 2, Name: "Malibu Beach", Location: "Malibu, CA", Icon: "🌊", Difficulty: DifficultyModerate, Cleanups: 8},
		{ID: 3, Name: "Venice Beach", Location: "Venice, CA", Icon: "🏝️", Difficulty: DifficultyHard, Cleanups: 15},
		{ID: 4, Name: "Long Beach", Location: "Long Beach, CA", Icon: "🌅", Difficulty: DifficultyEasy, Cleanups: 20},
	}
}

func defaultCrews() []Crew {
	return []Crew{
		{ID: 1, Name: "Beach Warriors", Location: "Santa Monica", Members: 24, NextCleanup: "2025-12-08"},
		{ID: 2, Name: "Ocean Guardians", Location: "Malibu", Members: 18, NextCleanup: "2025-12-15"},
		{ID: 3, Name: "Coastal Cleaners", Location: "Venice", Members: 31, NextCleanup: "2025-12-10"},
		{ID: 4, Name: "Tide Riders", Location: "Long Beach", Members: 42, NextCleanup: "2025-12-12"},
	}
}

func defaultStats() Stats {
	return Stats{Cleanups: 47, Volunteers: 1240, Trash: 2850, Crews: 4}
}
