package prefs

import "math/rand"

// Placeholders prompt an empty page.
var Placeholders = []string{
	"Begin writing",
	"Pick a thought and go",
	"Start typing",
	"What's on your mind",
	"Just start",
	"Type your first thought",
	"Start with one sentence",
	"Just say it",
}

// Placeholder picks one prompt.
func Placeholder(rng *rand.Rand) string {
	if rng == nil {
		return Placeholders[rand.Intn(len(Placeholders))]
	}
	return Placeholders[rng.Intn(len(Placeholders))]
}
