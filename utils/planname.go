package utils

import (
	"fmt"
	"math/rand"
	"time"
)

var (
	adjectives = []string{
		"Slow", "Smooth", "Wide", "Low", "High", "Steady", "Gentle", "Sweeping", "Tight", "Lazy",
		"Quiet", "Grand", "Long", "Short", "Level", "Rising", "Falling", "Drifting", "Patient", "Bold",
	}

	nouns = []string{
		"Orbit", "Dolly", "Sweep", "Pan", "Glide", "Arc", "Crane", "Track", "Pass", "Circuit",
		"Loop", "Traverse", "Approach", "Reveal", "Flyby", "Descent", "Ascent", "Push", "Pull", "Drift",
	}
)

// GeneratePlanLabel creates a random human-friendly plan label in the
// format "<Adjective> <Noun> <4 digit int>".
func GeneratePlanLabel() string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	adj := adjectives[r.Intn(len(adjectives))]
	noun := nouns[r.Intn(len(nouns))]
	number := r.Intn(9000) + 1000

	return fmt.Sprintf("%s %s %d", adj, noun, number)
}
