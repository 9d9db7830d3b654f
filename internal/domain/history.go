package domain

import "time"

// Record is one logged chat interaction.
type Record struct {
	ID              string
	Input           string
	NormalizedInput string
	Reply           string
	Matched         bool
	Similarity      float64
	CreatedAt       time.Time
}
