package domain

// Stats is a read-only snapshot of a fitted corpus.
type Stats struct {
	TotalEntries       int
	VocabularySize     int
	CategoryCounts     map[string]int
	MostCommonCategory string
}
