package faqdex

import "time"

// Reply is one answered interaction.
type Reply struct {
	ID           string    `json:"id"`
	Answer       string    `json:"answer"`
	Confidence   float64   `json:"confidence"`
	Matched      bool      `json:"matched"`
	Question     string    `json:"question,omitempty"`
	Category     string    `json:"category,omitempty"`
	EntryID      string    `json:"entry_id,omitempty"`
	Alternatives []string  `json:"alternatives,omitempty"`
	Suggestions  []string  `json:"suggestions,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Entry is one corpus entry.
type Entry struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords,omitempty"`
}

// SimilarQuestion is one corpus entry ranked against another entry.
type SimilarQuestion struct {
	Index      int     `json:"index"`
	Question   string  `json:"question"`
	Category   string  `json:"category"`
	Similarity float64 `json:"similarity"`
}

// Statistics reports corpus and conversation statistics.
type Statistics struct {
	TotalQuestions     int            `json:"total_questions"`
	VocabularySize     int            `json:"vocabulary_size"`
	Categories         map[string]int `json:"categories"`
	MostCommonCategory string         `json:"most_common_category,omitempty"`
	TotalConversations int            `json:"total_conversations"`
	Domain             string         `json:"domain,omitempty"`
	LastUpdated        string         `json:"last_updated,omitempty"`
}

// Record is one logged interaction.
type Record struct {
	ID              string    `json:"id"`
	Input           string    `json:"input"`
	NormalizedInput string    `json:"normalized_input,omitempty"`
	Reply           string    `json:"reply"`
	Matched         bool      `json:"matched"`
	Similarity      float64   `json:"similarity"`
	CreatedAt       time.Time `json:"created_at"`
}

// HealthStatus represents the aggregated service health.
type HealthStatus struct {
	Status string            `json:"status"` // "ok" or "degraded"
	Checks map[string]string `json:"checks"` // component -> "ok"/"error"
}

type askRequest struct {
	Question  string   `json:"question"`
	Threshold *float64 `json:"threshold,omitempty"`
	TopK      *int     `json:"top_k,omitempty"`
}

// listResponse is the envelope every list endpoint replies with.
type listResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
