package chi

import (
	"time"

	"github.com/helpware/faqdex/internal/domain"
	chatuc "github.com/helpware/faqdex/internal/usecase/chat"
	healthuc "github.com/helpware/faqdex/internal/usecase/health"
)

// ErrorCode classifies an API error for clients.
type ErrorCode string

const (
	CodeBadRequest         ErrorCode = "bad_request"
	CodeValidationFailed   ErrorCode = "validation_failed"
	CodeUnauthorized       ErrorCode = "unauthorized"
	CodeQuestionNotFound   ErrorCode = "question_not_found"
	CodeCorpusNotReady     ErrorCode = "corpus_not_ready"
	CodeHistoryUnavailable ErrorCode = "history_unavailable"
	CodeInternalError      ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// AskRequest is the POST /ask body. Threshold and TopK are optional
// per-request overrides of the service defaults.
type AskRequest struct {
	Question  string   `json:"question"`
	Threshold *float64 `json:"threshold,omitempty"`
	TopK      *int     `json:"top_k,omitempty"`
}

// ReplyResponse is one answered interaction.
type ReplyResponse struct {
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

// EntryResponse is one corpus entry.
type EntryResponse struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords,omitempty"`
}

// EntryListResponse wraps a list of corpus entries.
type EntryListResponse struct {
	Items []EntryResponse `json:"items"`
	Total int             `json:"total"`
}

// SimilarQuestionResponse is one entry ranked against another entry.
type SimilarQuestionResponse struct {
	Index      int     `json:"index"`
	Question   string  `json:"question"`
	Category   string  `json:"category"`
	Similarity float64 `json:"similarity"`
}

// SimilarListResponse wraps a similar-questions ranking.
type SimilarListResponse struct {
	Items []SimilarQuestionResponse `json:"items"`
	Total int                       `json:"total"`
}

// CategoryListResponse wraps the sorted category names.
type CategoryListResponse struct {
	Items []string `json:"items"`
	Total int      `json:"total"`
}

// StatsResponse reports corpus and conversation statistics.
type StatsResponse struct {
	TotalQuestions     int            `json:"total_questions"`
	VocabularySize     int            `json:"vocabulary_size"`
	Categories         map[string]int `json:"categories"`
	MostCommonCategory string         `json:"most_common_category,omitempty"`
	TotalConversations int            `json:"total_conversations"`
	Domain             string         `json:"domain,omitempty"`
	LastUpdated        string         `json:"last_updated,omitempty"`
}

// RecordResponse is one logged interaction.
type RecordResponse struct {
	ID              string    `json:"id"`
	Input           string    `json:"input"`
	NormalizedInput string    `json:"normalized_input,omitempty"`
	Reply           string    `json:"reply"`
	Matched         bool      `json:"matched"`
	Similarity      float64   `json:"similarity"`
	CreatedAt       time.Time `json:"created_at"`
}

// HistoryListResponse wraps logged interactions, oldest first.
type HistoryListResponse struct {
	Items []RecordResponse `json:"items"`
	Total int              `json:"total"`
}

// HealthResponse reports service health per component.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func replyToResponse(r chatuc.Reply) ReplyResponse {
	return ReplyResponse{
		ID:           r.ID,
		Answer:       r.Answer,
		Confidence:   r.Confidence,
		Matched:      r.Matched,
		Question:     r.Question,
		Category:     r.Category,
		EntryID:      r.EntryID,
		Alternatives: r.Alternatives,
		Suggestions:  r.Suggestions,
		CreatedAt:    r.CreatedAt,
	}
}

func entryToResponse(e domain.Entry) EntryResponse {
	return EntryResponse{
		ID:       e.ID(),
		Question: e.Question(),
		Answer:   e.Answer(),
		Category: e.Category(),
		Keywords: e.Keywords(),
	}
}

func entryListResponse(entries []domain.Entry) EntryListResponse {
	items := make([]EntryResponse, len(entries))
	for i := range entries {
		items[i] = entryToResponse(entries[i])
	}
	return EntryListResponse{Items: items, Total: len(items)}
}

func statsToResponse(s chatuc.Statistics) StatsResponse {
	return StatsResponse{
		TotalQuestions:     s.TotalEntries,
		VocabularySize:     s.VocabularySize,
		Categories:         s.CategoryCounts,
		MostCommonCategory: s.MostCommonCategory,
		TotalConversations: s.Conversations,
		Domain:             s.Domain,
		LastUpdated:        s.LastUpdated,
	}
}

func recordToResponse(r domain.Record) RecordResponse {
	return RecordResponse{
		ID:              r.ID,
		Input:           r.Input,
		NormalizedInput: r.NormalizedInput,
		Reply:           r.Reply,
		Matched:         r.Matched,
		Similarity:      r.Similarity,
		CreatedAt:       r.CreatedAt,
	}
}

func checksToResponse(checks map[string]healthuc.CheckResult) map[string]string {
	out := make(map[string]string, len(checks))
	for k, v := range checks {
		out[k] = string(v)
	}
	return out
}
