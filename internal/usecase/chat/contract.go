package chat

import (
	"context"

	"github.com/helpware/faqdex/internal/domain"
)

// Matcher is the fitted-corpus contract the service queries.
type Matcher interface {
	Fitted() bool
	Len() int
	Normalize(text string) string
	EntryAt(i int) (domain.Entry, error)
	Entries() []domain.Entry
	BestMatch(query string, threshold float64, topK int) (domain.Outcome, error)
	Similar(i, topK int) ([]domain.Match, error)
	ByCategory(category string, maxCount int) ([]domain.Entry, error)
	ByKeywords(keywords []string, maxCount int) ([]domain.Entry, error)
	Stats() (domain.Stats, error)
}

// History persists chat interactions.
type History interface {
	Append(ctx context.Context, rec domain.Record) error
	List(ctx context.Context, limit int) ([]domain.Record, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}
