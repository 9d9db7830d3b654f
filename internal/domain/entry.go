package domain

import (
	"fmt"
	"strings"
)

// DefaultCategory is assigned to entries loaded without a category label.
const DefaultCategory = "general"

// Entry is a single question/answer pair of the corpus.
// Immutable once constructed; the corpus position is the stable reference
// used everywhere internally, the id only travels back to callers.
type Entry struct {
	id       string
	question string
	answer   string
	category string
	keywords []string
}

// NewEntry creates a validated corpus entry.
// An empty category falls back to DefaultCategory.
func NewEntry(id, question, answer, category string, keywords []string) (Entry, error) {
	if strings.TrimSpace(question) == "" {
		return Entry{}, fmt.Errorf("%w: empty question", ErrInvalidEntry)
	}
	if strings.TrimSpace(answer) == "" {
		return Entry{}, fmt.Errorf("%w: empty answer", ErrInvalidEntry)
	}
	if category == "" {
		category = DefaultCategory
	}
	return Entry{
		id:       id,
		question: question,
		answer:   answer,
		category: category,
		keywords: cloneKeywords(keywords),
	}, nil
}

// ReconstructEntry rebuilds an entry from trusted data without validation.
func ReconstructEntry(id, question, answer, category string, keywords []string) Entry {
	return Entry{
		id:       id,
		question: question,
		answer:   answer,
		category: category,
		keywords: cloneKeywords(keywords),
	}
}

// ID returns the entry identifier from the source document.
func (e *Entry) ID() string { return e.id }

// Question returns the canonical question text.
func (e *Entry) Question() string { return e.question }

// Answer returns the answer text.
func (e *Entry) Answer() string { return e.answer }

// Category returns the category label.
func (e *Entry) Category() string { return e.category }

// Keywords returns a copy of the keyword list.
func (e *Entry) Keywords() []string { return cloneKeywords(e.keywords) }

// InCategory reports whether the entry belongs to category, case-insensitively.
func (e *Entry) InCategory(category string) bool {
	return strings.EqualFold(e.category, category)
}

// HasAnyKeyword reports whether any of the given keywords matches one of the
// entry's keywords, case-insensitively.
func (e *Entry) HasAnyKeyword(keywords []string) bool {
	for _, want := range keywords {
		for _, have := range e.keywords {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}

func cloneKeywords(keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}
	out := make([]string, len(keywords))
	copy(out, keywords)
	return out
}
