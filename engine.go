package faqdex

import (
	"fmt"

	"github.com/helpware/faqdex/internal/domain"
	"github.com/helpware/faqdex/internal/index"
	"github.com/helpware/faqdex/internal/matcher"
	"github.com/helpware/faqdex/internal/normalize"
)

// Sentinel errors surfaced by the engine.
var (
	ErrEmptyCorpus   = domain.ErrEmptyCorpus
	ErrNotFitted     = domain.ErrNotFitted
	ErrEntryNotFound = domain.ErrEntryNotFound
	ErrInvalidEntry  = domain.ErrInvalidEntry
)

// Entry is one question/answer pair in the corpus.
type Entry struct {
	ID       string
	Question string
	Answer   string
	Category string
	Keywords []string
}

// Match is one retained hit, best first.
type Match struct {
	Index      int
	Question   string
	Answer     string
	Category   string
	Similarity float64
	Rank       int
}

// Outcome is the structured result of one query. A miss is a normal
// outcome, not an error: Found is false and MaxSimilarity still reports
// the best score seen across the corpus.
type Outcome struct {
	Found         bool
	Matches       []Match
	MaxSimilarity float64
}

// Stats summarizes the fitted corpus.
type Stats struct {
	TotalEntries       int
	VocabularySize     int
	CategoryCounts     map[string]int
	MostCommonCategory string
}

// Engine matches questions against a fitted corpus. The zero value is not
// usable; construct with New. Once fitted the engine is immutable and safe
// for concurrent use.
type Engine struct {
	matcher   *matcher.Matcher
	threshold float64
	topK      int
}

// New fits an engine over the given corpus.
func New(entries []Entry, opts ...Option) (*Engine, error) {
	cfg := &engineConfig{
		threshold:         matcher.DefaultThreshold,
		topK:              matcher.DefaultTopK,
		maxVocabularySize: index.DefaultMaxVocabularySize,
		minDocFreq:        index.DefaultMinDocFreq,
		maxDocFreqRatio:   index.DefaultMaxDocFreqRatio,
		strategy:          StrategyAuto,
	}
	for _, o := range opts {
		o(cfg)
	}

	dom := make([]domain.Entry, 0, len(entries))
	for i, e := range entries {
		de, err := domain.NewEntry(e.ID, e.Question, e.Answer, e.Category, e.Keywords)
		if err != nil {
			return nil, fmt.Errorf("faqdex: entry %d: %w", i, err)
		}
		dom = append(dom, de)
	}

	norm := normalize.New(normalize.Strategy(cfg.strategy), cfg.logger)
	vec := index.NewVectorizer().
		WithMaxVocabularySize(cfg.maxVocabularySize).
		WithMinDocFreq(cfg.minDocFreq).
		WithMaxDocFreqRatio(cfg.maxDocFreqRatio)

	m := matcher.New(norm, vec)
	if err := m.Fit(dom); err != nil {
		return nil, fmt.Errorf("faqdex: fit: %w", err)
	}

	return &Engine{
		matcher:   m,
		threshold: cfg.threshold,
		topK:      cfg.topK,
	}, nil
}

// Query matches free-form text against the corpus.
func (e *Engine) Query(text string, opts ...QueryOption) (Outcome, error) {
	if e == nil || e.matcher == nil {
		return Outcome{}, ErrNotFitted
	}

	qc := &queryConfig{threshold: e.threshold, topK: e.topK}
	for _, o := range opts {
		o(qc)
	}

	outcome, err := e.matcher.BestMatch(text, qc.threshold, qc.topK)
	if err != nil {
		return Outcome{}, fmt.Errorf("faqdex: query: %w", err)
	}
	return e.outcomeFromDomain(outcome)
}

// Similar ranks the corpus against the entry at the given position.
// Only strictly positive similarities are returned.
func (e *Engine) Similar(i, topK int) ([]Match, error) {
	if e == nil || e.matcher == nil {
		return nil, ErrNotFitted
	}

	ranked, err := e.matcher.Similar(i, topK)
	if err != nil {
		return nil, fmt.Errorf("faqdex: similar: %w", err)
	}
	return e.matchesFromDomain(ranked)
}

// ByCategory returns entries in the category, corpus order, capped at
// maxCount. Matching is case-insensitive.
func (e *Engine) ByCategory(category string, maxCount int) ([]Entry, error) {
	if e == nil || e.matcher == nil {
		return nil, ErrNotFitted
	}

	found, err := e.matcher.ByCategory(category, maxCount)
	if err != nil {
		return nil, fmt.Errorf("faqdex: by category: %w", err)
	}
	return entriesFromDomain(found), nil
}

// ByKeywords returns entries tagged with any of the keywords, corpus
// order, capped at maxCount. Matching is case-insensitive.
func (e *Engine) ByKeywords(keywords []string, maxCount int) ([]Entry, error) {
	if e == nil || e.matcher == nil {
		return nil, ErrNotFitted
	}

	found, err := e.matcher.ByKeywords(keywords, maxCount)
	if err != nil {
		return nil, fmt.Errorf("faqdex: by keywords: %w", err)
	}
	return entriesFromDomain(found), nil
}

// Len returns the number of corpus entries.
func (e *Engine) Len() int {
	if e == nil || e.matcher == nil {
		return 0
	}
	return e.matcher.Len()
}

// Stats summarizes the fitted corpus.
func (e *Engine) Stats() (Stats, error) {
	if e == nil || e.matcher == nil {
		return Stats{}, ErrNotFitted
	}

	st, err := e.matcher.Stats()
	if err != nil {
		return Stats{}, fmt.Errorf("faqdex: stats: %w", err)
	}
	return Stats{
		TotalEntries:       st.TotalEntries,
		VocabularySize:     st.VocabularySize,
		CategoryCounts:     st.CategoryCounts,
		MostCommonCategory: st.MostCommonCategory,
	}, nil
}

func (e *Engine) outcomeFromDomain(o domain.Outcome) (Outcome, error) {
	matches, err := e.matchesFromDomain(o.Alternatives())
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Found:         o.Found(),
		Matches:       matches,
		MaxSimilarity: o.MaxSimilarity(),
	}, nil
}

func (e *Engine) matchesFromDomain(ranked []domain.Match) ([]Match, error) {
	if len(ranked) == 0 {
		return nil, nil
	}
	out := make([]Match, 0, len(ranked))
	for i := range ranked {
		entry, err := e.matcher.EntryAt(ranked[i].Index())
		if err != nil {
			return nil, fmt.Errorf("faqdex: resolve match %d: %w", ranked[i].Index(), err)
		}
		out = append(out, Match{
			Index:      ranked[i].Index(),
			Question:   entry.Question(),
			Answer:     entry.Answer(),
			Category:   entry.Category(),
			Similarity: ranked[i].Score(),
			Rank:       ranked[i].Rank(),
		})
	}
	return out, nil
}

func entriesFromDomain(entries []domain.Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for i := range entries {
		out = append(out, Entry{
			ID:       entries[i].ID(),
			Question: entries[i].Question(),
			Answer:   entries[i].Answer(),
			Category: entries[i].Category(),
			Keywords: entries[i].Keywords(),
		})
	}
	return out
}
