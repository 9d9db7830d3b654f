// Package matcher is the query side of the engine: it projects free-form
// questions into the fitted vector space and ranks corpus entries by
// cosine similarity, with threshold and top-k selection on top.
package matcher

import (
	"fmt"
	"sort"

	"github.com/helpware/faqdex/internal/domain"
	"github.com/helpware/faqdex/internal/index"
	"github.com/helpware/faqdex/internal/normalize"
)

const (
	// DefaultThreshold is the minimum similarity for a confident match.
	DefaultThreshold = 0.15
	// DefaultTopK bounds the retained matches per query.
	DefaultTopK = 3
	// DefaultFilterLimit caps the metadata filter results.
	DefaultFilterLimit = 5

	// Forced self-similarity in Similar, below any valid cosine.
	selfSentinel = -1
)

// Matcher owns the corpus and its fitted index. Fit is the single
// mutation; afterwards the matcher is safe for concurrent readers.
type Matcher struct {
	norm    normalize.Normalizer
	vec     *index.Vectorizer
	ix      *index.Index
	entries []domain.Entry
}

// New creates an unfitted matcher. A nil vectorizer gets defaults.
func New(norm normalize.Normalizer, vec *index.Vectorizer) *Matcher {
	if vec == nil {
		vec = index.NewVectorizer()
	}
	return &Matcher{norm: norm, vec: vec}
}

// Fit normalizes every entry's question and builds the vector space.
// Fails with ErrEmptyCorpus when entries is empty.
func (m *Matcher) Fit(entries []domain.Entry) error {
	if len(entries) == 0 {
		return domain.ErrEmptyCorpus
	}
	texts := make([]string, len(entries))
	for i := range entries {
		texts[i] = m.norm.Preprocess(entries[i].Question())
	}
	ix, err := m.vec.Fit(texts)
	if err != nil {
		return fmt.Errorf("fit corpus: %w", err)
	}
	m.entries = make([]domain.Entry, len(entries))
	copy(m.entries, entries)
	m.ix = ix
	return nil
}

// Fitted reports whether Fit has completed.
func (m *Matcher) Fitted() bool { return m.ix != nil }

// Len returns the corpus size.
func (m *Matcher) Len() int { return len(m.entries) }

// Normalize exposes the matcher's normalized form of a text.
func (m *Matcher) Normalize(text string) string { return m.norm.Preprocess(text) }

// EntryAt returns the corpus entry at the given position.
func (m *Matcher) EntryAt(i int) (domain.Entry, error) {
	if i < 0 || i >= len(m.entries) {
		return domain.Entry{}, domain.NewOutOfRange(i, len(m.entries))
	}
	return m.entries[i], nil
}

// Entries returns a copy of the corpus in order.
func (m *Matcher) Entries() []domain.Entry {
	out := make([]domain.Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// BestMatch ranks the corpus against the query and applies threshold and
// top-k selection. A query clearing the threshold nowhere is a normal
// miss outcome carrying the best similarity seen, never an error. An
// empty or fully-stopworded query scores 0 everywhere.
func (m *Matcher) BestMatch(query string, threshold float64, topK int) (domain.Outcome, error) {
	if m.ix == nil {
		return domain.Outcome{}, domain.ErrNotFitted
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	qv := m.ix.Transform(m.norm.Preprocess(query))
	ranked := rankScores(scores(qv, m.ix.Vectors()))
	maxSimilarity := ranked[0].Score()

	if topK > len(ranked) {
		topK = len(ranked)
	}
	head := ranked[:topK]
	retained := head[:0]
	for _, mt := range head {
		if mt.Score() >= threshold {
			retained = append(retained, mt)
		}
	}
	if len(retained) == 0 {
		return domain.MissOutcome(maxSimilarity), nil
	}
	return domain.FoundOutcome(retained, maxSimilarity), nil
}

// Similar ranks the corpus against the entry at the given position. The
// entry itself is pinned to a sentinel below any valid score so it can
// never select itself; only strictly positive similarities are returned.
func (m *Matcher) Similar(i, topK int) ([]domain.Match, error) {
	if m.ix == nil {
		return nil, domain.ErrNotFitted
	}
	if i < 0 || i >= len(m.entries) {
		return nil, domain.NewOutOfRange(i, len(m.entries))
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	sims := scores(m.ix.Vectors()[i], m.ix.Vectors())
	sims[i] = selfSentinel
	ranked := rankScores(sims)

	if topK > len(ranked) {
		topK = len(ranked)
	}
	out := make([]domain.Match, 0, topK)
	for _, mt := range ranked[:topK] {
		if mt.Score() <= 0 {
			break
		}
		out = append(out, mt)
	}
	return out, nil
}

// ByCategory returns entries whose category equals the given one,
// case-insensitively, in corpus order, capped to maxCount.
func (m *Matcher) ByCategory(category string, maxCount int) ([]domain.Entry, error) {
	if m.ix == nil {
		return nil, domain.ErrNotFitted
	}
	if maxCount <= 0 {
		maxCount = DefaultFilterLimit
	}
	out := make([]domain.Entry, 0, maxCount)
	for i := range m.entries {
		if !m.entries[i].InCategory(category) {
			continue
		}
		out = append(out, m.entries[i])
		if len(out) == maxCount {
			break
		}
	}
	return out, nil
}

// ByKeywords returns entries sharing at least one keyword with the query
// set, case-insensitively, in corpus order, capped to maxCount.
func (m *Matcher) ByKeywords(keywords []string, maxCount int) ([]domain.Entry, error) {
	if m.ix == nil {
		return nil, domain.ErrNotFitted
	}
	if maxCount <= 0 {
		maxCount = DefaultFilterLimit
	}
	out := make([]domain.Entry, 0, maxCount)
	for i := range m.entries {
		if !m.entries[i].HasAnyKeyword(keywords) {
			continue
		}
		out = append(out, m.entries[i])
		if len(out) == maxCount {
			break
		}
	}
	return out, nil
}

// Stats reports corpus totals for the fitted index.
func (m *Matcher) Stats() (domain.Stats, error) {
	if m.ix == nil {
		return domain.Stats{}, domain.ErrNotFitted
	}
	counts := make(map[string]int)
	for i := range m.entries {
		counts[m.entries[i].Category()]++
	}
	return domain.Stats{
		TotalEntries:       len(m.entries),
		VocabularySize:     m.ix.VocabularySize(),
		CategoryCounts:     counts,
		MostCommonCategory: mostCommon(counts),
	}, nil
}

// mostCommon picks the category with the highest count; ties resolve to
// the lexicographically smaller name.
func mostCommon(counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	best := ""
	bestCount := -1
	for _, name := range names {
		if counts[name] > bestCount {
			best = name
			bestCount = counts[name]
		}
	}
	return best
}
