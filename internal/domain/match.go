package domain

// Match is a single ranked hit against the corpus.
type Match struct {
	index int
	score float64
	rank  int
}

// NewMatch creates a match. Rank is the 1-based position in the full
// descending ranking for the query that produced it.
func NewMatch(index int, score float64, rank int) Match {
	return Match{index: index, score: score, rank: rank}
}

// Index returns the corpus position of the matched entry.
func (m *Match) Index() int { return m.index }

// Score returns the cosine similarity in [0,1].
func (m *Match) Score() float64 { return m.score }

// Rank returns the 1-based rank.
func (m *Match) Rank() int { return m.rank }

// Outcome is the structured result of a best-match query.
// A miss is a normal outcome, not an error: Found is false and
// MaxSimilarity still reports the best score seen across the corpus.
type Outcome struct {
	found         bool
	best          Match
	alternatives  []Match
	maxSimilarity float64
}

// FoundOutcome creates an outcome for a query that cleared the threshold.
// The first retained match is the best one.
func FoundOutcome(retained []Match, maxSimilarity float64) Outcome {
	return Outcome{
		found:         true,
		best:          retained[0],
		alternatives:  retained,
		maxSimilarity: maxSimilarity,
	}
}

// MissOutcome creates an outcome for a query with no retained match.
func MissOutcome(maxSimilarity float64) Outcome {
	return Outcome{maxSimilarity: maxSimilarity}
}

// Found reports whether any match cleared the threshold.
func (o *Outcome) Found() bool { return o.found }

// Best returns the top retained match, if any.
func (o *Outcome) Best() (Match, bool) { return o.best, o.found }

// Alternatives returns the retained matches in rank order, best first.
func (o *Outcome) Alternatives() []Match {
	if len(o.alternatives) == 0 {
		return nil
	}
	out := make([]Match, len(o.alternatives))
	copy(out, o.alternatives)
	return out
}

// MaxSimilarity returns the highest similarity observed across the entire
// corpus for the query, even when below threshold.
func (o *Outcome) MaxSimilarity() float64 { return o.maxSimilarity }
