package matcher

import (
	"sort"

	"github.com/helpware/faqdex/internal/domain"
)

// scores computes the cosine similarity of the query against every
// document vector, in corpus order. Unit or zero vectors only, so the
// dot product is the cosine and the zero vector scores 0 everywhere.
func scores(query domain.Vector, docs []domain.Vector) []float64 {
	sims := make([]float64, len(docs))
	for i, doc := range docs {
		sims[i] = query.Dot(doc)
	}
	return sims
}

// rankScores produces the full ranking: descending similarity, ties by
// ascending corpus index so equal scores order deterministically. Rank
// is the 1-based position in this ordering.
func rankScores(sims []float64) []domain.Match {
	order := make([]int, len(sims))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		i, j := order[a], order[b]
		if sims[i] != sims[j] {
			return sims[i] > sims[j]
		}
		return i < j
	})

	ranked := make([]domain.Match, len(order))
	for pos, idx := range order {
		ranked[pos] = domain.NewMatch(idx, sims[idx], pos+1)
	}
	return ranked
}
