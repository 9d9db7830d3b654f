package index

import (
	"math"
	"sort"
)

// vocabulary maps terms to dense column indexes and carries the per-term
// document frequency and the smoothed idf frozen at fit time.
type vocabulary struct {
	columns map[string]int
	terms   []string
	df      []int
	idf     []float64
}

// buildVocabulary selects terms from the per-document term lists.
// Document-frequency bounds are applied first, then the size cap keeps the
// highest-total-frequency terms (ties to the lexicographically smaller
// term). Column indexes follow sorted term order so fits are reproducible.
func buildVocabulary(docs [][]string, minDocFreq int, maxDocFreqRatio float64, maxSize int) vocabulary {
	df := make(map[string]int)
	total := make(map[string]int)
	for _, terms := range docs {
		seen := make(map[string]struct{}, len(terms))
		for _, term := range terms {
			total[term]++
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	maxDocFreq := maxDocFreqRatio * float64(len(docs))
	kept := make([]string, 0, len(df))
	for term, freq := range df {
		if freq < minDocFreq || float64(freq) > maxDocFreq {
			continue
		}
		kept = append(kept, term)
	}

	if maxSize > 0 && len(kept) > maxSize {
		sort.Slice(kept, func(i, j int) bool {
			if total[kept[i]] != total[kept[j]] {
				return total[kept[i]] > total[kept[j]]
			}
			return kept[i] < kept[j]
		})
		kept = kept[:maxSize]
	}
	sort.Strings(kept)

	v := vocabulary{
		columns: make(map[string]int, len(kept)),
		terms:   kept,
		df:      make([]int, len(kept)),
		idf:     make([]float64, len(kept)),
	}
	docCount := len(docs)
	for col, term := range kept {
		v.columns[term] = col
		v.df[col] = df[term]
		// Smoothed idf, strictly positive even for corpus-wide terms.
		v.idf[col] = math.Log(float64(1+docCount)/float64(1+df[term])) + 1
	}
	return v
}

func (v *vocabulary) size() int { return len(v.terms) }

func (v *vocabulary) docFreq(term string) int {
	col, ok := v.columns[term]
	if !ok {
		return 0
	}
	return v.df[col]
}
