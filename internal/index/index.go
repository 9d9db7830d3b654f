// Package index builds the TF-IDF vector space over normalized corpus
// texts and projects queries into it. A fitted Index is an immutable
// value: one writer at fit time, any number of readers afterwards.
package index

import (
	"strings"

	"github.com/helpware/faqdex/internal/domain"
)

// Vectorizer defaults, matching the corpus sizes this engine targets.
const (
	DefaultMaxVocabularySize = 5000
	DefaultMinDocFreq        = 1
	DefaultMaxDocFreqRatio   = 0.95
)

// Vectorizer fits an Index from normalized texts. Zero value is not
// usable; construct with NewVectorizer.
type Vectorizer struct {
	maxVocabularySize int
	minDocFreq        int
	maxDocFreqRatio   float64
}

// NewVectorizer creates a vectorizer with default bounds.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{
		maxVocabularySize: DefaultMaxVocabularySize,
		minDocFreq:        DefaultMinDocFreq,
		maxDocFreqRatio:   DefaultMaxDocFreqRatio,
	}
}

// WithMaxVocabularySize caps the vocabulary to the n most frequent terms.
// Non-positive n removes the cap.
func (v *Vectorizer) WithMaxVocabularySize(n int) *Vectorizer {
	out := *v
	out.maxVocabularySize = n
	return &out
}

// WithMinDocFreq drops terms occurring in fewer than n documents.
func (v *Vectorizer) WithMinDocFreq(n int) *Vectorizer {
	out := *v
	out.minDocFreq = n
	return &out
}

// WithMaxDocFreqRatio drops terms occurring in more than the given share
// of documents.
func (v *Vectorizer) WithMaxDocFreqRatio(ratio float64) *Vectorizer {
	out := *v
	out.maxDocFreqRatio = ratio
	return &out
}

// Fit builds the vocabulary and one unit-normalized document vector per
// text, in corpus order. Texts must already be normalized. Fails with
// ErrEmptyCorpus on an empty slice; a text that contributes no vocabulary
// terms keeps the zero vector.
func (v *Vectorizer) Fit(texts []string) (*Index, error) {
	if len(texts) == 0 {
		return nil, domain.ErrEmptyCorpus
	}

	docs := make([][]string, len(texts))
	for i, text := range texts {
		docs[i] = ngrams(strings.Fields(text))
	}

	vocab := buildVocabulary(docs, v.minDocFreq, v.maxDocFreqRatio, v.maxVocabularySize)

	ix := &Index{vocab: vocab, docCount: len(texts)}
	ix.vectors = make([]domain.Vector, len(docs))
	for i, terms := range docs {
		ix.vectors[i] = ix.weigh(terms)
	}
	return ix, nil
}

// Index is the fitted vector space: vocabulary, frozen idf values and the
// document vectors in corpus order. Immutable after Fit.
type Index struct {
	vocab    vocabulary
	vectors  []domain.Vector
	docCount int
}

// Transform projects a normalized text into the fitted space with the idf
// values frozen at fit time. Terms outside the vocabulary are dropped;
// when nothing survives the zero vector is returned.
func (ix *Index) Transform(text string) domain.Vector {
	return ix.weigh(ngrams(strings.Fields(text)))
}

// Vectors returns the document vectors in corpus order. Callers must
// treat the slice and its vectors as read-only.
func (ix *Index) Vectors() []domain.Vector { return ix.vectors }

// Len returns the number of fitted documents.
func (ix *Index) Len() int { return ix.docCount }

// VocabularySize returns the number of vocabulary terms.
func (ix *Index) VocabularySize() int { return ix.vocab.size() }

// DocFreq returns the document frequency recorded for a term, zero when
// the term is not in the vocabulary.
func (ix *Index) DocFreq(term string) int { return ix.vocab.docFreq(term) }

// weigh turns a term list into a unit-normalized tf-idf vector.
func (ix *Index) weigh(terms []string) domain.Vector {
	counts := make(map[int]int)
	for _, term := range terms {
		if col, ok := ix.vocab.columns[term]; ok {
			counts[col]++
		}
	}
	vec := make(domain.Vector, len(counts))
	for col, tf := range counts {
		vec[col] = float64(tf) * ix.vocab.idf[col]
	}
	vec.Normalize()
	return vec
}

// ngrams expands tokens into unigrams plus adjacent bigrams, the term
// space the vocabulary is built over.
func ngrams(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, 0, 2*len(tokens)-1)
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}
