// Package normalize canonicalizes free-form text into the space-joined
// token form the vector space is built over: cleaned, tokenized, stopword
// filtered and lemmatized. Two strategies implement the same contract; the
// choice is made once at construction and callers never branch on it.
package normalize

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/helpware/faqdex/internal/domain"
)

// Strategy names a normalizer variant.
type Strategy string

const (
	// StrategyAuto prefers the dictionary lemmatizer and falls back to rules.
	StrategyAuto Strategy = "auto"
	// StrategyLemma is the dictionary-backed lemmatizer pipeline.
	StrategyLemma Strategy = "lemma"
	// StrategyRules is the self-contained rule-based fallback.
	StrategyRules Strategy = "rules"
)

// Normalizer reduces raw text to its canonical matching form.
// Preprocess is deterministic for a fixed input and returns the empty
// string when nothing survives the pipeline.
type Normalizer interface {
	Preprocess(text string) string
	Strategy() Strategy
}

// New selects a strategy once. When the preferred lemmatizer dictionary
// cannot be loaded the rule-based variant is used instead; that is a
// recovered condition, logged and never surfaced to the caller.
func New(strategy Strategy, log *zap.Logger) Normalizer {
	if log == nil {
		log = zap.NewNop()
	}
	if strategy == StrategyRules {
		return NewRules()
	}
	n, err := NewLemma()
	if err != nil {
		log.Warn("normalizer fallback engaged",
			zap.String("strategy", string(StrategyRules)),
			zap.Error(fmt.Errorf("%w: %v", domain.ErrResourceUnavailable, err)))
		return NewRules()
	}
	return n
}
