package faqdex

import (
	"go.uber.org/zap"

	"github.com/helpware/faqdex/internal/normalize"
)

// Strategy selects the text normalizer.
type Strategy string

const (
	// StrategyAuto prefers the dictionary lemmatizer and falls back to rules.
	StrategyAuto Strategy = Strategy(normalize.StrategyAuto)
	// StrategyLemma is the dictionary-backed lemmatizer pipeline.
	StrategyLemma Strategy = Strategy(normalize.StrategyLemma)
	// StrategyRules is the self-contained rule-based fallback.
	StrategyRules Strategy = Strategy(normalize.StrategyRules)
)

// Option configures the Engine at construction time.
type Option func(*engineConfig)

type engineConfig struct {
	threshold         float64
	topK              int
	maxVocabularySize int
	minDocFreq        int
	maxDocFreqRatio   float64
	strategy          Strategy
	logger            *zap.Logger
}

// WithThreshold sets the default minimum similarity for Query.
// Default: 0.15.
func WithThreshold(threshold float64) Option {
	return func(c *engineConfig) {
		c.threshold = threshold
	}
}

// WithTopK sets the default number of retained matches per query.
// Default: 3.
func WithTopK(topK int) Option {
	return func(c *engineConfig) {
		c.topK = topK
	}
}

// WithMaxVocabularySize caps the vocabulary to the n most frequent terms.
// Default: 5000.
func WithMaxVocabularySize(n int) Option {
	return func(c *engineConfig) {
		c.maxVocabularySize = n
	}
}

// WithMinDocFreq drops terms occurring in fewer than n documents.
// Default: 1.
func WithMinDocFreq(n int) Option {
	return func(c *engineConfig) {
		c.minDocFreq = n
	}
}

// WithMaxDocFreqRatio drops terms occurring in more than the given share
// of documents. Default: 0.95.
func WithMaxDocFreqRatio(ratio float64) Option {
	return func(c *engineConfig) {
		c.maxDocFreqRatio = ratio
	}
}

// WithNormalizer selects the text normalization strategy.
// Default: StrategyAuto.
func WithNormalizer(strategy Strategy) Option {
	return func(c *engineConfig) {
		c.strategy = strategy
	}
}

// WithLogger enables structured logging for the engine.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = l
	}
}

// QueryOption overrides the engine defaults for a single Query call.
type QueryOption func(*queryConfig)

type queryConfig struct {
	threshold float64
	topK      int
}

// MinSimilarity overrides the similarity threshold for this query.
// Zero retains the best match regardless of score.
func MinSimilarity(threshold float64) QueryOption {
	return func(c *queryConfig) {
		c.threshold = threshold
	}
}

// TopK overrides the number of retained matches for this query.
func TopK(topK int) QueryOption {
	return func(c *queryConfig) {
		c.topK = topK
	}
}
