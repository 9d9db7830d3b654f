package normalize

import (
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// lemmaNormalizer is the rich pipeline: a single fused pass that filters
// and reduces tokens through an English lemma dictionary.
type lemmaNormalizer struct {
	lem *golem.Lemmatizer
}

// NewLemma builds the dictionary-backed normalizer.
func NewLemma() (Normalizer, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load lemma dictionary: %w", err)
	}
	return &lemmaNormalizer{lem: lem}, nil
}

func (n *lemmaNormalizer) Preprocess(text string) string {
	tokens := tokenize(clean(text))
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if isStopword(tok) {
			continue
		}
		kept = append(kept, n.lem.Lemma(tok))
	}
	return strings.Join(kept, " ")
}

func (n *lemmaNormalizer) Strategy() Strategy { return StrategyLemma }
