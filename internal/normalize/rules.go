package normalize

import "strings"

// rulesNormalizer is the self-contained fallback: separate tokenizer,
// stopword set and a small rule lemmatizer, composed step by step. It
// needs no external resources and is fully deterministic.
type rulesNormalizer struct{}

// NewRules builds the rule-based normalizer.
func NewRules() Normalizer { return rulesNormalizer{} }

func (rulesNormalizer) Preprocess(text string) string {
	tokens := dropStopwords(tokenize(clean(text)))
	for i, tok := range tokens {
		tokens[i] = lemmaByRule(tok)
	}
	return strings.Join(tokens, " ")
}

func (rulesNormalizer) Strategy() Strategy { return StrategyRules }

func dropStopwords(tokens []string) []string {
	kept := tokens[:0]
	for _, tok := range tokens {
		if !isStopword(tok) {
			kept = append(kept, tok)
		}
	}
	return kept
}

// Irregular forms the suffix rules cannot reach.
var irregularForms = map[string]string{
	"went": "go", "gone": "go", "going": "go", "goes": "go",
	"made": "make", "took": "take", "taken": "take", "came": "come",
	"done": "do", "seen": "see", "got": "get", "gave": "give",
	"paid": "pay", "said": "say", "sold": "sell", "bought": "buy",
	"found": "find", "children": "child", "men": "man", "women": "woman",
	"feet": "foot",
}

// Ordered suffix rules; first hit whose base stays long enough wins.
// Approximate by design, tuned for plural nouns and gerunds.
var suffixRules = []struct {
	suffix      string
	replacement string
	minBase     int
}{
	{"sses", "ss", 2},
	{"ches", "ch", 2},
	{"shes", "sh", 2},
	{"xes", "x", 2},
	{"ies", "y", 2},
	{"ssed", "ss", 2},
	{"sed", "se", 3},
	{"ied", "y", 2},
	{"ss", "ss", 2},
	{"ing", "", 4},
	{"ed", "", 4},
	{"s", "", 3},
}

// lemmaByRule reduces a token to an approximate base form.
func lemmaByRule(word string) string {
	if base, ok := irregularForms[word]; ok {
		return base
	}
	for _, rule := range suffixRules {
		if !strings.HasSuffix(word, rule.suffix) {
			continue
		}
		base := word[:len(word)-len(rule.suffix)] + rule.replacement
		if len(base) >= rule.minBase {
			return base
		}
	}
	return word
}
