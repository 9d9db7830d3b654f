// Package faqdex matches free-form questions against a fixed FAQ corpus
// using a TF-IDF vector space and cosine ranking.
//
// The corpus is fitted once; afterwards the engine is immutable and safe
// for concurrent queries:
//
//	engine, _ := faqdex.New(entries,
//	    faqdex.WithThreshold(0.2),
//	    faqdex.WithNormalizer(faqdex.StrategyRules),
//	)
//	outcome, _ := engine.Query("what time do you open")
//	if outcome.Found {
//	    fmt.Println(outcome.Matches[0].Answer)
//	}
//
// NewCorpus fits the same engine over user-defined structs, mapped through
// faqdex struct tags; matches then resolve back to the original items.
//
// The same matching core powers the faqdex HTTP service under cmd/faqdex,
// which adds conversation history, suggestions and statistics on top.
package faqdex
