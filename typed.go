package faqdex

// Corpus matches questions against user-defined structs. The struct maps
// onto corpus entries through faqdex struct tags:
//
//	type FAQ struct {
//		ID       int      `faqdex:"id"`
//		Question string   `faqdex:"question"`
//		Answer   string   `faqdex:"answer"`
//		Topic    string   `faqdex:"category"`
//		Tags     []string `faqdex:"keywords"`
//	}
//
// The question and answer tags are required; id, category and keywords
// are optional. Matches resolve back to the original items.
type Corpus[T any] struct {
	engine *Engine
	items  []T
}

// TypedMatch is one retained hit resolved back to its source item.
type TypedMatch[T any] struct {
	Item       T
	Index      int
	Similarity float64
	Rank       int
}

// TypedOutcome is the structured result of one typed query.
type TypedOutcome[T any] struct {
	Found         bool
	Matches       []TypedMatch[T]
	MaxSimilarity float64
}

// NewCorpus fits an engine over tagged structs. The schema is parsed once
// from T's struct tags.
func NewCorpus[T any](items []T, opts ...Option) (*Corpus[T], error) {
	meta, err := parseSchema[T]()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(items))
	for i := range items {
		entries[i] = meta.toEntry(items[i])
	}

	engine, err := New(entries, opts...)
	if err != nil {
		return nil, err
	}

	kept := make([]T, len(items))
	copy(kept, items)
	return &Corpus[T]{engine: engine, items: kept}, nil
}

// Query matches free-form text against the corpus.
func (c *Corpus[T]) Query(text string, opts ...QueryOption) (TypedOutcome[T], error) {
	out, err := c.engine.Query(text, opts...)
	if err != nil {
		return TypedOutcome[T]{}, err
	}
	return TypedOutcome[T]{
		Found:         out.Found,
		Matches:       c.resolve(out.Matches),
		MaxSimilarity: out.MaxSimilarity,
	}, nil
}

// Similar ranks the corpus against the item at the given position.
// Only strictly positive similarities are returned.
func (c *Corpus[T]) Similar(i, topK int) ([]TypedMatch[T], error) {
	matches, err := c.engine.Similar(i, topK)
	if err != nil {
		return nil, err
	}
	return c.resolve(matches), nil
}

// Len returns the number of corpus items.
func (c *Corpus[T]) Len() int { return c.engine.Len() }

// Engine exposes the underlying engine for untyped operations such as
// ByCategory, ByKeywords and Stats.
func (c *Corpus[T]) Engine() *Engine { return c.engine }

func (c *Corpus[T]) resolve(in []Match) []TypedMatch[T] {
	if len(in) == 0 {
		return nil
	}
	out := make([]TypedMatch[T], len(in))
	for i, m := range in {
		out[i] = TypedMatch[T]{
			Item:       c.items[m.Index],
			Index:      m.Index,
			Similarity: m.Similarity,
			Rank:       m.Rank,
		}
	}
	return out
}
