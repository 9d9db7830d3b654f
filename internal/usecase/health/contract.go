package health

import "context"

// CorpusChecker reports whether the FAQ index is ready to serve.
type CorpusChecker interface {
	Fitted() bool
	Len() int
}

// StorePinger checks history store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}
