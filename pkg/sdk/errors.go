package faqdex

import (
	"errors"
	"fmt"
)

// Sentinel errors for the error classes the service reports.
// Use errors.Is() to check.
var (
	ErrInvalidRequest     = errors.New("faqdex: invalid request")
	ErrUnauthorized       = errors.New("faqdex: unauthorized")
	ErrQuestionNotFound   = errors.New("faqdex: question not found")
	ErrCorpusNotReady     = errors.New("faqdex: corpus not ready")
	ErrHistoryUnavailable = errors.New("faqdex: history unavailable")
)

// APIError is a non-2xx reply from the service.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("faqdex: %s (status %d): %s", e.Code, e.Status, e.Message)
}

// Unwrap maps the service error code onto a package sentinel.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "bad_request", "validation_failed":
		return ErrInvalidRequest
	case "unauthorized":
		return ErrUnauthorized
	case "question_not_found":
		return ErrQuestionNotFound
	case "corpus_not_ready":
		return ErrCorpusNotReady
	case "history_unavailable":
		return ErrHistoryUnavailable
	}
	return nil
}
