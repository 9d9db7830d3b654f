package chat

import (
	"context"
	"math/rand"
	"testing"

	"go.uber.org/zap"

	"github.com/helpware/faqdex/internal/domain"
	"github.com/helpware/faqdex/internal/index"
	"github.com/helpware/faqdex/internal/matcher"
	"github.com/helpware/faqdex/internal/normalize"
	"github.com/helpware/faqdex/internal/repository/history"
)

// --- Mocks for failure paths ---

type mockHistory struct {
	appendFn func(ctx context.Context, rec domain.Record) error
	listFn   func(ctx context.Context, limit int) ([]domain.Record, error)
	countFn  func(ctx context.Context) (int, error)
	clearFn  func(ctx context.Context) error
}

func (m *mockHistory) Append(ctx context.Context, rec domain.Record) error {
	if m.appendFn != nil {
		return m.appendFn(ctx, rec)
	}
	return nil
}

func (m *mockHistory) List(ctx context.Context, limit int) ([]domain.Record, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockHistory) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockHistory) Clear(ctx context.Context) error {
	if m.clearFn != nil {
		return m.clearFn(ctx)
	}
	return nil
}

// --- Fixtures over the real matcher ---

func restaurantEntries(t *testing.T) []domain.Entry {
	t.Helper()
	return []domain.Entry{
		domain.ReconstructEntry("1", "What are your restaurant hours?",
			"We're open Monday through Thursday from 11 AM to 10 PM.",
			"hours", []string{"hours", "open", "close", "time"}),
		domain.ReconstructEntry("2", "Do you offer delivery service?",
			"Yes! We offer delivery within a 5-mile radius for orders over $20.",
			"delivery", []string{"delivery", "deliver", "order"}),
	}
}

func fittedMatcher(t *testing.T, entries []domain.Entry) *matcher.Matcher {
	t.Helper()
	m := matcher.New(normalize.NewRules(), index.NewVectorizer())
	if err := m.Fit(entries); err != nil {
		t.Fatalf("fit: %v", err)
	}
	return m
}

// newFittedService wires the real matcher and an in-memory history so
// behavior is observable end to end. The seed fixes all random picks.
func newFittedService(t *testing.T, entries []domain.Entry, cfg Config, seed int64) (*Service, *history.Memory) {
	t.Helper()
	mem := history.NewMemory(100)
	svc := New(fittedMatcher(t, entries), mem, cfg, rand.New(rand.NewSource(seed)), zap.NewNop())
	return svc, mem
}

func unfittedService(t *testing.T) *Service {
	t.Helper()
	m := matcher.New(normalize.NewRules(), index.NewVectorizer())
	return New(m, history.NewMemory(100), Config{}, rand.New(rand.NewSource(1)), zap.NewNop())
}
