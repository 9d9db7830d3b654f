package history

import (
	"context"
	"testing"
	"time"

	"github.com/helpware/faqdex/internal/domain"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	rpushFn  func(ctx context.Context, key string, values ...[]byte) error
	lrangeFn func(ctx context.Context, key string, start, stop int64) ([][]byte, error)
	llenFn   func(ctx context.Context, key string) (int64, error)
	ltrimFn  func(ctx context.Context, key string, start, stop int64) error
	delFn    func(ctx context.Context, key string) error
	expireFn func(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

func (m *mockStore) RPush(ctx context.Context, key string, values ...[]byte) error {
	if m.rpushFn != nil {
		return m.rpushFn(ctx, key, values...)
	}
	return nil
}

func (m *mockStore) LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error) {
	if m.lrangeFn != nil {
		return m.lrangeFn(ctx, key, start, stop)
	}
	return nil, nil
}

func (m *mockStore) LLen(ctx context.Context, key string) (int64, error) {
	if m.llenFn != nil {
		return m.llenFn(ctx, key)
	}
	return 0, nil
}

func (m *mockStore) LTrim(ctx context.Context, key string, start, stop int64) error {
	if m.ltrimFn != nil {
		return m.ltrimFn(ctx, key, start, stop)
	}
	return nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error {
	if m.expireFn != nil {
		return m.expireFn(ctx, key, ttl, nx)
	}
	return nil
}

func newTestRepo(t *testing.T, cfg Config) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, cfg), ms
}

func testRecord(t *testing.T, id string) domain.Record {
	t.Helper()
	return domain.Record{
		ID:              id,
		Input:           "What time do you open?",
		NormalizedInput: "what time open",
		Reply:           "We are open from 11 AM to 10 PM.",
		Matched:         true,
		Similarity:      0.447,
		CreatedAt:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}
