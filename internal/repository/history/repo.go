// Package history persists chat interactions. Two backends share one
// method set: Repo appends to a server-side list via the db facade,
// Memory keeps a bounded in-process slice for storeless deployments.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/helpware/faqdex/internal/domain"
)

// DefaultCap bounds how many records a backend retains.
const DefaultCap = 1000

// defaultKey is the list key when the config leaves it empty.
const defaultKey = "faqdex:history"

// store is the consumer interface for history persistence (ISP).
type store interface {
	RPush(ctx context.Context, key string, values ...[]byte) error
	LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error)
	LLen(ctx context.Context, key string) (int64, error)
	LTrim(ctx context.Context, key string, start, stop int64) error
	Del(ctx context.Context, key string) error
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Config tunes the list-backed repository.
type Config struct {
	// Key is the list key. Empty means defaultKey.
	Key string
	// Cap bounds retained records. Zero or negative means DefaultCap.
	Cap int
	// TTL expires the whole list after inactivity. Zero disables expiry.
	TTL time.Duration
}

// Repo implements usecase/chat.History over a server-side list.
type Repo struct {
	store store
	key   string
	cap   int
	ttl   time.Duration
}

// New creates a list-backed history repository.
func New(s store, cfg Config) *Repo {
	key := cfg.Key
	if key == "" {
		key = defaultKey
	}
	retain := cfg.Cap
	if retain <= 0 {
		retain = DefaultCap
	}
	return &Repo{store: s, key: key, cap: retain, ttl: cfg.TTL}
}

// Append logs one interaction and trims the list to the retention cap.
func (r *Repo) Append(ctx context.Context, rec domain.Record) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	if err := r.store.RPush(ctx, r.key, data); err != nil {
		return fmt.Errorf("rpush %s: %w: %w", r.key, domain.ErrHistoryUnavailable, err)
	}

	if err := r.store.LTrim(ctx, r.key, -int64(r.cap), -1); err != nil {
		return fmt.Errorf("ltrim %s: %w: %w", r.key, domain.ErrHistoryUnavailable, err)
	}

	if r.ttl > 0 {
		if err := r.store.Expire(ctx, r.key, r.ttl, true); err != nil {
			return fmt.Errorf("expire %s: %w: %w", r.key, domain.ErrHistoryUnavailable, err)
		}
	}

	return nil
}

// List returns retained records in chronological order. A positive
// limit keeps only the most recent records; zero or negative means all.
func (r *Repo) List(ctx context.Context, limit int) ([]domain.Record, error) {
	var start int64
	if limit > 0 {
		start = -int64(limit)
	}

	items, err := r.store.LRange(ctx, r.key, start, -1)
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w: %w", r.key, domain.ErrHistoryUnavailable, err)
	}

	records := make([]domain.Record, 0, len(items))
	for _, item := range items {
		rec, err := decodeRecord(item)
		if err != nil {
			// Corrupt payloads are dropped rather than failing the listing.
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Count returns the number of retained records.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.LLen(ctx, r.key)
	if err != nil {
		return 0, fmt.Errorf("llen %s: %w: %w", r.key, domain.ErrHistoryUnavailable, err)
	}
	return int(n), nil
}

// Clear removes all retained records.
func (r *Repo) Clear(ctx context.Context) error {
	if err := r.store.Del(ctx, r.key); err != nil {
		return fmt.Errorf("del %s: %w: %w", r.key, domain.ErrHistoryUnavailable, err)
	}
	return nil
}
