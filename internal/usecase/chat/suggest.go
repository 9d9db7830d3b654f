package chat

import (
	"fmt"
	"sort"

	"github.com/helpware/faqdex/internal/domain"
)

const (
	// DefaultPopularCount is how many popular questions to surface.
	DefaultPopularCount = 6
	// DefaultRandomCount is how many random questions to sample.
	DefaultRandomCount = 5
)

// CategoryWeight says how many questions a category contributes to the
// popular-question pick.
type CategoryWeight struct {
	Category string
	Count    int
}

// DefaultWeights bias the popular-question pick toward the categories
// visitors ask about most.
var DefaultWeights = []CategoryWeight{
	{Category: "hours", Count: 3},
	{Category: "menu", Count: 3},
	{Category: "delivery", Count: 2},
	{Category: "reservations", Count: 2},
	{Category: "payment", Count: 1},
	{Category: "specials", Count: 2},
}

// PopularQuestions picks entries from the weighted categories, fills any
// shortfall with random entries, and shuffles the result. count <= 0
// means DefaultPopularCount.
func (s *Service) PopularQuestions(count int) ([]domain.Entry, error) {
	if !s.matcher.Fitted() {
		return nil, domain.ErrNotFitted
	}
	if count <= 0 {
		count = DefaultPopularCount
	}

	var picked []domain.Entry
	for _, w := range s.weights {
		if w.Count <= 0 {
			continue
		}
		entries, err := s.matcher.ByCategory(w.Category, w.Count)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", w.Category, err)
		}
		picked = append(picked, entries...)
	}

	if len(picked) < count {
		fill, err := s.RandomQuestions(count - len(picked))
		if err != nil {
			return nil, err
		}
		picked = append(picked, fill...)
	}

	s.shuffle(picked)
	if len(picked) > count {
		picked = picked[:count]
	}
	return picked, nil
}

// RandomQuestions samples entries without replacement. count <= 0 means
// DefaultRandomCount. When count covers the corpus the whole corpus is
// returned in stored order.
func (s *Service) RandomQuestions(count int) ([]domain.Entry, error) {
	if !s.matcher.Fitted() {
		return nil, domain.ErrNotFitted
	}
	if count <= 0 {
		count = DefaultRandomCount
	}

	entries := s.matcher.Entries()
	if len(entries) <= count {
		return entries, nil
	}

	s.mu.Lock()
	perm := s.rng.Perm(len(entries))
	s.mu.Unlock()

	picked := make([]domain.Entry, count)
	for i := 0; i < count; i++ {
		picked[i] = entries[perm[i]]
	}
	return picked, nil
}

// Categories returns the sorted unique category names of the corpus.
func (s *Service) Categories() ([]string, error) {
	if !s.matcher.Fitted() {
		return nil, domain.ErrNotFitted
	}

	seen := make(map[string]struct{})
	var categories []string
	for _, e := range s.matcher.Entries() {
		name := e.Category()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		categories = append(categories, name)
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *Service) shuffle(entries []domain.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(entries), func(i, j int) {
		entries[i], entries[j] = entries[j], entries[i]
	})
}
