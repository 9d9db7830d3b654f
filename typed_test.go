package faqdex

import (
	"errors"
	"testing"
)

type cafeFAQ struct {
	ID       int      `faqdex:"id"`
	Question string   `faqdex:"question"`
	Answer   string   `faqdex:"answer"`
	Topic    string   `faqdex:"category"`
	Tags     []string `faqdex:"keywords"`
	Internal string   `faqdex:"-"`
}

type minimalFAQ struct {
	Q string `faqdex:"question"`
	A string `faqdex:"answer"`
}

type noQuestionFAQ struct {
	A string `faqdex:"answer"`
}

type noAnswerFAQ struct {
	Q string `faqdex:"question"`
}

type duplicateRoleFAQ struct {
	Q1 string `faqdex:"question"`
	Q2 string `faqdex:"question"`
	A  string `faqdex:"answer"`
}

type unknownRoleFAQ struct {
	Q string `faqdex:"question"`
	A string `faqdex:"answer"`
	V string `faqdex:"vector"`
}

type badKeywordsFAQ struct {
	Q  string `faqdex:"question"`
	A  string `faqdex:"answer"`
	KW string `faqdex:"keywords"`
}

func cafeCorpus() []cafeFAQ {
	return []cafeFAQ{
		{ID: 1, Question: "What time do you open?", Answer: "We open at 9 AM.", Topic: "hours", Tags: []string{"open", "time"}},
		{ID: 2, Question: "What time do you close?", Answer: "We close at 11 PM.", Topic: "hours", Tags: []string{"close", "time"}},
		{ID: 3, Question: "Do you deliver food?", Answer: "Yes, within 5 miles.", Topic: "delivery", Tags: []string{"deliver"}},
	}
}

func TestNewCorpus_QueryResolvesItems(t *testing.T) {
	c, err := NewCorpus(cafeCorpus())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := c.Query("What time do you open?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Found {
		t.Fatal("expected a match")
	}

	best := out.Matches[0]
	if best.Item.ID != 1 {
		t.Errorf("Item.ID = %d, want 1", best.Item.ID)
	}
	if best.Item.Answer != "We open at 9 AM." {
		t.Errorf("Item.Answer = %q", best.Item.Answer)
	}
	if best.Rank != 1 {
		t.Errorf("Rank = %d, want 1", best.Rank)
	}
	if best.Similarity < 0.999 {
		t.Errorf("Similarity = %.3f, want 1.0", best.Similarity)
	}
}

func TestNewCorpus_Miss(t *testing.T) {
	c, err := NewCorpus(cafeCorpus())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := c.Query("quantum flux capacitors")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Found {
		t.Error("expected a miss")
	}
	if len(out.Matches) != 0 {
		t.Errorf("len(Matches) = %d, want 0", len(out.Matches))
	}
}

func TestCorpus_Similar(t *testing.T) {
	c, err := NewCorpus(cafeCorpus())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	matches, err := c.Similar(0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("expected the other hours item")
	}
	if matches[0].Item.ID != 2 {
		t.Errorf("Item.ID = %d, want 2", matches[0].Item.ID)
	}
	for _, m := range matches {
		if m.Index == 0 {
			t.Error("similar list must not include the item itself")
		}
		if m.Similarity <= 0 {
			t.Errorf("Similarity = %.3f, want > 0", m.Similarity)
		}
	}
}

func TestCorpus_EngineAccess(t *testing.T) {
	c, err := NewCorpus(cafeCorpus())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3", c.Len())
	}

	entries, err := c.Engine().ByCategory("hours", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].ID != "1" {
		t.Errorf("ID = %q, want 1", entries[0].ID)
	}

	st, err := c.Engine().Stats()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.TotalEntries != 3 {
		t.Errorf("TotalEntries = %d, want 3", st.TotalEntries)
	}
	if st.CategoryCounts["hours"] != 2 {
		t.Errorf("CategoryCounts[hours] = %d, want 2", st.CategoryCounts["hours"])
	}
}

func TestNewCorpus_MinimalRoles(t *testing.T) {
	items := []minimalFAQ{
		{Q: "Where is the parking lot?", A: "Behind the building."},
	}
	c, err := NewCorpus(items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st, err := c.Engine().Stats()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.CategoryCounts["general"] != 1 {
		t.Errorf("CategoryCounts = %v, want the general fallback", st.CategoryCounts)
	}
}

func TestNewCorpus_PointerItems(t *testing.T) {
	items := []*cafeFAQ{
		{ID: 1, Question: "Where is the parking lot?", Answer: "Behind the building.", Topic: "parking"},
		{ID: 2, Question: "Is parking free?", Answer: "Yes, for two hours.", Topic: "parking"},
	}
	c, err := NewCorpus(items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := c.Query("Where is the parking lot?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Found {
		t.Fatal("expected a match")
	}
	if out.Matches[0].Item.ID != 1 {
		t.Errorf("Item.ID = %d, want 1", out.Matches[0].Item.ID)
	}
}

func TestNewCorpus_SchemaErrors(t *testing.T) {
	if _, err := parseSchema[int](); err == nil {
		t.Error("expected error for non-struct type")
	}
	if _, err := parseSchema[noQuestionFAQ](); err == nil {
		t.Error("expected error for struct without question tag")
	}
	if _, err := parseSchema[noAnswerFAQ](); err == nil {
		t.Error("expected error for struct without answer tag")
	}
	if _, err := parseSchema[duplicateRoleFAQ](); err == nil {
		t.Error("expected error for duplicate question tag")
	}
	if _, err := parseSchema[unknownRoleFAQ](); err == nil {
		t.Error("expected error for unknown tag")
	}
	if _, err := parseSchema[badKeywordsFAQ](); err == nil {
		t.Error("expected error for non-slice keywords field")
	}
}

func TestNewCorpus_InvalidItem(t *testing.T) {
	items := []cafeFAQ{{ID: 1, Question: "Only a question?"}}
	_, err := NewCorpus(items)
	if !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("error = %v, want ErrInvalidEntry", err)
	}
}

func TestNewCorpus_Empty(t *testing.T) {
	_, err := NewCorpus([]cafeFAQ{})
	if !errors.Is(err, ErrEmptyCorpus) {
		t.Fatalf("error = %v, want ErrEmptyCorpus", err)
	}
}
