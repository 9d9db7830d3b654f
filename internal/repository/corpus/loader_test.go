package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/helpware/faqdex/internal/domain"
)

const sampleDoc = `{
  "faqs": [
    {"id": 1, "question": "What are your hours?", "answer": "9am-10pm.", "category": "hours", "keywords": ["time", "open"]},
    {"id": "faq-2", "question": "Do you deliver?", "answer": "Yes."},
    {"id": 3, "question": "Where are you?", "answer": "Main St.", "category": "location", "keywords": []}
  ],
  "metadata": {"domain": "restaurant", "total_faqs": 3, "last_updated": "2024-01-15"}
}`

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "faqs.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write corpus file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeDoc(t, sampleDoc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("entries: got %d, want 3", c.Len())
	}

	entries := c.Entries()
	if entries[0].ID() != "1" {
		t.Errorf("numeric id: got %q, want %q", entries[0].ID(), "1")
	}
	if entries[1].ID() != "faq-2" {
		t.Errorf("string id: got %q, want %q", entries[1].ID(), "faq-2")
	}
	if entries[1].Category() != domain.DefaultCategory {
		t.Errorf("default category: got %q", entries[1].Category())
	}
	if len(entries[1].Keywords()) != 0 {
		t.Errorf("default keywords: got %v", entries[1].Keywords())
	}
	if kws := entries[0].Keywords(); len(kws) != 2 || kws[0] != "time" {
		t.Errorf("keywords: got %v", kws)
	}

	meta := c.Meta()
	if meta.Domain != "restaurant" || meta.TotalFAQs != 3 || meta.LastUpdated != "2024-01-15" {
		t.Errorf("metadata: %+v", meta)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"faqs": [`))
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestParse_InvalidEntry(t *testing.T) {
	doc := `{"faqs": [
		{"id": 1, "question": "ok?", "answer": "ok."},
		{"id": 2, "question": "", "answer": "orphan"}
	]}`
	_, err := Parse(strings.NewReader(doc))
	if !errors.Is(err, domain.ErrInvalidEntry) {
		t.Fatalf("got %v, want ErrInvalidEntry", err)
	}
	if !strings.Contains(err.Error(), "faqs[1]") {
		t.Errorf("error must name the position: %v", err)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	c, err := Parse(strings.NewReader(`{"faqs": [], "metadata": {}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("entries: got %d, want 0", c.Len())
	}
}

func TestParse_BooleanID(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"faqs": [{"id": true, "question": "q?", "answer": "a."}]}`))
	if err == nil {
		t.Fatal("expected error for non string/number id")
	}
}
