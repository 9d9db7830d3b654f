// Package corpus loads the question/answer corpus from its JSON document
// and validates it into domain entries. The metadata block is carried
// through untouched for reporting.
package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/helpware/faqdex/internal/domain"
)

// Metadata is the corpus document's descriptive block.
type Metadata struct {
	Domain      string `json:"domain"`
	TotalFAQs   int    `json:"total_faqs"`
	LastUpdated string `json:"last_updated"`
}

// Corpus is the loaded, validated entry list plus its metadata.
type Corpus struct {
	entries []domain.Entry
	meta    Metadata
}

// Entries returns a copy of the entries in document order.
func (c *Corpus) Entries() []domain.Entry {
	out := make([]domain.Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Meta returns the metadata block.
func (c *Corpus) Meta() Metadata { return c.meta }

// Len returns the number of entries.
func (c *Corpus) Len() int { return len(c.entries) }

// flexID accepts both JSON numbers and strings as entry identifiers.
type flexID string

func (id *flexID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*id = flexID(n.String())
		return nil
	}
	return fmt.Errorf("id must be a string or number, got %s", b)
}

type entryDoc struct {
	ID       flexID   `json:"id"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

type document struct {
	FAQs     []entryDoc `json:"faqs"`
	Metadata Metadata   `json:"metadata"`
}

// Load reads and parses the corpus document at path.
func Load(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a corpus document. Entries missing a category default to
// DefaultCategory; missing keywords stay empty. An entry without question
// or answer fails with the offending array position.
func Parse(r io.Reader) (*Corpus, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	entries := make([]domain.Entry, 0, len(doc.FAQs))
	for i, fd := range doc.FAQs {
		e, err := domain.NewEntry(string(fd.ID), fd.Question, fd.Answer, fd.Category, fd.Keywords)
		if err != nil {
			return nil, fmt.Errorf("faqs[%d]: %w", i, err)
		}
		entries = append(entries, e)
	}
	return &Corpus{entries: entries, meta: doc.Metadata}, nil
}
