// Package render — JSON exporter.
// Carries the metadata and blocks of a document together with derived data
// consumers would otherwise recompute: the rendered HTML, a heading outline,
// per-heading sections and reading statistics.
package render

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/gaurav-prasanna/blockpipe/core"
	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/core/excerpt"
)

const defaultExcerptWords = 40

// OutlineEntry is one heading of a document.
type OutlineEntry struct {
	ID    string             `json:"id"`
	Level block.HeadingLevel `json:"level"`
	Text  string             `json:"text"`
}

// Section is the plain text between one heading and the next.
type Section struct {
	Heading string             `json:"heading"`
	Level   block.HeadingLevel `json:"level"`
	Text    string             `json:"text"`
}

// Stats summarizes a document body.
type Stats struct {
	Blocks         int            `json:"blocks"`
	ByKind         map[string]int `json:"by_kind"`
	Words          int            `json:"words"`
	ReadingMinutes int            `json:"reading_minutes"`
	Excerpt        string         `json:"excerpt"`
}

// DocumentJSON is the exported shape.
type DocumentJSON struct {
	Metadata core.ArticleMeta `json:"metadata"`
	Blocks   block.Sequence   `json:"blocks"`
	HTML     string           `json:"html"`
	Outline  []OutlineEntry   `json:"outline"`
	Sections []Section        `json:"sections,omitempty"`
	Stats    Stats            `json:"stats"`
}

// JSONRenderer produces structured JSON output from a Document.
type JSONRenderer struct {
	WordsPerMinute int
	ExcerptWords   int
}

// NewJSONRenderer creates a JSONRenderer. Zero values take defaults.
func NewJSONRenderer(wordsPerMinute, excerptWords int) *JSONRenderer {
	if wordsPerMinute <= 0 {
		wordsPerMinute = excerpt.DefaultWordsPerMinute
	}
	if excerptWords <= 0 {
		excerptWords = defaultExcerptWords
	}
	return &JSONRenderer{WordsPerMinute: wordsPerMinute, ExcerptWords: excerptWords}
}

// Build derives the exported structure without encoding it.
func (r *JSONRenderer) Build(doc core.Document) DocumentJSON {
	text := excerpt.PlainText(doc.Blocks)

	byKind := make(map[string]int)
	for _, b := range doc.Blocks {
		byKind[string(b.Kind())]++
	}

	blocks := block.Sequence(doc.Blocks)
	if blocks == nil {
		blocks = block.Sequence{}
	}

	return DocumentJSON{
		Metadata: doc.Meta,
		Blocks:   blocks,
		HTML:     BlocksToHTML(doc.Blocks),
		Outline:  outline(doc.Blocks),
		Sections: sections(doc.Blocks),
		Stats: Stats{
			Blocks:         len(doc.Blocks),
			ByKind:         byKind,
			Words:          excerpt.Words(text),
			ReadingMinutes: excerpt.ReadingMinutes(text, r.WordsPerMinute),
			Excerpt:        excerpt.Summary(text, r.ExcerptWords),
		},
	}
}

// Export encodes Build(doc) as indented JSON.
func (r *JSONRenderer) Export(doc core.Document) ([]byte, error) {
	data, err := json.MarshalIndent(r.Build(doc), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling JSON")
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

func outline(blocks []block.Block) []OutlineEntry {
	entries := make([]OutlineEntry, 0)
	for _, b := range blocks {
		h, ok := b.(block.Heading)
		if !ok || strings.TrimSpace(h.Text) == "" {
			continue
		}
		entries = append(entries, OutlineEntry{
			ID:    h.ID,
			Level: block.ParseHeadingLevel(string(h.Level)),
			Text:  strings.TrimSpace(h.Text),
		})
	}
	return entries
}

// sections groups the blocks after each heading. Blocks before the first
// heading belong to no section.
func sections(blocks []block.Block) []Section {
	var out []Section
	var current *Section
	var body []block.Block

	flush := func() {
		if current != nil {
			current.Text = excerpt.PlainText(body)
			out = append(out, *current)
		}
	}
	for _, b := range blocks {
		if h, ok := b.(block.Heading); ok && strings.TrimSpace(h.Text) != "" {
			flush()
			current = &Section{
				Heading: strings.TrimSpace(h.Text),
				Level:   block.ParseHeadingLevel(string(h.Level)),
			}
			body = nil
			continue
		}
		if current != nil {
			body = append(body, b)
		}
	}
	flush()
	return out
}
