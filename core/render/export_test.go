package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/blockpipe/core"
	"github.com/gaurav-prasanna/blockpipe/core/block"
)

func sampleDocument() core.Document {
	return core.Document{
		Meta: core.ArticleMeta{
			Slug:        "sample",
			Title:       "Sample Article",
			Summary:     "A short summary.",
			Tags:        []string{"go"},
			PublishedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		Blocks: []block.Block{
			block.Paragraph{ID: "p1", Text: "Intro with **bold** words."},
			block.Heading{ID: "h1", Level: block.H2, Text: "First"},
			block.List{ID: "l1", Style: block.Unordered, Items: []string{"alpha", "beta"}},
			block.Heading{ID: "h2", Level: block.H3, Text: "Second"},
			block.List{ID: "l2", Style: block.Ordered, Items: []string{"one", "two"}},
			block.Quote{ID: "q1", Text: "Be brief.", Author: "Ann"},
			block.Image{ID: "i1", URL: "/uploads/cat.png", Alt: "Cat", Caption: "A cat"},
			block.CTA{ID: "c1", Title: "Join", Description: "Sign up today", ButtonLabel: "Go", ButtonURL: "/go"},
		},
	}
}

func TestMarkdownRenderer_Export(t *testing.T) {
	r := NewMarkdownRenderer()
	assert.Equal(t, ".md", r.Extension())

	out, err := r.Export(sampleDocument())
	require.NoError(t, err)
	md := string(out)

	assert.True(t, strings.HasPrefix(md, "# Sample Article\n\n> A short summary.\n\n"), md)
	assert.Contains(t, md, "**bold**")
	assert.Contains(t, md, "## First")
	assert.Contains(t, md, "### Second")
	assert.Contains(t, md, "- alpha")
	assert.Contains(t, md, "1. one")
	assert.Contains(t, md, "![Cat](/uploads/cat.png)")
	assert.Contains(t, md, "*A cat*")
	assert.Contains(t, md, "Be brief.")
	assert.Contains(t, md, "Ann")
	assert.Contains(t, md, "[Go](/go)")
	assert.NotContains(t, md, "data-block")
}

func TestMarkdownRenderer_DataURIImage(t *testing.T) {
	doc := core.Document{Blocks: []block.Block{
		block.Image{ID: "i", URL: "data:image/png;base64,AAAA", Alt: "Inline"},
	}}
	out, err := NewMarkdownRenderer().Export(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "[Image: Inline]")
	assert.NotContains(t, string(out), "base64")
}

func TestJSONRenderer_Export(t *testing.T) {
	r := NewJSONRenderer(0, 3)
	assert.Equal(t, ".json", r.Extension())

	out, err := r.Export(sampleDocument())
	require.NoError(t, err)

	var got struct {
		Metadata core.ArticleMeta `json:"metadata"`
		Blocks   block.Sequence   `json:"blocks"`
		HTML     string           `json:"html"`
		Outline  []OutlineEntry   `json:"outline"`
		Sections []Section        `json:"sections"`
		Stats    Stats            `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(out, &got))

	assert.Equal(t, "Sample Article", got.Metadata.Title)
	assert.Len(t, got.Blocks, 8)
	assert.Equal(t, BlocksToHTML(sampleDocument().Blocks), got.HTML)
	assert.Equal(t, []OutlineEntry{
		{ID: "h1", Level: block.H2, Text: "First"},
		{ID: "h2", Level: block.H3, Text: "Second"},
	}, got.Outline)
	require.Len(t, got.Sections, 2)
	assert.Equal(t, "alpha\nbeta", got.Sections[0].Text)
	assert.Equal(t, 8, got.Stats.Blocks)
	assert.Equal(t, 2, got.Stats.ByKind["heading"])
	assert.Equal(t, 1, got.Stats.ReadingMinutes)
	assert.Equal(t, "Intro with bold…", got.Stats.Excerpt)
}

func TestJSONRenderer_EmptyDocument(t *testing.T) {
	built := NewJSONRenderer(200, 10).Build(core.Document{})
	assert.Equal(t, 0, built.Stats.Words)
	assert.Equal(t, 0, built.Stats.ReadingMinutes)
	assert.Empty(t, built.Outline)
	assert.NotNil(t, built.Blocks)

	out, err := NewJSONRenderer(200, 10).Export(core.Document{})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"blocks": []`)
	assert.Contains(t, string(out), `"outline": []`)
}

func TestPDFRenderer_Export(t *testing.T) {
	r := NewPDFRenderer()
	assert.Equal(t, ".pdf", r.Extension())

	out, err := r.Export(sampleDocument())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	empty, err := r.Export(core.Document{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(empty, []byte("%PDF-")))
}

func TestExporters_SatisfyInterface(t *testing.T) {
	for _, e := range []core.Exporter{NewMarkdownRenderer(), NewJSONRenderer(0, 0), NewPDFRenderer()} {
		assert.NotEmpty(t, e.Extension())
	}
}
