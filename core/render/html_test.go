package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gaurav-prasanna/blockpipe/core/block"
)

func TestBlocksToHTML_Paragraph(t *testing.T) {
	got := BlocksToHTML([]block.Block{block.Paragraph{ID: "p", Text: "Hello **world**\nsecond <line>"}})
	assert.Equal(t,
		`<p data-block="paragraph" class="text-lg text-gray-700 leading-relaxed mb-6">Hello <strong>world</strong><br />second &lt;line&gt;</p>`,
		got)
}

func TestBlocksToHTML_Heading(t *testing.T) {
	assert.Equal(t,
		`<h3 data-block="heading" data-level="h3" class="text-2xl font-bold text-gray-900 mt-10 mb-4">Sub</h3>`,
		BlocksToHTML([]block.Block{block.Heading{ID: "h", Level: block.H3, Text: " Sub "}}))

	got := BlocksToHTML([]block.Block{block.Heading{ID: "h", Level: "h6", Text: "Odd"}})
	assert.True(t, strings.HasPrefix(got, `<h2 data-block="heading" data-level="h2"`), got)
}

func TestBlocksToHTML_Quote(t *testing.T) {
	got := BlocksToHTML([]block.Block{block.Quote{ID: "q", Text: "line1\nline2", Author: "Ann"}})
	assert.Contains(t, got, `<blockquote data-block="quote"`)
	assert.Contains(t, got, `<p class="text-lg leading-relaxed">line1<br />line2</p>`)
	assert.Contains(t, got, `<footer class="mt-4 text-sm text-gray-500">Ann</footer></blockquote>`)

	noAuthor := BlocksToHTML([]block.Block{block.Quote{ID: "q", Text: "x", Author: "  "}})
	assert.NotContains(t, noAuthor, "<footer")
}

func TestBlocksToHTML_List(t *testing.T) {
	got := BlocksToHTML([]block.Block{block.List{ID: "l", Style: block.Ordered, Items: []string{"one", " ", "**two**"}}})
	assert.Equal(t,
		`<ol data-block="list" data-style="ordered" class="list-decimal list-outside pl-6 text-gray-700 leading-relaxed my-6"><li class="mb-2">one</li><li class="mb-2"><strong>two</strong></li></ol>`,
		got)

	unordered := BlocksToHTML([]block.Block{block.List{ID: "l", Style: "", Items: []string{"a"}}})
	assert.True(t, strings.HasPrefix(unordered, `<ul data-block="list" data-style="unordered"`), unordered)
}

func TestBlocksToHTML_Image(t *testing.T) {
	got := BlocksToHTML([]block.Block{block.Image{ID: "i", URL: "/a.png?x=1&y=2", Caption: "Cap"}})
	assert.Contains(t, got, `<img src="/a.png?x=1&amp;y=2" alt="Cap" class="w-full object-cover" />`)
	assert.Contains(t, got, `<figcaption class="mt-3 text-sm text-gray-500 text-center">Cap</figcaption>`)

	placeholder := BlocksToHTML([]block.Block{block.Image{ID: "i", URL: "/b.png"}})
	assert.Contains(t, placeholder, `alt="image"`)
	assert.NotContains(t, placeholder, "<figcaption")

	explicit := BlocksToHTML([]block.Block{block.Image{ID: "i", URL: "/b.png", Alt: "Alt", Caption: "Cap"}})
	assert.Contains(t, explicit, `alt="Alt"`)
}

func TestBlocksToHTML_CTA(t *testing.T) {
	full := BlocksToHTML([]block.Block{block.CTA{ID: "c", Title: "Join", Description: "Now", ButtonLabel: "Go", ButtonURL: "/go"}})
	assert.Contains(t, full, `<section data-block="cta"`)
	assert.Contains(t, full, `<h3 class="text-2xl font-bold">Join</h3>`)
	assert.Contains(t, full, `<p class="text-lg text-blue-100 leading-relaxed">Now</p>`)
	assert.Contains(t, full, `<a href="/go" class="`)
	assert.Contains(t, full, `>Go</a></section>`)
}

func TestBlocksToHTML_CTAButtonNeedsURL(t *testing.T) {
	got := BlocksToHTML([]block.Block{block.CTA{ID: "c", Title: "Join", Description: "Now", ButtonLabel: "Go"}})
	assert.Contains(t, got, "<h3")
	assert.Contains(t, got, "<p")
	assert.NotContains(t, got, "<a ")

	labelOnly := BlocksToHTML([]block.Block{block.CTA{ID: "c", ButtonLabel: "Go"}})
	assert.Contains(t, labelOnly, `<section data-block="cta"`)
	assert.NotContains(t, labelOnly, "<h3")
	assert.NotContains(t, labelOnly, "<a ")
}

func TestBlocksToHTML_EmptyBlocksSuppressed(t *testing.T) {
	tests := []struct {
		name string
		b    block.Block
	}{
		{"whitespace paragraph", block.Paragraph{ID: "p", Text: "   "}},
		{"blank list", block.List{ID: "l", Items: []string{"", ""}}},
		{"empty heading", block.Heading{ID: "h", Level: block.H2}},
		{"empty quote with author", block.Quote{ID: "q", Author: "Ann"}},
		{"image without url", block.Image{ID: "i", Caption: "pending"}},
		{"cta with only url", block.CTA{ID: "c", ButtonURL: "/x"}},
		{"unknown", block.Unknown{ID: "u", Type: "video"}},
		{"nil", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "", BlocksToHTML([]block.Block{tt.b}))
		})
	}
}

func TestBlocksToHTML_JoinsWithNewlines(t *testing.T) {
	got := NewHTMLRenderer().Render([]block.Block{
		block.Paragraph{ID: "1", Text: "a"},
		block.Paragraph{ID: "2", Text: ""},
		block.Unknown{ID: "3", Type: "poll"},
		block.Paragraph{ID: "4", Text: "b"},
	})
	lines := strings.Split(got, "\n")
	assert.Len(t, lines, 2)
	assert.Empty(t, BlocksToHTML(nil))
}
