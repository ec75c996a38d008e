package parse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/blockpipe/core/block"
)

// ignoreIDs compares block sequences without looking at identifiers.
var ignoreIDs = cmp.Options{
	cmpopts.IgnoreFields(block.Paragraph{}, "ID"),
	cmpopts.IgnoreFields(block.Heading{}, "ID"),
	cmpopts.IgnoreFields(block.Quote{}, "ID"),
	cmpopts.IgnoreFields(block.List{}, "ID"),
	cmpopts.IgnoreFields(block.Image{}, "ID"),
	cmpopts.IgnoreFields(block.CTA{}, "ID"),
	cmpopts.EquateEmpty(),
}

func TestHTMLToBlocks_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "<div></div>", "<p>  </p>"} {
		blocks, err := HTMLToBlocks(in)
		require.NoError(t, err, in)
		assert.Empty(t, blocks, in)
	}
}

func TestHTMLToBlocks_LegacyFallback(t *testing.T) {
	blocks, err := New().Parse("plain text\n\nsecond paragraph")
	require.NoError(t, err)

	want := []block.Block{
		block.Paragraph{Text: "plain text"},
		block.Paragraph{Text: "second paragraph"},
	}
	assert.Empty(t, cmp.Diff(want, blocks, ignoreIDs))
}

func TestHTMLToBlocks_UntaggedHTMLFallback(t *testing.T) {
	blocks, err := HTMLToBlocks("<div>first\nline</div>\r\n\r\n\n<div>second</div>")
	require.NoError(t, err)

	want := []block.Block{
		block.Paragraph{Text: "first\nline"},
		block.Paragraph{Text: "second"},
	}
	assert.Empty(t, cmp.Diff(want, blocks, ignoreIDs))
}

func TestHTMLToBlocks_Tagged(t *testing.T) {
	src := `<h3 data-block="heading" data-level="h3">Q&amp;A</h3>
<h2 data-block="heading" data-level="h7">Bad level</h2>
<blockquote data-block="quote"><p>one<br />two</p><footer>Ann</footer></blockquote>
<ul data-block="list"><li>a</li><li> </li></ul>
<ol data-block="list"><li>x</li></ol>
<ul data-block="list" data-style="ordered"><li>y</li></ul>
<figure data-block="image"><img src=" /a.png " alt="Alt" /><figcaption>Cap</figcaption></figure>
<section data-block="cta"><h3>Title</h3><p>Desc</p><a href="/go">Go</a></section>
<section data-block="cta"><p>Only desc</p></section>
<p data-block="paragraph">Some <strong>bold</strong><br/>next</p>
<div data-block="poll">Vote&nbsp;now</div>`

	blocks, err := HTMLToBlocks(src)
	require.NoError(t, err)

	want := []block.Block{
		block.Heading{Level: block.H3, Text: "Q&A"},
		block.Heading{Level: block.H2, Text: "Bad level"},
		block.Quote{Text: "one\ntwo", Author: "Ann"},
		block.List{Style: block.Unordered, Items: []string{"a", ""}},
		block.List{Style: block.Ordered, Items: []string{"x"}},
		block.List{Style: block.Ordered, Items: []string{"y"}},
		block.Image{URL: "/a.png", Alt: "Alt", Caption: "Cap"},
		block.CTA{Title: "Title", Description: "Desc", ButtonLabel: "Go", ButtonURL: "/go"},
		block.CTA{Description: "Only desc"},
		block.Paragraph{Text: "Some bold\nnext"},
		block.Paragraph{Text: "Vote\u00a0now"},
	}
	assert.Empty(t, cmp.Diff(want, blocks, ignoreIDs))
}

func TestHTMLToBlocks_FreshIDs(t *testing.T) {
	src := `<p data-block="paragraph">a</p><p data-block="paragraph">b</p>`

	first, err := HTMLToBlocks(src)
	require.NoError(t, err)
	second, err := HTMLToBlocks(src)
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.NotEqual(t, first[0].BlockID(), first[1].BlockID())
	assert.NotEqual(t, first[0].BlockID(), second[0].BlockID())
}

func TestHTMLToBlocks_FlattensEmphasis(t *testing.T) {
	blocks, err := HTMLToBlocks(`<p data-block="paragraph"><em>soft</em> and <strong>loud</strong></p>`)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "soft and loud", blocks[0].(block.Paragraph).Text)
}

func TestHTMLToBlocks_StepsCardIsParagraph(t *testing.T) {
	blocks, err := HTMLToBlocks(`<section data-block="steps"><h3>How</h3><p>one</p></section>`)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, block.KindParagraph, blocks[0].Kind())
}
