// Package render — Markdown exporter.
// Renders blocks to tagged HTML and converts that with html-to-markdown, so
// Markdown output always agrees with what readers see on the site.
package render

import (
	"strings"
	"sync"

	"github.com/JohannesKaufmann/dom"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/pkg/errors"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/blockpipe/core"
)

var (
	mdConverter     *converter.Converter
	mdConverterOnce sync.Once
)

// markdownConverter returns the shared converter. Figure captions and quote
// footers become their own paragraphs; data URI images collapse to a
// placeholder.
func markdownConverter() *converter.Converter {
	mdConverterOnce.Do(func() {
		mdConverter = converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		)
		mdConverter.Register.RendererFor("img", converter.TagTypeInline,
			func(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
				src := dom.GetAttributeOr(n, "src", "")
				if !strings.HasPrefix(src, "data:") {
					return converter.RenderTryNext
				}
				if alt := strings.TrimSpace(dom.GetAttributeOr(n, "alt", "")); alt != "" {
					w.WriteString("[Image: " + alt + "]")
				}
				return converter.RenderSuccess
			},
			converter.PriorityEarly,
		)
		mdConverter.Register.RendererFor("figcaption", converter.TagTypeBlock,
			wrapChildren("\n\n*", "*\n\n"),
			converter.PriorityEarly,
		)
		mdConverter.Register.RendererFor("footer", converter.TagTypeBlock,
			wrapChildren("\n\n— ", "\n\n"),
			converter.PriorityEarly,
		)
	})
	return mdConverter
}

func wrapChildren(before, after string) converter.HandleRenderFunc {
	return func(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
		w.WriteString(before)
		ctx.RenderChildNodes(ctx, w, n)
		w.WriteString(after)
		return converter.RenderSuccess
	}
}

// MarkdownRenderer exports a Document as CommonMark.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Export writes the title as a level one heading followed by the body.
func (r *MarkdownRenderer) Export(doc core.Document) ([]byte, error) {
	body, err := markdownConverter().ConvertString(BlocksToHTML(doc.Blocks))
	if err != nil {
		return nil, errors.Wrap(err, "markdown conversion")
	}

	var b strings.Builder
	if title := strings.TrimSpace(doc.Meta.Title); title != "" {
		b.WriteString("# " + title + "\n\n")
	}
	if summary := strings.TrimSpace(doc.Meta.Summary); summary != "" {
		b.WriteString("> " + summary + "\n\n")
	}
	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n")
	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
