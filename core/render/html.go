// Package render — HTML block renderer.
// Maps an ordered block list to one tagged HTML element per block. Blocks with
// no effective content render to nothing so the preview never shows empty
// tags for blocks that are still being filled in.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/core/inline"
	"github.com/gaurav-prasanna/blockpipe/internal/log"
	"go.uber.org/zap"
)

// ImagePlaceholderAlt is the alt text used when an image has neither alt nor
// caption.
const ImagePlaceholderAlt = "image"

// HTMLRenderer renders blocks to tagged HTML.
type HTMLRenderer struct{}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render joins the non-empty block renderings with newlines.
func (r *HTMLRenderer) Render(blocks []block.Block) string {
	return BlocksToHTML(blocks)
}

// BlocksToHTML renders blocks in order, skipping empty and unknown ones.
func BlocksToHTML(blocks []block.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if html := Block(b); html != "" {
			parts = append(parts, html)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// Block renders a single block, or returns "" when it has no content.
func Block(b block.Block) string {
	switch v := b.(type) {
	case block.Paragraph:
		return Paragraph(v.Text)
	case block.Heading:
		return heading(v)
	case block.Quote:
		return quote(v)
	case block.List:
		return List(v.Style, v.Items)
	case block.Image:
		return image(v)
	case block.CTA:
		return cta(v)
	default:
		if b != nil {
			log.Get().Debug("skipping unrenderable block",
				zap.String("id", b.BlockID()), zap.String("kind", string(b.Kind())))
		}
		return ""
	}
}

// Paragraph renders a paragraph element. Exported for the legacy normalizer,
// which emits the same shape.
func Paragraph(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return fmt.Sprintf(`<p %s="%s" class="text-lg text-gray-700 leading-relaxed mb-6">%s</p>`,
		block.AttrBlock, block.KindParagraph, inline.FormatLines(text))
}

// List renders a list element, dropping blank items. A list with no
// remaining items renders nothing.
func List(style block.ListStyle, items []string) string {
	var b strings.Builder
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		b.WriteString(`<li class="mb-2">`)
		b.WriteString(inline.Format(item))
		b.WriteString(`</li>`)
	}
	if b.Len() == 0 {
		return ""
	}

	tag, class := "ul", "list-disc"
	if style == block.Ordered {
		tag, class = "ol", "list-decimal"
	} else {
		style = block.Unordered
	}
	return fmt.Sprintf(`<%s %s="%s" %s="%s" class="%s list-outside pl-6 text-gray-700 leading-relaxed my-6">%s</%s>`,
		tag, block.AttrBlock, block.KindList, block.AttrStyle, style, class, b.String(), tag)
}

func heading(h block.Heading) string {
	text := strings.TrimSpace(h.Text)
	if text == "" {
		return ""
	}
	level := block.ParseHeadingLevel(string(h.Level))
	size := "text-3xl"
	if level == block.H3 {
		size = "text-2xl"
	}
	return fmt.Sprintf(`<%s %s="%s" %s="%s" class="%s font-bold text-gray-900 mt-10 mb-4">%s</%s>`,
		level, block.AttrBlock, block.KindHeading, block.AttrLevel, level, size, inline.Format(text), level)
}

func quote(q block.Quote) string {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return ""
	}
	author := ""
	if a := strings.TrimSpace(q.Author); a != "" {
		author = `<footer class="mt-4 text-sm text-gray-500">` + inline.Format(a) + `</footer>`
	}
	return fmt.Sprintf(`<blockquote %s="%s" class="border-l-4 border-blue-500 pl-6 italic text-gray-700 bg-blue-50/60 py-4 px-6 rounded-r-xl my-8"><p class="text-lg leading-relaxed">%s</p>%s</blockquote>`,
		block.AttrBlock, block.KindQuote, inline.FormatLines(text), author)
}

func image(img block.Image) string {
	url := strings.TrimSpace(img.URL)
	if url == "" {
		return ""
	}
	caption := strings.TrimSpace(img.Caption)
	alt := strings.TrimSpace(img.Alt)
	if alt == "" {
		alt = caption
	}
	if alt == "" {
		alt = ImagePlaceholderAlt
	}
	figcaption := ""
	if caption != "" {
		figcaption = `<figcaption class="mt-3 text-sm text-gray-500 text-center">` + inline.Format(caption) + `</figcaption>`
	}
	return fmt.Sprintf(`<figure %s="%s" class="my-10 flex flex-col items-center"><div class="w-full rounded-3xl overflow-hidden shadow-lg bg-gray-100"><img src="%s" alt="%s" class="w-full object-cover" /></div>%s</figure>`,
		block.AttrBlock, block.KindImage, inline.Escape(url), inline.Escape(alt), figcaption)
}

func cta(c block.CTA) string {
	title := strings.TrimSpace(c.Title)
	description := strings.TrimSpace(c.Description)
	label := strings.TrimSpace(c.ButtonLabel)
	url := strings.TrimSpace(c.ButtonURL)
	if title == "" && description == "" && label == "" {
		return ""
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(`<h3 class="text-2xl font-bold">` + inline.Format(title) + `</h3>`)
	}
	if description != "" {
		b.WriteString(`<p class="text-lg text-blue-100 leading-relaxed">` + inline.FormatLines(description) + `</p>`)
	}
	if label != "" && url != "" {
		b.WriteString(`<a href="` + inline.Escape(url) + `" class="inline-flex items-center px-6 py-3 bg-white text-gray-900 font-semibold rounded-xl hover:bg-gray-100 transition-colors duration-200">` + inline.Escape(label) + `</a>`)
	}
	return fmt.Sprintf(`<section %s="%s" class="bg-gradient-to-r from-blue-600 via-purple-600 to-indigo-600 text-white rounded-3xl p-10 my-12 text-center space-y-4">%s</section>`,
		block.AttrBlock, block.KindCTA, b.String())
}
