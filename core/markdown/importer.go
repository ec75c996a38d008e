// Package markdown imports article bodies written in the older markdown-ish
// text editor (## headings, > quotes, - lists, **bold**) into blocks.
package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/gaurav-prasanna/blockpipe/core/block"
)

var (
	parser = goldmark.New().Parser()

	attributionRegex = regexp.MustCompile(`^(?:—|–|--)\s*(.+)$`)
)

// Import parses src and returns one block per top-level markdown block.
// Emphasis is kept in the editor's marker syntax; links keep their label.
func Import(src []byte) []block.Block {
	doc := parser.Parse(text.NewReader(src))

	var blocks []block.Block
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if b := convert(n, src); b != nil {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func convert(n ast.Node, src []byte) block.Block {
	switch v := n.(type) {
	case *ast.Heading:
		level := block.H2
		if v.Level >= 3 {
			level = block.H3
		}
		return block.Heading{ID: block.NewID(), Level: level, Text: inlineText(v, src)}

	case *ast.Paragraph:
		if img, ok := soleImage(v); ok {
			return block.Image{
				ID:      block.NewID(),
				URL:     string(img.Destination),
				Alt:     inlineText(img, src),
				Caption: string(img.Title),
			}
		}
		return block.Paragraph{ID: block.NewID(), Text: inlineText(v, src)}

	case *ast.Blockquote:
		return quote(v, src)

	case *ast.List:
		style := block.Unordered
		if v.IsOrdered() {
			style = block.Ordered
		}
		var items []string
		for item := v.FirstChild(); item != nil; item = item.NextSibling() {
			items = append(items, blockText(item, src, " "))
		}
		if len(items) == 0 {
			items = []string{""}
		}
		return block.List{ID: block.NewID(), Style: style, Items: items}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		var buf bytes.Buffer
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		content := strings.TrimRight(buf.String(), "\n")
		if strings.TrimSpace(content) == "" {
			return nil
		}
		return block.Paragraph{ID: block.NewID(), Text: content}
	}
	return nil
}

func quote(q *ast.Blockquote, src []byte) block.Block {
	var lines []string
	if t := blockText(q, src, "\n"); t != "" {
		lines = strings.Split(t, "\n")
	}

	author := ""
	if len(lines) > 1 {
		if m := attributionRegex.FindStringSubmatch(strings.TrimSpace(lines[len(lines)-1])); m != nil {
			author = strings.TrimSpace(m[1])
			lines = lines[:len(lines)-1]
		}
	}
	return block.Quote{ID: block.NewID(), Text: strings.Join(lines, "\n"), Author: author}
}

// soleImage reports whether p holds nothing but one image.
func soleImage(p *ast.Paragraph) (*ast.Image, bool) {
	if p.ChildCount() != 1 {
		return nil, false
	}
	img, ok := p.FirstChild().(*ast.Image)
	return img, ok
}

// blockText returns the text of a block node. Container nodes join their
// children with sep.
func blockText(n ast.Node, src []byte, sep string) string {
	switch n.(type) {
	case *ast.List, *ast.ListItem, *ast.Blockquote:
		var parts []string
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if t := strings.TrimSpace(blockText(c, src, sep)); t != "" {
				parts = append(parts, t)
			}
		}
		return strings.Join(parts, sep)
	default:
		return inlineText(n, src)
	}
}

// inlineText flattens the inline children of n back to editor syntax.
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.String:
			b.Write(v.Value)
		case *ast.Emphasis:
			marker := "*"
			if v.Level >= 2 {
				marker = "**"
			}
			b.WriteString(marker + inlineText(v, src) + marker)
		case *ast.AutoLink:
			b.Write(v.URL(src))
		case *ast.RawHTML:
		default:
			b.WriteString(inlineText(c, src))
		}
	}
	return strings.TrimSpace(b.String())
}
