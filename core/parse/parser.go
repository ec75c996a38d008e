// Package parse implements the BlockParser interface.
// It rebuilds a block list from HTML produced by the renderer by:
//  1. Selecting every element carrying the data-block discriminator, in document order
//  2. Reading each element's fields back according to its variant
//
// HTML with no tagged elements falls back to one paragraph per blank-line
// separated chunk of text. Parsing is a reconstruction: every block gets a
// fresh identifier.
package parse

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/internal/log"
)

// ErrParserUnavailable reports that the HTML tree could not be built at all.
// It is distinct from a document that parsed to zero blocks, which is
// returned as an empty result with a nil error.
var ErrParserUnavailable = errors.New("html parser unavailable")

var (
	taggedMatcher  = cascadia.MustCompile("[" + block.AttrBlock + "]")
	headingMatcher = cascadia.MustCompile("h1, h2, h3, h4, h5, h6")
	blankLineRegex = regexp.MustCompile(`\n\s*\n`)
)

// Elements whose end marks a line boundary inside quote and paragraph text.
var lineBoundaries = map[atom.Atom]bool{
	atom.P: true, atom.Div: true,
	atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true,
}

// HTMLParser parses tagged HTML into blocks.
type HTMLParser struct{}

// New creates an HTMLParser.
func New() *HTMLParser {
	return &HTMLParser{}
}

// Parse implements core.BlockParser.
func (p *HTMLParser) Parse(src string) ([]block.Block, error) {
	return HTMLToBlocks(src)
}

// HTMLToBlocks parses src into an ordered block list.
func HTMLToBlocks(src string) ([]block.Block, error) {
	if strings.TrimSpace(src) == "" {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, errors.Wrapf(ErrParserUnavailable, "building document: %v", err)
	}

	tagged := doc.FindMatcher(taggedMatcher)
	if tagged.Length() == 0 {
		log.Get().Debug("no tagged blocks, falling back to plain text", zap.Int("bytes", len(src)))
		return plainTextBlocks(doc.Find("body").Text()), nil
	}

	blocks := make([]block.Block, 0, tagged.Length())
	tagged.Each(func(_ int, s *goquery.Selection) {
		blocks = append(blocks, parseElement(s))
	})
	return blocks, nil
}

func parseElement(s *goquery.Selection) block.Block {
	id := block.NewID()
	kind := block.Kind(strings.TrimSpace(s.AttrOr(block.AttrBlock, "")))

	switch kind {
	case block.KindHeading:
		return block.Heading{
			ID:    id,
			Level: block.ParseHeadingLevel(strings.TrimSpace(s.AttrOr(block.AttrLevel, ""))),
			Text:  strings.TrimSpace(s.Text()),
		}

	case block.KindQuote:
		return block.Quote{
			ID:     id,
			Text:   textWithBreaks(s, atom.Footer),
			Author: strings.TrimSpace(s.Find("footer").Last().Text()),
		}

	case block.KindList:
		items := make([]string, 0)
		s.Find("li").Each(func(_ int, li *goquery.Selection) {
			items = append(items, strings.TrimSpace(li.Text()))
		})
		return block.List{ID: id, Style: listStyle(s), Items: items}

	case block.KindImage:
		img := s.Find("img").First()
		return block.Image{
			ID:      id,
			URL:     strings.TrimSpace(img.AttrOr("src", "")),
			Alt:     img.AttrOr("alt", ""),
			Caption: strings.TrimSpace(s.Find("figcaption").First().Text()),
		}

	case block.KindCTA:
		cta := block.CTA{
			ID:          id,
			Title:       strings.TrimSpace(s.FindMatcher(headingMatcher).First().Text()),
			Description: textWithBreaks(s.Find("p").First()),
		}
		if link := s.Find("a").First(); link.Length() > 0 {
			cta.ButtonLabel = strings.TrimSpace(link.Text())
			cta.ButtonURL = link.AttrOr("href", "")
		}
		return cta

	default:
		text := textWithBreaks(s)
		if text == "" {
			text = strings.TrimSpace(s.Text())
		}
		return block.Paragraph{ID: id, Text: text}
	}
}

func listStyle(s *goquery.Selection) block.ListStyle {
	switch block.ListStyle(strings.TrimSpace(s.AttrOr(block.AttrStyle, ""))) {
	case block.Ordered:
		return block.Ordered
	case block.Unordered:
		return block.Unordered
	}
	if goquery.NodeName(s) == "ol" {
		return block.Ordered
	}
	return block.Unordered
}

// textWithBreaks returns the text of the first node in s, turning <br> and
// the end of paragraph-like elements into newlines. Elements whose atom is
// listed in skip are left out entirely.
func textWithBreaks(s *goquery.Selection, skip ...atom.Atom) string {
	if s.Length() == 0 {
		return ""
	}
	skipped := make(map[atom.Atom]bool, len(skip))
	for _, a := range skip {
		skipped[a] = true
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				b.WriteString(c.Data)
			case html.ElementNode:
				if skipped[c.DataAtom] {
					continue
				}
				if c.DataAtom == atom.Br {
					b.WriteByte('\n')
					continue
				}
				walk(c)
				if lineBoundaries[c.DataAtom] {
					b.WriteByte('\n')
				}
			}
		}
	}
	walk(s.Get(0))

	return strings.TrimSpace(b.String())
}

func plainTextBlocks(text string) []block.Block {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var blocks []block.Block
	for _, chunk := range blankLineRegex.Split(text, -1) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		blocks = append(blocks, block.Paragraph{ID: block.NewID(), Text: chunk})
	}
	return blocks
}
