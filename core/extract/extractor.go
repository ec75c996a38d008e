// Package extract implements the Extractor interface.
// It isolates the article body from a full published page so the block
// parser sees only the article, not the site around it:
//  1. Removing site chrome (nav, header, scripts, sidebars, page footers)
//  2. Picking the smallest element holding every tagged block, falling back
//     to <main>, <article>, or <body>
package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/internal/log"
)

// noiseSelectors are removed before extraction. Quote footers are kept;
// see removeNoise.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "header", "aside",
	"iframe", "form",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}

var pageRegex = regexp.MustCompile(`(?i)<(?:!doctype|html|body)\b`)

var taggedSelector = "[" + block.AttrBlock + "]"

// IsPage reports whether html is a whole document rather than a fragment.
func IsPage(html string) bool {
	return pageRegex.MatchString(html)
}

// HTMLExtractor returns the article body of a page.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract returns the inner HTML of the article container.
func (e *HTMLExtractor) Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", errors.Wrap(err, "parsing HTML")
	}
	removeNoise(doc)

	content := taggedContainer(doc)
	if content == nil {
		for _, tag := range []string{"main", "article", "body"} {
			if sel := doc.Find(tag); sel.Length() > 0 {
				content = sel.First()
				break
			}
		}
	}
	if content == nil {
		return "", errors.New("no content container found in HTML")
	}

	result, err := content.Html()
	if err != nil {
		return "", errors.Wrap(err, "serializing content")
	}
	log.Get().Debug("extracted article body",
		zap.String("container", goquery.NodeName(content)),
		zap.Int("bytes", len(result)),
	)
	return strings.TrimSpace(result), nil
}

func removeNoise(doc *goquery.Document) {
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
	// Page footers go; a quote's attribution footer is content.
	doc.Find("footer").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Closest("blockquote").Length() == 0
	}).Remove()
}

// taggedContainer walks up from the first tagged block until the ancestor
// holds every tagged block on the page.
func taggedContainer(doc *goquery.Document) *goquery.Selection {
	tagged := doc.Find(taggedSelector)
	if tagged.Length() == 0 {
		return nil
	}
	for s := tagged.First().Parent(); s.Length() > 0; s = s.Parent() {
		if s.Find(taggedSelector).Length() == tagged.Length() {
			return s
		}
	}
	return nil
}
