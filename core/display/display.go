// Package display builds the public HTML for a stored article body.
//
// Bodies written by the block editor carry data-block attributes; they are
// sanitized and then finished by the CTA enhancer. Bodies that predate the
// block model are plain text and go through the legacy normalizer instead.
package display

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/gaurav-prasanna/blockpipe/core"
	"github.com/gaurav-prasanna/blockpipe/core/block"
)

var (
	taggedRegex = regexp.MustCompile(`\s` + block.AttrBlock + `\s*=`)
	markupRegex = regexp.MustCompile(`<[a-zA-Z][^>]*>`)
)

// Policy returns the sanitizer policy for stored article HTML: the UGC
// policy plus the elements and attributes the renderer emits.
func Policy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowDataAttributes()
	p.AllowAttrs("class").Globally()
	p.AllowElements("section", "figure", "figcaption", "footer", "blockquote", "span", "div")
	p.AllowAttrs("src", "alt").OnElements("img")
	return p
}

// Pipeline renders stored bodies for public display.
type Pipeline struct {
	normalizer core.Normalizer
	enhancer   core.Enhancer
	policy     *bluemonday.Policy
}

// New creates a Pipeline.
func New(normalizer core.Normalizer, enhancer core.Enhancer) *Pipeline {
	return &Pipeline{
		normalizer: normalizer,
		enhancer:   enhancer,
		policy:     Policy(),
	}
}

// Kind classifies a stored body.
type Kind int

const (
	KindEmpty Kind = iota
	KindTagged
	KindMarkup
	KindLegacy
)

// Classify reports which display path body takes.
func Classify(body string) Kind {
	switch {
	case strings.TrimSpace(body) == "":
		return KindEmpty
	case taggedRegex.MatchString(body):
		return KindTagged
	case markupRegex.MatchString(body):
		return KindMarkup
	default:
		return KindLegacy
	}
}

// Render returns display HTML for body.
func (p *Pipeline) Render(body string) string {
	switch Classify(body) {
	case KindTagged:
		return p.enhancer.Enhance(p.policy.Sanitize(body))
	case KindMarkup:
		return p.policy.Sanitize(body)
	case KindLegacy:
		return p.normalizer.Normalize(body)
	default:
		return ""
	}
}
