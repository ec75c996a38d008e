// Package enhance implements the Enhancer interface.
// CTAEnhancer is a second pass over rendered article HTML that re-wraps each
// call-to-action section in the public presentation template. It only knows
// the renderer's own fixed CTA markup, which is why plain regular expressions
// are enough here; general HTML goes through the parse package instead.
package enhance

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/internal/log"
)

var (
	sectionRegex = regexp.MustCompile(`(?is)<section\b[^>]*\s` + block.AttrBlock + `\s*=\s*["']` + string(block.KindCTA) + `["'][^>]*>.*?</section>`)
	headingRegex = regexp.MustCompile(`(?is)<h[1-6]\b[^>]*>(.*?)</h[1-6]>`)
	paraRegex    = regexp.MustCompile(`(?is)<p\b[^>]*>(.*?)</p>`)
	linkRegex    = regexp.MustCompile(`(?is)<a\b[^>]*?\shref\s*=\s*["']([^"']*)["'][^>]*>(.*?)</a>`)
	iconRegex    = regexp.MustCompile(`(?is)<svg\b.*?</svg>`)
)

const arrowIcon = `<svg class="ml-3 h-5 w-5" fill="none" stroke="currentColor" viewBox="0 0 24 24" aria-hidden="true"><path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M13 7l5 5m0 0l-5 5m5-5H6"></path></svg>`

// Option configures a CTAEnhancer.
type Option func(*CTAEnhancer)

// WithButtonIcon toggles the arrow icon appended to the button label.
func WithButtonIcon(on bool) Option {
	return func(e *CTAEnhancer) { e.icon = on }
}

// CTAEnhancer rewrites CTA sections. It never invents content: a part
// missing from the source section is missing from the result.
type CTAEnhancer struct {
	icon bool
}

// New creates a CTAEnhancer. The button icon is on by default.
func New(opts ...Option) *CTAEnhancer {
	e := &CTAEnhancer{icon: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EnhanceCTASections rewrites html with the default options.
func EnhanceCTASections(html string) string {
	return New().Enhance(html)
}

// Enhance implements core.Enhancer. Text outside matched sections is
// returned byte for byte.
func (e *CTAEnhancer) Enhance(html string) string {
	count := 0
	out := sectionRegex.ReplaceAllStringFunc(html, func(section string) string {
		count++
		return e.rewrite(section)
	})
	if count > 0 {
		log.Get().Debug("enhanced cta sections", zap.Int("count", count))
	}
	return out
}

func (e *CTAEnhancer) rewrite(section string) string {
	var b strings.Builder
	b.WriteString(`<section ` + block.AttrBlock + `="` + string(block.KindCTA) + `" class="not-prose relative my-16 overflow-hidden rounded-[2rem] bg-gray-900 px-8 py-12 text-center text-white shadow-2xl sm:px-12">`)
	b.WriteString(`<div class="relative z-10 mx-auto max-w-2xl space-y-6">`)

	if m := headingRegex.FindStringSubmatch(section); m != nil {
		b.WriteString(`<h3 class="text-3xl font-black tracking-tight">` + m[1] + `</h3>`)
	}
	if m := paraRegex.FindStringSubmatch(section); m != nil {
		b.WriteString(`<p class="text-lg leading-relaxed text-gray-300">` + m[1] + `</p>`)
	}
	if m := linkRegex.FindStringSubmatch(section); m != nil {
		label := strings.TrimSpace(iconRegex.ReplaceAllString(m[2], ""))
		b.WriteString(`<a href="` + m[1] + `" class="inline-flex items-center rounded-xl bg-white px-8 py-4 font-bold text-gray-900 transition-transform duration-300 hover:scale-105">` + label)
		if e.icon {
			b.WriteString(arrowIcon)
		}
		b.WriteString(`</a>`)
	}

	b.WriteString(`</div></section>`)
	return b.String()
}
