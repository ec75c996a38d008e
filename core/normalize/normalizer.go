// Package normalize implements the Normalizer interface.
// It gives legacy article bodies (plain text with manual line breaks, stored
// before the block editor existed) the same tagged HTML shape the block
// renderer produces, without migrating the stored content:
//   - bullet and numbered lines become lists
//   - instructional lines ("How do I ...? Do this. Then that. ...") become a steps card
//   - every other line becomes a paragraph
package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/core/inline"
	"github.com/gaurav-prasanna/blockpipe/core/render"
)

// StepsRule configures when a line is promoted to a steps card.
type StepsRule struct {
	// MinSentences is the number of sentence segments a line needs before it
	// is considered at all (heading candidate included).
	MinSentences int `yaml:"min_sentences"`
	// MinSteps is the number of distinct step sentences left after the heading.
	MinSteps int `yaml:"min_steps"`
	// LeadWords are the interrogatives the heading must start with.
	LeadWords []string `yaml:"lead_words"`
}

// DefaultStepsRule returns the thresholds used when nothing is configured.
func DefaultStepsRule() StepsRule {
	return StepsRule{
		MinSentences: 3,
		MinSteps:     3,
		LeadWords: []string{
			"How", "What", "Why", "When", "Where",
			"Как", "Что", "Почему", "Зачем", "Когда", "Где",
		},
	}
}

var (
	lineSplitRegex   = regexp.MustCompile(`\r\n|\r|\n`)
	bulletRegex      = regexp.MustCompile(`^\s*[-•‣◦▪●]\s+(.*)$`)
	numberRegex      = regexp.MustCompile(`^\s*\d+[.)]\s+(.*)$`)
	spaceRegex       = regexp.MustCompile(`\s+`)
	sentenceGapRegex = regexp.MustCompile(`([.!?])(\p{Lu})`)
	trailingRegex    = regexp.MustCompile(`[\s.!?…:;,]+$`)
	leadingDashRegex = regexp.MustCompile(`^[\s\-–—]+`)
)

// LegacyNormalizer converts legacy text to display HTML.
type LegacyNormalizer struct {
	rule StepsRule
}

// New creates a LegacyNormalizer. Zero fields of rule take their defaults.
func New(rule StepsRule) *LegacyNormalizer {
	def := DefaultStepsRule()
	if rule.MinSentences <= 0 {
		rule.MinSentences = def.MinSentences
	}
	if rule.MinSteps <= 0 {
		rule.MinSteps = def.MinSteps
	}
	if len(rule.LeadWords) == 0 {
		rule.LeadWords = def.LeadWords
	}
	return &LegacyNormalizer{rule: rule}
}

// LegacyTextToHTML normalizes raw with the default rule.
func LegacyTextToHTML(raw string) string {
	return New(StepsRule{}).Normalize(raw)
}

// Normalize implements core.Normalizer. It never fails; empty input yields
// an empty string.
func (n *LegacyNormalizer) Normalize(raw string) string {
	var (
		out   []string
		items []string
		style block.ListStyle
	)
	flush := func() {
		if len(items) > 0 {
			if html := render.List(style, items); html != "" {
				out = append(out, html)
			}
		}
		items = nil
	}
	add := func(s block.ListStyle, item string) {
		if len(items) > 0 && style != s {
			flush()
		}
		style = s
		items = append(items, item)
	}

	for _, line := range lineSplitRegex.Split(raw, -1) {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flush()
		case bulletRegex.MatchString(trimmed):
			add(block.Unordered, bulletRegex.FindStringSubmatch(trimmed)[1])
		case numberRegex.MatchString(trimmed):
			add(block.Ordered, numberRegex.FindStringSubmatch(trimmed)[1])
		default:
			flush()
			if card, ok := n.stepsCard(trimmed); ok {
				out = append(out, card)
			} else {
				out = append(out, render.Paragraph(trimmed))
			}
		}
	}
	flush()

	return strings.TrimSpace(strings.Join(out, "\n"))
}

func (n *LegacyNormalizer) stepsCard(line string) (string, bool) {
	normalized := spaceRegex.ReplaceAllString(line, " ")
	normalized = sentenceGapRegex.ReplaceAllString(normalized, "$1 $2")

	segments := splitSentences(normalized)
	if len(segments) < n.rule.MinSentences {
		return "", false
	}

	title := cleanSegment(segments[0])
	if !n.startsWithLeadWord(title) {
		return "", false
	}

	steps := make([]string, 0, len(segments)-1)
	seen := make(map[string]bool, len(segments)-1)
	for _, seg := range segments[1:] {
		step := cleanSegment(seg)
		key := strings.ToLower(step)
		if step == "" || seen[key] {
			continue
		}
		seen[key] = true
		steps = append(steps, step)
	}
	if len(steps) < n.rule.MinSteps {
		return "", false
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<section %s="%s" class="not-prose my-10 rounded-3xl border border-blue-100 bg-blue-50/60 p-8">`,
		block.AttrBlock, block.KindSteps)
	b.WriteString(`<h3 class="text-2xl font-bold text-gray-900 mb-6">` + inline.Format(title) + `</h3>`)
	b.WriteString(`<ol class="grid gap-4 md:grid-cols-2">`)
	for i, step := range steps {
		fmt.Fprintf(&b, `<li class="flex items-start gap-4 rounded-2xl bg-white p-5 shadow-sm"><span class="flex h-10 w-10 shrink-0 items-center justify-center rounded-full bg-blue-600 text-sm font-bold text-white">%02d</span><p class="text-gray-700 leading-relaxed">%s</p></li>`,
			i+1, inline.Format(step))
	}
	b.WriteString(`</ol></section>`)
	return b.String(), true
}

func (n *LegacyNormalizer) startsWithLeadWord(title string) bool {
	fields := strings.Fields(title)
	if len(fields) == 0 {
		return false
	}
	first := strings.TrimFunc(fields[0], func(r rune) bool { return !unicode.IsLetter(r) })
	for _, w := range n.rule.LeadWords {
		if strings.EqualFold(first, w) {
			return true
		}
	}
	return false
}

// splitSentences cuts s after each run of terminal punctuation that is
// followed by whitespace or the end of the string, so "2.5" stays whole.
func splitSentences(s string) []string {
	var out []string
	runes := []rune(s)
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		j := i
		for j+1 < len(runes) && isTerminal(runes[j+1]) {
			j++
		}
		if j+1 == len(runes) || unicode.IsSpace(runes[j+1]) {
			if seg := strings.TrimSpace(string(runes[start : j+1])); seg != "" {
				out = append(out, seg)
			}
			start = j + 1
		}
		i = j
	}
	if seg := strings.TrimSpace(string(runes[start:])); seg != "" {
		out = append(out, seg)
	}
	return out
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func cleanSegment(s string) string {
	s = trailingRegex.ReplaceAllString(s, "")
	s = leadingDashRegex.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
