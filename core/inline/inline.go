// Package inline converts the editor's small markdown-like inline syntax
// (**strong**, __strong__, *em*, _em_) into escaped inline HTML.
//
// Escaping always runs on the raw text first, so markup typed by the author
// can never survive into the output; emphasis tags are applied afterwards to
// the escaped string.
package inline

import (
	"regexp"
	"strings"
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

var unescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&amp;", "&",
)

// Emphasis rules, applied in order. Strong markers must run before the
// single-character ones or "**a**" would become "<em></em>a<em></em>".
var emphasis = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`\*\*(.+?)\*\*`), "<strong>$1</strong>"},
	{regexp.MustCompile(`__(.+?)__`), "<strong>$1</strong>"},
	{regexp.MustCompile(`\*(.+?)\*`), "<em>$1</em>"},
	{regexp.MustCompile(`_(.+?)_`), "<em>$1</em>"},
}

var (
	lineBreakRegex = regexp.MustCompile(`\r?\n`)
	markerRegex    = regexp.MustCompile(`(\*\*|__)(.+?)(\*\*|__)|\*(.+?)\*|_(.+?)_`)
)

// Escape replaces the five HTML-significant characters with entities.
func Escape(text string) string {
	return escaper.Replace(text)
}

// Unescape reverses Escape. Other entities are left untouched.
func Unescape(text string) string {
	return unescaper.Replace(text)
}

// Format escapes text and applies inline emphasis. Line breaks are kept as
// raw newlines; use it for single-line fields such as titles and captions.
func Format(text string) string {
	out := Escape(text)
	for _, rule := range emphasis {
		out = rule.re.ReplaceAllString(out, rule.repl)
	}
	return out
}

// FormatLines is Format plus explicit <br /> tags for \n and \r\n. Only
// multi-line fields (paragraph, quote, description) go through it.
func FormatLines(text string) string {
	return lineBreakRegex.ReplaceAllString(Format(text), "<br />")
}

// Plain strips emphasis markers and returns the bare text, for outputs that
// cannot carry inline markup (PDF, plain-text excerpts).
func Plain(text string) string {
	return markerRegex.ReplaceAllStringFunc(text, func(m string) string {
		sub := markerRegex.FindStringSubmatch(m)
		for _, group := range []string{sub[2], sub[4], sub[5]} {
			if group != "" {
				return group
			}
		}
		return m
	})
}
