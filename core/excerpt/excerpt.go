// Package excerpt derives listing data from article text: word counts,
// reading time and a short summary. Words are whitespace separated runs.
package excerpt

import (
	"strings"

	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/core/inline"
)

// DefaultWordsPerMinute is the reading speed used when none is configured.
const DefaultWordsPerMinute = 200

// Ellipsis marks a truncated summary.
const Ellipsis = "…"

// Words counts the words in text.
func Words(text string) int {
	return len(strings.Fields(text))
}

// ReadingMinutes estimates reading time, rounding up. Non-empty text always
// takes at least one minute.
func ReadingMinutes(text string, wpm int) int {
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	n := Words(text)
	if n == 0 {
		return 0
	}
	return (n + wpm - 1) / wpm
}

// Summary returns the first n words of text, with Ellipsis appended when
// anything was cut.
func Summary(text string, n int) string {
	chunks := Chunk(text, n)
	if len(chunks) == 0 {
		return ""
	}
	if len(chunks) > 1 {
		return chunks[0] + Ellipsis
	}
	return chunks[0]
}

// Chunk splits text into runs of at most size words joined by single spaces.
func Chunk(text string, size int) []string {
	if size <= 0 {
		size = 1
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	for i := 0; i < len(words); i += size {
		end := i + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}

// PlainText flattens blocks to readable text, one block per line, with
// emphasis markers removed. Images contribute their caption.
func PlainText(blocks []block.Block) string {
	var lines []string
	add := func(s string) {
		if s = strings.TrimSpace(inline.Plain(s)); s != "" {
			lines = append(lines, s)
		}
	}
	for _, b := range blocks {
		switch v := b.(type) {
		case block.Paragraph:
			add(v.Text)
		case block.Heading:
			add(v.Text)
		case block.Quote:
			add(v.Text)
			add(v.Author)
		case block.List:
			for _, item := range v.Items {
				add(item)
			}
		case block.Image:
			add(v.Caption)
		case block.CTA:
			add(v.Title)
			add(v.Description)
			add(v.ButtonLabel)
		}
	}
	return strings.Join(lines, "\n")
}
