// Package core defines the shared article types and the interfaces of each
// stage of BlockPipe: extract, render, parse, normalize, enhance, export, and the
// storage collaborators the codec hands its output to.
package core

import (
	"context"
	"time"

	"github.com/gaurav-prasanna/blockpipe/core/block"
)

// FetchResult holds the raw body and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	Body       string
}

// ArticleMeta is the metadata stored next to an article body.
type ArticleMeta struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	Category    string    `json:"category,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Featured    bool      `json:"featured"`
	Published   bool      `json:"published"`
	PublishedAt time.Time `json:"published_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// Article is a stored article. Body is either rendered block HTML or legacy
// plain text; the store does not care which.
type Article struct {
	Meta ArticleMeta
	Body string
}

// Document is an article body in block form together with its metadata.
type Document struct {
	Meta   ArticleMeta
	Blocks []block.Block
}

// Upload describes an object written to a BlobStore.
type Upload struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

// Extractor isolates the article body of a full page.
type Extractor interface {
	Extract(html string) (string, error)
}

// BlockRenderer turns a block sequence into tagged HTML.
type BlockRenderer interface {
	Render(blocks []block.Block) string
}

// BlockParser turns tagged HTML back into blocks.
type BlockParser interface {
	Parse(html string) ([]block.Block, error)
}

// Normalizer turns untagged legacy text into display HTML.
type Normalizer interface {
	Normalize(raw string) string
}

// Enhancer rewrites already rendered HTML.
type Enhancer interface {
	Enhance(html string) string
}

// Exporter converts a Document into a final output format.
type Exporter interface {
	Export(doc Document) ([]byte, error)
	// Extension returns the file extension for this exporter (e.g. ".md", ".pdf").
	Extension() string
}

// ArticleStore persists article bodies with their metadata and returns the
// body unchanged on reload.
type ArticleStore interface {
	Save(ctx context.Context, article Article) error
	Load(ctx context.Context, slug string) (*Article, error)
}

// BlobStore stores uploaded bytes and returns a retrievable URL.
type BlobStore interface {
	Put(ctx context.Context, data []byte, contentType string) (*Upload, error)
}

// Fetcher retrieves a raw body from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}
