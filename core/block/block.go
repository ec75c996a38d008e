// Package block defines the structured article body: an ordered sequence of
// typed content blocks. The union is closed; every variant implements Block
// and carries a stable identifier used only by editor list operations.
package block

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// Kind is the discriminator of a block variant. Its string value is the one
// written to the data-block attribute and to the JSON "type" field.
type Kind string

const (
	KindParagraph Kind = "paragraph"
	KindHeading   Kind = "heading"
	KindQuote     Kind = "quote"
	KindList      Kind = "list"
	KindImage     Kind = "image"
	KindCTA       Kind = "cta"
)

// Kinds lists the known variants in editor menu order.
var Kinds = []Kind{KindParagraph, KindHeading, KindQuote, KindList, KindImage, KindCTA}

// Known reports whether k names a variant of the closed union.
func (k Kind) Known() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// HeadingLevel is the heading tag a Heading renders to.
type HeadingLevel string

const (
	H2 HeadingLevel = "h2"
	H3 HeadingLevel = "h3"
)

// ParseHeadingLevel maps an attribute value to a level, defaulting to H2.
func ParseHeadingLevel(s string) HeadingLevel {
	if HeadingLevel(s) == H3 {
		return H3
	}
	return H2
}

// ListStyle selects between <ul> and <ol>.
type ListStyle string

const (
	Unordered ListStyle = "unordered"
	Ordered   ListStyle = "ordered"
)

// Block is implemented by every variant. The unexported method keeps the
// union closed to this package.
type Block interface {
	BlockID() string
	Kind() Kind
	sealed()
}

type Paragraph struct {
	ID   string
	Text string
}

type Heading struct {
	ID    string
	Level HeadingLevel
	Text  string
}

type Quote struct {
	ID     string
	Text   string
	Author string
}

// List always holds at least one item while it lives in an editor; blank
// items are kept here and dropped only when rendering.
type List struct {
	ID    string
	Style ListStyle
	Items []string
}

// Image may have an empty URL while the upload is still pending.
type Image struct {
	ID      string
	URL     string
	Caption string
	Alt     string
}

// CTA is a call-to-action. The button is shown only when both ButtonLabel
// and ButtonURL are set.
type CTA struct {
	ID          string
	Title       string
	Description string
	ButtonLabel string
	ButtonURL   string
}

// Unknown holds a block whose type this build does not recognize, so that a
// document written by a newer editor still decodes. Raw is the block's JSON
// object as read; encoding writes it back with the current ID, so fields this
// build does not know survive a decode/encode cycle. It never renders.
type Unknown struct {
	ID   string
	Type string
	Raw  json.RawMessage
}

func (b Paragraph) BlockID() string { return b.ID }
func (b Heading) BlockID() string   { return b.ID }
func (b Quote) BlockID() string     { return b.ID }
func (b List) BlockID() string      { return b.ID }
func (b Image) BlockID() string     { return b.ID }
func (b CTA) BlockID() string       { return b.ID }
func (b Unknown) BlockID() string   { return b.ID }

func (Paragraph) Kind() Kind { return KindParagraph }
func (Heading) Kind() Kind   { return KindHeading }
func (Quote) Kind() Kind     { return KindQuote }
func (List) Kind() Kind      { return KindList }
func (Image) Kind() Kind     { return KindImage }
func (CTA) Kind() Kind       { return KindCTA }
func (b Unknown) Kind() Kind { return Kind(b.Type) }

func (Paragraph) sealed() {}
func (Heading) sealed()   {}
func (Quote) sealed()     {}
func (List) sealed()      {}
func (Image) sealed()     {}
func (CTA) sealed()       {}
func (Unknown) sealed()   {}

var (
	idMu        sync.RWMutex
	idGenerator = DefaultIDGenerator
)

// DefaultIDGenerator returns a random UUID string.
func DefaultIDGenerator() string {
	return uuid.NewString()
}

// NewID returns a fresh block identifier.
func NewID() string {
	idMu.RLock()
	gen := idGenerator
	idMu.RUnlock()
	return gen()
}

// SetIDGenerator replaces the identifier source, mainly for tests.
func SetIDGenerator(gen func() string) {
	idMu.Lock()
	defer idMu.Unlock()
	idGenerator = gen
}

// ResetIDGenerator restores DefaultIDGenerator.
func ResetIDGenerator() {
	SetIDGenerator(DefaultIDGenerator)
}

// NewEmpty returns a new block of the given kind with a fresh identifier and
// editor defaults. Unrecognized kinds produce a Paragraph.
func NewEmpty(kind Kind) Block {
	id := NewID()
	switch kind {
	case KindHeading:
		return Heading{ID: id, Level: H2}
	case KindQuote:
		return Quote{ID: id}
	case KindList:
		return List{ID: id, Style: Unordered, Items: []string{""}}
	case KindImage:
		return Image{ID: id}
	case KindCTA:
		return CTA{ID: id}
	default:
		return Paragraph{ID: id}
	}
}

// WithID returns a copy of b carrying id.
func WithID(b Block, id string) Block {
	switch v := b.(type) {
	case Paragraph:
		v.ID = id
		return v
	case Heading:
		v.ID = id
		return v
	case Quote:
		v.ID = id
		return v
	case List:
		v.ID = id
		v.Items = cloneItems(v.Items)
		return v
	case Image:
		v.ID = id
		return v
	case CTA:
		v.ID = id
		return v
	case Unknown:
		v.ID = id
		v.Raw = append(json.RawMessage(nil), v.Raw...)
		return v
	}
	return b
}

func cloneItems(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}
