package block

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Sequence is an ordered block list with a JSON form: an array of objects
// discriminated by "type".
type Sequence []Block

type envelope struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Text        string   `json:"text,omitempty"`
	Level       string   `json:"level,omitempty"`
	Author      string   `json:"author,omitempty"`
	Style       string   `json:"style,omitempty"`
	Items       []string `json:"items,omitempty"`
	URL         string   `json:"url,omitempty"`
	Caption     string   `json:"caption,omitempty"`
	Alt         string   `json:"alt,omitempty"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	ButtonLabel string   `json:"buttonLabel,omitempty"`
	ButtonURL   string   `json:"buttonUrl,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (s Sequence) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, 0, len(s))
	for _, b := range s {
		var (
			data []byte
			err  error
		)
		if u, ok := b.(Unknown); ok && len(u.Raw) > 0 {
			data, err = unknownJSON(u)
		} else {
			data, err = json.Marshal(toEnvelope(b))
		}
		if err != nil {
			return nil, errors.Wrapf(err, "encoding block %q", b.BlockID())
		}
		out = append(out, data)
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler. Blocks without an id get a
// fresh one; unknown types decode to Unknown with their raw object kept.
func (s *Sequence) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "decoding blocks")
	}
	out := make(Sequence, 0, len(raw))
	for i, r := range raw {
		var e envelope
		if err := json.Unmarshal(r, &e); err != nil {
			return errors.Wrapf(err, "decoding block %d", i)
		}
		b := fromEnvelope(e)
		if u, ok := b.(Unknown); ok {
			u.Raw = append(json.RawMessage(nil), r...)
			b = u
		}
		out = append(out, b)
	}
	*s = out
	return nil
}

// unknownJSON re-emits the raw object of u with its id set to u.ID.
func unknownJSON(u Unknown) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(u.Raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = make(map[string]json.RawMessage)
	}
	id, err := json.Marshal(u.ID)
	if err != nil {
		return nil, err
	}
	fields["id"] = id
	return json.Marshal(fields)
}

// Marshal encodes blocks as indented JSON.
func Marshal(blocks []Block) ([]byte, error) {
	data, err := json.MarshalIndent(Sequence(blocks), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encoding blocks")
	}
	return data, nil
}

// Unmarshal decodes a JSON block array.
func Unmarshal(data []byte) ([]Block, error) {
	var seq Sequence
	if err := json.Unmarshal(data, &seq); err != nil {
		return nil, err
	}
	return seq, nil
}

func toEnvelope(b Block) envelope {
	e := envelope{ID: b.BlockID(), Type: string(b.Kind())}
	switch v := b.(type) {
	case Paragraph:
		e.Text = v.Text
	case Heading:
		e.Level = string(v.Level)
		e.Text = v.Text
	case Quote:
		e.Text = v.Text
		e.Author = v.Author
	case List:
		e.Style = string(v.Style)
		e.Items = cloneItems(v.Items)
	case Image:
		e.URL = v.URL
		e.Caption = v.Caption
		e.Alt = v.Alt
	case CTA:
		e.Title = v.Title
		e.Description = v.Description
		e.ButtonLabel = v.ButtonLabel
		e.ButtonURL = v.ButtonURL
	}
	return e
}

func fromEnvelope(e envelope) Block {
	id := e.ID
	if id == "" {
		id = NewID()
	}
	switch Kind(e.Type) {
	case KindParagraph:
		return Paragraph{ID: id, Text: e.Text}
	case KindHeading:
		return Heading{ID: id, Level: ParseHeadingLevel(e.Level), Text: e.Text}
	case KindQuote:
		return Quote{ID: id, Text: e.Text, Author: e.Author}
	case KindList:
		style := Unordered
		if ListStyle(e.Style) == Ordered {
			style = Ordered
		}
		items := e.Items
		if len(items) == 0 {
			items = []string{""}
		}
		return List{ID: id, Style: style, Items: items}
	case KindImage:
		return Image{ID: id, URL: e.URL, Caption: e.Caption, Alt: e.Alt}
	case KindCTA:
		return CTA{
			ID:          id,
			Title:       e.Title,
			Description: e.Description,
			ButtonLabel: e.ButtonLabel,
			ButtonURL:   e.ButtonURL,
		}
	default:
		return Unknown{ID: id, Type: e.Type}
	}
}
