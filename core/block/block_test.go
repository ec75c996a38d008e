package block

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs(t *testing.T) {
	t.Helper()
	n := 0
	SetIDGenerator(func() string {
		n++
		return "b" + strconv.Itoa(n)
	})
	t.Cleanup(ResetIDGenerator)
}

func TestNewEmpty(t *testing.T) {
	sequentialIDs(t)

	assert.Equal(t, Paragraph{ID: "b1"}, NewEmpty(KindParagraph))
	assert.Equal(t, Heading{ID: "b2", Level: H2}, NewEmpty(KindHeading))
	assert.Equal(t, Quote{ID: "b3"}, NewEmpty(KindQuote))
	assert.Equal(t, List{ID: "b4", Style: Unordered, Items: []string{""}}, NewEmpty(KindList))
	assert.Equal(t, Image{ID: "b5"}, NewEmpty(KindImage))
	assert.Equal(t, CTA{ID: "b6"}, NewEmpty(KindCTA))
	assert.Equal(t, Paragraph{ID: "b7"}, NewEmpty(Kind("video")))
}

func TestNewEmpty_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewEmpty(KindParagraph).BlockID()
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestKindKnown(t *testing.T) {
	for _, k := range Kinds {
		assert.True(t, k.Known(), k)
	}
	assert.False(t, Kind("steps").Known())
	assert.Equal(t, Kind("video"), Unknown{ID: "x", Type: "video"}.Kind())
}

func TestParseHeadingLevel(t *testing.T) {
	assert.Equal(t, H3, ParseHeadingLevel("h3"))
	assert.Equal(t, H2, ParseHeadingLevel("h2"))
	assert.Equal(t, H2, ParseHeadingLevel("h5"))
	assert.Equal(t, H2, ParseHeadingLevel(""))
}

func TestWithID_CopiesListItems(t *testing.T) {
	orig := List{ID: "a", Items: []string{"x"}}
	copied := WithID(orig, "b").(List)
	copied.Items[0] = "changed"

	assert.Equal(t, "x", orig.Items[0])
	assert.Equal(t, "b", copied.ID)
}
