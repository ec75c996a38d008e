package inline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	assert.Equal(t, "&lt;b&gt; &amp; &quot;q&quot; &#39;s&#39;", Escape(`<b> & "q" 's'`))
	assert.Equal(t, "", Escape(""))
}

func TestUnescape(t *testing.T) {
	raw := `<a href="x">Tom & 'Jerry'</a>`
	assert.Equal(t, raw, Unescape(Escape(raw)))
	assert.Equal(t, "&amp;lt;", Escape("&lt;"))
	assert.Equal(t, "&lt;", Unescape("&amp;lt;"))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "hello", "hello"},
		{"strong stars", "a **b** c", "a <strong>b</strong> c"},
		{"strong underscores", "__b__", "<strong>b</strong>"},
		{"em stars", "*i*", "<em>i</em>"},
		{"em underscores", "_i_", "<em>i</em>"},
		{"non greedy", "**a** and **b**", "<strong>a</strong> and <strong>b</strong>"},
		{"mixed", "**a** *b*", "<strong>a</strong> <em>b</em>"},
		{"escape before markup", "**<script>**", "<strong>&lt;script&gt;</strong>"},
		{"raw tags cannot spoof", "<strong>x</strong>", "&lt;strong&gt;x&lt;/strong&gt;"},
		{"newline kept", "a\nb", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}

func TestFormatLines(t *testing.T) {
	assert.Equal(t, "one<br />two<br />three", FormatLines("one\ntwo\r\nthree"))
	assert.Equal(t, "<strong>a</strong><br />b", FormatLines("**a**\nb"))
	assert.Equal(t, "", FormatLines(""))
}

func TestPlain(t *testing.T) {
	assert.Equal(t, "bold and em and strong", Plain("**bold** and *em* and __strong__"))
	assert.Equal(t, "no markers", Plain("no markers"))
}
