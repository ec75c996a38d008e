package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html><head><title>Post</title><script>track()</script></head>
<body>
<header><nav><a href="/">Home</a></nav></header>
<main>
  <h1>Post title</h1>
  <div class="prose">
    <p data-block="paragraph">First</p>
    <blockquote data-block="quote"><p>Said</p><footer>Ann</footer></blockquote>
    <section data-block="cta"><h3>Join</h3></section>
  </div>
  <aside class="sidebar">Related</aside>
</main>
<footer>© site</footer>
</body></html>`

func TestIsPage(t *testing.T) {
	assert.True(t, IsPage(page))
	assert.True(t, IsPage("<BODY><p>x</p></BODY>"))
	assert.False(t, IsPage(`<p data-block="paragraph">x</p>`))
	assert.False(t, IsPage("plain text"))
}

func TestExtract_TaggedContainer(t *testing.T) {
	got, err := New().Extract(page)
	require.NoError(t, err)

	assert.Contains(t, got, `<p data-block="paragraph">First</p>`)
	assert.Contains(t, got, `<footer>Ann</footer>`)
	assert.Contains(t, got, `<section data-block="cta">`)
	assert.NotContains(t, got, "Post title")
	assert.NotContains(t, got, "© site")
	assert.NotContains(t, got, "Home")
	assert.NotContains(t, got, "Related")
}

func TestExtract_FallsBackToMain(t *testing.T) {
	got, err := New().Extract(`<html><body><nav>menu</nav><main><p>Legacy body</p></main><footer>x</footer></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "<p>Legacy body</p>", got)
}

func TestExtract_Body(t *testing.T) {
	got, err := New().Extract(`<html><body><p>Only</p><script>x()</script></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "<p>Only</p>", got)
}
