package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/blockpipe/core/normalize"
)

func TestLoad_Empty(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, normalize.DefaultStepsRule(), cfg.Steps)
	assert.True(t, cfg.CTA.ButtonIcon)
	assert.EqualValues(t, 10<<20, cfg.Blobs.MaxBytes)
}

func TestLoad_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blockpipe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
steps:
  min_steps: 4
  lead_words: [How]
cta:
  button_icon: false
store:
  dir: /var/articles
log:
  format: json
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Steps.MinSteps)
	assert.Equal(t, 3, cfg.Steps.MinSentences)
	assert.Equal(t, []string{"How"}, cfg.Steps.LeadWords)
	assert.False(t, cfg.CTA.ButtonIcon)
	assert.Equal(t, "/var/articles", cfg.Store.Dir)
	assert.Equal(t, "./uploads", cfg.Blobs.Dir)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestParse_Errors(t *testing.T) {
	assert.Error(t, Parse([]byte("nope: 1\n"), Default()))
	assert.Error(t, Parse([]byte("reading:\n  words_per_minute: 0\n"), Default()))
	assert.Error(t, Parse([]byte("log:\n  format: xml\n"), Default()))
	assert.NoError(t, Parse([]byte("  \n"), Default()))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
