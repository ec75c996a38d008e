// Package config loads BlockPipe settings from an optional YAML file.
// Every key has a default, so a missing file or a partial file is fine.
package config

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/blockpipe/core/normalize"
	"github.com/gaurav-prasanna/blockpipe/core/store"
)

type Config struct {
	Steps   normalize.StepsRule `yaml:"steps"`
	CTA     CTA                 `yaml:"cta"`
	Store   Store               `yaml:"store"`
	Blobs   Blobs               `yaml:"blobs"`
	Reading Reading             `yaml:"reading"`
	Log     Log                 `yaml:"log"`
}

type CTA struct {
	ButtonIcon bool `yaml:"button_icon"`
}

type Store struct {
	Dir string `yaml:"dir"`
}

type Blobs struct {
	Dir      string `yaml:"dir"`
	BaseURL  string `yaml:"base_url"`
	Folder   string `yaml:"folder"`
	MaxBytes int64  `yaml:"max_bytes"`
}

type Reading struct {
	WordsPerMinute int `yaml:"words_per_minute"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Steps: normalize.DefaultStepsRule(),
		CTA:   CTA{ButtonIcon: true},
		Store: Store{Dir: "./articles"},
		Blobs: Blobs{
			Dir:      "./uploads",
			BaseURL:  "/uploads",
			Folder:   "images",
			MaxBytes: store.DefaultMaxBytes,
		},
		Reading: Reading{WordsPerMinute: 200},
		Log:     Log{Level: "info", Format: "console"},
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, leaving keys absent from data untouched.
// Unknown keys are rejected.
func Parse(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return errors.Wrap(err, "decoding yaml")
	}
	return cfg.Validate()
}

// Validate checks values the decoder cannot.
func (c *Config) Validate() error {
	if c.Steps.MinSentences < 0 || c.Steps.MinSteps < 0 {
		return errors.New("steps thresholds must not be negative")
	}
	if c.Reading.WordsPerMinute <= 0 {
		return errors.Errorf("reading.words_per_minute must be positive, got %d", c.Reading.WordsPerMinute)
	}
	if c.Blobs.MaxBytes < 0 {
		return errors.New("blobs.max_bytes must not be negative")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return errors.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}
