package testsupport

import (
	"path/filepath"
	"testing"

	"curator/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// The content directory exists and is empty; everything else is defaulted.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.ContentDir = filepath.Join(base, "photography")
	cfg.Paths.ManifestPath = filepath.Join(cfg.Paths.ContentDir, "gallery.json")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ThumbnailDir = filepath.Join(base, "thumbs")

	MkdirAll(t, cfg.Paths.ContentDir)

	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithDebounceMS overrides the watch debounce window.
func WithDebounceMS(ms int) ConfigOption {
	return func(c *config.Config) {
		c.Watch.DebounceMS = ms
	}
}

// WithThumbnails enables thumbnail generation with small bounds suited to
// tests.
func WithThumbnails() ConfigOption {
	return func(c *config.Config) {
		c.Thumbnails.Enabled = true
		c.Thumbnails.MaxWidth = 16
		c.Thumbnails.MaxHeight = 16
		c.Thumbnails.Quality = 60
	}
}
