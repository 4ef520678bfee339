package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"curator/internal/config"
)

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(oldWD) })

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent")
	}
	if !filepath.IsAbs(cfg.ContentDir()) {
		t.Fatalf("expected absolute content dir, got %q", cfg.ContentDir())
	}
	if cfg.Gallery.MetadataFile != "_meta.json" {
		t.Fatalf("unexpected metadata file: %q", cfg.Gallery.MetadataFile)
	}
	if cfg.Watch.DebounceMS != 300 {
		t.Fatalf("unexpected debounce: %d", cfg.Watch.DebounceMS)
	}
	if cfg.ManifestPath() != filepath.Join(cfg.ContentDir(), "gallery.json") {
		t.Fatalf("unexpected manifest path: %q", cfg.ManifestPath())
	}
	if got := cfg.Gallery.Extensions; len(got) != 4 || got[0] != ".jpg" {
		t.Fatalf("unexpected extensions: %v", got)
	}
}

func TestLoadExplicitFileNormalizesValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "curator.toml")
	content := `
[paths]
content_dir = "` + filepath.Join(dir, "photos") + `"

[gallery]
url_base = "/img/photography/"
extensions = ["JPG", ".Png"]

[logging]
format = "JSON"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected explicit file to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Gallery.URLBase != "/img/photography" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Gallery.URLBase)
	}
	if got := cfg.Gallery.Extensions; len(got) != 2 || got[0] != ".jpg" || got[1] != ".png" {
		t.Fatalf("expected lowercased dotted extensions, got %v", got)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json format, got %q", cfg.Logging.Format)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*config.Config)
		message string
	}{
		{
			name:    "empty extensions",
			mutate:  func(c *config.Config) { c.Gallery.Extensions = nil },
			message: "gallery.extensions",
		},
		{
			name:    "negative debounce",
			mutate:  func(c *config.Config) { c.Watch.DebounceMS = -1 },
			message: "watch.debounce_ms",
		},
		{
			name: "thumbnail quality out of range",
			mutate: func(c *config.Config) {
				c.Thumbnails.Enabled = true
				c.Thumbnails.Quality = 0
			},
			message: "thumbnails.quality",
		},
		{
			name:    "metadata file with separator",
			mutate:  func(c *config.Config) { c.Gallery.MetadataFile = "sub/_meta.json" },
			message: "gallery.metadata_file",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.message) {
				t.Fatalf("expected error mentioning %q, got %v", tc.message, err)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Gallery.URLBase != "/assets/img/photography" {
		t.Fatalf("unexpected url base: %q", cfg.Gallery.URLBase)
	}
}
