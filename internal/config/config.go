package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and output file configuration.
type Paths struct {
	ContentDir   string `toml:"content_dir"`
	ManifestPath string `toml:"manifest_path"`
	LogDir       string `toml:"log_dir"`
	ThumbnailDir string `toml:"thumbnail_dir"`
}

// Gallery contains configuration for content scanning and manifest shape.
type Gallery struct {
	URLBase      string   `toml:"url_base"`
	MetadataFile string   `toml:"metadata_file"`
	Extensions   []string `toml:"extensions"`
}

// Watch contains configuration for the filesystem watch daemon.
type Watch struct {
	DebounceMS int `toml:"debounce_ms"`
}

// Thumbnails contains configuration for preview image generation.
type Thumbnails struct {
	Enabled   bool `toml:"enabled"`
	MaxWidth  int  `toml:"max_width"`
	MaxHeight int  `toml:"max_height"`
	Quality   int  `toml:"quality"`
}

// Site contains configuration for sitemap generation.
type Site struct {
	BaseURL     string `toml:"base_url"`
	SitemapPath string `toml:"sitemap_path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for curator.
//
// Configuration sections by subsystem:
//   - Paths: content root, manifest location, log and thumbnail directories
//   - Gallery: URL base, metadata filename, image extension allow-list
//   - Watch: rebuild debounce window
//   - Thumbnails: preview generation bounds and JPEG quality
//   - Site: sitemap base URL and output path
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Gallery    Gallery    `toml:"gallery"`
	Watch      Watch      `toml:"watch"`
	Thumbnails Thumbnails `toml:"thumbnails"`
	Site       Site       `toml:"site"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/curator/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("curator.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories curator writes into. The content
// directory is never created implicitly; a missing content root is an
// authoring mistake that should surface as an error, not an empty gallery.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir}
	if c.Thumbnails.Enabled && strings.TrimSpace(c.Paths.ThumbnailDir) != "" {
		dirs = append(dirs, c.Paths.ThumbnailDir)
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ContentDir returns the expanded content root directory.
func (c *Config) ContentDir() string {
	return c.Paths.ContentDir
}

// ManifestPath returns the manifest output location.
func (c *Config) ManifestPath() string {
	return c.Paths.ManifestPath
}

// LogDir returns the expanded log directory.
func (c *Config) LogDir() string {
	return c.Paths.LogDir
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
