package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateGallery(); err != nil {
		return err
	}
	if err := c.validateWatch(); err != nil {
		return err
	}
	if err := c.validateThumbnails(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateGallery() error {
	if len(c.Gallery.Extensions) == 0 {
		return errors.New("gallery.extensions must list at least one image extension")
	}
	for _, ext := range c.Gallery.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("gallery.extensions entry %q must be a dotted suffix like \".jpg\"", ext)
		}
	}
	if strings.ContainsAny(c.Gallery.MetadataFile, "/\\") {
		return fmt.Errorf("gallery.metadata_file %q must be a bare filename", c.Gallery.MetadataFile)
	}
	return nil
}

func (c *Config) validateWatch() error {
	if c.Watch.DebounceMS < 0 {
		return errors.New("watch.debounce_ms must not be negative")
	}
	return nil
}

func (c *Config) validateThumbnails() error {
	if !c.Thumbnails.Enabled {
		return nil
	}
	if c.Thumbnails.MaxWidth <= 0 || c.Thumbnails.MaxHeight <= 0 {
		return errors.New("thumbnails.max_width and thumbnails.max_height must be positive when thumbnails are enabled")
	}
	if c.Thumbnails.Quality < 1 || c.Thumbnails.Quality > 100 {
		return errors.New("thumbnails.quality must be between 1 and 100")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
