package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeGallery()
	c.normalizeSite()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.ContentDir) == "" {
		c.Paths.ContentDir = defaultContentDir
	}
	if c.Paths.ContentDir, err = expandPath(c.Paths.ContentDir); err != nil {
		return fmt.Errorf("paths.content_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ManifestPath) == "" {
		c.Paths.ManifestPath = filepath.Join(c.Paths.ContentDir, defaultManifestName)
	} else if c.Paths.ManifestPath, err = expandPath(c.Paths.ManifestPath); err != nil {
		return fmt.Errorf("paths.manifest_path: %w", err)
	}
	if strings.TrimSpace(c.Paths.ThumbnailDir) == "" {
		c.Paths.ThumbnailDir = filepath.Join(c.Paths.ContentDir, "_thumbs")
	} else if c.Paths.ThumbnailDir, err = expandPath(c.Paths.ThumbnailDir); err != nil {
		return fmt.Errorf("paths.thumbnail_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeGallery() {
	c.Gallery.URLBase = strings.TrimRight(strings.TrimSpace(c.Gallery.URLBase), "/")
	if c.Gallery.URLBase == "" {
		c.Gallery.URLBase = defaultURLBase
	}
	c.Gallery.MetadataFile = strings.TrimSpace(c.Gallery.MetadataFile)
	if c.Gallery.MetadataFile == "" {
		c.Gallery.MetadataFile = defaultMetadataFile
	}
	if len(c.Gallery.Extensions) == 0 {
		c.Gallery.Extensions = defaultExtensions()
	}
	normalized := make([]string, 0, len(c.Gallery.Extensions))
	for _, ext := range c.Gallery.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	c.Gallery.Extensions = normalized
}

func (c *Config) normalizeSite() {
	c.Site.BaseURL = strings.TrimRight(strings.TrimSpace(c.Site.BaseURL), "/")
	c.Site.SitemapPath = strings.TrimSpace(c.Site.SitemapPath)
	if c.Site.SitemapPath == "" {
		c.Site.SitemapPath = defaultSitemapName
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
