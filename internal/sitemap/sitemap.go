package sitemap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"curator/internal/config"
	"curator/internal/manifest"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

// Render produces the sitemap XML for a manifest: the site root followed by
// one entry per project page, in manifest order. lastmod carries the build
// date.
func Render(cfg *config.Config, m *manifest.Manifest, now time.Time) ([]byte, error) {
	base := strings.TrimRight(cfg.Site.BaseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("site.base_url is required for sitemap generation")
	}
	lastMod := now.UTC().Format("2006-01-02")

	set := urlSet{Xmlns: xmlns}
	set.URLs = append(set.URLs, urlEntry{Loc: base + "/", LastMod: lastMod})
	for _, project := range m.Projects {
		set.URLs = append(set.URLs, urlEntry{
			Loc:     base + project.Path,
			LastMod: lastMod,
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Write renders the sitemap and persists it atomically at the configured
// path.
func Write(cfg *config.Config, m *manifest.Manifest, now time.Time) (string, error) {
	data, err := Render(cfg, m, now)
	if err != nil {
		return "", err
	}
	path := cfg.Site.SitemapPath
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
