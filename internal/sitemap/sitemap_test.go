package sitemap_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"curator/internal/manifest"
	"curator/internal/sitemap"
	"curator/internal/testsupport"
)

func TestRenderListsRootAndProjects(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Site.BaseURL = "https://example.com"

	m := &manifest.Manifest{Projects: []manifest.Project{
		{ID: "deer-valley", Path: "/assets/img/photography/Deer%20Valley/"},
		{ID: "big-sur", Path: "/assets/img/photography/Big%20Sur/"},
	}}

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	data, err := sitemap.Render(cfg, m, now)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := string(data)

	if !strings.HasPrefix(out, "<?xml") {
		t.Error("missing XML header")
	}
	if !strings.Contains(out, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`) {
		t.Error("missing sitemaps namespace")
	}
	for _, loc := range []string{
		"<loc>https://example.com/</loc>",
		"<loc>https://example.com/assets/img/photography/Deer%20Valley/</loc>",
		"<loc>https://example.com/assets/img/photography/Big%20Sur/</loc>",
	} {
		if !strings.Contains(out, loc) {
			t.Errorf("missing %s in:\n%s", loc, out)
		}
	}
	if !strings.Contains(out, "<lastmod>2026-03-15</lastmod>") {
		t.Error("missing lastmod date")
	}
	// Root entry comes first, projects follow in manifest order.
	rootIdx := strings.Index(out, "https://example.com/</loc>")
	deerIdx := strings.Index(out, "Deer%20Valley")
	bigIdx := strings.Index(out, "Big%20Sur")
	if !(rootIdx < deerIdx && deerIdx < bigIdx) {
		t.Error("entries out of order")
	}
}

func TestRenderRequiresBaseURL(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Site.BaseURL = ""
	if _, err := sitemap.Render(cfg, &manifest.Manifest{}, time.Now()); err == nil {
		t.Fatal("expected error without base URL")
	}
}

func TestWritePersistsSitemap(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Site.BaseURL = "https://example.com"
	cfg.Site.SitemapPath = filepath.Join(t.TempDir(), "sitemap.xml")

	path, err := sitemap.Write(cfg, &manifest.Manifest{}, time.Now())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sitemap: %v", err)
	}
	if !strings.Contains(string(data), "<urlset") {
		t.Errorf("unexpected sitemap body:\n%s", data)
	}
}
