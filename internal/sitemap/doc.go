// Package sitemap renders a sitemaps.org urlset for the published gallery,
// one entry per project plus the site root.
package sitemap
