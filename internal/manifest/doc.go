// Package manifest derives the published gallery manifest from scanned
// project folders.
//
// BuildProject implements the per-folder derivation rules: ID and URL path
// from the folder name, cover reconciliation (configured cover, then a
// filename containing "cover", then the first image), cover-first image
// ordering, and the filter-category split. Builder aggregates, sorts, and
// writes gallery.json with an atomic replace so readers never observe a
// partial file.
package manifest
