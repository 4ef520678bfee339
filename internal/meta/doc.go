// Package meta is the accessor for per-folder metadata records and image
// listings.
//
// Each project folder carries one JSON metadata file (by default _meta.json)
// describing title, categories, cover, and presentation fields. Reads
// distinguish a missing file (ErrNotFound) from a malformed one (ErrParse);
// writes are atomic so a crash never leaves a truncated record behind.
package meta
