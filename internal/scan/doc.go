// Package scan enumerates project folders under the content root and
// validates them for publication.
//
// A folder qualifies when its metadata parses, lists at least one category,
// and the folder holds at least one allow-listed image. Cover staleness is
// deliberately not checked here; the manifest builder reconciles covers so a
// stale one never excludes a folder.
package scan
