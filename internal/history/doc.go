// Package history records manifest build runs in a local SQLite database so
// operators can review what the build and watch commands did, when, and why
// folders were skipped.
package history
