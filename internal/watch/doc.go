// Package watch keeps the manifest current while a content root changes on
// disk.
//
// A Watcher observes the root recursively with fsnotify and forwards image,
// metadata, and folder changes to a Scheduler, which coalesces bursts of
// events into single rebuilds separated by a quiet window. The Daemon wraps
// both behind a file lock so only one watch process runs per root.
package watch
