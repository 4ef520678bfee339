// Package logging wraps log/slog construction for curator.
//
// It provides a compact console handler for interactive use, a JSON handler
// for machine consumption, typed attribute helpers, and component loggers so
// each subsystem tags its output uniformly.
package logging
