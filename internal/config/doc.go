// Package config loads, normalizes, and validates curator's TOML
// configuration.
//
// Load resolves an explicit path, a project-local curator.toml, or the
// default ~/.config/curator/config.toml, in that order. Missing files fall
// back to compiled defaults so the tool works in a checkout without any
// configuration at all.
package config
