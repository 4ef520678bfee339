// Package main hosts the curator CLI entrypoint and command graph.
//
// The Cobra-based command tree covers manifest builds, the filesystem watch
// daemon, interactive metadata editing, cover repair, thumbnail and sitemap
// generation, build history, and configuration scaffolding. It centralizes
// configuration resolution and structured logging setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
