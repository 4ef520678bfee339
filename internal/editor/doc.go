// Package editor implements the interactive metadata authoring session.
//
// A session repeatedly walks the operator through folder selection, field
// selection, and a single batch of value prompts, then applies the batch to
// each selected folder and persists every folder independently. Typing
// exit, quit, or q at any prompt leaves the session cleanly. The package
// also exposes the non-interactive cover sync used by the sync command.
package editor
