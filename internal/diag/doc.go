// Package diag defines the diagnostic record produced when an engine script
// phase fails to compile or raises while running.
//
// A Diagnostic always carries the exception message. Location is optional:
// when present, all of its fields are rendered together (resource, 1-based
// line, 0-based start/end columns with end exclusive, and the literal text of
// the offending line). Stack is the engine's own stack trace text, possibly
// empty.
//
// Package diag does not perform formatting or IO. Rendering lives in
// internal/diagfmt; capturing engine exceptions lives in internal/engine.
package diag
