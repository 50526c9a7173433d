// Package logging assembles the structured slog loggers used across mkcdda.
//
// It owns the console and JSON handlers, level parsing, and output routing,
// and exposes context helpers so every line emitted during a conversion run
// carries the run's correlation id. A no-op logger is provided for tests and
// wiring code that has nowhere to log.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits lines with the same shape.
package logging
