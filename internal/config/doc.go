// Package config loads, normalizes, and validates mkcdda configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours MKCDDA_* environment overrides for logging. A
// missing configuration file is not an error: every knob has a default, and
// the disc image and cue sheet names are fixed regardless of configuration.
package config
