// Package cdda holds the Red Book audio constants, sector arithmetic, and
// timecode conversions shared by the parser, the assembler, and the cue sheet
// writer.
//
// It also defines the error taxonomy every stage reports through. Callers
// classify failures with errors.Is against the Kind values (for example
// cdda.UnsupportedFormat) instead of matching message text.
package cdda
