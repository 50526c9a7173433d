// Package disc assembles validated audio payloads into a raw CD-DA image.
//
// Each track's payload is copied byte for byte and zero padded to the next
// 2352 byte sector boundary, so the image is always a whole number of
// sectors. The Assembler records the sector each track starts at; the cue
// package turns those offsets into INDEX lines.
//
// The image file itself is held under an advisory lock while it is written
// so two runs in the same directory cannot interleave sectors.
package disc
