// Package wav locates the audio payload inside RIFF/WAVE containers and
// checks that it carries Red Book audio (PCM, stereo, 44.1KHz, 16-bit).
//
// Parsing never copies sample data. It walks the chunk list, reads the fixed
// prefix of the fmt chunk, and records where the data chunk starts and how
// long it claims to be. Streaming the payload is left to the disc package.
package wav
