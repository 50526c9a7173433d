package wav

import (
	"fmt"
	"strings"
	"time"

	"mkcdda/internal/cdda"
)

// FormatPCM is the fmt chunk audio format tag for uncompressed PCM.
const FormatPCM = 1

// Format is the fixed prefix of a fmt chunk.
type Format struct {
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	BitsPerSample uint16
}

// CD is the only profile accepted for conversion.
var CD = Format{
	AudioFormat:   FormatPCM,
	Channels:      cdda.Channels,
	SampleRate:    cdda.SampleRate,
	BitsPerSample: cdda.BitsPerSample,
}

// Mismatches lists every field of f that differs from the CD profile.
func (f Format) Mismatches() []string {
	var out []string
	if f.AudioFormat != CD.AudioFormat {
		out = append(out, fmt.Sprintf("audio format %d (want %d, PCM)", f.AudioFormat, CD.AudioFormat))
	}
	if f.Channels != CD.Channels {
		out = append(out, fmt.Sprintf("%d channels (want %d)", f.Channels, CD.Channels))
	}
	if f.SampleRate != CD.SampleRate {
		out = append(out, fmt.Sprintf("sample rate %d Hz (want %d)", f.SampleRate, CD.SampleRate))
	}
	if f.BitsPerSample != CD.BitsPerSample {
		out = append(out, fmt.Sprintf("%d bits per sample (want %d)", f.BitsPerSample, CD.BitsPerSample))
	}
	return out
}

// CDCompatible reports whether f matches the CD profile exactly.
func (f Format) CDCompatible() bool {
	return f == CD
}

// Validate returns an UnsupportedFormat error naming input when f is not the
// CD profile.
func (f Format) Validate(input string) error {
	mismatches := f.Mismatches()
	if len(mismatches) == 0 {
		return nil
	}
	return cdda.Errorf(cdda.UnsupportedFormat, input,
		"must be 44.1kHz, 16-bit, stereo PCM: %s", strings.Join(mismatches, ", "))
}

// String renders f the way inspect tables show it.
func (f Format) String() string {
	name := "PCM"
	if f.AudioFormat != FormatPCM {
		name = fmt.Sprintf("format 0x%04x", f.AudioFormat)
	}
	return fmt.Sprintf("%s %d Hz %d-bit %dch", name, f.SampleRate, f.BitsPerSample, f.Channels)
}

// Duration returns the playing time of length payload bytes in format f.
// It returns zero when the format carries no usable rate.
func (f Format) Duration(length int64) time.Duration {
	bytesPerSecond := int64(f.SampleRate) * int64(f.Channels) * int64(f.BitsPerSample) / 8
	if bytesPerSecond <= 0 {
		return 0
	}
	return time.Duration(length * int64(time.Second) / bytesPerSecond)
}
