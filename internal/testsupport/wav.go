package testsupport

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// Chunk is an extra RIFF chunk written verbatim into a fixture.
type Chunk struct {
	Tag  string
	Body []byte
}

// WAV describes a RIFF/WAVE fixture. The zero value is not useful; start from
// CDWAV and override fields.
type WAV struct {
	RIFFTag       string
	WAVETag       string
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	BitsPerSample uint16
	// FormatExtra is appended after the 16 byte PCM fmt body.
	FormatExtra []byte
	Payload     []byte
	// DataSize overrides the declared data chunk size when non-zero.
	DataSize uint32
	// Before holds chunks written ahead of fmt; After holds chunks written
	// between fmt and data.
	Before     []Chunk
	After      []Chunk
	DataFirst  bool
	OmitFormat bool
	OmitData   bool
}

// CDWAV returns a fixture with the Red Book profile carrying payload.
func CDWAV(payload []byte) WAV {
	return WAV{
		RIFFTag:       "RIFF",
		WAVETag:       "WAVE",
		AudioFormat:   1,
		Channels:      2,
		SampleRate:    44100,
		BitsPerSample: 16,
		Payload:       payload,
	}
}

// Payload returns n bytes of a deterministic pattern derived from seed.
func Payload(n int, seed byte) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = seed + byte(i*7) + byte(i>>8)
	}
	return buf
}

// Bytes encodes the fixture. Odd sized chunks are followed by a pad byte.
func (w WAV) Bytes() []byte {
	var body bytes.Buffer
	body.WriteString(w.WAVETag)

	for _, c := range w.Before {
		writeChunk(&body, c.Tag, c.Body, uint32(len(c.Body)))
	}

	fmtBody := make([]byte, 16, 16+len(w.FormatExtra))
	binary.LittleEndian.PutUint16(fmtBody[0:2], w.AudioFormat)
	binary.LittleEndian.PutUint16(fmtBody[2:4], w.Channels)
	binary.LittleEndian.PutUint32(fmtBody[4:8], w.SampleRate)
	blockAlign := uint32(w.Channels) * uint32(w.BitsPerSample) / 8
	binary.LittleEndian.PutUint32(fmtBody[8:12], w.SampleRate*blockAlign)
	binary.LittleEndian.PutUint16(fmtBody[12:14], uint16(blockAlign))
	binary.LittleEndian.PutUint16(fmtBody[14:16], w.BitsPerSample)
	fmtBody = append(fmtBody, w.FormatExtra...)

	dataSize := w.DataSize
	if dataSize == 0 {
		dataSize = uint32(len(w.Payload))
	}

	writeFormat := func() {
		if !w.OmitFormat {
			writeChunk(&body, "fmt ", fmtBody, uint32(len(fmtBody)))
		}
	}
	writeData := func() {
		if !w.OmitData {
			writeChunk(&body, "data", w.Payload, dataSize)
		}
	}

	if w.DataFirst {
		writeData()
		writeFormat()
	} else {
		writeFormat()
		for _, c := range w.After {
			writeChunk(&body, c.Tag, c.Body, uint32(len(c.Body)))
		}
		writeData()
	}

	var out bytes.Buffer
	out.WriteString(w.RIFFTag)
	var size [4]byte
	binary.LittleEndian.PutUint32(size[:], uint32(body.Len()))
	out.Write(size[:])
	out.Write(body.Bytes())
	return out.Bytes()
}

func writeChunk(buf *bytes.Buffer, tag string, body []byte, declared uint32) {
	var hdr [8]byte
	copy(hdr[0:4], tag)
	binary.LittleEndian.PutUint32(hdr[4:8], declared)
	buf.Write(hdr[:])
	buf.Write(body)
	if len(body)%2 == 1 && uint32(len(body)) == declared {
		buf.WriteByte(0)
	}
}

// WriteWAV encodes w into dir/name and returns the full path.
func WriteWAV(t testing.TB, dir, name string, w WAV) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, w.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
