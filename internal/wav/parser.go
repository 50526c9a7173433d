package wav

import (
	"encoding/binary"
	"errors"
	"io"
	"os"

	"mkcdda/internal/cdda"
)

// Source locates the audio payload of one container.
type Source struct {
	Path   string
	Offset int64
	Length int64
}

// Info is a scanned container: where its payload lives and what format the
// fmt chunk declared.
type Info struct {
	Source
	Format Format
}

// Parse scans r and validates the declared format against the CD profile.
// name identifies the input in errors and is recorded as the source path.
func Parse(r io.ReadSeeker, name string) (Source, error) {
	info, err := Scan(r, name)
	if err != nil {
		return Source{}, err
	}
	if err := info.Format.Validate(name); err != nil {
		return Source{}, err
	}
	return info.Source, nil
}

// ParseFile opens path and parses it. Failing to open the file is a usage
// error.
func ParseFile(path string) (Source, error) {
	f, err := openInput(path)
	if err != nil {
		return Source{}, err
	}
	defer f.Close()
	return Parse(f, path)
}

// ScanFile opens path and scans it without checking the format profile.
func ScanFile(path string) (Info, error) {
	f, err := openInput(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()
	return Scan(f, path)
}

func openInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cdda.Wrap(cdda.UsageError, path, err, "open input")
	}
	return f, nil
}

// Scan walks the chunk list of r until both the fmt and data chunks have been
// seen. It does not check the format profile. The read cursor of r is left
// past the last chunk visited.
func Scan(r io.ReadSeeker, name string) (Info, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Info{}, cdda.Wrap(cdda.MalformedContainer, name, err, "read RIFF header")
	}
	if string(hdr[0:4]) != riffTag || string(hdr[8:12]) != waveTag {
		return Info{}, cdda.Errorf(cdda.MalformedContainer, name, "not a RIFF/WAVE file")
	}

	info := Info{Source: Source{Path: name}}
	var sawFormat, sawData bool
	for !sawFormat || !sawData {
		var ch [chunkHeaderSize]byte
		_, err := io.ReadFull(r, ch[:])
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Info{}, cdda.Wrap(cdda.MalformedContainer, name, err, "read chunk header")
		}

		var tag [4]byte
		copy(tag[:], ch[0:4])
		size := binary.LittleEndian.Uint32(ch[4:8])

		switch kindOf(tag) {
		case chunkFormat:
			format, err := readFormat(r, name, size)
			if err != nil {
				return Info{}, err
			}
			info.Format = format
			sawFormat = true
			if err := skip(r, name, alignedSize(size)-formatPrefixSize); err != nil {
				return Info{}, err
			}
		case chunkData:
			pos, err := r.Seek(0, io.SeekCurrent)
			if err != nil {
				return Info{}, cdda.Wrap(cdda.MalformedContainer, name, err, "locate data chunk")
			}
			info.Offset = pos
			info.Length = int64(size)
			sawData = true
			if err := skip(r, name, alignedSize(size)); err != nil {
				return Info{}, err
			}
		default:
			if err := skip(r, name, alignedSize(size)); err != nil {
				return Info{}, err
			}
		}
	}

	switch {
	case !sawFormat && !sawData:
		return Info{}, cdda.Errorf(cdda.MissingChunk, name, "no fmt or data chunk")
	case !sawFormat:
		return Info{}, cdda.Errorf(cdda.MissingChunk, name, "no fmt chunk")
	case !sawData:
		return Info{}, cdda.Errorf(cdda.MissingChunk, name, "no data chunk")
	}
	return info, nil
}

func readFormat(r io.Reader, name string, size uint32) (Format, error) {
	if size < formatPrefixSize {
		return Format{}, cdda.Errorf(cdda.MalformedContainer, name,
			"fmt chunk is %d bytes, want at least %d", size, formatPrefixSize)
	}
	var body [formatPrefixSize]byte
	if _, err := io.ReadFull(r, body[:]); err != nil {
		return Format{}, cdda.Wrap(cdda.MalformedContainer, name, err, "read fmt chunk")
	}
	return Format{
		AudioFormat:   binary.LittleEndian.Uint16(body[0:2]),
		Channels:      binary.LittleEndian.Uint16(body[2:4]),
		SampleRate:    binary.LittleEndian.Uint32(body[4:8]),
		BitsPerSample: binary.LittleEndian.Uint16(body[14:16]),
	}, nil
}

func skip(r io.Seeker, name string, n int64) error {
	if n <= 0 {
		return nil
	}
	if _, err := r.Seek(n, io.SeekCurrent); err != nil {
		return cdda.Wrap(cdda.MalformedContainer, name, err, "skip %d bytes", n)
	}
	return nil
}
