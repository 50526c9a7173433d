package disc

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"mkcdda/internal/cdda"
	"mkcdda/internal/logging"
	"mkcdda/internal/wav"
)

const defaultBufferSize = 8 * 1024

// Assembler appends track payloads to an image stream. It is not safe for
// concurrent use; tracks must be appended in order.
type Assembler struct {
	w        io.Writer
	name     string
	buf      []byte
	logger   *slog.Logger
	progress io.Writer

	sectors int64
	tracks  []Track
}

// Option customizes an Assembler.
type Option func(*Assembler)

// WithBufferSize sets the copy buffer size in bytes.
func WithBufferSize(n int) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.buf = make([]byte, n)
		}
	}
}

// WithLogger sets the logger used for per-track progress lines.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) {
		a.logger = logging.NewComponentLogger(logger, "disc")
	}
}

// WithProgress mirrors every byte written to the image into w. Errors from w
// are ignored.
func WithProgress(w io.Writer) Option {
	return func(a *Assembler) {
		a.progress = w
	}
}

// NewAssembler returns an Assembler writing to w. name identifies the image in
// errors.
func NewAssembler(w io.Writer, name string, opts ...Option) *Assembler {
	a := &Assembler{
		w:      w,
		name:   name,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.buf == nil {
		a.buf = make([]byte, defaultBufferSize)
	}
	return a
}

// Append opens src.Path and appends its payload as the next track. ctx only
// contributes log fields; the copy itself is not interruptible.
func (a *Assembler) Append(ctx context.Context, src wav.Source) (Track, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return Track{}, cdda.Wrap(cdda.UsageError, src.Path, err, "open input")
	}
	defer f.Close()
	return a.AppendFrom(ctx, f, src)
}

// AppendFrom appends src's payload, read from r, as the next track. r must be
// the container src was parsed from.
func (a *Assembler) AppendFrom(ctx context.Context, r io.ReadSeeker, src wav.Source) (Track, error) {
	track, next := nextTrack(a.sectors, len(a.tracks)+1, src)

	if _, err := r.Seek(src.Offset, io.SeekStart); err != nil {
		return Track{}, cdda.Wrap(cdda.TruncatedPayload, src.Path, err, "seek to payload at byte %d", src.Offset)
	}
	if err := a.copyPayload(r, src); err != nil {
		return Track{}, err
	}
	if err := a.writeZeros(track.Pad()); err != nil {
		return Track{}, err
	}

	a.sectors = next
	a.tracks = append(a.tracks, track)

	logging.WithContext(ctx, a.logger).Info("appended track",
		logging.Int(logging.FieldTrack, track.Number),
		logging.String(logging.FieldInput, src.Path),
		logging.Int64("payload_bytes", src.Length),
		logging.Int64("padded_bytes", src.Length+track.Pad()),
		logging.String("size", humanize.IBytes(uint64(src.Length))),
		logging.Int64("start_sector", track.StartSector),
		logging.String("timecode", track.Timecode().String()),
	)
	return track, nil
}

func (a *Assembler) copyPayload(r io.Reader, src wav.Source) error {
	var copied int64
	for copied < src.Length {
		n := int64(len(a.buf))
		if remaining := src.Length - copied; remaining < n {
			n = remaining
		}
		got, err := io.ReadFull(r, a.buf[:n])
		if err != nil {
			return cdda.Wrap(cdda.TruncatedPayload, src.Path, err,
				"read %d of %d payload bytes", copied+int64(got), src.Length)
		}
		if err := a.write(a.buf[:n]); err != nil {
			return err
		}
		copied += n
	}
	return nil
}

func (a *Assembler) writeZeros(n int64) error {
	if n <= 0 {
		return nil
	}
	clear(a.buf)
	for n > 0 {
		chunk := int64(len(a.buf))
		if n < chunk {
			chunk = n
		}
		if err := a.write(a.buf[:chunk]); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

func (a *Assembler) write(p []byte) error {
	if _, err := a.w.Write(p); err != nil {
		return cdda.Wrap(cdda.OutputWriteFailed, a.name, err, "write image")
	}
	if a.progress != nil {
		_, _ = a.progress.Write(p)
	}
	return nil
}

// Tracks returns the tracks appended so far, in order.
func (a *Assembler) Tracks() []Track {
	return append([]Track(nil), a.tracks...)
}

// Sectors returns the number of sectors written so far.
func (a *Assembler) Sectors() int64 {
	return a.sectors
}

// Size returns the number of bytes written so far.
func (a *Assembler) Size() int64 {
	return a.sectors * cdda.SectorSize
}

// Assemble appends every source to w in order.
func Assemble(ctx context.Context, w io.Writer, name string, sources []wav.Source, opts ...Option) ([]Track, error) {
	a := NewAssembler(w, name, opts...)
	for _, src := range sources {
		if _, err := a.Append(ctx, src); err != nil {
			return nil, err
		}
	}
	return a.Tracks(), nil
}
