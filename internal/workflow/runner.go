package workflow

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"mkcdda/internal/cdda"
	"mkcdda/internal/config"
	"mkcdda/internal/disc"
	"mkcdda/internal/logging"
	"mkcdda/internal/metrics"
	"mkcdda/internal/wav"
)

// ProgressFunc returns a writer that receives every image byte. total is the
// final image size. It is called once per run, after planning succeeds.
type ProgressFunc func(total int64) io.Writer

// Runner converts audio inputs into a disc image.
type Runner struct {
	cfg      *config.Config
	base     *slog.Logger
	logger   *slog.Logger
	metrics  *metrics.Metrics
	dir      string
	progress ProgressFunc
	now      func() time.Time
}

// Option configures optional Runner behavior.
type Option func(*Runner)

// WithOutputDir writes disc.bin and disc.cue into dir instead of the working
// directory.
func WithOutputDir(dir string) Option {
	return func(r *Runner) {
		r.dir = dir
	}
}

// WithMetrics records run statistics into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithProgress mirrors image writes into the writer returned by fn.
func WithProgress(fn ProgressFunc) Option {
	return func(r *Runner) {
		r.progress = fn
	}
}

// WithClock overrides the time source (used in tests).
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// NewRunner constructs a Runner.
func NewRunner(cfg *config.Config, logger *slog.Logger, opts ...Option) *Runner {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	r := &Runner{
		cfg:    cfg,
		base:   logger,
		logger: logging.NewComponentLogger(logger, "workflow"),
		dir:    ".",
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.metrics == nil {
		r.metrics = metrics.New()
	}
	return r
}

// Result describes a completed run.
type Result struct {
	RunID     string
	ImagePath string
	SheetPath string
	Tracks    []disc.Track
	Sectors   int64
	Payload   int64
	Duration  time.Duration
}

// ImageSize returns the image length in bytes.
func (r *Result) ImageSize() int64 {
	return r.Sectors * cdda.SectorSize
}

// Padding returns the number of zero bytes added across all tracks.
func (r *Result) Padding() int64 {
	return r.ImageSize() - r.Payload
}

// Run converts inputs, in order, into one disc image and cue sheet.
func (r *Runner) Run(ctx context.Context, inputs []string) (*Result, error) {
	start := r.now()
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)

	result, err := r.run(ctx, logger, inputs)
	elapsed := r.now().Sub(start)
	if err != nil {
		r.metrics.ObserveFailure(err, elapsed)
		r.flushMetrics(logger)
		logger.Error("conversion failed",
			logging.String("error_kind", metrics.KindLabel(err)),
			logging.Duration("elapsed", elapsed),
			logging.Error(err),
		)
		return nil, err
	}

	result.RunID = runID
	result.Duration = elapsed
	r.metrics.ObserveSuccess(result.Sectors, elapsed, r.now())
	r.flushMetrics(logger)
	logger.Info("conversion complete",
		logging.Int("tracks", len(result.Tracks)),
		logging.String("image", result.ImagePath),
		logging.String("cue", result.SheetPath),
		logging.Int64("padding_bytes", result.Padding()),
		logging.Duration("elapsed", elapsed),
	)
	return result, nil
}

func (r *Runner) run(ctx context.Context, logger *slog.Logger, inputs []string) (*Result, error) {
	if err := checkInputCount(len(inputs)); err != nil {
		return nil, err
	}

	sources, err := parseInputs(logger, inputs)
	if err != nil {
		return nil, err
	}

	planned, sectors := disc.Plan(sources)
	if err := checkLayout(planned); err != nil {
		return nil, err
	}
	size := sectors * cdda.SectorSize
	logger.Debug("planned disc image",
		logging.Int("tracks", len(planned)),
		logging.Int64("sectors", sectors),
		logging.Int64("image_bytes", size),
	)

	if err := r.runPreflightChecks(logger, size); err != nil {
		return nil, err
	}

	result := &Result{
		ImagePath: filepath.Join(r.dir, disc.ImageName),
		SheetPath: filepath.Join(r.dir, cueSheetName),
	}
	tracks, err := r.writeImage(ctx, result.ImagePath, sources, size)
	if err != nil {
		return nil, err
	}
	if err := writeSheet(result.SheetPath, tracks); err != nil {
		return nil, err
	}

	result.Tracks = tracks
	for _, track := range tracks {
		result.Sectors += track.Sectors
		result.Payload += track.Source.Length
	}
	return result, nil
}

func checkInputCount(n int) error {
	switch {
	case n == 0:
		return cdda.Errorf(cdda.UsageError, "", "no input files")
	case n > cdda.MaxTracks:
		return cdda.Errorf(cdda.UsageError, "", "%d input files, a disc holds at most %d tracks", n, cdda.MaxTracks)
	}
	return nil
}

// checkLayout rejects a layout whose last INDEX 01 address would need three
// minute digits. Only start sectors are written as timecodes, so the final
// track may run past 99:59:74.
func checkLayout(tracks []disc.Track) error {
	if len(tracks) == 0 {
		return nil
	}
	last := tracks[len(tracks)-1]
	if last.StartSector >= cdda.MaxSectors {
		return cdda.Errorf(cdda.ResourceExhausted, last.Source.Path,
			"track %d starts at sector %d, past the last addressable sector %d",
			last.Number, last.StartSector, cdda.MaxSectors-1)
	}
	return nil
}

func parseInputs(logger *slog.Logger, inputs []string) ([]wav.Source, error) {
	sources := make([]wav.Source, 0, len(inputs))
	for _, path := range inputs {
		src, err := wav.ParseFile(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("parsed input",
			logging.String(logging.FieldInput, path),
			logging.Int64("payload_offset", src.Offset),
			logging.Int64("payload_bytes", src.Length),
		)
		sources = append(sources, src)
	}
	return sources, nil
}
