package workflow

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dustin/go-humanize"

	"mkcdda/internal/cue"
	"mkcdda/internal/disc"
	"mkcdda/internal/logging"
	"mkcdda/internal/preflight"
	"mkcdda/internal/wav"
)

const cueSheetName = cue.SheetName

// runPreflightChecks validates the output directory before the image is
// created. Returns nil when all checks pass.
func (r *Runner) runPreflightChecks(logger *slog.Logger, size int64) error {
	results := preflight.RunAll(r.cfg, r.dir, size)
	for _, res := range results {
		if res.Passed {
			logger.Debug("preflight check passed",
				logging.String("check", res.Name),
				logging.String("detail", res.Detail),
			)
			continue
		}
		logger.Error("preflight check failed",
			logging.String("check", res.Name),
			logging.String("detail", res.Detail),
		)
	}
	return preflight.Err(results)
}

func (r *Runner) writeImage(ctx context.Context, path string, sources []wav.Source, size int64) (tracks []disc.Track, err error) {
	img, err := disc.CreateImage(path, r.cfg.Assembly.LockOutput)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, img.Close())
	}()

	opts := []disc.Option{
		disc.WithBufferSize(r.cfg.BufferSize()),
		disc.WithLogger(r.base),
	}
	if r.progress != nil {
		if w := r.progress(size); w != nil {
			opts = append(opts, disc.WithProgress(w))
		}
	}

	assembler := disc.NewAssembler(img, disc.ImageName, opts...)
	for _, src := range sources {
		track, err := assembler.Append(ctx, src)
		if err != nil {
			return nil, err
		}
		r.metrics.ObserveTrack(src.Length, track.Pad())
	}

	logging.WithContext(ctx, r.logger).Info("disc image written",
		logging.String("image", path),
		logging.Int("tracks", len(sources)),
		logging.Int64("sectors", assembler.Sectors()),
		logging.String("size", humanize.IBytes(uint64(assembler.Size()))),
	)
	return assembler.Tracks(), nil
}

func writeSheet(path string, tracks []disc.Track) error {
	return cue.WriteFile(path, disc.ImageName, tracks)
}

func (r *Runner) flushMetrics(logger *slog.Logger) {
	path := r.cfg.Metrics.Textfile
	if path == "" {
		return
	}
	if err := r.metrics.WriteTextfile(path); err != nil {
		logger.Warn("metrics textfile not written",
			logging.String("path", path),
			logging.Error(err),
		)
	}
}
