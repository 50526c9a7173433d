package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"mkcdda/internal/cue"
	"mkcdda/internal/disc"
	"mkcdda/internal/metrics"
	"mkcdda/internal/workflow"
)

func runConvert(cmd *cobra.Command, ctx *commandContext, inputs []string, progress bool) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger()
	if err != nil {
		return err
	}

	opts := []workflow.Option{workflow.WithMetrics(metrics.New())}
	var bar *progressbar.ProgressBar
	if progress && cfg.Assembly.ShowProgress && shouldColorize(cmd.ErrOrStderr()) {
		opts = append(opts, workflow.WithProgress(func(total int64) io.Writer {
			bar = newProgressBar(cmd.ErrOrStderr(), total)
			return bar
		}))
	}

	result, err := workflow.NewRunner(cfg, logger, opts...).Run(cmd.Context(), inputs)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTrackTable(result.Tracks))
	colorize := shouldColorize(out)
	fmt.Fprintln(out, renderStatusLine("Image", statusOK,
		fmt.Sprintf("%s (%s, %d sectors)", result.ImagePath, humanize.IBytes(uint64(result.ImageSize())), result.Sectors), colorize))
	fmt.Fprintln(out, renderStatusLine("Cue sheet", statusOK, result.SheetPath, colorize))
	fmt.Fprintf(out, "Done! Created %s and %s with %d track(s).\n", disc.ImageName, cue.SheetName, len(result.Tracks))
	return nil
}

func newProgressBar(w io.Writer, total int64) *progressbar.ProgressBar {
	return progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("writing "+disc.ImageName),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func renderTrackTable(tracks []disc.Track) string {
	rows := make([][]string, 0, len(tracks))
	for _, track := range tracks {
		rows = append(rows, []string{
			fmt.Sprintf("%02d", track.Number),
			track.Source.Path,
			humanize.IBytes(uint64(track.Source.Length)),
			strconv.FormatInt(track.Pad(), 10),
			strconv.FormatInt(track.StartSector, 10),
			track.Timecode().String(),
		})
	}
	return renderTable(
		[]string{"Track", "Source", "Payload", "Pad", "Start", "Index 01"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	)
}
