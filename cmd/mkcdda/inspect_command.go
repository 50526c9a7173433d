package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"mkcdda/internal/cdda"
	"mkcdda/internal/wav"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect track.wav [track.wav ...]",
		Short: "Show the format and payload of WAV files without converting them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args)
		},
	}
}

type inspection struct {
	path string
	info wav.Info
	err  error
}

func inspectInputs(paths []string) []inspection {
	results := make([]inspection, 0, len(paths))
	for _, path := range paths {
		info, err := wav.ScanFile(path)
		if err == nil {
			err = info.Format.Validate(path)
		}
		results = append(results, inspection{path: path, info: info, err: err})
	}
	return results
}

func runInspect(cmd *cobra.Command, paths []string) error {
	results := inspectInputs(paths)

	rows := make([][]string, 0, len(results))
	var unreadable int
	for _, r := range results {
		if r.info.Path == "" {
			rows = append(rows, []string{r.path, "-", "-", "-", "-", "-", "no"})
			unreadable++
			continue
		}
		rows = append(rows, []string{
			r.path,
			r.info.Format.String(),
			strconv.FormatInt(r.info.Offset, 10),
			humanize.IBytes(uint64(r.info.Length)),
			r.info.Format.Duration(r.info.Length).Round(10 * time.Millisecond).String(),
			strconv.FormatInt(cdda.SectorCount(r.info.Length), 10),
			yesNo(r.err == nil),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(
		[]string{"Input", "Format", "Offset", "Payload", "Duration", "Sectors", "CD ready"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft},
	))

	colorize := shouldColorize(out)
	for _, r := range results {
		if r.err == nil {
			continue
		}
		kind := statusWarn
		if r.info.Path == "" {
			kind = statusError
		}
		fmt.Fprintln(out, renderStatusLine("Input", kind, r.err.Error(), colorize))
	}

	// Profile mismatches are reported above; only unreadable inputs fail.
	if unreadable > 0 {
		return fmt.Errorf("%d of %d inputs could not be parsed", unreadable, len(results))
	}
	return nil
}
