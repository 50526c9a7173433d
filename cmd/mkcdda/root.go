package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var noProgress bool

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "mkcdda [flags] track.wav [track.wav ...]",
		Short: "Build a raw CD-DA image and cue sheet from WAV files",
		Long: "mkcdda concatenates 44.1kHz 16-bit stereo PCM WAV files into disc.bin,\n" +
			"padding each track to a 2352 byte sector, and writes disc.cue describing\n" +
			"the track layout. Tracks are numbered in argument order.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, ctx, args, !noProgress)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")

	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
