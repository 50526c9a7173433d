package workflow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mkcdda/internal/cdda"
	"mkcdda/internal/config"
	"mkcdda/internal/disc"
	"mkcdda/internal/logging"
	"mkcdda/internal/testsupport"
)

func newTestRunner(t *testing.T, cfg *config.Config, opts ...Option) (*Runner, string) {
	t.Helper()
	out := t.TempDir()
	opts = append([]Option{WithOutputDir(out)}, opts...)
	return NewRunner(cfg, logging.NewNop(), opts...), out
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestRunTwoTracks(t *testing.T) {
	in := t.TempDir()
	first := testsupport.Payload(4705, 1)
	second := testsupport.Payload(2352, 2)
	inputs := []string{
		testsupport.WriteWAV(t, in, "track01.wav", testsupport.CDWAV(first)),
		testsupport.WriteWAV(t, in, "track02.wav", testsupport.CDWAV(second)),
	}
	cfg := testsupport.NewConfig(t, testsupport.WithMetricsTextfile())
	runner, out := newTestRunner(t, cfg)

	result, err := runner.Run(context.Background(), inputs)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.RunID == "" {
		t.Fatal("expected run id")
	}
	if result.ImageSize() != 9408 || result.Sectors != 4 {
		t.Fatalf("unexpected size %d (%d sectors)", result.ImageSize(), result.Sectors)
	}
	if result.Padding() != 9408-4705-2352 {
		t.Fatalf("unexpected padding %d", result.Padding())
	}
	if got := result.Tracks[1].StartSector; got != 3 {
		t.Fatalf("track 2 start = %d, want 3", got)
	}

	image, err := os.ReadFile(filepath.Join(out, "disc.bin"))
	if err != nil {
		t.Fatalf("read image: %v", err)
	}
	if len(image) != 9408 {
		t.Fatalf("image length = %d, want 9408", len(image))
	}
	if !bytes.Equal(image[:4705], first) || !bytes.Equal(image[3*2352:3*2352+2352], second) {
		t.Fatal("payload bytes not copied verbatim")
	}

	sheet, err := os.ReadFile(filepath.Join(out, "disc.cue"))
	if err != nil {
		t.Fatalf("read cue: %v", err)
	}
	want := "FILE \"disc.bin\" BINARY\n" +
		"  TRACK 01 AUDIO\n" +
		"    PREGAP 00:02:00\n" +
		"    INDEX 01 00:00:00\n" +
		"  TRACK 02 AUDIO\n" +
		"    INDEX 01 00:00:03\n"
	if string(sheet) != want {
		t.Fatalf("cue sheet mismatch:\n%s", sheet)
	}

	if _, err := os.Stat(filepath.Join(out, "disc.bin.lock")); !os.IsNotExist(err) {
		t.Fatalf("expected lock file to be removed, stat err=%v", err)
	}

	prom, err := os.ReadFile(cfg.Metrics.Textfile)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(prom), "mkcdda_tracks_total 2") {
		t.Fatalf("metrics missing track count:\n%s", prom)
	}
}

func TestRunNoInputsCreatesNothing(t *testing.T) {
	runner, out := newTestRunner(t, testsupport.NewConfig(t))

	_, err := runner.Run(context.Background(), nil)
	if !errors.Is(err, cdda.UsageError) {
		t.Fatalf("expected UsageError, got %v", err)
	}
	if names := listDir(t, out); len(names) != 0 {
		t.Fatalf("expected empty output dir, got %v", names)
	}
}

func TestRunTooManyInputs(t *testing.T) {
	runner, out := newTestRunner(t, testsupport.NewConfig(t))
	inputs := make([]string, cdda.MaxTracks+1)
	for i := range inputs {
		inputs[i] = fmt.Sprintf("track%03d.wav", i+1)
	}

	_, err := runner.Run(context.Background(), inputs)
	if !errors.Is(err, cdda.UsageError) {
		t.Fatalf("expected UsageError, got %v", err)
	}
	if names := listDir(t, out); len(names) != 0 {
		t.Fatalf("expected empty output dir, got %v", names)
	}
}

func TestRunRejectsBadInputBeforeWriting(t *testing.T) {
	in := t.TempDir()
	good := testsupport.WriteWAV(t, in, "good.wav", testsupport.CDWAV(testsupport.Payload(100, 1)))

	notWave := testsupport.CDWAV(testsupport.Payload(100, 2))
	notWave.WAVETag = "AVI "
	hiRes := testsupport.CDWAV(testsupport.Payload(100, 3))
	hiRes.SampleRate = 48000

	tests := []struct {
		name  string
		input string
		kind  cdda.Kind
	}{
		{"malformed", testsupport.WriteWAV(t, in, "bad.wav", notWave), cdda.MalformedContainer},
		{"unsupported", testsupport.WriteWAV(t, in, "48k.wav", hiRes), cdda.UnsupportedFormat},
		{"missing", filepath.Join(in, "absent.wav"), cdda.UsageError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner, out := newTestRunner(t, testsupport.NewConfig(t))
			_, err := runner.Run(context.Background(), []string{good, tt.input})
			if !errors.Is(err, tt.kind) {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
			if !strings.Contains(err.Error(), tt.input) {
				t.Fatalf("expected error to name %s, got %v", tt.input, err)
			}
			if names := listDir(t, out); len(names) != 0 {
				t.Fatalf("expected no outputs, got %v", names)
			}
		})
	}
}

func TestRunTruncatedPayloadLeavesNoCue(t *testing.T) {
	in := t.TempDir()
	short := testsupport.CDWAV(testsupport.Payload(1000, 4))
	short.DataSize = 5000
	inputs := []string{
		testsupport.WriteWAV(t, in, "ok.wav", testsupport.CDWAV(testsupport.Payload(3000, 1))),
		testsupport.WriteWAV(t, in, "short.wav", short),
	}
	cfg := testsupport.NewConfig(t, testsupport.WithMetricsTextfile())
	runner, out := newTestRunner(t, cfg)

	_, err := runner.Run(context.Background(), inputs)
	if !errors.Is(err, cdda.TruncatedPayload) {
		t.Fatalf("expected TruncatedPayload, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "disc.cue")); !os.IsNotExist(err) {
		t.Fatalf("cue sheet must not be written after a failure, stat err=%v", err)
	}
	prom, err := os.ReadFile(cfg.Metrics.Textfile)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(prom), `mkcdda_failures_total{kind="truncated payload"} 1`) {
		t.Fatalf("failure not recorded:\n%s", prom)
	}
}

func TestRunRejectsTrackPastLastAddress(t *testing.T) {
	in := t.TempDir()
	huge := testsupport.CDWAV(testsupport.Payload(16, 1))
	huge.DataSize = cdda.MaxSectors * cdda.SectorSize
	inputs := []string{
		testsupport.WriteWAV(t, in, "huge.wav", huge),
		testsupport.WriteWAV(t, in, "next.wav", testsupport.CDWAV(testsupport.Payload(16, 2))),
	}
	runner, out := newTestRunner(t, testsupport.NewConfig(t))

	_, err := runner.Run(context.Background(), inputs)
	if !errors.Is(err, cdda.ResourceExhausted) {
		t.Fatalf("expected ResourceExhausted, got %v", err)
	}
	if !strings.Contains(err.Error(), "next.wav") {
		t.Fatalf("expected error to name the second track, got %v", err)
	}
	if names := listDir(t, out); len(names) != 0 {
		t.Fatalf("expected no outputs, got %v", names)
	}
}

func TestCheckLayoutUsesStartSectors(t *testing.T) {
	lastAddressable := []disc.Track{
		{Number: 1, StartSector: 0, Sectors: cdda.MaxSectors - 1},
		{Number: 2, StartSector: cdda.MaxSectors - 1, Sectors: 10},
	}
	if err := checkLayout(lastAddressable); err != nil {
		t.Fatalf("track starting at 99:59:74 should fit, got %v", err)
	}

	single := []disc.Track{{Number: 1, StartSector: 0, Sectors: cdda.MaxSectors + 100}}
	if err := checkLayout(single); err != nil {
		t.Fatalf("a long final track has no address to overflow, got %v", err)
	}

	overflow := []disc.Track{
		{Number: 1, StartSector: 0, Sectors: cdda.MaxSectors},
		{Number: 2, StartSector: cdda.MaxSectors, Sectors: 1},
	}
	if err := checkLayout(overflow); !errors.Is(err, cdda.ResourceExhausted) {
		t.Fatalf("expected ResourceExhausted, got %v", err)
	}
	if err := checkLayout(nil); err != nil {
		t.Fatalf("empty layout: %v", err)
	}
}

func TestRunShortFirstTrack(t *testing.T) {
	in := t.TempDir()
	inputs := []string{
		testsupport.WriteWAV(t, in, "a.wav", testsupport.CDWAV(testsupport.Payload(4700, 1))),
		testsupport.WriteWAV(t, in, "b.wav", testsupport.CDWAV(testsupport.Payload(2352, 2))),
	}
	runner, out := newTestRunner(t, testsupport.NewConfig(t))

	result, err := runner.Run(context.Background(), inputs)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.ImageSize() != 7056 {
		t.Fatalf("image size = %d, want 7056 (4700 pads to 4704)", result.ImageSize())
	}
	sheet, err := os.ReadFile(filepath.Join(out, "disc.cue"))
	if err != nil {
		t.Fatalf("read cue: %v", err)
	}
	if !strings.Contains(string(sheet), "  TRACK 02 AUDIO\n    INDEX 01 00:00:02\n") {
		t.Fatalf("track 2 should start at 00:00:02:\n%s", sheet)
	}
}

func TestRunMissingOutputDir(t *testing.T) {
	in := t.TempDir()
	input := testsupport.WriteWAV(t, in, "a.wav", testsupport.CDWAV(testsupport.Payload(10, 1)))
	runner := NewRunner(testsupport.NewConfig(t), logging.NewNop(), WithOutputDir(filepath.Join(in, "missing")))

	_, err := runner.Run(context.Background(), []string{input})
	if !errors.Is(err, cdda.OutputWriteFailed) {
		t.Fatalf("expected OutputWriteFailed, got %v", err)
	}
}

func TestRunReportsProgress(t *testing.T) {
	in := t.TempDir()
	input := testsupport.WriteWAV(t, in, "a.wav", testsupport.CDWAV(testsupport.Payload(5000, 1)))

	var total int64
	var seen bytes.Buffer
	runner, _ := newTestRunner(t, testsupport.NewConfig(t, testsupport.WithBufferKiB(1)),
		WithProgress(func(n int64) io.Writer {
			total = n
			return &seen
		}),
	)

	result, err := runner.Run(context.Background(), []string{input})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if total != result.ImageSize() || int64(seen.Len()) != total {
		t.Fatalf("progress saw %d of %d bytes, image is %d", seen.Len(), total, result.ImageSize())
	}
}
