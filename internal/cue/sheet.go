package cue

import (
	"fmt"
	"io"
	"os"
	"strings"

	"mkcdda/internal/cdda"
	"mkcdda/internal/disc"
)

// SheetName is the fixed file name of the cue sheet.
const SheetName = "disc.cue"

// Render returns the cue sheet text for tracks stored in imageName.
func Render(imageName string, tracks []disc.Track) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FILE \"%s\" BINARY\n", imageName)
	for i, track := range tracks {
		fmt.Fprintf(&b, "  TRACK %02d AUDIO\n", track.Number)
		if i == 0 {
			fmt.Fprintf(&b, "    PREGAP %s\n", cdda.Pregap)
		}
		fmt.Fprintf(&b, "    INDEX 01 %s\n", track.Timecode())
	}
	return b.String()
}

// Write renders the sheet into w.
func Write(w io.Writer, imageName string, tracks []disc.Track) error {
	if _, err := io.WriteString(w, Render(imageName, tracks)); err != nil {
		return cdda.Wrap(cdda.OutputWriteFailed, SheetName, err, "write cue sheet")
	}
	return nil
}

// WriteFile creates or truncates path and writes the sheet into it.
func WriteFile(path, imageName string, tracks []disc.Track) error {
	f, err := os.Create(path)
	if err != nil {
		return cdda.Wrap(cdda.OutputWriteFailed, path, err, "create cue sheet")
	}
	if err := Write(f, imageName, tracks); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return cdda.Wrap(cdda.OutputWriteFailed, path, err, "close cue sheet")
	}
	return nil
}
