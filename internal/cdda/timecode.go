package cdda

import (
	"fmt"
	"strconv"
	"strings"
)

// Timecode is a disc address in minutes, seconds, and frames.
type Timecode struct {
	Minutes int
	Seconds int
	Frames  int
}

// Pregap is the fixed lead-in declared before the first track's index.
var Pregap = Timecode{Seconds: 2}

// TimecodeFromSector converts a sector index to its MM:SS:FF address.
func TimecodeFromSector(sector int64) Timecode {
	return Timecode{
		Minutes: int(sector / FramesPerMinute),
		Seconds: int((sector / FramesPerSecond) % 60),
		Frames:  int(sector % FramesPerSecond),
	}
}

// Sector converts the timecode back to a sector index.
func (t Timecode) Sector() int64 {
	return int64(t.Minutes)*FramesPerMinute + int64(t.Seconds)*FramesPerSecond + int64(t.Frames)
}

// String renders the timecode as zero padded MM:SS:FF.
func (t Timecode) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Minutes, t.Seconds, t.Frames)
}

// ParseTimecode reads an MM:SS:FF address. Seconds must be below 60 and
// frames below 75.
func ParseTimecode(value string) (Timecode, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return Timecode{}, fmt.Errorf("parse timecode %q: expected MM:SS:FF", value)
	}
	fields := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Timecode{}, fmt.Errorf("parse timecode %q: invalid field %q", value, part)
		}
		fields[i] = n
	}
	tc := Timecode{Minutes: fields[0], Seconds: fields[1], Frames: fields[2]}
	if tc.Seconds >= 60 {
		return Timecode{}, fmt.Errorf("parse timecode %q: seconds out of range", value)
	}
	if tc.Frames >= FramesPerSecond {
		return Timecode{}, fmt.Errorf("parse timecode %q: frames out of range", value)
	}
	return tc, nil
}
