package disc

import (
	"mkcdda/internal/cdda"
	"mkcdda/internal/wav"
)

// Track is one entry of the assembled image.
type Track struct {
	Number      int
	Source      wav.Source
	StartSector int64
	Sectors     int64
}

// Pad returns the zero bytes written after the track's payload.
func (t Track) Pad() int64 {
	return cdda.PadLength(t.Source.Length)
}

// StartOffset returns the byte offset of the track within the image.
func (t Track) StartOffset() int64 {
	return t.StartSector * cdda.SectorSize
}

// Timecode returns the track's INDEX 01 address.
func (t Track) Timecode() cdda.Timecode {
	return cdda.TimecodeFromSector(t.StartSector)
}

// nextTrack places src after start sectors of image and returns the track
// together with the sector count following it.
func nextTrack(start int64, number int, src wav.Source) (Track, int64) {
	track := Track{
		Number:      number,
		Source:      src,
		StartSector: start,
		Sectors:     cdda.SectorCount(src.Length),
	}
	return track, start + track.Sectors
}

// Plan lays out sources in order without touching any file. It returns the
// tracks and the total number of sectors the image will hold.
func Plan(sources []wav.Source) ([]Track, int64) {
	tracks := make([]Track, 0, len(sources))
	var total int64
	for i, src := range sources {
		var track Track
		track, total = nextTrack(total, i+1, src)
		tracks = append(tracks, track)
	}
	return tracks, total
}
