package wav

const (
	riffTag = "RIFF"
	waveTag = "WAVE"
	fmtTag  = "fmt "
	dataTag = "data"
)

const (
	headerSize      = 12
	chunkHeaderSize = 8
	// formatPrefixSize covers audio format, channels, sample rate, byte rate,
	// block align, and bits per sample. Anything beyond it is skipped.
	formatPrefixSize = 16
)

type chunkKind int

const (
	chunkUnknown chunkKind = iota
	chunkFormat
	chunkData
)

func kindOf(tag [4]byte) chunkKind {
	switch string(tag[:]) {
	case fmtTag:
		return chunkFormat
	case dataTag:
		return chunkData
	default:
		return chunkUnknown
	}
}

// alignedSize returns the bytes a chunk occupies on disk: odd sizes carry a
// trailing pad byte.
func alignedSize(size uint32) int64 {
	return int64(size) + int64(size&1)
}
