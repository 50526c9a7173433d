package cdda

// PadLength returns the number of zero bytes needed to extend a payload of
// the given length to the next sector boundary. The result is in
// [0, SectorSize).
func PadLength(payload int64) int64 {
	return (SectorSize - payload%SectorSize) % SectorSize
}

// PaddedLength returns payload rounded up to a whole number of sectors.
func PaddedLength(payload int64) int64 {
	return payload + PadLength(payload)
}

// SectorCount returns how many sectors a payload occupies once padded.
func SectorCount(payload int64) int64 {
	return PaddedLength(payload) / SectorSize
}
