package cdda

// SampleRate is the number of samples per second per channel. Every Red Book
// audio CD uses 44.1KHz.
const SampleRate = 44100

// Channels is the number of interleaved audio channels. Red Book audio is
// always stereo.
const Channels = 2

// BitsPerSample is the sample width; samples are signed 16-bit little-endian.
const BitsPerSample = 16

// BytesPerSample is BitsPerSample expressed in bytes.
const BytesPerSample = BitsPerSample / 8

// FramesPerSecond is the number of timecode frames in one second of audio.
// Cue sheet addresses are written as MM:SS:FF with FF in [0, 75).
//
// A timecode frame covers exactly one sector of audio, which is why a
// sector index converts directly to a timecode.
const FramesPerSecond = 75

// FramesPerMinute is FramesPerSecond over a full minute (4500).
const FramesPerMinute = FramesPerSecond * 60

// SectorSize is the number of audio bytes carried by one raw CD sector (2352).
const SectorSize = SampleRate * Channels * BytesPerSample / FramesPerSecond

// MaxTracks is the largest track number a two digit cue sheet TRACK line
// can express.
const MaxTracks = 99

// MaxSectors is the first sector whose timecode no longer fits two digit
// minutes (100:00:00).
const MaxSectors = 100 * FramesPerMinute
