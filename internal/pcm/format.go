package pcm

import "fmt"

// Encoding identifies how raw sample bytes map to amplitude values.
// Only the two PCM encodings are decodable; anything else is carried
// through so error messages can name it.
type Encoding string

const (
	SignedPCM   Encoding = "PCM_SIGNED"
	UnsignedPCM Encoding = "PCM_UNSIGNED"
)

// Format describes the byte layout of a raw PCM buffer. It is supplied by
// a format reader that has already parsed the container header; the decode
// functions never mutate it.
type Format struct {
	Channels   int      // number of interleaved channels per frame
	FrameSize  int      // bytes per frame; 0 means unspecified
	SampleBits int      // bits per sample (8, 16, 24, 32, ...)
	SampleRate int      // frames per second, informational only
	BigEndian  bool     // byte order of multi-byte samples
	Encoding   Encoding // sample encoding
}

// BytesPerSample returns the sample width in whole bytes.
func (f Format) BytesPerSample() int {
	return f.SampleBits / 8
}

// BytesPerFrame returns the frame width in bytes, defaulting to 1 when the
// descriptor left it unspecified.
func (f Format) BytesPerFrame() int {
	if f.FrameSize <= 0 {
		return 1
	}
	return f.FrameSize
}

// ByteOrderName returns a printable byte order label.
func (f Format) ByteOrderName() string {
	if f.BigEndian {
		return "big-endian"
	}
	return "little-endian"
}

func (f Format) String() string {
	return fmt.Sprintf("%s %d-bit %d ch @ %d Hz (%s)",
		f.Encoding, f.SampleBits, f.Channels, f.SampleRate, f.ByteOrderName())
}
