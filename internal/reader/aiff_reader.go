package reader

import (
	"bytes"
	"io"
	"log/slog"
	"strings"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"

	"wavnorm.click/internal/pcm"
)

// AiffReader parses AIFF containers
type AiffReader struct{}

// NewAiffReader creates a new AIFF format reader
func NewAiffReader() *AiffReader {
	slog.Debug("creating new AIFF format reader")
	return &AiffReader{}
}

// FormatName returns the name of the container format this reader handles
func (r *AiffReader) FormatName() string {
	return "AIFF"
}

// CanRead checks if this reader can handle the given filename
func (r *AiffReader) CanRead(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, ".aiff") || strings.HasSuffix(lower, ".aif")
}

// Read parses the AIFF header and re-serializes the sound data as
// big-endian signed PCM bytes, AIFF's native layout. go-audio hands back
// per-sample ints, so the byte stream is rebuilt rather than sliced out of
// the container.
func (r *AiffReader) Read(input io.Reader) (pcm.Format, []byte, error) {
	slog.Debug("starting AIFF header read")

	// go-audio/aiff needs a ReadSeeker
	data, err := io.ReadAll(input)
	if err != nil {
		slog.Error("failed to read AIFF data", "error", err)
		return pcm.Format{}, nil, ErrReadFailure
	}
	if len(data) == 0 {
		slog.Error("empty AIFF data")
		return pcm.Format{}, nil, ErrInvalidData
	}

	decoder := aiff.NewDecoder(bytes.NewReader(data))
	decoder.ReadInfo()

	if !decoder.IsValidFile() {
		slog.Error("invalid AIFF file")
		return pcm.Format{}, nil, ErrInvalidData
	}

	channels := int(decoder.NumChans)
	sampleRate := int(decoder.SampleRate)
	bitDepth := decoder.SampleBitDepth()

	if channels == 0 || sampleRate == 0 {
		slog.Error("invalid AIFF format parameters",
			"channels", channels,
			"sample_rate", sampleRate)
		return pcm.Format{}, nil, ErrInvalidData
	}

	bytesPerSample := int(bitDepth) / 8
	switch bytesPerSample {
	case 1, 2, 3, 4:
	default:
		slog.Error("unsupported AIFF bit depth", "bits", bitDepth)
		return pcm.Format{}, nil, ErrUnsupportedFormat
	}

	buffer, err := decoder.FullPCMBuffer()
	if err != nil {
		slog.Error("failed to read AIFF sound data", "error", err)
		return pcm.Format{}, nil, ErrReadFailure
	}

	payload := serializeBigEndian(buffer, bytesPerSample)

	format := pcm.Format{
		Channels:   channels,
		FrameSize:  channels * bytesPerSample,
		SampleBits: int(bitDepth),
		SampleRate: sampleRate,
		BigEndian:  true,
		Encoding:   pcm.SignedPCM,
	}

	slog.Debug("AIFF header read completed",
		"channels", format.Channels,
		"sample_rate", format.SampleRate,
		"bits_per_sample", format.SampleBits,
		"payload_bytes", len(payload))

	return format, payload, nil
}

// serializeBigEndian rebuilds the interleaved sound-data bytes from the
// decoded integer buffer, most significant byte first.
func serializeBigEndian(buffer *audio.IntBuffer, bytesPerSample int) []byte {
	payload := make([]byte, 0, len(buffer.Data)*bytesPerSample)

	for _, value := range buffer.Data {
		for shift := (bytesPerSample - 1) * 8; shift >= 0; shift -= 8 {
			payload = append(payload, byte(value>>shift))
		}
	}

	return payload
}
