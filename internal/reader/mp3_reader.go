package reader

import (
	"io"
	"log/slog"
	"strings"

	"github.com/hajimehoshi/go-mp3"

	"wavnorm.click/internal/pcm"
)

// Mp3Reader decompresses MP3 streams into plain PCM so the normalization
// core never has to know the input was compressed. go-mp3 always emits
// 16-bit little-endian signed stereo.
type Mp3Reader struct{}

// NewMp3Reader creates a new MP3 format reader
func NewMp3Reader() *Mp3Reader {
	slog.Debug("creating new MP3 format reader")
	return &Mp3Reader{}
}

// FormatName returns the name of the container format this reader handles
func (r *Mp3Reader) FormatName() string {
	return "MP3"
}

// CanRead checks if this reader can handle the given filename
func (r *Mp3Reader) CanRead(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".mp3")
}

// Read decodes the full MP3 stream and returns the resulting PCM bytes
// with a matching descriptor.
func (r *Mp3Reader) Read(input io.Reader) (pcm.Format, []byte, error) {
	slog.Debug("starting MP3 decompression")

	decoder, err := mp3.NewDecoder(input)
	if err != nil {
		slog.Error("failed to create MP3 decoder", "error", err)
		return pcm.Format{}, nil, ErrInvalidData
	}

	sampleRate := decoder.SampleRate()
	if sampleRate <= 0 {
		slog.Error("invalid MP3 sample rate", "sample_rate", sampleRate)
		return pcm.Format{}, nil, ErrInvalidData
	}

	payload, err := io.ReadAll(decoder)
	if err != nil {
		slog.Error("failed to read MP3 PCM stream", "error", err)
		return pcm.Format{}, nil, ErrReadFailure
	}
	if len(payload) == 0 {
		slog.Error("no audio data found in MP3 stream")
		return pcm.Format{}, nil, ErrInvalidData
	}

	format := pcm.Format{
		Channels:   2, // go-mp3 always outputs stereo
		FrameSize:  4,
		SampleBits: 16,
		SampleRate: sampleRate,
		BigEndian:  false,
		Encoding:   pcm.SignedPCM,
	}

	slog.Debug("MP3 decompression completed",
		"sample_rate", sampleRate,
		"payload_bytes", len(payload))

	return format, payload, nil
}
