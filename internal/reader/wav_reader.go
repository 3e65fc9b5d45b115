package reader

import (
	"bytes"
	"io"
	"log/slog"
	"strings"

	"github.com/youpy/go-wav"

	"wavnorm.click/internal/pcm"
)

// RIFF fmt-chunk codec tags. Only codecPCM produces a decodable buffer;
// the rest map to named non-PCM encodings so the decode step can report
// what it refused.
const (
	codecPCM        = 0x0001
	codecIEEEFloat  = 0x0003
	codecALaw       = 0x0006
	codecMuLaw      = 0x0007
	codecExtensible = 0xFFFE
)

// WavReader parses RIFF/WAVE containers
type WavReader struct{}

// NewWavReader creates a new WAV format reader
func NewWavReader() *WavReader {
	slog.Debug("creating new WAV format reader")
	return &WavReader{}
}

// FormatName returns the name of the container format this reader handles
func (r *WavReader) FormatName() string {
	return "WAV"
}

// CanRead checks if this reader can handle the given filename
func (r *WavReader) CanRead(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, ".wav") || strings.HasSuffix(lower, ".wave")
}

// Read parses the WAV header and returns the descriptor plus the untouched
// data-chunk bytes. WAV sample data is always little-endian; 8-bit samples
// are unsigned by convention, everything wider is signed two's complement.
func (r *WavReader) Read(input io.Reader) (pcm.Format, []byte, error) {
	slog.Debug("starting WAV header read")

	// youpy/go-wav needs a ReadSeeker, so buffer the whole input first
	data, err := io.ReadAll(input)
	if err != nil {
		slog.Error("failed to read WAV data", "error", err)
		return pcm.Format{}, nil, ErrReadFailure
	}
	if len(data) == 0 {
		slog.Error("empty WAV data")
		return pcm.Format{}, nil, ErrInvalidData
	}

	wavReader := wav.NewReader(bytes.NewReader(data))

	header, err := wavReader.Format()
	if err != nil {
		slog.Error("failed to parse WAV format chunk", "error", err)
		return pcm.Format{}, nil, ErrInvalidData
	}

	if header.NumChannels == 0 || header.SampleRate == 0 {
		slog.Error("invalid WAV format parameters",
			"channels", header.NumChannels,
			"sample_rate", header.SampleRate)
		return pcm.Format{}, nil, ErrInvalidData
	}

	format := pcm.Format{
		Channels:   int(header.NumChannels),
		FrameSize:  int(header.BlockAlign),
		SampleBits: int(header.BitsPerSample),
		SampleRate: int(header.SampleRate),
		BigEndian:  false,
		Encoding:   encodingForCodec(header.AudioFormat, header.BitsPerSample),
	}

	// the wav.Reader streams the raw data chunk
	payload, err := io.ReadAll(wavReader)
	if err != nil {
		slog.Error("failed to read WAV data chunk", "error", err)
		return pcm.Format{}, nil, ErrReadFailure
	}

	slog.Debug("WAV header read completed",
		"channels", format.Channels,
		"sample_rate", format.SampleRate,
		"bits_per_sample", format.SampleBits,
		"encoding", format.Encoding,
		"payload_bytes", len(payload))

	return format, payload, nil
}

// encodingForCodec maps a RIFF codec tag onto a sample encoding. Non-PCM
// tags pass through by name rather than failing here, so the refusal comes
// from the decode step with the encoding spelled out.
func encodingForCodec(codec uint16, bitsPerSample uint16) pcm.Encoding {
	switch codec {
	case codecPCM, codecExtensible:
		if bitsPerSample <= 8 {
			return pcm.UnsignedPCM
		}
		return pcm.SignedPCM
	case codecIEEEFloat:
		return pcm.Encoding("IEEE_FLOAT")
	case codecALaw:
		return pcm.Encoding("ALAW")
	case codecMuLaw:
		return pcm.Encoding("ULAW")
	default:
		return pcm.Encoding("UNKNOWN")
	}
}
