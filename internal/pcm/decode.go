package pcm

import (
	"errors"
	"fmt"
	"log/slog"
	"math/big"
)

// Common decode errors
var (
	ErrUnsupportedEncoding = errors.New("unsupported audio encoding")
	ErrMalformedFormat     = errors.New("format descriptor inconsistent with data layout")
)

// DecodeSample converts the raw bytes of a single sample into a normalized
// value in [-1.0, 1.0]. The slice must hold exactly one sample
// (format.BytesPerSample() bytes); little-endian input is reversed so
// accumulation always runs most significant byte first.
//
// The accumulator is a big.Int so that the +128 bias correction for signed
// PCM stays exact at any bit depth; only the final division is floating
// point.
func DecodeSample(sampleBytes []byte, format Format) (float64, error) {
	switch format.Encoding {
	case SignedPCM, UnsignedPCM:
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, format.Encoding)
	}

	if len(sampleBytes) == 0 {
		return 0, fmt.Errorf("%w: zero-width sample", ErrMalformedFormat)
	}

	ordered := sampleBytes
	if !format.BigEndian {
		ordered = make([]byte, len(sampleBytes))
		for i, b := range sampleBytes {
			ordered[len(sampleBytes)-1-i] = b
		}
	}

	sampleInt := new(big.Int)
	maxInt := new(big.Int)
	byteVal := new(big.Int)

	for _, b := range ordered {
		var unsigned uint8
		if format.Encoding == SignedPCM {
			// maps -128..127 onto 0..255
			unsigned = uint8(int(int8(b)) + 128)
		} else {
			unsigned = b
		}

		sampleInt.Lsh(sampleInt, 8)
		sampleInt.Add(sampleInt, byteVal.SetInt64(int64(unsigned)))
		maxInt.Lsh(maxInt, 8)
		maxInt.Add(maxInt, byteVal.SetInt64(0xFF))
	}

	sampleValue, _ := new(big.Float).SetInt(sampleInt).Float64()
	maxValue, _ := new(big.Float).SetInt(maxInt).Float64()

	return 2.0*sampleValue/maxValue - 1.0, nil
}

// DecodeFrames converts a raw interleaved PCM buffer into an AudioData
// matrix indexed [frame][channel]. Any trailing bytes short of a full frame
// are dropped. The descriptor is validated up front: a layout where the
// channels cannot fit inside one frame fails with ErrMalformedFormat
// instead of slicing past the frame boundary.
func DecodeFrames(data []byte, format Format) (*AudioData, error) {
	bytesPerFrame := format.BytesPerFrame()
	bytesPerSample := format.BytesPerSample()

	if format.Channels < 1 {
		return nil, fmt.Errorf("%w: channel count %d", ErrMalformedFormat, format.Channels)
	}
	if bytesPerSample < 1 {
		return nil, fmt.Errorf("%w: sample size %d bits", ErrMalformedFormat, format.SampleBits)
	}
	if format.Channels*bytesPerSample > bytesPerFrame {
		return nil, fmt.Errorf("%w: %d channels of %d bytes exceed frame size %d",
			ErrMalformedFormat, format.Channels, bytesPerSample, bytesPerFrame)
	}

	frameCount := len(data) / bytesPerFrame
	if dropped := len(data) % bytesPerFrame; dropped != 0 {
		slog.Debug("dropping trailing partial frame", "bytes", dropped)
	}

	frames := make([][]float64, frameCount)
	for f := 0; f < frameCount; f++ {
		frameBytes := data[f*bytesPerFrame : (f+1)*bytesPerFrame]
		samples := make([]float64, format.Channels)

		for c := 0; c < format.Channels; c++ {
			value, err := DecodeSample(frameBytes[c*bytesPerSample:(c+1)*bytesPerSample], format)
			if err != nil {
				return nil, err
			}
			samples[c] = value
		}

		frames[f] = samples
	}

	slog.Debug("PCM decode completed",
		"frames", frameCount,
		"channels", format.Channels,
		"bytes_per_frame", bytesPerFrame)

	return NewAudioData(frames, format), nil
}
