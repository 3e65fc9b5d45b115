package pcm

import (
	"errors"
	"fmt"
	"time"
)

// ErrChannelOutOfRange reports a channel index that does not exist in the
// decoded matrix.
var ErrChannelOutOfRange = errors.New("channel does not exist")

// AudioData holds the decoded sample matrix together with the format that
// produced it. The matrix is indexed [frame][channel] with every value in
// [-1.0, 1.0]. It is built once by DecodeFrames and read-only afterwards.
type AudioData struct {
	frames [][]float64
	format Format
}

// NewAudioData wraps an already-decoded matrix. Callers must not modify
// the matrix afterwards.
func NewAudioData(frames [][]float64, format Format) *AudioData {
	return &AudioData{frames: frames, format: format}
}

// Frames exposes the raw sample matrix for inspection.
func (a *AudioData) Frames() [][]float64 {
	return a.frames
}

// Format returns the format descriptor the samples were decoded with.
func (a *AudioData) Format() Format {
	return a.format
}

// NumFrames returns the number of decoded frames.
func (a *AudioData) NumFrames() int {
	return len(a.frames)
}

// NumChannels returns the channel count of the matrix. An empty matrix
// falls back to the descriptor's channel count so bounds checks still work
// on zero-frame input.
func (a *AudioData) NumChannels() int {
	if len(a.frames) > 0 {
		return len(a.frames[0])
	}
	return a.format.Channels
}

// Duration estimates the playing time from the frame count and sample
// rate. Returns zero when the rate is unknown.
func (a *AudioData) Duration() time.Duration {
	if a.format.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(a.frames)) * time.Second / time.Duration(a.format.SampleRate)
}

// ExtractChannel flattens the two-dimensional matrix into the sample
// sequence of a single channel, one value per frame. A zero-frame matrix
// with a valid index yields an empty slice rather than an error.
func (a *AudioData) ExtractChannel(channel int) ([]float64, error) {
	if channel < 0 || channel >= a.NumChannels() {
		return nil, fmt.Errorf("%w: channel %d of %d", ErrChannelOutOfRange, channel, a.NumChannels())
	}

	samples := make([]float64, len(a.frames))
	for f, frame := range a.frames {
		samples[f] = frame[channel]
	}

	return samples, nil
}
