package pcm

import (
	"errors"
	"testing"
	"time"
)

func TestExtractChannel(t *testing.T) {
	frames := [][]float64{
		{0.1, -0.1},
		{0.2, -0.2},
		{0.3, -0.3},
	}
	audioData := NewAudioData(frames, Format{Channels: 2, SampleBits: 16, Encoding: SignedPCM})

	left, err := audioData.ExtractChannel(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	right, err := audioData.ExtractChannel(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedLeft := []float64{0.1, 0.2, 0.3}
	expectedRight := []float64{-0.1, -0.2, -0.3}

	for i := range expectedLeft {
		if left[i] != expectedLeft[i] {
			t.Errorf("left[%d] = %v, expected %v", i, left[i], expectedLeft[i])
		}
		if right[i] != expectedRight[i] {
			t.Errorf("right[%d] = %v, expected %v", i, right[i], expectedRight[i])
		}
	}
}

func TestExtractChannelOutOfRange(t *testing.T) {
	audioData := NewAudioData([][]float64{{0.0, 0.0}}, Format{Channels: 2})

	for _, channel := range []int{-1, 2, 99} {
		_, err := audioData.ExtractChannel(channel)
		if !errors.Is(err, ErrChannelOutOfRange) {
			t.Errorf("ExtractChannel(%d): expected ErrChannelOutOfRange, got %v", channel, err)
		}
	}
}

func TestExtractChannelEmptyMatrix(t *testing.T) {
	// Zero frames: the descriptor still says how many channels exist, so a
	// valid index yields an empty slice instead of an error.
	audioData := NewAudioData([][]float64{}, Format{Channels: 2})

	samples, err := audioData.ExtractChannel(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if samples == nil || len(samples) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", samples)
	}

	_, err = audioData.ExtractChannel(2)
	if !errors.Is(err, ErrChannelOutOfRange) {
		t.Errorf("expected ErrChannelOutOfRange, got %v", err)
	}
}

func TestAudioDataDuration(t *testing.T) {
	frames := make([][]float64, 44100)
	for i := range frames {
		frames[i] = []float64{0}
	}

	audioData := NewAudioData(frames, Format{Channels: 1, SampleRate: 44100})
	if audioData.Duration() != time.Second {
		t.Errorf("expected 1s duration, got %v", audioData.Duration())
	}

	noRate := NewAudioData(frames, Format{Channels: 1})
	if noRate.Duration() != 0 {
		t.Errorf("expected zero duration without sample rate, got %v", noRate.Duration())
	}
}
