package inspect

import (
	"bytes"
	"strings"
	"testing"

	"wavnorm.click/internal/pcm"
)

func TestWriteFormatDetails(t *testing.T) {
	format := pcm.Format{
		Channels:   2,
		FrameSize:  4,
		SampleBits: 16,
		SampleRate: 44100,
		BigEndian:  false,
		Encoding:   pcm.SignedPCM,
	}

	var buf bytes.Buffer
	if err := WriteFormatDetails(&buf, format); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	expectedFragments := []string{
		"Channels:",
		"2",
		"44100 Hz",
		"4 bytes",
		"16 bits",
		"PCM_SIGNED",
		"little-endian",
	}

	for _, fragment := range expectedFragments {
		if !strings.Contains(output, fragment) {
			t.Errorf("output missing %q:\n%s", fragment, output)
		}
	}
}

func TestWriteSummary(t *testing.T) {
	frames := make([][]float64, 22050)
	for i := range frames {
		frames[i] = []float64{0}
	}
	data := pcm.NewAudioData(frames, pcm.Format{
		Channels:   1,
		FrameSize:  2,
		SampleBits: 16,
		SampleRate: 44100,
		Encoding:   pcm.SignedPCM,
	})

	var buf bytes.Buffer
	if err := WriteSummary(&buf, data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Frames:") || !strings.Contains(output, "22050") {
		t.Errorf("output missing frame count:\n%s", output)
	}
	if !strings.Contains(output, "500ms") {
		t.Errorf("output missing duration:\n%s", output)
	}
}
