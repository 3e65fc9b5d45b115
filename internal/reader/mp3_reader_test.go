package reader

import (
	"bytes"
	"testing"
)

func TestMp3ReaderInterface(t *testing.T) {
	mp3Reader := NewMp3Reader()

	var _ FormatReader = mp3Reader

	if mp3Reader.FormatName() != "MP3" {
		t.Errorf("expected format name 'MP3', got '%s'", mp3Reader.FormatName())
	}
}

func TestMp3ReaderCanRead(t *testing.T) {
	mp3Reader := NewMp3Reader()

	testCases := []struct {
		filename string
		expected bool
	}{
		{"song.mp3", true},
		{"song.MP3", true},
		{"song.wav", false},
		{"", false},
		{"mp3", false},
	}

	for _, tc := range testCases {
		if result := mp3Reader.CanRead(tc.filename); result != tc.expected {
			t.Errorf("CanRead(%q) = %v, expected %v", tc.filename, result, tc.expected)
		}
	}
}

func TestMp3ReaderInvalidData(t *testing.T) {
	mp3Reader := NewMp3Reader()

	t.Run("empty data", func(t *testing.T) {
		_, _, err := mp3Reader.Read(bytes.NewReader(nil))
		if err == nil {
			t.Fatal("expected error for empty data")
		}
	})

	t.Run("not an mp3 stream", func(t *testing.T) {
		_, _, err := mp3Reader.Read(bytes.NewReader([]byte("this is not an mp3 frame")))
		if err == nil {
			t.Fatal("expected error for invalid MP3 data")
		}
	})
}
