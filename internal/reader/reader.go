package reader

import (
	"errors"
	"io"

	"wavnorm.click/internal/pcm"
)

// Common reader errors
var (
	ErrInvalidData       = errors.New("invalid audio data")
	ErrReadFailure       = errors.New("failed to read audio data")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// FormatReader parses one container format. It owns all header parsing:
// the core decode functions only ever see the returned descriptor plus raw
// interleaved PCM bytes.
type FormatReader interface {
	// Read parses the container header and returns the format descriptor
	// together with the raw PCM payload
	Read(r io.Reader) (pcm.Format, []byte, error)

	// CanRead checks if this reader can handle the given filename
	CanRead(filename string) bool

	// FormatName returns the name of the container format this reader handles
	FormatName() string
}
