package reader

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"wavnorm.click/internal/pcm"
)

// Registry manages format readers and picks the right one for a file
type Registry struct {
	readers []FormatReader
}

// NewRegistry creates a new empty format reader registry
func NewRegistry() *Registry {
	slog.Debug("creating new format reader registry")
	return &Registry{
		readers: make([]FormatReader, 0),
	}
}

// NewDefaultRegistry creates a registry with WAV, AIFF, and MP3 readers
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()

	registry.Register(NewWavReader())
	registry.Register(NewAiffReader())
	registry.Register(NewMp3Reader())

	slog.Debug("default format reader registry initialized",
		"supported_formats", registry.SupportedFormats())

	return registry
}

// Register adds a format reader to the registry
func (r *Registry) Register(reader FormatReader) {
	if reader == nil {
		slog.Warn("attempted to register nil format reader")
		return
	}

	r.readers = append(r.readers, reader)

	slog.Debug("format reader registered",
		"format", reader.FormatName(),
		"total_readers", len(r.readers))
}

// SupportedFormats returns the names of all registered formats
func (r *Registry) SupportedFormats() []string {
	formats := make([]string, 0, len(r.readers))
	for _, reader := range r.readers {
		formats = append(formats, reader.FormatName())
	}
	return formats
}

// DetectFormat picks a reader based on the filename extension only.
// Readers are tried in registration order; first match wins.
func (r *Registry) DetectFormat(filename string) FormatReader {
	if filename == "" {
		return nil
	}

	for _, reader := range r.readers {
		if reader.CanRead(filename) {
			slog.Debug("format detected by extension",
				"filename", filename,
				"format", reader.FormatName())
			return reader
		}
	}

	slog.Debug("no format reader found for filename", "filename", filename)
	return nil
}

// DetectFormatWithContent picks a reader by magic bytes first, falling back
// to the filename extension.
func (r *Registry) DetectFormatWithContent(filename string, input io.Reader) FormatReader {
	buffer := make([]byte, 512)
	n, err := input.Read(buffer)
	if err != nil && err != io.EOF {
		slog.Error("failed to read header for magic detection", "error", err)
		return r.DetectFormat(filename)
	}
	if n == 0 {
		slog.Debug("empty content, using extension fallback")
		return r.DetectFormat(filename)
	}

	mime := strings.ToLower(mimetype.Detect(buffer[:n]).String())

	slog.Debug("magic byte detection result",
		"filename", filename,
		"detected_mime", mime,
		"bytes_analyzed", n)

	var detected FormatReader
	switch {
	case strings.Contains(mime, "wav"):
		detected = r.findByFormat("WAV")
	case strings.Contains(mime, "aiff"):
		detected = r.findByFormat("AIFF")
	case strings.Contains(mime, "mpeg") || strings.Contains(mime, "mp3"):
		detected = r.findByFormat("MP3")
	}

	if detected != nil {
		slog.Debug("format detected by magic bytes",
			"filename", filename,
			"format", detected.FormatName(),
			"mime_type", mime)
		return detected
	}

	slog.Debug("magic detection inconclusive, falling back to extension",
		"filename", filename)
	return r.DetectFormat(filename)
}

func (r *Registry) findByFormat(formatName string) FormatReader {
	for _, reader := range r.readers {
		if strings.EqualFold(reader.FormatName(), formatName) {
			return reader
		}
	}
	return nil
}

// ReadFile parses a file with the appropriate format reader and returns
// the descriptor plus the raw PCM payload, ready for decoding.
func (r *Registry) ReadFile(filename string, input io.Reader) (pcm.Format, []byte, error) {
	slog.Debug("starting file read operation", "filename", filename)

	// Buffer the whole content so detection does not consume the reader
	content, err := io.ReadAll(input)
	if err != nil {
		slog.Error("failed to read file content", "filename", filename, "error", err)
		return pcm.Format{}, nil, fmt.Errorf("failed to read file content: %w", err)
	}

	formatReader := r.DetectFormatWithContent(filename, bytes.NewReader(content))
	if formatReader == nil {
		err := fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
		slog.Error("no suitable format reader found", "filename", filename, "error", err)
		return pcm.Format{}, nil, err
	}

	slog.Debug("format reader selected",
		"filename", filename,
		"format", formatReader.FormatName())

	format, payload, err := formatReader.Read(bytes.NewReader(content))
	if err != nil {
		slog.Error("header read failed",
			"filename", filename,
			"format", formatReader.FormatName(),
			"error", err)
		return pcm.Format{}, nil, err
	}

	slog.Info("file read completed",
		"filename", filename,
		"format", formatReader.FormatName(),
		"channels", format.Channels,
		"sample_rate", format.SampleRate,
		"payload_bytes", len(payload))

	return format, payload, nil
}
