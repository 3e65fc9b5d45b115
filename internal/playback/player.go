// Package playback plays decoded audio through the default output device.
package playback

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"

	"wavnorm.click/internal/pcm"
)

// Playback errors
var (
	ErrNothingToPlay = errors.New("no frames to play")
	ErrNoSampleRate  = errors.New("audio data has no sample rate")
)

// Player converts normalized sample matrices back to 16-bit PCM and plays
// them through oto. One Player may play several buffers sequentially; Play
// blocks until playback finishes or the context is cancelled.
type Player struct {
	volume float64
}

// NewPlayer creates a player with the given software volume (0.0 to 1.0).
func NewPlayer(volume float64) *Player {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}

	slog.Debug("creating playback player", "volume", volume)
	return &Player{volume: volume}
}

// Play renders the matrix as signed 16-bit little-endian PCM and blocks
// until the device has drained it.
func (p *Player) Play(ctx context.Context, data *pcm.AudioData) error {
	if data.NumFrames() == 0 {
		return ErrNothingToPlay
	}

	format := data.Format()
	if format.SampleRate <= 0 {
		return ErrNoSampleRate
	}

	buf := renderS16LE(data, p.volume)

	slog.Debug("initializing audio output",
		"sample_rate", format.SampleRate,
		"channels", data.NumChannels(),
		"buffer_bytes", len(buf))

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: data.NumChannels(),
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return fmt.Errorf("failed to create audio context: %w", err)
	}

	select {
	case <-ready:
	case <-ctx.Done():
		return ctx.Err()
	}

	player := otoCtx.NewPlayer(bytes.NewReader(buf))
	defer player.Close()

	player.Play()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	slog.Debug("playback finished", "frames", data.NumFrames())
	return nil
}

// renderS16LE converts normalized samples back into interleaved signed
// 16-bit little-endian bytes, applying the volume scale and clamping any
// rounding spill at the extremes.
func renderS16LE(data *pcm.AudioData, volume float64) []byte {
	channels := data.NumChannels()
	buf := make([]byte, 0, data.NumFrames()*channels*2)

	for _, frame := range data.Frames() {
		for _, sample := range frame {
			scaled := sample * volume * math.MaxInt16
			if scaled > math.MaxInt16 {
				scaled = math.MaxInt16
			}
			if scaled < math.MinInt16 {
				scaled = math.MinInt16
			}

			value := int16(scaled)
			buf = append(buf, byte(value), byte(uint16(value)>>8))
		}
	}

	return buf
}
