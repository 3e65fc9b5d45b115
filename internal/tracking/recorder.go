package tracking

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/tj/go-naturaldate"

	"wavnorm.click/internal/pcm"
)

// DecodeEvent is one recorded decode operation.
type DecodeEvent struct {
	ID         int64
	Timestamp  time.Time
	Path       string
	FormatName string
	Channels   int
	SampleRate int
	SampleBits int
	Frames     int
	Duration   time.Duration
}

// QueryFilter narrows a history listing.
type QueryFilter struct {
	Since string // natural-language expression, e.g. "2 days ago"
	Limit int    // maximum rows; defaults to 20
}

// RecordDecode stores one successful decode in the history database.
func RecordDecode(db *sql.DB, path, formatName string, data *pcm.AudioData) error {
	format := data.Format()

	_, err := db.Exec(`
		INSERT INTO decode_events
			(timestamp, path, format_name, channels, sample_rate, sample_bits, frames, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().Unix(),
		path,
		formatName,
		format.Channels,
		format.SampleRate,
		format.SampleBits,
		data.NumFrames(),
		data.Duration().Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to record decode: %w", err)
	}

	slog.Debug("decode recorded",
		"path", path,
		"format", formatName,
		"frames", data.NumFrames())

	return nil
}

// ListDecodes returns recorded decodes, newest first.
func ListDecodes(db *sql.DB, filter QueryFilter) ([]DecodeEvent, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	since := int64(0)
	if filter.Since != "" {
		parsed, err := naturaldate.Parse(filter.Since, time.Now())
		if err != nil {
			return nil, fmt.Errorf("failed to parse time expression %q: %w", filter.Since, err)
		}
		since = parsed.Unix()
	}

	rows, err := db.Query(`
		SELECT id, timestamp, path, format_name, channels, sample_rate, sample_bits, frames, duration_ms
		FROM decode_events
		WHERE timestamp >= ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`,
		since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query decode history: %w", err)
	}
	defer rows.Close()

	var events []DecodeEvent
	for rows.Next() {
		var event DecodeEvent
		var timestamp, durationMs int64

		if err := rows.Scan(&event.ID, &timestamp, &event.Path, &event.FormatName,
			&event.Channels, &event.SampleRate, &event.SampleBits, &event.Frames, &durationMs); err != nil {
			return nil, fmt.Errorf("failed to scan decode event: %w", err)
		}

		event.Timestamp = time.Unix(timestamp, 0)
		event.Duration = time.Duration(durationMs) * time.Millisecond
		events = append(events, event)
	}

	return events, rows.Err()
}
