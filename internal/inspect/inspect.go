// Package inspect renders human-readable summaries of decoded audio.
// Pure presentation; nothing here affects decode results.
package inspect

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"wavnorm.click/internal/pcm"
)

// WriteFormatDetails prints the fields of a format descriptor as aligned
// label/value lines.
func WriteFormatDetails(w io.Writer, format pcm.Format) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintf(tw, "Channels:\t%d\n", format.Channels)
	fmt.Fprintf(tw, "Frame rate:\t%d Hz\n", format.SampleRate)
	fmt.Fprintf(tw, "Frame size:\t%d bytes\n", format.BytesPerFrame())
	fmt.Fprintf(tw, "Sample rate:\t%d Hz\n", format.SampleRate)
	fmt.Fprintf(tw, "Sample size:\t%d bits\n", format.SampleBits)
	fmt.Fprintf(tw, "Encoding:\t%s\n", format.Encoding)
	fmt.Fprintf(tw, "Byte order:\t%s\n", format.ByteOrderName())

	return tw.Flush()
}

// WriteSummary prints the format details followed by the decoded matrix
// dimensions and estimated duration.
func WriteSummary(w io.Writer, data *pcm.AudioData) error {
	if err := WriteFormatDetails(w, data.Format()); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintf(tw, "Frames:\t%d\n", data.NumFrames())
	if duration := data.Duration(); duration > 0 {
		fmt.Fprintf(tw, "Duration:\t%s\n", duration.Round(time.Millisecond))
	}

	return tw.Flush()
}
