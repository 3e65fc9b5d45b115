package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// sample counts at or above this trigger a hint to use --output when
// stdout is an interactive terminal
const terminalDumpWarning = 100000

// newExtractCommand builds the `extract` subcommand: decode a file and
// write one channel's samples, one value per line.
func (c *CLI) newExtractCommand() *cobra.Command {
	var channel int
	var output string

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract one channel as floating-point samples",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}

			data, _, err := c.decodeFile(cfg, args[0])
			if err != nil {
				return err
			}

			samples, err := data.ExtractChannel(channel)
			if err != nil {
				return err
			}

			var out io.Writer = cmd.OutOrStdout()
			if output != "" {
				file, err := c.fs.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer file.Close()
				out = file
			} else if len(samples) >= terminalDumpWarning && c.terminalDetector.IsTerminal(int(os.Stdout.Fd())) {
				fmt.Fprintf(cmd.ErrOrStderr(),
					"Writing %d samples to the terminal; consider --output\n", len(samples))
			}

			return writeSamples(out, samples)
		},
	}

	cmd.Flags().IntVarP(&channel, "channel", "c", 0, "Channel index to extract")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write samples to a file instead of stdout")

	return cmd
}

func writeSamples(w io.Writer, samples []float64) error {
	buffered := bufio.NewWriter(w)

	for _, sample := range samples {
		if _, err := fmt.Fprintf(buffered, "%g\n", sample); err != nil {
			return err
		}
	}

	return buffered.Flush()
}
