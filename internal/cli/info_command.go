package cli

import (
	"github.com/spf13/cobra"

	"wavnorm.click/internal/inspect"
)

// newInfoCommand builds the `info` subcommand: decode a file and print its
// format details and matrix dimensions.
func (c *CLI) newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Show format details of an audio file",
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

			return inspect.WriteSummary(cmd.OutOrStdout(), data)
		},
	}
}
