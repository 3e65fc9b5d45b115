package cli

import (
	"github.com/spf13/cobra"

	"wavnorm.click/internal/playback"
)

// newPlayCommand builds the `play` subcommand: decode a file and play it
// through the default output device.
func (c *CLI) newPlayCommand() *cobra.Command {
	var volume float64

	cmd := &cobra.Command{
		Use:   "play <file>",
		Short: "Decode a file and play it",
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

			if !cmd.Flags().Changed("volume") {
				volume = cfg.Volume
			}

			player := playback.NewPlayer(volume)
			return player.Play(cmd.Context(), data)
		},
	}

	cmd.Flags().Float64VarP(&volume, "volume", "v", 1.0, "Playback volume (0.0 to 1.0)")

	return cmd
}
