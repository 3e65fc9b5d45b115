package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"wavnorm.click/internal/tracking"
)

// newHistoryCommand builds the `history` subcommand: list recorded
// decodes, newest first.
func (c *CLI) newHistoryCommand() *cobra.Command {
	var since string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously decoded files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}

			if cfg.History == nil || !cfg.History.Enabled {
				return fmt.Errorf("decode history is disabled in the configuration")
			}

			db, err := c.openHistory(cfg)
			if err != nil {
				return err
			}

			events, err := tracking.ListDecodes(db, tracking.QueryFilter{
				Since: since,
				Limit: limit,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No decodes recorded.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
			fmt.Fprintln(tw, "WHEN\tFILE\tFORMAT\tCHANNELS\tRATE\tBITS\tFRAMES\tDURATION")
			for _, event := range events {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
					event.Timestamp.Format("2006-01-02 15:04:05"),
					event.Path,
					event.FormatName,
					event.Channels,
					event.SampleRate,
					event.SampleBits,
					event.Frames,
					event.Duration)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Only show decodes after this time (e.g. \"2 days ago\")")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries to show")

	return cmd
}
