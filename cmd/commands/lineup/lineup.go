package lineup

import "github.com/spf13/cobra"

// NewCommand returns the "lineup" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lineup",
		Short: "Inspect and run lineups",
		Long: "List, inspect, and run lineups: named groups of actions that\n" +
			"are dispatched together.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(ShowCommand())
	cmd.AddCommand(RunCommand())

	return cmd
}
