package history

import "github.com/spf13/cobra"

// NewCommand returns the "history" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "View and manage run history",
		Long: "View the local history of action runs and prune old entries.\n\n" +
			"History is stored locally in ~/.config/conductor/conductor.db.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PruneCommand())
	cmd.AddCommand(StatsCommand())

	return cmd
}
