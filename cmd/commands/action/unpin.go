package action

import "github.com/spf13/cobra"

// UnpinCommand returns the "action unpin" command.
func UnpinCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unpin <id>",
		Short: "Unpin an action",
		Long: `Remove the pin from an action.

Examples:
  conductor action unpin open_vscode`,
		Args:         cobra.ExactArgs(1),
		RunE:         runUnpin,
		SilenceUsage: true,
	}

	return cmd
}

func runUnpin(cmd *cobra.Command, args []string) error {
	return setPinned(cmd, args[0], false)
}
