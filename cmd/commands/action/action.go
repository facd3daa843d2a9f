package action

import "github.com/spf13/cobra"

// NewCommand returns the "action" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "action",
		Short: "Inspect and run catalog actions",
		Long: "List, inspect, and run the actions defined in the catalog.\n\n" +
			"The built-in catalog can be extended or overridden with a user\n" +
			"catalog at ~/.config/conductor/catalog.toml.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(ShowCommand())
	cmd.AddCommand(RunCommand())
	cmd.AddCommand(PinCommand())
	cmd.AddCommand(UnpinCommand())

	return cmd
}
