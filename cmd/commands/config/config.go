package config

import (
	"github.com/Advait-MD/Conductor/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage conductor configuration",
		Long: "View and modify persistent conductor settings.\n\n" +
			"Configuration is stored at ~/.config/conductor/config.json.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
