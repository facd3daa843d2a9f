package action

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Advait-MD/Conductor/internal/actionprefs"
	"github.com/Advait-MD/Conductor/internal/catalog"
)

// PinCommand returns the "action pin" command. Pinned actions sort
// first in the TUI and can be filtered with "action list --pinned".
func PinCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pin <id>",
		Short: "Pin an action",
		Long: `Mark an action as pinned.

Examples:
  conductor action pin open_vscode`,
		Args:         cobra.ExactArgs(1),
		RunE:         runPin,
		SilenceUsage: true,
	}

	return cmd
}

func runPin(cmd *cobra.Command, args []string) error {
	return setPinned(cmd, args[0], true)
}

// setPinned flips the pin flag for an action after checking it exists
// in the catalog.
func setPinned(cmd *cobra.Command, id string, pinned bool) error {
	registry, err := catalog.Load(cmd.Flag("catalog").Value.String())
	if err != nil {
		return err
	}

	spec, err := registry.Action(id)
	if err != nil {
		return err
	}

	repo, err := actionprefs.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.Save(&actionprefs.ActionPrefs{ActionID: spec.ID, Pinned: pinned}); err != nil {
		return err
	}

	verb := "pinned"
	if !pinned {
		verb = "unpinned"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", spec.ID, verb)
	return nil
}
