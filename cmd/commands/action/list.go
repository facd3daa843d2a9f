package action

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Advait-MD/Conductor/internal/actionprefs"
	"github.com/Advait-MD/Conductor/internal/catalog"
	"github.com/Advait-MD/Conductor/internal/domain"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog actions",
		Long: `List every action in the catalog.

Examples:
  conductor action list
  conductor action list --pinned
  conductor action list -o json`,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("pinned", false, "Only show pinned actions")
	cmd.Flags().StringP("output", "o", "", "Output format: table, json, or yaml")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	registry, err := catalog.Load(cmd.Flag("catalog").Value.String())
	if err != nil {
		return err
	}

	// The pin store is optional: the list renders without it.
	pinned := map[string]bool{}
	if repo, err := actionprefs.Open(); err == nil {
		defer repo.Close()
		if ids, err := repo.ListPinned(); err == nil {
			for _, id := range ids {
				pinned[id] = true
			}
		}
	}

	actions := registry.Actions()

	// Pinned actions surface first, both groups keeping catalog order.
	sort.SliceStable(actions, func(i, j int) bool {
		return pinned[actions[i].ID] && !pinned[actions[j].ID]
	})

	if pinnedOnly, _ := cmd.Flags().GetBool("pinned"); pinnedOnly {
		var filtered []domain.ActionSpec
		for _, a := range actions {
			if pinned[a.ID] {
				filtered = append(filtered, a)
			}
		}
		actions = filtered
	}

	switch output := outputFormat(cmd); output {
	case "json":
		return printJSON(cmd, actions)
	case "yaml":
		return printYAML(cmd, actions)
	case "table":
	default:
		return fmt.Errorf("unsupported output format %q", output)
	}

	if len(actions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No actions found.")
		return nil
	}

	printActionsTable(cmd, actions, pinned)
	return nil
}
