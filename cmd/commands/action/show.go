package action

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Advait-MD/Conductor/internal/actionprefs"
	"github.com/Advait-MD/Conductor/internal/catalog"
	"github.com/Advait-MD/Conductor/internal/domain"
	"github.com/Advait-MD/Conductor/internal/resolve"
)

// ShowCommand returns a cobra.Command that displays details for a
// single action, including where its command resolves to on this
// machine.
func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show details for an action",
		Long: `Display detailed information about a single action.

Examples:
  conductor action show open_vscode
  conductor action show wifi_off -o json`,
		Args:         cobra.ExactArgs(1),
		RunE:         runShow,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "", "Output format: table, json, or yaml")

	return cmd
}

// actionView is the scripting-friendly shape of an action plus its
// current resolution.
type actionView struct {
	Spec     domain.ActionSpec      `json:"spec" yaml:"spec"`
	Resolved domain.ResolvedCommand `json:"resolved" yaml:"resolved"`
	Source   resolve.Source         `json:"source" yaml:"source"`
	Pinned   bool                   `json:"pinned" yaml:"pinned"`
}

func runShow(cmd *cobra.Command, args []string) error {
	registry, err := catalog.Load(cmd.Flag("catalog").Value.String())
	if err != nil {
		return err
	}

	spec, err := registry.Action(args[0])
	if err != nil {
		return err
	}

	pinned := false
	if repo, err := actionprefs.Open(); err == nil {
		defer repo.Close()
		if prefs, err := repo.Get(spec.ID); err == nil && prefs != nil {
			pinned = prefs.Pinned
		}
	}

	switch output := outputFormat(cmd); output {
	case "json", "yaml":
		resolved, source := resolve.Inspect(spec)
		view := actionView{Spec: spec, Resolved: resolved, Source: source, Pinned: pinned}
		if output == "json" {
			return printJSON(cmd, view)
		}
		return printYAML(cmd, view)
	case "table":
		printActionDetail(cmd, spec, pinned)
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", output)
	}
}
