package lineup

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Advait-MD/Conductor/internal/catalog"
	"github.com/Advait-MD/Conductor/internal/domain"
)

// ShowCommand returns a cobra.Command that displays one lineup and the
// state of each member.
func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show details for a lineup",
		Long: `Display a lineup and its members. Members that no longer exist in
the catalog are flagged: they will be rejected at dispatch.

Examples:
  conductor lineup show dev-start
  conductor lineup show dev-start -o yaml`,
		Args:         cobra.ExactArgs(1),
		RunE:         runShow,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "", "Output format: table, json, or yaml")

	return cmd
}

// memberView is one lineup member with its catalog state.
type memberView struct {
	ID        string      `json:"id" yaml:"id"`
	Known     bool        `json:"known" yaml:"known"`
	Label     string      `json:"label,omitempty" yaml:"label,omitempty"`
	Kind      domain.Kind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Dangerous bool        `json:"dangerous,omitempty" yaml:"dangerous,omitempty"`
}

// lineupView is the scripting-friendly shape of a lineup.
type lineupView struct {
	Name    string       `json:"name" yaml:"name"`
	Label   string       `json:"label" yaml:"label"`
	Members []memberView `json:"members" yaml:"members"`
}

func runShow(cmd *cobra.Command, args []string) error {
	registry, err := catalog.Load(cmd.Flag("catalog").Value.String())
	if err != nil {
		return err
	}

	lineup, err := registry.Lineup(args[0])
	if err != nil {
		return err
	}

	view := lineupView{Name: lineup.Name, Label: lineup.Label}
	for _, id := range lineup.Members {
		member := memberView{ID: id}
		if spec, err := registry.Action(id); err == nil {
			member.Known = true
			member.Label = spec.Label
			member.Kind = spec.Kind
			member.Dangerous = spec.Dangerous
		}
		view.Members = append(view.Members, member)
	}

	switch output := outputFormat(cmd); output {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case "yaml":
		data, err := yaml.Marshal(view)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	case "table":
	default:
		return fmt.Errorf("unsupported output format %q", output)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Lineup: %s (%s)\n\n", view.Name, view.Label)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MEMBER\tLABEL\tKIND\tDANGEROUS\tSTATE")
	fmt.Fprintln(w, "------\t-----\t----\t---------\t-----")
	for _, m := range view.Members {
		if !m.Known {
			fmt.Fprintf(w, "%s\t-\t-\t-\t%s\n", m.ID, "missing")
			continue
		}
		dangerous := "-"
		if m.Dangerous {
			dangerous = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", m.ID, m.Label, m.Kind, dangerous, "ok")
	}
	w.Flush()

	return nil
}
