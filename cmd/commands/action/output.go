package action

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Advait-MD/Conductor/internal/config"
	"github.com/Advait-MD/Conductor/internal/domain"
	"github.com/Advait-MD/Conductor/internal/resolve"
)

// outputFormat resolves the output format: the -o flag wins, then the
// configured default, then table.
func outputFormat(cmd *cobra.Command) string {
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		if cfg, err := config.Load(); err == nil {
			output = cfg.OutputFormat
		}
	}
	if output == "" {
		output = "table"
	}
	return output
}

// printJSON encodes any value as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printYAML encodes any value as YAML to the command's stdout.
func printYAML(cmd *cobra.Command, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// printActionsTable renders actions in tabular form, marking pinned and
// dangerous ones.
func printActionsTable(cmd *cobra.Command, actions []domain.ActionSpec, pinned map[string]bool) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tKIND\tDANGEROUS\tPINNED\tCOMMAND")
	fmt.Fprintln(w, "--\t-----\t----\t---------\t------\t-------")

	for _, a := range actions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID,
			a.Label,
			a.Kind,
			yesDash(a.Dangerous),
			yesDash(pinned[a.ID]),
			strings.Join(a.Command, " "),
		)
	}

	w.Flush()
}

// printActionDetail prints a vertical key-value table of one action,
// including where its command resolves to right now.
func printActionDetail(cmd *cobra.Command, spec domain.ActionSpec, pinned bool) {
	resolved, source := resolve.Inspect(spec)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "  ID:\t%s\n", spec.ID)
	fmt.Fprintf(w, "  Label:\t%s\n", spec.Label)
	fmt.Fprintf(w, "  Kind:\t%s\n", spec.Kind)
	fmt.Fprintf(w, "  Dangerous:\t%s\n", yesDash(spec.Dangerous))
	fmt.Fprintf(w, "  Pinned:\t%s\n", yesDash(pinned))
	fmt.Fprintf(w, "  Command:\t%s\n", strings.Join(spec.Command, " "))
	if spec.Fallback != "" {
		fmt.Fprintf(w, "  Fallback:\t%s\n", spec.Fallback)
	}
	fmt.Fprintf(w, "  Resolves to:\t%s (%s)\n", resolved.String(), source)

	w.Flush()
}

func yesDash(v bool) string {
	if v {
		return "yes"
	}
	return "-"
}
