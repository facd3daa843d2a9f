package lineup

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Advait-MD/Conductor/internal/catalog"
	"github.com/Advait-MD/Conductor/internal/config"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List lineups",
		Long: `List every lineup in the catalog.

Examples:
  conductor lineup list
  conductor lineup list -o json`,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "", "Output format: table, json, or yaml")

	return cmd
}

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

func runList(cmd *cobra.Command, args []string) error {
	registry, err := catalog.Load(cmd.Flag("catalog").Value.String())
	if err != nil {
		return err
	}

	lineups := registry.Lineups()

	switch output := outputFormat(cmd); output {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(lineups)
	case "yaml":
		data, err := yaml.Marshal(lineups)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	case "table":
	default:
		return fmt.Errorf("unsupported output format %q", output)
	}

	if len(lineups) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No lineups found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLABEL\tMEMBERS")
	fmt.Fprintln(w, "----\t-----\t-------")
	for _, l := range lineups {
		fmt.Fprintf(w, "%s\t%s\t%s\n", l.Name, l.Label, strings.Join(l.Members, ", "))
	}
	w.Flush()

	return nil
}
