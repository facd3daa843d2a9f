package history

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Advait-MD/Conductor/internal/runstore"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs",
		Long: `List recent action runs stored locally.

Examples:
  conductor history list
  conductor history list --limit 50
  conductor history list --action open_vscode
  conductor history list -o json`,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 25, "Number of entries to display")
	cmd.Flags().String("action", "", "Filter by action id")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}

	filter, _ := cmd.Flags().GetString("action")
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = "table"
	}

	repo, err := runstore.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	var records []runstore.RunRecord
	if filter != "" {
		records, err = repo.ListByAction(filter, limit)
	} else {
		records, err = repo.ListRecent(limit)
	}
	if err != nil {
		return err
	}

	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	}
	if output != "table" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tACTION\tSTATUS\tEXIT\tDURATION\tLINES")
	fmt.Fprintln(w, "----\t------\t------\t----\t--------\t-----")
	for _, record := range records {
		timeStr := record.StartedAt.Local().Format("2006-01-02 15:04:05")

		exit := "-"
		if record.ExitCode != nil {
			exit = fmt.Sprintf("%d", *record.ExitCode)
		}

		duration := "-"
		if !record.FinishedAt.IsZero() {
			duration = formatDuration(record.Duration())
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			timeStr,
			record.ActionID,
			record.Status,
			exit,
			duration,
			record.LineCount,
		)
	}
	w.Flush()
	return nil
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}
