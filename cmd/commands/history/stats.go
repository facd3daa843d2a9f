package history

import (
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/Advait-MD/Conductor/internal/domain"
	"github.com/Advait-MD/Conductor/internal/runstore"
)

// statsSampleSize caps how many records the stats aggregate over.
const statsSampleSize = 1000

func StatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show run statistics",
		Long: `Summarize recent run history: totals per status, the most-run
actions, and a chart of runs per day.

Examples:
  conductor history stats
  conductor history stats --days 30`,
		RunE:         runStats,
		SilenceUsage: true,
	}

	cmd.Flags().Int("days", 14, "Number of days to chart")

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	days, _ := cmd.Flags().GetInt("days")
	if days <= 0 {
		return fmt.Errorf("days must be greater than 0")
	}

	repo, err := runstore.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	records, err := repo.ListRecent(statsSampleSize)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}

	statusCounts := map[string]int{}
	actionCounts := map[string]int{}
	perDay := make([]float64, days)

	now := time.Now().Local()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	for _, record := range records {
		statusCounts[record.Status]++
		actionCounts[record.ActionID]++

		started := record.StartedAt.Local()
		day := time.Date(started.Year(), started.Month(), started.Day(), 0, 0, 0, 0, time.Local)
		daysAgo := int(today.Sub(day).Hours() / 24)
		if daysAgo >= 0 && daysAgo < days {
			perDay[days-1-daysAgo]++
		}
	}

	out := cmd.OutOrStdout()

	chart := asciigraph.Plot(perDay,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(0),
		asciigraph.Caption(fmt.Sprintf("runs per day (last %d days)", days)),
	)
	fmt.Fprintln(out, chart)
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Total runs: %d (sampled from the most recent %d)\n", len(records), statsSampleSize)
	fmt.Fprintf(out, "  success: %d  failed: %d  cancelled: %d  dry-run: %d\n\n",
		statusCounts[domain.StatusSuccess],
		statusCounts[domain.StatusFailed],
		statusCounts[domain.StatusCancelled],
		statusCounts[domain.StatusDryRun],
	)

	fmt.Fprintln(out, "Most-run actions:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ACTION\tRUNS")
	for _, entry := range topActions(actionCounts, 5) {
		fmt.Fprintf(w, "  %s\t%d\n", entry.id, entry.count)
	}
	w.Flush()

	return nil
}

type actionCount struct {
	id    string
	count int
}

// topActions returns the n most-run actions, ties broken by id for
// stable output.
func topActions(counts map[string]int, n int) []actionCount {
	entries := make([]actionCount, 0, len(counts))
	for id, count := range counts {
		entries = append(entries, actionCount{id: id, count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].id < entries[j].id
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
