package doctor

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Advait-MD/Conductor/internal/catalog"
	"github.com/Advait-MD/Conductor/internal/database"
	"github.com/Advait-MD/Conductor/internal/domain"
	"github.com/Advait-MD/Conductor/internal/resolve"
	"github.com/Advait-MD/Conductor/internal/runstore"
)

// checkConcurrency bounds how many resolution probes run at once.
const checkConcurrency = 8

// NewCommand returns the "doctor" command: it checks that every
// catalog action can actually resolve on this machine.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that catalog actions resolve on this machine",
		Long: `Probe every action in the catalog and report where its command
resolves to right now. Executable actions whose program is found
neither on PATH nor via their fallback are flagged, and the command
exits non-zero so scripts can gate on it.

Examples:
  conductor doctor
  conductor doctor --catalog ./team-catalog.toml`,
		RunE:         runDoctor,
		SilenceUsage: true,
	}

	return cmd
}

// probe is the doctor's verdict for one action.
type probe struct {
	spec     domain.ActionSpec
	resolved domain.ResolvedCommand
	source   resolve.Source
	problem  string
}

func runDoctor(cmd *cobra.Command, args []string) error {
	registry, err := catalog.Load(cmd.Flag("catalog").Value.String())
	if err != nil {
		return err
	}

	actions := registry.Actions()

	// Probes stat files and walk PATH, so run them concurrently but
	// bounded. Each goroutine writes only its own slot.
	probes := make([]probe, len(actions))
	var g errgroup.Group
	g.SetLimit(checkConcurrency)
	for i, spec := range actions {
		g.Go(func() error {
			probes[i] = check(spec)
			return nil
		})
	}
	_ = g.Wait()

	out := cmd.OutOrStdout()
	success := color.New(color.FgGreen).SprintFunc()
	failure := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(out, "Catalog: %d action(s), %d lineup(s)\n", len(actions), len(registry.Lineups()))
	fmt.Fprintf(out, "User catalog: %s\n", describeUserCatalog())
	fmt.Fprintf(out, "History store: %s\n\n", describeStore())

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACTION\tKIND\tRESOLVES TO\tVIA\tSTATE")
	fmt.Fprintln(w, "------\t----\t-----------\t---\t-----")

	broken := 0
	for _, p := range probes {
		state := success("ok")
		if p.problem != "" {
			state = failure(p.problem)
			broken++
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.spec.ID, p.spec.Kind, p.resolved.String(), p.source, state)
	}
	w.Flush()

	if broken > 0 {
		return fmt.Errorf("%d action(s) cannot be resolved on this machine", broken)
	}

	fmt.Fprintln(out, "\nAll actions resolve.")
	return nil
}

// check probes a single action. Raw commands cannot be verified without
// running them, so they always pass.
func check(spec domain.ActionSpec) probe {
	resolved, source := resolve.Inspect(spec)
	p := probe{spec: spec, resolved: resolved, source: source}

	switch spec.Kind {
	case domain.KindExecutable:
		if source == resolve.SourceVerbatim {
			p.problem = "not found"
		}
		if source == resolve.SourceExplicit {
			if _, err := os.Stat(resolved.Program()); err != nil {
				p.problem = "not found"
			}
		}
	case domain.KindOpener:
		if _, err := os.Stat(resolved.Program()); err != nil {
			p.problem = "target missing"
		}
	}

	return p
}

func describeUserCatalog() string {
	path, err := catalog.DefaultUserPath()
	if err != nil {
		return "unavailable"
	}
	if _, err := os.Stat(path); err != nil {
		return path + " (not present)"
	}
	return path
}

func describeStore() string {
	path, err := database.DefaultPath()
	if err != nil {
		return "unavailable"
	}
	repo, err := runstore.OpenAt(path)
	if err != nil {
		return path + " (unusable)"
	}
	repo.Close()
	return path
}
