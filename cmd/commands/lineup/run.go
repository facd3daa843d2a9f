package lineup

import (
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/Advait-MD/Conductor/internal/catalog"
	"github.com/Advait-MD/Conductor/internal/confirm"
	"github.com/Advait-MD/Conductor/internal/domain"
	"github.com/Advait-MD/Conductor/internal/execute"
	"github.com/Advait-MD/Conductor/internal/report"
	"github.com/Advait-MD/Conductor/internal/runstore"
	runsvc "github.com/Advait-MD/Conductor/internal/services/run"
)

func RunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <name>",
		Short: "Run a lineup",
		Long: `Dispatch every member of a lineup concurrently.

Members run independently: a slow or failing member never blocks the
others, and unknown members are reported and skipped. Dangerous members
are confirmed one by one before anything is dispatched; use --yes to
skip the prompts.

By default the command waits for all members to finish so their output
can be shown. With --no-wait it returns right after dispatch and the
processes keep running on their own.

Examples:
  conductor lineup run dev-start
  conductor lineup run dev-start --no-wait
  conductor lineup run quick-tools --dry-run`,
		Args:         cobra.ExactArgs(1),
		RunE:         runRun,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("no-wait", false, "Return right after dispatch instead of waiting for members")
	cmd.Flags().Bool("dry-run", false, "Show what would run without executing")
	cmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompts")
	cmd.Flags().BoolP("quiet", "q", false, "Suppress streamed output, print only the results")

	return cmd
}

// waitSink forwards to an inner sink and counts finished members, so
// the command can wait without the dispatcher itself ever joining.
type waitSink struct {
	inner    domain.Sink
	finished chan domain.RunResult

	mu     sync.Mutex
	failed int
}

func (s *waitSink) Line(actionID, line string) { s.inner.Line(actionID, line) }

func (s *waitSink) Done(result domain.RunResult) {
	s.inner.Done(result)
	if result.Status == domain.StatusFailed {
		s.mu.Lock()
		s.failed++
		s.mu.Unlock()
	}
	s.finished <- result
}

func (s *waitSink) failures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

func runRun(cmd *cobra.Command, args []string) error {
	registry, err := catalog.Load(cmd.Flag("catalog").Value.String())
	if err != nil {
		return err
	}

	lineup, err := registry.Lineup(args[0])
	if err != nil {
		return err
	}

	noWait, _ := cmd.Flags().GetBool("no-wait")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	yes, _ := cmd.Flags().GetBool("yes")
	quiet, _ := cmd.Flags().GetBool("quiet")

	// Members run concurrently, so confirmation prompts are collected
	// up front rather than racing over one terminal.
	var confirmFn domain.ConfirmFunc = confirm.Always
	if !yes && !dryRun {
		var members []domain.ActionSpec
		for _, id := range lineup.Members {
			if spec, err := registry.Action(id); err == nil {
				members = append(members, spec)
			}
		}
		confirmFn = confirm.CollectAnswers(members).Confirm
	}

	reporter := report.New(cmd.OutOrStdout(), report.Options{Prefixed: true, Quiet: quiet})
	sink := &waitSink{inner: reporter, finished: make(chan domain.RunResult, len(lineup.Members))}

	// History is best-effort: a broken store must not stop the run.
	var repo runstore.Repository
	if r, err := runstore.Open(); err == nil {
		repo = r
	}

	svc := runsvc.NewService(runsvc.Options{
		Catalog: registry,
		Runner:  &execute.Executor{},
		Repo:    repo,
		Sink:    sink,
		Confirm: confirmFn,
		DryRun:  dryRun,
	})

	summary, err := svc.DispatchLineup(lineup.Name)
	if err != nil {
		svc.Close()
		return err
	}

	reporter.Dispatched(summary)

	if noWait {
		// The dispatched processes keep running on their own, but this
		// process exits now: remaining output is dropped and their
		// history records stay in the running state. The store is left
		// for process exit to close, as members may be mid-write.
		if len(summary.Rejected) > 0 {
			os.Exit(1)
		}
		return nil
	}

	for i := 0; i < summary.Dispatched; i++ {
		<-sink.finished
	}
	svc.Close()

	if len(summary.Rejected) > 0 || sink.failures() > 0 {
		os.Exit(1)
	}
	return nil
}
