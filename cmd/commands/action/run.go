package action

import (
	"context"
	"os"

	"github.com/charmbracelet/huh/spinner"
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
		Use:   "run <id>",
		Short: "Run a single action",
		Long: `Run a single action from the catalog, streaming its output.

Dangerous actions ask for confirmation first; use --yes to skip the
prompt. When the action's process exits non-zero, conductor exits with
the same code.

Examples:
  conductor action run open_notepad
  conductor action run wifi_off --yes
  conductor action run open_vscode --dry-run`,
		Args:         cobra.ExactArgs(1),
		RunE:         runRun,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("dry-run", false, "Show what would run without executing")
	cmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompts")
	cmd.Flags().BoolP("quiet", "q", false, "Suppress streamed output, print only the result")

	return cmd
}

// noopSink discards streamed lines. Used in quiet mode, where the final
// result is printed only after the spinner releases the terminal.
type noopSink struct{}

func (noopSink) Line(actionID, line string)   {}
func (noopSink) Done(result domain.RunResult) {}

func runRun(cmd *cobra.Command, args []string) error {
	registry, err := catalog.Load(cmd.Flag("catalog").Value.String())
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	yes, _ := cmd.Flags().GetBool("yes")
	quiet, _ := cmd.Flags().GetBool("quiet")

	reporter := report.New(cmd.OutOrStdout(), report.Options{Quiet: quiet})

	confirmFn := domain.ConfirmFunc(confirm.Prompt)
	if yes {
		confirmFn = confirm.Always
	}

	// History is best-effort: a broken store must not stop the run.
	var repo runstore.Repository
	if r, err := runstore.Open(); err == nil {
		repo = r
	}

	spec, specErr := registry.Action(args[0])
	if quiet && !dryRun && specErr == nil {
		return runQuiet(cmd, registry, repo, spec, confirmFn, reporter, yes)
	}

	svc := runsvc.NewService(runsvc.Options{
		Catalog: registry,
		Runner:  &execute.Executor{},
		Repo:    repo,
		Sink:    reporter,
		Confirm: confirmFn,
		DryRun:  dryRun,
	})

	if !quiet && !dryRun && specErr == nil {
		reporter.Starting(spec.Label)
	}

	result, err := svc.RunAction(args[0])
	if err != nil {
		svc.Close()
		return err
	}
	svc.Close()
	exitOnFailure(result)

	return nil
}

// runQuiet runs the action behind a spinner instead of streaming. The
// confirmation prompt, if any, happens before the spinner takes over
// the terminal, and the result line is printed after it lets go.
func runQuiet(cmd *cobra.Command, registry *catalog.Registry, repo runstore.Repository, spec domain.ActionSpec, confirmFn domain.ConfirmFunc, reporter *report.Reporter, yes bool) error {
	if !yes {
		confirmFn = confirm.CollectAnswers([]domain.ActionSpec{spec}).Confirm
	}

	svc := runsvc.NewService(runsvc.Options{
		Catalog: registry,
		Runner:  &execute.Executor{},
		Repo:    repo,
		Sink:    noopSink{},
		Confirm: confirmFn,
	})

	var result domain.RunResult
	runErr := spinner.New().
		Title("Running " + spec.Label + "...").
		Accessible(os.Getenv("ACCESSIBLE") != "").
		Output(cmd.ErrOrStderr()).
		ActionWithErr(func(context.Context) error {
			var err error
			result, err = svc.RunAction(spec.ID)
			return err
		}).
		Run()
	svc.Close()
	if runErr != nil {
		return runErr
	}

	reporter.Done(result)
	exitOnFailure(result)

	return nil
}

// exitOnFailure propagates failure through the process exit code,
// verbatim where the child produced one. os.Exit skips deferred calls,
// hence callers close their resources first.
func exitOnFailure(result domain.RunResult) {
	if result.Status != domain.StatusFailed {
		return
	}
	code := 1
	if result.ExitCode != nil {
		code = *result.ExitCode
	}
	os.Exit(code)
}
