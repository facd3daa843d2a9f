// Package report renders run progress and outcomes for the terminal.
//
// A Reporter doubles as the CLI's domain.Sink: output lines stream
// through it as they arrive and terminal results are summarized when
// each action finishes. All methods are safe for concurrent use, so a
// lineup's members can share one Reporter.
package report

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/Advait-MD/Conductor/internal/domain"
	"github.com/Advait-MD/Conductor/internal/services/run"
)

// Options adjusts what a Reporter prints.
type Options struct {
	// Prefixed prepends the action id to every output line. Used for
	// lineups, where lines from different actions interleave.
	Prefixed bool

	// Quiet suppresses streamed output lines; terminal results are
	// still printed.
	Quiet bool
}

// Reporter writes human-readable run output to a single writer.
type Reporter struct {
	mu   sync.Mutex
	w    io.Writer
	opts Options

	success   func(a ...interface{}) string
	failure   func(a ...interface{}) string
	warning   func(a ...interface{}) string
	highlight func(a ...interface{}) string
}

// New creates a Reporter writing to w.
func New(w io.Writer, opts Options) *Reporter {
	return &Reporter{
		w:         w,
		opts:      opts,
		success:   color.New(color.FgGreen).SprintFunc(),
		failure:   color.New(color.FgRed).SprintFunc(),
		warning:   color.New(color.FgYellow).SprintFunc(),
		highlight: color.New(color.FgCyan).SprintFunc(),
	}
}

// Starting announces that an action is about to run.
func (r *Reporter) Starting(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "Running %s...\n", r.highlight(label))
}

// Line implements domain.Sink.
func (r *Reporter) Line(actionID, line string) {
	if r.opts.Quiet {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.opts.Prefixed {
		fmt.Fprintf(r.w, "%s %s\n", r.highlight("["+actionID+"]"), line)
		return
	}
	fmt.Fprintln(r.w, line)
}

// Done implements domain.Sink. It prints one summary line per finished
// action, plus the failure detail when there is one.
func (r *Reporter) Done(result domain.RunResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := result.Label
	if r.opts.Prefixed {
		name = "[" + result.ActionID + "] " + name
	}

	switch result.Status {
	case domain.StatusSuccess:
		fmt.Fprintf(r.w, "%s %s%s\n", r.success("✓"), name, r.outcomeSuffix(result))
	case domain.StatusFailed:
		fmt.Fprintf(r.w, "%s %s%s\n", r.failure("✗"), name, r.outcomeSuffix(result))
		if result.Err != nil {
			fmt.Fprintf(r.w, "  %s\n", r.failure(result.Err.Error()))
		}
	case domain.StatusCancelled:
		fmt.Fprintf(r.w, "%s %s (cancelled)\n", r.warning("−"), name)
	case domain.StatusDryRun:
		fmt.Fprintf(r.w, "%s %s (dry run)\n", r.highlight("•"), name)
	default:
		fmt.Fprintf(r.w, "%s %s (%s)\n", r.warning("?"), name, result.Status)
	}
}

// outcomeSuffix renders " (exit N, 312ms)" or " (312ms)" when no exit
// code exists (openers, launch failures).
func (r *Reporter) outcomeSuffix(result domain.RunResult) string {
	dur := result.Duration().Round(time.Millisecond)
	if result.ExitCode != nil {
		return fmt.Sprintf(" (exit %d, %s)", *result.ExitCode, dur)
	}
	return fmt.Sprintf(" (%s)", dur)
}

// Dispatched summarizes a lineup dispatch: how many members launched
// and which were rejected.
func (r *Reporter) Dispatched(summary run.DispatchSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.w, "Dispatched %d action(s) from lineup %s.\n",
		summary.Dispatched, r.highlight(summary.Lineup))
	for _, rej := range summary.Rejected {
		fmt.Fprintf(r.w, "%s %s: %v\n", r.failure("✗"), rej.ActionID, rej.Err)
	}
}
