package domain

import (
	"strings"
	"time"
)

// ResolvedCommand is the concrete, ready-to-launch program path and
// arguments derived from an action's command specification. For openers
// it holds exactly the target path.
type ResolvedCommand []string

// Program returns the executable token, or "" for an empty command.
func (rc ResolvedCommand) Program() string {
	if len(rc) == 0 {
		return ""
	}
	return rc[0]
}

// Args returns the arguments after the program token.
func (rc ResolvedCommand) Args() []string {
	if len(rc) < 2 {
		return nil
	}
	return rc[1:]
}

// String renders the command for display, space-joined.
func (rc ResolvedCommand) String() string {
	return strings.Join(rc, " ")
}

// Run status values. Stored verbatim in the run history.
const (
	StatusRunning   = "running"
	StatusSuccess   = "success"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
	StatusDryRun    = "dry-run"
)

// RunResult is the record of one action invocation. It is created when
// dispatch begins, mutated only by the goroutine running that action,
// and becomes immutable the moment a terminal state is reached, right
// before it is handed to the Sink.
type RunResult struct {
	// ActionID and Label identify the action that ran.
	ActionID string
	Label    string

	// Kind is copied from the spec so sinks can render openers and
	// processes differently.
	Kind Kind

	// Status is one of the Status constants above.
	Status string

	// Resolved is the command that was (or would have been) launched.
	Resolved ResolvedCommand

	// Lines holds the merged stdout/stderr output in arrival order.
	// Appended while running; fixed once terminal. Openers and
	// cancelled runs produce none.
	Lines []string

	// ExitCode is the child process's verbatim exit status. Nil while
	// running and for runs that never spawned a process.
	ExitCode *int

	// Err is the terminal failure, if any: ErrExecutableNotFound,
	// ErrPermissionDenied, or a wrapped ErrExecutionFailed /
	// ErrOpenerFailed. Nil for successful, cancelled, and dry runs.
	Err error

	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns the wall-clock run time, zero if not yet terminal.
func (r *RunResult) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Terminal reports whether the run has reached a final state.
func (r *RunResult) Terminal() bool {
	return r.Status != StatusRunning
}
