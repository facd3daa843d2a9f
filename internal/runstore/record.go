package runstore

import "time"

// RunRecord is one persisted action run. It is the durable form of
// domain.RunResult, with output reduced to a bounded tail.
type RunRecord struct {
	// ID is the auto-increment primary key (assigned on insert).
	ID int64 `json:"id" yaml:"id"`

	// ActionID is the catalog id of the action that ran.
	ActionID string `json:"action_id" yaml:"action_id"`

	// Label is the action's human-readable name at the time of the run.
	Label string `json:"label" yaml:"label"`

	// Kind records how the action was executed ("executable", "opener",
	// "raw").
	Kind string `json:"kind" yaml:"kind"`

	// Status is the terminal state: "running", "success", "failed",
	// "cancelled", or "dry-run".
	Status string `json:"status" yaml:"status"`

	// ExitCode is the child process's verbatim exit status. Nil when no
	// process ran (openers, cancellations, launch failures).
	ExitCode *int `json:"exit_code,omitempty" yaml:"exit_code,omitempty"`

	// Error is the human-readable failure description when Status is
	// "failed".
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// LineCount is the total number of output lines the run produced.
	LineCount int `json:"line_count" yaml:"line_count"`

	// OutputTail holds the last few output lines, newline-joined, for
	// quick inspection without re-running.
	OutputTail string `json:"output_tail,omitempty" yaml:"output_tail,omitempty"`

	// StartedAt is when dispatch began; FinishedAt is when the run
	// reached a terminal state (zero while running).
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
}

// Duration returns the recorded wall-clock run time, zero if the run
// never finished.
func (r *RunRecord) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
