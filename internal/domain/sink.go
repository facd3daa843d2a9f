package domain

// Sink receives run progress from the core. Lines arrive in-order per
// action; across concurrently dispatched actions there is no defined
// interleaving, so implementations must be safe for concurrent use.
type Sink interface {
	// Line is invoked once per merged output line while an action runs.
	Line(actionID, line string)

	// Done is invoked exactly once per dispatched action, with the
	// terminal result. The result is immutable from this point on.
	Done(result RunResult)
}

// ConfirmFunc is the synchronous confirmation callback supplied by the
// calling layer. It is invoked once per dangerous action, with the
// action's label, immediately before execution. Returning false declines
// the action.
type ConfirmFunc func(label string) bool

// LineFunc receives one output line. Used at the executor boundary.
type LineFunc func(line string)
