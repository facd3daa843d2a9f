package domain

import "errors"

// Sentinel errors for run-outcome classification. The catalog, executor,
// and run service wrap these so calling layers can handle categories
// uniformly with errors.Is, without caring which stage produced them.
//
//	return fmt.Errorf("action %q: %w", id, domain.ErrUnknownAction)
var (
	// ErrUnknownAction indicates the requested action id is not in the
	// catalog. This is a normal rejected-request outcome, not a fault.
	ErrUnknownAction = errors.New("unknown action")

	// ErrUnknownLineup indicates the requested lineup name is not in
	// the catalog.
	ErrUnknownLineup = errors.New("unknown lineup")

	// ErrCancelled indicates the user declined a dangerous action at
	// the confirmation gate. Cancellation is a declined request, not a
	// failure, and is reported distinctly from execution errors.
	ErrCancelled = errors.New("cancelled")

	// ErrExecutableNotFound indicates the resolved program could not
	// be launched because it does not exist.
	ErrExecutableNotFound = errors.New("executable not found")

	// ErrPermissionDenied indicates the resolved program exists but
	// the process lacks permission to execute it.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrExecutionFailed indicates any other launch or runtime failure
	// of a child process. Wrapping supplies the detail.
	ErrExecutionFailed = errors.New("execution failed")

	// ErrOpenerFailed indicates the platform's default-open mechanism
	// could not be invoked for an opener action.
	ErrOpenerFailed = errors.New("opener failed")
)
