// Package execute launches resolved actions: child processes with
// merged, line-streamed output, and platform default-open calls.
//
// Run blocks the calling goroutine until the action terminates. Callers
// that must stay responsive (the TUI, the lineup dispatcher) run it on a
// goroutine of their own. Once a process has been started it runs to
// completion; there is no kill or cancel path, and a finished process is
// never retried.
package execute

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"

	"github.com/Advait-MD/Conductor/internal/domain"
)

const (
	// scanBufSize is the initial line buffer; maxLineBytes caps a single
	// output line so a binary-spewing child cannot balloon memory.
	scanBufSize  = 64 * 1024
	maxLineBytes = 1024 * 1024
)

// Executor is the process boundary. The zero value is ready to use.
type Executor struct{}

// Run launches the resolved command for spec and blocks until it
// terminates. Output lines (stdout and stderr merged, in arrival order)
// are pushed through emit as they are produced. The returned exit code
// is the child's verbatim status; it is nil when no process ran
// (openers and launch failures). Failures are classified against the
// domain sentinels.
func (e *Executor) Run(spec domain.ActionSpec, resolved domain.ResolvedCommand, emit domain.LineFunc) (*int, error) {
	if spec.Kind == domain.KindOpener {
		return nil, e.open(resolved.Program())
	}
	return e.stream(resolved, emit)
}

func (e *Executor) stream(resolved domain.ResolvedCommand, emit domain.LineFunc) (*int, error) {
	cmd := exec.Command(resolved.Program(), resolved.Args()...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExecutionFailed, err)
	}
	// StdoutPipe installed an *os.File as cmd.Stdout; aliasing it as
	// Stderr makes the child write both streams to the same pipe, so
	// interleaving matches the order the child produced.
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return nil, classifyLaunch(err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, scanBufSize), maxLineBytes)
	for scanner.Scan() {
		emit(scanner.Text())
	}
	scanErr := scanner.Err()

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			return &code, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrExecutionFailed, err)
	}
	if scanErr != nil {
		return nil, fmt.Errorf("%w: reading output: %v", domain.ErrExecutionFailed, scanErr)
	}

	code := 0
	return &code, nil
}

// classifyLaunch maps a Start error onto the domain sentinels so
// calling layers can discriminate with errors.Is.
func classifyLaunch(err error) error {
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %v", domain.ErrExecutableNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %v", domain.ErrPermissionDenied, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrExecutionFailed, err)
	}
}
