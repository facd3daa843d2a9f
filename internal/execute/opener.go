package execute

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/Advait-MD/Conductor/internal/domain"
)

// openerCommand builds the platform default-open invocation. Package
// variable so tests can substitute a command.
var openerCommand = func(path string) []string {
	return openerFor(runtime.GOOS, path)
}

func openerFor(goos, path string) []string {
	switch goos {
	case "windows":
		// The empty string is the window title "start" would otherwise
		// steal from a quoted path.
		return []string{"cmd", "/c", "start", "", path}
	case "darwin":
		return []string{"open", path}
	default:
		return []string{"xdg-open", path}
	}
}

// open asks the operating system to open path with its default handler.
// Fire-and-forget: a launch failure is reported, but the handler is not
// waited on and produces no output or exit code.
func (e *Executor) open(path string) error {
	args := openerCommand(path)
	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrOpenerFailed, err)
	}
	// Reap in the background so the handler never lingers as a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}
