// Package resolve turns an action's abstract command specification into
// a concrete, ready-to-launch invocation.
//
// Resolution is a total function: it never fails, it returns some
// best-effort command and defers hard failure detection to process
// launch. The policy order for executables is search path, then
// fallback path, then the command verbatim: prefer the environment's
// current installation over a hardcoded path, but never block a
// known-good fallback when the path lookup misses.
package resolve

import (
	"os"
	"os/exec"
	"strings"

	"github.com/Advait-MD/Conductor/internal/domain"
)

// Source identifies which policy branch produced a resolution.
type Source string

const (
	// SourcePath means the program was found on the search path.
	SourcePath Source = "path"

	// SourceFallback means the spec's fallback path exists and was used.
	SourceFallback Source = "fallback"

	// SourceExplicit means the command carried its own path separator
	// and was taken as written.
	SourceExplicit Source = "explicit"

	// SourceVerbatim means no resolution applied (raw commands, or an
	// executable that was found neither on the path nor via fallback
	// and will be launched as written).
	SourceVerbatim Source = "verbatim"

	// SourceOpener means the action is a default-open target, not a
	// program invocation.
	SourceOpener Source = "opener"
)

// Action resolves spec into a launchable command. Deterministic for a
// fixed search path and filesystem state, and idempotent.
func Action(spec domain.ActionSpec) domain.ResolvedCommand {
	cmd, _ := Inspect(spec)
	return cmd
}

// Inspect resolves spec and additionally reports which policy branch
// applied. Used by availability reporting; Action is the common entry.
func Inspect(spec domain.ActionSpec) (domain.ResolvedCommand, Source) {
	switch spec.Kind {
	case domain.KindOpener:
		return domain.ResolvedCommand{spec.Command[0]}, SourceOpener
	case domain.KindRaw:
		return clone(spec.Command), SourceVerbatim
	}

	first := spec.Command[0]
	if containsPathSep(first) {
		return clone(spec.Command), SourceExplicit
	}
	if found, err := exec.LookPath(first); err == nil {
		return rebase(found, spec.Command), SourcePath
	}
	if spec.Fallback != "" {
		if _, err := os.Stat(spec.Fallback); err == nil {
			return rebase(spec.Fallback, spec.Command), SourceFallback
		}
	}
	return clone(spec.Command), SourceVerbatim
}

func containsPathSep(s string) bool {
	return strings.ContainsRune(s, '/') || strings.ContainsRune(s, os.PathSeparator)
}

func clone(command []string) domain.ResolvedCommand {
	return append(domain.ResolvedCommand(nil), command...)
}

// rebase swaps the program token for the resolved path, keeping args.
func rebase(program string, command []string) domain.ResolvedCommand {
	out := make(domain.ResolvedCommand, len(command))
	out[0] = program
	copy(out[1:], command[1:])
	return out
}
