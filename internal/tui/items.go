package tui

import (
	"fmt"
	"time"

	"github.com/Advait-MD/Conductor/internal/domain"
)

// maxOutputLines bounds the in-memory output buffer.
const maxOutputLines = 2000

// maxDurationSamples bounds the sparkline history.
const maxDurationSamples = 24

// orderActions returns specs with pinned actions first; both groups
// keep catalog order. The input slice is not modified.
func orderActions(specs []domain.ActionSpec, pinned map[string]bool) []domain.ActionSpec {
	out := make([]domain.ActionSpec, 0, len(specs))
	for _, s := range specs {
		if pinned[s.ID] {
			out = append(out, s)
		}
	}
	for _, s := range specs {
		if !pinned[s.ID] {
			out = append(out, s)
		}
	}
	return out
}

// indexOfAction locates an action id in an ordered slice, or -1.
func indexOfAction(specs []domain.ActionSpec, id string) int {
	for i, s := range specs {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// actionRowText builds the unstyled text for an action row. The list
// renderer styles it per segment, falling back to this plain form for
// the selected row.
func actionRowText(spec domain.ActionSpec, pinned bool) string {
	star := "  "
	if pinned {
		star = "★ "
	}
	text := star + spec.Label
	if spec.Dangerous {
		text += " ⚠"
	}
	return text
}

// lineupRowText builds the unstyled text for a lineup row.
func lineupRowText(l domain.Lineup) string {
	return fmt.Sprintf("  %s · %d member(s)", l.Label, len(l.Members))
}

// outputLine is one row of the output pane. Rows with a status are
// terminal-outcome markers rendered in that status's color; ordinary
// rows carry streamed process output.
type outputLine struct {
	actionID string
	text     string
	status   string
}

// appendOutput adds a row to the buffer, dropping the oldest rows
// beyond maxOutputLines.
func appendOutput(lines []outputLine, l outputLine) []outputLine {
	lines = append(lines, l)
	if len(lines) > maxOutputLines {
		lines = lines[len(lines)-maxOutputLines:]
	}
	return lines
}

// pushDuration records a run duration for the sparkline, keeping the
// newest maxDurationSamples values.
func pushDuration(durations []float64, d time.Duration) []float64 {
	durations = append(durations, d.Seconds())
	if len(durations) > maxDurationSamples {
		durations = durations[len(durations)-maxDurationSamples:]
	}
	return durations
}

// outcomeText renders the terminal-state row for a finished run.
func outcomeText(result domain.RunResult) string {
	switch result.Status {
	case domain.StatusSuccess:
		code := 0
		if result.ExitCode != nil {
			code = *result.ExitCode
		}
		return fmt.Sprintf("✓ %s (exit %d, %s)", result.Label, code, result.Duration().Round(time.Millisecond))
	case domain.StatusFailed:
		if result.Err != nil {
			return fmt.Sprintf("✗ %s: %v", result.Label, result.Err)
		}
		if result.ExitCode != nil {
			return fmt.Sprintf("✗ %s (exit %d, %s)", result.Label, *result.ExitCode, result.Duration().Round(time.Millisecond))
		}
		return fmt.Sprintf("✗ %s", result.Label)
	case domain.StatusCancelled:
		return fmt.Sprintf("− %s (cancelled)", result.Label)
	case domain.StatusDryRun:
		return fmt.Sprintf("• %s (dry run)", result.Label)
	}
	return result.Label
}
