// Package confirm prompts the user before dangerous actions run.
package confirm

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/Advait-MD/Conductor/internal/domain"
)

// Prompt asks whether the named action should run. It declines when
// stdin is not a terminal, when the form is aborted, or when the user
// picks Cancel; a dangerous action only ever runs on an explicit yes.
func Prompt(label string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}

	confirmed := false
	field := huh.NewConfirm().
		Title(fmt.Sprintf("Run %s? This action is marked dangerous.", label)).
		Affirmative("Yes, run").
		Negative("Cancel").
		Value(&confirmed)

	accessible := os.Getenv("ACCESSIBLE") != ""
	if err := huh.NewForm(huh.NewGroup(field)).WithAccessible(accessible).Run(); err != nil {
		// Aborting the form declines, same as picking Cancel.
		if !errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintf(os.Stderr, "confirmation failed: %v\n", err)
		}
		return false
	}
	return confirmed
}

// Always approves everything. Used for --yes.
func Always(string) bool { return true }

// Answers is a fixed set of confirmation decisions keyed by action
// label. Lineup members run concurrently, so their prompts are
// collected up front instead of racing over the terminal; labels with
// no recorded answer are declined.
type Answers map[string]bool

// Confirm implements domain.ConfirmFunc over the recorded answers.
func (a Answers) Confirm(label string) bool { return a[label] }

// CollectAnswers prompts for each dangerous spec, in order, and records
// the decisions.
func CollectAnswers(specs []domain.ActionSpec) Answers {
	answers := make(Answers)
	for _, spec := range specs {
		if spec.Dangerous {
			answers[spec.Label] = Prompt(spec.Label)
		}
	}
	return answers
}
