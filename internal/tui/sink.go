package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Advait-MD/Conductor/internal/domain"
)

// --- Messages from run goroutines ---

type runLineMsg struct {
	actionID string
	line     string
}

type runDoneMsg struct {
	result domain.RunResult
}

// runRejectedMsg reports an action that never started (unknown id).
type runRejectedMsg struct {
	id  string
	err error
}

// confirmRequestMsg asks the UI to resolve a dangerous-action gate. The
// requesting run goroutine blocks on reply until the user answers.
type confirmRequestMsg struct {
	label string
	reply chan bool
}

// programSink bridges the run service into the Bubbletea loop.
// tea.Program.Send is safe from any goroutine, so run goroutines
// deliver lines, results, and confirmation requests directly.
type programSink struct {
	p *tea.Program
}

func (s *programSink) Line(actionID, line string) {
	s.p.Send(runLineMsg{actionID: actionID, line: line})
}

func (s *programSink) Done(result domain.RunResult) {
	s.p.Send(runDoneMsg{result: result})
}

// Confirm parks the calling run goroutine until the user answers the
// on-screen prompt. Quitting the app answers no on its behalf.
func (s *programSink) Confirm(label string) bool {
	reply := make(chan bool, 1)
	s.p.Send(confirmRequestMsg{label: label, reply: reply})
	return <-reply
}
