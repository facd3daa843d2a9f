package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Advait-MD/Conductor/internal/tui/styles"
)

// StatusBar renders a status message line between the content and the
// footer. Error messages get a marker and the error style. The message
// is clipped to one row; run errors can carry long child-process detail
// and a wrapped bar would push the footer off screen.
func StatusBar(width int, message string, isError bool) string {
	if message == "" {
		return ""
	}

	style := styles.MutedText
	if isError {
		style = styles.ErrorText
		message = "✗ " + message
	}

	inner := width - 4
	if inner < 1 {
		inner = 1
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		Render(style.Render(ansi.Truncate(message, inner, "…")))
}
