package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Advait-MD/Conductor/internal/tui/styles"
)

// KeyBinding is one key/description pair shown in the footer.
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer renders the key help bar at the bottom of the screen. Bindings
// that do not fit the window are dropped from the right so the bar
// stays on one row.
func Footer(width int, bindings []KeyBinding) string {
	if width < 10 || len(bindings) == 0 {
		return ""
	}

	inner := width - 4
	sep := styles.KeySepStyle.Render("  ")

	var content string
	for i, b := range bindings {
		part := styles.FormatKeyBinding(b.Key, b.Desc)
		candidate := content
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > inner {
			break
		}
		content = candidate
	}
	if content == "" {
		content = ansi.Truncate(styles.FormatKeyBinding(bindings[0].Key, bindings[0].Desc), inner, "…")
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderTop(true).
		BorderForeground(styles.DimGray).
		Render(content)
}
