// Package styles provides the centralized color palette and style
// definitions for the conductor TUI. All visual constants live here so
// the rest of the TUI code can reference a single source of truth.
package styles

import "github.com/charmbracelet/lipgloss"

// --- Color palette ---

var (
	// Core text
	White   = lipgloss.Color("#E6E6E6")
	Gray    = lipgloss.Color("#8A8A8A")
	Muted   = lipgloss.Color("#5C5C5C")
	DimGray = lipgloss.Color("#3F3F3F")

	// Accent
	Blue     = lipgloss.Color("#64B5F6")
	DarkBlue = lipgloss.Color("#1C3A52")

	// Run status
	Green  = lipgloss.Color("#66D9A3")
	Yellow = lipgloss.Color("#F2D479")
	Red    = lipgloss.Color("#F28B82")
)
