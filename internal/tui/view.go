package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Advait-MD/Conductor/internal/tui/components"
	"github.com/Advait-MD/Conductor/internal/tui/styles"
)

func (m appModel) View() string {
	if m.quitting || m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "launcher", m.catalogName())
	footer := components.Footer(m.width, m.footerBindings())
	status := m.statusLine()

	contentH := m.height - chromeRows
	if contentH < 2 {
		contentH = 2
	}

	var content string
	if m.confirmReq != nil {
		content = m.renderConfirm(contentH)
	} else {
		content = m.renderContent(contentH)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, status, footer)
}

// statusLine always occupies one row so the layout stays put.
func (m appModel) statusLine() string {
	message := m.status
	if message == "" && m.dryRun {
		message = "Dry-run mode: commands are shown, not executed."
	}
	bar := components.StatusBar(m.width, message, m.statusIsError)
	if bar == "" {
		return " "
	}
	return bar
}

func (m appModel) footerBindings() []components.KeyBinding {
	if m.confirmReq != nil {
		return []components.KeyBinding{
			{Key: "y", Desc: "run"},
			{Key: "n", Desc: "cancel"},
		}
	}

	dry := "dry-run: off"
	if m.dryRun {
		dry = "dry-run: on"
	}
	bindings := []components.KeyBinding{
		{Key: "tab", Desc: "switch"},
		{Key: "j/k", Desc: "navigate"},
		{Key: "enter", Desc: "run"},
		{Key: "d", Desc: dry},
	}
	if m.tab == tabActions {
		bindings = append(bindings, components.KeyBinding{Key: "p", Desc: "pin"})
	}
	bindings = append(bindings,
		components.KeyBinding{Key: "c", Desc: "clear"},
		components.KeyBinding{Key: "r", Desc: "reload"},
		components.KeyBinding{Key: "q", Desc: "quit"},
	)
	return bindings
}

// paneWidths splits the window between the catalog list and the output
// pane. The extra column belongs to the list pane's right border.
func (m appModel) paneWidths() (listW, outputW int) {
	listW = m.width * 2 / 5
	if listW < 24 {
		listW = 24
	}
	if listW > 44 {
		listW = 44
	}
	if listW > m.width-20 {
		listW = max(m.width/2, 10)
	}
	outputW = m.width - listW - 1
	if outputW < 1 {
		outputW = 1
	}
	return listW, outputW
}

func (m appModel) renderContent(height int) string {
	listW, outputW := m.paneWidths()
	left := m.renderList(listW, height)
	right := m.renderOutput(outputW, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// --- List pane ---

func (m appModel) renderList(width, height int) string {
	tabBar := m.renderTabBar()
	sep := styles.KeySepStyle.Render(strings.Repeat("─", max(width, 1)))

	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	rows := m.renderListRows(width, visible)
	for len(rows) < visible {
		rows = append(rows, "")
	}

	body := lipgloss.JoinVertical(lipgloss.Left, append([]string{tabBar, sep}, rows...)...)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(styles.DimGray).
		Render(body)
}

func (m appModel) renderTabBar() string {
	actions := fmt.Sprintf("Actions (%d)", len(m.actions))
	lineups := fmt.Sprintf("Lineups (%d)", len(m.lineups))

	active := styles.AccentText.Bold(true).Underline(true)
	inactive := styles.MutedText

	var left, right string
	if m.tab == tabActions {
		left, right = active.Render(actions), inactive.Render(lineups)
	} else {
		left, right = inactive.Render(actions), active.Render(lineups)
	}
	return " " + left + styles.KeySepStyle.Render("  │  ") + right
}

func (m appModel) renderListRows(width, visible int) []string {
	count := m.itemCount()
	cursor := m.cursors[m.tab]

	if count == 0 {
		empty := styles.MutedText.Render("Nothing here. Press ") +
			styles.KeyStyle.Render("r") +
			styles.MutedText.Render(" to reload.")
		return []string{" " + ansi.Truncate(empty, width-2, "…")}
	}

	// Scrolling: keep cursor visible.
	startIdx := 0
	if cursor >= visible {
		startIdx = cursor - visible + 1
	}
	endIdx := startIdx + visible
	if endIdx > count {
		endIdx = count
		startIdx = max(endIdx-visible, 0)
	}

	rows := make([]string, 0, visible)
	for i := startIdx; i < endIdx; i++ {
		rows = append(rows, m.renderItemRow(i, width, i == cursor))
	}
	return rows
}

func (m appModel) renderItemRow(i, width int, selected bool) string {
	if selected {
		var plain string
		if m.tab == tabActions {
			spec := m.actions[i]
			plain = actionRowText(spec, m.pinned[spec.ID])
		} else {
			plain = lineupRowText(m.lineups[i])
		}
		return styles.TableSelectedRow.Width(width).Render(ansi.Truncate(plain, width-2, "…"))
	}

	if m.tab == tabActions {
		spec := m.actions[i]
		row := "  "
		if m.pinned[spec.ID] {
			row = styles.AccentText.Render("★ ")
		}
		row += styles.Value.Render(spec.Label)
		if spec.Dangerous {
			row += styles.WarningText.Render(" ⚠")
		}
		return " " + ansi.Truncate(row, width-2, "…")
	}

	l := m.lineups[i]
	row := "  " + styles.Value.Render(l.Label) +
		styles.MutedText.Render(fmt.Sprintf(" · %d member(s)", len(l.Members)))
	return " " + ansi.Truncate(row, width-2, "…")
}

// --- Output pane ---

func (m appModel) renderOutput(width, height int) string {
	title := m.renderOutputTitle(width)

	var body string
	if len(m.lines) == 0 {
		hint := styles.MutedText.Render("No output yet.") + "\n\n" +
			styles.MutedText.Render("Press ") +
			styles.KeyStyle.Render("enter") +
			styles.MutedText.Render(" to run the selection.")
		body = lipgloss.Place(width, height-1, lipgloss.Center, lipgloss.Center, styles.Card.Render(hint))
	} else {
		body = m.output.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body)
}

func (m appModel) renderOutputTitle(width int) string {
	left := styles.TableHeader.Render("OUTPUT")
	if m.running > 0 {
		left += " " + m.spinner.View() + styles.WarningText.Render(fmt.Sprintf("%d running", m.running))
	} else if m.lastStatus != "" {
		left += "  " + styles.StatusIndicator(m.lastStatus)
	}

	right := components.DurationSparkline(m.durations, 16)

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right)-1, 1)
	return left + strings.Repeat(" ", gap) + right
}

func (m appModel) outputContent() string {
	_, outputW := m.paneWidths()
	var b strings.Builder
	for i, l := range m.lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderOutputLine(l, outputW))
	}
	return b.String()
}

func (m appModel) renderOutputLine(l outputLine, width int) string {
	if l.status != "" {
		return " " + ansi.Truncate(styles.StatusStyle(l.status).Render(l.text), width-2, "…")
	}
	row := styles.AccentText.Render("["+l.actionID+"] ") + l.text
	return " " + ansi.Truncate(row, width-2, "…")
}

// --- Confirmation prompt ---

func (m appModel) renderConfirm(height int) string {
	title := styles.WarningText.Render("Run " + m.confirmReq.label + "?")
	body := styles.Value.Render("This action is marked dangerous.")
	hint := styles.KeyStyle.Render("y") + styles.KeyDescStyle.Render(" run") +
		styles.KeySepStyle.Render("   ") +
		styles.KeyStyle.Render("n") + styles.KeyDescStyle.Render(" cancel")

	parts := []string{title, "", body, "", hint}
	if n := len(m.confirmQueue); n > 0 {
		parts = append(parts, "", styles.MutedText.Render(fmt.Sprintf("%d more confirmation(s) waiting", n)))
	}

	card := styles.CardActive.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, card)
}
