// Package tui implements the interactive launcher: a full-window
// Bubbletea app with the action and lineup catalog on the left, live
// run output on the right, and the dangerous-action gate rendered as an
// inline prompt.
package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Advait-MD/Conductor/internal/actionprefs"
	"github.com/Advait-MD/Conductor/internal/catalog"
	"github.com/Advait-MD/Conductor/internal/domain"
	"github.com/Advait-MD/Conductor/internal/execute"
	"github.com/Advait-MD/Conductor/internal/runstore"
	runsvc "github.com/Advait-MD/Conductor/internal/services/run"
	"github.com/Advait-MD/Conductor/internal/tui/styles"
)

// --- Tabs ---

type tab int

const (
	tabActions tab = iota
	tabLineups
)

// --- Reload messages ---

type catalogReloadedMsg struct {
	registry *catalog.Registry
}

type catalogErrorMsg struct {
	err error
}

// --- App model ---

type appModel struct {
	registry    *catalog.Registry
	catalogPath string
	svc         *runsvc.Service
	repo        runstore.Repository
	sink        *programSink
	prefs       actionprefs.Repository

	tab     tab
	actions []domain.ActionSpec
	lineups []domain.Lineup
	pinned  map[string]bool
	cursors [2]int

	output    viewport.Model
	lines     []outputLine
	running   int
	durations []float64
	// lastStatus is the most recent terminal run status, shown in the
	// output pane title while nothing is running.
	lastStatus string

	dryRun  bool
	spinner spinner.Model

	// confirmReq is the prompt currently on screen; further requests
	// from concurrently dispatched members wait in confirmQueue.
	confirmReq   *confirmRequestMsg
	confirmQueue []confirmRequestMsg

	status        string
	statusIsError bool

	width  int
	height int

	quitPending bool
	quitting    bool
}

// chromeRows is the fixed vertical space taken by header, status line,
// and footer.
const chromeRows = 5

// Run starts the full-window launcher over the given catalog. It
// returns when the user quits; children of dispatched actions are left
// running.
func Run(registry *catalog.Registry, catalogPath string) error {
	sink := &programSink{}

	// History is best-effort: a broken store must not stop the launcher.
	var repo runstore.Repository
	if r, err := runstore.Open(); err == nil {
		repo = r
		defer r.Close()
	}

	var prefs actionprefs.Repository
	if p, err := actionprefs.Open(); err == nil {
		prefs = p
		defer p.Close()
	}

	svc := runsvc.NewService(runsvc.Options{
		Catalog: registry,
		Runner:  &execute.Executor{},
		Repo:    repo,
		Sink:    sink,
		Confirm: sink.Confirm,
	})

	m := newAppModel(registry, catalogPath, svc, repo, sink, prefs)

	p := tea.NewProgram(m, tea.WithAltScreen())
	sink.p = p

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run launcher: %w", err)
	}
	return nil
}

func newAppModel(registry *catalog.Registry, catalogPath string, svc *runsvc.Service, repo runstore.Repository, sink *programSink, prefs actionprefs.Repository) appModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	vp := viewport.New(0, 0)
	vp.KeyMap = outputViewportKeyMap()

	m := appModel{
		registry:    registry,
		catalogPath: catalogPath,
		svc:         svc,
		repo:        repo,
		sink:        sink,
		prefs:       prefs,
		pinned:      map[string]bool{},
		spinner:     s,
		output:      vp,
	}
	m.loadPinned()
	m.rebuildItems()
	return m
}

// loadPinned seeds the pin set from the preferences store. Without a
// store pins still work, scoped to the session.
func (m *appModel) loadPinned() {
	if m.prefs == nil {
		return
	}
	ids, err := m.prefs.ListPinned()
	if err != nil {
		return
	}
	for _, id := range ids {
		m.pinned[id] = true
	}
}

// rebuildItems refreshes the tab contents from the registry.
func (m *appModel) rebuildItems() {
	m.actions = orderActions(m.registry.Actions(), m.pinned)
	m.lineups = m.registry.Lineups()
	m.clampCursors()
}

func (m *appModel) clampCursors() {
	if m.cursors[tabActions] >= len(m.actions) {
		m.cursors[tabActions] = max(len(m.actions)-1, 0)
	}
	if m.cursors[tabLineups] >= len(m.lineups) {
		m.cursors[tabLineups] = max(len(m.lineups)-1, 0)
	}
}

// outputViewportKeyMap scrolls with page keys only; j/k and the arrows
// belong to the list pane.
func outputViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "½ page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "½ page down"),
		),
		Up: key.NewBinding(
			key.WithDisabled(),
		),
		Down: key.NewBinding(
			key.WithDisabled(),
		),
		Left: key.NewBinding(
			key.WithDisabled(),
		),
		Right: key.NewBinding(
			key.WithDisabled(),
		),
	}
}

func (m appModel) Init() tea.Cmd {
	return nil
}

// --- Update ---

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutOutput()
		m.refreshOutput(false)
		return m, nil

	case tea.KeyMsg:
		if m.confirmReq != nil {
			return m.handleConfirmKey(msg)
		}
		return m.handleKey(msg)

	case runLineMsg:
		m.lines = appendOutput(m.lines, outputLine{actionID: msg.actionID, text: msg.line})
		m.refreshOutput(true)
		return m, nil

	case runDoneMsg:
		if m.running > 0 {
			m.running--
		}
		m.lastStatus = msg.result.Status
		m.lines = appendOutput(m.lines, outputLine{
			actionID: msg.result.ActionID,
			text:     outcomeText(msg.result),
			status:   msg.result.Status,
		})
		switch msg.result.Status {
		case domain.StatusSuccess, domain.StatusFailed:
			m.durations = pushDuration(m.durations, msg.result.Duration())
		}
		if msg.result.Status == domain.StatusFailed {
			m.status = outcomeText(msg.result)
			m.statusIsError = true
		}
		m.refreshOutput(true)
		return m, nil

	case runRejectedMsg:
		if m.running > 0 {
			m.running--
		}
		m.status = fmt.Sprintf("%s: %v", msg.id, msg.err)
		m.statusIsError = true
		return m, nil

	case confirmRequestMsg:
		if m.confirmReq == nil {
			m.confirmReq = &msg
		} else {
			m.confirmQueue = append(m.confirmQueue, msg)
		}
		return m, nil

	case catalogReloadedMsg:
		m.registry = msg.registry
		m.svc = runsvc.NewService(runsvc.Options{
			Catalog: msg.registry,
			Runner:  &execute.Executor{},
			Repo:    m.repo,
			Sink:    m.sink,
			Confirm: m.sink.Confirm,
			DryRun:  m.dryRun,
		})
		m.rebuildItems()
		m.status = fmt.Sprintf("Catalog reloaded: %d action(s), %d lineup(s)", len(m.actions), len(m.lineups))
		m.statusIsError = false
		return m, nil

	case catalogErrorMsg:
		m.status = "Reload failed: " + msg.err.Error()
		m.statusIsError = true
		return m, nil

	case spinner.TickMsg:
		if m.running > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

// --- Key handling ---

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "q" {
		m.quitPending = false
	}

	switch msg.String() {
	case "ctrl+c":
		return m.quit()

	case "q":
		if m.running > 0 && !m.quitPending {
			m.quitPending = true
			m.status = fmt.Sprintf("%d action(s) still running; their processes keep going after exit. Press q again to quit.", m.running)
			m.statusIsError = false
			return m, nil
		}
		return m.quit()

	case "tab", "left", "right":
		if m.tab == tabActions {
			m.tab = tabLineups
		} else {
			m.tab = tabActions
		}
		return m, nil

	case "up", "k":
		if m.cursors[m.tab] > 0 {
			m.cursors[m.tab]--
		}
		return m, nil

	case "down", "j":
		if m.cursors[m.tab] < m.itemCount()-1 {
			m.cursors[m.tab]++
		}
		return m, nil

	case "g":
		m.cursors[m.tab] = 0
		return m, nil

	case "G":
		if n := m.itemCount(); n > 0 {
			m.cursors[m.tab] = n - 1
		}
		return m, nil

	case "enter":
		return m.runSelection()

	case "d":
		m.dryRun = !m.dryRun
		m.svc.SetDryRun(m.dryRun)
		if m.dryRun {
			m.status = "Dry-run on: commands are shown, not executed."
		} else {
			m.status = "Dry-run off."
		}
		m.statusIsError = false
		return m, nil

	case "p":
		return m.togglePin()

	case "c":
		m.lines = nil
		m.refreshOutput(false)
		m.status = "Output cleared."
		m.statusIsError = false
		return m, nil

	case "r":
		m.status = "Reloading catalog..."
		m.statusIsError = false
		return m, reloadCatalog(m.catalogPath)
	}

	// Remaining keys scroll the output pane.
	var cmd tea.Cmd
	m.output, cmd = m.output.Update(msg)
	return m, cmd
}

// runSelection dispatches the item under the cursor. Results come back
// through the sink as messages; nothing blocks the UI loop.
func (m appModel) runSelection() (tea.Model, tea.Cmd) {
	if m.tab == tabActions {
		if len(m.actions) == 0 {
			return m, nil
		}
		spec := m.actions[m.cursors[tabActions]]
		m.running++
		m.status = "Running " + spec.Label + "..."
		m.statusIsError = false
		return m, tea.Batch(m.spinner.Tick, runActionCmd(m.svc, spec.ID))
	}

	if len(m.lineups) == 0 {
		return m, nil
	}
	l := m.lineups[m.cursors[tabLineups]]
	summary, err := m.svc.DispatchLineup(l.Name)
	if err != nil {
		m.status = err.Error()
		m.statusIsError = true
		return m, nil
	}

	m.running += summary.Dispatched
	for _, rej := range summary.Rejected {
		m.lines = appendOutput(m.lines, outputLine{
			actionID: rej.ActionID,
			text:     fmt.Sprintf("✗ %s: %v", rej.ActionID, rej.Err),
			status:   domain.StatusFailed,
		})
	}
	if len(summary.Rejected) > 0 {
		m.status = fmt.Sprintf("Dispatched %d action(s) from %s (%d rejected)", summary.Dispatched, l.Label, len(summary.Rejected))
		m.statusIsError = true
	} else {
		m.status = fmt.Sprintf("Dispatched %d action(s) from %s", summary.Dispatched, l.Label)
		m.statusIsError = false
	}
	m.refreshOutput(true)
	return m, m.spinner.Tick
}

// togglePin flips the pin on the selected action and reorders the list,
// keeping the cursor on the same action.
func (m appModel) togglePin() (tea.Model, tea.Cmd) {
	if m.tab != tabActions || len(m.actions) == 0 {
		return m, nil
	}

	spec := m.actions[m.cursors[tabActions]]
	nowPinned := !m.pinned[spec.ID]
	if nowPinned {
		m.pinned[spec.ID] = true
	} else {
		delete(m.pinned, spec.ID)
	}

	persisted := false
	if m.prefs != nil {
		if err := m.prefs.Save(&actionprefs.ActionPrefs{ActionID: spec.ID, Pinned: nowPinned}); err == nil {
			persisted = true
		}
	}

	m.rebuildItems()
	if idx := indexOfAction(m.actions, spec.ID); idx >= 0 {
		m.cursors[tabActions] = idx
	}

	verb := "Pinned"
	if !nowPinned {
		verb = "Unpinned"
	}
	m.status = fmt.Sprintf("%s %s", verb, spec.Label)
	if !persisted {
		m.status += " (this session only)"
	}
	m.statusIsError = false
	return m, nil
}

func (m appModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.answerConfirm(true)
		return m, nil
	case "n", "N", "esc", "q":
		m.answerConfirm(false)
		return m, nil
	case "ctrl+c":
		m.answerConfirm(false)
		return m.quit()
	}
	return m, nil
}

// answerConfirm resolves the on-screen prompt and surfaces the next
// queued one, if any.
func (m *appModel) answerConfirm(ok bool) {
	if m.confirmReq == nil {
		return
	}
	m.confirmReq.reply <- ok
	if len(m.confirmQueue) > 0 {
		next := m.confirmQueue[0]
		m.confirmQueue = m.confirmQueue[1:]
		m.confirmReq = &next
	} else {
		m.confirmReq = nil
	}
}

// quit declines any pending confirmations so their run goroutines are
// not left parked, then leaves the program.
func (m appModel) quit() (tea.Model, tea.Cmd) {
	for m.confirmReq != nil {
		m.answerConfirm(false)
	}
	m.quitting = true
	return m, tea.Quit
}

func (m appModel) itemCount() int {
	if m.tab == tabActions {
		return len(m.actions)
	}
	return len(m.lineups)
}

// --- Commands ---

func runActionCmd(svc *runsvc.Service, id string) tea.Cmd {
	return func() tea.Msg {
		if _, err := svc.RunAction(id); err != nil {
			return runRejectedMsg{id: id, err: err}
		}
		// The terminal result already arrived through the sink.
		return nil
	}
}

func reloadCatalog(path string) tea.Cmd {
	return func() tea.Msg {
		registry, err := catalog.Load(path)
		if err != nil {
			return catalogErrorMsg{err: err}
		}
		return catalogReloadedMsg{registry: registry}
	}
}

// --- Viewport plumbing ---

// layoutOutput sizes the viewport for the current window.
func (m *appModel) layoutOutput() {
	_, outputW := m.paneWidths()
	contentH := m.height - chromeRows
	if contentH < 2 {
		contentH = 2
	}
	m.output.Width = outputW
	// One row of the pane is the title.
	m.output.Height = contentH - 1
}

// refreshOutput rebuilds the viewport content. When follow is set and
// the view was already at the bottom, it stays pinned there.
func (m *appModel) refreshOutput(follow bool) {
	atBottom := m.output.AtBottom()
	m.output.SetContent(m.outputContent())
	if follow && atBottom {
		m.output.GotoBottom()
	}
}

func (m appModel) catalogName() string {
	if m.catalogPath == "" {
		return fmt.Sprintf("%d actions · %d lineups", len(m.actions), len(m.lineups))
	}
	return filepath.Base(m.catalogPath)
}
