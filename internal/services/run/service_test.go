package run

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Advait-MD/Conductor/internal/domain"
	"github.com/Advait-MD/Conductor/internal/runstore"
)

// mapCatalog implements Catalog over literal maps.
type mapCatalog struct {
	actions map[string]domain.ActionSpec
	lineups map[string]domain.Lineup
}

func (c *mapCatalog) Action(id string) (domain.ActionSpec, error) {
	spec, ok := c.actions[id]
	if !ok {
		return domain.ActionSpec{}, fmt.Errorf("catalog: action %q: %w", id, domain.ErrUnknownAction)
	}
	return spec, nil
}

func (c *mapCatalog) Lineup(name string) (domain.Lineup, error) {
	lineup, ok := c.lineups[name]
	if !ok {
		return domain.Lineup{}, fmt.Errorf("catalog: lineup %q: %w", name, domain.ErrUnknownLineup)
	}
	return lineup, nil
}

// mockRunner implements Runner with configurable output and outcome.
// It records which actions reached the process boundary.
type mockRunner struct {
	mu    sync.Mutex
	calls []string

	lines []string // emitted on every run
	code  *int
	err   error

	block chan struct{} // if set, Run waits on it before returning
}

func (m *mockRunner) Run(spec domain.ActionSpec, _ domain.ResolvedCommand, emit domain.LineFunc) (*int, error) {
	m.mu.Lock()
	m.calls = append(m.calls, spec.ID)
	m.mu.Unlock()
	for _, line := range m.lines {
		emit(line)
	}
	if m.block != nil {
		<-m.block
	}
	return m.code, m.err
}

func (m *mockRunner) ran() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// recordingSink implements domain.Sink and captures everything it is
// handed. Safe for concurrent use, like any real sink must be.
type recordingSink struct {
	mu    sync.Mutex
	lines map[string][]string
	done  []domain.RunResult

	doneCh chan domain.RunResult // if set, Done also publishes here
}

func newRecordingSink() *recordingSink {
	return &recordingSink{lines: make(map[string][]string)}
}

func (s *recordingSink) Line(actionID, line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[actionID] = append(s.lines[actionID], line)
}

func (s *recordingSink) Done(result domain.RunResult) {
	s.mu.Lock()
	s.done = append(s.done, result)
	s.mu.Unlock()
	if s.doneCh != nil {
		s.doneCh <- result
	}
}

func (s *recordingSink) doneResults() []domain.RunResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.RunResult(nil), s.done...)
}

// mockRepo implements runstore.Repository in memory.
type mockRepo struct {
	mu      sync.Mutex
	nextID  int64
	saved   []runstore.RunRecord // snapshot of every Save call, in order
	saveErr error
	pruned  []time.Duration
}

func (m *mockRepo) Save(record *runstore.RunRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if record.ID == 0 {
		m.nextID++
		record.ID = m.nextID
	}
	m.saved = append(m.saved, *record)
	return nil
}

func (m *mockRepo) Get(int64) (*runstore.RunRecord, error) { return nil, nil }
func (m *mockRepo) ListRecent(int) ([]runstore.RunRecord, error) {
	return nil, nil
}
func (m *mockRepo) ListByAction(string, int) ([]runstore.RunRecord, error) {
	return nil, nil
}
func (m *mockRepo) DeleteOlderThan(age time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruned = append(m.pruned, age)
	return 0, nil
}
func (m *mockRepo) Close() error { return nil }

func (m *mockRepo) saves() []runstore.RunRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]runstore.RunRecord(nil), m.saved...)
}

// confirmRecorder is a domain.ConfirmFunc that records the labels it
// was asked about.
type confirmRecorder struct {
	mu     sync.Mutex
	asked  []string
	answer bool
}

func (c *confirmRecorder) confirm(label string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.asked = append(c.asked, label)
	return c.answer
}

func (c *confirmRecorder) askedLabels() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.asked...)
}

func testCatalog() *mapCatalog {
	return &mapCatalog{
		actions: map[string]domain.ActionSpec{
			"greet": {
				ID:      "greet",
				Label:   "Say hello",
				Kind:    domain.KindExecutable,
				Command: []string{"hello", "--loud"},
			},
			"wipe": {
				ID:        "wipe",
				Label:     "Wipe scratch space",
				Kind:      domain.KindRaw,
				Command:   []string{"wipe-scratch"},
				Dangerous: true,
			},
			"docs": {
				ID:      "docs",
				Label:   "Open docs",
				Kind:    domain.KindOpener,
				Command: []string{"/srv/docs"},
			},
		},
		lineups: map[string]domain.Lineup{
			"morning": {
				Name:    "morning",
				Label:   "Morning warmup",
				Members: []string{"greet", "docs"},
			},
			"patchy": {
				Name:    "patchy",
				Label:   "Has a missing member",
				Members: []string{"greet", "missing", "docs"},
			},
		},
	}
}

func intPtr(v int) *int { return &v }

func TestRunActionUnknownID(t *testing.T) {
	runner := &mockRunner{}
	sink := newRecordingSink()
	gate := &confirmRecorder{answer: true}
	svc := NewService(Options{
		Catalog: testCatalog(),
		Runner:  runner,
		Sink:    sink,
		Confirm: gate.confirm,
	})

	_, err := svc.RunAction("missing")
	if !errors.Is(err, domain.ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
	if got := runner.ran(); len(got) != 0 {
		t.Errorf("runner invoked for unknown id: %v", got)
	}
	if got := gate.askedLabels(); len(got) != 0 {
		t.Errorf("confirmer consulted for unknown id: %v", got)
	}
	if got := sink.doneResults(); len(got) != 0 {
		t.Errorf("sink notified for unknown id: %+v", got)
	}
}

func TestRunActionSuccess(t *testing.T) {
	runner := &mockRunner{lines: []string{"first", "second"}, code: intPtr(0)}
	sink := newRecordingSink()
	repo := &mockRepo{}
	svc := NewService(Options{
		Catalog: testCatalog(),
		Runner:  runner,
		Repo:    repo,
		Sink:    sink,
	})

	result, err := svc.RunAction("greet")
	if err != nil {
		t.Fatalf("RunAction failed: %v", err)
	}

	if result.Status != domain.StatusSuccess {
		t.Errorf("expected status %q, got %q", domain.StatusSuccess, result.Status)
	}
	if result.ExitCode == nil || *result.ExitCode != 0 {
		t.Errorf("expected exit code 0, got %v", result.ExitCode)
	}
	if diff := cmp.Diff([]string{"first", "second"}, result.Lines); diff != "" {
		t.Errorf("captured lines mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"first", "second"}, sink.lines["greet"]); diff != "" {
		t.Errorf("sink lines mismatch (-want +got):\n%s", diff)
	}
	if done := sink.doneResults(); len(done) != 1 || done[0].ActionID != "greet" {
		t.Errorf("expected exactly one Done for greet, got %+v", done)
	}

	saves := repo.saves()
	if len(saves) != 2 {
		t.Fatalf("expected insert + terminal update, got %d saves", len(saves))
	}
	if saves[0].Status != domain.StatusRunning {
		t.Errorf("first save should be running, got %q", saves[0].Status)
	}
	last := saves[1]
	if last.Status != domain.StatusSuccess || last.LineCount != 2 {
		t.Errorf("terminal save wrong: status=%q lines=%d", last.Status, last.LineCount)
	}
	if !strings.Contains(last.OutputTail, "second") {
		t.Errorf("output tail missing content: %q", last.OutputTail)
	}
	if len(repo.pruned) == 0 {
		t.Error("expected an opportunistic retention prune")
	}
}

func TestRunActionNonZeroExitIsFailed(t *testing.T) {
	runner := &mockRunner{code: intPtr(3)}
	sink := newRecordingSink()
	svc := NewService(Options{Catalog: testCatalog(), Runner: runner, Sink: sink})

	result, err := svc.RunAction("greet")
	if err != nil {
		t.Fatalf("RunAction failed: %v", err)
	}
	if result.Status != domain.StatusFailed {
		t.Errorf("expected status %q, got %q", domain.StatusFailed, result.Status)
	}
	if result.ExitCode == nil || *result.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %v", result.ExitCode)
	}
	if result.Err != nil {
		t.Errorf("non-zero exit is not an error: %v", result.Err)
	}
}

func TestRunActionLaunchFailureCaptured(t *testing.T) {
	launchErr := fmt.Errorf("%w: no such file", domain.ErrExecutableNotFound)
	runner := &mockRunner{err: launchErr}
	sink := newRecordingSink()
	repo := &mockRepo{}
	svc := NewService(Options{Catalog: testCatalog(), Runner: runner, Repo: repo, Sink: sink})

	result, err := svc.RunAction("greet")
	if err != nil {
		t.Fatalf("launch failures must not surface as RunAction errors, got %v", err)
	}
	if result.Status != domain.StatusFailed {
		t.Errorf("expected status %q, got %q", domain.StatusFailed, result.Status)
	}
	if !errors.Is(result.Err, domain.ErrExecutableNotFound) {
		t.Errorf("expected ErrExecutableNotFound in result, got %v", result.Err)
	}
	if result.ExitCode != nil {
		t.Errorf("no exit code for a process that never started, got %v", result.ExitCode)
	}

	saves := repo.saves()
	if len(saves) == 0 || saves[len(saves)-1].Error == "" {
		t.Error("terminal record should carry the failure detail")
	}
}

func TestDangerousActionDeclined(t *testing.T) {
	runner := &mockRunner{}
	sink := newRecordingSink()
	repo := &mockRepo{}
	gate := &confirmRecorder{answer: false}
	svc := NewService(Options{
		Catalog: testCatalog(),
		Runner:  runner,
		Repo:    repo,
		Sink:    sink,
		Confirm: gate.confirm,
	})

	result, err := svc.RunAction("wipe")
	if err != nil {
		t.Fatalf("a declined action is not an error, got %v", err)
	}
	if result.Status != domain.StatusCancelled {
		t.Errorf("expected status %q, got %q", domain.StatusCancelled, result.Status)
	}
	if got := runner.ran(); len(got) != 0 {
		t.Errorf("declined action reached the runner: %v", got)
	}
	if diff := cmp.Diff([]string{"Wipe scratch space"}, gate.askedLabels()); diff != "" {
		t.Errorf("confirmer labels mismatch (-want +got):\n%s", diff)
	}
	if done := sink.doneResults(); len(done) != 1 || done[0].Status != domain.StatusCancelled {
		t.Errorf("expected one cancelled Done, got %+v", done)
	}

	saves := repo.saves()
	if len(saves) != 1 || saves[0].Status != domain.StatusCancelled {
		t.Errorf("expected a single terminal cancelled record, got %+v", saves)
	}
	if saves[0].ExitCode != nil {
		t.Errorf("cancelled run has no exit code, got %v", saves[0].ExitCode)
	}
}

func TestDangerousActionConfirmed(t *testing.T) {
	runner := &mockRunner{code: intPtr(0)}
	sink := newRecordingSink()
	gate := &confirmRecorder{answer: true}
	svc := NewService(Options{
		Catalog: testCatalog(),
		Runner:  runner,
		Sink:    sink,
		Confirm: gate.confirm,
	})

	result, err := svc.RunAction("wipe")
	if err != nil {
		t.Fatalf("RunAction failed: %v", err)
	}
	if result.Status != domain.StatusSuccess {
		t.Errorf("expected status %q, got %q", domain.StatusSuccess, result.Status)
	}
	if diff := cmp.Diff([]string{"wipe"}, runner.ran()); diff != "" {
		t.Errorf("runner calls mismatch (-want +got):\n%s", diff)
	}
	if got := gate.askedLabels(); len(got) != 1 {
		t.Errorf("expected exactly one confirmation, got %v", got)
	}
}

func TestNonDangerousSkipsConfirmer(t *testing.T) {
	runner := &mockRunner{code: intPtr(0)}
	gate := &confirmRecorder{answer: false}
	svc := NewService(Options{
		Catalog: testCatalog(),
		Runner:  runner,
		Sink:    newRecordingSink(),
		Confirm: gate.confirm,
	})

	result, err := svc.RunAction("greet")
	if err != nil {
		t.Fatalf("RunAction failed: %v", err)
	}
	if result.Status != domain.StatusSuccess {
		t.Errorf("expected status %q, got %q", domain.StatusSuccess, result.Status)
	}
	if got := gate.askedLabels(); len(got) != 0 {
		t.Errorf("confirmer consulted for non-dangerous action: %v", got)
	}
}

func TestNilConfirmerFailsClosed(t *testing.T) {
	runner := &mockRunner{}
	svc := NewService(Options{
		Catalog: testCatalog(),
		Runner:  runner,
		Sink:    newRecordingSink(),
	})

	result, err := svc.RunAction("wipe")
	if err != nil {
		t.Fatalf("RunAction failed: %v", err)
	}
	if result.Status != domain.StatusCancelled {
		t.Errorf("expected status %q, got %q", domain.StatusCancelled, result.Status)
	}
	if got := runner.ran(); len(got) != 0 {
		t.Errorf("runner invoked without confirmation: %v", got)
	}
}

func TestDryRunSkipsRunner(t *testing.T) {
	runner := &mockRunner{}
	sink := newRecordingSink()
	repo := &mockRepo{}
	svc := NewService(Options{
		Catalog: testCatalog(),
		Runner:  runner,
		Repo:    repo,
		Sink:    sink,
		DryRun:  true,
	})

	result, err := svc.RunAction("greet")
	if err != nil {
		t.Fatalf("RunAction failed: %v", err)
	}
	if result.Status != domain.StatusDryRun {
		t.Errorf("expected status %q, got %q", domain.StatusDryRun, result.Status)
	}
	if got := runner.ran(); len(got) != 0 {
		t.Errorf("dry run reached the runner: %v", got)
	}
	if len(result.Lines) != 1 || !strings.Contains(result.Lines[0], "hello --loud") {
		t.Errorf("dry run line should preview the resolved command, got %v", result.Lines)
	}
	if diff := cmp.Diff(result.Lines, sink.lines["greet"]); diff != "" {
		t.Errorf("sink preview mismatch (-want +got):\n%s", diff)
	}
	saves := repo.saves()
	if len(saves) != 1 || saves[0].Status != domain.StatusDryRun {
		t.Errorf("expected a single dry-run record, got %+v", saves)
	}
}

func TestHistoryFailureDoesNotFailRun(t *testing.T) {
	runner := &mockRunner{code: intPtr(0)}
	repo := &mockRepo{saveErr: errors.New("disk full")}
	svc := NewService(Options{
		Catalog: testCatalog(),
		Runner:  runner,
		Repo:    repo,
		Sink:    newRecordingSink(),
	})

	result, err := svc.RunAction("greet")
	if err != nil {
		t.Fatalf("history failure leaked into RunAction: %v", err)
	}
	if result.Status != domain.StatusSuccess {
		t.Errorf("expected status %q, got %q", domain.StatusSuccess, result.Status)
	}
}

func TestNilRepoDisablesHistory(t *testing.T) {
	runner := &mockRunner{code: intPtr(0)}
	svc := NewService(Options{Catalog: testCatalog(), Runner: runner, Sink: newRecordingSink()})

	if _, err := svc.RunAction("greet"); err != nil {
		t.Fatalf("RunAction failed: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}
