// Package run coordinates action execution: the confirmation gate,
// command resolution, the process boundary, run history, and progress
// reporting to the sink.
//
// One Service instance serves a whole process. Apart from the atomic
// dry-run toggle its fields are read-only after construction, so single
// actions and concurrently dispatched lineup members may share it
// freely; every mutable RunResult is owned by exactly one goroutine
// until it is handed to the sink.
package run

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Advait-MD/Conductor/internal/domain"
	"github.com/Advait-MD/Conductor/internal/resolve"
	"github.com/Advait-MD/Conductor/internal/runstore"
	"github.com/Advait-MD/Conductor/internal/util"
)

// RetentionPeriod is how long terminal run records are kept. Each
// successful history insert opportunistically prunes older records.
// Exported as a variable so the config layer and tests can override it.
var RetentionPeriod = 30 * 24 * time.Hour

// outputTailLines bounds how much process output is persisted per run.
const outputTailLines = 20

// Catalog is the read-only action table the service consults.
// *catalog.Registry satisfies it.
type Catalog interface {
	Action(id string) (domain.ActionSpec, error)
	Lineup(name string) (domain.Lineup, error)
}

// Runner is the process boundary. execute.Executor satisfies it;
// tests substitute their own.
type Runner interface {
	Run(spec domain.ActionSpec, resolved domain.ResolvedCommand, emit domain.LineFunc) (*int, error)
}

// Service wires catalog, gate, resolver, runner, history, and sink.
type Service struct {
	catalog Catalog
	runner  Runner
	repo    runstore.Repository
	sink    domain.Sink
	confirm domain.ConfirmFunc
	dryRun  atomic.Bool
}

// Options configures a Service. Catalog, Runner, and Sink are required;
// a nil Repo disables history, a nil Confirm declines every dangerous
// action (fail closed).
type Options struct {
	Catalog Catalog
	Runner  Runner
	Repo    runstore.Repository
	Sink    domain.Sink
	Confirm domain.ConfirmFunc
	DryRun  bool
}

// NewService creates a run service.
func NewService(opts Options) *Service {
	s := &Service{
		catalog: opts.Catalog,
		runner:  opts.Runner,
		repo:    opts.Repo,
		sink:    opts.Sink,
		confirm: opts.Confirm,
	}
	s.dryRun.Store(opts.DryRun)
	return s
}

// SetDryRun flips the service between executing commands and reporting
// what would run. Safe while runs are in flight; runs already past the
// gate keep the mode they started with.
func (s *Service) SetDryRun(v bool) {
	s.dryRun.Store(v)
}

// DryRun reports the current mode.
func (s *Service) DryRun() bool {
	return s.dryRun.Load()
}

// Close releases repository resources.
func (s *Service) Close() error {
	if s.repo == nil {
		return nil
	}
	return s.repo.Close()
}

// RunAction executes one catalog action and blocks until it reaches a
// terminal state. The only error return is an unknown id, rejected
// before any other work; execution failures and cancellations are
// captured inside the returned result, which has also been delivered to
// the sink.
func (s *Service) RunAction(id string) (domain.RunResult, error) {
	spec, err := s.catalog.Action(id)
	if err != nil {
		return domain.RunResult{}, err
	}
	return s.runSpec(spec), nil
}

// runSpec owns the full per-action pipeline: gate, resolve, execute,
// persist, report. It is also the unit of work a lineup launches per
// member goroutine.
func (s *Service) runSpec(spec domain.ActionSpec) domain.RunResult {
	result := domain.RunResult{
		ActionID:  spec.ID,
		Label:     spec.Label,
		Kind:      spec.Kind,
		Status:    domain.StatusRunning,
		StartedAt: time.Now().UTC(),
	}

	if !s.shouldProceed(spec) {
		slog.Debug("action declined at confirmation gate", "action", spec.ID)
		result.Status = domain.StatusCancelled
		return s.finalize(result, nil)
	}

	result.Resolved = resolve.Action(spec)
	slog.Debug("action resolved", "action", spec.ID, "command", result.Resolved.String())

	if s.dryRun.Load() {
		line := "[DRY RUN] would run: " + result.Resolved.String()
		result.Lines = append(result.Lines, line)
		s.sink.Line(spec.ID, line)
		result.Status = domain.StatusDryRun
		return s.finalize(result, nil)
	}

	record := s.track(&result)

	emit := func(line string) {
		result.Lines = append(result.Lines, line)
		s.sink.Line(spec.ID, line)
	}

	code, err := s.runner.Run(spec, result.Resolved, emit)
	result.ExitCode = code
	result.Err = err
	switch {
	case err != nil:
		result.Status = domain.StatusFailed
	case code != nil && *code != 0:
		result.Status = domain.StatusFailed
	default:
		result.Status = domain.StatusSuccess
	}

	return s.finalize(result, record)
}

// track inserts the initial "running" history row. Persistence is
// best-effort: on failure the run proceeds untracked.
func (s *Service) track(result *domain.RunResult) *runstore.RunRecord {
	if s.repo == nil {
		return nil
	}

	record := &runstore.RunRecord{
		ActionID:  result.ActionID,
		Label:     result.Label,
		Kind:      string(result.Kind),
		Status:    domain.StatusRunning,
		StartedAt: result.StartedAt,
	}
	if err := s.repo.Save(record); err != nil {
		slog.Debug("history insert failed", "action", result.ActionID, "error", err)
		return nil
	}

	// Opportunistically clean up old terminal records.
	_, _ = s.repo.DeleteOlderThan(RetentionPeriod)

	return record
}

// finalize stamps the terminal state, persists it, and notifies the
// sink. Exactly one call per run; the result is immutable afterward.
func (s *Service) finalize(result domain.RunResult, record *runstore.RunRecord) domain.RunResult {
	result.FinishedAt = time.Now().UTC()

	if s.repo != nil {
		if record == nil {
			// Runs that never reached the executor (cancelled, dry) get
			// a single terminal row instead of insert-then-update.
			record = &runstore.RunRecord{
				ActionID:  result.ActionID,
				Label:     result.Label,
				Kind:      string(result.Kind),
				StartedAt: result.StartedAt,
			}
		}
		record.Status = result.Status
		record.ExitCode = result.ExitCode
		record.LineCount = len(result.Lines)
		record.OutputTail = util.TailLines(result.Lines, outputTailLines)
		record.FinishedAt = result.FinishedAt
		if result.Err != nil {
			record.Error = result.Err.Error()
		}
		if err := s.repo.Save(record); err != nil {
			slog.Debug("history update failed", "action", result.ActionID, "error", err)
		}
	}

	s.sink.Done(result)
	return result
}
