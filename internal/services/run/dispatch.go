package run

import "log/slog"

// Rejection reports one lineup member that was skipped before dispatch.
type Rejection struct {
	ActionID string
	Err      error
}

// DispatchSummary acknowledges a lineup dispatch. It counts launches,
// not outcomes: members listed as dispatched are running (or awaiting
// confirmation) when the summary is returned, and their results arrive
// later through the sink.
type DispatchSummary struct {
	Lineup     string
	Dispatched int
	Rejected   []Rejection
}

// DispatchLineup launches every member of the named lineup concurrently
// and returns as soon as all of them are in flight. It never waits:
// member completion is observable only through the sink, and a slow or
// stuck member cannot delay the others or the caller. Unknown member
// ids are rejected individually and do not abort the rest.
//
// There is no way to stop a dispatched member; once launched it runs to
// completion on its own goroutine.
func (s *Service) DispatchLineup(name string) (DispatchSummary, error) {
	lineup, err := s.catalog.Lineup(name)
	if err != nil {
		return DispatchSummary{}, err
	}

	summary := DispatchSummary{Lineup: lineup.Name}
	for _, id := range lineup.Members {
		spec, err := s.catalog.Action(id)
		if err != nil {
			summary.Rejected = append(summary.Rejected, Rejection{ActionID: id, Err: err})
			continue
		}
		go s.runSpec(spec)
		summary.Dispatched++
	}

	slog.Debug("lineup dispatched",
		"lineup", lineup.Name,
		"dispatched", summary.Dispatched,
		"rejected", len(summary.Rejected))

	return summary, nil
}
