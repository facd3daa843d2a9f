package run

import "github.com/Advait-MD/Conductor/internal/domain"

// shouldProceed applies the confirmation gate. Non-dangerous actions
// pass unconditionally. Dangerous actions require an affirmative answer
// from the confirmer, which blocks the asking goroutine, never the
// caller that dispatched it; with no confirmer configured the gate
// fails closed.
func (s *Service) shouldProceed(spec domain.ActionSpec) bool {
	if !spec.Dangerous {
		return true
	}
	if s.confirm == nil {
		return false
	}
	return s.confirm(spec.Label)
}
