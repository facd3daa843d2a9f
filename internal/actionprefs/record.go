package actionprefs

import "time"

// ActionPrefs holds per-action user preferences.
type ActionPrefs struct {
	ID        int64
	ActionID  string
	Pinned    bool
	UpdatedAt time.Time
}
