package domain

// Kind classifies how an action's command specification is interpreted
// at resolution and execution time.
type Kind string

const (
	// KindExecutable is a program plus arguments, resolved against the
	// search path with an optional fallback location.
	KindExecutable Kind = "executable"

	// KindOpener is a single filesystem path handed to the operating
	// system's default-open mechanism instead of being executed.
	KindOpener Kind = "opener"

	// KindRaw is a command launched exactly as written, with no path
	// resolution applied.
	KindRaw Kind = "raw"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindExecutable, KindOpener, KindRaw:
		return true
	}
	return false
}

// ActionSpec is a single whitelisted operation. Specs are built once at
// catalog load and never mutated afterward, so they may be read
// concurrently without synchronization.
type ActionSpec struct {
	// ID is the unique catalog key, e.g. "open_vscode".
	ID string `json:"id" yaml:"id"`

	// Label is the human-readable name shown in listings and
	// confirmation prompts. Labels are not required to be unique.
	Label string `json:"label" yaml:"label"`

	// Kind selects the execution path. See the Kind constants.
	Kind Kind `json:"kind" yaml:"kind"`

	// Command is the ordered program-and-arguments tokens, or exactly
	// one filesystem path for openers.
	Command []string `json:"command" yaml:"command"`

	// Fallback is an optional secondary program path used when search
	// path lookup fails. Only meaningful for KindExecutable.
	Fallback string `json:"fallback,omitempty" yaml:"fallback,omitempty"`

	// Dangerous marks actions that must be explicitly confirmed by the
	// user before they run.
	Dangerous bool `json:"dangerous" yaml:"dangerous"`
}

// Lineup is a named group of actions dispatched together, concurrently,
// without waiting for completion. Like ActionSpec it is immutable after
// catalog load.
type Lineup struct {
	// Name is the unique catalog key, e.g. "dev-start".
	Name string `json:"name" yaml:"name"`

	// Label is the human-readable name shown in listings.
	Label string `json:"label" yaml:"label"`

	// Members lists action IDs in declaration order. Referential
	// integrity against the action table is checked at load time.
	Members []string `json:"members" yaml:"members"`
}
