package config

import (
	"fmt"
	"strings"

	"github.com/Advait-MD/Conductor/internal/util"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "output-format").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value for this key to the given Config (in memory only;
	// the caller is responsible for calling Save).
	Set func(cfg *Config, value string)

	// Validate rejects malformed values before Set is called. Nil means
	// any value is accepted.
	Validate func(value string) error
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "catalog-path",
		Description: "Extra catalog file merged over the built-in actions",
		Get:         func(cfg *Config) string { return cfg.CatalogPath },
		Set:         func(cfg *Config, v string) { cfg.CatalogPath = v },
	},
	{
		Name:        "output-format",
		Description: "Default output format for list commands (table, json, yaml)",
		Get:         func(cfg *Config) string { return cfg.OutputFormat },
		Set:         func(cfg *Config, v string) { cfg.OutputFormat = strings.ToLower(strings.TrimSpace(v)) },
		Validate: func(v string) error {
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "table", "json", "yaml":
				return nil
			}
			return fmt.Errorf("invalid output format %q (expected table, json, or yaml)", v)
		},
	},
	{
		Name:        "history-retention",
		Description: "How long run history is kept (e.g. 30d, 72h)",
		Get:         func(cfg *Config) string { return cfg.HistoryRetention },
		Set:         func(cfg *Config, v string) { cfg.HistoryRetention = v },
		Validate: func(v string) error {
			_, err := util.ParseDuration(v)
			return err
		},
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	// Find the longest key name for alignment.
	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
