// Package catalog loads and validates the action whitelist.
//
// A catalog is assembled from two layers: the compiled-in default set
// and an optional user file, merged by action id / lineup name with the
// user layer winning. Validation (unique ids, known kinds, non-empty
// commands, opener arity, lineup referential integrity) happens once at
// load time; after Load returns, the registry is immutable and safe for
// unsynchronized concurrent reads.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Advait-MD/Conductor/internal/domain"
	"github.com/Advait-MD/Conductor/internal/util"

	"github.com/BurntSushi/toml"
)

//go:embed default.toml
var defaultCatalogData string

const (
	appDir      = "conductor"
	catalogFile = "catalog.toml"
)

// file-level schema, decoded before conversion to domain types.
type actionEntry struct {
	ID        string   `toml:"id"`
	Label     string   `toml:"label"`
	Kind      string   `toml:"kind"`
	Command   []string `toml:"command"`
	Fallback  string   `toml:"fallback"`
	Dangerous bool     `toml:"dangerous"`
}

type lineupEntry struct {
	Name    string   `toml:"name"`
	Label   string   `toml:"label"`
	Members []string `toml:"members"`
}

type catalogDoc struct {
	Actions []actionEntry `toml:"actions"`
	Lineups []lineupEntry `toml:"lineups"`
}

// Registry is the immutable action and lineup table. Lookup misses are
// normal outcomes (domain.ErrUnknownAction / domain.ErrUnknownLineup),
// never fatal.
type Registry struct {
	actions     map[string]domain.ActionSpec
	actionOrder []string
	lineups     map[string]domain.Lineup
	lineupOrder []string
}

// Action returns the spec for id, or a wrapped domain.ErrUnknownAction.
func (r *Registry) Action(id string) (domain.ActionSpec, error) {
	spec, ok := r.actions[id]
	if !ok {
		return domain.ActionSpec{}, fmt.Errorf("catalog: action %q: %w", id, domain.ErrUnknownAction)
	}
	return spec, nil
}

// Lineup returns the lineup for name, or a wrapped domain.ErrUnknownLineup.
func (r *Registry) Lineup(name string) (domain.Lineup, error) {
	l, ok := r.lineups[name]
	if !ok {
		return domain.Lineup{}, fmt.Errorf("catalog: lineup %q: %w", name, domain.ErrUnknownLineup)
	}
	return l, nil
}

// Actions returns all specs in declaration order (defaults first, user
// additions after; overridden entries keep their original position).
func (r *Registry) Actions() []domain.ActionSpec {
	out := make([]domain.ActionSpec, 0, len(r.actionOrder))
	for _, id := range r.actionOrder {
		out = append(out, r.actions[id])
	}
	return out
}

// Lineups returns all lineups in declaration order.
func (r *Registry) Lineups() []domain.Lineup {
	out := make([]domain.Lineup, 0, len(r.lineupOrder))
	for _, name := range r.lineupOrder {
		out = append(out, r.lineups[name])
	}
	return out
}

// Len returns the number of actions in the registry.
func (r *Registry) Len() int { return len(r.actionOrder) }

// DefaultUserPath returns the conventional user catalog location.
func DefaultUserPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("catalog: unable to determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, catalogFile), nil
}

// Load builds the registry from the embedded defaults merged with the
// user catalog. An explicitly given path must exist; the conventional
// user path is optional and silently skipped when absent.
func Load(path string) (*Registry, error) {
	layers := make([]catalogDoc, 0, 2)

	var base catalogDoc
	if _, err := toml.Decode(defaultCatalogData, &base); err != nil {
		return nil, fmt.Errorf("catalog: failed to decode embedded defaults: %w", err)
	}
	layers = append(layers, base)

	explicit := path != ""
	if !explicit {
		if p, err := DefaultUserPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		var user catalogDoc
		if _, err := toml.DecodeFile(path, &user); err != nil {
			if explicit || !os.IsNotExist(err) {
				return nil, fmt.Errorf("catalog: failed to load %s: %w", path, err)
			}
		} else {
			layers = append(layers, user)
		}
	}

	return build(layers...)
}

// build merges the given layers in order (later wins) and validates the
// result. Exposed to tests through Load and the *_test helpers only.
func build(layers ...catalogDoc) (*Registry, error) {
	r := &Registry{
		actions: make(map[string]domain.ActionSpec),
		lineups: make(map[string]domain.Lineup),
	}

	for _, layer := range layers {
		seenActions := make(map[string]bool, len(layer.Actions))
		for _, entry := range layer.Actions {
			if seenActions[entry.ID] {
				return nil, fmt.Errorf("catalog: duplicate action id %q", entry.ID)
			}
			seenActions[entry.ID] = true

			spec, err := toSpec(entry)
			if err != nil {
				return nil, err
			}
			if _, exists := r.actions[spec.ID]; !exists {
				r.actionOrder = append(r.actionOrder, spec.ID)
			}
			r.actions[spec.ID] = spec
		}

		seenLineups := make(map[string]bool, len(layer.Lineups))
		for _, entry := range layer.Lineups {
			if seenLineups[entry.Name] {
				return nil, fmt.Errorf("catalog: duplicate lineup %q", entry.Name)
			}
			seenLineups[entry.Name] = true

			l, err := toLineup(entry)
			if err != nil {
				return nil, err
			}
			if _, exists := r.lineups[l.Name]; !exists {
				r.lineupOrder = append(r.lineupOrder, l.Name)
			}
			r.lineups[l.Name] = l
		}
	}

	// Referential integrity is checked after merging so a user layer
	// may reference default actions and vice versa.
	for _, name := range r.lineupOrder {
		for _, member := range r.lineups[name].Members {
			if _, ok := r.actions[member]; !ok {
				return nil, fmt.Errorf("catalog: lineup %q references unknown action %q", name, member)
			}
		}
	}

	return r, nil
}

func toSpec(entry actionEntry) (domain.ActionSpec, error) {
	if err := util.ValidateActionID(entry.ID); err != nil {
		return domain.ActionSpec{}, fmt.Errorf("catalog: action: %w", err)
	}

	kind := domain.Kind(entry.Kind)
	if !kind.Valid() {
		return domain.ActionSpec{}, fmt.Errorf("catalog: action %q: unknown kind %q", entry.ID, entry.Kind)
	}
	if len(entry.Command) == 0 {
		return domain.ActionSpec{}, fmt.Errorf("catalog: action %q: command must not be empty", entry.ID)
	}
	if kind == domain.KindOpener && len(entry.Command) != 1 {
		return domain.ActionSpec{}, fmt.Errorf("catalog: action %q: opener command must be exactly one path, got %d tokens", entry.ID, len(entry.Command))
	}
	for _, tok := range entry.Command {
		if tok == "" {
			return domain.ActionSpec{}, fmt.Errorf("catalog: action %q: command contains an empty token", entry.ID)
		}
	}

	label := entry.Label
	if label == "" {
		label = entry.ID
	}

	command := make([]string, len(entry.Command))
	for i, tok := range entry.Command {
		command[i] = os.ExpandEnv(tok)
	}

	return domain.ActionSpec{
		ID:        entry.ID,
		Label:     label,
		Kind:      kind,
		Command:   command,
		Fallback:  os.ExpandEnv(entry.Fallback),
		Dangerous: entry.Dangerous,
	}, nil
}

func toLineup(entry lineupEntry) (domain.Lineup, error) {
	if err := util.ValidateActionID(entry.Name); err != nil {
		return domain.Lineup{}, fmt.Errorf("catalog: lineup: %w", err)
	}

	label := entry.Label
	if label == "" {
		label = entry.Name
	}

	return domain.Lineup{
		Name:    entry.Name,
		Label:   label,
		Members: append([]string(nil), entry.Members...),
	}, nil
}
