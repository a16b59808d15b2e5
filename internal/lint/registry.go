package lint

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages the set of available checkers, which of them are
// enabled, and per-checker severity overrides from config.
type Registry struct {
	mu        sync.RWMutex
	checkers  map[string]Checker
	disabled  map[string]bool
	overrides map[string]Severity
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		checkers:  make(map[string]Checker),
		disabled:  make(map[string]bool),
		overrides: make(map[string]Severity),
	}
}

// DefaultRegistry returns a registry with every built-in checker
// registered and enabled.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, c := range []Checker{
		&FrontMatterChecker{},
		&GlobsChecker{},
		&BodyChecker{},
		&NamingChecker{},
	} {
		if err := r.Register(c); err != nil {
			// Built-in names are compile-time constants; a collision is
			// a programming error.
			panic(err)
		}
	}
	return r
}

// Register adds a checker. Names must be unique.
func (r *Registry) Register(c Checker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, exists := r.checkers[name]; exists {
		return fmt.Errorf("checker %q already registered", name)
	}
	r.checkers[name] = c
	return nil
}

// SetEnabled toggles a checker by name.
func (r *Registry) SetEnabled(name string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.checkers[name]; !exists {
		return fmt.Errorf("unknown checker %q", name)
	}
	r.disabled[name] = !enabled
	return nil
}

// SetSeverity overrides the severity of every diagnostic a checker emits.
func (r *Registry) SetSeverity(name string, sev Severity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.checkers[name]; !exists {
		return fmt.Errorf("unknown checker %q", name)
	}
	r.overrides[name] = sev
	return nil
}

// Enabled returns the enabled checkers sorted by name.
func (r *Registry) Enabled() []Checker {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Checker
	for name, c := range r.checkers {
		if !r.disabled[name] {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// All returns every registered checker sorted by name, including disabled
// ones, with their enabled state.
func (r *Registry) All() []CheckerStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []CheckerStatus
	for name, c := range r.checkers {
		out = append(out, CheckerStatus{Checker: c, Enabled: !r.disabled[name]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// CheckerStatus pairs a checker with its enabled state for listings.
type CheckerStatus struct {
	Checker
	Enabled bool
}

// applyOverride rewrites a diagnostic's severity if the producing checker
// has a config override.
func (r *Registry) applyOverride(d Diagnostic) Diagnostic {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if sev, ok := r.overrides[d.Check]; ok {
		d.Severity = sev
	}
	return d
}
