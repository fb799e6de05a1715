package parametric

import (
	"fmt"
	"sync"
)

// FilterFactory builds a Filter from positional declaration arguments.
type FilterFactory func(args ...any) (Filter, error)

// ValidatorFactory builds a Validator from positional declaration arguments.
type ValidatorFactory func(args ...any) (Validator, error)

// FilterInstance registers a ready Filter that takes no arguments.
func FilterInstance(f Filter) FilterFactory {
	return func(args ...any) (Filter, error) { return f, nil }
}

// ValidatorInstance registers a ready Validator that takes no arguments.
func ValidatorInstance(v Validator) ValidatorFactory {
	return func(args ...any) (Validator, error) { return v, nil }
}

// Registry maps names to filter and validator factories and policy kinds to
// policies. Register everything at process start; lookups are read-only and
// safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	filters    map[string]FilterFactory
	validators map[string]ValidatorFactory
	policies   map[PolicyKind]Policy
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		filters:    map[string]FilterFactory{},
		validators: map[string]ValidatorFactory{},
		policies:   map[PolicyKind]Policy{},
	}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry with the built-in filters,
// validators and policies.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		registerBuiltins(defaultRegistry)
	})
	return defaultRegistry
}

// WithBuiltins returns a new Registry pre-populated with the built-ins.
func WithBuiltins() *Registry {
	r := NewRegistry()
	registerBuiltins(r)
	return r
}

// RegisterFilter registers a filter factory; nil factories are ignored.
func (r *Registry) RegisterFilter(name string, f FilterFactory) *Registry {
	if f == nil {
		return r
	}
	r.mu.Lock()
	r.filters[name] = f
	r.mu.Unlock()
	return r
}

// RegisterValidator registers a validator factory; nil factories are ignored.
func (r *Registry) RegisterValidator(name string, f ValidatorFactory) *Registry {
	if f == nil {
		return r
	}
	r.mu.Lock()
	r.validators[name] = f
	r.mu.Unlock()
	return r
}

// RegisterPolicy registers the policy applied for kind.
func (r *Registry) RegisterPolicy(kind PolicyKind, p Policy) *Registry {
	if p == nil {
		return r
	}
	r.mu.Lock()
	r.policies[kind] = p
	r.mu.Unlock()
	return r
}

// Filter instantiates the filter registered under name.
func (r *Registry) Filter(name string, args ...any) (Filter, error) {
	r.mu.RLock()
	f, ok := r.filters[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
	out, err := f(args...)
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", name, err)
	}
	return out, nil
}

// Validator instantiates the validator registered under name.
func (r *Registry) Validator(name string, args ...any) (Validator, error) {
	r.mu.RLock()
	f, ok := r.validators[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownValidator, name)
	}
	out, err := f(args...)
	if err != nil {
		return nil, fmt.Errorf("validator %q: %w", name, err)
	}
	return out, nil
}

// Policy returns the policy registered for kind.
func (r *Registry) Policy(kind PolicyKind) (Policy, error) {
	r.mu.RLock()
	p, ok := r.policies[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, kind)
	}
	return p, nil
}

// HasFilter reports whether a filter is registered under name.
func (r *Registry) HasFilter(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.filters[name]
	return ok
}

// HasValidator reports whether a validator is registered under name.
func (r *Registry) HasValidator(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.validators[name]
	return ok
}
