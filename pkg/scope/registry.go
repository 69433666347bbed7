package scope

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrInvalidScope matches every *InvalidScopeError.
var ErrInvalidScope = errors.New("invalid scope provided")

// InvalidScopeError lists the requested scopes the registry does not know,
// together with the full sorted list of valid scopes.
type InvalidScopeError struct {
	Invalid []string
	Valid   []string
}

func (e *InvalidScopeError) Error() string {
	return fmt.Sprintf("invalid scope provided: %s", strings.Join(e.Invalid, ", "))
}

// Is lets errors.Is(err, ErrInvalidScope) match.
func (e *InvalidScopeError) Is(target error) bool { return target == ErrInvalidScope }

// Registry is an immutable set of known scopes and their documentation.
type Registry struct {
	docs   map[Scope]string
	sorted []Scope
}

// NewRegistry builds a registry from a scope -> documentation map. The map is
// copied, later changes to it are not observed.
func NewRegistry(docs map[Scope]string) *Registry {
	r := &Registry{docs: maps.Clone(docs)}
	if r.docs == nil {
		r.docs = map[Scope]string{}
	}
	r.sorted = slices.Sorted(maps.Keys(r.docs))
	return r
}

var defaultRegistry = NewRegistry(Docs)

// Default returns the registry of every scope in Docs.
func Default() *Registry { return defaultRegistry }

// All returns every registered scope sorted ascending.
func (r *Registry) All() []Scope {
	return slices.Clone(r.sorted)
}

// Contains reports whether s is registered.
func (r *Registry) Contains(s Scope) bool {
	_, ok := r.docs[s]
	return ok
}

// Describe returns the documentation for s.
func (r *Registry) Describe(s Scope) (string, bool) {
	d, ok := r.docs[s]
	return d, ok
}

// Validate checks requested against the registry. On success it returns the
// requested scopes as values, deduplicated in request order. Otherwise it
// returns an *InvalidScopeError naming every unknown scope.
func (r *Registry) Validate(requested []string) ([]Scope, error) {
	var invalid []string
	seen := make(map[string]struct{}, len(requested))
	for _, s := range requested {
		if r.Contains(Scope(s)) {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		invalid = append(invalid, s)
	}

	if len(invalid) > 0 {
		slices.Sort(invalid)
		return nil, &InvalidScopeError{
			Invalid: invalid,
			Valid:   Strings(r.sorted),
		}
	}

	out := FromStrings(requested)
	if out == nil {
		out = []Scope{}
	}
	return out, nil
}
