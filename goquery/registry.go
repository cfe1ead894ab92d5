package goquery

import "slices"

// Registry holds the ordered set of listing matchers. Matchers run in
// registration order, so newer markup versions should be registered first.
type Registry struct {
	matchers []Matcher
}

// NewRegistry creates a new Registry with the given matchers, in order.
func NewRegistry(matchers ...Matcher) *Registry {
	r := &Registry{}
	for _, m := range matchers {
		r.Register(m)
	}
	return r
}

// DefaultRegistry returns a registry with every built-in matcher.
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewListCardMatcher(),
		NewPlacePanelMatcher(),
		NewArticleMatcher(),
	)
}

// Get returns the matcher with the given name.
// Returns nil if no matcher is registered under that name.
func (r *Registry) Get(name string) Matcher {
	for _, m := range r.matchers {
		if m.Name() == name {
			return m
		}
	}
	return nil
}

// Register appends a matcher. If a matcher with the same name is already
// registered, it is replaced in place and keeps its position.
func (r *Registry) Register(m Matcher) {
	if i := slices.IndexFunc(r.matchers, func(existing Matcher) bool {
		return existing.Name() == m.Name()
	}); i >= 0 {
		r.matchers[i] = m
		return
	}
	r.matchers = append(r.matchers, m)
}

// List returns the names of all registered matchers in order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.matchers))
	for _, m := range r.matchers {
		names = append(names, m.Name())
	}
	return names
}

// Matchers returns the registered matchers in order.
func (r *Registry) Matchers() []Matcher {
	return slices.Clone(r.matchers)
}
