// Package views maps view names to the components that render them.
package views

import (
	"sort"

	"github.com/lobsternotes/lnrouter"
)

// Registry maps each ViewName to a component of type T.
// Resolve always returns a component for any Route: views with no
// registration fall back to the home component.
type Registry[T any] struct {
	m        map[lnrouter.ViewName]T
	fallback lnrouter.ViewName
}

// NewRegistry returns an empty Registry falling back to lnrouter.ViewHome.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		m:        make(map[lnrouter.ViewName]T),
		fallback: lnrouter.ViewHome,
	}
}

// Register sets the component for name, replacing any earlier registration.
func (r *Registry[T]) Register(name lnrouter.ViewName, c T) *Registry[T] {
	r.m[name] = c
	return r
}

// SetFallback changes the view used for unregistered names.
func (r *Registry[T]) SetFallback(name lnrouter.ViewName) *Registry[T] {
	r.fallback = name
	return r
}

// Lookup returns the component registered for name.
func (r *Registry[T]) Lookup(name lnrouter.ViewName) (T, bool) {
	c, ok := r.m[name]
	return c, ok
}

// Resolve returns the component for rt.Name, the fallback component if
// rt.Name is not registered, or the zero T if neither is.
func (r *Registry[T]) Resolve(rt lnrouter.Route) T {
	if c, ok := r.m[rt.Name]; ok {
		return c
	}
	return r.m[r.fallback]
}

// Missing returns the names from want that have no registration.
func (r *Registry[T]) Missing(want []lnrouter.ViewName) []lnrouter.ViewName {
	var ret []lnrouter.ViewName
	for _, n := range want {
		if _, ok := r.m[n]; !ok {
			ret = append(ret, n)
		}
	}
	return ret
}

// Names returns the registered names, sorted.
func (r *Registry[T]) Names() []lnrouter.ViewName {
	ret := make([]lnrouter.ViewName, 0, len(r.m))
	for n := range r.m {
		ret = append(ret, n)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}
