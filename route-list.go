package lnrouter

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownView is returned by PathFor for a view with no entry in the list.
	ErrUnknownView = errors.New("unknown view")

	// ErrInvalidParam is returned by PathFor when the route param cannot
	// be placed in the view's path pattern.
	ErrInvalidParam = errors.New("invalid route param")
)

// RouteList is an ordered, bidirectional table of views and their path patterns.
// Parse and PathFor both consult it so the two directions cannot drift apart.
type RouteList struct {
	entries  []routeEntry
	byName   map[ViewName]int
	fallback ViewName
}

type routeEntry struct {
	name  ViewName
	mpath mpath
}

// RouteEntry describes one row of a RouteList.
type RouteEntry struct {
	Name    ViewName `json:"name"`
	Pattern string   `json:"pattern"`
}

// NewRouteList returns an empty list that parses unmatched paths to fallback.
func NewRouteList(fallback ViewName) *RouteList {
	return &RouteList{
		byName:   make(map[ViewName]int),
		fallback: fallback,
	}
}

// MustAdd is like Add but panics upon error.
func (rl *RouteList) MustAdd(name ViewName, pattern string) {
	err := rl.Add(name, pattern)
	if err != nil {
		panic(err)
	}
}

// Add appends an entry.  Entries are matched in the order they were added.
// Each view may appear only once, since its pattern is also its canonical path.
func (rl *RouteList) Add(name ViewName, pattern string) error {

	if _, ok := rl.byName[name]; ok {
		return fmt.Errorf("view %q already has a route", name)
	}

	mp, err := parseMpath(pattern)
	if err != nil {
		return err
	}
	if len(mp.paramNames()) > 1 {
		return fmt.Errorf("pattern %q: at most one parameter is supported", pattern)
	}

	if rl.byName == nil {
		rl.byName = make(map[ViewName]int)
	}
	rl.byName[name] = len(rl.entries)
	rl.entries = append(rl.entries, routeEntry{name: name, mpath: mp})

	return nil
}

// Parse maps a location path to a Route.  The first matching entry wins; a
// path matching nothing yields the fallback view.  Parse never fails.
func (rl *RouteList) Parse(path string) Route {

	for _, re := range rl.entries {
		params, ok := re.mpath.match(path)
		if !ok {
			continue
		}
		return Route{Name: re.name, Param: params.First()}
	}

	return Route{Name: rl.fallback}
}

// PathFor returns the canonical path of rt.  It is the inverse of Parse:
// Parse(PathFor(rt)) == rt whenever err is nil.
func (rl *RouteList) PathFor(rt Route) (string, error) {

	idx, ok := rl.byName[rt.Name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownView, rt.Name)
	}
	re := rl.entries[idx]

	var params PathParamList
	if names := re.mpath.paramNames(); len(names) > 0 {
		params = PathParamList{{Key: names[0], Value: rt.Param}}
	}

	p, err := re.mpath.merge(params)
	if err != nil {
		return p, fmt.Errorf("%w: %s %q: %v", ErrInvalidParam, rt.Name, rt.Param, err)
	}

	return p, nil
}

// Canonical returns the route as Parse would produce it from the route's own
// path, which drops a param on views that take none.
func (rl *RouteList) Canonical(rt Route) (Route, error) {
	p, err := rl.PathFor(rt)
	if err != nil {
		return Route{Name: rl.fallback}, err
	}
	return rl.Parse(p), nil
}

// Fallback returns the view unmatched paths resolve to.
func (rl *RouteList) Fallback() ViewName { return rl.fallback }

// Entries returns the table rows in match order.
func (rl *RouteList) Entries() []RouteEntry {
	ret := make([]RouteEntry, 0, len(rl.entries))
	for _, re := range rl.entries {
		ret = append(ret, RouteEntry{Name: re.name, Pattern: re.mpath.String()})
	}
	return ret
}
