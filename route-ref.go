package lnrouter

// RouteSetter is implemented by components that want the current Route.
type RouteSetter interface {
	RouteSet(Route)
}

// RouteRef can be embedded in a component so Router.Inject can give it the current Route.
type RouteRef struct {
	Route Route
}

// RouteSet implements RouteSetter.
func (h *RouteRef) RouteSet(rt Route) {
	h.Route = rt
}
