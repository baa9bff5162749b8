package lnrouter

// DefaultRoutes returns the Lobster Notes route table.
// Each call returns a fresh list so callers may extend it.
func DefaultRoutes() *RouteList {
	rl := NewRouteList(ViewHome)
	rl.MustAdd(ViewHome, "/")
	rl.MustAdd(ViewList, "/list")
	rl.MustAdd(ViewNotes, "/notes")
	rl.MustAdd(ViewNote, "/note/:id")
	rl.MustAdd(ViewDashboard, "/dashboard")
	rl.MustAdd(ViewSearch, "/search")
	rl.MustAdd(ViewLogin, "/login")
	rl.MustAdd(ViewAccount, "/create-account")
	rl.MustAdd(ViewUsers, "/users")
	return rl
}

var defaultRoutes = DefaultRoutes()

// ParseLocation maps path to a Route using the default table.
// Unrecognized paths map to HomeRoute.
func ParseLocation(path string) Route {
	return defaultRoutes.Parse(path)
}

// PathFor returns the canonical path of rt in the default table.
func PathFor(rt Route) (string, error) {
	return defaultRoutes.PathFor(rt)
}

// NewDefault returns a Router over the default table using the browser's
// history when running in a browser and an in-memory history otherwise.
func NewDefault(opts ...Option) *Router {
	var h History
	if InBrowser() {
		h = NewBrowserHistory(false)
	} else {
		h = NewMemoryHistory("/")
	}
	return New(h, opts...)
}
