package lnrouter

import (
	"log/slog"
)

// EventEnv is our view of a Vugu EventEnv
type EventEnv interface {
	Lock()         // acquire write lock
	UnlockOnly()   // release write lock
	UnlockRender() // release write lock and request re-render
}

// ChangeHandler implementations are called when the location changes
// outside of Navigate (back/forward, a direct URL edit).
type ChangeHandler interface {
	RouteChange(rt Route)
}

// ChangeHandlerFunc implements ChangeHandler as a function.
type ChangeHandlerFunc func(rt Route)

// RouteChange implements the ChangeHandler interface.
func (f ChangeHandlerFunc) RouteChange(rt Route) { f(rt) }

// Option configures a Router.
type Option func(r *Router)

// WithRoutes sets the route table.  The default is DefaultRoutes().
func WithRoutes(rl *RouteList) Option {
	return func(r *Router) { r.routes = rl }
}

// WithEventEnv makes external changes run under env's lock and request a
// render when done.
func WithEventEnv(env EventEnv) Option {
	return func(r *Router) { r.eventEnv = env }
}

// WithLogger sets the logger.  The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) { r.logger = l }
}

// Router keeps the current Route in sync with a History.
// It is meant to be owned by the top-level component and handed to views;
// it is not safe for concurrent use without an EventEnv.
type Router struct {
	history  History
	routes   *RouteList
	eventEnv EventEnv
	logger   *slog.Logger

	current  Route
	handlers []*changeEntry
	unlisten func()
}

type changeEntry struct {
	h ChangeHandler
}

// New returns a new Router over h.  The current location is parsed once
// here, so Current is valid before any navigation happens.
func New(h History, opts ...Option) *Router {
	r := &Router{history: h}
	for _, o := range opts {
		o(r)
	}
	if r.routes == nil {
		r.routes = DefaultRoutes()
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.current = r.routes.Parse(h.Path())
	return r
}

// Start subscribes the router to the history so back/forward and other
// external changes update the current Route, and returns the initial Route.
// Calling Start on a started router has no effect.
func (r *Router) Start() Route {
	if r.unlisten != nil {
		return r.current
	}
	r.current = r.routes.Parse(r.history.Path())
	r.unlisten = r.history.Listen(r.externalChange)
	r.logger.Debug("router started", "path", r.history.Path(), "route", r.current.String())
	return r.current
}

// Stop releases the history subscription made by Start.
func (r *Router) Stop() {
	if r.unlisten == nil {
		return
	}
	r.unlisten()
	r.unlisten = nil
}

// Current returns the current Route.
func (r *Router) Current() Route {
	return r.current
}

// Routes returns the route table in use.
func (r *Router) Routes() *RouteList {
	return r.routes
}

// Path returns the location the history is currently at.
func (r *Router) Path() string {
	return r.history.Path()
}

// Navigate goes to rt, pushing one history entry (or replacing the current
// one with NavReplace).  Navigating to the current location creates no entry.
// A route that has no canonical path (a note with a non-numeric param)
// navigates to the fallback view instead.
func (r *Router) Navigate(rt Route, opts ...NavigatorOpt) {

	p, err := r.routes.PathFor(rt)
	if err != nil {
		r.logger.Warn("route has no canonical path, using fallback", "route", rt.String(), "error", err)
		p, err = r.routes.PathFor(Route{Name: r.routes.Fallback()})
		if err != nil {
			p = "/"
		}
	}

	next := r.routes.Parse(p)

	if p == r.history.Path() {
		r.current = next
		return
	}

	if navOpts(opts).has(NavReplace) {
		r.history.Replace(p, next.state())
	} else {
		r.history.Push(p, next.state())
	}
	r.current = next

	r.logger.Debug("navigated", "path", p, "route", next.String(), "replace", navOpts(opts).has(NavReplace))
}

// Redirect is Navigate with NavReplace, so the user cannot go back to the
// location being left.
func (r *Router) Redirect(rt Route) {
	r.Navigate(rt, NavReplace)
}

// GoBack pops one history entry.  Forward navigation stays available.
func (r *Router) GoBack() {
	r.history.Back()
}

// GoForward moves one entry forward in history, if there is one.
func (r *Router) GoForward() {
	r.history.Forward()
}

// OnExternalChange registers h to be called with the freshly parsed Route
// whenever the location changes outside of Navigate.  The returned release
// removes the registration and may be called more than once.
// Handlers are only called while the router is started.
func (r *Router) OnExternalChange(h ChangeHandler) (release func()) {
	e := &changeEntry{h: h}
	r.handlers = append(r.handlers, e)
	return func() {
		for i, e2 := range r.handlers {
			if e2 == e {
				r.handlers = append(r.handlers[:i], r.handlers[i+1:]...)
				return
			}
		}
	}
}

// Inject hands c the router and current Route if it implements
// NavigatorSetter and/or RouteSetter.
func (r *Router) Inject(c interface{}) {
	if ns, ok := c.(NavigatorSetter); ok {
		ns.NavigatorSet(r)
	}
	if rs, ok := c.(RouteSetter); ok {
		rs.RouteSet(r.current)
	}
}

// Actions returns the named navigation wrappers bound to r.
func (r *Router) Actions() Actions {
	return Actions{Nav: r}
}

func (r *Router) externalChange(path string) {

	rt := r.routes.Parse(path)

	if r.eventEnv != nil {
		r.eventEnv.Lock()
		defer r.eventEnv.UnlockRender()
	}

	r.current = rt
	r.logger.Debug("external location change", "path", path, "route", rt.String())

	hs := append([]*changeEntry(nil), r.handlers...)
	for _, e := range hs {
		e.h.RouteChange(rt)
	}
}
