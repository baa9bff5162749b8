package lnrouter

import "strconv"

// ViewName identifies one of the views the application can display.
type ViewName string

// The closed set of views.
const (
	ViewHome      ViewName = "home"
	ViewList      ViewName = "list"
	ViewNote      ViewName = "note"
	ViewDashboard ViewName = "dashboard"
	ViewSearch    ViewName = "search"
	ViewLogin     ViewName = "login"
	ViewAccount   ViewName = "account"
	ViewUsers     ViewName = "users"
	ViewNotes     ViewName = "notes"
)

// ViewNames returns every ViewName in table order.
func ViewNames() []ViewName {
	return []ViewName{
		ViewHome,
		ViewList,
		ViewNote,
		ViewDashboard,
		ViewSearch,
		ViewLogin,
		ViewAccount,
		ViewUsers,
		ViewNotes,
	}
}

// Known reports whether v is one of the defined views.
func (v ViewName) Known() bool {
	for _, n := range ViewNames() {
		if n == v {
			return true
		}
	}
	return false
}

// Route is the parsed form of a location: which view is showing and,
// for ViewNote only, the resource identifier.
// Routes are values; navigation replaces the current Route, it never
// modifies it.
type Route struct {
	Name  ViewName
	Param string
}

// HomeRoute is the route every unrecognized location maps to.
var HomeRoute = Route{Name: ViewHome}

// NoteRoute returns the route for the note with the given resource id.
func NoteRoute(id int64) Route {
	return Route{Name: ViewNote, Param: strconv.FormatInt(id, 10)}
}

// ResourceID returns the numeric resource id of a note route.
// ok is false for other views or when Param does not fit an int64.
func (r Route) ResourceID() (id int64, ok bool) {
	if r.Name != ViewNote || !isDigits(r.Param) {
		return 0, false
	}
	id, err := strconv.ParseInt(r.Param, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (r Route) String() string {
	if r.Param == "" {
		return string(r.Name)
	}
	return string(r.Name) + "(" + r.Param + ")"
}

// state is the object stored alongside a history entry.
func (r Route) state() map[string]interface{} {
	st := map[string]interface{}{"route": string(r.Name)}
	if r.Param != "" {
		st["id"] = r.Param
	}
	return st
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
