package lnrouter

// NavigatorOpt is a marker interface to ensure that options to Navigator are passed intentionally.
type NavigatorOpt interface {
	IsNavigatorOpt()
}

type intNavigatorOpt int

// IsNavigatorOpt implements NavigatorOpt.
func (i intNavigatorOpt) IsNavigatorOpt() {}

var (
	// NavReplace will cause this navigation to replace the
	// current history entry rather than pushing to the stack.
	// Implemented using window.history.replaceState()
	NavReplace NavigatorOpt = intNavigatorOpt(1)
)

type navOpts []NavigatorOpt

func (no navOpts) has(o NavigatorOpt) bool {
	for _, o2 := range no {
		if o == o2 {
			return true
		}
	}
	return false
}

// Navigator is the set of navigation actions views are handed.
type Navigator interface {
	Navigate(rt Route, opts ...NavigatorOpt)
	GoBack()
}

// NavigatorRef can be embedded in a component so Router.Inject can give it a Navigator.
type NavigatorRef struct {
	Navigator // embed Navigator
}

// NavigatorSet implements NavigatorSetter.
func (h *NavigatorRef) NavigatorSet(o Navigator) {
	h.Navigator = o
}

// NavigatorSetter is implemented by components that want a Navigator.
type NavigatorSetter interface {
	NavigatorSet(Navigator)
}

// Actions wraps a Navigator with one method per view, so views can be
// handed callbacks like "open note N" without building Routes themselves.
type Actions struct {
	Nav Navigator
}

// OpenNote navigates to the note with the given resource id.
func (a Actions) OpenNote(id int64) { a.Nav.Navigate(NoteRoute(id)) }

// OpenDashboard navigates to the professor dashboard.
func (a Actions) OpenDashboard() { a.Nav.Navigate(Route{Name: ViewDashboard}) }

// OpenSearch navigates to the search view.
func (a Actions) OpenSearch() { a.Nav.Navigate(Route{Name: ViewSearch}) }

// OpenList navigates to the resource list.
func (a Actions) OpenList() { a.Nav.Navigate(Route{Name: ViewList}) }

// OpenNotes navigates to the user's notes.
func (a Actions) OpenNotes() { a.Nav.Navigate(Route{Name: ViewNotes}) }

// GoHome navigates to the home page.
func (a Actions) GoHome() { a.Nav.Navigate(HomeRoute) }

// GoLogin navigates to the login page.
func (a Actions) GoLogin() { a.Nav.Navigate(Route{Name: ViewLogin}) }

// GoAccount navigates to account creation.
func (a Actions) GoAccount() { a.Nav.Navigate(Route{Name: ViewAccount}) }

// GoUsers navigates to the user list.
func (a Actions) GoUsers() { a.Nav.Navigate(Route{Name: ViewUsers}) }

// Back pops one history entry.
func (a Actions) Back() { a.Nav.GoBack() }
