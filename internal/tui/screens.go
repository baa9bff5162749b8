package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lobsternotes/lnrouter"
	"github.com/lobsternotes/lnrouter/internal/api"
)

// Backend is the narrow REST contract the screens need.
type Backend interface {
	ListResources(ctx context.Context) ([]api.Resource, error)
	GetResource(ctx context.Context, id int64) (*api.Resource, error)
	SearchResources(ctx context.Context, q string) ([]api.Resource, error)
	CreateResource(ctx context.Context, in api.NewResource) (*api.Created, error)
	ListUsers(ctx context.Context) ([]api.User, error)
	CreateUser(ctx context.Context, in api.NewUser) (*api.Created, error)
	ListCourses(ctx context.Context) ([]api.Course, error)
	CourseRoster(ctx context.Context, courseID int64) ([]api.User, error)
	ProfessorCourses(ctx context.Context, profID int64) ([]api.Course, error)
}

// loadedMsg carries the result of a screen's data load.  route is the
// route the load was started for, so results for a screen the user has
// already left are dropped; seq numbers the loads of one screen, so only
// the latest is applied.
type loadedMsg struct {
	route     lnrouter.Route
	seq       int
	resources []api.Resource
	resource  *api.Resource
	users     []api.User
	courses   []api.Course
	err       error
}

// screen renders one view.  enter is called each time the router lands on
// the screen's view and returns the command that loads its data.  enter
// runs on the update loop; the command it returns must not read model state.
type screen interface {
	title() string
	enter(rt lnrouter.Route) tea.Cmd
	loaded(msg loadedMsg)
	move(delta int)
	selected() (lnrouter.Route, bool)
	view() string
}

// drillScreen is a screen with a nested level that is not a route of its
// own.  open descends into the selected item; back leaves the nested level
// and reports whether there was one.
type drillScreen interface {
	open() (tea.Cmd, bool)
	back() bool
}

type loader struct {
	backend Backend
	timeout time.Duration
}

func (l loader) cmd(rt lnrouter.Route, seq int, f func(ctx context.Context) loadedMsg) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
		defer cancel()
		msg := f(ctx)
		msg.route = rt
		msg.seq = seq
		return msg
	}
}

// loadState is embedded by screens that fetch.
type loadState struct {
	loading bool
	err     error
	seq     int
}

// begin starts a new load and returns its sequence number.  Results of
// earlier loads are ignored from here on.
func (s *loadState) begin() int {
	s.seq++
	s.loading = true
	s.err = nil
	return s.seq
}

// current reports whether msg answers the latest load.
func (s *loadState) current(msg loadedMsg) bool {
	return msg.seq == s.seq
}

// finish applies the outcome of the latest load.
func (s *loadState) finish(msg loadedMsg) {
	s.loading = false
	s.err = msg.err
}

func (s *loadState) status() (string, bool) {
	if s.loading {
		return dimStyle.Render("Loading..."), true
	}
	if s.err != nil {
		return errorStyle.Render("Error: " + s.err.Error()), true
	}
	return "", false
}

type cursor struct {
	pos int
}

// list renders lines with the selected one marked.
func (c *cursor) list(lines []string) string {
	var b strings.Builder
	for i, line := range lines {
		if i == c.pos {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (c *cursor) move(delta, n int) {
	c.pos += delta
	if c.pos >= n {
		c.pos = n - 1
	}
	if c.pos < 0 {
		c.pos = 0
	}
}

// resourceList is the list, notes and search screens.  arg, when set, is
// read once per enter and handed to fetch.
type resourceList struct {
	loadState
	cursor
	name  string
	empty string
	ld    loader
	arg   func() string
	fetch func(ctx context.Context, b Backend, arg string) ([]api.Resource, error)
	items []api.Resource
}

func (s *resourceList) title() string { return s.name }

func (s *resourceList) enter(rt lnrouter.Route) tea.Cmd {
	seq := s.begin()
	s.items = nil
	s.pos = 0
	arg := ""
	if s.arg != nil {
		arg = s.arg()
	}
	fetch, b := s.fetch, s.ld.backend
	return s.ld.cmd(rt, seq, func(ctx context.Context) loadedMsg {
		items, err := fetch(ctx, b, arg)
		return loadedMsg{resources: items, err: err}
	})
}

func (s *resourceList) loaded(msg loadedMsg) {
	if !s.current(msg) {
		return
	}
	s.finish(msg)
	s.items = msg.resources
}

func (s *resourceList) move(delta int) { s.cursor.move(delta, len(s.items)) }

func (s *resourceList) selected() (lnrouter.Route, bool) {
	if s.loading || s.pos >= len(s.items) {
		return lnrouter.Route{}, false
	}
	return lnrouter.NoteRoute(s.items[s.pos].ResourceID), true
}

func (s *resourceList) view() string {
	if st, ok := s.status(); ok {
		return st
	}
	if len(s.items) == 0 {
		return dimStyle.Render(s.empty)
	}
	lines := make([]string, len(s.items))
	for i, r := range s.items {
		lines[i] = fmt.Sprintf("%-8s %s  %s", r.Format, r.Title, dimStyle.Render(r.Author))
	}
	return s.list(lines)
}

// noteScreen shows one resource, fetched by the route's id.
type noteScreen struct {
	loadState
	ld  loader
	res *api.Resource
}

func (s *noteScreen) title() string { return "Note" }

func (s *noteScreen) enter(rt lnrouter.Route) tea.Cmd {
	seq := s.begin()
	s.res = nil
	id, ok := rt.ResourceID()
	if !ok {
		s.loading = false
		s.err = fmt.Errorf("resource %q not found", rt.Param)
		return nil
	}
	b := s.ld.backend
	return s.ld.cmd(rt, seq, func(ctx context.Context) loadedMsg {
		res, err := b.GetResource(ctx, id)
		return loadedMsg{resource: res, err: err}
	})
}

func (s *noteScreen) loaded(msg loadedMsg) {
	if !s.current(msg) {
		return
	}
	s.finish(msg)
	s.res = msg.resource
}

func (s *noteScreen) move(int) {}

func (s *noteScreen) selected() (lnrouter.Route, bool) { return lnrouter.Route{}, false }

func (s *noteScreen) view() string {
	if st, ok := s.status(); ok {
		return st
	}
	if s.res == nil {
		return dimStyle.Render("Nothing to show.")
	}
	r := s.res
	var b strings.Builder
	b.WriteString(titleStyle.Render(r.Title) + "\n")
	fmt.Fprintf(&b, "Author: %s\n", r.Author)
	fmt.Fprintf(&b, "Format: %s\n", r.Format)
	if r.Date != "" {
		fmt.Fprintf(&b, "Date:   %s\n", r.Date)
	}
	if r.Rating > 0 {
		fmt.Fprintf(&b, "Rating: %g/5\n", float64(r.Rating))
	}
	if l := r.Link(); l != "" {
		fmt.Fprintf(&b, "Link:   %s\n", l)
	}
	if t := r.Text(); t != "" {
		b.WriteString("\n" + t + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// courseScreen is the professor dashboard.  Opening a course shows its
// roster in place; back returns to the course list.
type courseScreen struct {
	loadState
	cursor
	ld     loader
	profID func() int64 // read once per enter; zero lists every course

	rt        lnrouter.Route
	courses   []api.Course
	course    *api.Course // roster being shown, nil on the course list
	coursePos int
	roster    []api.User
}

func (s *courseScreen) title() string {
	if s.course != nil {
		return "Roster: " + courseLabel(*s.course)
	}
	return "Professor Dashboard"
}

func (s *courseScreen) enter(rt lnrouter.Route) tea.Cmd {
	seq := s.begin()
	s.rt = rt
	s.courses = nil
	s.course = nil
	s.roster = nil
	s.pos = 0

	var id int64
	if s.profID != nil {
		id = s.profID()
	}
	b := s.ld.backend
	return s.ld.cmd(rt, seq, func(ctx context.Context) loadedMsg {
		var cs []api.Course
		var err error
		if id > 0 {
			cs, err = b.ProfessorCourses(ctx, id)
		} else {
			cs, err = b.ListCourses(ctx)
		}
		return loadedMsg{courses: cs, err: err}
	})
}

func (s *courseScreen) open() (tea.Cmd, bool) {
	if s.loading || s.course != nil || s.pos >= len(s.courses) {
		return nil, false
	}
	c := s.courses[s.pos]
	s.course = &c
	s.coursePos = s.pos
	s.pos = 0
	s.roster = nil

	seq := s.begin()
	b := s.ld.backend
	return s.ld.cmd(s.rt, seq, func(ctx context.Context) loadedMsg {
		us, err := b.CourseRoster(ctx, c.CourseID)
		return loadedMsg{users: us, err: err}
	}), true
}

func (s *courseScreen) back() bool {
	if s.course == nil {
		return false
	}
	s.course = nil
	s.roster = nil
	s.pos = s.coursePos
	s.seq++ // drop a roster still loading
	s.loading = false
	s.err = nil
	return true
}

func (s *courseScreen) loaded(msg loadedMsg) {
	if !s.current(msg) {
		return
	}
	s.finish(msg)
	if s.course != nil {
		s.roster = msg.users
		return
	}
	s.courses = msg.courses
}

func (s *courseScreen) move(delta int) {
	if s.course != nil {
		s.cursor.move(delta, len(s.roster))
		return
	}
	s.cursor.move(delta, len(s.courses))
}

func (s *courseScreen) selected() (lnrouter.Route, bool) { return lnrouter.Route{}, false }

func (s *courseScreen) view() string {
	if st, ok := s.status(); ok {
		return st
	}
	if s.course != nil {
		if len(s.roster) == 0 {
			return dimStyle.Render("No students enrolled.")
		}
		lines := make([]string, len(s.roster))
		for i, u := range s.roster {
			lines[i] = fmt.Sprintf("#%d %s", u.UserID, u.Name)
		}
		return s.list(lines)
	}
	if len(s.courses) == 0 {
		return dimStyle.Render("No courses found.")
	}
	lines := make([]string, len(s.courses))
	for i, c := range s.courses {
		lines[i] = courseLabel(c)
	}
	return s.list(lines)
}

func courseLabel(c api.Course) string {
	return fmt.Sprintf("%s %s  %s (%d)", c.Subject, c.CatalogNumber, c.Name, c.Year)
}

// userScreen lists accounts.
type userScreen struct {
	loadState
	cursor
	ld    loader
	users []api.User
}

func (s *userScreen) title() string { return "Users" }

func (s *userScreen) enter(rt lnrouter.Route) tea.Cmd {
	seq := s.begin()
	s.users = nil
	s.pos = 0
	b := s.ld.backend
	return s.ld.cmd(rt, seq, func(ctx context.Context) loadedMsg {
		us, err := b.ListUsers(ctx)
		return loadedMsg{users: us, err: err}
	})
}

func (s *userScreen) loaded(msg loadedMsg) {
	if !s.current(msg) {
		return
	}
	s.finish(msg)
	s.users = msg.users
}

func (s *userScreen) move(delta int) { s.cursor.move(delta, len(s.users)) }

func (s *userScreen) selected() (lnrouter.Route, bool) { return lnrouter.Route{}, false }

func (s *userScreen) view() string {
	if st, ok := s.status(); ok {
		return st
	}
	if len(s.users) == 0 {
		return dimStyle.Render("No users found.")
	}
	lines := make([]string, len(s.users))
	for i, u := range s.users {
		role := "Student"
		if u.IsProfessor {
			role = "Professor"
		}
		lines[i] = fmt.Sprintf("#%d %s  %s", u.UserID, u.Name, dimStyle.Render(role))
	}
	return s.list(lines)
}

// textScreen is a screen with fixed content and no data.
type textScreen struct {
	name string
	body string
}

func (s *textScreen) title() string                    { return s.name }
func (s *textScreen) enter(lnrouter.Route) tea.Cmd     { return nil }
func (s *textScreen) loaded(loadedMsg)                 {}
func (s *textScreen) move(int)                         {}
func (s *textScreen) selected() (lnrouter.Route, bool) { return lnrouter.Route{}, false }
func (s *textScreen) view() string                     { return s.body }
