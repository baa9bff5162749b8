// Package tui is the terminal front end.  A Router over an in-memory
// history decides which screen is showing; screens load their own data.
package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lobsternotes/lnrouter"
	"github.com/lobsternotes/lnrouter/internal/api"
	"github.com/lobsternotes/lnrouter/internal/views"
)

// Options configures a Model.
type Options struct {
	User    string        // signed-in user name; empty means no account yet
	UserID  int64         // backend id of User; when set the dashboard shows the courses they teach
	Timeout time.Duration // per request; zero means 10s
	Logger  *slog.Logger
}

// accountCreatedMsg reports the result of the account form.
type accountCreatedMsg struct {
	name string
	id   int64
	err  error
}

// noteSavedMsg reports the result of the note form.
type noteSavedMsg struct {
	id  int64
	err error
}

// composeStep is the field of the note form being typed.
type composeStep int

const (
	composeNone composeStep = iota
	composeTitle
	composeBody
)

// Model is the bubbletea model of the terminal front end.
type Model struct {
	router  *lnrouter.Router
	actions lnrouter.Actions
	keys    KeyMap
	screens *views.Registry[screen]
	ld      loader
	logger  *slog.Logger

	input      textinput.Model
	typing     bool
	query      string
	compose    composeStep
	draftTitle string

	user   string
	userID int64
	status string
	shown  lnrouter.Route
	width  int

	release func()
}

// New returns a Model driving r.  r must have been started.
// Call Close when the program exits.
func New(r *lnrouter.Router, b Backend, opts Options) *Model {

	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	m := &Model{
		router:  r,
		actions: r.Actions(),
		keys:    DefaultKeyMap(),
		ld:      loader{backend: b, timeout: opts.Timeout},
		logger:  opts.Logger,
		input:   textinput.New(),
		user:    opts.User,
		userID:  opts.UserID,
	}
	m.input.CharLimit = 120
	m.screens = m.buildScreens()

	m.release = r.OnExternalChange(lnrouter.ChangeHandlerFunc(func(rt lnrouter.Route) {
		m.status = "moved to " + r.Path()
		m.logger.Debug("history moved", "route", rt.String())
	}))

	return m
}

// Close releases the router registration made by New.
func (m *Model) Close() {
	if m.release != nil {
		m.release()
		m.release = nil
	}
}

func (m *Model) buildScreens() *views.Registry[screen] {
	reg := views.NewRegistry[screen]()

	reg.Register(lnrouter.ViewHome, &textScreen{
		name: "Lobster Notes",
		body: "Save notes and resources, browse what others shared.\n\n" +
			"l  all resources    n  my notes    /  search\n" +
			"d  dashboard        u  users       a  create account",
	})
	reg.Register(lnrouter.ViewList, &resourceList{
		name:  "All Resources",
		empty: "No resources yet.",
		ld:    m.ld,
		fetch: func(ctx context.Context, b Backend, _ string) ([]api.Resource, error) {
			return b.ListResources(ctx)
		},
	})
	reg.Register(lnrouter.ViewNotes, &resourceList{
		name:  "My Notes",
		empty: "You have not saved any notes. Press c to write one.",
		ld:    m.ld,
		arg:   func() string { return m.user },
		fetch: func(ctx context.Context, b Backend, user string) ([]api.Resource, error) {
			all, err := b.ListResources(ctx)
			if err != nil {
				return nil, err
			}
			var mine []api.Resource
			for _, r := range all {
				if strings.EqualFold(r.Author, user) {
					mine = append(mine, r)
				}
			}
			return mine, nil
		},
	})
	reg.Register(lnrouter.ViewSearch, &resourceList{
		name:  "Search",
		empty: "Type a query and press enter.",
		ld:    m.ld,
		arg:   func() string { return m.query },
		fetch: func(ctx context.Context, b Backend, q string) ([]api.Resource, error) {
			return b.SearchResources(ctx, q)
		},
	})
	reg.Register(lnrouter.ViewNote, &noteScreen{ld: m.ld})
	reg.Register(lnrouter.ViewDashboard, &courseScreen{
		ld:     m.ld,
		profID: func() int64 { return m.userID },
	})
	reg.Register(lnrouter.ViewUsers, &userScreen{ld: m.ld})
	reg.Register(lnrouter.ViewLogin, &textScreen{
		name: "Login",
		body: "Sign-in happens in the browser front end.\nPress a to create an account instead.",
	})
	reg.Register(lnrouter.ViewAccount, &textScreen{
		name: "Create Your Account",
		body: "Enter your name and press enter.",
	})

	return reg
}

// requiresAccount reports whether a view needs a signed-in user.
func requiresAccount(v lnrouter.ViewName) bool {
	return v == lnrouter.ViewNotes || v == lnrouter.ViewDashboard
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.show(m.router.Current())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case loadedMsg:
		if msg.route != m.shown {
			return m, nil
		}
		if msg.err != nil {
			m.logger.Warn("view data load failed", "route", msg.route.String(), "error", msg.err)
		}
		m.screens.Resolve(msg.route).loaded(msg)
		return m, nil

	case accountCreatedMsg:
		if msg.err != nil {
			m.status = "could not create account: " + msg.err.Error()
			return m, m.focusInput()
		}
		m.user = msg.name
		m.userID = msg.id
		m.status = "welcome, " + msg.name
		m.actions.OpenNotes()
		return m, m.sync()

	case noteSavedMsg:
		if msg.err != nil {
			m.status = "could not save note: " + msg.err.Error()
			return m, nil
		}
		m.status = "note saved"
		if msg.id > 0 {
			m.actions.OpenNote(msg.id)
			return m, m.sync()
		}
		return m, m.screens.Resolve(m.shown).enter(m.shown)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := m.keys

	if key.Matches(msg, k.ForceQuit) {
		return tea.Quit
	}

	if m.typing {
		switch {
		case key.Matches(msg, k.Cancel):
			m.typing = false
			m.compose = composeNone
			m.input.Blur()
			return nil
		case key.Matches(msg, k.Submit):
			return m.submit()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}

	m.status = ""
	scr := m.screens.Resolve(m.shown)

	switch {
	case key.Matches(msg, k.Quit):
		return tea.Quit
	case key.Matches(msg, k.Back):
		if d, ok := scr.(drillScreen); ok && d.back() {
			return nil
		}
		m.actions.Back()
	case key.Matches(msg, k.Forward):
		m.router.GoForward()
	case key.Matches(msg, k.Up):
		scr.move(-1)
	case key.Matches(msg, k.Down):
		scr.move(1)
	case key.Matches(msg, k.Enter):
		if rt, ok := scr.selected(); ok {
			m.router.Navigate(rt)
		} else if d, ok := scr.(drillScreen); ok {
			if cmd, ok := d.open(); ok {
				return cmd
			}
		} else if m.shown.Name == lnrouter.ViewSearch || m.shown.Name == lnrouter.ViewAccount {
			return m.focusInput()
		}
	case key.Matches(msg, k.Home):
		m.actions.GoHome()
	case key.Matches(msg, k.List):
		m.actions.OpenList()
	case key.Matches(msg, k.Notes):
		m.actions.OpenNotes()
	case key.Matches(msg, k.Dashboard):
		m.actions.OpenDashboard()
	case key.Matches(msg, k.Users):
		m.actions.GoUsers()
	case key.Matches(msg, k.Account):
		m.actions.GoAccount()
	case key.Matches(msg, k.Login):
		m.actions.GoLogin()
	case key.Matches(msg, k.NewNote):
		if m.shown.Name == lnrouter.ViewNotes {
			return m.startCompose()
		}
	case key.Matches(msg, k.Search):
		if m.shown.Name == lnrouter.ViewSearch {
			return m.focusInput()
		}
		m.actions.OpenSearch()
	}

	return m.sync()
}

// sync shows the screen for the router's current route if it changed.
func (m *Model) sync() tea.Cmd {
	if cur := m.router.Current(); cur != m.shown {
		return m.show(cur)
	}
	return nil
}

func (m *Model) show(rt lnrouter.Route) tea.Cmd {

	if m.user == "" && requiresAccount(rt.Name) {
		m.router.Redirect(lnrouter.Route{Name: lnrouter.ViewAccount})
		rt = m.router.Current()
		m.status = "create an account first"
	}

	m.shown = rt
	m.typing = false
	m.compose = composeNone
	m.input.Blur()

	var cmds []tea.Cmd
	switch rt.Name {
	case lnrouter.ViewSearch:
		m.input.Placeholder = "Search notes..."
		m.input.SetValue(m.query)
		cmds = append(cmds, m.focusInput())
	case lnrouter.ViewAccount:
		m.input.Placeholder = "Name"
		m.input.SetValue("")
		cmds = append(cmds, m.focusInput())
	}

	m.logger.Debug("showing view", "route", rt.String(), "path", m.router.Path())
	cmds = append(cmds, m.screens.Resolve(rt).enter(rt))

	return tea.Batch(cmds...)
}

func (m *Model) focusInput() tea.Cmd {
	m.typing = true
	return m.input.Focus()
}

func (m *Model) startCompose() tea.Cmd {
	m.compose = composeTitle
	m.draftTitle = ""
	m.input.Placeholder = "Title"
	m.input.SetValue("")
	return m.focusInput()
}

func (m *Model) submit() tea.Cmd {
	m.typing = false
	m.input.Blur()

	if m.compose != composeNone {
		return m.submitNote()
	}

	switch m.shown.Name {
	case lnrouter.ViewSearch:
		m.query = strings.TrimSpace(m.input.Value())
		return m.screens.Resolve(m.shown).enter(m.shown)
	case lnrouter.ViewAccount:
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			m.status = "a name is required"
			return m.focusInput()
		}
		ld := m.ld
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), ld.timeout)
			defer cancel()
			c, err := ld.backend.CreateUser(ctx, api.NewUser{Name: name})
			if err != nil {
				return accountCreatedMsg{name: name, err: err}
			}
			return accountCreatedMsg{name: name, id: c.UserID}
		}
	}
	return nil
}

func (m *Model) submitNote() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())

	if m.compose == composeTitle {
		if text == "" {
			m.status = "a title is required"
			return m.focusInput()
		}
		m.draftTitle = text
		m.compose = composeBody
		m.input.Placeholder = "Note text"
		m.input.SetValue("")
		return m.focusInput()
	}

	m.compose = composeNone
	in := api.NewResource{
		Author: m.user,
		Topic:  m.draftTitle,
		Format: api.FormatNote,
		Body:   text,
	}
	ld := m.ld
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ld.timeout)
		defer cancel()
		c, err := ld.backend.CreateResource(ctx, in)
		if err != nil {
			return noteSavedMsg{err: err}
		}
		return noteSavedMsg{id: c.ResourceID}
	}
}

// View implements tea.Model.
func (m *Model) View() string {

	scr := m.screens.Resolve(m.shown)

	header := brandStyle.Render("Lobster Notes") + " " + locationStyle.Render(m.router.Path())
	if m.user != "" {
		header += " " + dimStyle.Render("("+m.user+")")
	}

	parts := []string{header, "", titleStyle.Render(scr.title())}
	if m.compose != composeNone || m.shown.Name == lnrouter.ViewSearch || m.shown.Name == lnrouter.ViewAccount {
		parts = append(parts, m.input.View(), "")
	}
	parts = append(parts, scr.view())
	if m.status != "" {
		parts = append(parts, "", dimStyle.Render(m.status))
	}
	parts = append(parts, helpStyle.Render(m.helpView()))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) helpView() string {
	var items []string
	for _, b := range m.keys.helpLine() {
		h := b.Help()
		items = append(items, h.Key+" "+h.Desc)
	}
	return strings.Join(items, " • ")
}

// Shown returns the route of the screen currently displayed.
func (m *Model) Shown() lnrouter.Route { return m.shown }
