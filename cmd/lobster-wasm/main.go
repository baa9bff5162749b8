//go:build js && wasm

// Package main is the browser build: it routes over window.history and
// renders a minimal shell for the current view.
package main

import (
	"fmt"
	"html"
	"log/slog"
	"strings"
	"sync"

	"github.com/vugu/vugu/js"

	"github.com/lobsternotes/lnrouter"
)

var navLinks = []struct {
	label string
	rt    lnrouter.Route
}{
	{"Home", lnrouter.HomeRoute},
	{"All Resources", lnrouter.Route{Name: lnrouter.ViewList}},
	{"My Notes", lnrouter.Route{Name: lnrouter.ViewNotes}},
	{"Search", lnrouter.Route{Name: lnrouter.ViewSearch}},
	{"Dashboard", lnrouter.Route{Name: lnrouter.ViewDashboard}},
	{"Users", lnrouter.Route{Name: lnrouter.ViewUsers}},
	{"Login", lnrouter.Route{Name: lnrouter.ViewLogin}},
}

// env serializes router updates with rendering.
type env struct {
	mu     sync.Mutex
	render func()
}

func (e *env) Lock()       { e.mu.Lock() }
func (e *env) UnlockOnly() { e.mu.Unlock() }
func (e *env) UnlockRender() {
	e.mu.Unlock()
	e.render()
}

func main() {
	logger := slog.Default()

	useFragment := fragmentRouting()

	e := &env{}
	r := lnrouter.New(lnrouter.NewBrowserHistory(useFragment),
		lnrouter.WithEventEnv(e),
		lnrouter.WithLogger(logger))
	e.render = func() { render(r, useFragment) }

	rt := r.Start()
	defer r.Stop()
	logger.Info("browser router started", "route", rt.String(), "fragment", useFragment)

	click := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) == 0 {
			return nil
		}
		ev := args[0]
		a := ev.Get("target").Call("closest", "a[data-nav]")
		if !a.Truthy() {
			return nil
		}
		ev.Call("preventDefault")
		p := a.Call("getAttribute", "data-nav").String()

		e.Lock()
		r.Navigate(r.Routes().Parse(p))
		e.UnlockRender()
		return nil
	})
	defer click.Release()
	js.Global().Get("document").Call("addEventListener", "click", click)

	e.Lock()
	e.UnlockRender()

	select {}
}

// fragmentRouting reports whether locations live in the URL fragment.  The
// dev server's /config.js sets window.lobsterConfig from the use-fragment
// setting; without it a "#/" fragment decides.
func fragmentRouting() bool {
	w := js.Global().Get("window")
	if cfg := w.Get("lobsterConfig"); cfg.Truthy() {
		return cfg.Get("useFragment").Truthy()
	}
	return strings.HasPrefix(w.Get("location").Get("hash").String(), "#/")
}

func render(r *lnrouter.Router, useFragment bool) {
	cur := r.Current()

	var b strings.Builder
	b.WriteString(`<nav class="lobster-nav">`)
	for _, l := range navLinks {
		p, err := r.Routes().PathFor(l.rt)
		if err != nil {
			continue
		}
		href := p
		if useFragment {
			href = "#" + p
		}
		class := ""
		if l.rt.Name == cur.Name {
			class = ` class="active"`
		}
		fmt.Fprintf(&b, `<a href="%s" data-nav="%s"%s>%s</a> `,
			html.EscapeString(href), html.EscapeString(p), class, html.EscapeString(l.label))
	}
	b.WriteString(`</nav>`)
	fmt.Fprintf(&b, `<main data-view="%s"><h1>%s</h1><p>%s</p></main>`,
		html.EscapeString(string(cur.Name)), html.EscapeString(cur.String()), html.EscapeString(r.Path()))

	js.Global().Get("document").Get("body").Set("innerHTML", b.String())
}
