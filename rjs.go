package lnrouter

import (
	"strings"

	"github.com/vugu/vugu/js"
)

// InBrowser reports whether a browser (js) environment is available.
func InBrowser() bool {
	return js.Global().Truthy()
}

// BrowserHistory implements History on window.history.
// Outside of a browser every method is a no-op and Path returns "/".
type BrowserHistory struct {
	useFragment bool
}

// NewBrowserHistory returns a BrowserHistory.  If useFragment is set the
// fragment part of the URL (after the "#") is used as the path.  This can
// be useful for applications which are served statically and do not have
// the ability to handle URL routing on the server side.
func NewBrowserHistory(useFragment bool) *BrowserHistory {
	return &BrowserHistory{useFragment: useFragment}
}

func (h *BrowserHistory) historyValue() (js.Value, bool) {
	g := js.Global()
	if !g.Truthy() {
		return js.Value{}, false
	}
	return g.Get("window").Get("history"), true
}

func (h *BrowserHistory) urlFor(path string) string {
	if h.useFragment {
		return "#" + path
	}
	return path
}

// Path implements History.
func (h *BrowserHistory) Path() string {

	g := js.Global()
	if !g.Truthy() {
		return "/"
	}

	loc := g.Get("window").Get("location")
	if h.useFragment {
		p := strings.TrimPrefix(loc.Get("hash").String(), "#")
		if p == "" {
			return "/"
		}
		return p
	}

	return loc.Get("pathname").String()
}

// Push implements History using history.pushState.
func (h *BrowserHistory) Push(path string, state map[string]interface{}) {
	if hv, ok := h.historyValue(); ok {
		hv.Call("pushState", jsState(state), "", h.urlFor(path))
	}
}

// Replace implements History using history.replaceState.
func (h *BrowserHistory) Replace(path string, state map[string]interface{}) {
	if hv, ok := h.historyValue(); ok {
		hv.Call("replaceState", jsState(state), "", h.urlFor(path))
	}
}

// Back implements History.  The browser fires popstate once the previous
// entry is current, which is when listeners hear about it.
func (h *BrowserHistory) Back() {
	if hv, ok := h.historyValue(); ok {
		hv.Call("back")
	}
}

// Forward implements History.
func (h *BrowserHistory) Forward() {
	if hv, ok := h.historyValue(); ok {
		hv.Call("forward")
	}
}

// Listen implements History by adding a popstate listener to window.
// The returned release removes the listener and releases the js.Func.
func (h *BrowserHistory) Listen(f func(path string)) (release func()) {

	g := js.Global()
	if !g.Truthy() {
		return func() {}
	}

	jf := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		f(h.Path())
		return nil
	})
	g.Get("window").Call("addEventListener", "popstate", jf)

	released := false
	return func() {
		if released {
			return
		}
		released = true
		g.Get("window").Call("removeEventListener", "popstate", jf)
		jf.Release()
	}
}

func jsState(state map[string]interface{}) interface{} {
	if state == nil {
		return nil
	}
	return state
}
