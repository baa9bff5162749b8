package lnrouter

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocationKnown(t *testing.T) {

	var tlist = []struct {
		path string
		want Route
	}{
		{"/", Route{Name: ViewHome}},
		{"/list", Route{Name: ViewList}},
		{"/notes", Route{Name: ViewNotes}},
		{"/note/42", Route{Name: ViewNote, Param: "42"}},
		{"/note/0", Route{Name: ViewNote, Param: "0"}},
		{"/note/00017", Route{Name: ViewNote, Param: "00017"}},
		{"/dashboard", Route{Name: ViewDashboard}},
		{"/search", Route{Name: ViewSearch}},
		{"/login", Route{Name: ViewLogin}},
		{"/create-account", Route{Name: ViewAccount}},
		{"/users", Route{Name: ViewUsers}},
	}

	for _, ti := range tlist {
		t.Run(ti.path, func(t *testing.T) {
			assert.Equal(t, ti.want, ParseLocation(ti.path))
		})
	}

}

func TestParseLocationUnknownIsHome(t *testing.T) {

	for _, p := range []string{
		"",
		"/nothing",
		"/dashboard/",
		"/Dashboard",
		"/dashboard?x=1",
		"/login#top",
		"/note",
		"/note/",
		"/note/abc",
		"/note/4a2",
		"/note/42/edit",
		"/note/ 42",
		"//",
		"/../dashboard",
		"dashboard",
		"/users/1",
		strings.Repeat("/x", 200),
		"\x00",
	} {
		t.Run(fmt.Sprintf("%q", p), func(t *testing.T) {
			assert.Equal(t, HomeRoute, ParseLocation(p))
		})
	}

}

func TestParseLocationLongDigits(t *testing.T) {
	n := strings.Repeat("9", 64)
	rt := ParseLocation("/note/" + n)
	assert.Equal(t, Route{Name: ViewNote, Param: n}, rt)

	_, ok := rt.ResourceID()
	assert.False(t, ok, "id does not fit an int64")
}

func TestRouteListRoundTrip(t *testing.T) {

	rl := DefaultRoutes()

	for _, v := range ViewNames() {
		t.Run(string(v), func(t *testing.T) {
			rt := Route{Name: v}
			if v == ViewNote {
				rt.Param = "42"
			}
			p, err := rl.PathFor(rt)
			require.NoError(t, err)
			assert.Equal(t, v, rl.Parse(p).Name)
			assert.Equal(t, rt, rl.Parse(p))
		})
	}

}

func TestRouteListCoversEveryView(t *testing.T) {
	var names []ViewName
	for _, e := range DefaultRoutes().Entries() {
		names = append(names, e.Name)
	}
	assert.ElementsMatch(t, ViewNames(), names)
}

func TestRouteListPathForErrors(t *testing.T) {

	rl := DefaultRoutes()

	_, err := rl.PathFor(Route{Name: "settings"})
	assert.True(t, errors.Is(err, ErrUnknownView))

	_, err = rl.PathFor(Route{Name: ViewNote})
	assert.True(t, errors.Is(err, ErrInvalidParam))

	_, err = rl.PathFor(Route{Name: ViewNote, Param: "abc"})
	assert.True(t, errors.Is(err, ErrInvalidParam))

	// params on views without one are not part of the path
	p, err := rl.PathFor(Route{Name: ViewDashboard, Param: "9"})
	require.NoError(t, err)
	assert.Equal(t, "/dashboard", p)

	c, err := rl.Canonical(Route{Name: ViewDashboard, Param: "9"})
	require.NoError(t, err)
	assert.Equal(t, Route{Name: ViewDashboard}, c)

}

func TestRouteListAdd(t *testing.T) {

	assert := assert.New(t)

	rl := NewRouteList(ViewHome)
	assert.NoError(rl.Add(ViewHome, "/"))
	assert.Error(rl.Add(ViewHome, "/home"), "duplicate view")
	assert.Error(rl.Add(ViewList, "list"), "pattern without leading slash")
	assert.Error(rl.Add(ViewNote, "/note/:a/:b"), "two params")

	assert.Panics(func() { rl.MustAdd(ViewHome, "/again") })

	// first match wins
	assert.NoError(rl.Add(ViewList, "/x"))
	assert.NoError(rl.Add(ViewNotes, "/x"))
	assert.Equal(Route{Name: ViewList}, rl.Parse("/x"))

	var zero RouteList
	assert.NoError(zero.Add(ViewLogin, "/login"))
	assert.Equal(Route{Name: ViewLogin}, zero.Parse("/login"))
	assert.Equal(Route{}, zero.Parse("/other"))

}

func TestRouteResourceID(t *testing.T) {

	id, ok := NoteRoute(42).ResourceID()
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok = Route{Name: ViewDashboard, Param: "42"}.ResourceID()
	assert.False(t, ok)

	assert.Equal(t, "note(42)", NoteRoute(42).String())
	assert.Equal(t, "home", HomeRoute.String())

}
