package rgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lobsternotes/lnrouter"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("<div></div>"), 0644))
	}
}

func TestDefaultViewFunc(t *testing.T) {
	tests := []struct {
		in   string
		want lnrouter.ViewName
	}{
		{"index.vugu", lnrouter.ViewHome},
		{"create-account.vugu", lnrouter.ViewAccount},
		{"note.vugu", lnrouter.ViewNote},
		{"dashboard.vugu", lnrouter.ViewDashboard},
		{"page-a.vugu", lnrouter.ViewName("page-a")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultViewFunc(tt.in))
		})
	}
}

func TestViews(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "index.vugu", "note.vugu", "create-account.vugu", "list.vugu", "README.md")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "search.vugu"), 0755))

	views, err := New().SetDir(dir).Views()
	require.NoError(t, err)

	assert.Equal(t, []View{
		{Name: lnrouter.ViewAccount, FileName: "create-account.vugu", StructName: "CreateAccount"},
		{Name: lnrouter.ViewHome, FileName: "index.vugu", StructName: "Index"},
		{Name: lnrouter.ViewList, FileName: "list.vugu", StructName: "List"},
		{Name: lnrouter.ViewNote, FileName: "note.vugu", StructName: "Note"},
	}, views)
}

func TestViewsUnknownName(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "index.vugu", "page1.vugu")

	_, err := New().SetDir(dir).Views()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page1.vugu")
}

func TestViewsManifest(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "landing.vugu", "signup.vugu", "layout.vugu", "users.vugu")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "views.yml"), []byte(`views:
  landing.vugu: home
  signup.vugu: account
exclude:
  - layout.vugu
`), 0644))

	views, err := New().SetDir(dir).SetManifest("views.yml").Views()
	require.NoError(t, err)

	got := map[lnrouter.ViewName]string{}
	for _, v := range views {
		got[v.Name] = v.FileName
	}
	assert.Equal(t, map[lnrouter.ViewName]string{
		lnrouter.ViewHome:    "landing.vugu",
		lnrouter.ViewAccount: "signup.vugu",
		lnrouter.ViewUsers:   "users.vugu",
	}, got)
}

func TestViewsManifestErrors(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "index.vugu")

	_, err := New().SetDir(dir).SetManifest("missing.yml").Views()
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yml"), []byte("views: [1, 2"), 0644))
	_, err = New().SetDir(dir).SetManifest("bad.yml").Views()
	assert.Error(t, err)
}

func TestViewsDuplicate(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "index.vugu", "home.vugu")

	_, err := New().SetDir(dir).Views()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"home"`)
}

func TestViewsIncludeFunc(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "index.vugu", "page1.vugu")

	views, err := New().SetDir(dir).
		SetIncludeFunc(func(fileName string) bool { return fileName == "index.vugu" }).
		Views()
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, lnrouter.ViewHome, views[0].Name)
}

func TestGenerate(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module rgentestfull\n\ngo 1.24\n"), 0644))
	dir := filepath.Join(root, "web-views")
	require.NoError(t, os.Mkdir(dir, 0755))
	writeFiles(t, dir, "index.vugu", "note.vugu")

	out, err := New().SetDir(dir).Generate()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, OutputFileName), out)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	src := string(b)

	assert.Contains(t, src, "package webviews\n")
	assert.Contains(t, src, `import "github.com/lobsternotes/lnrouter"`)
	assert.Contains(t, src, "generated view mappings for rgentestfull/web-views")
	assert.Contains(t, src, `"home": &Index{}`)
	assert.Contains(t, src, `"note": &Note{}`)
	assert.Contains(t, src, "func MakeViews() map[lnrouter.ViewName]interface{}")
}

func TestGeneratePackageName(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "index.vugu")

	out, err := New().SetDir(dir).SetPackageName("example.com/app/pages").Generate()
	require.NoError(t, err)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), "package pages\n")
}

func TestModulePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"module example.com/a\n", "example.com/a"},
		{"// comment\nmodule   example.com/b // trailing\n", "example.com/b"},
		{"module \"example.com/c\"\n", "example.com/c"},
		{"go 1.24\n", ""},
		{"modulex example.com/d\n", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, modulePath([]byte(tt.in)), tt.in)
	}
}
