package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "lobster version "+Version)
}

func TestRouteLocations(t *testing.T) {
	out, err := execute(t, "route", "/note/42", "/notes", "/nope", "/note/x")
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n"))
	require.Len(t, lines, 5)
	assert.Contains(t, string(lines[1]), "note(42)")
	assert.Contains(t, string(lines[1]), "/note/42")
	assert.Contains(t, string(lines[2]), "/notes")
	assert.Contains(t, string(lines[3]), "home")
	assert.Contains(t, string(lines[4]), "home")
}

func TestRouteTable(t *testing.T) {
	out, err := execute(t, "route", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "/note/:id")
	assert.Contains(t, out, "/create-account")
}

func TestGenViews(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.vugu"), []byte("<div></div>"), 0644))

	out, err := execute(t, "gen-views", "-p", "example.com/app/pages", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "0_views_vgen.go")

	_, err = os.Stat(filepath.Join(dir, "0_views_vgen.go"))
	assert.NoError(t, err)
}

func TestGenViewsPackageWithManyDirs(t *testing.T) {
	_, err := execute(t, "gen-views", "-p", "x", "a", "b")
	assert.Error(t, err)
}
