// Package rgen generates the view map of a package of Vugu components:
// one component per view, found by file name.
package rgen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/lobsternotes/lnrouter"
)

// OutputFileName is the name of the file Generate writes.
const OutputFileName = "0_views_vgen.go"

// New returns a new Generator instance.
func New() *Generator {
	return &Generator{}
}

// Generator performs view map generation on a given directory.
type Generator struct {
	dir          string // directory holding the components
	packageName  string // fully qualified package name corresponding to dir
	manifestPath string // optional YAML file of file name -> view overrides

	viewFunc    func(fileName string) lnrouter.ViewName // derives the view from the file name
	includeFunc func(fileName string) bool              // determines if a file should be included
}

// Manifest is the optional YAML file read by SetManifest.
//
//	views:
//	  signup.vugu: account
//	  landing.vugu: home
//	exclude:
//	  - layout.vugu
type Manifest struct {
	Views   map[string]string `yaml:"views"`
	Exclude []string          `yaml:"exclude"`
}

// View describes one generated entry.
type View struct {
	Name       lnrouter.ViewName
	FileName   string
	StructName string
}

// SetDir assigns the directory to generate in.
func (g *Generator) SetDir(dir string) *Generator {
	g.dir = dir
	return g
}

// SetPackageName sets the fully qualified package name that corresponds
// with the directory set with SetDir.  If unset it is guessed from go.mod.
func (g *Generator) SetPackageName(packageName string) *Generator {
	g.packageName = packageName
	return g
}

// SetManifest sets a YAML manifest whose entries override the view a file
// maps to.  A relative path is relative to the directory set by SetDir.
func (g *Generator) SetManifest(manifestPath string) *Generator {
	g.manifestPath = manifestPath
	return g
}

// SetViewFunc sets the function which maps a file name to a view.
// If not set, DefaultViewFunc will be used.
func (g *Generator) SetViewFunc(f func(fileName string) lnrouter.ViewName) *Generator {
	g.viewFunc = f
	return g
}

// SetIncludeFunc sets the function which determines which files are included in the view map.
// If not set, DefaultIncludeFunc will be used.
func (g *Generator) SetIncludeFunc(f func(fileName string) bool) *Generator {
	g.includeFunc = f
	return g
}

// DefaultViewFunc returns the file name with any suffix removed.  The
// special cases index.vugu and create-account.vugu return the home and
// account views.
func DefaultViewFunc(fileName string) lnrouter.ViewName {
	base := strings.TrimSuffix(fileName, path.Ext(fileName))
	switch base {
	case "index":
		return lnrouter.ViewHome
	case "create-account":
		return lnrouter.ViewAccount
	}
	return lnrouter.ViewName(base)
}

// DefaultIncludeFunc will return true for any file which ends with .vugu.
func DefaultIncludeFunc(fileName string) bool {
	return strings.HasSuffix(fileName, ".vugu")
}

// Views scans the directory and returns the entries Generate would write,
// sorted by view name.  A file that maps to an unknown view, or two files
// mapping to the same view, is an error.
func (g *Generator) Views() ([]View, error) {

	includeFunc := g.includeFunc
	if includeFunc == nil {
		includeFunc = DefaultIncludeFunc
	}
	viewFunc := g.viewFunc
	if viewFunc == nil {
		viewFunc = DefaultViewFunc
	}

	man, err := g.readManifest()
	if err != nil {
		return nil, err
	}
	excluded := make(map[string]bool, len(man.Exclude))
	for _, n := range man.Exclude {
		excluded[n] = true
	}

	des, err := os.ReadDir(g.dir)
	if err != nil {
		return nil, err
	}

	byView := make(map[lnrouter.ViewName]string)
	var ret []View
	for _, de := range des {
		fileName := de.Name()
		if de.IsDir() || excluded[fileName] || !includeFunc(fileName) {
			continue
		}

		name := viewFunc(fileName)
		if v, ok := man.Views[fileName]; ok {
			name = lnrouter.ViewName(v)
		}
		if !name.Known() {
			return nil, fmt.Errorf("file %q maps to unknown view %q", fileName, name)
		}
		if prev, ok := byView[name]; ok {
			return nil, fmt.Errorf("files %q and %q both map to view %q", prev, fileName, name)
		}
		byView[name] = fileName

		ret = append(ret, View{Name: name, FileName: fileName, StructName: structName(fileName)})
	}

	sort.Slice(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })
	return ret, nil
}

func (g *Generator) readManifest() (Manifest, error) {
	var man Manifest
	if g.manifestPath == "" {
		return man, nil
	}
	p := g.manifestPath
	if !filepath.IsAbs(p) {
		p = filepath.Join(g.dir, p)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return man, fmt.Errorf("reading manifest: %w", err)
	}
	if err := yaml.Unmarshal(b, &man); err != nil {
		return man, fmt.Errorf("parsing manifest %q: %w", p, err)
	}
	return man, nil
}

// Generate does the view map generation and returns the path of the file written.
func (g *Generator) Generate() (string, error) {

	// to keep our sanity we need to guarantee that g.dir is absolute
	dir, err := filepath.Abs(g.dir)
	if err != nil {
		return "", err
	}
	g.dir = dir

	// auto-detect g.packageName as needed
	if g.packageName == "" {
		g.packageName, err = guessImportPath(dir)
		if err != nil {
			return "", err
		}
	}

	views, err := g.Views()
	if err != nil {
		return "", err
	}

	src, err := g.render(views)
	if err != nil {
		return "", err
	}

	out := filepath.Join(g.dir, OutputFileName)
	if err := os.WriteFile(out, src, 0644); err != nil {
		return "", err
	}
	return out, nil
}

var viewsTmpl = template.Must(template.New(OutputFileName).Parse(`package {{.LocalPackage}}

// WARNING: This file was generated by lnrouter/rgen. Do not modify.

import "github.com/lobsternotes/lnrouter"

// vgViewMap is the generated view mappings for {{.PackageName}}.
// The value is an instance of the component that renders the view.
var vgViewMap = map[lnrouter.ViewName]interface{}{
{{range .Views}}	{{printf "%q" .Name}}: &{{.StructName}}{}, // {{.FileName}}
{{end}}}

// MakeViews returns the views of this package.
func MakeViews() map[lnrouter.ViewName]interface{} {
	ret := make(map[lnrouter.ViewName]interface{}, len(vgViewMap))
	for k, v := range vgViewMap {
		ret[k] = v
	}
	return ret
}
`))

func (g *Generator) render(views []View) ([]byte, error) {
	cm := map[string]interface{}{
		"LocalPackage": localPackage(g.packageName),
		"PackageName":  g.packageName,
		"Views":        views,
	}

	var buf bytes.Buffer
	if err := viewsTmpl.Execute(&buf, cm); err != nil {
		return nil, err
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return src, nil
}

// localPackage is the package clause name for an import path.
func localPackage(importPath string) string {
	base := path.Base(importPath)
	base = strings.NewReplacer("-", "", ".", "").Replace(base)
	if base == "" || base == "/" {
		return "views"
	}
	return base
}

func structName(s string) string {
	return fnameToGoTypeName(s)
}

// fnameToGoTypeName transforms a file name the same way vugu does.
func fnameToGoTypeName(s string) string {
	s = strings.Split(s, ".")[0] // remove file extension if present
	parts := strings.Split(s, "-")
	for i := range parts {
		p := parts[i]
		if len(p) > 0 {
			p = strings.ToUpper(p[:1]) + p[1:]
		}
		parts[i] = p
	}
	return strings.Join(parts, "")
}

func guessImportPath(dir string) (string, error) {

	after := ""
	lastDir := dir

	for {
		f, err := os.Open(filepath.Join(dir, "go.mod"))
		if err == nil {
			defer f.Close()
			ret, err := readModuleEntry(f)
			return ret + after, err
		}

		after = "/" + filepath.Base(dir) + after

		lastDir = dir
		dir, err = filepath.Abs(filepath.Join(dir, ".."))
		if err != nil {
			return "", err
		}

		if dir == lastDir { // we hit the root dir
			return "", fmt.Errorf("no go.mod file found, cannot guess import path")
		}
	}

}

func readModuleEntry(r io.Reader) (string, error) {

	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	ret := modulePath(b)
	if ret == "" {
		return "", errors.New("unable to determine module path from go.mod")
	}

	return ret, nil
}

// modulePath returns the module path from the gomod file text.
// If it cannot find a module path, it returns an empty string.
// It is tolerant of unrelated problems in the go.mod file.
func modulePath(mod []byte) string {
	for len(mod) > 0 {
		line := mod
		mod = nil
		if i := bytes.IndexByte(line, '\n'); i >= 0 {
			line, mod = line[:i], line[i+1:]
		}
		if i := bytes.Index(line, slashSlash); i >= 0 {
			line = line[:i]
		}
		line = bytes.TrimSpace(line)
		if !bytes.HasPrefix(line, moduleStr) {
			continue
		}
		line = line[len(moduleStr):]
		n := len(line)
		line = bytes.TrimSpace(line)
		if len(line) == n || len(line) == 0 {
			continue
		}

		if line[0] == '"' || line[0] == '`' {
			p, err := strconv.Unquote(string(line))
			if err != nil {
				return "" // malformed quoted string or multiline module path
			}
			return p
		}

		return string(line)
	}
	return "" // missing module path
}

var (
	slashSlash = []byte("//")
	moduleStr  = []byte("module")
)
