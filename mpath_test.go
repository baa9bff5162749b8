package lnrouter

import (
	"reflect"
	"testing"
)

func TestMPathParse(t *testing.T) {

	var tlist = []struct {
		in  string
		out mpath
	}{
		{"/", mpath{"/"}},
		{"/:p1", mpath{"/", ":p1"}},
		{"/:p1/", mpath{"/", ":p1", "/"}},
		{"/:p1/test", mpath{"/", ":p1", "/test"}},
		{"/:p1/test/:p2", mpath{"/", ":p1", "/test/", ":p2"}},
		{"/:p1/:p2", mpath{"/", ":p1", "/", ":p2"}},
		{"/a/b", mpath{"/a/b"}},
		{"/note/:id", mpath{"/note/", ":id"}},
	}

	for _, ti := range tlist {
		t.Run(ti.in, func(t *testing.T) {
			mp, err := parseMpath(ti.in)
			if err != nil {
				t.Error(err)
			}
			if !reflect.DeepEqual(ti.out, mp) {
				t.Errorf("expected %#v, got %#v", ti.out, mp)
			}
		})
	}

}

func TestMPathParseInvalid(t *testing.T) {

	for _, in := range []string{
		"",
		"note",
		"/:",
		"/:/x",
		"/a:b",
		"/:id/:id",
	} {
		t.Run(in, func(t *testing.T) {
			if _, err := parseMpath(in); err == nil {
				t.Errorf("expected error for %q", in)
			}
		})
	}

}

func TestMPathMergeMatch(t *testing.T) {

	var tlist = []struct {
		inpath string
		mpath  mpath
		pvals  PathParamList
	}{
		{"/", mpath{"/"}, nil},
		{"/42", mpath{"/", ":id"}, PathParamList{{"id", "42"}}},
		{"/note/7", mpath{"/note/", ":id"}, PathParamList{{"id", "7"}}},
		{"/note/007", mpath{"/note/", ":id"}, PathParamList{{"id", "007"}}},
		{"/blah/1/2", mpath{"/blah/", ":id", "/", ":id2"}, PathParamList{{"id", "1"}, {"id2", "2"}}},
	}

	for _, ti := range tlist {
		t.Run(ti.inpath, func(t *testing.T) {
			pv, ok := ti.mpath.match(ti.inpath)
			if !ok {
				t.Errorf("got ok false")
			}
			if !reflect.DeepEqual(ti.pvals, pv) {
				t.Errorf("expected params %#v, got %#v", ti.pvals, pv)
			}
			p2, err := ti.mpath.merge(pv)
			if err != nil {
				t.Errorf("merge error: %v", err)
			}
			if p2 != ti.inpath {
				t.Errorf("expected p2 %#v, got %#v", ti.inpath, p2)
			}
		})
	}

}

func TestMPathMatchRejects(t *testing.T) {

	var tlist = []struct {
		inpath string
		mpath  mpath
	}{
		{"/somewhere", mpath{"/"}},
		{"/somewhere/here", mpath{"/somewhere"}},
		{"/somewhere/", mpath{"/somewhere"}},
		{"/elsewhere", mpath{"/somewhere"}},
		{"/note/", mpath{"/note/", ":id"}},
		{"/note/abc", mpath{"/note/", ":id"}},
		{"/note/12a", mpath{"/note/", ":id"}},
		{"/note/-1", mpath{"/note/", ":id"}},
		{"/note/1/2", mpath{"/note/", ":id"}},
		{"note/1", mpath{"/note/", ":id"}},
		{"", mpath{"/"}},
	}

	for _, ti := range tlist {
		t.Run(ti.inpath, func(t *testing.T) {
			if _, ok := ti.mpath.match(ti.inpath); ok {
				t.Errorf("expected %q not to match %q", ti.inpath, ti.mpath.String())
			}
		})
	}

}

func TestMPathMergeErrors(t *testing.T) {

	mp := mpath{"/note/", ":id"}

	p, err := mp.merge(nil)
	if err != errMissingParam {
		t.Errorf("expected errMissingParam, got %v", err)
	}
	if p != "/note/_" {
		t.Errorf("unexpected path %q", p)
	}

	p, err = mp.merge(PathParamList{{"id", "x1"}})
	if err != errBadParam {
		t.Errorf("expected errBadParam, got %v", err)
	}
	if p != "/note/_" {
		t.Errorf("unexpected path %q", p)
	}

}
