package lnrouter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// parseMpath will split p into appropriate parts for an mpath.
// After parsing each element of mpath will either be a static
// string or a parameter starting with ":".
// Patterns must start with "/" and parameters must be named and
// occupy a whole path segment.
func parseMpath(p string) (mpath, error) {

	if !strings.HasPrefix(p, "/") {
		return nil, fmt.Errorf("pattern %q: must start with /", p)
	}

	ret := make(mpath, 0, 2)

	lastWasSlash := false
	inParam := false
	startIdx := 0

	for i := 0; i < len(p); i++ {

		c := p[i]

		if c == '/' {
			if inParam {
				if i-startIdx < 2 {
					return nil, fmt.Errorf("pattern %q: unnamed parameter", p)
				}
				ret = append(ret, p[startIdx:i])
				inParam = false
				startIdx = i
			}
			lastWasSlash = true
			continue
		}

		if c == ':' {
			if !lastWasSlash || inParam {
				return nil, fmt.Errorf("pattern %q: parameter must start a segment", p)
			}
			if startIdx < i {
				ret = append(ret, p[startIdx:i])
			}
			inParam = true
			startIdx = i
		}

		lastWasSlash = false
	}

	// append last part if needed
	if startIdx < len(p) {
		if inParam && len(p)-startIdx < 2 {
			return nil, fmt.Errorf("pattern %q: unnamed parameter", p)
		}
		ret = append(ret, p[startIdx:])
	}

	seen := make(map[string]bool, 1)
	for _, name := range ret.paramNames() {
		if seen[name] {
			return nil, fmt.Errorf("pattern %q: duplicate parameter %q", p, name)
		}
		seen[name] = true
	}

	return ret, nil
}

// mpath is a matchable-path.  It's basically just a path split by parameter values.
type mpath []string

// paramNames will return the parameter names
// without the preceding colon, i.e. the path "/somewhere/:p1/:p2"
// will return []string{"p1","p2"}
func (mp mpath) paramNames() []string {
	var ret []string
	for _, p := range mp {
		if strings.HasPrefix(p, ":") {
			ret = append(ret, p[1:])
		}
	}
	return ret
}

// String returns the re-assembled path pattern
func (mp mpath) String() string {
	return strings.Join(mp, "")
}

var (
	errMissingParam = errors.New("missing param")
	errBadParam     = errors.New("param is not a decimal number")
)

// merge will use the values provided for the path params and return the
// constructed path.  A missing value returns errMissingParam and a value
// that would not match back returns errBadParam; in both cases the
// offending param is written as "_".
func (mp mpath) merge(v PathParamList) (outPath string, reterr error) {

	var buf bytes.Buffer
	buf.Grow(32)

	for _, p := range mp {
		if strings.HasPrefix(p, ":") {
			pval := v.ByName(p[1:])
			if pval == "" {
				if reterr == nil {
					reterr = errMissingParam
				}
				buf.WriteString("_")
				continue
			}
			if !isDigits(pval) {
				if reterr == nil {
					reterr = errBadParam
				}
				buf.WriteString("_")
				continue
			}
			buf.WriteString(pval)
			continue
		}
		buf.WriteString(p)
	}

	return buf.String(), reterr
}

// match compares our mpath to the path provided and returns the parameter
// values plus ok true if the whole path matches.  Parameters match one or
// more decimal digits up to the next slash.
func (mp mpath) match(p string) (params PathParamList, ok bool) {

	prest := p

	for _, mpart := range mp {

		if strings.HasPrefix(mpart, ":") {
			n := 0
			for n < len(prest) && prest[n] != '/' {
				n++
			}
			pval := prest[:n]
			if !isDigits(pval) {
				return nil, false
			}
			params = append(params, PathParam{Key: mpart[1:], Value: pval})
			prest = prest[n:]
			continue
		}

		if !strings.HasPrefix(prest, mpart) {
			return nil, false
		}
		// move past this part
		prest = prest[len(mpart):]
	}

	if prest != "" {
		return nil, false
	}

	return params, true
}
