package matcher

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// wildcardParam is the param name a trailing "*" is exposed under.
const wildcardParam = "pathMatch"

var paramRe = regexp.MustCompile(`:([A-Za-z0-9_]+)(\(([^)]*)\))?(\?)?`)

// joinPath resolves a record path against its parent. Absolute child paths
// are kept as is.
func joinPath(parent, child string) string {
	if strings.HasPrefix(child, "/") || parent == "" {
		return normalizePath(child)
	}
	if child == "" {
		return normalizePath(parent)
	}
	return normalizePath(strings.TrimSuffix(parent, "/") + "/" + child)
}

// normalizePath collapses duplicate slashes and strips one trailing slash.
func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// chiPattern converts ":name" and ":name(regexp)" segments into chi
// placeholders. Optional params have no chi equivalent.
func chiPattern(p string) (string, error) {
	if i := strings.Index(p, "*"); i >= 0 && i != len(p)-1 {
		return "", fmt.Errorf("%w: wildcard must be the last segment in %q", ErrInvalidPattern, p)
	}

	var err error
	out := paramRe.ReplaceAllStringFunc(p, func(m string) string {
		sub := paramRe.FindStringSubmatch(m)
		if sub[4] != "" {
			err = fmt.Errorf("%w: optional param %q in %q", ErrUnsupportedPattern, sub[1], p)
			return m
		}
		if sub[2] != "" {
			return "{" + sub[1] + ":" + sub[3] + "}"
		}
		return "{" + sub[1] + "}"
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// paramNames lists the params a path declares, wildcard included.
func paramNames(p string) []string {
	var names []string
	for _, sub := range paramRe.FindAllStringSubmatch(p, -1) {
		names = append(names, sub[1])
	}
	if strings.HasSuffix(p, "*") {
		names = append(names, wildcardParam)
	}
	return names
}

// fillParams builds a concrete path from a record path and params.
func fillParams(p string, params map[string]string) (string, error) {
	var missing string
	out := paramRe.ReplaceAllStringFunc(p, func(m string) string {
		sub := paramRe.FindStringSubmatch(m)
		v, ok := params[sub[1]]
		if !ok || v == "" {
			if missing == "" {
				missing = sub[1]
			}
			return m
		}
		return url.PathEscape(v)
	})
	if missing != "" {
		return "", fmt.Errorf("%w: %q for %q", ErrMissingParam, missing, p)
	}
	if strings.HasSuffix(out, "*") {
		out = strings.TrimSuffix(out, "*") + strings.TrimPrefix(params[wildcardParam], "/")
	}
	return normalizePath(out), nil
}

// resolveRelative resolves a path that does not start with "/" against
// the directory of base.
func resolveRelative(rel, base string) string {
	if strings.HasPrefix(rel, "/") {
		return rel
	}
	if base == "" {
		base = "/"
	}
	dir := base
	if !strings.HasSuffix(dir, "/") {
		dir = path.Dir(dir)
	}
	resolved := path.Join(dir, rel)
	if strings.HasSuffix(rel, "/") && resolved != "/" {
		resolved += "/"
	}
	return resolved
}
