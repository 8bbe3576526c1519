package route

import "strings"

// IsSame reports whether a and b point at the same location.
//
// The sentinel Start only equals itself. Otherwise routes are compared by
// path (ignoring one trailing slash) or, when either has no path, by name.
// Unless onlyPath is set, hash and query must also match, and params too
// when comparing by name.
func IsSame(a, b *Route, onlyPath bool) bool {
	switch {
	case b == Start:
		return a == b
	case a == nil || b == nil:
		return false
	case a.path != "" && b.path != "":
		return trimTrailingSlash(a.path) == trimTrailingSlash(b.path) &&
			(onlyPath || a.hash == b.hash && queryEqual(a.query, b.query))
	case a.name != "" && b.name != "":
		return a.name == b.name &&
			(onlyPath || a.hash == b.hash &&
				queryEqual(a.query, b.query) &&
				paramsEqual(a.params, b.params))
	default:
		return false
	}
}

// IsIncluded reports whether current lies inside target: the target path
// is a prefix of the current path, the hash matches when target has one,
// and every target query key is present in current.
func IsIncluded(current, target *Route) bool {
	if current == nil || target == nil {
		return false
	}
	if !strings.HasPrefix(withTrailingSlash(current.path), withTrailingSlash(target.path)) {
		return false
	}
	if target.hash != "" && current.hash != target.hash {
		return false
	}
	for key := range target.query {
		if !current.query.Has(key) {
			return false
		}
	}
	return true
}

func trimTrailingSlash(p string) string {
	return strings.TrimSuffix(p, "/")
}

func withTrailingSlash(p string) string {
	return trimTrailingSlash(p) + "/"
}
