package route

import (
	"net/url"
	"strings"
)

// Location is a raw navigation target, before it has been matched.
// Either Path or Name identifies the target; a Location with neither
// resolves relative to the current route (query or hash only changes).
type Location struct {
	Path   string
	Name   string
	Params map[string]string
	Query  Query
	Hash   string

	// Replace asks a redirecting guard to replace the current history entry
	// instead of pushing a new one.
	Replace bool

	// RedirectedFrom is filled by the navigation engine when a guard
	// redirects; the resulting Route records it as its origin.
	RedirectedFrom *Location
}

// Parse splits a raw "path?query#hash" string into a Location.
// Malformed query pairs are dropped; the rest of the query is kept.
func Parse(raw string) Location {
	var loc Location

	if i := strings.IndexByte(raw, '#'); i >= 0 {
		loc.Hash = raw[i:]
		raw = raw[:i]
	}

	if i := strings.IndexByte(raw, '?'); i >= 0 {
		values, _ := url.ParseQuery(raw[i+1:])
		loc.Query = Query(values)
		raw = raw[:i]
	}

	loc.Path = raw
	return loc
}

// Named builds a Location that targets a named route.
func Named(name string, params map[string]string) Location {
	return Location{Name: name, Params: params}
}

// FullPath serializes the location the same way a Route does.
func (l Location) FullPath() string {
	return fullPath(l.Path, l.Query, l.Hash)
}

// IsZero reports whether the location has neither path nor name.
func (l Location) IsZero() bool {
	return l.Path == "" && l.Name == ""
}

func fullPath(path string, query Query, hash string) string {
	if path == "" {
		path = "/"
	}
	return path + StringifyQuery(query) + hash
}
