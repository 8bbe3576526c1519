package history

import (
	"strings"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// Event is a platform navigation event.
type Event string

const (
	EventPopState   Event = "popstate"
	EventHashChange Event = "hashchange"
)

// State is attached to every entry written with PushState or ReplaceState.
type State struct {
	Key string `json:"key"`
}

// Platform is the browser surface the HTML5 and Hash backends drive.
type Platform interface {
	// Href returns the full current address.
	Href() string
	PushState(state State, url string)
	ReplaceState(state State, url string)
	Go(n int)
	// AssignHash sets the fragment, creating a new entry.
	AssignHash(fragment string)
	// ReplaceLocation navigates to url, replacing the current entry.
	ReplaceLocation(url string)
	SupportsPushState() bool
	// AddEventListener subscribes fn to ev and returns the unsubscribe func.
	AddEventListener(ev Event, fn func()) func()
}

// stateWriter writes history entries with a state key. A push mints a new
// key; a replace keeps the key of the entry it overwrites.
type stateWriter struct {
	platform Platform
	key      atomic.String
}

func (w *stateWriter) push(u string) {
	key := uuid.NewString()
	w.key.Store(key)
	w.platform.PushState(State{Key: key}, u)
}

func (w *stateWriter) replace(u string) {
	key := w.key.Load()
	if key == "" {
		key = uuid.NewString()
		w.key.Store(key)
	}
	w.platform.ReplaceState(State{Key: key}, u)
}

// splitHref breaks an address into pathname, search ("?..." or "") and
// hash ("#..." or ""). Scheme and host are dropped.
func splitHref(href string) (pathname, search, hash string) {
	if i := strings.IndexByte(href, '#'); i >= 0 {
		hash = href[i:]
		href = href[:i]
	}
	if i := strings.IndexByte(href, '?'); i >= 0 {
		search = href[i:]
		href = href[:i]
	}
	if i := strings.Index(href, "://"); i >= 0 {
		rest := href[i+3:]
		if j := strings.IndexByte(rest, '/'); j >= 0 {
			href = rest[j:]
		} else {
			href = "/"
		}
	}
	if search == "?" {
		search = ""
	}
	return href, search, hash
}

// locationUnder returns the address relative to base: the path with the
// base prefix removed (case-insensitive), followed by search and hash.
func locationUnder(href, base string) string {
	path, search, hash := splitHref(href)
	if base != "" && strings.HasPrefix(strings.ToLower(path), strings.ToLower(base)) {
		path = path[len(base):]
	}
	if path == "" {
		path = "/"
	}
	return path + search + hash
}

// CleanPath collapses repeated slashes in a URL path or href.
func CleanPath(p string) string {
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}

// fragmentOf returns everything after the first '#', "" if none.
func fragmentOf(href string) string {
	if i := strings.IndexByte(href, '#'); i >= 0 {
		return href[i+1:]
	}
	return ""
}

// withFragment replaces the fragment of href.
func withFragment(href, fragment string) string {
	if i := strings.IndexByte(href, '#'); i >= 0 {
		href = href[:i]
	}
	return href + "#" + fragment
}
