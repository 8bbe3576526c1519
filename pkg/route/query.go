package route

import (
	"net/url"
	"sort"
	"strings"
)

// Query holds parsed query parameters. A nil value slice stands for a key
// present without a value ("?flag").
type Query map[string][]string

// Clone returns a deep copy. The result is never nil.
func (q Query) Clone() Query {
	out := make(Query, len(q))
	for k, v := range q {
		if v == nil {
			out[k] = nil
			continue
		}
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Get returns the first value for key.
func (q Query) Get(key string) string {
	if v := q[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// Has reports whether key is present, with or without a value.
func (q Query) Has(key string) bool {
	_, ok := q[key]
	return ok
}

// StringifyQuery renders the query with sorted keys and a leading "?".
// An empty query renders as "".
func StringifyQuery(q Query) string {
	if len(q) == 0 {
		return ""
	}

	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		ek := url.QueryEscape(k)
		values := q[k]
		if values == nil {
			parts = append(parts, ek)
			continue
		}
		for _, v := range values {
			parts = append(parts, ek+"="+url.QueryEscape(v))
		}
	}

	if len(parts) == 0 {
		return ""
	}
	return "?" + strings.Join(parts, "&")
}

// queryEqual compares two queries key by key. A nil value only equals nil.
func queryEqual(a, b Query) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok {
			return false
		}
		if av == nil || bv == nil {
			if av != nil || bv != nil {
				return false
			}
			continue
		}
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
	}
	return true
}

func paramsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		if bv, ok := b[k]; !ok || av != bv {
			return false
		}
	}
	return true
}
