package route

import "maps"

// Route is a resolved location together with the chain of matched records.
// A Route is never modified after construction; accessors return copies.
type Route struct {
	name           string
	path           string
	hash           string
	fullPath       string
	redirectedFrom string
	query          Query
	params         map[string]string
	meta           map[string]any
	matched        []*Record
}

// Start is the route that stands for "nowhere". It is the initial current
// route of every history and compares equal only to itself.
var Start = New(nil, Location{Path: "/"}, nil)

// New builds a Route for the leaf record (nil when nothing matched).
// The query is deep-cloned so later changes to loc cannot leak in.
func New(record *Record, loc Location, redirectedFrom *Location) *Route {
	r := &Route{
		name:     loc.Name,
		path:     loc.Path,
		hash:     loc.Hash,
		query:    loc.Query.Clone(),
		params:   maps.Clone(loc.Params),
		fullPath: fullPath(loc.Path, loc.Query, loc.Hash),
		matched:  record.Chain(),
	}

	if r.path == "" {
		r.path = "/"
	}
	if r.params == nil {
		r.params = map[string]string{}
	}
	if record != nil {
		if r.name == "" {
			r.name = record.Name
		}
		r.meta = maps.Clone(record.Meta)
	}
	if r.meta == nil {
		r.meta = map[string]any{}
	}
	if redirectedFrom != nil {
		r.redirectedFrom = redirectedFrom.FullPath()
	}

	return r
}

// WithRedirectedFrom returns a copy of r whose origin is set to from.
func (r *Route) WithRedirectedFrom(from Location) *Route {
	cp := *r
	cp.redirectedFrom = from.FullPath()
	return &cp
}

func (r *Route) Name() string           { return r.name }
func (r *Route) Path() string           { return r.path }
func (r *Route) Hash() string           { return r.hash }
func (r *Route) RedirectedFrom() string { return r.redirectedFrom }

// FullPath is path, query and hash serialized. Nil routes yield "".
func (r *Route) FullPath() string {
	if r == nil {
		return ""
	}
	return r.fullPath
}
// Query returns a copy of the route query.
func (r *Route) Query() Query { return r.query.Clone() }

// Param returns a single path parameter.
func (r *Route) Param(key string) string { return r.params[key] }

// Params returns a copy of the path parameters.
func (r *Route) Params() map[string]string { return maps.Clone(r.params) }

// Meta returns a shallow copy of the leaf record's meta.
func (r *Route) Meta() map[string]any { return maps.Clone(r.meta) }

// Matched returns the root-to-leaf record chain. Empty when unmatched.
func (r *Route) Matched() []*Record {
	return append([]*Record(nil), r.matched...)
}

// Leaf returns the deepest matched record, or nil.
func (r *Route) Leaf() *Record {
	if len(r.matched) == 0 {
		return nil
	}
	return r.matched[len(r.matched)-1]
}

// Location converts the route back into a navigation target.
func (r *Route) Location() Location {
	return Location{
		Path:   r.path,
		Name:   r.name,
		Params: maps.Clone(r.params),
		Query:  r.query.Clone(),
		Hash:   r.hash,
	}
}

func (r *Route) String() string { return r.FullPath() }
