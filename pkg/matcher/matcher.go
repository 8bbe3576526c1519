package matcher

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/wayfinder/pkg/logger"
	"github.com/dmitrymomot/wayfinder/pkg/route"
)

// maxRedirects bounds chains of record-level redirects.
const maxRedirects = 8

// entry is the compiled form of a record.
type entry struct {
	record   *route.Record
	path     string // full path with ":param" placeholders
	pattern  string // chi pattern registered in the tree
	params   []string
	redirect string
}

// Matcher resolves locations against a tree of route records. Paths are
// matched by a chi routing tree, so static segments take priority over
// params and params over wildcards regardless of declaration order.
// When two records compile to the same path the first one declared wins,
// children before their parent.
type Matcher struct {
	mu         sync.RWMutex
	mux        *chi.Mux
	byPattern  map[string]*entry
	byName     map[string]*entry
	byRecord   map[*route.Record]*entry
	ordered    []*entry
	components map[string]*route.Component
	guards     map[string]route.Guard
	log        *slog.Logger
}

// New compiles the route configs into a matcher.
func New(routes []RouteConfig, opts ...Option) (*Matcher, error) {
	m := &Matcher{
		mux:        chi.NewRouter(),
		byPattern:  map[string]*entry{},
		byName:     map[string]*entry{},
		byRecord:   map[*route.Record]*entry{},
		components: map[string]*route.Component{},
		guards:     map[string]route.Guard{},
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cfg := range routes {
		if err := m.add(cfg, nil); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// NewFromFile loads a route table file and compiles it.
func NewFromFile(name string, opts ...Option) (*Matcher, error) {
	routes, err := LoadFile(name)
	if err != nil {
		return nil, err
	}
	return New(routes, opts...)
}

// AddRoute appends cfg under the record named parent, or at the top level
// when parent is empty.
func (m *Matcher) AddRoute(parent string, cfg RouteConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var p *entry
	if parent != "" {
		p = m.byName[parent]
		if p == nil {
			return fmt.Errorf("%w: %q", ErrUnknownParent, parent)
		}
	}
	return m.add(cfg, p)
}

// Routes lists the compiled records in declaration order.
func (m *Matcher) Routes() []*route.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*route.Record, 0, len(m.ordered))
	for _, e := range m.ordered {
		out = append(out, e.record)
	}
	return out
}

// Record returns the record registered under name.
func (m *Matcher) Record(name string) (*route.Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.byName[name]
	if !ok {
		return nil, false
	}
	return e.record, true
}

func (m *Matcher) add(cfg RouteConfig, parent *entry) error {
	var parentRecord *route.Record
	parentPath := ""
	if parent != nil {
		parentRecord = parent.record
		parentPath = parent.path
	}

	full := joinPath(parentPath, cfg.Path)
	pattern, err := chiPattern(full)
	if err != nil {
		return err
	}
	if cfg.Name != "" {
		if _, dup := m.byName[cfg.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateName, cfg.Name)
		}
	}

	guard := cfg.BeforeEnter
	if guard == nil && cfg.Guard != "" {
		guard = m.guards[cfg.Guard]
		if guard == nil {
			return fmt.Errorf("%w: %q", ErrUnknownGuard, cfg.Guard)
		}
	}

	rec := route.NewRecord(route.RecordConfig{
		Path:        full,
		Name:        cfg.Name,
		Components:  m.views(cfg),
		Meta:        cfg.Meta,
		Props:       cfg.Props,
		BeforeEnter: guard,
	}, parentRecord)

	e := &entry{
		record:   rec,
		path:     full,
		pattern:  pattern,
		params:   paramNames(full),
		redirect: cfg.Redirect,
	}
	if cfg.Name != "" {
		m.byName[cfg.Name] = e
	}
	m.byRecord[rec] = e

	for _, child := range cfg.Children {
		if err := m.add(child, e); err != nil {
			return err
		}
	}

	m.ordered = append(m.ordered, e)
	if _, taken := m.byPattern[pattern]; taken {
		m.log.Debug("route path shadowed by an earlier record",
			slog.String("path", full),
			slog.String("name", cfg.Name),
		)
		return nil
	}
	if err := m.register(pattern); err != nil {
		return err
	}
	m.byPattern[pattern] = e
	return nil
}

// register inserts pattern into the chi tree. chi panics on malformed
// patterns; the panic is turned into an error.
func (m *Matcher) register(pattern string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidPattern, r)
		}
	}()
	m.mux.Get(pattern, http.NotFound)
	return nil
}

func (m *Matcher) views(cfg RouteConfig) map[string]*route.Component {
	views := map[string]*route.Component{}
	if cfg.Component != "" {
		views[route.DefaultSlot] = m.component(cfg.Component)
	}
	for slot, name := range cfg.Components {
		views[slot] = m.component(name)
	}
	for slot, c := range cfg.Views {
		views[slot] = c
	}
	return views
}

func (m *Matcher) component(name string) *route.Component {
	if c, ok := m.components[name]; ok {
		return c
	}
	c := &route.Component{Name: name}
	m.components[name] = c
	return c
}

// Match resolves loc relative to current. A location nothing matches
// yields a route without records, not an error.
func (m *Matcher) Match(loc route.Location, current *route.Route) (*route.Route, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.match(loc, current, 0)
}

func (m *Matcher) match(loc route.Location, current *route.Route, depth int) (*route.Route, error) {
	loc = normalize(loc, current)

	if loc.Name != "" {
		e := m.byName[loc.Name]
		if e == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownName, loc.Name)
		}
		params := inheritParams(e.params, loc.Params, current)
		p, err := fillParams(e.path, params)
		if err != nil {
			return nil, err
		}
		loc.Path = p
		loc.Params = params
		return m.build(e, loc, current, depth)
	}

	rctx := chi.NewRouteContext()
	if !m.mux.Match(rctx, http.MethodGet, normalizePath(loc.Path)) {
		return route.New(nil, loc, loc.RedirectedFrom), nil
	}
	patterns := rctx.RoutePatterns
	if len(patterns) == 0 {
		return route.New(nil, loc, loc.RedirectedFrom), nil
	}
	e := m.byPattern[patterns[len(patterns)-1]]
	if e == nil {
		return route.New(nil, loc, loc.RedirectedFrom), nil
	}

	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		value := rctx.URLParams.Values[i]
		if decoded, err := url.PathUnescape(value); err == nil {
			value = decoded
		}
		if key == "*" {
			key = wildcardParam
		}
		params[key] = value
	}
	loc.Params = params
	return m.build(e, loc, current, depth)
}

func (m *Matcher) build(e *entry, loc route.Location, current *route.Route, depth int) (*route.Route, error) {
	if e.redirect == "" {
		return route.New(e.record, loc, loc.RedirectedFrom), nil
	}
	if depth >= maxRedirects {
		return nil, fmt.Errorf("%w: %q", ErrTooManyRedirects, loc.Path)
	}

	target := route.Parse(e.redirect)
	if strings.Contains(target.Path, ":") {
		p, err := fillParams(target.Path, loc.Params)
		if err != nil {
			return nil, err
		}
		target.Path = p
	}
	if len(target.Query) == 0 {
		target.Query = loc.Query
	}
	if target.Hash == "" {
		target.Hash = loc.Hash
	}

	origin := loc.RedirectedFrom
	if origin == nil {
		o := loc
		o.RedirectedFrom = nil
		origin = &o
	}
	target.RedirectedFrom = origin
	return m.match(target, current, depth+1)
}

// normalize fills in what a partial location inherits from current:
// an empty target keeps the current path, params-only targets reuse the
// current named route, relative paths resolve against the current one.
func normalize(loc route.Location, current *route.Route) route.Location {
	if loc.Hash != "" && !strings.HasPrefix(loc.Hash, "#") {
		loc.Hash = "#" + loc.Hash
	}
	if loc.Name != "" {
		return loc
	}
	if current == nil {
		current = route.Start
	}

	switch {
	case loc.Path == "" && len(loc.Params) > 0 && current.Name() != "":
		loc.Name = current.Name()
	case loc.Path == "":
		loc.Path = current.Path()
	default:
		loc.Path = resolveRelative(loc.Path, current.Path())
	}
	return loc
}

// inheritParams copies the declared params missing from params out of the
// current route.
func inheritParams(declared []string, params map[string]string, current *route.Route) map[string]string {
	out := make(map[string]string, len(declared))
	for k, v := range params {
		out[k] = v
	}
	if current == nil {
		return out
	}
	for _, name := range declared {
		if _, ok := out[name]; ok {
			continue
		}
		if v := current.Param(name); v != "" {
			out[name] = v
		}
	}
	return out
}
