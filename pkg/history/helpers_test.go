package history_test

import (
	"context"

	"github.com/dmitrymomot/wayfinder/pkg/route"
)

// tableMatcher resolves exact paths against a fixed set of records.
// Unknown paths produce unmatched routes; an empty path keeps the current
// one.
type tableMatcher struct {
	records map[string]*route.Record
	err     error
}

func newMatcher(records ...*route.Record) *tableMatcher {
	m := &tableMatcher{records: map[string]*route.Record{}}
	for _, rec := range records {
		m.records[rec.Path] = rec
	}
	return m
}

func (m *tableMatcher) Match(loc route.Location, current *route.Route) (*route.Route, error) {
	if m.err != nil {
		return nil, m.err
	}
	if loc.IsZero() {
		loc.Path = current.Path()
	}
	return route.New(m.records[loc.Path], loc, loc.RedirectedFrom), nil
}

func rec(path string) *route.Record {
	return route.NewRecord(route.RecordConfig{Path: path}, nil)
}

func at(raw string) route.Location {
	return route.Parse(raw)
}

var ctx = context.Background()

type journal struct {
	entries []string
}

func (j *journal) guard(name string) route.Guard {
	return func(context.Context, *route.Route, *route.Route) route.Decision {
		j.entries = append(j.entries, name)
		return route.Next()
	}
}

func (j *journal) instanceGuard(name string) route.InstanceGuard {
	return func(_ context.Context, instance any, _, _ *route.Route) route.Decision {
		j.entries = append(j.entries, name)
		return route.Next()
	}
}

func (j *journal) reset() { j.entries = nil }
