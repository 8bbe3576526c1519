package navhttp

import (
	"github.com/dmitrymomot/wayfinder/pkg/route"
)

// RouteView is the JSON form of a route.
type RouteView struct {
	Name           string            `json:"name,omitempty"`
	Path           string            `json:"path"`
	FullPath       string            `json:"full_path"`
	Hash           string            `json:"hash,omitempty"`
	Query          route.Query       `json:"query,omitempty"`
	Params         map[string]string `json:"params,omitempty"`
	Meta           map[string]any    `json:"meta,omitempty"`
	Matched        []string          `json:"matched"`
	Components     []string          `json:"components,omitempty"`
	RedirectedFrom string            `json:"redirected_from,omitempty"`
}

func newRouteView(rt *route.Route) RouteView {
	v := RouteView{
		Name:           rt.Name(),
		Path:           rt.Path(),
		FullPath:       rt.FullPath(),
		Hash:           rt.Hash(),
		Query:          rt.Query(),
		Params:         rt.Params(),
		Meta:           rt.Meta(),
		Matched:        make([]string, 0, len(rt.Matched())),
		RedirectedFrom: rt.RedirectedFrom(),
	}
	for _, rec := range rt.Matched() {
		v.Matched = append(v.Matched, rec.Path)
		for _, slot := range rec.Slots() {
			if c := rec.Component(slot).Resolved(); c != nil && c.Name != "" {
				v.Components = append(v.Components, c.Name)
			}
		}
	}
	return v
}
