package guard

import "github.com/dmitrymomot/wayfinder/pkg/route"

// Segments partitions two matched chains around their first difference.
type Segments struct {
	// Updated records stay matched; their components are reused.
	Updated []*route.Record
	// Activated records are entered by the navigation.
	Activated []*route.Record
	// Deactivated records are left by the navigation.
	Deactivated []*route.Record
}

// Diff compares the chains record by record using pointer identity, so a
// shared parent is "updated" even if an equal copy of it exists elsewhere.
func Diff(current, next []*route.Record) Segments {
	i := 0
	for i < len(current) && i < len(next) && current[i] == next[i] {
		i++
	}
	return Segments{
		Updated:     next[:i:i],
		Activated:   next[i:],
		Deactivated: current[i:],
	}
}
