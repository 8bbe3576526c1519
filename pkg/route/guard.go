package route

import "context"

// Guard is a navigation guard. It inspects the transition and returns a
// Decision. Guards may block; ctx is the navigation caller's context.
type Guard func(ctx context.Context, to, from *Route) Decision

// InstanceGuard is an in-component guard that runs against the live
// instance rendered for its record slot.
type InstanceGuard func(ctx context.Context, instance any, to, from *Route) Decision

// EnteredFunc receives the component instance once it has been rendered
// for a route entered through a BeforeRouteEnter guard.
type EnteredFunc func(instance any)

// Verdict classifies a guard Decision.
type Verdict int

const (
	// VerdictNext lets the navigation continue to the next guard.
	VerdictNext Verdict = iota
	// VerdictAbort cancels the navigation and keeps the current route.
	VerdictAbort
	// VerdictRedirect cancels the navigation and starts a new one.
	VerdictRedirect
	// VerdictFail cancels the navigation with an error.
	VerdictFail
)

func (v Verdict) String() string {
	switch v {
	case VerdictNext:
		return "next"
	case VerdictAbort:
		return "abort"
	case VerdictRedirect:
		return "redirect"
	case VerdictFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Decision is the result of a guard. The zero value proceeds.
type Decision struct {
	verdict Verdict
	err     error
	target  Location
	entered EnteredFunc
}

// Next approves this step of the navigation.
func Next() Decision { return Decision{} }

// NextWith approves and hands cb to the engine. Enter guards use it to
// receive the component instance after the route is rendered.
func NextWith(cb EnteredFunc) Decision {
	return Decision{entered: cb}
}

// Abort vetoes the navigation.
func Abort() Decision { return Decision{verdict: VerdictAbort} }

// Redirect vetoes the navigation and navigates to loc instead. Set
// loc.Replace to replace the current history entry.
func Redirect(loc Location) Decision {
	return Decision{verdict: VerdictRedirect, target: loc}
}

// RedirectTo is Redirect for a raw "path?query#hash" string.
func RedirectTo(raw string) Decision {
	return Redirect(Parse(raw))
}

// Fail vetoes the navigation with err. A nil err is reported as
// ErrGuardFailed.
func Fail(err error) Decision {
	if err == nil {
		err = ErrGuardFailed
	}
	return Decision{verdict: VerdictFail, err: err}
}

func (d Decision) Verdict() Verdict     { return d.verdict }
func (d Decision) Err() error           { return d.err }
func (d Decision) Target() Location     { return d.target }
func (d Decision) Entered() EnteredFunc { return d.entered }
