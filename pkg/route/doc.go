// Package route holds the value types of the navigation engine.
//
// A Route is an immutable resolved location: path, query, hash, params and
// the chain of matched Records from root to leaf. Records are the compiled
// route definitions owned by a matcher; each record carries its Components
// per view slot together with the in-component guards and, once rendered,
// the live instances.
//
// # Guards
//
// Every guard returns a Decision:
//
//	func requireAuth(ctx context.Context, to, from *route.Route) route.Decision {
//	    if !loggedIn(ctx) {
//	        return route.RedirectTo("/login")
//	    }
//	    return route.Next()
//	}
//
// Next proceeds, Abort vetoes, Redirect starts a different navigation and
// Fail aborts with an error. Enter guards may return NextWith(cb) to get
// the component instance once it is rendered.
//
// # Comparison
//
// IsSame and IsIncluded compare routes the way active-link styling and
// duplicate navigation detection need. Start is the sentinel route that
// only equals itself.
package route
