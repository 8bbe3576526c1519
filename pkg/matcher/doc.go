// Package matcher resolves navigation targets against a tree of route
// records and implements history.Matcher.
//
// Route paths use the ":param" syntax, optionally with a regular
// expression (":id(\\d+)"), and may end in a "*" wildcard exposed as the
// "pathMatch" param. Paths are compiled into a chi routing tree.
//
//	m, err := matcher.New([]matcher.RouteConfig{
//	    {Path: "/", Name: "home", Component: "Home"},
//	    {Path: "/users/:id", Name: "user", Component: "User", Children: []matcher.RouteConfig{
//	        {Path: "posts", Name: "user-posts", Component: "Posts"},
//	    }},
//	})
//
// Route tables can also be loaded from YAML or TOML files with LoadFile or
// NewFromFile:
//
//	routes:
//	  - path: /
//	    name: home
//	    component: Home
//	  - path: /old
//	    redirect: /
//
// Component names resolve through WithComponents; names the registry does
// not know become placeholder components. Named guards referenced by
// "beforeEnter" must be registered with WithGuards.
//
// Match accepts partial locations: an empty path keeps the current path,
// params without a path or name reuse the current named route, and
// relative paths resolve against the current path. Named targets inherit
// missing params from the current route.
package matcher
