// Package wayfinder is a client-side navigation engine in the style of a
// single page application router.
//
// A Router matches locations against a route table, runs navigation
// guards and commits the resulting route to one of three history
// backends:
//
//   - "history" writes real paths through the platform history API.
//   - "hash" keeps the route in the URL fragment. It is used when history
//     mode is requested on a platform without pushState.
//   - "abstract" keeps an in-memory stack and needs no platform at all.
//
// Typical use:
//
//	m, err := matcher.NewFromFile("routes.yaml")
//	if err != nil {
//		return err
//	}
//	r, err := wayfinder.New(m, wayfinder.WithPlatform(p), wayfinder.WithMode(wayfinder.ModeHistory))
//	if err != nil {
//		return err
//	}
//	defer r.Stop()
//
//	r.BeforeEach(func(ctx context.Context, to, from *route.Route) route.Decision {
//		if to.Meta()["auth"] == true && !signedIn(ctx) {
//			return route.RedirectTo("/login")
//		}
//		return route.Next()
//	})
//	if _, err := r.Start(ctx); err != nil && !wayfinder.IsNavigationFailure(err) {
//		return err
//	}
//
// Push and Replace block until the navigation settles. Expected outcomes
// such as a redirect or an aborted guard come back as *NavigationFailure;
// check them with IsNavigationFailure. PushAsync and ReplaceAsync return
// a Future instead. Subscribe delivers every committed route change on a
// channel.
package wayfinder
