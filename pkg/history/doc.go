// Package history implements the navigation transition protocol and the
// backends that map routes onto an address.
//
// Every navigation follows the same steps. The target is matched, then
// compared against the current route: a navigation to the current
// location ends as Duplicated. Otherwise the matched chains are diffed
// and two guard queues run in order:
//
//  1. leave guards of deactivated records (child first), BeforeEach hooks,
//     update guards of reused records, per-record BeforeEnter guards, and
//     loading of lazy components;
//  2. enter guards of activated records, then BeforeResolve hooks.
//
// When both queues approve and no newer navigation has started, the route
// is committed: current is replaced in one critical section together
// with the backend state, the listener is notified, the URL is written,
// AfterEach hooks run and the first commit marks the history ready.
//
// Navigations may overlap. Each one takes a sequence number; a navigation
// that is no longer the latest stops at its next guard boundary, or at
// the commit, with a Cancelled failure. Expected outcomes are returned as
// *NavigationFailure and can be tested with errors.Is against ErrAborted,
// ErrCancelled, ErrDuplicated and ErrRedirected, or with
// IsNavigationFailure. Unexpected errors go to OnError callbacks and are
// logged when there are none.
//
// Backends:
//
//   - HTML5 writes real paths with the history API of a Platform.
//   - Hash keeps the route in the URL fragment.
//   - Memory keeps an in-process stack, for hosts without a browser.
//
// MemoryPlatform is a headless Platform whose events are delivered by
// Flush. A syscall/js platform is built for js/wasm.
package history
