// Package navhttp exposes the navigation engine over HTTP so a server
// renderer or a thin client can drive an abstract-mode router per
// visitor.
//
// Every request builds a short-lived router over the shared matcher,
// restores the visitor's history snapshot from a session.Store, performs
// the operation and saves the new snapshot. Visitors are identified by
// the visitor middleware.
//
// Endpoints, relative to where Routes is mounted:
//
//	GET    /resolve?to=/users/1   match without navigating
//	GET    /current               current route of the visitor
//	POST   /navigate              {"to": "/a", "replace": false} or {"name": "user", "params": {"id": "1"}}
//	POST   /go                    {"n": -1}
//	DELETE /session               forget the visitor's history
//
// Responses use the {data, meta, error} envelope. Redirected and
// duplicated navigations succeed with meta.failure set; aborted and
// cancelled ones answer 409.
package navhttp
