package navhttp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/wayfinder"
	"github.com/dmitrymomot/wayfinder/pkg/history"
	"github.com/dmitrymomot/wayfinder/pkg/logger"
	"github.com/dmitrymomot/wayfinder/pkg/route"
	"github.com/dmitrymomot/wayfinder/pkg/session"
	"github.com/dmitrymomot/wayfinder/pkg/visitor"
)

// Handler serves navigation requests for many visitors over one route
// table.
type Handler struct {
	matcher history.Matcher
	store   session.Store
	opts    *options
}

func New(m history.Matcher, store session.Store, opts ...Option) *Handler {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Handler{matcher: m, store: store, opts: o}
}

// Routes returns the endpoint router, visitor middleware included.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(visitor.Middleware(h.opts.visitor...))

	r.Get("/resolve", h.handle(h.resolve))
	r.Get("/current", h.handle(h.current))
	r.Post("/navigate", h.handle(h.navigate))
	r.Post("/go", h.handle(h.travel))
	r.Delete("/session", h.handle(h.forget))
	return r
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) (Response, error)

func (h *Handler) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		body, err := fn(w, r)
		if err != nil {
			status, body = errorResponse(err)
			if status >= http.StatusInternalServerError {
				h.opts.log.ErrorContext(r.Context(), "navigation request failed", logger.Error(err))
			}
		}
		if err := writeJSON(w, status, body); err != nil {
			h.opts.log.ErrorContext(r.Context(), "write response", logger.Error(err))
		}
	}
}

// session builds a router for the visitor and restores its history.
func (h *Handler) session(ctx context.Context) (*wayfinder.Router, string, error) {
	key := visitor.FromContext(ctx)
	if key == "" {
		return nil, "", ErrNoVisitor
	}

	opts := []wayfinder.Option{wayfinder.WithLogger(h.opts.log)}
	for _, obs := range h.opts.observers {
		opts = append(opts, wayfinder.WithObserver(obs))
	}
	r, err := wayfinder.New(h.matcher, opts...)
	if err != nil {
		return nil, "", err
	}

	snap, err := h.store.Load(ctx, key)
	switch {
	case session.IsNotFound(err):
		return r, key, nil
	case err != nil:
		r.Stop()
		return nil, "", err
	}
	if err := restore(ctx, r, snap); err != nil {
		r.Stop()
		return nil, "", err
	}
	return r, key, nil
}

// restore puts the visitor back on their snapshot. An entry that guards
// abort is dropped together with the entries after it and the previous
// entry is tried instead.
func restore(ctx context.Context, r *wayfinder.Router, snap history.Snapshot) error {
	for {
		_, err := r.Restore(ctx, snap)
		switch {
		case err == nil:
			return nil
		case wayfinder.IsNavigationFailure(err, wayfinder.FailureAborted) && snap.Index > 0:
			snap = history.Snapshot{Entries: snap.Entries[:snap.Index], Index: snap.Index - 1}
		case wayfinder.IsNavigationFailure(err):
			return nil
		default:
			return err
		}
	}
}

func (h *Handler) save(ctx context.Context, r *wayfinder.Router, key string) error {
	snap, err := r.Snapshot()
	if err != nil {
		return err
	}
	if len(snap.Entries) == 0 {
		return nil
	}
	return h.store.Save(ctx, key, snap)
}

func (h *Handler) resolve(_ http.ResponseWriter, req *http.Request) (Response, error) {
	to := req.URL.Query().Get("to")
	if to == "" {
		return Response{}, ErrMissingTarget
	}

	r, _, err := h.session(req.Context())
	if err != nil {
		return Response{}, err
	}
	defer r.Stop()

	res, err := r.Resolve(route.Parse(to))
	if err != nil {
		return Response{}, err
	}
	return Response{Data: map[string]any{
		"href":  res.Href,
		"route": newRouteView(res.Route),
	}}, nil
}

func (h *Handler) current(_ http.ResponseWriter, req *http.Request) (Response, error) {
	r, _, err := h.session(req.Context())
	if err != nil {
		return Response{}, err
	}
	defer r.Stop()
	return h.routeResponse(r, nil), nil
}

type navigateRequest struct {
	To      string            `json:"to"`
	Name    string            `json:"name"`
	Params  map[string]string `json:"params"`
	Query   route.Query       `json:"query"`
	Hash    string            `json:"hash"`
	Replace bool              `json:"replace"`
}

func (n navigateRequest) location() (route.Location, error) {
	var loc route.Location
	switch {
	case n.Name != "":
		loc = route.Named(n.Name, n.Params)
	case n.To != "":
		loc = route.Parse(n.To)
	default:
		return loc, ErrMissingTarget
	}
	if n.Query != nil {
		loc.Query = n.Query
	}
	if n.Hash != "" {
		loc.Hash = n.Hash
	}
	return loc, nil
}

func (h *Handler) navigate(_ http.ResponseWriter, req *http.Request) (Response, error) {
	var body navigateRequest
	if err := decode(req.Body, &body); err != nil {
		return Response{}, err
	}
	loc, err := body.location()
	if err != nil {
		return Response{}, err
	}

	r, key, err := h.session(req.Context())
	if err != nil {
		return Response{}, err
	}
	defer r.Stop()

	ctx, cancel := context.WithTimeout(req.Context(), h.opts.timeout)
	defer cancel()

	if body.Replace {
		_, err = r.Replace(ctx, loc)
	} else {
		_, err = r.Push(ctx, loc)
	}
	if err != nil && !wayfinder.IsNavigationFailure(err, wayfinder.FailureRedirected, wayfinder.FailureDuplicated) {
		return Response{}, err
	}

	if serr := h.save(req.Context(), r, key); serr != nil {
		return Response{}, serr
	}
	return h.routeResponse(r, err), nil
}

type goRequest struct {
	N int `json:"n"`
}

func (h *Handler) travel(_ http.ResponseWriter, req *http.Request) (Response, error) {
	var body goRequest
	if err := decode(req.Body, &body); err != nil {
		return Response{}, err
	}

	r, key, err := h.session(req.Context())
	if err != nil {
		return Response{}, err
	}
	defer r.Stop()

	ctx, cancel := context.WithTimeout(req.Context(), h.opts.timeout)
	defer cancel()

	if err := r.Go(ctx, body.N); err != nil {
		return Response{}, err
	}
	if err := h.save(req.Context(), r, key); err != nil {
		return Response{}, err
	}
	return h.routeResponse(r, nil), nil
}

func (h *Handler) forget(_ http.ResponseWriter, req *http.Request) (Response, error) {
	key := visitor.FromContext(req.Context())
	if key == "" {
		return Response{}, ErrNoVisitor
	}
	if err := h.store.Delete(req.Context(), key); err != nil {
		return Response{}, err
	}
	return Response{Meta: map[string]any{"deleted": true}}, nil
}

// routeResponse reports the visitor's current route. failure is an
// accepted navigation failure to surface in meta.
func (h *Handler) routeResponse(r *wayfinder.Router, failure error) Response {
	resp := Response{Data: newRouteView(r.CurrentRoute()), Meta: map[string]any{}}
	if snap, err := r.Snapshot(); err == nil {
		resp.Meta["index"] = snap.Index
		resp.Meta["length"] = len(snap.Entries)
	}
	var nf *wayfinder.NavigationFailure
	if errors.As(failure, &nf) {
		resp.Meta["failure"] = nf.Type.String()
	}
	return resp
}

func decode(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(ErrInvalidBody, err)
	}
	return nil
}
