// Package metrics exports navigation outcomes to prometheus.
//
//	c := metrics.New()
//	r := wayfinder.New(m, wayfinder.WithObserver(c.Observer()))
//	reg := metrics.NewRegistry(c)
//	mux.Handle("/metrics", metrics.Handler(reg))
//
// Results are "confirmed", "error" or the failure type name
// ("redirected", "aborted", "cancelled", "duplicated").
package metrics
