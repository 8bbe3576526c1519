package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/wayfinder/pkg/history"
)

// Collector turns navigation outcomes into prometheus series:
//
//	<ns>_navigations_total{op,result}
//	<ns>_navigation_duration_seconds{op}
//	<ns>_redirects_total
type Collector struct {
	navigations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	redirects   prometheus.Counter
}

// Option configures a Collector.
type Option func(*config)

type config struct {
	namespace string
	buckets   []float64
	labels    prometheus.Labels
}

// WithNamespace sets the metric name prefix. Default "wayfinder".
func WithNamespace(ns string) Option {
	return func(c *config) { c.namespace = ns }
}

// WithBuckets overrides the duration histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *config) { c.buckets = buckets }
}

// WithConstLabels attaches labels to every series, e.g. the service name.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *config) { c.labels = labels }
}

func New(opts ...Option) *Collector {
	cfg := &config{
		namespace: "wayfinder",
		buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Collector{
		navigations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.namespace,
			Name:        "navigations_total",
			Help:        "Navigation attempts by operation and result.",
			ConstLabels: cfg.labels,
		}, []string{"op", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.namespace,
			Name:        "navigation_duration_seconds",
			Help:        "Time from navigation request to its outcome.",
			Buckets:     cfg.buckets,
			ConstLabels: cfg.labels,
		}, []string{"op"}),
		redirects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.namespace,
			Name:        "redirects_total",
			Help:        "Navigations that ended in a redirect.",
			ConstLabels: cfg.labels,
		}),
	}
}

// Observe records one outcome.
func (c *Collector) Observe(o history.Outcome) {
	op := string(o.Op)
	c.navigations.WithLabelValues(op, o.Result()).Inc()
	c.duration.WithLabelValues(op).Observe(o.Duration.Seconds())
	if history.IsNavigationFailure(o.Err, history.Redirected) {
		c.redirects.Inc()
	}
}

// Observer adapts the collector for history.WithObserver.
func (c *Collector) Observer() history.Observer {
	return c.Observe
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.navigations.Describe(ch)
	c.duration.Describe(ch)
	c.redirects.Describe(ch)
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.navigations.Collect(ch)
	c.duration.Collect(ch)
	c.redirects.Collect(ch)
}

// Register adds the collector to reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			return errors.Join(ErrAlreadyRegistered, err)
		}
		return err
	}
	return nil
}

// NewRegistry returns a registry with the Go runtime and process
// collectors plus the given collectors.
func NewRegistry(cs ...prometheus.Collector) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	reg.MustRegister(cs...)
	return reg
}

// Handler serves reg in the prometheus exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
