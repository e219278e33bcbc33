package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/arthur-debert/prismatic/pkg/types"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultNamespace prefixes every metric name
const DefaultNamespace = "prismatic"

// Config configures the collectors
type Config struct {
	// Namespace is the metrics namespace (default: "prismatic").
	Namespace string

	// ConstLabels are added to every metric.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry collects the metrics. Default: a fresh prometheus.Registry
	Registry *prometheus.Registry
}

// Option configures Metrics
type Option func(*Config)

// WithNamespace sets the metrics namespace
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the duration histogram buckets
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the registry the collectors are registered with
func WithRegistry(registry *prometheus.Registry) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: DefaultNamespace,
		Buckets:   prometheus.DefBuckets,
	}
}

// Metrics holds the collectors. It implements files.Observer and
// assets.Observer.
type Metrics struct {
	registry *prometheus.Registry

	buildsTotal    *prometheus.CounterVec
	buildDuration  *prometheus.HistogramVec
	buildFiles     *prometheus.HistogramVec
	filesMissing   *prometheus.CounterVec
	catalogLoads   *prometheus.CounterVec
	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// New registers the collectors and returns them
func New(opts ...Option) *Metrics {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		registry: config.Registry,

		buildsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "asset_builds_total",
			Help:        "Total number of asset sets built",
			ConstLabels: config.ConstLabels,
		}, []string{"context"}),

		buildDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "asset_build_duration_seconds",
			Help:        "Asset set build duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"context"}),

		buildFiles: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "asset_build_files",
			Help:        "Number of files in a built asset set",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{1, 2, 5, 10, 20, 50, 100, 200},
		}, []string{"kind"}),

		filesMissing: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "files_missing_total",
			Help:        "Component files looked up but not found",
			ConstLabels: config.ConstLabels,
		}, []string{"category"}),

		catalogLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "catalog_loads_total",
			Help:        "Catalog documents parsed, by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "http_requests_total",
			Help:        "Total HTTP requests by route and status code",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "code"}),

		requestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),
	}
}

// Registry returns the registry the collectors live in
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// BuildCompleted records one asset set build
func (m *Metrics) BuildCompleted(ctx types.RenderContext, set *types.FileSet, elapsed time.Duration) {
	label := string(ctx)
	if label == "" {
		label = string(types.ContextSite)
	}
	m.buildsTotal.WithLabelValues(label).Inc()
	m.buildDuration.WithLabelValues(label).Observe(elapsed.Seconds())
	if set == nil {
		return
	}
	m.buildFiles.WithLabelValues(string(types.KindScript)).Observe(float64(len(set.Scripts())))
	m.buildFiles.WithLabelValues(string(types.KindStylesheet)).Observe(float64(len(set.Stylesheets())))
}

// FileMissing records a lookup that found no file
func (m *Metrics) FileMissing(category types.Category, name string) {
	m.filesMissing.WithLabelValues(category.String()).Inc()
}

// CatalogLoaded records a catalog parse and whether it failed
func (m *Metrics) CatalogLoaded(err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.catalogLoads.WithLabelValues(status).Inc()
}

// Middleware records request counts and latency per chi route pattern
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		m.requestLatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
