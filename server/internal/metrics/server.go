package metrics

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// Server bundles the counters shared by the API, the WebSocket hub and the
// dataset watcher.
type Server struct {
	registry *prometheus.Registry

	// Requests counts REST requests by route and status code.
	Requests *prometheus.CounterVec
	// Callbacks counts reactive callback runs by output and result (ok|error).
	Callbacks *prometheus.CounterVec
	// Inputs counts WebSocket input events by input ID and result (ok|rejected).
	Inputs *prometheus.CounterVec
	// Reloads counts dataset reload attempts by result (ok|error).
	Reloads *prometheus.CounterVec
}

// NewServer returns a Server with its counters registered on a fresh registry.
func NewServer() *Server {
	s := &Server{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "launchdash_http_requests_total",
			Help: "REST requests by route and status code.",
		}, []string{"route", "code"}),
		Callbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "launchdash_callback_runs_total",
			Help: "Reactive callback runs by output and result.",
		}, []string{"output", "result"}),
		Inputs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "launchdash_ws_inputs_total",
			Help: "WebSocket input events by input and result.",
		}, []string{"input", "result"}),
		Reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "launchdash_dataset_reloads_total",
			Help: "Dataset reloads by result.",
		}, []string{"result"}),
	}
	s.registry.MustRegister(s.Requests, s.Callbacks, s.Inputs, s.Reloads)
	return s
}

// GaugeFunc registers a gauge whose value is read from fn at scrape time.
// It panics if name is already registered.
func (s *Server) GaugeFunc(name, help string, fn func() float64) {
	s.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: name, Help: help}, fn))
}

// Gather returns every metric family, sorted by name. Counter vectors with no
// series yet are omitted.
func (s *Server) Gather() ([]*dto.MetricFamily, error) {
	return s.registry.Gather()
}

// Handler serves the registry in the Prometheus exposition format.
func (s *Server) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		ErrorLog: slog.NewLogLogger(slog.Default().Handler(), slog.LevelError),
	})
}

// Instrument counts every request served by next in requests, labelled by
// route and status code. requests must have exactly the labels route and code.
func Instrument(requests *prometheus.CounterVec, route string, next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerCounter(requests.MustCurryWith(prometheus.Labels{"route": route}), next)
}
