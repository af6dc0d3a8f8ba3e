package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/launchdash/launchdash/pkg/types"
	"github.com/launchdash/launchdash/server/internal/config"
	"github.com/launchdash/launchdash/server/internal/metrics"
	"github.com/launchdash/launchdash/server/internal/reactive"
	"github.com/launchdash/launchdash/server/internal/render"
	"github.com/launchdash/launchdash/server/internal/store"
)

// Handler is the HTTP handler for all /api/v1/* endpoints.
// It reads the current dataset from the store and returns JSON or images.
type Handler struct {
	store     *store.Store
	dashboard config.DashboardConfig
	chart     render.Options
	mux       *http.ServeMux
}

// New creates a Handler wired to the given store and registers all routes.
// Every route is counted in m.Requests.
func New(st *store.Store, dash config.DashboardConfig, chart render.Options, m *metrics.Server) http.Handler {
	h := &Handler{store: st, dashboard: dash, chart: chart, mux: http.NewServeMux()}

	routes := map[string]http.HandlerFunc{
		"/api/v1/health":         h.health,
		"/api/v1/layout":         h.layout,
		"/api/v1/pie":            h.pie,
		"/api/v1/scatter":        h.scatter,
		"/api/v1/charts/pie":     h.pieChart,
		"/api/v1/charts/scatter": h.scatterChart,
	}
	for route, fn := range routes {
		h.mux.Handle(route, metrics.Instrument(m.Requests, route, get(fn)))
	}

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// get rejects every method but GET.
func get(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		fn(w, r)
	}
}

// --- route handlers ---------------------------------------------------------

// health serves GET /api/v1/health: dataset summary.
func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	e := h.store.Current()
	jsonResp(w, http.StatusOK, HealthResponse{
		Status:       "ok",
		RecordCount:  e.Dataset.Len(),
		SiteCount:    len(e.Dataset.Sites()),
		SuccessCount: e.Dataset.SuccessCount(),
		Source:       e.Dataset.Source(),
		LoadedAt:     e.Dataset.LoadedAt().UTC().Format(time.RFC3339Nano),
		UpdatedAt:    e.UpdatedAt.UTC().Format(time.RFC3339Nano),
		Version:      e.Version,
	})
}

// layout serves GET /api/v1/layout: control definitions for the page.
func (h *Handler) layout(w http.ResponseWriter, _ *http.Request) {
	jsonResp(w, http.StatusOK, BuildLayout(h.store.Current(), h.dashboard))
}

// pie serves GET /api/v1/pie?site=: pie slices for the selected site.
func (h *Handler) pie(w http.ResponseWriter, r *http.Request) {
	e := h.store.Current()
	sel, err := ParseSelection(e.Dataset, r.URL.Query())
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := e.View.PieData(sel.Site)
	if err != nil {
		viewErr(w, err)
		return
	}
	jsonResp(w, http.StatusOK, d)
}

// scatter serves GET /api/v1/scatter?site=&low=&high=: scatter points.
func (h *Handler) scatter(w http.ResponseWriter, r *http.Request) {
	e := h.store.Current()
	sel, err := ParseSelection(e.Dataset, r.URL.Query())
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := e.View.ScatterData(sel.Site, sel.PayloadRange)
	if err != nil {
		viewErr(w, err)
		return
	}
	jsonResp(w, http.StatusOK, d)
}

// pieChart serves GET /api/v1/charts/pie: the rendered pie chart.
func (h *Handler) pieChart(w http.ResponseWriter, r *http.Request) {
	e := h.store.Current()
	sel, opts, err := h.chartParams(e, r)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := e.View.PieData(sel.Site)
	if err != nil {
		viewErr(w, err)
		return
	}
	var buf bytes.Buffer
	if err := render.Pie(&buf, d, opts); err != nil {
		viewErr(w, err)
		return
	}
	imageResp(w, opts.Format, &buf)
}

// scatterChart serves GET /api/v1/charts/scatter: the rendered scatter chart.
func (h *Handler) scatterChart(w http.ResponseWriter, r *http.Request) {
	e := h.store.Current()
	sel, opts, err := h.chartParams(e, r)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := e.View.ScatterData(sel.Site, sel.PayloadRange)
	if err != nil {
		viewErr(w, err)
		return
	}
	var buf bytes.Buffer
	if err := render.Scatter(&buf, d, opts); err != nil {
		viewErr(w, err)
		return
	}
	imageResp(w, opts.Format, &buf)
}

func (h *Handler) chartParams(e *store.Entry, r *http.Request) (types.Selection, render.Options, error) {
	sel, err := ParseSelection(e.Dataset, r.URL.Query())
	if err != nil {
		return sel, render.Options{}, err
	}
	opts := h.chart
	if opts.Format, err = render.ParseFormat(r.URL.Query().Get("format")); err != nil {
		return sel, opts, fmt.Errorf("%w: %v", ErrBadSelection, err)
	}
	return sel, opts, nil
}

// BuildLayout describes the page controls for entry e. Slider bounds come
// from the dashboard config; its default value spans the dataset's payloads.
func BuildLayout(e *store.Entry, dash config.DashboardConfig) LayoutResponse {
	ds := e.Dataset
	opts := make([]OptionResponse, 0, len(ds.Sites())+1)
	opts = append(opts, OptionResponse{Label: types.AllSites, Value: types.AllSites, Count: ds.Len()})
	for _, s := range ds.Sites() {
		opts = append(opts, OptionResponse{Label: s, Value: s, Count: ds.SiteCount(s)})
	}

	marks := make([]MarkResponse, 0, len(dash.Slider.Marks))
	for _, m := range dash.Slider.Marks {
		marks = append(marks, MarkResponse{Value: m, Label: fmt.Sprintf("%g (Kg)", m)})
	}

	b := ds.PayloadBounds()
	return LayoutResponse{
		Title: dash.Title,
		Dropdown: DropdownResponse{
			ID:          reactive.InputSite,
			Options:     opts,
			Value:       types.AllSites,
			Placeholder: "Select a Launch Site here",
			Searchable:  true,
		},
		Slider: SliderResponse{
			ID:    reactive.InputPayload,
			Min:   dash.Slider.Min,
			Max:   dash.Slider.Max,
			Step:  dash.Slider.Step,
			Marks: marks,
			Value: [2]float64{b.Low, b.High},
		},
		Outputs: []string{reactive.OutputPie, reactive.OutputScatter},
		Version: e.Version,
	}
}

// --- helpers ----------------------------------------------------------------

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}

// viewErr reports a failure computing or rendering view data. An invalid
// outcome class is a data-integrity problem, not a client error.
func viewErr(w http.ResponseWriter, err error) {
	if errors.Is(err, types.ErrInvalidOutcome) {
		slog.Error("api: dataset integrity error", "err", err)
	} else {
		slog.Error("api: view failed", "err", err)
	}
	jsonErr(w, http.StatusInternalServerError, err.Error())
}

func imageResp(w http.ResponseWriter, f render.Format, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w) //nolint:errcheck
}
