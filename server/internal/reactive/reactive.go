package reactive

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/launchdash/launchdash/pkg/types"
	"github.com/launchdash/launchdash/server/internal/view"
)

// Input and output component IDs.
const (
	InputSite    = "site-dropdown"
	InputPayload = "payload-slider"

	OutputPie     = "success-pie-chart"
	OutputScatter = "success-payload-scatter-chart"
)

// Result is what a callback produces for its output.
type Result struct {
	// Data is the view data behind the figure (view.PieData or view.ScatterData).
	Data any
	// Figure is the rendered chart, inline SVG markup.
	Figure string
}

// Func computes an output from the view and the current selection.
type Func func(v *view.View, sel types.Selection) (Result, error)

// Callback binds one output to the inputs it depends on.
type Callback struct {
	Output string
	Inputs []string
	Fn     Func
}

// Update is the recomputed content of one output.
type Update struct {
	Output string `json:"output"`
	Data   any    `json:"data,omitempty"`
	Figure string `json:"figure,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Registry holds callbacks in registration order. It is not safe for
// concurrent Register calls; register everything before serving.
type Registry struct {
	callbacks []Callback
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds cb. Each output may be registered only once.
func (r *Registry) Register(cb Callback) error {
	if cb.Output == "" || cb.Fn == nil || len(cb.Inputs) == 0 {
		return fmt.Errorf("reactive: callback needs an output, inputs and a func")
	}
	for _, existing := range r.callbacks {
		if existing.Output == cb.Output {
			return fmt.Errorf("reactive: output %q already registered", cb.Output)
		}
	}
	cb.Inputs = slices.Clone(cb.Inputs)
	r.callbacks = append(r.callbacks, cb)
	return nil
}

// Outputs returns every registered output ID in registration order.
func (r *Registry) Outputs() []string {
	out := make([]string, 0, len(r.callbacks))
	for _, cb := range r.callbacks {
		out = append(out, cb.Output)
	}
	return out
}

// Inputs returns every input ID any callback depends on, without duplicates.
func (r *Registry) Inputs() []string {
	var out []string
	for _, cb := range r.callbacks {
		for _, in := range cb.Inputs {
			if !slices.Contains(out, in) {
				out = append(out, in)
			}
		}
	}
	return out
}

// Triggered returns the callbacks depending on any of changed.
func (r *Registry) Triggered(changed ...string) []Callback {
	var out []Callback
	for _, cb := range r.callbacks {
		for _, in := range cb.Inputs {
			if slices.Contains(changed, in) {
				out = append(out, cb)
				break
			}
		}
	}
	return out
}

// Run executes the callbacks triggered by changed. A failing callback yields
// an Update with Error set; the others still run.
func (r *Registry) Run(v *view.View, sel types.Selection, changed ...string) []Update {
	triggered := r.Triggered(changed...)
	updates := make([]Update, 0, len(triggered))
	for _, cb := range triggered {
		res, err := cb.Fn(v, sel)
		if err != nil {
			slog.Warn("reactive: callback failed", "output", cb.Output, "site", sel.Site, "err", err)
			updates = append(updates, Update{Output: cb.Output, Error: err.Error()})
			continue
		}
		updates = append(updates, Update{Output: cb.Output, Data: res.Data, Figure: res.Figure})
	}
	return updates
}

// RunAll executes every callback, as on first page load.
func (r *Registry) RunAll(v *view.View, sel types.Selection) []Update {
	return r.Run(v, sel, r.Inputs()...)
}
