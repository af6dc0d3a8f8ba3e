package reactive

import (
	"strings"

	"github.com/launchdash/launchdash/pkg/types"
	"github.com/launchdash/launchdash/server/internal/render"
	"github.com/launchdash/launchdash/server/internal/view"
)

// Dashboard returns a Registry with the pie and scatter callbacks. Figures
// are rendered as SVG at the size given in o; o.Format is ignored.
func Dashboard(o render.Options) *Registry {
	o.Format = render.SVG
	r := NewRegistry()

	// Outputs are distinct, so Register cannot fail.
	_ = r.Register(Callback{
		Output: OutputPie,
		Inputs: []string{InputSite},
		Fn: func(v *view.View, sel types.Selection) (Result, error) {
			d, err := v.PieData(sel.Site)
			if err != nil {
				return Result{}, err
			}
			var sb strings.Builder
			if err := render.Pie(&sb, d, o); err != nil {
				return Result{}, err
			}
			return Result{Data: d, Figure: sb.String()}, nil
		},
	})
	_ = r.Register(Callback{
		Output: OutputScatter,
		Inputs: []string{InputSite, InputPayload},
		Fn: func(v *view.View, sel types.Selection) (Result, error) {
			d, err := v.ScatterData(sel.Site, sel.PayloadRange)
			if err != nil {
				return Result{}, err
			}
			var sb strings.Builder
			if err := render.Scatter(&sb, d, o); err != nil {
				return Result{}, err
			}
			return Result{Data: d, Figure: sb.String()}, nil
		},
	})
	return r
}
