package render

import (
	"bytes"
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/launchdash/launchdash/pkg/types"
	"github.com/launchdash/launchdash/server/internal/view"
)

// maxDotWidth is the dot radius of the heaviest payload on the scatter chart.
const maxDotWidth = 7.5

// palette is the qualitative colour cycle shared by both charts.
var palette = []drawing.Color{
	drawing.ColorFromHex("636efa"),
	drawing.ColorFromHex("ef553b"),
	drawing.ColorFromHex("00cc96"),
	drawing.ColorFromHex("ab63fa"),
	drawing.ColorFromHex("ffa15a"),
	drawing.ColorFromHex("19d3f3"),
	drawing.ColorFromHex("ff6692"),
	drawing.ColorFromHex("b6e880"),
}

func paletteColor(i int) drawing.Color {
	return palette[i%len(palette)]
}

// pointStyle returns a style that renders points only, sized by payload.
func pointStyle(col drawing.Color, maxKg float64) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotColor:    col,
		DotWidth:    maxDotWidth,
		DotWidthProvider: func(_, _ chart.Range, _ int, x, _ float64) float64 {
			return dotWidth(x, maxKg)
		},
	}
}

// dotWidth scales the dot area with payload mass, with a 2px floor so that
// zero-payload launches stay visible.
func dotWidth(kg, maxKg float64) float64 {
	if maxKg <= 0 {
		return 2
	}
	return math.Max(2, maxDotWidth*math.Sqrt(kg/maxKg))
}

func provider(f Format) chart.RendererProvider {
	if f == SVG {
		return chart.SVG
	}
	return chart.PNG
}

// Pie writes the pie chart for d. Zero-valued slices are omitted; if every
// slice is zero a blank placeholder is written.
func Pie(w io.Writer, d view.PieData, o Options) error {
	o = o.withDefaults()

	total := d.Total()
	values := make([]chart.Value, 0, len(d.Slices))
	for i, s := range d.Slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", s.Label, s.Value/total*100),
			Value: s.Value,
			Style: chart.Style{FillColor: paletteColor(i), StrokeColor: drawing.ColorWhite},
		})
	}
	if len(values) == 0 {
		return blank(w, d.Title, o)
	}

	pc := chart.PieChart{
		Title:  d.Title,
		Width:  o.Width,
		Height: o.Height,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pc.Render(provider(o.Format), &buf); err != nil {
		return fmt.Errorf("render: pie %q: %w", d.Title, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Scatter writes the payload/outcome scatter chart for d.
func Scatter(w io.Writer, d view.ScatterData, o Options) error {
	o = o.withDefaults()
	if len(d.Points) == 0 {
		return blank(w, d.Title, o)
	}

	order := d.CategoryOrder
	if len(order) == 0 {
		order = types.OutcomeOrder
	}
	// The first category sits at the top of the axis.
	yPos := make(map[types.Outcome]float64, len(order))
	ticks := make([]chart.Tick, 0, len(order))
	for i, c := range order {
		y := float64(len(order) - 1 - i)
		yPos[c] = y
		ticks = append(ticks, chart.Tick{Value: y, Label: string(c)})
	}

	type series struct{ xs, ys []float64 }
	var categories []string
	byCategory := make(map[string]*series)
	minKg, maxKg := d.Points[0].PayloadMassKg, d.Points[0].PayloadMassKg
	for _, p := range d.Points {
		y, ok := yPos[p.Outcome]
		if !ok {
			return fmt.Errorf("render: scatter: outcome %q not in category order", p.Outcome)
		}
		s, ok := byCategory[p.BoosterVersionCategory]
		if !ok {
			s = &series{}
			byCategory[p.BoosterVersionCategory] = s
			categories = append(categories, p.BoosterVersionCategory)
		}
		s.xs = append(s.xs, p.PayloadMassKg)
		s.ys = append(s.ys, y)
		minKg = math.Min(minKg, p.PayloadMassKg)
		maxKg = math.Max(maxKg, p.PayloadMassKg)
	}

	all := make([]chart.Series, 0, len(categories))
	for i, c := range categories {
		s := byCategory[c]
		all = append(all, chart.ContinuousSeries{
			Name:    c,
			XValues: s.xs,
			YValues: s.ys,
			Style:   pointStyle(paletteColor(i), maxKg),
		})
	}

	pad := (maxKg - minKg) * 0.05
	if pad == 0 {
		pad = 100
	}

	ch := chart.Chart{
		Title:      d.Title,
		Width:      o.Width,
		Height:     o.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 120, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "Payload Mass (kg)",
			Range: &chart.ContinuousRange{Min: math.Max(0, minKg-pad), Max: maxKg + pad},
		},
		YAxis: chart.YAxis{
			Name:  "Outcome",
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(order)) - 0.5},
			Ticks: ticks,
		},
		Series: all,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(provider(o.Format), &buf); err != nil {
		return fmt.Errorf("render: scatter %q: %w", d.Title, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
