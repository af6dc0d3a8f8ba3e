package format

import (
	"fmt"

	"github.com/launchdash/launchdash/pkg/types"
	"github.com/launchdash/launchdash/server/internal/dataset"
	"github.com/launchdash/launchdash/server/internal/view"
)

// Percent formats part/total as a percentage with one decimal. A zero total
// yields "-".
func Percent(part, total float64) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", 100*part/total)
}

// Kg formats a payload mass.
func Kg(v float64) string {
	return fmt.Sprintf("%.0f kg", v)
}

// Sites lists the dropdown options of ds with record and success counts.
func Sites(ds *dataset.Dataset, m Mode) *Table {
	t := NewTable(m)
	t.Title("Launch sites (" + ds.Source() + ")")
	t.Header("Option", "Launches", "Successes")
	t.AlignRight(2, 3)

	success := make(map[string]int)
	ds.Each(func(r types.LaunchRecord) {
		if r.OutcomeClass == 1 {
			success[r.LaunchSite]++
		}
	})

	t.Row(types.AllSites, ds.Len(), ds.SuccessCount())
	for _, site := range ds.Sites() {
		t.Row(site, ds.SiteCount(site), success[site])
	}
	return t
}

// Pie tabulates the slices of d with their share of the total.
func Pie(d view.PieData, m Mode) *Table {
	t := NewTable(m)
	t.Title(d.Title)
	t.Header("Slice", "Count", "Share")
	t.AlignRight(2, 3)

	total := d.Total()
	for _, s := range d.Slices {
		t.Row(s.Label, s.Value, Percent(s.Value, total))
	}
	t.Footer("Total", total, "")
	return t
}

// Outcomes counts the points of d per booster category and outcome.
// Categories appear in first-seen order; outcome columns follow
// d.CategoryOrder.
func Outcomes(d view.ScatterData, m Mode) *Table {
	t := NewTable(m)
	t.Title(fmt.Sprintf("%s [%s, %s]", d.Title, Kg(d.PayloadRange.Low), Kg(d.PayloadRange.High)))

	header := []string{"Booster"}
	for _, o := range d.CategoryOrder {
		header = append(header, string(o))
	}
	header = append(header, "Total")
	t.Header(header...)

	cols := make([]int, 0, len(header)-1)
	for i := 2; i <= len(header); i++ {
		cols = append(cols, i)
	}
	t.AlignRight(cols...)

	var order []string
	counts := make(map[string]map[types.Outcome]int)
	for _, p := range d.Points {
		c, ok := counts[p.BoosterVersionCategory]
		if !ok {
			c = make(map[types.Outcome]int)
			counts[p.BoosterVersionCategory] = c
			order = append(order, p.BoosterVersionCategory)
		}
		c[p.Outcome]++
	}

	totals := make([]int, len(d.CategoryOrder))
	for _, b := range order {
		row := []any{b}
		sum := 0
		for i, o := range d.CategoryOrder {
			n := counts[b][o]
			row = append(row, n)
			totals[i] += n
			sum += n
		}
		t.Row(append(row, sum)...)
	}

	footer := []any{"Total"}
	for _, n := range totals {
		footer = append(footer, n)
	}
	t.Footer(append(footer, len(d.Points))...)
	return t
}
