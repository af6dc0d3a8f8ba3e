package view

import (
	"fmt"
	"slices"

	"github.com/launchdash/launchdash/pkg/types"
	"github.com/launchdash/launchdash/server/internal/dataset"
)

// Slice labels for a single-site pie.
const (
	SliceSuccess = "Success"
	SliceFailure = "Failure"
)

// PieData is the input to the success pie chart.
type PieData struct {
	Site   string           `json:"site"`
	Title  string           `json:"title"`
	Slices []types.PieSlice `json:"slices"`
}

// Total returns the sum of all slice values.
func (p PieData) Total() float64 {
	var sum float64
	for _, s := range p.Slices {
		sum += s.Value
	}
	return sum
}

// ScatterData is the input to the payload/outcome scatter chart.
type ScatterData struct {
	Site          string               `json:"site"`
	Title         string               `json:"title"`
	PayloadRange  types.PayloadRange   `json:"payload_range"`
	Points        []types.ScatterPoint `json:"points"`
	CategoryOrder []types.Outcome      `json:"category_order"`
}

// View computes chart data over one dataset.
type View struct {
	ds *dataset.Dataset
}

// New returns a View over ds. ds must not be nil.
func New(ds *dataset.Dataset) *View {
	return &View{ds: ds}
}

// Dataset returns the dataset the View reads from.
func (v *View) Dataset() *dataset.Dataset { return v.ds }

// PieData returns success counts per site when site is types.AllSites, or
// exactly two slices (Success, Failure) for a specific site. A site with no
// records yields two zero slices.
func (v *View) PieData(site string) (PieData, error) {
	if site == types.AllSites {
		return v.pieAllSites()
	}

	var success, failure int
	var err error
	v.ds.Each(func(r types.LaunchRecord) {
		if err != nil || r.LaunchSite != site {
			return
		}
		switch r.OutcomeClass {
		case 1:
			success++
		case 0:
			failure++
		default:
			err = invalidOutcome(r)
		}
	})
	if err != nil {
		return PieData{}, err
	}

	return PieData{
		Site:  site,
		Title: fmt.Sprintf("Success vs Failed Launches for %s", site),
		Slices: []types.PieSlice{
			{Label: SliceSuccess, Value: float64(success)},
			{Label: SliceFailure, Value: float64(failure)},
		},
	}, nil
}

func (v *View) pieAllSites() (PieData, error) {
	sums := make(map[string]int)
	var err error
	v.ds.Each(func(r types.LaunchRecord) {
		if err != nil {
			return
		}
		if r.OutcomeClass != 0 && r.OutcomeClass != 1 {
			err = invalidOutcome(r)
			return
		}
		sums[r.LaunchSite] += r.OutcomeClass
	})
	if err != nil {
		return PieData{}, err
	}

	sites := make([]string, 0, len(sums))
	for s := range sums {
		sites = append(sites, s)
	}
	slices.Sort(sites)

	out := make([]types.PieSlice, 0, len(sites))
	for _, s := range sites {
		out = append(out, types.PieSlice{Label: s, Value: float64(sums[s])})
	}
	return PieData{
		Site:   types.AllSites,
		Title:  "Total Success Launches by Site",
		Slices: out,
	}, nil
}

// ScatterData returns one point per record of site (or of every site for
// types.AllSites) whose payload mass lies in r, bounds included. r is used
// as given: an inverted range simply matches nothing.
func (v *View) ScatterData(site string, r types.PayloadRange) (ScatterData, error) {
	points := make([]types.ScatterPoint, 0)
	var err error
	v.ds.Each(func(rec types.LaunchRecord) {
		if err != nil {
			return
		}
		if site != types.AllSites && rec.LaunchSite != site {
			return
		}
		if !r.Contains(rec.PayloadMassKg) {
			return
		}
		outcome, oerr := types.OutcomeFromClass(rec.OutcomeClass)
		if oerr != nil {
			err = fmt.Errorf("view: launch at %q: %w", rec.LaunchSite, oerr)
			return
		}
		points = append(points, types.ScatterPoint{
			PayloadMassKg:          rec.PayloadMassKg,
			Outcome:                outcome,
			BoosterVersionCategory: rec.BoosterVersionCategory,
		})
	})
	if err != nil {
		return ScatterData{}, err
	}

	scope := "all sites"
	if site != types.AllSites {
		scope = site
	}
	return ScatterData{
		Site:          site,
		Title:         fmt.Sprintf("Correlation between Payload and Success for %s", scope),
		PayloadRange:  r,
		Points:        points,
		CategoryOrder: slices.Clone(types.OutcomeOrder),
	}, nil
}

func invalidOutcome(r types.LaunchRecord) error {
	_, err := types.OutcomeFromClass(r.OutcomeClass)
	return fmt.Errorf("view: launch at %q: %w", r.LaunchSite, err)
}
