package view

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/launchdash/launchdash/pkg/types"
	"github.com/launchdash/launchdash/server/internal/dataset"
)

func rec(site string, kg float64, class int, booster string) types.LaunchRecord {
	return types.LaunchRecord{
		LaunchSite:             site,
		PayloadMassKg:          kg,
		OutcomeClass:           class,
		BoosterVersionCategory: booster,
	}
}

// exampleView is the three-launch dataset from the dashboard's reference example.
func exampleView() *View {
	return New(dataset.New([]types.LaunchRecord{
		rec("CCAFS", 500, 1, "v1.0"),
		rec("CCAFS", 600, 0, "v1.0"),
		rec("KSC", 700, 1, "v1.1"),
	}, "example"))
}

func fixtureView(t *testing.T) *View {
	t.Helper()
	ds, err := dataset.Load("../dataset/testdata/launches.csv", dataset.DefaultColumns())
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return New(ds)
}

func TestPieData_AllSites_Example(t *testing.T) {
	got, err := exampleView().PieData(types.AllSites)
	if err != nil {
		t.Fatalf("PieData: %v", err)
	}
	want := []types.PieSlice{{Label: "CCAFS", Value: 1}, {Label: "KSC", Value: 1}}
	if diff := cmp.Diff(want, got.Slices); diff != "" {
		t.Errorf("slices mismatch (-want +got):\n%s", diff)
	}
	if got.Title != "Total Success Launches by Site" {
		t.Errorf("Title: got %q", got.Title)
	}
}

func TestPieData_Site_Example(t *testing.T) {
	got, err := exampleView().PieData("CCAFS")
	if err != nil {
		t.Fatalf("PieData: %v", err)
	}
	want := []types.PieSlice{{Label: SliceSuccess, Value: 1}, {Label: SliceFailure, Value: 1}}
	if diff := cmp.Diff(want, got.Slices); diff != "" {
		t.Errorf("slices mismatch (-want +got):\n%s", diff)
	}
	if got.Title != "Success vs Failed Launches for CCAFS" {
		t.Errorf("Title: got %q", got.Title)
	}
}

func TestPieData_AllSites_SumsToTotalSuccesses(t *testing.T) {
	v := fixtureView(t)
	got, err := v.PieData(types.AllSites)
	if err != nil {
		t.Fatalf("PieData: %v", err)
	}
	if want := float64(v.Dataset().SuccessCount()); got.Total() != want {
		t.Errorf("Total: got %v, want %v", got.Total(), want)
	}
	if len(got.Slices) != len(v.Dataset().Sites()) {
		t.Errorf("slices: got %d, want one per site (%d)", len(got.Slices), len(v.Dataset().Sites()))
	}
}

func TestPieData_EachSite_TwoSlicesSumToSiteCount(t *testing.T) {
	v := fixtureView(t)
	for _, site := range v.Dataset().Sites() {
		got, err := v.PieData(site)
		if err != nil {
			t.Fatalf("PieData(%q): %v", site, err)
		}
		if len(got.Slices) != 2 {
			t.Fatalf("PieData(%q): got %d slices, want 2", site, len(got.Slices))
		}
		if got.Slices[0].Label != SliceSuccess || got.Slices[1].Label != SliceFailure {
			t.Errorf("PieData(%q): labels %q, %q", site, got.Slices[0].Label, got.Slices[1].Label)
		}
		if want := float64(v.Dataset().SiteCount(site)); got.Total() != want {
			t.Errorf("PieData(%q): total %v, want %v", site, got.Total(), want)
		}
	}
}

func TestPieData_SiteWithoutRecords_TwoZeroSlices(t *testing.T) {
	got, err := exampleView().PieData("Baikonur")
	if err != nil {
		t.Fatalf("PieData: %v", err)
	}
	want := []types.PieSlice{{Label: SliceSuccess, Value: 0}, {Label: SliceFailure, Value: 0}}
	if diff := cmp.Diff(want, got.Slices); diff != "" {
		t.Errorf("slices mismatch (-want +got):\n%s", diff)
	}
}

func TestScatterData_FullRange_Example(t *testing.T) {
	got, err := exampleView().ScatterData(types.AllSites, types.PayloadRange{Low: 0, High: 10000})
	if err != nil {
		t.Fatalf("ScatterData: %v", err)
	}
	want := []types.ScatterPoint{
		{PayloadMassKg: 500, Outcome: types.OutcomeSuccess, BoosterVersionCategory: "v1.0"},
		{PayloadMassKg: 600, Outcome: types.OutcomeFailure, BoosterVersionCategory: "v1.0"},
		{PayloadMassKg: 700, Outcome: types.OutcomeSuccess, BoosterVersionCategory: "v1.1"},
	}
	if diff := cmp.Diff(want, got.Points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]types.Outcome{types.OutcomeSuccess, types.OutcomeFailure}, got.CategoryOrder); diff != "" {
		t.Errorf("category order mismatch (-want +got):\n%s", diff)
	}
}

func TestScatterData_DatasetBounds_AllRows(t *testing.T) {
	v := fixtureView(t)
	got, err := v.ScatterData(types.AllSites, v.Dataset().PayloadBounds())
	if err != nil {
		t.Fatalf("ScatterData: %v", err)
	}
	if len(got.Points) != v.Dataset().Len() {
		t.Errorf("points: got %d, want %d", len(got.Points), v.Dataset().Len())
	}
}

func TestScatterData_RangeIsInclusive(t *testing.T) {
	v := fixtureView(t)
	ranges := []types.PayloadRange{
		{Low: 500, High: 500},
		{Low: 0, High: 2500},
		{Low: 2490, High: 5600},
		{Low: 9000, High: 10000},
	}
	for _, r := range ranges {
		got, err := v.ScatterData(types.AllSites, r)
		if err != nil {
			t.Fatalf("ScatterData(%+v): %v", r, err)
		}
		want := 0
		for _, rec := range v.Dataset().Records() {
			if rec.PayloadMassKg >= r.Low && rec.PayloadMassKg <= r.High {
				want++
			}
		}
		if len(got.Points) != want {
			t.Errorf("ScatterData(%+v): got %d points, want %d", r, len(got.Points), want)
		}
		for _, p := range got.Points {
			if p.PayloadMassKg < r.Low || p.PayloadMassKg > r.High {
				t.Errorf("ScatterData(%+v): point %v outside range", r, p.PayloadMassKg)
			}
		}
	}
}

func TestScatterData_SiteFilter(t *testing.T) {
	got, err := exampleView().ScatterData("KSC", types.PayloadRange{Low: 0, High: 10000})
	if err != nil {
		t.Fatalf("ScatterData: %v", err)
	}
	if len(got.Points) != 1 || got.Points[0].PayloadMassKg != 700 {
		t.Errorf("points: got %+v, want the single KSC launch", got.Points)
	}
	if got.Title != "Correlation between Payload and Success for KSC" {
		t.Errorf("Title: got %q", got.Title)
	}
}

func TestScatterData_EmptyResultIsNotAnError(t *testing.T) {
	got, err := exampleView().ScatterData("CCAFS", types.PayloadRange{Low: 8000, High: 9000})
	if err != nil {
		t.Fatalf("ScatterData: %v", err)
	}
	if got.Points == nil || len(got.Points) != 0 {
		t.Errorf("points: got %#v, want empty non-nil slice", got.Points)
	}
}

func TestInvalidOutcome_Surfaced(t *testing.T) {
	v := New(dataset.New([]types.LaunchRecord{
		rec("KSC", 700, 1, "FT"),
		rec("KSC", 800, 2, "FT"),
	}, "bad"))

	if _, err := v.ScatterData(types.AllSites, types.PayloadRange{Low: 0, High: 10000}); !errors.Is(err, types.ErrInvalidOutcome) {
		t.Errorf("ScatterData: got %v, want ErrInvalidOutcome", err)
	}
	if _, err := v.PieData(types.AllSites); !errors.Is(err, types.ErrInvalidOutcome) {
		t.Errorf("PieData(AllSites): got %v, want ErrInvalidOutcome", err)
	}
	if _, err := v.PieData("KSC"); !errors.Is(err, types.ErrInvalidOutcome) {
		t.Errorf("PieData(KSC): got %v, want ErrInvalidOutcome", err)
	}
	// The out-of-domain record lies outside this range, so it is never mapped.
	if _, err := v.ScatterData("KSC", types.PayloadRange{Low: 0, High: 750}); err != nil {
		t.Errorf("ScatterData excluding bad row: %v", err)
	}
}

func TestIdempotent(t *testing.T) {
	v := fixtureView(t)
	r := types.PayloadRange{Low: 1000, High: 6000}

	p1, _ := v.PieData(types.AllSites)
	p2, _ := v.PieData(types.AllSites)
	if diff := cmp.Diff(p1, p2); diff != "" {
		t.Errorf("PieData not idempotent:\n%s", diff)
	}
	s1, _ := v.ScatterData("KSC LC-39A", r)
	s2, _ := v.ScatterData("KSC LC-39A", r)
	if diff := cmp.Diff(s1, s2); diff != "" {
		t.Errorf("ScatterData not idempotent:\n%s", diff)
	}
}
