package dataset

import (
	"cmp"
	"slices"
	"time"

	"github.com/launchdash/launchdash/pkg/types"
)

// Dataset is an immutable, ordered sequence of launch records together with
// values derived from it at construction time.
type Dataset struct {
	records  []types.LaunchRecord
	sites    []string
	counts   map[string]int
	minKg    float64
	maxKg    float64
	source   string
	loadedAt time.Time
}

// New builds a Dataset from records. The slice is copied, so the caller may
// reuse it. source is a free-form description (usually the file path).
func New(records []types.LaunchRecord, source string) *Dataset {
	ds := &Dataset{
		records:  slices.Clone(records),
		counts:   make(map[string]int),
		source:   source,
		loadedAt: time.Now(),
	}

	firstSeen := make(map[string]int)
	for i, r := range ds.records {
		if _, ok := ds.counts[r.LaunchSite]; !ok {
			firstSeen[r.LaunchSite] = i
			ds.sites = append(ds.sites, r.LaunchSite)
		}
		ds.counts[r.LaunchSite]++

		if i == 0 || r.PayloadMassKg < ds.minKg {
			ds.minKg = r.PayloadMassKg
		}
		if i == 0 || r.PayloadMassKg > ds.maxKg {
			ds.maxKg = r.PayloadMassKg
		}
	}

	// Most launches first; ties keep the order of first appearance.
	slices.SortStableFunc(ds.sites, func(a, b string) int {
		if c := cmp.Compare(ds.counts[b], ds.counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(firstSeen[a], firstSeen[b])
	})
	return ds
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Records returns a copy of all records in load order.
func (d *Dataset) Records() []types.LaunchRecord {
	return slices.Clone(d.records)
}

// Each calls fn for every record in load order without copying the slice.
func (d *Dataset) Each(fn func(r types.LaunchRecord)) {
	for _, r := range d.records {
		fn(r)
	}
}

// Sites returns the distinct launch sites, most launches first.
func (d *Dataset) Sites() []string {
	return slices.Clone(d.sites)
}

// Options returns the dropdown options: the AllSites sentinel followed by Sites.
func (d *Dataset) Options() []string {
	out := make([]string, 0, len(d.sites)+1)
	out = append(out, types.AllSites)
	return append(out, d.sites...)
}

// SiteCount returns the number of records for site (0 if unknown).
func (d *Dataset) SiteCount(site string) int {
	return d.counts[site]
}

// HasSite reports whether site appears in the dataset.
func (d *Dataset) HasSite(site string) bool {
	_, ok := d.counts[site]
	return ok
}

// ValidSite reports whether site is the AllSites sentinel or a known site.
func (d *Dataset) ValidSite(site string) bool {
	return site == types.AllSites || d.HasSite(site)
}

// PayloadBounds returns the minimum and maximum payload mass as a range.
// An empty dataset yields [0, 0].
func (d *Dataset) PayloadBounds() types.PayloadRange {
	return types.PayloadRange{Low: d.minKg, High: d.maxKg}
}

// SuccessCount returns the number of records with outcome class 1.
func (d *Dataset) SuccessCount() int {
	n := 0
	for _, r := range d.records {
		if r.OutcomeClass == 1 {
			n++
		}
	}
	return n
}

// Source returns the description passed to New (usually the CSV path).
func (d *Dataset) Source() string { return d.source }

// LoadedAt returns the time the Dataset was constructed.
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }
