package api

import (
	"errors"
	"net/url"
	"testing"

	"github.com/launchdash/launchdash/pkg/types"
	"github.com/launchdash/launchdash/server/internal/dataset"
)

func TestParseSelection(t *testing.T) {
	ds := dataset.New([]types.LaunchRecord{
		{LaunchSite: "KSC", PayloadMassKg: 100, OutcomeClass: 1},
		{LaunchSite: "KSC", PayloadMassKg: 900, OutcomeClass: 0},
	}, "mem")

	cases := []struct {
		query string
		want  types.Selection
	}{
		{"", types.Selection{Site: types.AllSites, PayloadRange: types.PayloadRange{Low: 100, High: 900}}},
		{"site=KSC&low=200", types.Selection{Site: "KSC", PayloadRange: types.PayloadRange{Low: 200, High: 900}}},
		{"low=5&high=5", types.Selection{Site: types.AllSites, PayloadRange: types.PayloadRange{Low: 5, High: 5}}},
	}
	for _, tc := range cases {
		q, _ := url.ParseQuery(tc.query)
		got, err := ParseSelection(ds, q)
		if err != nil {
			t.Fatalf("ParseSelection(%q): %v", tc.query, err)
		}
		if got != tc.want {
			t.Errorf("ParseSelection(%q): got %+v, want %+v", tc.query, got, tc.want)
		}
	}

	for _, bad := range []string{"site=MARS", "low=x", "low=10&high=1"} {
		q, _ := url.ParseQuery(bad)
		if _, err := ParseSelection(ds, q); !errors.Is(err, ErrBadSelection) {
			t.Errorf("ParseSelection(%q): got %v, want ErrBadSelection", bad, err)
		}
	}
}
