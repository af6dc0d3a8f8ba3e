package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/launchdash/launchdash/pkg/types"
)

const fixture = "testdata/launches.csv"

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "launches.csv")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return p
}

func TestLoad_Fixture(t *testing.T) {
	ds, err := Load(fixture, DefaultColumns())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Len() != 15 {
		t.Errorf("Len: got %d, want 15", ds.Len())
	}
	if got := ds.SuccessCount(); got != 7 {
		t.Errorf("SuccessCount: got %d, want 7", got)
	}
	want := types.PayloadRange{Low: 0, High: 9600}
	if got := ds.PayloadBounds(); got != want {
		t.Errorf("PayloadBounds: got %+v, want %+v", got, want)
	}
	if ds.Source() != fixture {
		t.Errorf("Source: got %q, want %q", ds.Source(), fixture)
	}
	first := ds.Records()[0]
	if first.LaunchSite != "CCAFS LC-40" || first.BoosterVersionCategory != "v1.0" {
		t.Errorf("first record: got %+v", first)
	}
}

func TestOptions_SentinelFirstThenByCount(t *testing.T) {
	ds, err := Load(fixture, DefaultColumns())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{
		types.AllSites,
		"CCAFS LC-40",  // 7 launches
		"KSC LC-39A",   // 4
		"VAFB SLC-4E",  // 2, seen first
		"CCAFS SLC-40", // 2
	}
	if diff := cmp.Diff(want, ds.Options()); diff != "" {
		t.Errorf("Options mismatch (-want +got):\n%s", diff)
	}
}

func TestOptions_NotAffectedByCallerMutation(t *testing.T) {
	ds, err := Load(fixture, DefaultColumns())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	opts := ds.Options()
	opts[1] = "tampered"
	sites := ds.Sites()
	sites[0] = "tampered"
	recs := ds.Records()
	recs[0].LaunchSite = "tampered"

	if ds.Options()[1] != "CCAFS LC-40" {
		t.Error("Options changed after caller mutation")
	}
	if ds.Records()[0].LaunchSite != "CCAFS LC-40" {
		t.Error("Records changed after caller mutation")
	}
}

func TestNew_CopiesInput(t *testing.T) {
	in := []types.LaunchRecord{{LaunchSite: "A", PayloadMassKg: 1, OutcomeClass: 1}}
	ds := New(in, "mem")
	in[0].LaunchSite = "B"

	if !ds.HasSite("A") || ds.HasSite("B") {
		t.Errorf("New did not copy its input: sites %v", ds.Sites())
	}
}

func TestValidSite(t *testing.T) {
	ds := New([]types.LaunchRecord{{LaunchSite: "KSC"}}, "mem")
	if !ds.ValidSite(types.AllSites) {
		t.Error("ValidSite(AllSites): got false")
	}
	if !ds.ValidSite("KSC") {
		t.Error("ValidSite(KSC): got false")
	}
	if ds.ValidSite("Baikonur") {
		t.Error("ValidSite(Baikonur): got true")
	}
}

func TestEmptyDataset(t *testing.T) {
	ds := New(nil, "mem")
	if ds.Len() != 0 {
		t.Errorf("Len: got %d, want 0", ds.Len())
	}
	if got := ds.PayloadBounds(); got != (types.PayloadRange{}) {
		t.Errorf("PayloadBounds: got %+v, want zero", got)
	}
	if diff := cmp.Diff([]string{types.AllSites}, ds.Options()); diff != "" {
		t.Errorf("Options mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_AcceptsFloatClass(t *testing.T) {
	ds, err := Parse(strings.NewReader(
		"Launch Site,Payload Mass (kg),class,Booster Version Category\n"+
			"KSC,100,1.0,FT\n"+
			"KSC,200,0.0,FT\n"), DefaultColumns())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ds.SuccessCount() != 1 {
		t.Errorf("SuccessCount: got %d, want 1", ds.SuccessCount())
	}
}

func TestParse_CustomColumns(t *testing.T) {
	cols := Columns{LaunchSite: "site", PayloadMass: "kg"}
	ds, err := Parse(strings.NewReader(
		"site,kg,class,Booster Version Category\n"+
			"KSC,100,1,FT\n"), cols)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !ds.HasSite("KSC") {
		t.Errorf("HasSite(KSC): got false")
	}
}

func TestParse_Errors(t *testing.T) {
	const header = "Launch Site,Payload Mass (kg),class,Booster Version Category\n"
	cases := []struct {
		name    string
		body    string
		wantErr error
		wantMsg string
	}{
		{"missing column", "Launch Site,class,Booster Version Category\nKSC,1,FT\n", ErrMissingColumn, "Payload Mass (kg)"},
		{"empty file", "", ErrMissingColumn, ""},
		{"class two", header + "KSC,100,1,FT\nKSC,100,2,FT\n", types.ErrInvalidOutcome, "line 3"},
		{"class fraction", header + "KSC,100,0.5,FT\n", types.ErrInvalidOutcome, "line 2"},
		{"negative payload", header + "KSC,-1,1,FT\n", nil, "negative"},
		{"bad payload", header + "KSC,heavy,1,FT\n", nil, "not a number"},
		{"empty site", header + " ,100,1,FT\n", nil, "empty launch site"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.body), DefaultColumns())
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("errors.Is(%v, %v): got false", err, tc.wantErr)
			}
			if tc.wantMsg != "" && !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tc.wantMsg)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/launches.csv", DefaultColumns())
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	p := writeCSV(t, "Launch Site,Payload Mass (kg),class,Booster Version Category\nKSC,100,1,FT\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Dataset, 4)
	go Watch(ctx, p, DefaultColumns(), func(ds *Dataset) { got <- ds }, nil) //nolint:errcheck

	// Give the watcher time to register before writing.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(p, []byte(
		"Launch Site,Payload Mass (kg),class,Booster Version Category\nKSC,100,1,FT\nVAFB,200,0,FT\n"), 0o600); err != nil {
		t.Fatalf("rewrite csv: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ds := <-got:
			if ds.Len() == 2 && ds.HasSite("VAFB") {
				return
			}
		case <-deadline:
			t.Fatal("no reload with the new rows within 2s")
		}
	}
}

func TestWatch_ReportsBadReload(t *testing.T) {
	p := writeCSV(t, "Launch Site,Payload Mass (kg),class,Booster Version Category\nKSC,100,1,FT\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	failed := make(chan error, 4)
	go Watch(ctx, p, DefaultColumns(), func(*Dataset) {}, func(err error) { failed <- err }) //nolint:errcheck

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(p, []byte(
		"Launch Site,Payload Mass (kg),class,Booster Version Category\nKSC,100,2,FT\n"), 0o600); err != nil {
		t.Fatalf("rewrite csv: %v", err)
	}

	select {
	case err := <-failed:
		if !errors.Is(err, types.ErrInvalidOutcome) {
			t.Fatalf("err = %v, want ErrInvalidOutcome", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("invalid class not reported within 2s")
	}
}

func TestWatch_ReloadsOnAtomicRename(t *testing.T) {
	p := writeCSV(t, "Launch Site,Payload Mass (kg),class,Booster Version Category\nKSC,100,1,FT\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Dataset, 4)
	go Watch(ctx, p, DefaultColumns(), func(ds *Dataset) { got <- ds }, nil) //nolint:errcheck

	time.Sleep(50 * time.Millisecond)
	tmp := filepath.Join(filepath.Dir(p), ".launches.csv.tmp")
	if err := os.WriteFile(tmp, []byte(
		"Launch Site,Payload Mass (kg),class,Booster Version Category\nKSC,100,1,FT\nVAFB,200,0,FT\n"), 0o600); err != nil {
		t.Fatalf("write temp: %v", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		t.Fatalf("rename: %v", err)
	}

	select {
	case ds := <-got:
		if ds.Len() != 2 || !ds.HasSite("VAFB") {
			t.Fatalf("reloaded %d records, want the renamed file's 2", ds.Len())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no reload after rename within 2s")
	}

	// The watch survives the inode swap.
	if err := os.WriteFile(p, []byte(
		"Launch Site,Payload Mass (kg),class,Booster Version Category\nCCAFS,300,1,FT\n"), 0o600); err != nil {
		t.Fatalf("rewrite csv: %v", err)
	}
	select {
	case ds := <-got:
		if !ds.HasSite("CCAFS") {
			t.Fatalf("second reload missing CCAFS")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no reload after a write following the rename")
	}
}

func TestWatch_PlainSaveReportsNoError(t *testing.T) {
	p := writeCSV(t, "Launch Site,Payload Mass (kg),class,Booster Version Category\nKSC,100,1,FT\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Dataset, 4)
	failed := make(chan error, 4)
	go Watch(ctx, p, DefaultColumns(), func(ds *Dataset) { got <- ds }, func(err error) { failed <- err }) //nolint:errcheck

	time.Sleep(50 * time.Millisecond)
	// WriteFile truncates before writing, the way most editors save in place.
	if err := os.WriteFile(p, []byte(
		"Launch Site,Payload Mass (kg),class,Booster Version Category\nKSC,100,1,FT\nKSC,150,0,FT\n"), 0o600); err != nil {
		t.Fatalf("rewrite csv: %v", err)
	}

	select {
	case ds := <-got:
		if ds.Len() != 2 {
			t.Fatalf("Len = %d, want 2", ds.Len())
		}
	case err := <-failed:
		t.Fatalf("spurious reload error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("no reload within 2s")
	}
	select {
	case err := <-failed:
		t.Fatalf("spurious reload error: %v", err)
	case <-time.After(3 * settle):
	}
}

func TestWatch_IgnoresSiblingFiles(t *testing.T) {
	p := writeCSV(t, "Launch Site,Payload Mass (kg),class,Booster Version Category\nKSC,100,1,FT\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Dataset, 4)
	go Watch(ctx, p, DefaultColumns(), func(ds *Dataset) { got <- ds }, nil) //nolint:errcheck

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(filepath.Dir(p), "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatalf("write sibling: %v", err)
	}
	select {
	case <-got:
		t.Fatal("reloaded on a change to another file")
	case <-time.After(5 * settle):
	}
}
