package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/launchdash/launchdash/pkg/types"
	"github.com/launchdash/launchdash/server/internal/api"
	"github.com/launchdash/launchdash/server/internal/dataset"
	"github.com/launchdash/launchdash/server/internal/view"
)

// selectionFlags are shared by the summary and render commands.
type selectionFlags struct {
	site string
	low  float64
	high float64
}

func (s *selectionFlags) register(f *pflag.FlagSet) {
	f.StringVar(&s.site, "site", types.AllSites, "Launch site, or \""+types.AllSites+"\"")
	f.Float64Var(&s.low, "low", 0, "Lower payload bound in kg (default: dataset minimum)")
	f.Float64Var(&s.high, "high", 0, "Upper payload bound in kg (default: dataset maximum)")
}

// resolve validates the flags against ds, filling unset bounds from it.
func (s *selectionFlags) resolve(cmd *cobra.Command, ds *dataset.Dataset) (types.Selection, error) {
	sel := api.DefaultSelection(ds)
	sel.Site = s.site
	if cmd.Flags().Changed("low") {
		sel.PayloadRange.Low = s.low
	}
	if cmd.Flags().Changed("high") {
		sel.PayloadRange.High = s.high
	}
	if err := api.ValidateSite(ds, sel.Site); err != nil {
		return sel, err
	}
	if err := api.ValidateRange(sel.PayloadRange); err != nil {
		return sel, err
	}
	return sel, nil
}

// loadView reads the --data CSV.
func loadView() (*view.View, error) {
	ds, err := dataset.Load(rootFlags.data, dataset.DefaultColumns())
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return view.New(ds), nil
}
