package api

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/launchdash/launchdash/pkg/types"
	"github.com/launchdash/launchdash/server/internal/dataset"
)

// ErrBadSelection wraps every selection validation failure.
var ErrBadSelection = errors.New("bad selection")

// DefaultSelection is the page's initial state: all sites over the dataset's
// full payload range.
func DefaultSelection(ds *dataset.Dataset) types.Selection {
	return types.Selection{Site: types.AllSites, PayloadRange: ds.PayloadBounds()}
}

// ValidateSite rejects anything but the sentinel or a site present in ds.
func ValidateSite(ds *dataset.Dataset, site string) error {
	if !ds.ValidSite(site) {
		return fmt.Errorf("%w: unknown launch site %q", ErrBadSelection, site)
	}
	return nil
}

// ValidateRange rejects an inverted payload range.
func ValidateRange(r types.PayloadRange) error {
	if !r.Valid() {
		return fmt.Errorf("%w: payload range [%v, %v] has low > high", ErrBadSelection, r.Low, r.High)
	}
	return nil
}

// ParseSelection reads site, low and high from q, applying defaults from ds
// for any that are absent.
func ParseSelection(ds *dataset.Dataset, q url.Values) (types.Selection, error) {
	sel := DefaultSelection(ds)
	if s := q.Get("site"); s != "" {
		sel.Site = s
	}
	if err := ValidateSite(ds, sel.Site); err != nil {
		return sel, err
	}

	var err error
	if sel.PayloadRange.Low, err = floatParam(q, "low", sel.PayloadRange.Low); err != nil {
		return sel, err
	}
	if sel.PayloadRange.High, err = floatParam(q, "high", sel.PayloadRange.High); err != nil {
		return sel, err
	}
	return sel, ValidateRange(sel.PayloadRange)
}

func floatParam(q url.Values, name string, def float64) (float64, error) {
	s := q.Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a number", ErrBadSelection, name, s)
	}
	return v, nil
}
