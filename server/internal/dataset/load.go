package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/launchdash/launchdash/pkg/types"
)

// Default CSV header names.
const (
	DefaultLaunchSiteColumn      = "Launch Site"
	DefaultPayloadMassColumn     = "Payload Mass (kg)"
	DefaultClassColumn           = "class"
	DefaultBoosterCategoryColumn = "Booster Version Category"
)

// Columns names the CSV header of each required field.
type Columns struct {
	LaunchSite      string
	PayloadMass     string
	Class           string
	BoosterCategory string
}

// DefaultColumns returns the header names used by the SpaceX launch CSV.
func DefaultColumns() Columns {
	return Columns{
		LaunchSite:      DefaultLaunchSiteColumn,
		PayloadMass:     DefaultPayloadMassColumn,
		Class:           DefaultClassColumn,
		BoosterCategory: DefaultBoosterCategoryColumn,
	}
}

// withDefaults fills empty column names from DefaultColumns.
func (c Columns) withDefaults() Columns {
	def := DefaultColumns()
	if c.LaunchSite == "" {
		c.LaunchSite = def.LaunchSite
	}
	if c.PayloadMass == "" {
		c.PayloadMass = def.PayloadMass
	}
	if c.Class == "" {
		c.Class = def.Class
	}
	if c.BoosterCategory == "" {
		c.BoosterCategory = def.BoosterCategory
	}
	return c
}

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("missing required column")

// Load reads and validates the CSV at path.
func Load(path string, cols Columns) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %q: %w", path, err)
	}
	defer f.Close()

	ds, err := parse(f, cols, path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %q: %w", path, err)
	}
	return ds, nil
}

// Parse reads and validates CSV data from r. The resulting Dataset reports
// "reader" as its source.
func Parse(r io.Reader, cols Columns) (*Dataset, error) {
	ds, err := parse(r, cols, "reader")
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	return ds, nil
}

func parse(r io.Reader, cols Columns, source string) (*Dataset, error) {
	cols = cols.withDefaults()

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file: %w", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx, err := locate(header, cols)
	if err != nil {
		return nil, err
	}

	var records []types.LaunchRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := reader.FieldPos(0)

		rec, err := toRecord(row, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return New(records, source), nil
}

// columnIndex holds the position of each required field in a row.
type columnIndex struct {
	site, payload, class, booster int
}

func locate(header []string, cols Columns) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	find := func(name string) (int, error) {
		i, ok := pos[name]
		if !ok {
			return 0, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
		return i, nil
	}

	var idx columnIndex
	var err error
	if idx.site, err = find(cols.LaunchSite); err != nil {
		return idx, err
	}
	if idx.payload, err = find(cols.PayloadMass); err != nil {
		return idx, err
	}
	if idx.class, err = find(cols.Class); err != nil {
		return idx, err
	}
	if idx.booster, err = find(cols.BoosterCategory); err != nil {
		return idx, err
	}
	return idx, nil
}

func toRecord(row []string, idx columnIndex) (types.LaunchRecord, error) {
	var rec types.LaunchRecord

	rec.LaunchSite = strings.TrimSpace(row[idx.site])
	if rec.LaunchSite == "" {
		return rec, errors.New("empty launch site")
	}

	kg, err := strconv.ParseFloat(strings.TrimSpace(row[idx.payload]), 64)
	if err != nil || math.IsNaN(kg) || math.IsInf(kg, 0) {
		return rec, fmt.Errorf("payload mass %q is not a number", row[idx.payload])
	}
	if kg < 0 {
		return rec, fmt.Errorf("payload mass %v is negative", kg)
	}
	rec.PayloadMassKg = kg

	class, err := strconv.ParseFloat(strings.TrimSpace(row[idx.class]), 64)
	if err != nil || (class != 0 && class != 1) {
		return rec, fmt.Errorf("%w %q: want 0 or 1", types.ErrInvalidOutcome, row[idx.class])
	}
	rec.OutcomeClass = int(class)

	rec.BoosterVersionCategory = strings.TrimSpace(row[idx.booster])
	return rec, nil
}
