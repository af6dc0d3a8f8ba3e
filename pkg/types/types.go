package types

import (
	"errors"
	"fmt"
)

// AllSites is the dropdown sentinel selecting every launch site.
const AllSites = "All Sites"

// ErrInvalidOutcome is returned when a record's outcome class is neither 0 nor 1.
var ErrInvalidOutcome = errors.New("invalid outcome class")

// LaunchRecord is one row of the launch dataset.
type LaunchRecord struct {
	LaunchSite             string  `json:"launch_site"`
	PayloadMassKg          float64 `json:"payload_mass_kg"`
	OutcomeClass           int     `json:"class"`
	BoosterVersionCategory string  `json:"booster_version_category"`
}

// Outcome is the categorical label derived from a record's outcome class.
type Outcome string

const (
	OutcomeSuccess Outcome = "Success Launch"
	OutcomeFailure Outcome = "Failure Launch"
)

// OutcomeOrder is the fixed category order for the scatter plot's outcome
// axis. Renderers must honour it instead of sorting alphabetically.
var OutcomeOrder = []Outcome{OutcomeSuccess, OutcomeFailure}

// OutcomeFromClass maps 1 to OutcomeSuccess and 0 to OutcomeFailure.
// Any other value returns an error wrapping ErrInvalidOutcome.
func OutcomeFromClass(class int) (Outcome, error) {
	switch class {
	case 1:
		return OutcomeSuccess, nil
	case 0:
		return OutcomeFailure, nil
	default:
		return "", fmt.Errorf("%w: %d", ErrInvalidOutcome, class)
	}
}

// PayloadRange is a closed interval [Low, High] in kilograms.
type PayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether low <= kg <= high.
func (r PayloadRange) Contains(kg float64) bool {
	return kg >= r.Low && kg <= r.High
}

// Valid reports whether Low <= High.
func (r PayloadRange) Valid() bool {
	return r.Low <= r.High
}

// PieSlice is one (label, value) wedge of a pie chart.
type PieSlice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ScatterPoint is one plotted launch on the payload/outcome scatter chart.
type ScatterPoint struct {
	PayloadMassKg          float64 `json:"payload_mass_kg"`
	Outcome                Outcome `json:"outcome"`
	BoosterVersionCategory string  `json:"booster_version_category"`
}

// Selection is the UI selection state passed by value into the view.
type Selection struct {
	Site         string       `json:"site"`
	PayloadRange PayloadRange `json:"payload_range"`
}
