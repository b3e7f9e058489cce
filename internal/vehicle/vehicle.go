// Package vehicle defines the vehicle hierarchy: a Vehicle capability set
// with two concrete variants, Car and Motorcycle. Values are immutable after
// construction; every operation is a pure query over construction-time fields.
package vehicle

import "fmt"

// Vehicle is the capability set every variant provides. Operations return
// text or numbers; callers decide what to do with them (print, serve, log).
type Vehicle interface {
	// Describe returns "Vehicle: {brand} {model} ({year})".
	Describe() string
	// StartEngine returns the variant-specific engine start message.
	StartEngine() string
	// FuelEfficiency returns the variant's fuel efficiency in km/l.
	FuelEfficiency() float64
}

// base carries the fields shared by all variants and the one shared concrete
// behavior. It is unexported so a bare "vehicle" cannot be constructed
// outside this package; only fully-specified variants exist.
type base struct {
	brand string
	model string
	year  int
}

// Describe returns the shared description line. No validation is applied to
// the fields; an empty brand or a negative year renders as given.
func (b base) Describe() string {
	return fmt.Sprintf("Vehicle: %s %s (%d)", b.brand, b.model, b.year)
}

// Brand returns the vehicle brand.
func (b base) Brand() string { return b.brand }

// Model returns the vehicle model.
func (b base) Model() string { return b.model }

// Year returns the vehicle model year.
func (b base) Year() int { return b.year }
