// Package showcase produces the fixed demonstration sequence exercising the
// vehicle hierarchy: per-variant sections followed by dispatch through
// Vehicle-typed values. Output lines are returned to the caller; printing is
// left to cmd/demo and the HTTP surface.
package showcase

import (
	"fmt"
	"io"
	"strings"

	"github.com/kjstillabower/vehicle-fleet-service/internal/vehicle"
)

// Default returns the canonical demo pair: a Toyota Corolla and a Honda CBR.
func Default() (*vehicle.Car, *vehicle.Motorcycle) {
	car := vehicle.NewCar("Toyota", "Corolla", 2023, 4, 1.8)
	moto := vehicle.NewMotorcycle("Honda", "CBR", 2023, false)
	return car, moto
}

// Lines returns the 15-line demo sequence for the given pair. The last four
// lines are produced through Vehicle-typed references so the variant
// implementations are selected by dynamic dispatch.
func Lines(car *vehicle.Car, moto *vehicle.Motorcycle) []string {
	lines := []string{
		"--- Car Information ---",
		car.Describe(),
		car.StartEngine(),
		efficiencyLine(car.FuelEfficiency()),
		car.Honk(),
		"--- Motorcycle Information ---",
		moto.Describe(),
		moto.StartEngine(),
		efficiencyLine(moto.FuelEfficiency()),
		moto.DoWheelie(),
		"--- Using Polymorphism ---",
	}
	for _, v := range []vehicle.Vehicle{car, moto} {
		lines = append(lines, v.Describe(), v.StartEngine())
	}
	return lines
}

// Fprint writes the demo sequence to w with a blank line before each section
// header after the first, matching the historical console output.
func Fprint(w io.Writer, car *vehicle.Car, moto *vehicle.Motorcycle) error {
	for i, line := range Lines(car, moto) {
		if i > 0 && strings.HasPrefix(line, "--- ") {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// efficiencyLine renders the value in shortest round-trip form, so 100/(1.8*5)
// reads "11.11111111111111" and a zero engine size reads "+Inf".
func efficiencyLine(kmPerLiter float64) string {
	return fmt.Sprintf("Fuel efficiency: %v km/l", kmPerLiter)
}
