package vehicle

// Car is a Vehicle with a door count and an engine displacement in liters.
type Car struct {
	base
	numberOfDoors int
	engineSize    float64
}

var _ Vehicle = (*Car)(nil)

// NewCar builds a Car. Inputs are accepted as given: no field is validated,
// including a zero or negative engine size.
func NewCar(brand, model string, year, numberOfDoors int, engineSize float64) *Car {
	return &Car{
		base:          base{brand: brand, model: model, year: year},
		numberOfDoors: numberOfDoors,
		engineSize:    engineSize,
	}
}

// StartEngine implements Vehicle.
func (c *Car) StartEngine() string {
	return "Car engine started with key ignition"
}

// FuelEfficiency returns 100.0 / (engineSize * 5) km/l. IEEE-754 division
// semantics apply: an engine size of zero yields +Inf rather than an error.
func (c *Car) FuelEfficiency() float64 {
	return 100.0 / (c.engineSize * 5)
}

// Honk is a Car-only operation, not part of the Vehicle capability set.
func (c *Car) Honk() string {
	return "Beep beep!"
}

// NumberOfDoors returns the door count.
func (c *Car) NumberOfDoors() int { return c.numberOfDoors }

// EngineSize returns the engine displacement in liters.
func (c *Car) EngineSize() float64 { return c.engineSize }
