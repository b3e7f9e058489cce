package vehicle

// Motorcycle is a Vehicle with an optional sidecar.
type Motorcycle struct {
	base
	hasSidecar bool
}

var _ Vehicle = (*Motorcycle)(nil)

// NewMotorcycle builds a Motorcycle. Inputs are accepted as given.
func NewMotorcycle(brand, model string, year int, hasSidecar bool) *Motorcycle {
	return &Motorcycle{
		base:       base{brand: brand, model: model, year: year},
		hasSidecar: hasSidecar,
	}
}

// StartEngine implements Vehicle.
func (m *Motorcycle) StartEngine() string {
	return "Motorcycle engine started with kick start"
}

// FuelEfficiency returns 40.5 km/l with a sidecar attached, 55.2 without.
func (m *Motorcycle) FuelEfficiency() float64 {
	if m.hasSidecar {
		return 40.5
	}
	return 55.2
}

// DoWheelie is a Motorcycle-only operation. A sidecar rules the stunt out.
func (m *Motorcycle) DoWheelie() string {
	if m.hasSidecar {
		return "Cannot do wheelie with sidecar attached!"
	}
	return "Performing a wheelie!"
}

// HasSidecar reports whether a sidecar is attached.
func (m *Motorcycle) HasSidecar() bool { return m.hasSidecar }
