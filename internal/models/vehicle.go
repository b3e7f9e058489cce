package models

import (
	"errors"
	"fmt"

	"github.com/kjstillabower/vehicle-fleet-service/internal/vehicle"
)

// Vehicle kinds accepted by the construction contract.
const (
	KindCar        = "car"
	KindMotorcycle = "motorcycle"
)

// ErrUnknownKind is returned when a record names a kind that is not a
// registered variant. Only fully-specified variants can be built.
var ErrUnknownKind = errors.New("unknown vehicle kind")

// VehicleRecord is the transport and storage shape of a vehicle. Kind selects
// the variant; the variant-specific fields are ignored by the other variant.
type VehicleRecord struct {
	ID            string  `json:"id,omitempty" yaml:"id"`
	Kind          string  `json:"kind" yaml:"kind"`
	Brand         string  `json:"brand" yaml:"brand"`
	Model         string  `json:"model" yaml:"model"`
	Year          int     `json:"year" yaml:"year"`
	NumberOfDoors int     `json:"numberOfDoors,omitempty" yaml:"number_of_doors"`
	EngineSize    float64 `json:"engineSize,omitempty" yaml:"engine_size"`
	HasSidecar    bool    `json:"hasSidecar,omitempty" yaml:"has_sidecar"`
}

// Build constructs the concrete variant the record describes. Field values
// are passed through unvalidated; only the kind is checked.
func (r VehicleRecord) Build() (vehicle.Vehicle, error) {
	switch r.Kind {
	case KindCar:
		return vehicle.NewCar(r.Brand, r.Model, r.Year, r.NumberOfDoors, r.EngineSize), nil
	case KindMotorcycle:
		return vehicle.NewMotorcycle(r.Brand, r.Model, r.Year, r.HasSidecar), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, r.Kind)
	}
}
