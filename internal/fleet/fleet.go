// Package fleet is the service layer: it registers vehicle records, loads
// them back from the store, and dispatches the vehicle capability set through
// interface-typed values.
package fleet

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kjstillabower/vehicle-fleet-service/internal/models"
	"github.com/kjstillabower/vehicle-fleet-service/internal/observability"
	"github.com/kjstillabower/vehicle-fleet-service/internal/store"
	"github.com/kjstillabower/vehicle-fleet-service/internal/vehicle"
)

// ErrNotFound is returned when no vehicle exists for the given id.
var ErrNotFound = errors.New("vehicle not found")

// ErrUnsupportedAction is returned when a variant-only operation is invoked
// on the wrong variant (honking a motorcycle, wheelieing a car).
var ErrUnsupportedAction = errors.New("action not supported by this vehicle kind")

// Service orchestrates vehicle registration and capability dispatch on top
// of a Store.
type Service struct {
	store store.Store
}

// NewService creates a Service backed by the given store.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// loggerFromContext extracts a zap.Logger from request context if present.
// Returns nil if logger is not found or context is invalid.
func loggerFromContext(ctx context.Context) *zap.Logger {
	if v := ctx.Value("logger"); v != nil {
		if l, ok := v.(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return nil
}

// Register validates the construction contract (the record must describe a
// known variant), assigns an id when empty, and persists the record. Field
// values themselves are accepted as given, including empty names and zero
// engine sizes.
func (s *Service) Register(ctx context.Context, rec models.VehicleRecord) (models.VehicleRecord, error) {
	if _, err := rec.Build(); err != nil {
		return models.VehicleRecord{}, err
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	err := s.store.Put(ctx, rec)
	observability.RecordStoreOperation("put", err)
	if err != nil {
		return models.VehicleRecord{}, fmt.Errorf("store vehicle %s: %w", rec.ID, err)
	}
	observability.VehiclesRegisteredTotal.WithLabelValues(rec.Kind).Inc()
	if logger := loggerFromContext(ctx); logger != nil {
		logger.Info("vehicle registered",
			zap.String("id", rec.ID),
			zap.String("kind", rec.Kind),
			zap.String("brand", rec.Brand),
			zap.String("model", rec.Model))
	}
	return rec, nil
}

// Seed registers the given records, typically from the config fleet seed.
// Stops on the first failure.
func (s *Service) Seed(ctx context.Context, recs []models.VehicleRecord) error {
	for _, rec := range recs {
		if _, err := s.Register(ctx, rec); err != nil {
			return fmt.Errorf("seed %s %s: %w", rec.Brand, rec.Model, err)
		}
	}
	return nil
}

// Get returns the record for id, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (models.VehicleRecord, error) {
	rec, ok, err := s.store.Get(ctx, id)
	observability.RecordStoreOperation("get", err)
	if err != nil {
		return models.VehicleRecord{}, fmt.Errorf("load vehicle %s: %w", id, err)
	}
	if !ok {
		return models.VehicleRecord{}, ErrNotFound
	}
	return rec, nil
}

// List returns all registered records in registration order.
func (s *Service) List(ctx context.Context) ([]models.VehicleRecord, error) {
	recs, err := s.store.List(ctx)
	observability.RecordStoreOperation("list", err)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return recs, nil
}

// build loads the record for id and constructs its variant.
func (s *Service) build(ctx context.Context, id string) (vehicle.Vehicle, models.VehicleRecord, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, models.VehicleRecord{}, err
	}
	v, err := rec.Build()
	if err != nil {
		// Stored records passed Register, so this means external corruption.
		return nil, models.VehicleRecord{}, fmt.Errorf("rebuild vehicle %s: %w", id, err)
	}
	return v, rec, nil
}

// Describe returns the description line for the vehicle with the given id.
func (s *Service) Describe(ctx context.Context, id string) (string, error) {
	v, _, err := s.build(ctx, id)
	if err != nil {
		return "", err
	}
	return v.Describe(), nil
}

// StartEngine dispatches StartEngine through the Vehicle interface and
// returns the variant-specific message.
func (s *Service) StartEngine(ctx context.Context, id string) (string, error) {
	v, rec, err := s.build(ctx, id)
	if err != nil {
		return "", err
	}
	observability.EngineStartsTotal.WithLabelValues(rec.Kind).Inc()
	if logger := loggerFromContext(ctx); logger != nil {
		logger.Debug("engine started", zap.String("id", id), zap.String("kind", rec.Kind))
	}
	return v.StartEngine(), nil
}

// FuelEfficiency returns the vehicle's fuel efficiency in km/l. A car with a
// zero engine size yields +Inf; IEEE-754 semantics are preserved end to end.
func (s *Service) FuelEfficiency(ctx context.Context, id string) (float64, error) {
	v, rec, err := s.build(ctx, id)
	if err != nil {
		return 0, err
	}
	observability.FuelEfficiencyQueriesTotal.WithLabelValues(rec.Kind).Inc()
	return v.FuelEfficiency(), nil
}

// Honk invokes the Car-only horn. Returns ErrUnsupportedAction for other kinds.
func (s *Service) Honk(ctx context.Context, id string) (string, error) {
	v, _, err := s.build(ctx, id)
	if err != nil {
		return "", err
	}
	car, ok := v.(*vehicle.Car)
	if !ok {
		return "", ErrUnsupportedAction
	}
	return car.Honk(), nil
}

// DoWheelie invokes the Motorcycle-only stunt. Returns ErrUnsupportedAction
// for other kinds.
func (s *Service) DoWheelie(ctx context.Context, id string) (string, error) {
	v, _, err := s.build(ctx, id)
	if err != nil {
		return "", err
	}
	moto, ok := v.(*vehicle.Motorcycle)
	if !ok {
		return "", ErrUnsupportedAction
	}
	return moto.DoWheelie(), nil
}
