// Package http holds the HTTP surface: handlers for the fleet API, the demo
// showcase, health, and the middleware chain.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/kjstillabower/vehicle-fleet-service/internal/fleet"
	"github.com/kjstillabower/vehicle-fleet-service/internal/lifecycle"
	"github.com/kjstillabower/vehicle-fleet-service/internal/models"
	"github.com/kjstillabower/vehicle-fleet-service/internal/observability"
	"github.com/kjstillabower/vehicle-fleet-service/internal/showcase"
	"github.com/kjstillabower/vehicle-fleet-service/internal/validation"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	fleet         *fleet.Service
	logger        *zap.Logger
	nameMaxLength int
	startTime     time.Time
	// storePing, when set, is called by the health handler to check store
	// reachability. Used when the backend is memcached.
	storePing func() error
}

// NewHandler returns a new Handler. storePing may be nil for in-memory stores.
func NewHandler(fleetSvc *fleet.Service, logger *zap.Logger, nameMaxLength int, storePing func() error) *Handler {
	return &Handler{
		fleet:         fleetSvc,
		logger:        logger,
		nameMaxLength: nameMaxLength,
		startTime:     time.Now(),
		storePing:     storePing,
	}
}

// RegisterVehicle handles POST /vehicles.
func (h *Handler) RegisterVehicle(w http.ResponseWriter, r *http.Request) {
	var rec models.VehicleRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_BODY", "request body must be a vehicle record")
		return
	}

	kind, err := validation.ValidateKind(rec.Kind)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_KIND", err.Error())
		return
	}
	rec.Kind = kind
	if _, err := validation.ValidateName(rec.Brand, h.nameMaxLength); err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_BRAND", err.Error())
		return
	}
	if _, err := validation.ValidateName(rec.Model, h.nameMaxLength); err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_MODEL", err.Error())
		return
	}
	rec.ID = "" // ids are always server-assigned

	registered, err := h.fleet.Register(r.Context(), rec)
	if err != nil {
		writeFleetError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, registered)
}

// ListVehicles handles GET /vehicles.
func (h *Handler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	recs, err := h.fleet.List(r.Context())
	if err != nil {
		writeFleetError(w, r, err)
		return
	}
	if recs == nil {
		recs = []models.VehicleRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"vehicles": recs})
}

// GetVehicle handles GET /vehicles/{id}. The response carries the stored
// record plus its description line.
func (h *Handler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	rec, err := h.fleet.Get(r.Context(), id)
	if err != nil {
		writeFleetError(w, r, err)
		return
	}
	desc, err := h.fleet.Describe(r.Context(), id)
	if err != nil {
		writeFleetError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"vehicle":     rec,
		"description": desc,
	})
}

// StartEngine handles POST /vehicles/{id}/start.
func (h *Handler) StartEngine(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	msg, err := h.fleet.StartEngine(r.Context(), id)
	if err != nil {
		writeFleetError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

// GetFuelEfficiency handles GET /vehicles/{id}/efficiency. The value is
// formatted in shortest round-trip form because JSON cannot encode the +Inf a
// zero engine size produces.
func (h *Handler) GetFuelEfficiency(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	val, err := h.fleet.FuelEfficiency(r.Context(), id)
	if err != nil {
		writeFleetError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"fuelEfficiency": fmt.Sprintf("%v", val),
		"unit":           "km/l",
	})
}

// Honk handles POST /vehicles/{id}/honk. Cars only.
func (h *Handler) Honk(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	msg, err := h.fleet.Honk(r.Context(), id)
	if err != nil {
		writeFleetError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

// DoWheelie handles POST /vehicles/{id}/wheelie. Motorcycles only; a sidecar
// gets a refusal message, not an error.
func (h *Handler) DoWheelie(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	msg, err := h.fleet.DoWheelie(r.Context(), id)
	if err != nil {
		writeFleetError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

// GetDemo handles GET /demo: the canonical showcase sequence as a line array.
func (h *Handler) GetDemo(w http.ResponseWriter, r *http.Request) {
	observability.ShowcaseRunsTotal.Inc()
	car, moto := showcase.Default()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"lines": showcase.Lines(car, moto),
	})
}

// GetHealth handles GET /health.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	statusCode := http.StatusOK
	if lifecycle.IsShuttingDown() {
		status = "shutting-down"
		statusCode = http.StatusServiceUnavailable
	}

	checks := make(map[string]string)
	if h.storePing != nil {
		if h.storePing() == nil {
			checks["store"] = "healthy"
		} else {
			checks["store"] = "unhealthy"
			if status == "healthy" {
				status = "degraded"
				statusCode = http.StatusServiceUnavailable
			}
		}
	} else {
		checks["store"] = "healthy"
	}

	writeJSON(w, statusCode, map[string]interface{}{
		"status":    status,
		"service":   "vehicle-fleet-service",
		"version":   "dev",
		"checks":    checks,
		"uptime":    time.Since(h.startTime).Round(time.Second).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// writeJSON writes a JSON response with the specified HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response in the standard envelope with code,
// message, and requestId (correlation ID) if available in request context.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	corrID := ""
	if v := r.Context().Value("correlation_id"); v != nil {
		corrID = v.(string)
	}
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":      code,
			"message":   message,
			"requestId": corrID,
		},
	})
}

// writeFleetError maps service-layer errors onto the error envelope.
func writeFleetError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, fleet.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "VEHICLE_NOT_FOUND", "no vehicle with that id")
	case errors.Is(err, models.ErrUnknownKind):
		writeError(w, r, http.StatusBadRequest, "INVALID_KIND", "vehicle kind must be car or motorcycle")
	case errors.Is(err, fleet.ErrUnsupportedAction):
		writeError(w, r, http.StatusConflict, "UNSUPPORTED_ACTION", "this vehicle kind does not support that action")
	default:
		writeError(w, r, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "unable to access the vehicle store")
		if logger, ok := r.Context().Value("logger").(*zap.Logger); ok && logger != nil {
			logger.Error("fleet operation failed", zap.Error(err))
		}
	}
}
