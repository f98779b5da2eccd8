package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/s3lm4n/flight-planner/internal/aircraft"
	"github.com/s3lm4n/flight-planner/internal/airport"
	"github.com/s3lm4n/flight-planner/internal/config"
	"github.com/s3lm4n/flight-planner/internal/dispatch"
	"github.com/s3lm4n/flight-planner/internal/sim"
	"github.com/s3lm4n/flight-planner/internal/storage/sqlite"
	"github.com/s3lm4n/flight-planner/internal/websocket"
	"github.com/s3lm4n/flight-planner/pkg/logger"
)

const defaultHistoryLimit = 50

// Handler serves the dispatch and simulation endpoints.
type Handler struct {
	aircraftReg *aircraft.Registry
	airportReg  *airport.Registry
	simService  *sim.Service
	storage     *sqlite.DispatchStorage
	wsServer    *websocket.Server
	config      *config.Config
	logger      *logger.Logger
}

// NewHandler creates a new API handler.
func NewHandler(aircraftReg *aircraft.Registry, airportReg *airport.Registry, simService *sim.Service, storage *sqlite.DispatchStorage, wsServer *websocket.Server, cfg *config.Config, log *logger.Logger) *Handler {
	return &Handler{
		aircraftReg: aircraftReg,
		airportReg:  airportReg,
		simService:  simService,
		storage:     storage,
		wsServer:    wsServer,
		config:      cfg,
		logger:      log.Named("api-handler"),
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", logger.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// EvaluateDispatch runs the dispatch evaluator and records the decision.
func (h *Handler) EvaluateDispatch(w http.ResponseWriter, r *http.Request) {
	var req DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	input, err := resolveInput(req, h.aircraftReg, h.airportReg)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	result := dispatch.Evaluate(input, h.config.Dispatch)

	if _, err := h.storage.StoreDecision(input, result); err != nil {
		// The decision itself is still valid; log and serve it.
		h.logger.Error("Failed to store dispatch decision", logger.Error(err))
	}

	h.logger.Info("Dispatch evaluated",
		logger.String("flight", input.Flight),
		logger.String("aircraft", input.Aircraft.TypeCode),
		logger.Float64("route_nm", input.RouteDistanceNM),
		logger.Bool("feasible", result.Feasible),
	)

	h.writeJSON(w, http.StatusOK, result)
}

// GetDispatchHistory returns recent dispatch decisions.
func (h *Handler) GetDispatchHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			h.writeError(w, http.StatusBadRequest, errInvalidLimit)
			return
		}
		limit = parsed
	}

	var (
		records []*sqlite.DispatchRecord
		err     error
	)
	switch {
	case r.URL.Query().Get("flight") != "":
		records, err = h.storage.GetByFlight(r.URL.Query().Get("flight"), limit)
	case r.URL.Query().Get("aircraft") != "":
		records, err = h.storage.GetByAircraftType(r.URL.Query().Get("aircraft"), limit)
	default:
		records, err = h.storage.GetRecent(limit)
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}

	h.writeJSON(w, http.StatusOK, records)
}

// CreateSimulation evaluates the request, builds the frozen snapshot and
// registers a new engine. An infeasible dispatch does not get a simulation.
func (h *Handler) CreateSimulation(w http.ResponseWriter, r *http.Request) {
	var req DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	input, err := resolveInput(req, h.aircraftReg, h.airportReg)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	result := dispatch.Evaluate(input, h.config.Dispatch)
	if !result.Feasible {
		h.writeJSON(w, http.StatusConflict, result)
		return
	}

	snapshot, err := sim.BuildSnapshot(sim.PlanInput{
		DepartureRunway:   input.DepartureRunway,
		ArrivalRunway:     input.ArrivalRunway,
		Aircraft:          input.Aircraft,
		CruiseAltFt:       req.CruiseAltFt,
		ClimbDistanceNM:   h.config.Dispatch.ClimbDistanceNM,
		DescentDistanceNM: h.config.Dispatch.DescentDistanceNM,
		DepartureWeather:  input.DepartureWeather,
	})
	if err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	id, err := h.simService.Create(snapshot)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":       id,
		"dispatch": result,
		"snapshot": snapshot,
	})
}

// GetSimulations lists live simulation ids.
func (h *Handler) GetSimulations(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.simService.List())
}

// GetSimulation returns the current frozen output of one simulation.
func (h *Handler) GetSimulation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	out, err := h.simService.Get(id)
	if err != nil {
		h.writeError(w, http.StatusNotFound, err)
		return
	}
	h.writeJSON(w, http.StatusOK, out)
}

// ControlSimulation applies a playback control.
func (h *Handler) ControlSimulation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ControlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	out, err := h.simService.Control(id, sim.ControlAction(req.Action), req.Value)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	h.writeJSON(w, http.StatusOK, out)
}

// DeleteSimulation discards a simulation.
func (h *Handler) DeleteSimulation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.simService.Remove(id); err != nil {
		h.writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetAircraft lists the known aircraft type codes.
func (h *Handler) GetAircraft(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.aircraftReg.Codes())
}

// GetAirports lists the known airport ICAO codes.
func (h *Handler) GetAirports(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.airportReg.Codes())
}

// HandleWebSocket upgrades the connection to the output stream.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	h.wsServer.HandleConnection(w, r)
}

// GetHealth is the health check.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "ok",
		"simulations":       len(h.simService.List()),
		"websocket_clients": h.wsServer.ClientCount(),
	})
}

// GetConfig exposes the active policy knobs.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"dispatch":   h.config.Dispatch,
		"simulation": h.config.Simulation,
	})
}
