package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/s3lm4n/flight-planner/internal/aircraft"
	"github.com/s3lm4n/flight-planner/internal/airport"
	"github.com/s3lm4n/flight-planner/internal/config"
	"github.com/s3lm4n/flight-planner/internal/sim"
	"github.com/s3lm4n/flight-planner/internal/storage/sqlite"
	"github.com/s3lm4n/flight-planner/internal/websocket"
	"github.com/s3lm4n/flight-planner/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(aircraftReg *aircraft.Registry, airportReg *airport.Registry, simService *sim.Service, storage *sqlite.DispatchStorage, wsServer *websocket.Server, cfg *config.Config, log *logger.Logger) *Router {
	return &Router{
		handler:    NewHandler(aircraftReg, airportReg, simService, storage, wsServer, cfg, log),
		middleware: NewMiddleware(log),
		config:     cfg,
		logger:     log.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))

	// API routes
	router.Route("/api/v1", func(router chi.Router) {
		// Dispatch routes
		router.Post("/dispatch/evaluate", r.handler.EvaluateDispatch)
		router.Get("/dispatch/history", r.handler.GetDispatchHistory)

		// Simulation routes
		router.Post("/simulations", r.handler.CreateSimulation)
		router.Get("/simulations", r.handler.GetSimulations)
		router.Get("/simulations/{id}", r.handler.GetSimulation)
		router.Post("/simulations/{id}/controls", r.handler.ControlSimulation)
		router.Delete("/simulations/{id}", r.handler.DeleteSimulation)

		// Reference data
		router.Get("/aircraft", r.handler.GetAircraft)
		router.Get("/airports", r.handler.GetAirports)

		// WebSocket route
		router.Get("/ws", r.handler.HandleWebSocket)

		// Health check
		router.Get("/health", r.handler.GetHealth)

		// Configuration
		router.Get("/config", r.handler.GetConfig)
	})

	return router
}
