package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/s3lm4n/flight-planner/internal/aircraft"
	"github.com/s3lm4n/flight-planner/internal/airport"
	"github.com/s3lm4n/flight-planner/internal/api"
	"github.com/s3lm4n/flight-planner/internal/config"
	"github.com/s3lm4n/flight-planner/internal/sim"
	"github.com/s3lm4n/flight-planner/internal/storage/sqlite"
	"github.com/s3lm4n/flight-planner/internal/websocket"
	"github.com/s3lm4n/flight-planner/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "config.toml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		os.Stderr.WriteString("failed to create logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	log = log.Named("flight-planner")
	log.Info("Starting flight planner",
		logger.String("addr", cfg.Server.Addr()),
		logger.String("database", cfg.Storage.DatabasePath),
	)

	db, err := sqlite.Open(cfg.Storage.DatabasePath)
	if err != nil {
		log.Error("Failed to open database", logger.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	storage, err := sqlite.NewDispatchStorage(db, log)
	if err != nil {
		log.Error("Failed to initialize dispatch storage", logger.Error(err))
		os.Exit(1)
	}

	aircraftReg := aircraft.BuiltIn()
	airportReg := airport.BuiltIn()

	wsServer := websocket.NewServer(log)
	simService := sim.NewService(cfg.Simulation, log, wsServer)
	simService.Start(context.Background())
	defer simService.Stop()

	router := api.NewRouter(aircraftReg, airportReg, simService, storage, wsServer, cfg, log)

	server := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router.Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", logger.Error(err))
			os.Exit(1)
		}
	case sig := <-sigCh:
		log.Info("Shutting down", logger.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Warn("Graceful shutdown failed", logger.Error(err))
	}
}
