package sim

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/s3lm4n/flight-planner/internal/config"
	"github.com/s3lm4n/flight-planner/pkg/logger"
)

// Broadcaster receives frozen outputs for fan-out to passive consumers.
type Broadcaster interface {
	BroadcastSimulation(id string, out Output)
}

// Service owns every live engine and is their single logical driver: the
// tick loop and all control calls funnel through its mutex, which is what
// lets the engines themselves stay lock-free.
type Service struct {
	cfg         config.SimulationConfig
	logger      *logger.Logger
	broadcaster Broadcaster

	mu      sync.Mutex
	engines map[string]*Engine

	cancel context.CancelFunc
	done   chan struct{}
}

// NewService creates the simulation service. broadcaster may be nil.
func NewService(cfg config.SimulationConfig, log *logger.Logger, broadcaster Broadcaster) *Service {
	return &Service{
		cfg:         cfg,
		logger:      log.Named("simulation"),
		broadcaster: broadcaster,
		engines:     make(map[string]*Engine),
	}
}

// Create registers a new engine over the given snapshot and returns its id.
func (s *Service) Create(snapshot *Snapshot) (string, error) {
	id := uuid.NewString()

	// The driver broadcasts the final frame like any other; completion only
	// needs the one-shot log line here.
	engine, err := NewEngine(snapshot, s.cfg, func() {
		s.logger.Info("Simulation complete", logger.String("id", id))
	})
	if err != nil {
		return "", fmt.Errorf("failed to create engine: %w", err)
	}

	s.mu.Lock()
	s.engines[id] = engine
	s.mu.Unlock()

	s.logger.Info("Simulation created",
		logger.String("id", id),
		logger.String("departure", snapshot.Departure.Designator),
		logger.String("arrival", snapshot.Arrival.Designator),
		logger.Float64("total_nm", snapshot.TotalNM()),
	)
	return id, nil
}

// Get returns the current frozen output of one simulation.
func (s *Service) Get(id string) (Output, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	engine, ok := s.engines[id]
	if !ok {
		return Output{}, fmt.Errorf("unknown simulation: %s", id)
	}
	return engine.Output(), nil
}

// List returns the ids of all live simulations.
func (s *Service) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.engines))
	for id := range s.engines {
		ids = append(ids, id)
	}
	return ids
}

// Remove discards a simulation.
func (s *Service) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.engines[id]; !ok {
		return fmt.Errorf("unknown simulation: %s", id)
	}
	delete(s.engines, id)
	return nil
}

// ControlAction names a playback control request.
type ControlAction string

const (
	ActionPlay     ControlAction = "play"
	ActionPause    ControlAction = "pause"
	ActionStop     ControlAction = "stop"
	ActionReset    ControlAction = "reset"
	ActionSeek     ControlAction = "seek"
	ActionSetSpeed ControlAction = "speed"
)

// Control applies a playback control to one simulation and returns the
// resulting output. Seek takes a progress in [0, 1]; speed takes the
// multiplier.
func (s *Service) Control(id string, action ControlAction, value float64) (Output, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	engine, ok := s.engines[id]
	if !ok {
		return Output{}, fmt.Errorf("unknown simulation: %s", id)
	}

	switch ControlAction(strings.ToLower(string(action))) {
	case ActionPlay:
		engine.Play()
	case ActionPause:
		engine.Pause()
	case ActionStop:
		engine.Stop()
	case ActionReset:
		engine.Reset()
	case ActionSeek:
		engine.Seek(value)
	case ActionSetSpeed:
		engine.SetSpeedMultiplier(value)
	default:
		return Output{}, fmt.Errorf("unknown control action: %s", action)
	}

	out := engine.Output()
	if s.broadcaster != nil {
		s.broadcaster.BroadcastSimulation(id, out)
	}
	return out, nil
}

// Start launches the driver loop: a host-owned clock delivering wall-time
// deltas to every playing engine.
func (s *Service) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	interval := time.Duration(s.cfg.TickIntervalMs) * time.Millisecond
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		last := time.Now()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				dt := now.Sub(last).Seconds()
				last = now
				s.tickAll(dt)
			}
		}
	}()

	s.logger.Info("Simulation driver started",
		logger.Duration("interval", interval))
}

// Stop halts the driver loop.
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
}

func (s *Service) tickAll(dtSec float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, engine := range s.engines {
		if !engine.State().Playing {
			continue
		}
		engine.Tick(dtSec)
		if s.broadcaster != nil {
			s.broadcaster.BroadcastSimulation(id, engine.Output())
		}
	}
}
