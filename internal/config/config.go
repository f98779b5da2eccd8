package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the top-level application configuration.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Logging    LoggingConfig    `toml:"logging"`
	Storage    StorageConfig    `toml:"storage"`
	Dispatch   DispatchPolicy   `toml:"dispatch"`
	Simulation SimulationConfig `toml:"simulation"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host               string   `toml:"host"`
	Port               int      `toml:"port"`
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
}

// LoggingConfig holds the logger settings.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// StorageConfig holds the sqlite settings.
type StorageConfig struct {
	DatabasePath string `toml:"database_path"`
}

// DispatchPolicy holds the dispatch-evaluation policy knobs. The defaults
// are heuristic operational margins, not certified aviation values; they are
// configurable precisely because they are policy, but changing them changes
// GO/NO-GO outcomes.
type DispatchPolicy struct {
	// Safety margins
	RangeFactor        float64  `toml:"range_factor"`         // usable fraction of max range
	RunwayLengthFactor float64  `toml:"runway_length_factor"` // required length = nominal x factor
	DepartureMinVisM   float64  `toml:"departure_min_vis_m"`  // departure visibility floor, metres
	PavedSurfaces      []string `toml:"paved_surfaces"`       // runway surface allow-list

	// Fuel model
	TaxiOutHours      float64 `toml:"taxi_out_hours"`
	ClimbDistanceNM   float64 `toml:"climb_distance_nm"`
	ClimbHours        float64 `toml:"climb_hours"`
	DescentDistanceNM float64 `toml:"descent_distance_nm"`
	DescentHours      float64 `toml:"descent_hours"`
	ContingencyFrac   float64 `toml:"contingency_frac"`
	AlternateHours    float64 `toml:"alternate_hours"`
	FinalReserveHours float64 `toml:"final_reserve_hours"`
	BlockFuelRoundKg  float64 `toml:"block_fuel_round_kg"`

	// Warning margins (passing but marginal)
	WarnRangeMarginNM float64 `toml:"warn_range_margin_nm"`
	WarnFuelMarginKg  float64 `toml:"warn_fuel_margin_kg"`
	WarnTOWMarginKg   float64 `toml:"warn_tow_margin_kg"`
}

// SimulationConfig holds the phase-engine pacing settings.
type SimulationConfig struct {
	TickIntervalMs     int     `toml:"tick_interval_ms"`
	MaxTickDeltaSec    float64 `toml:"max_tick_delta_sec"`
	MinSpeedMultiplier float64 `toml:"min_speed_multiplier"`
	MaxSpeedMultiplier float64 `toml:"max_speed_multiplier"`
}

// Default returns the configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               8000,
			CORSAllowedOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Storage: StorageConfig{
			DatabasePath: "flight-planner.db",
		},
		Dispatch:   DefaultDispatchPolicy(),
		Simulation: DefaultSimulationConfig(),
	}
}

// DefaultDispatchPolicy returns the dispatch policy defaults.
func DefaultDispatchPolicy() DispatchPolicy {
	return DispatchPolicy{
		RangeFactor:        0.92,
		RunwayLengthFactor: 1.15,
		DepartureMinVisM:   400,
		PavedSurfaces:      []string{"ASP", "CON", "PEM"},

		TaxiOutHours:      0.25,
		ClimbDistanceNM:   80,
		ClimbHours:        0.35,
		DescentDistanceNM: 100,
		DescentHours:      0.40,
		ContingencyFrac:   0.05,
		AlternateHours:    0.5,
		FinalReserveHours: 0.5,
		BlockFuelRoundKg:  100,

		WarnRangeMarginNM: 100,
		WarnFuelMarginKg:  500,
		WarnTOWMarginKg:   1000,
	}
}

// DefaultSimulationConfig returns the simulation pacing defaults.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		TickIntervalMs:     100,
		MaxTickDeltaSec:    1.0,
		MinSpeedMultiplier: 0.1,
		MaxSpeedMultiplier: 100,
	}
}

// Load reads the configuration from the given toml file, layering it over
// the defaults. A missing path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Dispatch.RangeFactor <= 0 || c.Dispatch.RangeFactor > 1 {
		return fmt.Errorf("invalid range factor: %f", c.Dispatch.RangeFactor)
	}
	if c.Dispatch.RunwayLengthFactor < 1 {
		return fmt.Errorf("invalid runway length factor: %f", c.Dispatch.RunwayLengthFactor)
	}
	if c.Simulation.MinSpeedMultiplier <= 0 ||
		c.Simulation.MaxSpeedMultiplier < c.Simulation.MinSpeedMultiplier {
		return fmt.Errorf("invalid speed multiplier bounds: [%f, %f]",
			c.Simulation.MinSpeedMultiplier, c.Simulation.MaxSpeedMultiplier)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
