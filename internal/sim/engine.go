package sim

import (
	"fmt"

	"github.com/s3lm4n/flight-planner/internal/config"
)

// Engine drives one simulated flight over a frozen snapshot. It is not
// reentrant: exactly one logical driver may call Tick and the control
// methods, and calls must not interleave. The snapshot itself is immutable
// and safe to share; higher layers that expose the engine to multiple
// callers are responsible for serializing access (see Service).
type Engine struct {
	snapshot *Snapshot
	cfg      config.SimulationConfig
	state    State

	onComplete    func()
	completeFired bool
}

// NewEngine creates an engine positioned at LINEUP on the departure
// threshold. onComplete, when non-nil, is invoked exactly once per run when
// progress reaches 1.
func NewEngine(snapshot *Snapshot, cfg config.SimulationConfig, onComplete func()) (*Engine, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("engine requires a snapshot")
	}
	if snapshot.TotalNM() <= 0 {
		// NewSnapshot already rejects this; kept for direct constructions.
		return nil, fmt.Errorf("engine requires a positive track length")
	}

	e := &Engine{
		snapshot:   snapshot,
		cfg:        cfg,
		onComplete: onComplete,
	}
	e.resetState()
	return e, nil
}

func (e *Engine) resetState() {
	e.state = derive(e.snapshot, 0)
	e.state.SpeedMultiplier = 1
	e.state.Playing = false
	e.state.ElapsedSec = 0
	e.completeFired = false
}

// Snapshot returns the frozen snapshot the engine runs over.
func (e *Engine) Snapshot() *Snapshot { return e.snapshot }

// State returns a copy of the current mutable state.
func (e *Engine) State() State { return e.state }

// Output returns the frozen consumer view of the current state.
func (e *Engine) Output() Output {
	return Output{
		Phase:            e.state.Phase.String(),
		Position:         e.state.Position,
		HeadingDeg:       e.state.HeadingDeg,
		PitchDeg:         e.state.PitchDeg,
		BankDeg:          e.state.BankDeg,
		AltitudeFt:       e.state.AltitudeFt,
		GroundSpeedKts:   e.state.GroundSpeedKts,
		VerticalSpeedFpm: e.state.VerticalSpeedFpm,
		Progress:         e.state.Progress,
		ElapsedSec:       e.state.ElapsedSec,
		IsPlaying:        e.state.Playing,
	}
}

// Play starts or resumes playback. Playing a completed run restarts it.
func (e *Engine) Play() {
	if e.state.Phase == PhaseComplete {
		e.Seek(0)
	}
	e.state.Playing = true
}

// Pause halts playback in place.
func (e *Engine) Pause() {
	e.state.Playing = false
}

// Stop halts playback and rewinds to the start. The current speed
// multiplier is kept.
func (e *Engine) Stop() {
	e.state.Playing = false
	e.Seek(0)
}

// Reset returns the engine to its initial LINEUP state, including the
// speed multiplier.
func (e *Engine) Reset() {
	e.resetState()
}

// SetSpeedMultiplier sets the playback speed, clamped to the configured
// bounds.
func (e *Engine) SetSpeedMultiplier(m float64) {
	if m < e.cfg.MinSpeedMultiplier {
		m = e.cfg.MinSpeedMultiplier
	}
	if m > e.cfg.MaxSpeedMultiplier {
		m = e.cfg.MaxSpeedMultiplier
	}
	e.state.SpeedMultiplier = m
}

// Seek jumps to the given progress in [0, 1], recomputing absolute state
// with no dependency on prior ticks: scrubbing to p reproduces exactly the
// state playback would reach at p. Playback and elapsed-time bookkeeping
// are left untouched.
func (e *Engine) Seek(progress float64) {
	progress = clamp01(progress)
	distance := progress * e.snapshot.TotalNM()

	playing := e.state.Playing
	multiplier := e.state.SpeedMultiplier
	elapsed := e.state.ElapsedSec

	e.state = derive(e.snapshot, distance)
	e.state.SpeedMultiplier = multiplier
	e.state.ElapsedSec = elapsed
	e.state.Playing = playing

	if progress < 1 {
		// Moving back from the end arms completion for the new run.
		e.completeFired = false
	}
	e.checkComplete()
}

// Tick advances the simulation by dtSec wall seconds. The delta is capped
// before the speed multiplier applies so a stalled clock cannot skip
// through multiple phases. A paused or completed engine ignores ticks.
func (e *Engine) Tick(dtSec float64) {
	if !e.state.Playing || e.state.Phase == PhaseComplete {
		return
	}
	if dtSec <= 0 {
		return
	}
	if dtSec > e.cfg.MaxTickDeltaSec {
		dtSec = e.cfg.MaxTickDeltaSec
	}
	simSec := dtSec * e.state.SpeedMultiplier

	// Zero ground speed (zero TAS or a degenerate wind triangle) advances
	// nothing; the guard below keeps the increment finite.
	distance := e.state.Progress * e.snapshot.TotalNM()
	gs := e.state.GroundSpeedKts
	if gs > 0 {
		distance += gs * simSec / 3600
	}

	playing := e.state.Playing
	multiplier := e.state.SpeedMultiplier
	elapsed := e.state.ElapsedSec + simSec

	e.state = derive(e.snapshot, distance)
	e.state.SpeedMultiplier = multiplier
	e.state.ElapsedSec = elapsed
	e.state.Playing = playing

	e.checkComplete()
}

// checkComplete stops playback at the end of the track and signals
// completion exactly once per run.
func (e *Engine) checkComplete() {
	if e.state.Phase != PhaseComplete {
		return
	}
	e.state.Playing = false
	if !e.completeFired {
		e.completeFired = true
		if e.onComplete != nil {
			e.onComplete()
		}
	}
}
