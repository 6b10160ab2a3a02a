package core

import "time"

// SimState is the run state of the simulation
type SimState uint8

const (
	StatePaused SimState = iota
	StateRunning
)

// MaxFrameTime caps a single frame's contribution to the accumulator
const MaxFrameTime = 0.25

// GameLoop manages the fixed-timestep loop for deterministic simulation
type GameLoop struct {
	World       *World
	Events      *EventBus
	State       SimState
	TickRate    float64 // fixed ticks per second
	accumulator float64
	lastTime    time.Time
	now         func() time.Time
}

// NewGameLoop creates a game loop with fixed tick rate
func NewGameLoop(tickRate float64) *GameLoop {
	return &GameLoop{
		World:    NewWorld(tickRate),
		Events:   NewEventBus(),
		TickRate: tickRate,
		lastTime: time.Now(),
		now:      time.Now,
	}
}

// Update should be called every render frame. It runs the simulation at a fixed
// timestep for the wall time since the previous call and returns the
// interpolation alpha for smooth rendering.
func (gl *GameLoop) Update() float64 {
	now := gl.now()
	frameTime := now.Sub(gl.lastTime).Seconds()
	gl.lastTime = now
	return gl.Advance(frameTime)
}

// Advance runs as many fixed ticks as frameTime covers and dispatches queued
// events after each one
func (gl *GameLoop) Advance(frameTime float64) float64 {
	// Cap frame time to avoid spiral of death
	if frameTime > MaxFrameTime {
		frameTime = MaxFrameTime
	}

	dt := 1.0 / gl.TickRate
	gl.accumulator += frameTime

	for gl.accumulator >= dt {
		if gl.State == StateRunning {
			gl.World.Tick(dt)
			gl.Events.Dispatch()
		}
		gl.accumulator -= dt
	}

	return gl.accumulator / dt
}

// Play starts or resumes the simulation
func (gl *GameLoop) Play() {
	gl.State = StateRunning
	gl.lastTime = gl.now()
}

// Pause pauses the simulation
func (gl *GameLoop) Pause() {
	gl.State = StatePaused
}

// TogglePause flips between running and paused
func (gl *GameLoop) TogglePause() {
	if gl.State == StateRunning {
		gl.Pause()
	} else {
		gl.Play()
	}
}

// CurrentTick returns the current simulation tick
func (gl *GameLoop) CurrentTick() uint64 {
	return gl.World.TickCount
}
