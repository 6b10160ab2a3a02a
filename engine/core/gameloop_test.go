package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type tickCounter struct{ ticks int }

func (s *tickCounter) Priority() int               { return 0 }
func (s *tickCounter) Update(w *World, dt float64) { s.ticks++ }

func TestGameLoop_FixedTimestep(t *testing.T) {
	gl := NewGameLoop(10)
	counter := &tickCounter{}
	gl.World.AddSystem(counter)
	gl.Play()

	alpha := gl.Advance(0.25)
	assert.Equal(t, 2, counter.ticks)
	assert.InDelta(t, 0.5, alpha, 1e-9)
	assert.Equal(t, uint64(2), gl.CurrentTick())

	// the leftover half tick carries into the next frame
	gl.Advance(0.1)
	assert.Equal(t, 3, counter.ticks)
}

func TestGameLoop_CapsFrameTime(t *testing.T) {
	gl := NewGameLoop(100)
	counter := &tickCounter{}
	gl.World.AddSystem(counter)
	gl.Play()

	gl.Advance(5)
	assert.InDelta(t, 25, counter.ticks, 1)
}

func TestGameLoop_PausedDoesNotTick(t *testing.T) {
	gl := NewGameLoop(10)
	counter := &tickCounter{}
	gl.World.AddSystem(counter)

	gl.Advance(0.2)
	assert.Equal(t, 0, counter.ticks)

	gl.TogglePause()
	assert.Equal(t, StateRunning, gl.State)
	gl.TogglePause()
	assert.Equal(t, StatePaused, gl.State)
}

func TestGameLoop_UpdateUsesClock(t *testing.T) {
	start := time.Unix(1000, 0)
	clock := start
	gl := NewGameLoop(10)
	gl.now = func() time.Time { return clock }
	counter := &tickCounter{}
	gl.World.AddSystem(counter)
	gl.Play()

	clock = start.Add(200 * time.Millisecond)
	gl.Update()
	assert.Equal(t, 2, counter.ticks)
}

func TestGameLoop_DispatchesEventsEachTick(t *testing.T) {
	gl := NewGameLoop(10)
	var seen []uint64
	gl.Events.On(EvtArrived, func(e Event) { seen = append(seen, e.Tick) })
	gl.World.AddSystem(emitter{bus: gl.Events})
	gl.Play()

	gl.Advance(0.2)
	assert.Equal(t, []uint64{0, 1}, seen)
}

type emitter struct{ bus *EventBus }

func (e emitter) Priority() int { return 0 }
func (e emitter) Update(w *World, dt float64) {
	e.bus.Emit(Event{Type: EvtArrived, Tick: w.TickCount})
}
