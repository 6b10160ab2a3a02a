package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBus_Dispatch(t *testing.T) {
	bus := NewEventBus()
	var got []EntityID
	bus.On(EvtArrived, func(e Event) { got = append(got, e.Entity) })

	bus.Emit(Event{Type: EvtArrived, Entity: 1})
	bus.Emit(Event{Type: EvtOrderIssued, Entity: 2})
	bus.Emit(Event{Type: EvtArrived, Entity: 3})
	assert.Equal(t, 3, bus.Pending())
	assert.Empty(t, got)

	bus.Dispatch()
	assert.Equal(t, []EntityID{1, 3}, got)
	assert.Equal(t, 0, bus.Pending())
}

func TestEventBus_EmitDuringDispatchWaits(t *testing.T) {
	bus := NewEventBus()
	calls := 0
	bus.On(EvtArrived, func(e Event) {
		calls++
		bus.Emit(Event{Type: EvtArrived})
	})

	bus.Emit(Event{Type: EvtArrived})
	bus.Dispatch()
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, bus.Pending())
}

func TestEventBus_NilEmit(t *testing.T) {
	var bus *EventBus
	assert.NotPanics(t, func() { bus.Emit(Event{Type: EvtArrived}) })
}
