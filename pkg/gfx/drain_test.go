package gfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pollFrom(events ...Event) (func(int) (Event, bool), *[]int) {
	var timeouts []int
	return func(timeoutMs int) (Event, bool) {
		timeouts = append(timeouts, timeoutMs)
		if len(events) == 0 {
			return nil, false
		}
		e := events[0]
		events = events[1:]
		return e, true
	}, &timeouts
}

func TestDrainEvents_WaitsOnceThenDrains(t *testing.T) {
	poll, timeouts := pollFrom(Expose{}, Expose{}, Expose{})
	var handled int

	n := drainEvents(poll, func(Event) { handled++ }, 7, 10)

	assert.Equal(t, 3, n)
	assert.Equal(t, 3, handled)
	assert.Equal(t, []int{7, 0, 0, 0}, *timeouts)
}

func TestDrainEvents_StopsAtLimit(t *testing.T) {
	poll, timeouts := pollFrom(Expose{}, Expose{}, Expose{})

	n := drainEvents(poll, func(Event) {}, 0, 2)

	assert.Equal(t, 2, n)
	assert.Len(t, *timeouts, 2, "no poll past the limit")
}

func TestDrainEvents_NonPositiveLimitUsesDefault(t *testing.T) {
	events := make([]Event, DefaultEventsPerFrame+5)
	for i := range events {
		events[i] = Expose{}
	}
	poll, _ := pollFrom(events...)

	assert.Equal(t, DefaultEventsPerFrame, drainEvents(poll, func(Event) {}, 0, 0))
}

func TestDrainEvents_NoEvent(t *testing.T) {
	poll, timeouts := pollFrom()

	assert.Zero(t, drainEvents(poll, func(Event) {}, 1, 4))
	assert.Equal(t, []int{1}, *timeouts)
}
