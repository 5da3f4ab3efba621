package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickSchedulerRunsInDueOrder(t *testing.T) {
	s := NewTickScheduler(0)
	var got []string
	s.Schedule(30*ms, false, func() { got = append(got, "c") })
	s.Schedule(10*ms, false, func() { got = append(got, "a") })
	s.Schedule(10*ms, false, func() { got = append(got, "b") })
	require.Equal(t, 3, s.Pending())

	s.AdvanceTo(9 * ms)
	assert.Empty(t, got)

	s.AdvanceTo(10 * ms)
	assert.Equal(t, []string{"a", "b"}, got)

	s.Advance(50 * ms)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 60*ms, s.Now())
	assert.Equal(t, 0, s.Pending())
}

func TestTickSchedulerCancel(t *testing.T) {
	s := NewTickScheduler(0)
	fired := false
	id := s.Schedule(10*ms, false, func() { fired = true })
	s.Cancel(id)
	s.Cancel(id)
	s.Cancel(0)
	s.AdvanceTo(20 * ms)
	assert.False(t, fired)
}

func TestTickSchedulerRepeats(t *testing.T) {
	s := NewTickScheduler(0)
	var at []int64
	var id TimerID
	id = s.Schedule(10*ms, true, func() {
		at = append(at, int64(s.Now()/ms))
		if len(at) == 3 {
			s.Cancel(id)
		}
	})
	s.AdvanceTo(100 * ms)
	assert.Equal(t, []int64{10, 20, 30}, at)
	assert.Equal(t, 0, s.Pending())
}

func TestTickSchedulerCallbackSchedulesWithinAdvance(t *testing.T) {
	s := NewTickScheduler(0)
	var got []int64
	s.Schedule(10*ms, false, func() {
		got = append(got, int64(s.Now()/ms))
		s.Schedule(5*ms, false, func() { got = append(got, int64(s.Now()/ms)) })
	})
	s.AdvanceTo(50 * ms)
	assert.Equal(t, []int64{10, 15}, got)
}

func TestTickSchedulerIgnoresBackwards(t *testing.T) {
	s := NewTickScheduler(100 * ms)
	s.AdvanceTo(50 * ms)
	assert.Equal(t, 100*ms, s.Now())
}

func TestTimerSlotRestartDropsStaleCallback(t *testing.T) {
	s := NewTickScheduler(0)
	var slot timerSlot
	var got []string
	slot.start(s, 10*ms, func() { got = append(got, "first") })
	slot.start(s, 20*ms, func() { got = append(got, "second") })
	assert.True(t, slot.active())
	assert.Equal(t, 1, s.Pending())

	s.AdvanceTo(30 * ms)
	assert.Equal(t, []string{"second"}, got)
	assert.False(t, slot.active())
}

func TestTimerSlotStopInsideSameTick(t *testing.T) {
	s := NewTickScheduler(0)
	var a, b timerSlot
	fired := false
	a.start(s, 10*ms, func() { b.stop(s) })
	b.start(s, 10*ms, func() { fired = true })
	s.AdvanceTo(10 * ms)
	assert.False(t, fired)
}

func TestTimerSlotNilScheduler(t *testing.T) {
	var slot timerSlot
	slot.start(nil, 10*ms, func() {})
	assert.False(t, slot.active())
	slot.stop(nil)
}
