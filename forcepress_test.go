package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pen() *Sequence { return NewSequence(DeviceStylus, 7) }

func TestNormalizedPressure(t *testing.T) {
	tests := []struct {
		name          string
		lo, hi, value float64
		want          float64
	}{
		{"bottom", 0, 4, 0, 0},
		{"middle", 0, 4, 2, 0.5},
		{"offset range", 1, 3, 2.5, 0.75},
		{"degenerate", 2, 2, 2, 0},
		{"inverted", 4, 0, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, normalizedPressure(tt.lo, tt.hi, tt.value), 1e-9)
		})
	}
}

func TestForcePressStartPeakEnd(t *testing.T) {
	force := NewForcePress()
	var peaks, updates []ForcePressDetails
	var starts, ends int
	force.OnStart = func(ForcePressDetails) { starts++ }
	force.OnPeak = func(d ForcePressDetails) { peaks = append(peaks, d) }
	force.OnUpdate = func(d ForcePressDetails) { updates = append(updates, d) }
	force.OnEnd = func(ForcePressDetails) { ends++ }

	h := newHarness(t, force)
	h.run(pen().WithPressure(0.5, 0, 4).Press(100, 100).
		Wait(10*ms).WithPressure(2, 0, 4).Move(100, 100).
		Wait(10*ms).WithPressure(3.6, 0, 4).Move(101, 100).
		Wait(10 * ms).Release())

	h.requireTypes(EventForcePressStart, EventForcePressUpdate,
		EventForcePressPeak, EventForcePressUpdate, EventForcePressEnd)
	assert.Equal(t, 1, starts)
	assert.Equal(t, 1, ends)
	require.Len(t, peaks, 1)
	assert.InDelta(t, 0.9, peaks[0].Pressure, 1e-9)
	assert.Equal(t, Vec2{101, 100}, peaks[0].Position)
	require.Len(t, updates, 2)
	assert.InDelta(t, 0.5, updates[0].Pressure, 1e-9)
	assert.Equal(t, 0, h.d.Arenas().Len())
}

func TestForcePressHardDown(t *testing.T) {
	force := NewForcePress()
	h := newHarness(t, NewTap(), force)
	h.run(pen().WithPressure(3, 0, 4).Press(100, 100).Wait(10 * ms).Release())

	h.requireTypes(EventForcePressStart, EventForcePressUpdate, EventForcePressEnd)
	assert.Zero(t, h.count(EventTap))
}

func TestForcePressLightTouchLeavesTap(t *testing.T) {
	force := NewForcePress()
	h := newHarness(t, NewTap(), force)
	h.run(pen().WithPressure(1, 0, 4).Press(100, 100).Wait(10 * ms).Release())

	h.requireTypes(EventTapDown, EventTapUp, EventTap)
}

func TestForcePressVetoedNeverStarts(t *testing.T) {
	tap := NewTap()
	tap.SetShouldAccept(func(AcceptModel) bool { return false })
	force := NewForcePress()
	var fired int
	force.OnStart = func(ForcePressDetails) { fired++ }
	force.OnPeak = func(ForcePressDetails) { fired++ }
	force.OnUpdate = func(ForcePressDetails) { fired++ }
	force.OnEnd = func(ForcePressDetails) { fired++ }

	h := newHarness(t, tap, force)
	h.run(pen().WithPressure(2, 0, 4).Press(100, 100).
		Wait(10*ms).WithPressure(3.6, 0, 4).Move(100, 100).
		Wait(10 * ms).Release())

	assert.Zero(t, fired)
	h.requireTypes(EventTapDown, EventTapUp, EventTap)
	assert.Equal(t, 0, h.d.Arenas().Len())
}

func TestForcePressMovedBeforeStart(t *testing.T) {
	force := NewForcePress()
	h := newHarness(t, force)
	h.run(pen().WithPressure(1, 0, 4).Press(100, 100).Wait(10*ms).Move(130, 100).
		Wait(10*ms).WithPressure(4, 0, 4).Move(130, 100))

	h.requireTypes()
	assert.Equal(t, 0, h.d.Arenas().Len())
}

func TestForcePressIgnoresDevicesWithoutRange(t *testing.T) {
	force := NewForcePress()
	h := newHarness(t, force)
	h.run(touch().WithPressure(1, 0, 1).Press(100, 100).Release())
	h.requireTypes()
	assert.Zero(t, h.d.Arenas().Len())
}

func TestForcePressCustomThresholds(t *testing.T) {
	force := NewForcePress()
	force.StartPressure = 0.1
	force.PeakPressure = 0.2
	h := newHarness(t, force)
	h.run(pen().WithPressure(1, 0, 4).Press(100, 100).Release())
	h.requireTypes(EventForcePressStart, EventForcePressPeak, EventForcePressUpdate, EventForcePressEnd)
}
