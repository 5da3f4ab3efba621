package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTapSequences(t *testing.T) {
	tests := []struct {
		name string
		seq  *Sequence
		want []EventType
	}{
		{
			name: "quick tap",
			seq:  touch().Press(10, 10).Wait(50 * ms).Release(),
			want: []EventType{EventTapDown, EventTapUp, EventTap},
		},
		{
			name: "held past press timeout",
			seq:  touch().Press(10, 10).Wait(150 * ms).Release(),
			want: []EventType{EventTapDown, EventTapUp, EventTap},
		},
		{
			name: "jitter within slop",
			seq:  touch().Press(10, 10).Wait(20*ms).Move(15, 13).Wait(20 * ms).Release(),
			want: []EventType{EventTapDown, EventTapUp, EventTap},
		},
		{
			name: "moved out of slop early",
			seq:  touch().Press(10, 10).Wait(50*ms).Move(30, 10).Wait(10 * ms).Release(),
			want: nil,
		},
		{
			name: "moved out of slop after tap-down",
			seq:  touch().Press(10, 10).Wait(150*ms).Move(30, 10).Wait(10 * ms).Release(),
			want: []EventType{EventTapDown, EventTapCancel},
		},
		{
			name: "cancelled by platform",
			seq:  touch().Press(10, 10).Wait(50 * ms).Cancel(),
			want: nil,
		},
		{
			name: "secondary button ignored",
			seq:  touch().WithButton(ButtonSecondary).Press(10, 10).Wait(50 * ms).Release(),
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, NewTap())
			h.run(tt.seq)
			h.advance(h.sched.Now() + time1s)
			h.requireTypes(tt.want...)
			assert.Equal(t, 0, h.d.Arenas().Len())
		})
	}
}

const time1s = 1000 * ms

func TestTapCallbacks(t *testing.T) {
	tap := NewTap()
	var downs, ups []TapDetails
	taps, cancels := 0, 0
	tap.OnTapDown = func(d TapDetails) { downs = append(downs, d) }
	tap.OnTapUp = func(d TapDetails) { ups = append(ups, d) }
	tap.OnTap = func() { taps++ }
	tap.OnTapCancel = func() { cancels++ }

	h := newHarness(t, tap)
	h.run(touch().WithModifiers(ModShift).Press(10, 10).Wait(30*ms).Move(12, 11).Wait(20 * ms).Release())

	assert.Equal(t, 1, taps)
	assert.Equal(t, 0, cancels)
	if assert.Len(t, downs, 1) && assert.Len(t, ups, 1) {
		assert.Equal(t, Vec2{10, 10}, downs[0].Position)
		assert.Equal(t, Vec2{12, 11}, ups[0].Position)
		assert.Equal(t, ModShift, ups[0].Modifiers)
		assert.Equal(t, DeviceTouch, ups[0].Device)
		assert.Equal(t, 50*ms, ups[0].Timestamp)
	}
	assert.Equal(t, h.view.ID, h.log.Events[0].OwnerID)
}

func TestTapButtonsAndEnable(t *testing.T) {
	tap := NewTap()
	tap.SetButtons(ButtonSecondary)
	h := newHarness(t, tap)

	h.run(touch().WithButton(ButtonSecondary).Click(10, 10))
	assert.Equal(t, 1, h.count(EventTap))

	tap.SetEnabled(false)
	assert.False(t, tap.Enabled())
	h.run(touch().WithButton(ButtonSecondary).At(time1s).Click(10, 10))
	assert.Equal(t, 1, h.count(EventTap))

	tap.SetEnabled(true)
	tap.SetDeviceKinds(DeviceMouse)
	h.run(touch().WithButton(ButtonSecondary).At(2*time1s).Click(10, 10))
	assert.Equal(t, 1, h.count(EventTap))
	h.run(NewSequence(DeviceMouse, 0).WithButton(ButtonSecondary).At(3*time1s).Click(10, 10))
	assert.Equal(t, 2, h.count(EventTap))
}

// A quick tap on a view carrying tap, long press and pan fires exactly one
// tap and none of the long press or drag recognition callbacks.
func TestTapBeatsLongPressAndPan(t *testing.T) {
	tap := NewTap()
	press := NewLongPress()
	pan := NewPan()
	taps, longPresses, drags := 0, 0, 0
	tap.OnTap = func() { taps++ }
	press.OnLongPress = func() { longPresses++ }
	press.OnLongPressStart = func(LongPressStartDetails) { longPresses++ }
	press.OnLongPressEnd = func(LongPressEndDetails) { longPresses++ }
	pan.OnStart = func(DragStartDetails) { drags++ }
	pan.OnUpdate = func(DragUpdateDetails) { drags++ }
	pan.OnEnd = func(DragEndDetails) { drags++ }

	h := newHarness(t, tap, press, pan)
	h.run(touch().Press(100, 100).Wait(60*ms).Move(103, 102).Wait(20 * ms).Release())
	h.advance(time1s)

	assert.Equal(t, 1, taps)
	assert.Zero(t, longPresses)
	assert.Zero(t, drags)
	assert.Equal(t, 1, h.count(EventTap))
	assert.Zero(t, h.count(EventLongPressStart))
	assert.Zero(t, h.count(EventDragStart))
}

func TestTapDisposeDropsState(t *testing.T) {
	tap := NewTap()
	h := newHarness(t, tap)
	h.run(touch().Press(10, 10))
	h.view.RemoveGesture(tap)
	h.run(touch().At(50 * ms).Release())
	h.advance(time1s)
	h.requireTypes()
}
