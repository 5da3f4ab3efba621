package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// panRecorder collects the callbacks of a Pan.
type panRecorder struct {
	downs   []DragDownDetails
	starts  []DragStartDetails
	updates []DragUpdateDetails
	ends    []DragEndDetails
	cancels int
}

func recordPan(p *Pan) *panRecorder {
	rec := &panRecorder{}
	p.OnDown = func(d DragDownDetails) { rec.downs = append(rec.downs, d) }
	p.OnStart = func(d DragStartDetails) { rec.starts = append(rec.starts, d) }
	p.OnUpdate = func(d DragUpdateDetails) { rec.updates = append(rec.updates, d) }
	p.OnEnd = func(d DragEndDetails) { rec.ends = append(rec.ends, d) }
	p.OnCancel = func(DragCancelDetails) { rec.cancels++ }
	return rec
}

func (r *panRecorder) total() Vec2 {
	var sum Vec2
	for _, u := range r.updates {
		sum = sum.Add(u.Delta)
	}
	return sum
}

// Down at the origin, a 50px horizontal move at 100ms and release at 120ms on
// a view with both Tap and a horizontal Pan: the pan wins and the tap never
// fires.
func TestHorizontalPanBeatsTap(t *testing.T) {
	tap := NewTap()
	taps := 0
	tap.OnTap = func() { taps++ }
	pan := NewHorizontalPan()
	rec := recordPan(pan)

	h := newHarness(t, tap, pan)
	h.run(touch().Press(0, 0).At(100*ms).Move(50, 0).At(120 * ms).Release())
	h.advance(time1s)

	assert.Zero(t, taps)
	assert.Zero(t, h.count(EventTapDown))
	h.requireTypes(EventDragDown, EventDragStart, EventDragUpdate, EventDragEnd)
	require.Len(t, rec.starts, 1)
	assert.Equal(t, Vec2{0, 0}, rec.starts[0].Position)
	require.Len(t, rec.updates, 1)
	assert.Equal(t, Vec2{50, 0}, rec.updates[0].Delta)
	assert.Equal(t, 50.0, rec.updates[0].PrimaryDelta)
	require.Len(t, rec.ends, 1)
	assert.Equal(t, VelocityZero, rec.ends[0].Velocity, "a release after a pause is not a fling")
}

func TestPanDragAndFling(t *testing.T) {
	tap := NewTap()
	pan := NewPan()
	rec := recordPan(pan)

	h := newHarness(t, tap, pan)
	h.run(touch().Press(10, 10).MoveTo(Vec2{60, 10}, 5, 50*ms).Release())

	h.requireTypes(EventDragDown, EventDragStart,
		EventDragUpdate, EventDragUpdate, EventDragUpdate, EventDragUpdate, EventDragUpdate,
		EventDragEnd)
	assert.Equal(t, Vec2{10, 10}, rec.starts[0].Position)
	assert.Equal(t, Vec2{50, 0}, rec.total())
	for _, u := range rec.updates {
		assert.Equal(t, Vec2{10, 0}, u.Delta)
	}
	require.Len(t, rec.ends, 1)
	assert.InDelta(t, 1000, rec.ends[0].Velocity.PixelsPerSecond.X, 1e-3)
	assert.InDelta(t, 0, rec.ends[0].Velocity.PixelsPerSecond.Y, 1e-3)
	assert.Zero(t, rec.cancels)

	last := h.log.Events[len(h.log.Events)-1]
	assert.InDelta(t, 1000, last.Velocity.X, 1e-3)
}

func TestPanFlingLimits(t *testing.T) {
	tests := []struct {
		name  string
		setup func(p *Pan)
		want  float64
	}{
		{"default", func(*Pan) {}, 1000},
		{"clamped", func(p *Pan) { p.SetMaxFlingVelocity(400) }, 400},
		{"too slow", func(p *Pan) { p.SetMinFlingVelocity(2000) }, 0},
		{"too short", func(p *Pan) { p.SetMinFlingDistance(80) }, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pan := NewHorizontalPan()
			tt.setup(pan)
			rec := recordPan(pan)
			h := newHarness(t, pan)
			h.run(touch().Press(10, 10).MoveTo(Vec2{60, 10}, 5, 50*ms).Release())
			require.Len(t, rec.ends, 1)
			assert.InDelta(t, tt.want, rec.ends[0].PrimaryVelocity, 1e-3)
		})
	}
}

func TestPanSlop(t *testing.T) {
	pan := NewPan()
	pan.SetSlop(30)
	rec := recordPan(pan)
	h := newHarness(t, pan)

	h.run(touch().Press(0, 0).Wait(10*ms).Move(20, 0).Wait(10*ms).Move(25, 0))
	assert.Empty(t, rec.starts)
	h.run(touch().At(30*ms).Move(40, 0))
	require.Len(t, rec.starts, 1)
	require.Len(t, rec.updates, 1)
	assert.Equal(t, Vec2{40, 0}, rec.updates[0].Delta, "movement before acceptance is delivered at once")
}

func TestVerticalPanIgnoresHorizontalDrag(t *testing.T) {
	pan := NewVerticalPan()
	rec := recordPan(pan)
	h := newHarness(t, pan)
	h.run(touch().Press(10, 10).MoveTo(Vec2{110, 12}, 5, 50*ms).Release())

	assert.Empty(t, rec.starts)
	assert.Equal(t, 1, rec.cancels)
	h.requireTypes(EventDragDown, EventDragCancel)
}

func TestPanCancelledAfterStart(t *testing.T) {
	pan := NewPan()
	rec := recordPan(pan)
	h := newHarness(t, pan)
	h.run(touch().Press(10, 10).MoveTo(Vec2{60, 10}, 2, 20*ms).Cancel())

	assert.Len(t, rec.starts, 1)
	assert.Empty(t, rec.ends)
	assert.Equal(t, 1, rec.cancels)
}

func TestPanTwoPointersFollowCentroid(t *testing.T) {
	pan := NewPan()
	rec := recordPan(pan)
	h := newHarness(t, pan)

	a := NewSequence(DeviceTouch, 1).Press(100, 100).At(20*ms).Move(140, 100)
	b := NewSequence(DeviceTouch, 2).At(10*ms).Press(200, 100)
	h.run(a, b)

	require.Len(t, rec.starts, 1)
	assert.Equal(t, Vec2{100, 100}, rec.starts[0].Position)
	require.Len(t, rec.updates, 1)
	assert.Equal(t, Vec2{20, 0}, rec.updates[0].Delta)
	assert.Equal(t, Vec2{170, 100}, rec.updates[0].Position)
}

func TestPanScrollSignal(t *testing.T) {
	tests := []struct {
		name string
		typ  ScrollType
		want []EventType
	}{
		{"drag only", ScrollTypeDrag, nil},
		{"wheel", ScrollTypeWheel, []EventType{EventDragDown, EventDragStart, EventDragUpdate, EventDragEnd}},
		{"scroll", ScrollTypeScroll, []EventType{EventDragDown, EventDragStart, EventDragUpdate, EventDragEnd}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pan := NewVerticalPan()
			pan.SetScrollType(tt.typ)
			rec := recordPan(pan)
			h := newHarness(t, pan)
			h.run(NewSequence(DeviceMouse, 0).Scroll(50, 50, 7, -40))

			h.requireTypes(tt.want...)
			if tt.want != nil {
				require.Len(t, rec.updates, 1)
				assert.Equal(t, Vec2{0, -40}, rec.updates[0].Delta)
				assert.Equal(t, Vec2{50, 50}, rec.updates[0].Position)
			}
			assert.Equal(t, 0, h.d.Arenas().Len())
		})
	}
}

func TestPanWheelOnlyIgnoresContact(t *testing.T) {
	pan := NewPan()
	pan.SetScrollType(ScrollTypeWheel)
	h := newHarness(t, pan)
	h.run(touch().Press(10, 10).MoveTo(Vec2{60, 10}, 5, 50*ms).Release())
	h.requireTypes()
}
