package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dragClient records what a MultiDrag delivers to one pointer's Drag.
type dragClient struct {
	start     Vec2
	updates   []DragUpdateDetails
	ends      []DragEndDetails
	cancelled bool
}

func (c *dragClient) Update(d DragUpdateDetails) { c.updates = append(c.updates, d) }
func (c *dragClient) End(d DragEndDetails)       { c.ends = append(c.ends, d) }
func (c *dragClient) Cancel()                    { c.cancelled = true }

func (c *dragClient) total() Vec2 {
	var sum Vec2
	for _, u := range c.updates {
		sum = sum.Add(u.Delta)
	}
	return sum
}

func recordDrags(r *MultiDrag) *[]*dragClient {
	var clients []*dragClient
	r.OnStart = func(pos Vec2) Drag {
		c := &dragClient{start: pos}
		clients = append(clients, c)
		return c
	}
	return &clients
}

func TestMultiDragIndependentPointers(t *testing.T) {
	drag := NewImmediateMultiDrag()
	clients := recordDrags(drag)
	h := newHarness(t, drag)

	a := NewSequence(DeviceTouch, 1).Press(100, 100).
		At(10*ms).Move(120, 100).At(20*ms).Move(130, 100).At(30 * ms).Release()
	b := NewSequence(DeviceTouch, 2).At(5*ms).Press(500, 500).
		At(15*ms).Move(500, 520).At(25 * ms).Release()
	h.run(a, b)

	h.requireTypes(
		EventDragDown, EventDragDown,
		EventDragStart, EventDragUpdate,
		EventDragStart, EventDragUpdate,
		EventDragUpdate,
		EventDragEnd, EventDragEnd,
	)
	require.Len(t, *clients, 2)
	first, second := (*clients)[0], (*clients)[1]
	assert.Equal(t, Vec2{100, 100}, first.start)
	assert.Equal(t, Vec2{30, 0}, first.total())
	assert.Len(t, first.ends, 1)
	assert.Equal(t, Vec2{500, 500}, second.start)
	assert.Equal(t, Vec2{0, 20}, second.total())
	assert.Len(t, second.ends, 1)
	assert.Zero(t, drag.Active())
	assert.Equal(t, 0, h.d.Arenas().Len())
}

func TestMultiDragUnresolvedPointerLeavesTap(t *testing.T) {
	drag := NewImmediateMultiDrag()
	clients := recordDrags(drag)
	h := newHarness(t, NewTap(), drag)
	h.run(touch().Press(100, 100).Wait(20 * ms).Release())

	h.requireTypes(EventDragDown, EventTapDown, EventTapUp, EventTap)
	assert.Empty(t, *clients)
}

func TestMultiDragAxis(t *testing.T) {
	tests := []struct {
		name    string
		drag    *MultiDrag
		to      Vec2
		started bool
		primary float64
	}{
		{"horizontal along x", NewHorizontalMultiDrag(), Vec2{130, 100}, true, 30},
		{"horizontal across", NewHorizontalMultiDrag(), Vec2{100, 130}, false, 0},
		{"vertical along y", NewVerticalMultiDrag(), Vec2{100, 70}, true, -30},
		{"vertical across", NewVerticalMultiDrag(), Vec2{70, 100}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clients := recordDrags(tt.drag)
			h := newHarness(t, tt.drag)
			h.run(touch().Press(100, 100).Wait(10*ms).Move(tt.to.X, tt.to.Y).Wait(10 * ms).Release())

			if !tt.started {
				assert.Empty(t, *clients)
				h.requireTypes(EventDragDown)
				return
			}
			require.Len(t, *clients, 1)
			c := (*clients)[0]
			require.Len(t, c.updates, 1)
			assert.Equal(t, tt.primary, c.updates[0].PrimaryDelta)
		})
	}
}

func TestDelayedMultiDrag(t *testing.T) {
	drag := NewDelayedMultiDrag(200 * ms)
	clients := recordDrags(drag)
	h := newHarness(t, drag)

	h.run(touch().Press(100, 100))
	h.advance(199 * ms)
	assert.Empty(t, *clients)
	h.advance(200 * ms)
	require.Len(t, *clients, 1)

	h.run(touch().At(250*ms).Move(150, 100).Wait(10 * ms).Release())
	h.requireTypes(EventDragDown, EventDragStart, EventDragUpdate, EventDragEnd)
	c := (*clients)[0]
	assert.Equal(t, Vec2{50, 0}, c.total())
	assert.Len(t, c.ends, 1)
}

func TestDelayedMultiDragMovedTooEarly(t *testing.T) {
	drag := NewDelayedMultiDrag(0)
	clients := recordDrags(drag)
	h := newHarness(t, drag)

	h.run(touch().Press(100, 100).Wait(50*ms).Move(130, 100))
	h.advance(time1s)

	assert.Empty(t, *clients)
	assert.Zero(t, drag.Active())
	assert.Equal(t, 0, h.d.Arenas().Len())
	h.requireTypes(EventDragDown)
}

func TestDelayedMultiDragDefaultsToLongPressTimeout(t *testing.T) {
	drag := NewDelayedMultiDrag(0)
	clients := recordDrags(drag)
	h := newHarness(t, drag)

	h.run(touch().Press(100, 100))
	h.advance(499 * ms)
	assert.Empty(t, *clients)
	h.advance(500 * ms)
	assert.Len(t, *clients, 1)
}

func TestMultiDragNilClientDropsPointer(t *testing.T) {
	drag := NewImmediateMultiDrag()
	drag.OnStart = func(Vec2) Drag { return nil }
	h := newHarness(t, drag)
	h.run(touch().Press(100, 100).Wait(10*ms).Move(150, 100).Wait(10*ms).Move(200, 100).Release())

	h.requireTypes(EventDragDown)
	assert.Zero(t, drag.Active())
}

func TestMultiDragCancel(t *testing.T) {
	t.Run("platform cancel", func(t *testing.T) {
		drag := NewImmediateMultiDrag()
		clients := recordDrags(drag)
		h := newHarness(t, drag)
		h.run(touch().Press(100, 100).Wait(10*ms).Move(150, 100).Wait(10 * ms).Cancel())

		require.Len(t, *clients, 1)
		assert.True(t, (*clients)[0].cancelled)
		assert.Empty(t, (*clients)[0].ends)
		assert.Equal(t, 1, h.count(EventDragCancel))
	})

	t.Run("dispose", func(t *testing.T) {
		drag := NewImmediateMultiDrag()
		clients := recordDrags(drag)
		h := newHarness(t, drag)
		h.run(touch().Press(100, 100).Wait(10*ms).Move(150, 100))
		require.Equal(t, 1, drag.Active())

		drag.Dispose()
		assert.Zero(t, drag.Active())
		require.Len(t, *clients, 1)
		assert.True(t, (*clients)[0].cancelled)
	})
}
