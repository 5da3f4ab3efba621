package tcellsrc

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/gesture"
)

func newSource(t *testing.T, recs ...gesture.Recognizer) (*Source, *gesture.EventLog) {
	t.Helper()
	tree := gesture.NewRegionTree()
	view := gesture.NewRegion("view", gesture.HitRect{Width: 800, Height: 800})
	tree.Root().AddChild(view)
	for _, r := range recs {
		view.AddGesture(r)
	}
	d := gesture.NewDispatcher(tree, nil)
	log := &gesture.EventLog{}
	d.SetEventSink(log)
	src := New(d)
	src.SetEpoch(time.Now().Add(-time.Second))
	return src, log
}

func TestCellMapping(t *testing.T) {
	src, _ := newSource(t)
	tests := []struct {
		x, y int
		want gesture.Vec2
	}{
		{0, 0, gesture.Vec2{X: 4, Y: 8}},
		{2, 3, gesture.Vec2{X: 20, Y: 56}},
		{10, 1, gesture.Vec2{X: 84, Y: 24}},
	}
	for _, tt := range tests {
		p := src.Position(tt.x, tt.y)
		assert.Equal(t, tt.want, p)
		cx, cy := src.Cell(p)
		assert.Equal(t, tt.x, cx)
		assert.Equal(t, tt.y, cy)
	}
}

func TestHandleEventIgnoresKeys(t *testing.T) {
	src, log := newSource(t, gesture.NewTap())
	assert.False(t, src.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))
	assert.Empty(t, log.Events)
}

func TestMouseClick(t *testing.T) {
	tap := gesture.NewTap()
	var got []gesture.TapDetails
	tap.OnTapUp = func(d gesture.TapDetails) { got = append(got, d) }
	src, log := newSource(t, tap)

	require.True(t, src.HandleEvent(tcell.NewEventMouse(2, 3, tcell.Button1, tcell.ModShift|tcell.ModCtrl)))
	require.True(t, src.HandleEvent(tcell.NewEventMouse(2, 3, tcell.ButtonNone, tcell.ModNone)))

	assert.Equal(t, []gesture.EventType{gesture.EventTapDown, gesture.EventTapUp, gesture.EventTap}, log.Types())
	assert.Equal(t, gesture.ModShift|gesture.ModCtrl, log.Events[0].Modifiers)
	require.Len(t, got, 1)
	assert.Equal(t, gesture.Vec2{X: 20, Y: 56}, got[0].Position)
	assert.Equal(t, gesture.DeviceMouse, got[0].Device)
	assert.GreaterOrEqual(t, got[0].Timestamp, time.Second)
}

func TestMouseDrag(t *testing.T) {
	pan := gesture.NewPan()
	var total gesture.Vec2
	pan.OnUpdate = func(d gesture.DragUpdateDetails) { total = total.Add(d.Delta) }
	src, log := newSource(t, gesture.NewTap(), pan)

	src.HandleEvent(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone))
	src.HandleEvent(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone))
	src.HandleEvent(tcell.NewEventMouse(4, 1, tcell.Button1, tcell.ModNone))
	src.HandleEvent(tcell.NewEventMouse(6, 1, tcell.ButtonNone, tcell.ModNone))

	assert.Equal(t, gesture.Vec2{X: 24}, total)
	assert.Contains(t, log.Types(), gesture.EventDragEnd)
	assert.NotContains(t, log.Types(), gesture.EventTap)
}

func TestMouseWheelAndHover(t *testing.T) {
	hover := gesture.NewHover()
	pan := gesture.NewVerticalPan()
	pan.SetScrollType(gesture.ScrollTypeWheel)
	var deltas []gesture.Vec2
	pan.OnUpdate = func(d gesture.DragUpdateDetails) { deltas = append(deltas, d.Delta) }
	src, log := newSource(t, hover, pan)

	src.HandleEvent(tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone))
	src.HandleEvent(tcell.NewEventMouse(1, 1, tcell.WheelDown, tcell.ModNone))
	src.HandleEvent(tcell.NewEventMouse(1, 1, tcell.WheelUp, tcell.ModNone))

	assert.Equal(t, gesture.EventHoverEnter, log.Types()[0])
	assert.True(t, hover.Inside(MouseDevice))
	assert.Equal(t, []gesture.Vec2{{Y: 16}, {Y: -16}}, deltas)
}
