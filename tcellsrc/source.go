// Package tcellsrc feeds terminal mouse events from tcell into a
// gesture.Dispatcher. Cell coordinates are scaled by CellWidth and
// CellHeight so that slop thresholds tuned in pixels stay meaningful.
package tcellsrc

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/gesture"
)

// MouseDevice is the DeviceID used for the terminal mouse.
const MouseDevice int64 = 0

// Source converts *tcell.EventMouse values into pointer events.
type Source struct {
	d *gesture.Dispatcher

	// CellWidth and CellHeight give the size of a terminal cell in the
	// dispatcher's coordinate space.
	CellWidth, CellHeight float64
	// WheelStep converts one wheel notch into pixels.
	WheelStep float64

	epoch   time.Time
	down    bool
	button  gesture.Button
	last    gesture.Vec2
	hasLast bool
}

// New creates a source with 8x16 cells, measuring time from now.
func New(d *gesture.Dispatcher) *Source {
	return &Source{d: d, CellWidth: 8, CellHeight: 16, WheelStep: 16, epoch: time.Now()}
}

// SetEpoch sets the instant event timestamps are measured from.
func (s *Source) SetEpoch(t time.Time) { s.epoch = t }

// Position maps a cell to the dispatcher's coordinate space, at the cell
// center.
func (s *Source) Position(x, y int) gesture.Vec2 {
	return gesture.Vec2{
		X: (float64(x) + 0.5) * s.CellWidth,
		Y: (float64(y) + 0.5) * s.CellHeight,
	}
}

// Cell maps a position back to the cell containing it.
func (s *Source) Cell(p gesture.Vec2) (int, int) {
	return int(p.X / s.CellWidth), int(p.Y / s.CellHeight)
}

// Now returns the current time on the source's clock. Terminal hosts call
// Dispatcher.AdvanceTo(src.Now()) from a ticker so timers fire while the
// mouse is idle.
func (s *Source) Now() time.Duration { return time.Since(s.epoch) }

// HandleEvent dispatches ev if it is a mouse event and reports whether it
// was consumed.
func (s *Source) HandleEvent(ev tcell.Event) bool {
	me, ok := ev.(*tcell.EventMouse)
	if !ok {
		return false
	}
	packet := s.translate(me)
	if len(packet) > 0 {
		s.d.HandlePacket(packet)
	}
	return true
}

func (s *Source) translate(me *tcell.EventMouse) []gesture.PointerEvent {
	x, y := me.Position()
	pos := s.Position(x, y)
	ts := me.When().Sub(s.epoch)
	if ts < 0 {
		ts = 0
	}
	mods := modifiers(me.Modifiers())
	btns := me.Buttons()
	moved := !s.hasLast || pos != s.last
	s.last, s.hasLast = pos, true

	ev := func(kind gesture.EventKind, signal gesture.SignalKind, b gesture.Button) gesture.PointerEvent {
		return gesture.PointerEvent{
			Kind:      kind,
			Signal:    signal,
			Device:    gesture.DeviceMouse,
			DeviceID:  MouseDevice,
			Button:    b,
			Position:  pos,
			Timestamp: ts,
			Modifiers: mods,
		}
	}

	var out []gesture.PointerEvent
	if wheel := s.wheel(btns); !wheel.IsZero() {
		e := ev(gesture.KindMove, gesture.SignalScroll, gesture.ButtonNone)
		e.Delta = wheel
		out = append(out, e)
	}

	button := mapButton(btns)
	switch {
	case button != gesture.ButtonNone && !s.down:
		s.down, s.button = true, button
		out = append(out, ev(gesture.KindDown, gesture.SignalNormal, button))
	case button == gesture.ButtonNone && s.down:
		s.down = false
		out = append(out, ev(gesture.KindUp, gesture.SignalNormal, s.button))
	case s.down && moved:
		out = append(out, ev(gesture.KindMove, gesture.SignalNormal, s.button))
	case !s.down && moved:
		out = append(out, ev(gesture.KindMove, gesture.SignalHover, gesture.ButtonNone))
	}
	return out
}

func (s *Source) wheel(btns tcell.ButtonMask) gesture.Vec2 {
	var v gesture.Vec2
	if btns&tcell.WheelUp != 0 {
		v.Y -= s.WheelStep
	}
	if btns&tcell.WheelDown != 0 {
		v.Y += s.WheelStep
	}
	if btns&tcell.WheelLeft != 0 {
		v.X -= s.WheelStep
	}
	if btns&tcell.WheelRight != 0 {
		v.X += s.WheelStep
	}
	return v
}

// mapButton picks the contact button; tcell's Button1 is the left button
// and Button2 the right one.
func mapButton(btns tcell.ButtonMask) gesture.Button {
	switch {
	case btns&tcell.Button1 != 0:
		return gesture.ButtonPrimary
	case btns&tcell.Button2 != 0:
		return gesture.ButtonSecondary
	case btns&tcell.Button3 != 0:
		return gesture.ButtonMiddle
	}
	return gesture.ButtonNone
}

func modifiers(m tcell.ModMask) gesture.Modifiers {
	var mods gesture.Modifiers
	if m&tcell.ModShift != 0 {
		mods |= gesture.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= gesture.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= gesture.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= gesture.ModMeta
	}
	return mods
}
