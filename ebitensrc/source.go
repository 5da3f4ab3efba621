// Package ebitensrc feeds Ebitengine mouse, wheel and touch input into a
// gesture.Dispatcher.
//
// Ebitengine reports input by polling, so a Source compares each frame with
// the previous one and turns the differences into pointer events:
//
//	func (g *Game) Update() error {
//		g.src.Update()
//		return nil
//	}
package ebitensrc

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/gesture"
)

// MouseDevice is the DeviceID of the mouse cursor. Touches use
// TouchDeviceBase plus their ebiten.TouchID.
const (
	MouseDevice     int64 = 0
	TouchDeviceBase int64 = 1 << 16
)

// DefaultWheelStep converts one wheel notch into pixels.
const DefaultWheelStep = 40.0

// Poller is the subset of Ebitengine's polling API a Source reads. The
// default implementation calls the ebiten package directly.
type Poller interface {
	CursorPosition() (int, int)
	IsMouseButtonPressed(b ebiten.MouseButton) bool
	Wheel() (float64, float64)
	AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID
	TouchPosition(id ebiten.TouchID) (int, int)
	IsKeyPressed(k ebiten.Key) bool
}

type ebitenPoller struct{}

func (ebitenPoller) CursorPosition() (int, int) { return ebiten.CursorPosition() }
func (ebitenPoller) IsMouseButtonPressed(b ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(b)
}
func (ebitenPoller) Wheel() (float64, float64) { return ebiten.Wheel() }
func (ebitenPoller) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return ebiten.AppendTouchIDs(ids)
}
func (ebitenPoller) TouchPosition(id ebiten.TouchID) (int, int) { return ebiten.TouchPosition(id) }
func (ebitenPoller) IsKeyPressed(k ebiten.Key) bool             { return ebiten.IsKeyPressed(k) }

// Source turns polled Ebitengine input into pointer packets.
type Source struct {
	d      *gesture.Dispatcher
	poller Poller
	clock  func() time.Duration

	// ScreenToWorld maps screen coordinates to the coordinate space of the
	// hit tester, e.g. through a camera. Nil means identity.
	ScreenToWorld func(x, y float64) (float64, float64)
	// WheelStep converts one wheel notch into pixels.
	WheelStep float64

	mouseDown   bool
	mouseButton gesture.Button
	mousePos    gesture.Vec2
	mouseSeen   bool

	touches map[ebiten.TouchID]gesture.Vec2
	idBuf   []ebiten.TouchID
	packet  []gesture.PointerEvent
}

// New creates a source reading Ebitengine's global input state. Timestamps
// are measured from the call to New.
func New(d *gesture.Dispatcher) *Source {
	start := time.Now()
	return NewWithPoller(d, ebitenPoller{}, func() time.Duration { return time.Since(start) })
}

// NewWithPoller creates a source reading p, stamping events with clock.
func NewWithPoller(d *gesture.Dispatcher, p Poller, clock func() time.Duration) *Source {
	return &Source{
		d:         d,
		poller:    p,
		clock:     clock,
		WheelStep: DefaultWheelStep,
		touches:   make(map[ebiten.TouchID]gesture.Vec2),
	}
}

// Update polls input once, dispatches the resulting packet and advances the
// dispatcher's timers to the current time. Call it once per frame.
func (s *Source) Update() {
	now := s.clock()
	mods := readModifiers(s.poller)
	s.packet = s.packet[:0]

	s.pollMouse(now, mods)
	s.pollWheel(now, mods)
	s.pollTouches(now, mods)

	if len(s.packet) > 0 {
		s.d.HandlePacket(s.packet)
	}
	s.d.AdvanceTo(now)
}

// readModifiers polls the current keyboard modifier state.
func readModifiers(p Poller) gesture.Modifiers {
	var mods gesture.Modifiers
	if p.IsKeyPressed(ebiten.KeyShift) {
		mods |= gesture.ModShift
	}
	if p.IsKeyPressed(ebiten.KeyControl) {
		mods |= gesture.ModCtrl
	}
	if p.IsKeyPressed(ebiten.KeyAlt) {
		mods |= gesture.ModAlt
	}
	if p.IsKeyPressed(ebiten.KeyMeta) {
		mods |= gesture.ModMeta
	}
	return mods
}

func (s *Source) world(x, y int) gesture.Vec2 {
	fx, fy := float64(x), float64(y)
	if s.ScreenToWorld != nil {
		fx, fy = s.ScreenToWorld(fx, fy)
	}
	return gesture.Vec2{X: fx, Y: fy}
}

func (s *Source) push(kind gesture.EventKind, signal gesture.SignalKind, device gesture.DeviceKind,
	id int64, button gesture.Button, pos gesture.Vec2, now time.Duration, mods gesture.Modifiers) *gesture.PointerEvent {
	s.packet = append(s.packet, gesture.PointerEvent{
		Kind:      kind,
		Signal:    signal,
		Device:    device,
		DeviceID:  id,
		Button:    button,
		Position:  pos,
		Timestamp: now,
		Modifiers: mods,
	})
	return &s.packet[len(s.packet)-1]
}

// pollMouse handles the mouse cursor. The button pressed first is kept for
// the whole contact.
func (s *Source) pollMouse(now time.Duration, mods gesture.Modifiers) {
	pos := s.world(s.poller.CursorPosition())
	moved := !s.mouseSeen || pos != s.mousePos
	s.mouseSeen = true
	s.mousePos = pos

	var button gesture.Button
	switch {
	case s.poller.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		button = gesture.ButtonPrimary
	case s.poller.IsMouseButtonPressed(ebiten.MouseButtonRight):
		button = gesture.ButtonSecondary
	case s.poller.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		button = gesture.ButtonMiddle
	}
	pressed := button != gesture.ButtonNone

	switch {
	case pressed && !s.mouseDown:
		s.mouseDown = true
		s.mouseButton = button
		s.push(gesture.KindDown, gesture.SignalNormal, gesture.DeviceMouse, MouseDevice, button, pos, now, mods)
	case !pressed && s.mouseDown:
		s.mouseDown = false
		s.push(gesture.KindUp, gesture.SignalNormal, gesture.DeviceMouse, MouseDevice, s.mouseButton, pos, now, mods)
	case pressed && moved:
		s.push(gesture.KindMove, gesture.SignalNormal, gesture.DeviceMouse, MouseDevice, s.mouseButton, pos, now, mods)
	case !pressed && moved:
		s.push(gesture.KindMove, gesture.SignalHover, gesture.DeviceMouse, MouseDevice, gesture.ButtonNone, pos, now, mods)
	}
}

func (s *Source) pollWheel(now time.Duration, mods gesture.Modifiers) {
	dx, dy := s.poller.Wheel()
	if dx == 0 && dy == 0 {
		return
	}
	e := s.push(gesture.KindMove, gesture.SignalScroll, gesture.DeviceMouse, MouseDevice,
		gesture.ButtonNone, s.mousePos, now, mods)
	e.Delta = gesture.Vec2{X: -dx * s.WheelStep, Y: -dy * s.WheelStep}
}

// pollTouches diffs the active touch ids against the previous frame.
func (s *Source) pollTouches(now time.Duration, mods gesture.Modifiers) {
	s.idBuf = s.poller.AppendTouchIDs(s.idBuf[:0])
	active := make(map[ebiten.TouchID]bool, len(s.idBuf))
	for _, tid := range s.idBuf {
		active[tid] = true
		pos := s.world(s.poller.TouchPosition(tid))
		last, seen := s.touches[tid]
		s.touches[tid] = pos
		id := TouchDeviceBase + int64(tid)
		switch {
		case !seen:
			s.push(gesture.KindDown, gesture.SignalNormal, gesture.DeviceTouch, id, gesture.ButtonPrimary, pos, now, mods)
		case pos != last:
			s.push(gesture.KindMove, gesture.SignalNormal, gesture.DeviceTouch, id, gesture.ButtonPrimary, pos, now, mods)
		}
	}
	// Release touches that are no longer active.
	for tid, last := range s.touches {
		if active[tid] {
			continue
		}
		delete(s.touches, tid)
		s.push(gesture.KindUp, gesture.SignalNormal, gesture.DeviceTouch, TouchDeviceBase+int64(tid),
			gesture.ButtonPrimary, last, now, mods)
	}
}
