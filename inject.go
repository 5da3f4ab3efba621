package gesture

import (
	"slices"
	"time"
)

// Sequence builds timestamped pointer events for one device. It is the
// synthetic counterpart of a platform pointer source: tests and replay
// scripts feed its output to Dispatcher.HandlePacket.
//
//	taps := NewSequence(DeviceTouch, 1).Click(10, 10).Wait(100 * time.Millisecond).Click(12, 10)
//	d.HandlePacket(taps.Events())
type Sequence struct {
	device   DeviceKind
	deviceID int64
	button   Button
	mods     Modifiers
	now      time.Duration
	pos      Vec2
	pressed  bool

	pressure, pressureMin, pressureMax float64

	events []PointerEvent
}

// NewSequence starts an empty sequence at time zero using the primary button.
func NewSequence(device DeviceKind, deviceID int64) *Sequence {
	return &Sequence{device: device, deviceID: deviceID, button: ButtonPrimary}
}

// At sets the clock for the next event.
func (s *Sequence) At(t time.Duration) *Sequence {
	s.now = t
	return s
}

// Wait advances the clock by d.
func (s *Sequence) Wait(d time.Duration) *Sequence {
	s.now += d
	return s
}

// Now returns the sequence clock.
func (s *Sequence) Now() time.Duration { return s.now }

// WithButton sets the button used by subsequent presses.
func (s *Sequence) WithButton(b Button) *Sequence {
	s.button = b
	return s
}

// WithModifiers sets the modifier keys reported by subsequent events.
func (s *Sequence) WithModifiers(m Modifiers) *Sequence {
	s.mods = m
	return s
}

// WithPressure sets the pressure reported by subsequent contact events.
func (s *Sequence) WithPressure(p, minValue, maxValue float64) *Sequence {
	s.pressure, s.pressureMin, s.pressureMax = p, minValue, maxValue
	return s
}

func (s *Sequence) add(kind EventKind, signal SignalKind, pos Vec2) *PointerEvent {
	e := PointerEvent{
		Kind:        kind,
		Button:      s.button,
		Device:      s.device,
		Signal:      signal,
		Timestamp:   s.now,
		DeviceID:    s.deviceID,
		Position:    pos,
		Delta:       pos.Sub(s.pos),
		Modifiers:   s.mods,
		Pressure:    s.pressure,
		PressureMin: s.pressureMin,
		PressureMax: s.pressureMax,
	}
	if signal == SignalHover {
		e.Button = ButtonNone
	}
	s.pos = pos
	s.events = append(s.events, e)
	return &s.events[len(s.events)-1]
}

// Press queues a Down at (x, y).
func (s *Sequence) Press(x, y float64) *Sequence {
	s.pos = Vec2{x, y}
	s.add(KindDown, SignalNormal, s.pos)
	s.pressed = true
	return s
}

// Move queues a Move to (x, y) with the button held.
func (s *Sequence) Move(x, y float64) *Sequence {
	s.add(KindMove, SignalNormal, Vec2{x, y})
	return s
}

// Release queues an Up at the current position.
func (s *Sequence) Release() *Sequence {
	s.add(KindUp, SignalNormal, s.pos)
	s.pressed = false
	return s
}

// Cancel queues a Cancel at the current position.
func (s *Sequence) Cancel() *Sequence {
	s.add(KindCancel, SignalNormal, s.pos)
	s.pressed = false
	return s
}

// Click queues a press immediately followed by a release at (x, y).
func (s *Sequence) Click(x, y float64) *Sequence {
	return s.Press(x, y).Release()
}

// Drag queues a press at from, steps evenly spaced moves ending at to spread
// over d, and a release at to. Fewer than one step is treated as one.
func (s *Sequence) Drag(from, to Vec2, steps int, d time.Duration) *Sequence {
	if steps < 1 {
		steps = 1
	}
	s.Press(from.X, from.Y)
	s.MoveTo(to, steps, d)
	return s.Release()
}

// MoveTo queues steps evenly spaced moves from the current position to to,
// spread over d.
func (s *Sequence) MoveTo(to Vec2, steps int, d time.Duration) *Sequence {
	if steps < 1 {
		steps = 1
	}
	from := s.pos
	dt := d / time.Duration(steps)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.now += dt
		s.Move(from.X+(to.X-from.X)*t, from.Y+(to.Y-from.Y)*t)
	}
	return s
}

// Hover queues a hover sample at (x, y).
func (s *Sequence) Hover(x, y float64) *Sequence {
	s.add(KindMove, SignalHover, Vec2{x, y})
	return s
}

// Scroll queues a scroll signal at (x, y) carrying the offset (dx, dy).
func (s *Sequence) Scroll(x, y, dx, dy float64) *Sequence {
	e := s.add(KindMove, SignalScroll, Vec2{x, y})
	e.Delta = Vec2{dx, dy}
	return s
}

// Pinch queues a trackpad scale signal at (x, y).
func (s *Sequence) Pinch(x, y, scale float64) *Sequence {
	e := s.add(KindMove, SignalScale, Vec2{x, y})
	e.Delta = Vec2{}
	e.Scale = scale
	return s
}

// Rotate queues a trackpad rotate signal at (x, y); rotation is in radians.
func (s *Sequence) Rotate(x, y, rotation float64) *Sequence {
	e := s.add(KindMove, SignalRotate, Vec2{x, y})
	e.Delta = Vec2{}
	e.Scale = 1
	e.Rotation = rotation
	return s
}

// Pressed reports whether the sequence currently holds the button down.
func (s *Sequence) Pressed() bool { return s.pressed }

// Events returns a copy of the queued events.
func (s *Sequence) Events() []PointerEvent {
	return slices.Clone(s.events)
}

// Merge interleaves several sequences by timestamp. Events with equal
// timestamps keep the order of seqs.
func Merge(seqs ...*Sequence) []PointerEvent {
	var out []PointerEvent
	for _, s := range seqs {
		out = append(out, s.events...)
	}
	slices.SortStableFunc(out, func(a, b PointerEvent) int {
		switch {
		case a.Timestamp < b.Timestamp:
			return -1
		case a.Timestamp > b.Timestamp:
			return 1
		}
		return 0
	})
	return out
}
