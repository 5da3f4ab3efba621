package gesture

import "math"

type forceState uint8

const (
	forceReady forceState = iota
	forcePossible
	forceAccepted
	forceStarted
	forcePeaked
)

// Default pressure thresholds, as fractions of the device pressure range.
const (
	DefaultForceStartPressure = 0.4
	DefaultForcePeakPressure  = 0.85
)

// ForcePress recognizes a hard press on a pressure-sensitive device.
//
// Pressure is normalized into [0, 1] over the event's [PressureMin,
// PressureMax] range. Crossing StartPressure claims the arena and fires
// OnStart; crossing PeakPressure fires OnPeak; every sample after the start
// fires OnUpdate; release fires OnEnd. Devices that do not report a pressure
// range (PressureMax <= 1) are never added.
type ForcePress struct {
	oneSequence

	StartPressure float64
	PeakPressure  float64

	OnStart  func(ForcePressDetails)
	OnPeak   func(ForcePressDetails)
	OnUpdate func(ForcePressDetails)
	OnEnd    func(ForcePressDetails)

	state        forceState
	down         PointerEvent
	lastPosition Vec2
	lastPressure float64
	last         PointerEvent
}

// NewForcePress creates a force press recognizer with the default thresholds.
func NewForcePress() *ForcePress {
	r := &ForcePress{
		StartPressure: DefaultForceStartPressure,
		PeakPressure:  DefaultForcePeakPressure,
	}
	r.initSequence(r, r.didStopTrackingLastPointer)
	return r
}

// HandlePointer implements Recognizer.
func (r *ForcePress) HandlePointer(e PointerEvent) { routePointer(r, e) }

// CanAddPointer implements Recognizer.
func (r *ForcePress) CanAddPointer(e PointerEvent) bool {
	if e.IsSignal() || !r.isAllowed(e) {
		return false
	}
	return e.PressureMax > 1.0
}

// normalizedPressure maps value from [lo, hi] into [0, 1]. A degenerate or
// invalid range yields 0.
func normalizedPressure(lo, hi, value float64) float64 {
	if hi <= lo || math.IsNaN(value) {
		return 0
	}
	return (value - lo) / (hi - lo)
}

func (r *ForcePress) handleDown(e PointerEvent) {
	r.startTracking(e.Pointer)
	if r.state == forceReady {
		r.state = forcePossible
		r.down = e
		r.lastPosition = e.Position
	}
	r.handleSample(e)
}

func (r *ForcePress) handleMove(e PointerEvent) {
	if !r.isTracking(e.Pointer) {
		return
	}
	r.handleSample(e)
}

func (r *ForcePress) handleSample(e PointerEvent) {
	pressure := normalizedPressure(e.PressureMin, e.PressureMax, e.Pressure)
	r.lastPosition = e.Position
	r.lastPressure = pressure
	r.last = e

	if r.state == forcePossible {
		if pressure > r.StartPressure {
			// AcceptGesture moves to forceStarted; a veto leaves us possible.
			if !r.accept() {
				return
			}
		} else if e.Position.Sub(r.down.Position).Len() > r.config().TouchSlop {
			r.abandon()
			return
		}
	}
	if pressure > r.StartPressure && r.state == forceAccepted {
		r.state = forceStarted
		r.fire(r.OnStart, EventForcePressStart)
	}
	if pressure > r.PeakPressure && r.state == forceStarted {
		r.state = forcePeaked
		r.fire(r.OnPeak, EventForcePressPeak)
	}
	if r.state == forceStarted || r.state == forcePeaked {
		r.fire(r.OnUpdate, EventForcePressUpdate)
	}
}

// AcceptGesture implements Recognizer.
func (r *ForcePress) AcceptGesture(pointer PointerID) {
	if r.state != forcePossible {
		return
	}
	if r.lastPressure > r.StartPressure {
		r.state = forceStarted
		r.fire(r.OnStart, EventForcePressStart)
		return
	}
	r.state = forceAccepted
}

// RejectGesture implements Recognizer.
func (r *ForcePress) RejectGesture(pointer PointerID) {
	if r.isTracking(pointer) {
		r.stopTracking(pointer)
		return
	}
	r.didStopTrackingLastPointer(pointer)
}

// Dispose implements Recognizer.
func (r *ForcePress) Dispose() {
	r.tracked = r.tracked[:0]
	r.entries = r.entries[:0]
	r.state = forceReady
}

func (r *ForcePress) didStopTrackingLastPointer(PointerID) {
	switch r.state {
	case forcePossible:
		r.state = forceReady
		r.reject()
		return
	case forceStarted, forcePeaked:
		r.fire(r.OnEnd, EventForcePressEnd)
	}
	r.state = forceReady
}

func (r *ForcePress) abandon() {
	r.state = forceReady
	r.reject()
	r.stopAll()
}

func (r *ForcePress) fire(fn func(ForcePressDetails), t EventType) {
	d := ForcePressDetails{Position: r.lastPosition, Pressure: r.lastPressure}
	if fn != nil {
		fn(d)
	}
	ev := GestureEvent{Type: t, Pointer: r.last.Pointer, Timestamp: r.last.Timestamp,
		Position: d.Position, Pressure: d.Pressure, Device: r.last.Device, Button: r.last.Button,
		Modifiers: r.last.Modifiers}
	r.emit(ev)
}
