package gesture

import "time"

// LongPress recognizes a pointer held in place past a deadline (the
// configured LongPressTimeout unless SetDeadline was called).
//
// When the deadline passes while the pointer has stayed within TouchSlop, the
// recognizer claims the arena and fires OnLongPress and OnLongPressStart.
// Later movement fires OnLongPressMoveUpdate; release fires OnLongPressUp and
// OnLongPressEnd. A sequence that ends or strays before the deadline gives up
// the arena and fires only OnLongPressCancel.
type LongPress struct {
	oneSequence

	OnLongPressDown       func(TapDetails)
	OnLongPress           func()
	OnLongPressStart      func(LongPressStartDetails)
	OnLongPressMoveUpdate func(LongPressMoveDetails)
	OnLongPressUp         func()
	OnLongPressEnd        func(LongPressEndDetails)
	OnLongPressCancel     func()

	deadline    time.Duration
	hasDeadline bool

	primary  PointerID
	down     PointerEvent
	accepted bool
	velocity *VelocityTracker
	timer    timerSlot
}

// NewLongPress creates a long press recognizer for the primary button.
func NewLongPress() *LongPress {
	r := &LongPress{velocity: NewVelocityTracker()}
	r.initSequence(r, r.didStopTrackingLastPointer)
	return r
}

// SetDeadline overrides the configured LongPressTimeout for this recognizer.
func (r *LongPress) SetDeadline(d time.Duration) {
	r.deadline = d
	r.hasDeadline = true
}

// Deadline returns the hold time after which the long press starts.
func (r *LongPress) Deadline() time.Duration {
	if r.hasDeadline {
		return r.deadline
	}
	return r.config().LongPressTimeout.Std()
}

// HandlePointer implements Recognizer.
func (r *LongPress) HandlePointer(e PointerEvent) { routePointer(r, e) }

// CanAddPointer implements Recognizer.
func (r *LongPress) CanAddPointer(e PointerEvent) bool {
	return !e.IsSignal() && r.isAllowed(e) && r.primary == 0
}

func (r *LongPress) handleDown(e PointerEvent) {
	if r.primary != 0 {
		return
	}
	r.primary = e.Pointer
	r.down = e
	r.accepted = false
	r.velocity.Reset()
	r.velocity.AddPosition(e.Timestamp, e.Position)
	r.startTracking(e.Pointer)
	if r.OnLongPressDown != nil {
		r.OnLongPressDown(tapDetails(e))
	}
	r.emitFrom(EventLongPressDown, e)
	r.timer.start(r.sched(), r.Deadline(), r.didExceedDeadline)
}

func (r *LongPress) handleMove(e PointerEvent) {
	if e.Pointer != r.primary {
		return
	}
	r.velocity.AddPosition(e.Timestamp, e.Position)
	if !r.accepted {
		if e.Position.Sub(r.down.Position).Len() > r.config().TouchSlop {
			r.abandon()
		}
		return
	}
	d := LongPressMoveDetails{
		Position: e.Position,
		Offset:   e.Position.Sub(r.down.Position),
	}
	if r.OnLongPressMoveUpdate != nil {
		r.OnLongPressMoveUpdate(d)
	}
	ev := GestureEvent{Type: EventLongPressMove, Pointer: e.Pointer, Timestamp: e.Timestamp,
		Position: e.Position, Delta: d.Offset, Button: e.Button, Device: e.Device, Modifiers: e.Modifiers}
	r.emit(ev)
}

func (r *LongPress) handleUp(e PointerEvent) {
	if e.Pointer != r.primary {
		r.stopTracking(e.Pointer)
		return
	}
	if !r.accepted {
		r.abandon()
		return
	}
	r.velocity.AddPosition(e.Timestamp, e.Position)
	v := r.velocity.Velocity()
	r.reset()
	if r.OnLongPressUp != nil {
		r.OnLongPressUp()
	}
	if r.OnLongPressEnd != nil {
		r.OnLongPressEnd(LongPressEndDetails{Position: e.Position, Velocity: v})
	}
	r.emit(GestureEvent{Type: EventLongPressEnd, Pointer: e.Pointer, Timestamp: e.Timestamp,
		Position: e.Position, Velocity: v.PixelsPerSecond, Button: e.Button, Device: e.Device,
		Modifiers: e.Modifiers})
	r.stopTracking(e.Pointer)
}

func (r *LongPress) handleCancel(e PointerEvent) {
	if e.Pointer == r.primary {
		r.abandon()
		return
	}
	r.stopTracking(e.Pointer)
}

// AcceptGesture implements Recognizer.
func (r *LongPress) AcceptGesture(pointer PointerID) {
	if pointer != r.primary || r.accepted {
		return
	}
	r.accepted = true
	r.timer.stop(r.sched())
	if r.OnLongPress != nil {
		r.OnLongPress()
	}
	if r.OnLongPressStart != nil {
		r.OnLongPressStart(LongPressStartDetails{Position: r.down.Position, Timestamp: r.down.Timestamp})
	}
	r.emitFrom(EventLongPressStart, r.down)
}

// RejectGesture implements Recognizer.
func (r *LongPress) RejectGesture(pointer PointerID) {
	if pointer == r.primary {
		r.cancelPress()
	}
	r.stopTracking(pointer)
}

// Dispose implements Recognizer.
func (r *LongPress) Dispose() {
	r.reset()
	r.stopAll()
}

func (r *LongPress) didExceedDeadline() {
	if r.primary == 0 || r.accepted {
		return
	}
	Logger().Debug("gesture: long press deadline reached", "pointer", r.primary, "owner", r.OwnerID())
	r.accept()
}

func (r *LongPress) didStopTrackingLastPointer(PointerID) {
	r.timer.stop(r.sched())
}

// abandon gives up the arena and fires the cancel callback.
func (r *LongPress) abandon() {
	r.reject()
	r.cancelPress()
	r.stopAll()
}

func (r *LongPress) cancelPress() {
	if r.primary == 0 {
		return
	}
	down := r.down
	r.reset()
	if r.OnLongPressCancel != nil {
		r.OnLongPressCancel()
	}
	r.emitFrom(EventLongPressCancel, down)
}

func (r *LongPress) reset() {
	r.timer.stop(r.sched())
	r.primary = 0
	r.accepted = false
}
