package gesture

type tapState uint8

// releasedTap is a tap whose pointer went up before its arena resolved,
// parked so the recognizer can follow a new pointer meanwhile.
type releasedTap struct {
	down, up PointerEvent
	sentDown bool
}

const (
	tapReady tapState = iota
	tapPossible
	tapDefunct
)

// Tap recognizes a single press and release of one pointer that stays within
// TouchSlop of where it went down.
//
// OnTapDown fires once the press has lasted PressTimeout or the recognizer
// wins the arena, whichever comes first. OnTapUp and OnTap fire after release
// once the arena has been won. OnTapCancel fires when a tap that already sent
// OnTapDown is abandoned.
//
// A released tap whose arena is still held (by a DoubleTap waiting for its
// second tap) is parked, so a new pointer can start another tap meanwhile.
type Tap struct {
	oneSequence

	OnTapDown   func(TapDetails)
	OnTapUp     func(TapDetails)
	OnTap       func()
	OnTapCancel func()

	state    tapState
	primary  PointerID
	down     PointerEvent
	up       PointerEvent
	hasUp    bool
	sentDown bool
	won      bool
	deadline timerSlot
	released map[PointerID]releasedTap
}

// NewTap creates a tap recognizer for the primary button.
func NewTap() *Tap {
	r := &Tap{released: make(map[PointerID]releasedTap)}
	r.initSequence(r, r.didStopTrackingLastPointer)
	return r
}

// HandlePointer implements Recognizer.
func (r *Tap) HandlePointer(e PointerEvent) { routePointer(r, e) }

// CanAddPointer implements Recognizer. A tap follows one pointer at a time.
func (r *Tap) CanAddPointer(e PointerEvent) bool {
	if e.IsSignal() || !r.isAllowed(e) {
		return false
	}
	return r.state == tapReady || r.waiting()
}

// waiting reports whether the current tap was released and only awaits its
// arena.
func (r *Tap) waiting() bool { return r.state == tapPossible && r.hasUp }

func (r *Tap) handleDown(e PointerEvent) {
	if r.waiting() {
		r.released[r.primary] = releasedTap{down: r.down, up: r.up, sentDown: r.sentDown}
		r.reset()
	}
	if r.state != tapReady {
		return
	}
	r.state = tapPossible
	r.primary = e.Pointer
	r.down = e
	r.hasUp, r.sentDown, r.won = false, false, false
	r.startTracking(e.Pointer)
	r.deadline.start(r.sched(), r.config().PressTimeout.Std(), r.didExceedDeadline)
}

func (r *Tap) handleMove(e PointerEvent) {
	if e.Pointer != r.primary || r.state != tapPossible {
		return
	}
	if e.Position.Sub(r.down.Position).Len() > r.config().TouchSlop {
		r.abandon()
	}
}

func (r *Tap) handleUp(e PointerEvent) {
	if e.Pointer != r.primary || r.state != tapPossible {
		r.stopTracking(e.Pointer)
		return
	}
	r.up = e
	r.hasUp = true
	r.deadline.stop(r.sched())
	r.checkUp()
	r.stopTracking(e.Pointer)
}

func (r *Tap) handleCancel(e PointerEvent) {
	if e.Pointer == r.primary && r.state == tapPossible {
		r.abandon()
		return
	}
	r.stopTracking(e.Pointer)
}

// AcceptGesture implements Recognizer.
func (r *Tap) AcceptGesture(pointer PointerID) {
	if rt, ok := r.released[pointer]; ok {
		delete(r.released, pointer)
		if !rt.sentDown {
			r.fireDown(rt.down)
		}
		r.fireUp(rt.up)
		return
	}
	if pointer != r.primary || r.state != tapPossible {
		return
	}
	r.won = true
	r.checkDown()
	r.checkUp()
}

// RejectGesture implements Recognizer.
func (r *Tap) RejectGesture(pointer PointerID) {
	if rt, ok := r.released[pointer]; ok {
		delete(r.released, pointer)
		if rt.sentDown {
			r.fireCancel(rt.down)
		}
		return
	}
	if pointer == r.primary && r.state == tapPossible {
		r.cancel()
	}
	r.stopTracking(pointer)
}

// Dispose implements Recognizer.
func (r *Tap) Dispose() {
	r.deadline.stop(r.sched())
	r.stopAll()
	r.reset()
	clear(r.released)
}

func (r *Tap) didExceedDeadline() {
	if r.state == tapPossible {
		r.checkDown()
	}
}

func (r *Tap) didStopTrackingLastPointer(PointerID) {
	// A released tap waits for the arena sweep.
	if r.state == tapPossible && r.hasUp {
		return
	}
	if r.state != tapPossible {
		r.reset()
	}
}

func (r *Tap) abandon() {
	r.reject()
	if r.state == tapPossible {
		r.cancel()
	}
	r.stopAll()
}

func (r *Tap) cancel() {
	sent := r.sentDown
	r.state = tapDefunct
	r.deadline.stop(r.sched())
	if sent {
		r.fireCancel(r.down)
	}
	if len(r.tracked) == 0 {
		r.reset()
	}
}

func (r *Tap) checkDown() {
	if r.sentDown {
		return
	}
	r.sentDown = true
	r.fireDown(r.down)
}

func (r *Tap) checkUp() {
	if !r.won || !r.hasUp {
		return
	}
	r.checkDown()
	up := r.up
	r.reset()
	r.fireUp(up)
}

func (r *Tap) fireDown(down PointerEvent) {
	if r.OnTapDown != nil {
		r.OnTapDown(tapDetails(down))
	}
	r.emitFrom(EventTapDown, down)
}

func (r *Tap) fireUp(up PointerEvent) {
	if r.OnTapUp != nil {
		r.OnTapUp(tapDetails(up))
	}
	r.emitFrom(EventTapUp, up)
	if r.OnTap != nil {
		r.OnTap()
	}
	r.emitFrom(EventTap, up)
}

func (r *Tap) fireCancel(down PointerEvent) {
	if r.OnTapCancel != nil {
		r.OnTapCancel()
	}
	r.emitFrom(EventTapCancel, down)
}

func (r *Tap) reset() {
	r.deadline.stop(r.sched())
	r.state = tapReady
	r.primary = 0
	r.hasUp, r.sentDown, r.won = false, false, false
}

func tapDetails(e PointerEvent) TapDetails {
	return TapDetails{
		Pointer:   e.Pointer,
		Position:  e.Position,
		Device:    e.Device,
		Button:    e.Button,
		Modifiers: e.Modifiers,
		Timestamp: e.Timestamp,
	}
}
