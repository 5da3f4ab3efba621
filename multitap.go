package gesture

import "time"

// tapGesture is the per-pointer state of a MultiTap.
type tapGesture struct {
	pointer PointerID
	down    PointerEvent
	lastPos Vec2
	up      PointerEvent
	hasUp   bool
	won     bool
	longTap timerSlot
}

// MultiTap recognizes taps from any number of pointers at once. Every
// pointer competes and completes on its own; OnTapDown fires as soon as the
// pointer goes down.
//
// When LongTapDelay is positive, OnLongTapDown fires for pointers still down
// after that delay. It does not end the tap.
type MultiTap struct {
	recognizerBase

	LongTapDelay time.Duration

	OnTapDown     func(PointerID, MultiTapDetails)
	OnTapUp       func(PointerID, MultiTapDetails)
	OnTap         func(PointerID)
	OnTapCancel   func(PointerID)
	OnLongTapDown func(PointerID, MultiTapDetails)

	gestures map[PointerID]*tapGesture
}

// NewMultiTap creates a multi tap recognizer for the primary button.
func NewMultiTap() *MultiTap {
	r := &MultiTap{gestures: make(map[PointerID]*tapGesture)}
	r.init(r)
	return r
}

// HandlePointer implements Recognizer.
func (r *MultiTap) HandlePointer(e PointerEvent) { routePointer(r, e) }

// CanAddPointer implements Recognizer.
func (r *MultiTap) CanAddPointer(e PointerEvent) bool {
	return !e.IsSignal() && r.isAllowed(e) && r.gestures[e.Pointer] == nil
}

func (r *MultiTap) handleDown(e PointerEvent) {
	if r.gestures[e.Pointer] != nil {
		return
	}
	g := &tapGesture{pointer: e.Pointer, down: e, lastPos: e.Position}
	r.gestures[e.Pointer] = g
	if r.LongTapDelay > 0 {
		g.longTap.start(r.sched(), r.LongTapDelay, func() { r.dispatchLongTap(g) })
	}
	if r.OnTapDown != nil {
		r.OnTapDown(e.Pointer, MultiTapDetails{Position: e.Position, Device: e.Device})
	}
	r.emitFrom(EventTapDown, e)
}

func (r *MultiTap) handleMove(e PointerEvent) {
	g := r.gestures[e.Pointer]
	if g == nil {
		return
	}
	if e.Position.Sub(g.down.Position).Len() > r.config().TouchSlop {
		r.cancel(g)
		return
	}
	g.lastPos = e.Position
}

func (r *MultiTap) handleUp(e PointerEvent) {
	g := r.gestures[e.Pointer]
	if g == nil {
		return
	}
	g.longTap.stop(r.sched())
	g.up = e
	g.hasUp = true
	r.check(g)
}

func (r *MultiTap) handleCancel(e PointerEvent) {
	if g := r.gestures[e.Pointer]; g != nil {
		r.cancel(g)
	}
}

// AcceptGesture implements Recognizer.
func (r *MultiTap) AcceptGesture(pointer PointerID) {
	g := r.gestures[pointer]
	if g == nil {
		return
	}
	g.won = true
	r.check(g)
}

// RejectGesture implements Recognizer.
func (r *MultiTap) RejectGesture(pointer PointerID) {
	g := r.gestures[pointer]
	if g == nil {
		return
	}
	r.dispatchCancel(g)
}

// Dispose implements Recognizer.
func (r *MultiTap) Dispose() {
	for _, g := range r.gestures {
		g.longTap.stop(r.sched())
	}
	clear(r.gestures)
}

func (r *MultiTap) cancel(g *tapGesture) {
	if g.won {
		r.dispatchCancel(g)
		return
	}
	r.arena().Reject(g.pointer, r)
	// Not in an arena any more: cancel directly.
	if r.gestures[g.pointer] == g {
		r.dispatchCancel(g)
	}
}

func (r *MultiTap) check(g *tapGesture) {
	if !g.won || !g.hasUp {
		return
	}
	delete(r.gestures, g.pointer)
	d := MultiTapDetails{Position: g.up.Position, Device: g.up.Device}
	if r.OnTapUp != nil {
		r.OnTapUp(g.pointer, d)
	}
	r.emitFrom(EventTapUp, g.up)
	if r.OnTap != nil {
		r.OnTap(g.pointer)
	}
	r.emitFrom(EventTap, g.up)
}

func (r *MultiTap) dispatchCancel(g *tapGesture) {
	g.longTap.stop(r.sched())
	delete(r.gestures, g.pointer)
	if r.OnTapCancel != nil {
		r.OnTapCancel(g.pointer)
	}
	r.emitFrom(EventTapCancel, g.down)
}

func (r *MultiTap) dispatchLongTap(g *tapGesture) {
	if r.gestures[g.pointer] != g {
		return
	}
	if r.OnLongTapDown != nil {
		r.OnLongTapDown(g.pointer, MultiTapDetails{Position: g.lastPos, Device: g.down.Device})
	}
	ev := g.down
	ev.Position = g.lastPos
	r.emitFrom(EventLongPressStart, ev)
}
