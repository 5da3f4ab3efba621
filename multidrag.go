package gesture

import (
	"math"
	"time"
)

// Drag receives the movement of one pointer claimed by a MultiDrag.
type Drag interface {
	Update(d DragUpdateDetails)
	End(d DragEndDetails)
	Cancel()
}

type multiDragKind uint8

const (
	multiDragImmediate multiDragKind = iota
	multiDragHorizontal
	multiDragVertical
	multiDragDelayed
)

// dragPointer is the per-pointer state of a MultiDrag.
type dragPointer struct {
	pointer  PointerID
	initial  Vec2
	lastPos  Vec2
	pending  Vec2
	velocity *VelocityTracker
	client   Drag
	timer    timerSlot
	// starter is set when the arena was won before the delay passed.
	starter bool
	last    PointerEvent
}

// MultiDrag tracks every pointer independently: each one competes in its
// own arena and, once it wins, is handed to the Drag returned by OnStart.
//
// The variants differ in how a pointer wins:
//   - immediate: moving more than TouchSlop in any direction
//   - horizontal / vertical: moving more than TouchSlop along the axis
//   - delayed: staying within TouchSlop until the delay passes
type MultiDrag struct {
	recognizerBase

	// OnStart is called with the pointer's down position when it wins. A nil
	// Drag drops the pointer.
	OnStart func(position Vec2) Drag

	kind     multiDragKind
	delay    time.Duration
	hasDelay bool
	pointers map[PointerID]*dragPointer
}

// NewImmediateMultiDrag creates a multi drag that starts on any movement.
func NewImmediateMultiDrag() *MultiDrag { return newMultiDrag(multiDragImmediate) }

// NewHorizontalMultiDrag creates a multi drag that starts on x movement.
func NewHorizontalMultiDrag() *MultiDrag { return newMultiDrag(multiDragHorizontal) }

// NewVerticalMultiDrag creates a multi drag that starts on y movement.
func NewVerticalMultiDrag() *MultiDrag { return newMultiDrag(multiDragVertical) }

// NewDelayedMultiDrag creates a multi drag that starts once a pointer has
// been held still for delay. A zero delay uses LongPressTimeout.
func NewDelayedMultiDrag(delay time.Duration) *MultiDrag {
	r := newMultiDrag(multiDragDelayed)
	if delay > 0 {
		r.delay = delay
		r.hasDelay = true
	}
	return r
}

func newMultiDrag(kind multiDragKind) *MultiDrag {
	r := &MultiDrag{kind: kind, pointers: make(map[PointerID]*dragPointer)}
	r.init(r)
	return r
}

// Active returns the number of pointers currently followed.
func (r *MultiDrag) Active() int { return len(r.pointers) }

// HandlePointer implements Recognizer.
func (r *MultiDrag) HandlePointer(e PointerEvent) { routePointer(r, e) }

// CanAddPointer implements Recognizer.
func (r *MultiDrag) CanAddPointer(e PointerEvent) bool {
	return !e.IsSignal() && r.isAllowed(e) && r.pointers[e.Pointer] == nil
}

func (r *MultiDrag) handleDown(e PointerEvent) {
	if r.pointers[e.Pointer] != nil {
		return
	}
	st := &dragPointer{
		pointer:  e.Pointer,
		initial:  e.Position,
		lastPos:  e.Position,
		velocity: NewVelocityTracker(),
		last:     e,
	}
	st.velocity.AddPosition(e.Timestamp, e.Position)
	r.pointers[e.Pointer] = st
	if r.kind == multiDragDelayed {
		delay := r.delay
		if !r.hasDelay {
			delay = r.config().LongPressTimeout.Std()
		}
		st.timer.start(r.sched(), delay, func() { r.delayPassed(st) })
	}
	r.emitFrom(EventDragDown, e)
}

func (r *MultiDrag) handleMove(e PointerEvent) {
	st := r.pointers[e.Pointer]
	if st == nil {
		return
	}
	st.velocity.AddPosition(e.Timestamp, e.Position)
	delta := e.Position.Sub(st.lastPos)
	st.lastPos = e.Position
	st.last = e
	if st.client != nil {
		r.update(st, delta)
		return
	}
	st.pending = st.pending.Add(delta)
	r.checkForResolution(st)
}

func (r *MultiDrag) checkForResolution(st *dragPointer) {
	slop := r.config().TouchSlop
	switch r.kind {
	case multiDragImmediate:
		if st.pending.Len() > slop {
			r.arena().Accept(st.pointer, r)
		}
	case multiDragHorizontal:
		if math.Abs(st.pending.X) > slop {
			r.arena().Accept(st.pointer, r)
		}
	case multiDragVertical:
		if math.Abs(st.pending.Y) > slop {
			r.arena().Accept(st.pointer, r)
		}
	case multiDragDelayed:
		if st.timer.active() && st.pending.Len() > slop {
			r.drop(st)
			r.arena().Reject(st.pointer, r)
		}
	}
}

func (r *MultiDrag) handleUp(e PointerEvent) {
	st := r.pointers[e.Pointer]
	if st == nil {
		return
	}
	st.velocity.AddPosition(e.Timestamp, e.Position)
	st.last = e
	r.drop(st)
	if st.client == nil {
		// Unresolved pointers must not be started by the sweep.
		r.arena().Reject(e.Pointer, r)
		return
	}
	v := st.velocity.Velocity().ClampMagnitude(0, r.config().MaxFlingVelocity)
	st.client.End(DragEndDetails{Velocity: v})
	r.emit(GestureEvent{Type: EventDragEnd, Pointer: e.Pointer, Timestamp: e.Timestamp,
		Position: e.Position, Velocity: v.PixelsPerSecond, Button: e.Button, Device: e.Device,
		Modifiers: e.Modifiers})
}

func (r *MultiDrag) handleCancel(e PointerEvent) {
	st := r.pointers[e.Pointer]
	if st == nil {
		return
	}
	st.last = e
	r.drop(st)
	r.cancel(st)
	r.arena().Reject(e.Pointer, r)
}

// AcceptGesture implements Recognizer.
func (r *MultiDrag) AcceptGesture(pointer PointerID) {
	st := r.pointers[pointer]
	if st == nil || st.client != nil {
		return
	}
	if r.kind == multiDragDelayed && st.timer.active() {
		st.starter = true
		return
	}
	r.startDrag(st)
}

// RejectGesture implements Recognizer.
func (r *MultiDrag) RejectGesture(pointer PointerID) {
	st := r.pointers[pointer]
	if st == nil {
		return
	}
	r.drop(st)
	r.cancel(st)
}

// Dispose implements Recognizer.
func (r *MultiDrag) Dispose() {
	for _, st := range r.pointers {
		r.drop(st)
		r.cancel(st)
	}
}

func (r *MultiDrag) delayPassed(st *dragPointer) {
	if r.pointers[st.pointer] != st {
		return
	}
	if st.starter {
		r.startDrag(st)
		return
	}
	r.arena().Accept(st.pointer, r)
}

func (r *MultiDrag) startDrag(st *dragPointer) {
	var drag Drag
	if r.OnStart != nil {
		drag = r.OnStart(st.initial)
	}
	if drag == nil {
		r.drop(st)
		return
	}
	st.client = drag
	r.emit(GestureEvent{Type: EventDragStart, Pointer: st.pointer, Timestamp: st.last.Timestamp,
		Position: st.initial, Button: st.last.Button, Device: st.last.Device, Modifiers: st.last.Modifiers})
	if !st.pending.IsZero() {
		pending := st.pending
		st.pending = Vec2{}
		r.update(st, pending)
	}
}

func (r *MultiDrag) update(st *dragPointer, delta Vec2) {
	d := DragUpdateDetails{Position: st.lastPos, Delta: delta, Timestamp: st.last.Timestamp}
	switch r.kind {
	case multiDragHorizontal:
		d.PrimaryDelta = delta.X
	case multiDragVertical:
		d.PrimaryDelta = delta.Y
	}
	st.client.Update(d)
	r.emit(GestureEvent{Type: EventDragUpdate, Pointer: st.pointer, Timestamp: st.last.Timestamp,
		Position: st.lastPos, Delta: delta, Button: st.last.Button, Device: st.last.Device,
		Modifiers: st.last.Modifiers})
}

func (r *MultiDrag) cancel(st *dragPointer) {
	if st.client == nil {
		return
	}
	client := st.client
	st.client = nil
	client.Cancel()
	r.emit(GestureEvent{Type: EventDragCancel, Pointer: st.pointer, Timestamp: st.last.Timestamp,
		Position: st.lastPos, Device: st.last.Device})
}

// drop forgets the pointer and stops its timer.
func (r *MultiDrag) drop(st *dragPointer) {
	st.timer.stop(r.sched())
	if r.pointers[st.pointer] == st {
		delete(r.pointers, st.pointer)
	}
}
